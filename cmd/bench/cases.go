// README: Smoke-check cases: env connectivity, chat flows, and a small load check.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Runner struct {
	cfg   Config
	httpc *http.Client
	db    *pgxpool.Pool
	redis *redis.Client
}

type Result struct {
	Name    string
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name string
	Run  func(ctx context.Context, r *Runner) Result
}

func NewRunner(cfg Config) *Runner {
	return &Runner{
		cfg:   cfg,
		httpc: &http.Client{Timeout: 30 * time.Second},
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	if r.cfg.DSN != "" {
		if db, err := pgxpool.New(ctx, r.cfg.DSN); err == nil {
			r.db = db
		}
	}
	if r.cfg.RedisAddr != "" {
		r.redis = redis.NewClient(&redis.Options{Addr: r.cfg.RedisAddr})
	}

	tests := r.cases()
	results := make([]Result, 0, len(tests))

	for _, tc := range tests {
		res := tc.Run(ctx, r)
		res.Name = tc.Name
		results = append(results, res)
		fmt.Printf("%-7s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Printf(" (%s)", res.Latency)
		}
		if res.Note != "" {
			fmt.Printf(" - %s", res.Note)
		}
		fmt.Println()
	}

	if r.db != nil {
		r.db.Close()
	}
	if r.redis != nil {
		_ = r.redis.Close()
	}

	return results
}

type chatReply struct {
	Reply struct {
		Text         string `json:"text"`
		UIDirectives []struct {
			Kind      string `json:"kind"`
			TargetURL string `json:"target_url"`
		} `json:"ui_directives"`
	} `json:"reply"`
	IntentDebug struct {
		Type string `json:"Type"`
	} `json:"intent_debug"`
}

func (r *Runner) postChat(ctx context.Context, sessionID, message string) (int, *chatReply, time.Duration, error) {
	body, _ := json.Marshal(map[string]string{
		"message":    message,
		"session_id": sessionID,
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.cfg.BaseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return 0, nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := r.httpc.Do(req)
	latency := time.Since(start)
	if err != nil {
		return 0, nil, latency, err
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)

	var out chatReply
	_ = json.Unmarshal(raw, &out)
	return resp.StatusCode, &out, latency, nil
}

func benchSessionID() string {
	return fmt.Sprintf("bench-%d", time.Now().UnixNano())
}

func (r *Runner) cases() []TestCase {
	return []TestCase{
		{
			Name: "Env: Postgres connect",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: "FAIL", Note: "db not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.db.Ping(ctx); err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name: "Env: Redis connect",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.redis == nil {
					return Result{Status: "FAIL", Note: "redis not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.redis.Ping(ctx).Err(); err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name: "HTTP: health",
			Run: func(ctx context.Context, r *Runner) Result {
				req, _ := http.NewRequestWithContext(ctx, http.MethodGet, r.cfg.BaseURL+"/health", nil)
				start := time.Now()
				resp, err := r.httpc.Do(req)
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				defer resp.Body.Close()
				if resp.StatusCode != http.StatusOK {
					return Result{Status: "FAIL", Note: fmt.Sprintf("status %d", resp.StatusCode)}
				}
				return Result{Status: "PASS", Latency: time.Since(start)}
			},
		},
		{
			Name: "Chat: rejects bad request",
			Run: func(ctx context.Context, r *Runner) Result {
				status, _, latency, err := r.postChat(ctx, "", "hello")
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				if status != http.StatusBadRequest {
					return Result{Status: "FAIL", Note: fmt.Sprintf("status %d, want 400", status)}
				}
				return Result{Status: "PASS", Latency: latency}
			},
		},
		{
			// Country-level flight searches resolve without any provider or
			// model call, so this exercises the whole turn path cheaply.
			Name: "Chat: country clarification",
			Run: func(ctx context.Context, r *Runner) Result {
				status, out, latency, err := r.postChat(ctx, benchSessionID(), "find me flights to Japan")
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				if status != http.StatusOK {
					return Result{Status: "FAIL", Note: fmt.Sprintf("status %d", status)}
				}
				if !strings.Contains(out.Reply.Text, "?") {
					return Result{Status: "FAIL", Note: "expected a clarification question"}
				}
				if !strings.Contains(out.Reply.Text, "Tokyo") {
					return Result{Status: "FAIL", Note: "clarification did not suggest cities"}
				}
				return Result{Status: "PASS", Latency: latency}
			},
		},
		{
			Name: "Chat: follow-up keeps context",
			Run: func(ctx context.Context, r *Runner) Result {
				sid := benchSessionID()
				if _, _, _, err := r.postChat(ctx, sid, "find me a hotel in Barcelona"); err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				status, out, latency, err := r.postChat(ctx, sid, "2025-11-10 to 2025-11-14")
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				if status != http.StatusOK {
					return Result{Status: "FAIL", Note: fmt.Sprintf("status %d", status)}
				}
				if out.IntentDebug.Type != "hotel_search" {
					return Result{Status: "FAIL", Note: "intent " + out.IntentDebug.Type}
				}
				return Result{Status: "PASS", Latency: latency}
			},
		},
		{
			Name: "History: turns recorded",
			Run: func(ctx context.Context, r *Runner) Result {
				sid := benchSessionID()
				if _, _, _, err := r.postChat(ctx, sid, "find me flights to Japan"); err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				req, _ := http.NewRequestWithContext(ctx, http.MethodGet, r.cfg.BaseURL+"/api/sessions/"+sid+"/history", nil)
				resp, err := r.httpc.Do(req)
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				defer resp.Body.Close()
				raw, _ := io.ReadAll(resp.Body)
				var out struct {
					Turns []struct {
						Role string `json:"role"`
					} `json:"turns"`
				}
				if err := json.Unmarshal(raw, &out); err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				if len(out.Turns) < 2 {
					return Result{Status: "FAIL", Note: fmt.Sprintf("%d turns recorded", len(out.Turns))}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name: "Load: clarification turns",
			Run:  runLoadCheck,
		},
	}
}

// runLoadCheck hammers the clarification path, which never reaches a paid
// provider, and reports throughput plus worst-case latency.
func runLoadCheck(ctx context.Context, r *Runner) Result {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.Duration)
	defer cancel()

	var (
		mu    sync.Mutex
		total int
		fails int
		worst time.Duration
	)
	var wg sync.WaitGroup
	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			sid := fmt.Sprintf("%s-w%d", benchSessionID(), worker)
			for ctx.Err() == nil {
				status, _, latency, err := r.postChat(ctx, sid, "find me flights to Japan")
				mu.Lock()
				total++
				if err != nil || status != http.StatusOK {
					if ctx.Err() == nil {
						fails++
					}
				}
				if latency > worst {
					worst = latency
				}
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	if fails > 0 {
		return Result{Status: "FAIL", Note: fmt.Sprintf("%d/%d requests failed", fails, total)}
	}
	return Result{Status: "PASS", Note: fmt.Sprintf("%d requests, worst %s", total, worst.Round(time.Millisecond))}
}

// README: Conversation history store backed by a Redis list per session.
package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// maxStoredTurns bounds the Redis list so an endless chat cannot grow a key
// without limit. Callers read a much smaller window per turn.
const maxStoredTurns = 50

// HistoryStore persists conversation turns per session.
type HistoryStore struct {
	rdb *redis.Client
}

// NewHistoryStore returns a HistoryStore backed by the given Redis client.
func NewHistoryStore(rdb *redis.Client) *HistoryStore {
	return &HistoryStore{rdb: rdb}
}

func historyKey(sessionID string) string {
	return "chat:history:" + sessionID
}

// Append records one turn at the end of the session's history and trims the
// list to the retention bound. Concurrent appends are last-write-wins at
// Redis's discretion; the core does not lock.
func (s *HistoryStore) Append(ctx context.Context, sessionID string, turn Turn) error {
	data, err := json.Marshal(turn)
	if err != nil {
		return fmt.Errorf("history: marshal turn: %w", err)
	}
	pipe := s.rdb.TxPipeline()
	pipe.RPush(ctx, historyKey(sessionID), data)
	pipe.LTrim(ctx, historyKey(sessionID), -maxStoredTurns, -1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("history: append: %w", err)
	}
	return nil
}

// Recent returns up to n most recent turns, oldest first.
func (s *HistoryStore) Recent(ctx context.Context, sessionID string, n int) ([]Turn, error) {
	if n <= 0 {
		return []Turn{}, nil
	}
	raw, err := s.rdb.LRange(ctx, historyKey(sessionID), int64(-n), -1).Result()
	if err != nil {
		return nil, fmt.Errorf("history: lrange: %w", err)
	}
	turns := make([]Turn, 0, len(raw))
	for _, item := range raw {
		var t Turn
		if err := json.Unmarshal([]byte(item), &t); err != nil {
			continue // skip corrupt entries rather than failing the turn
		}
		turns = append(turns, t)
	}
	return turns, nil
}

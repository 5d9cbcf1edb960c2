// README: Entry point; loads config, wires providers and stores, starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"voyago/internal/agent"
	"voyago/internal/ai"
	"voyago/internal/config"
	httptransport "voyago/internal/http"
	"voyago/internal/http/handlers"
	"voyago/internal/infra"
	"voyago/internal/session"
	"voyago/internal/travel"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal(err)
	}

	redisClient := infra.NewRedis(cfg.Redis.Addr)

	llm, err := newCompletionProvider(ctx, cfg)
	if err != nil {
		log.Fatalf("llm init: %v", err)
	}

	placesClient, err := travel.NewPlacesClient(cfg.Travel.MapsKey)
	if err != nil {
		log.Fatalf("places init: %v", err)
	}
	flightClient := travel.NewFlightClient(cfg.Travel.FlightBaseURL, cfg.Travel.FlightAPIKey)
	hotelClient := travel.NewHotelClient(cfg.Travel.HotelBaseURL, cfg.Travel.HotelAPIKey)

	dispatcher := agent.NewDispatcher(flightClient, hotelClient, placesClient, 20*time.Second)
	turnRouter := agent.NewRouter(llm, dispatcher)

	historyStore := session.NewHistoryStore(redisClient)
	prefsStore := session.NewPrefsStore(dbPool)

	turnTimeout := time.Duration(cfg.Chat.TurnTimeoutSeconds) * time.Second
	chatHandler := handlers.NewChatHandler(turnRouter, historyStore, prefsStore, cfg.Chat.HistoryWindow, turnTimeout)
	prefsHandler := handlers.NewPrefsHandler(prefsStore)
	historyHandler := handlers.NewHistoryHandler(historyStore)

	server := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: httptransport.NewRouter(chatHandler, prefsHandler, historyHandler),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Printf("listening on %s (llm=%s)", cfg.HTTP.Addr, cfg.LLM.Provider)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

func newCompletionProvider(ctx context.Context, cfg config.Config) (ai.CompletionProvider, error) {
	switch cfg.LLM.Provider {
	case "gemini":
		return ai.NewGeminiProvider(ctx, cfg.LLM.GeminiKey)
	default:
		return ai.NewBedrockProvider(ctx, cfg.LLM.BedrockRegion, cfg.LLM.BedrockModel)
	}
}

package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/chrono-task/backend/internal/api"
	"github.com/chrono-task/backend/internal/auth"
	"github.com/chrono-task/backend/internal/config"
	"github.com/chrono-task/backend/internal/db"
	"github.com/chrono-task/backend/internal/llm"
	"github.com/chrono-task/backend/internal/search"
	"github.com/chrono-task/backend/internal/transcript"
)

func main() {
	cfg := config.Load()

	// Ensure data directory exists
	os.MkdirAll(cfg.DataPath, 0755)

	// Initialize database
	database, err := db.NewSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	// Ensure admin user exists
	if err := database.EnsureAdmin(cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}
	log.Printf("Admin user ensured: %s", cfg.AdminUsername)

	// Initialize JWT service
	jwtService := auth.NewJWTService(cfg.JWTSecret)

	// Transcript acquisition pipeline
	transcripts := transcript.NewService(transcript.Options{
		MaxRetries:   cfg.TranscriptMaxRetries,
		InitialDelay: cfg.TranscriptRetryDelay,
		ProxyURL:     cfg.TranscriptProxy,
	})
	if cfg.TranscriptProxy != "" {
		log.Println("[transcript] upstream proxy configured")
	}

	// LLM clients. Model names can be overridden at runtime via settings.
	analyzer := llm.NewClient(cfg.MiniMaxAPIKey, cfg.MiniMaxBaseURL, cfg.MiniMaxModel, settingResolver(database, "minimax_model"))
	chatModel := llm.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel, settingResolver(database, "openai_model"))
	if !analyzer.Configured() {
		log.Println("[llm] MINIMAX_API_KEY not set, analysis endpoints will return errors")
	}
	if !chatModel.Configured() {
		log.Println("[llm] OPENAI_API_KEY not set, chat will return errors")
	}

	searcher := search.NewClient(cfg.BraveSearchAPIKey)

	// Create router
	router := api.NewRouter(database, jwtService, cfg, transcripts, analyzer, chatModel, searcher)

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Printf("Starting server on %s", addr)
	log.Printf("Data path: %s", cfg.DataPath)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("Shutting down...")
		os.Exit(0)
	}()

	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// settingResolver reads a model override from the settings table on each call
// so changes take effect without a restart.
func settingResolver(database *db.Database, key string) llm.ModelResolver {
	return func() string {
		return database.GetSetting(key, "")
	}
}

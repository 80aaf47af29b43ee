package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/chrono-task/backend/internal/api/handlers"
	"github.com/chrono-task/backend/internal/api/middleware"
	"github.com/chrono-task/backend/internal/auth"
	"github.com/chrono-task/backend/internal/config"
	"github.com/chrono-task/backend/internal/db"
	"github.com/chrono-task/backend/internal/llm"
	"github.com/chrono-task/backend/internal/search"
	"github.com/chrono-task/backend/internal/transcript"
)

const maxJSONBody = 1 << 20 // JSON request bodies, uploads are limited separately

func NewRouter(database *db.Database, jwtService *auth.JWTService, cfg *config.Config,
	transcripts *transcript.Service, analyzer *llm.Client, chatModel *llm.Client,
	searcher *search.Client) *chi.Mux {

	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger)
	r.Use(cors.Handler(middleware.CORSHandler(cfg.CORSOrigins)))

	// Handlers
	authHandler := handlers.NewAuthHandler(database, jwtService)
	transcriptHandler := handlers.NewTranscriptHandler(transcripts, cfg.Production)
	analyzeHandler := handlers.NewAnalyzeHandler(analyzer)
	askHandler := handlers.NewAskHandler(analyzer)
	chatHandler := handlers.NewChatHandler(chatModel, searcher)
	searchHandler := handlers.NewSearchHandler(searcher)
	uploadHandler := handlers.NewUploadHandler()
	libraryHandler := handlers.NewLibraryHandler(database)
	settingsHandler := handlers.NewSettingsHandler(database)

	// Upstream fetches and LLM calls are the expensive paths
	transcriptLimiter := middleware.NewRateLimiter(30, time.Minute)
	llmLimiter := middleware.NewRateLimiter(20, time.Minute)

	r.Route("/api", func(r chi.Router) {
		// Public
		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status":"ok"}`))
		})
		r.With(middleware.MaxBodySize(maxJSONBody)).Post("/auth/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(jwtService))

			// Auth
			r.Get("/auth/me", authHandler.Me)

			// Transcript acquisition
			r.With(transcriptLimiter.Handler).Get("/transcript", transcriptHandler.Get)

			// LLM
			r.Group(func(r chi.Router) {
				r.Use(middleware.MaxBodySize(maxJSONBody))
				r.With(llmLimiter.Handler).Post("/analyze", analyzeHandler.Analyze)
				r.Post("/ask", askHandler.Ask)
				r.Post("/chat", chatHandler.Chat)
			})

			// Web search
			r.With(middleware.MaxBodySize(maxJSONBody)).Post("/search", searchHandler.Search)

			// Document upload
			r.Post("/upload", uploadHandler.Upload)

			// Course library
			r.Group(func(r chi.Router) {
				r.Use(middleware.MaxBodySize(maxJSONBody))
				r.Get("/library", libraryHandler.List)
				r.Post("/library", libraryHandler.Save)
				r.Delete("/library/{id}", libraryHandler.Delete)
				r.Put("/library/{videoId}/progress", libraryHandler.UpdateProgress)
			})

			// Settings (admin only)
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole("admin"))
				r.Get("/settings", settingsHandler.GetSettings)
				r.With(middleware.MaxBodySize(maxJSONBody)).Put("/settings", settingsHandler.UpdateSettings)
			})
		})
	})

	return r
}

package config

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port          int
	DataPath      string
	DBPath        string
	JWTSecret     string
	AdminUsername string
	AdminPassword string
	CORSOrigins   []string
	Production    bool

	// LLM providers
	MiniMaxAPIKey  string
	MiniMaxBaseURL string
	MiniMaxModel   string
	OpenAIAPIKey   string
	OpenAIBaseURL  string
	OpenAIModel    string

	// Web search
	BraveSearchAPIKey string

	// Transcript acquisition
	TranscriptProxy      string
	TranscriptMaxRetries int
	TranscriptRetryDelay time.Duration
}

func Load() *Config {
	port, _ := strconv.Atoi(getEnv("PORT", "8080"))
	dataPath := getEnv("DATA_PATH", "/data")

	// JWT secret: require explicit setting or generate random
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			log.Fatalf("Failed to generate random JWT secret: %v", err)
		}
		jwtSecret = hex.EncodeToString(b)
		log.Println("WARNING: JWT_SECRET not set, using random secret. Sessions will not survive restarts. Set JWT_SECRET env var for persistent sessions.")
	}

	// CORS origins: comma-separated list or "*" (default)
	corsOrigins := []string{"*"}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		origins := strings.Split(v, ",")
		corsOrigins = make([]string, 0, len(origins))
		for _, o := range origins {
			o = strings.TrimSpace(o)
			if o != "" {
				corsOrigins = append(corsOrigins, o)
			}
		}
	}

	retries, _ := strconv.Atoi(getEnv("TRANSCRIPT_MAX_RETRIES", "3"))
	delayMs, _ := strconv.Atoi(getEnv("TRANSCRIPT_RETRY_DELAY_MS", "1000"))

	return &Config{
		Port:          port,
		DataPath:      dataPath,
		DBPath:        getEnv("DB_PATH", dataPath+"/chronotask.db"),
		JWTSecret:     jwtSecret,
		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin"),
		CORSOrigins:   corsOrigins,
		Production:    getEnv("ENVIRONMENT", "development") == "production",

		MiniMaxAPIKey:  os.Getenv("MINIMAX_API_KEY"),
		MiniMaxBaseURL: getEnv("MINIMAX_BASE_URL", "https://api.minimax.io/v1"),
		MiniMaxModel:   getEnv("MINIMAX_MODEL", "MiniMax-M2"),
		OpenAIAPIKey:   os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:  getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:    getEnv("OPENAI_MODEL", "gpt-4o-mini"),

		BraveSearchAPIKey: os.Getenv("BRAVE_SEARCH_API_KEY"),

		TranscriptProxy:      os.Getenv("YOUTUBE_TRANSCRIPT_PROXY"),
		TranscriptMaxRetries: retries,
		TranscriptRetryDelay: time.Duration(delayMs) * time.Millisecond,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

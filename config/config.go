package config

import (
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort    string
	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string
	RedisAddr     string // vacío: sesiones en memoria
	SessionTTL    time.Duration
	BotToken      string
}

// MustLoad reads configuration from the environment, after loading a .env
// file when one is present.
func MustLoad() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not load .env file", "error", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		slog.Warn("GEMINI_API_KEY is not set, tip suggestions will fail")
	}

	sessionTTL := 30 * time.Minute
	if ttlStr := os.Getenv("SESSION_TTL"); ttlStr != "" {
		if d, err := time.ParseDuration(ttlStr); err == nil && d > 0 {
			sessionTTL = d
		} else {
			slog.Warn("invalid SESSION_TTL, using default", "value", ttlStr, "default", sessionTTL)
		}
	}

	return Config{
		ServerPort:    ":" + port,
		GeminiAPIKey:  apiKey,
		GeminiModel:   os.Getenv("GEMINI_MODEL"),
		GeminiBaseURL: os.Getenv("GEMINI_BASE_URL"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		SessionTTL:    sessionTTL,
		BotToken:      os.Getenv("TELEGRAM_BOT_TOKEN"),
	}
}

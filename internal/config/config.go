package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	DatabaseURL string
	LogLevel    string

	// Public-facing base URL used to build media retrieval URLs.
	PublicBaseURL string
	MediaDir      string

	// Admin authentication
	AdminUsername     string
	AdminPasswordHash string
	SessionTTL        time.Duration

	// Content change watcher
	WatchPollInterval time.Duration
	WatchBatchSize    int
	QueryTimeout      time.Duration

	// Generative flows
	GenAIAPIKey string
	GenAIModel  string
}

func Load() Config {
	return Config{
		Port:              getEnv("PORT", "8080"),
		DatabaseURL:       getEnvRequired("DATABASE_URL"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		PublicBaseURL:     getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),
		MediaDir:          getEnv("MEDIA_DIR", "./media"),
		AdminUsername:     getEnv("ADMIN_USERNAME", "admin"),
		AdminPasswordHash: getEnvRequired("ADMIN_PASSWORD_HASH"),
		SessionTTL:        getEnvDuration("SESSION_TTL", 12*time.Hour),
		WatchPollInterval: getEnvDuration("WATCH_POLL_INTERVAL", 250*time.Millisecond),
		WatchBatchSize:    getEnvInt("WATCH_BATCH_SIZE", 100),
		QueryTimeout:      getEnvDuration("QUERY_TIMEOUT", 5*time.Second),
		GenAIAPIKey:       getEnv("GENAI_API_KEY", ""),
		GenAIModel:        getEnv("GENAI_MODEL", "gemini-2.5-flash"),
	}
}

func getEnvRequired(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic("required environment variable " + key + " is not set")
	}
	return v
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			slog.Warn("invalid integer env var, using default", "key", key, "value", v, "error", err)
			return fallback
		}
		return n
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			slog.Warn("invalid duration env var, using default", "key", key, "value", v, "error", err)
			return fallback
		}
		return d
	}
	return fallback
}

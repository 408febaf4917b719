package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Env         string
	FrontendURL string
	// OpenAI question generation. The credential itself is resolved through
	// pkg/secrets (explicit value, secrets file, then environment); an absent
	// key is not an error, the static fallback table keeps the assessment
	// flow working.
	OpenAIModel          string
	OpenAITimeoutSeconds int
	SecretsFile          string
	// Redis configuration (optional, rate limiting only)
	RedisURL      string
	RedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds       int
	RateLimitGlobalThreshold     int
	RateLimitGenerationThreshold int
	// Session housekeeping
	SessionIdleMinutes int
}

func LoadConfig() (*Config, error) {
	// Load .env file (effective locally, ignored in production when absent)
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Env:         strings.ToLower(getEnv("ENV", "development")),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		OpenAIModel:          getEnv("OPENAI_MODEL", ""),
		OpenAITimeoutSeconds: getEnvInt("OPENAI_TIMEOUT_SECONDS", 30),
		SecretsFile:          getEnv("SECRETS_FILE", ""),
		// Redis
		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		// Rate limiting (with sensible defaults)
		RateLimitWindowSeconds:       getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitGlobalThreshold:     getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),
		RateLimitGenerationThreshold: getEnvInt("RATE_LIMIT_GENERATION_THRESHOLD", 10),
		// Sessions idle longer than this are garbage collected
		SessionIdleMinutes: getEnvInt("SESSION_IDLE_MINUTES", 120),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

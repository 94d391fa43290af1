package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              string
	DatabaseURL       string
	OpenRouterAPIKey  string
	OpenRouterBaseURL string
	LLMModel          string
	AnthropicAPIKey   string
	UploadDir         string
	UploadMaxBytes    int64
}

const (
	defaultPort           = "5000"
	defaultBaseURL        = "https://openrouter.ai/api/v1"
	defaultModel          = "google/gemini-2.5-flash"
	defaultUploadDir      = "uploads"
	defaultUploadMaxBytes = 20 << 20 // 20 MB
)

// Load reads configuration from the environment, with .env support for
// local development.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("[INFO] No .env file loaded: %v", err)
	}

	return Config{
		Port:              getEnv("PORT", defaultPort),
		DatabaseURL:       os.Getenv("DB_URL"),
		OpenRouterAPIKey:  os.Getenv("OPENROUTER_API_KEY"),
		OpenRouterBaseURL: getEnv("OPENROUTER_BASE_URL", defaultBaseURL),
		LLMModel:          getEnv("LLM_MODEL", defaultModel),
		AnthropicAPIKey:   os.Getenv("ANTHROPIC_API_KEY"),
		UploadDir:         getEnv("UPLOAD_DIR", defaultUploadDir),
		UploadMaxBytes:    getEnvInt64("UPLOAD_MAX_BYTES", defaultUploadMaxBytes),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		log.Printf("[ERROR] Invalid %s value %q, using default", key, raw)
		return fallback
	}
	return value
}

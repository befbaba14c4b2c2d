package config

import (
	"os"
	"strconv"

	apperrors "bouncer/internal/errors"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort       string
	PostgresDSN      string
	RedisAddr        string
	RedisDB          int
	RedisPass        string
	JWTSecret        string
	InferenceBaseURL string
	ResendAPIKey     string
	AlertRelayURL    string
	AlertFrom        string
	AlertTo          string
	LogLevel         string
	SwaggerHost      string
}

// Load builds Config from environment with sensible defaults. Required values
// are checked separately by Validate.
func Load() *Config {
	return &Config{
		ServerPort:       getEnv("SERVER_PORT", "8080"),
		PostgresDSN:      os.Getenv("POSTGRES_DSN"),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:          getEnvInt("REDIS_DB", 0),
		RedisPass:        os.Getenv("REDIS_PASSWORD"),
		JWTSecret:        getEnv("JWT_SECRET", "change-me"),
		InferenceBaseURL: os.Getenv("INFERENCE_BASE_URL"),
		ResendAPIKey:     os.Getenv("RESEND_API_KEY"),
		AlertRelayURL:    os.Getenv("ALERT_RELAY_URL"),
		AlertFrom:        getEnv("ALERT_FROM", "Bouncer Risk Alert <noreply@bouncer.app>"),
		AlertTo:          getEnv("ALERT_TO", "security@bouncer.app"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		SwaggerHost:      os.Getenv("SWAGGER_HOST"),
	}
}

// Validate reports every missing required value in one error so operators can
// fix the environment in a single pass. A missing value is fatal, not retried.
func (c *Config) Validate() error {
	var missing []string
	if c.PostgresDSN == "" {
		missing = append(missing, "POSTGRES_DSN")
	}
	if c.InferenceBaseURL == "" {
		missing = append(missing, "INFERENCE_BASE_URL")
	}
	if c.ResendAPIKey == "" {
		missing = append(missing, "RESEND_API_KEY")
	}
	if len(missing) > 0 {
		return apperrors.NewConfigError(missing...)
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const devSecretKey = "dev-secret-key-change-me"

type Config struct {
	Port        string
	Env         string
	DBPath      string
	SecretKey   string
	SessionTTL  time.Duration
	TokenTTL    time.Duration
	CORSOrigins string
	LogLevel    string
}

var AppConfig *Config

var ErrSecretKeyRequired = errors.New("SECRET_KEY is required in production")

// Load reads .env (if present) and the environment into AppConfig.
func Load() error {
	_ = godotenv.Load()

	sessionTTL, err := GetDuration("SESSION_TTL", 7*24*time.Hour)
	if err != nil {
		return err
	}
	tokenTTL, err := GetDuration("TOKEN_TTL", 24*time.Hour)
	if err != nil {
		return err
	}

	cfg := &Config{
		Port:        GetEnv("PORT", "5000"),
		Env:         GetEnv("ENV", "development"),
		DBPath:      GetEnv("DB_PATH", "./instance/notes.db"),
		SecretKey:   GetEnv("SECRET_KEY", ""),
		SessionTTL:  sessionTTL,
		TokenTTL:    tokenTTL,
		CORSOrigins: GetEnv("CORS_ORIGINS", "*"),
		LogLevel:    GetEnv("LOG_LEVEL", "info"),
	}

	if cfg.SecretKey == "" {
		if cfg.IsProduction() {
			return ErrSecretKeyRequired
		}
		cfg.SecretKey = devSecretKey
	}

	AppConfig = cfg
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetDuration parses a Go duration such as "168h" or "30m".
func GetDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be positive", key, value)
	}
	return d, nil
}

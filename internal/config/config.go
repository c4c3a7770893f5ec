package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultDatabaseURL     = "tennis.db?_journal_mode=WAL&_foreign_keys=on"
	defaultServerPort      = 8080
	defaultShutdownTimeout = 15 * time.Second
)

type Config struct {
	DatabaseURL        string
	ServerPort         int
	PhoneEncryptionKey string
	CORSAllowedOrigins []string
	LogLevel           slog.Level
	ShutdownTimeout    time.Duration
}

// Load reads the configuration from the environment, after pulling in a .env file
// when one is present.
func Load() (*Config, error) {
	// A missing .env file is normal outside local development
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:        getEnvOrDefault("DATABASE_URL", defaultDatabaseURL),
		ServerPort:         defaultServerPort,
		PhoneEncryptionKey: os.Getenv("PHONE_ENCRYPTION_KEY"),
		CORSAllowedOrigins: []string{"*"},
		LogLevel:           slog.LevelInfo,
		ShutdownTimeout:    defaultShutdownTimeout,
	}

	if portStr := os.Getenv("SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
		}
		if port <= 0 || port > 65535 {
			return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
		}
		cfg.ServerPort = port
	}

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		cfg.CORSAllowedOrigins = splitList(origins)
		if len(cfg.CORSAllowedOrigins) == 0 {
			return nil, fmt.Errorf("CORS_ALLOWED_ORIGINS contains no origins")
		}
	}

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL environment variable: %w", err)
		}
	}

	if timeout := os.Getenv("SHUTDOWN_TIMEOUT"); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT environment variable: %w", err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %s", d)
		}
		cfg.ShutdownTimeout = d
	}

	return cfg, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.ServerPort)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

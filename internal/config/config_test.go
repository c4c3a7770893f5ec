package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("PHONE_ENCRYPTION_KEY", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("SHUTDOWN_TIMEOUT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, defaultDatabaseURL, cfg.DatabaseURL)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Empty(t, cfg.PhoneEncryptionKey)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, 15*time.Second, cfg.ShutdownTimeout)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://tennis@localhost/tennis?sslmode=disable")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("PHONE_ENCRYPTION_KEY", "secret")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres://tennis@localhost/tennis?sslmode=disable", cfg.DatabaseURL)
	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, "secret", cfg.PhoneEncryptionKey)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
}

func TestLoadInvalid(t *testing.T) {
	testCases := []struct {
		name  string
		key   string
		value string
	}{
		{name: "non-numeric port", key: "SERVER_PORT", value: "http"},
		{name: "port out of range", key: "SERVER_PORT", value: "70000"},
		{name: "unknown log level", key: "LOG_LEVEL", value: "loud"},
		{name: "bad shutdown timeout", key: "SHUTDOWN_TIMEOUT", value: "soon"},
		{name: "negative shutdown timeout", key: "SHUTDOWN_TIMEOUT", value: "-1s"},
		{name: "empty origin list", key: "CORS_ALLOWED_ORIGINS", value: " , "},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

package config

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	unsetEnv(t, "ANILIST_URL", "LISTEN_ADDR", "YOUTUBE_API_KEY", "HTTP_TIMEOUT_SECONDS", "SECURE_COOKIES", "CORS_ALLOWED_ORIGINS", "LOG_LEVEL", "SESSION_SECRET", "YOUTUBE_URL")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://graphql.anilist.co", cfg.Anilist.URL)
	assert.Equal(t, ":8080", cfg.AnimeDV.ListenAddr)
	assert.Equal(t, "", cfg.YouTube.APIKey)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("YOUTUBE_API_KEY", "from-env")
	t.Setenv("LISTEN_ADDR", ":9999")
	t.Setenv("HTTP_TIMEOUT_SECONDS", "3")
	t.Setenv("SECURE_COOKIES", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.YouTube.APIKey)
	assert.Equal(t, ":9999", cfg.AnimeDV.ListenAddr)
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout())
	assert.True(t, cfg.AnimeDV.SecureCookies)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins())
}

func TestGetLogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"error":   slog.LevelError,
		"warning": slog.LevelWarn,
		"INFO":    slog.LevelInfo,
		"debug":   slog.LevelDebug,
		"chatty":  slog.LevelInfo,
	}
	for in, want := range cases {
		cfg := Config{AnimeDV: AnimeDVConfig{LogLevel: in}}
		assert.Equal(t, want, cfg.GetLogLevel().Level(), in)
	}
}

func TestHTTPTimeout_NonPositiveDisables(t *testing.T) {
	cfg := Config{AnimeDV: AnimeDVConfig{HTTPTimeoutSeconds: 0}}
	assert.Equal(t, time.Duration(0), cfg.HTTPTimeout())
}

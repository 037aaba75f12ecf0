package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/golobby/config/v3"
	"github.com/golobby/config/v3/pkg/feeder"

	"github.com/marcus-crane/animedv/anilist"
	"github.com/marcus-crane/animedv/youtube"
)

type Config struct {
	Anilist AnilistConfig
	AnimeDV AnimeDVConfig
	YouTube YouTubeConfig
}

type AnilistConfig struct {
	URL string `env:"ANILIST_URL"`
}

type AnimeDVConfig struct {
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS"`
	HTTPTimeoutSeconds int    `env:"HTTP_TIMEOUT_SECONDS"`
	ListenAddr         string `env:"LISTEN_ADDR"`
	LogLevel           string `env:"LOG_LEVEL"`
	SecureCookies      bool   `env:"SECURE_COOKIES"`
	SessionSecret      string `env:"SESSION_SECRET"`
}

// YouTubeConfig holds the video search credential. It only ever comes from
// the environment; leaving it unset disables trailer lookups.
type YouTubeConfig struct {
	APIKey string `env:"YOUTUBE_API_KEY"`
	URL    string `env:"YOUTUBE_URL"`
}

func Default() Config {
	return Config{
		Anilist: AnilistConfig{
			URL: anilist.GraphqlEndpoint,
		},
		AnimeDV: AnimeDVConfig{
			CORSAllowedOrigins: "http://localhost:8080",
			HTTPTimeoutSeconds: 10,
			ListenAddr:         ":8080",
			LogLevel:           "info",
		},
		YouTube: YouTubeConfig{
			URL: youtube.DataAPIEndpoint,
		},
	}
}

// Load starts from Default and overrides anything set in the environment.
func Load() (Config, error) {
	cfg := Default()
	err := config.New().
		AddFeeder(feeder.Env{}).
		AddStruct(&cfg).
		Feed()
	return cfg, err
}

func (c *Config) GetLogLevel() slog.Leveler {
	logLevel := strings.ToLower(c.AnimeDV.LogLevel)
	if logLevel == "error" {
		return slog.LevelError
	}
	if logLevel == "warning" {
		return slog.LevelWarn
	}
	if logLevel == "info" {
		return slog.LevelInfo
	}
	if logLevel == "debug" {
		return slog.LevelDebug
	}
	// default to info if unknown
	slog.With(slog.String("log_level", logLevel)).Info("Received invalid log level. Defaulting to INFO.")
	return slog.LevelInfo
}

func (c *Config) HTTPTimeout() time.Duration {
	if c.AnimeDV.HTTPTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.AnimeDV.HTTPTimeoutSeconds) * time.Second
}

func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.AnimeDV.CORSAllowedOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

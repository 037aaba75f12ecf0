package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/joho/godotenv"

	"github.com/marcus-crane/animedv/anilist"
	"github.com/marcus-crane/animedv/config"
	"github.com/marcus-crane/animedv/events"
	"github.com/marcus-crane/animedv/lookup"
	"github.com/marcus-crane/animedv/ui"
	"github.com/marcus-crane/animedv/youtube"
)

func main() {

	if err := godotenv.Load(); err != nil {
		fmt.Println(err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.GetLogLevel(),
	})))

	secret := []byte(cfg.AnimeDV.SessionSecret)
	if len(secret) == 0 {
		secret = securecookie.GenerateRandomKey(32)
		slog.Warn("SESSION_SECRET is not set. Theme preferences will reset on restart.")
	}

	catalog := anilist.NewClient(cfg.HTTPTimeout())
	catalog.BaseURL = cfg.Anilist.URL

	trailers := youtube.NewClient(cfg.YouTube.APIKey, cfg.HTTPTimeout())
	trailers.BaseURL = cfg.YouTube.URL
	if cfg.YouTube.APIKey == "" {
		slog.Warn("YOUTUBE_API_KEY is not set. Trailer lookups are disabled.")
	}

	hub := events.New()

	service := lookup.NewService(catalog, catalog, trailers)
	service.Events = hub

	renderer, err := ui.NewRenderer()
	if err != nil {
		panic(err)
	}

	s := &server{
		service:  service,
		themes:   ui.NewThemes(secret, cfg.AnimeDV.SecureCookies),
		renderer: renderer,
		hub:      hub,
	}

	srv := &http.Server{
		Addr:              cfg.AnimeDV.ListenAddr,
		Handler:           RegisterRoutes(http.NewServeMux(), s, cfg.AllowedOrigins()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("animedv is running", slog.String("addr", cfg.AnimeDV.ListenAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server stopped unexpectedly", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c
	slog.Info("Gracefully shutting down...")

	// Event streams never finish on their own so close them before draining
	hub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Failed to shut down cleanly", slog.String("error", err.Error()))
	}

	slog.Info("animedv has successfully shut down.")
}

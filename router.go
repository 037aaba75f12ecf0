package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/cors"

	"github.com/marcus-crane/animedv/anilist"
	"github.com/marcus-crane/animedv/events"
	"github.com/marcus-crane/animedv/lookup"
	"github.com/marcus-crane/animedv/ui"
)

type server struct {
	service  *lookup.Service
	themes   *ui.Themes
	renderer *ui.Renderer
	hub      *events.Hub
}

func renderJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", slog.String("error", err.Error()))
	}
}

func renderJSONMessage(w http.ResponseWriter, status int, message string) {
	renderJSON(w, status, map[string]string{"message": message})
}

func RegisterRoutes(mux *http.ServeMux, s *server, allowedOrigins []string) http.Handler {

	mux.HandleFunc("GET /{$}", s.handleIndex)

	mux.HandleFunc("POST /theme", s.handleTheme)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		renderJSONMessage(w, http.StatusOK, "ok")
	})

	mux.HandleFunc("GET /api/v1", func(w http.ResponseWriter, r *http.Request) {
		renderJSONMessage(w, http.StatusOK, "This is the v1 endpoint of the API")
	})

	mux.HandleFunc("GET /api/v1/anime", func(w http.ResponseWriter, r *http.Request) {
		title := strings.TrimSpace(r.URL.Query().Get("title"))
		if title == "" {
			renderJSONMessage(w, http.StatusBadRequest, "A title did not appear to be provided")
			return
		}
		renderJSON(w, http.StatusOK, s.service.Search(r.Context(), title))
	})

	mux.HandleFunc("GET /api/v1/recommendations", func(w http.ResponseWriter, r *http.Request) {
		genre, err := anilist.ParseGenre(r.URL.Query().Get("genre"))
		if err != nil {
			renderJSONMessage(w, http.StatusBadRequest, "That genre is not supported")
			return
		}
		renderJSON(w, http.StatusOK, s.service.Recommend(r.Context(), string(genre)))
	})

	mux.HandleFunc("GET /api/v1/genres", func(w http.ResponseWriter, r *http.Request) {
		renderJSON(w, http.StatusOK, anilist.Genres)
	})

	mux.HandleFunc("GET /api/v1/sessions", func(w http.ResponseWriter, r *http.Request) {
		renderJSON(w, http.StatusOK, s.hub.Sessions())
	})

	mux.HandleFunc("GET /events", s.hub.Server.ServeHTTP)

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET"},
		AllowedHeaders: []string{"Origin", "Content-Type", "Accept"},
	})

	return logRequests(c.Handler(mux))
}

func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := ui.Page{
		Dark:          s.themes.IsDark(r),
		Query:         q.Get("title"),
		SelectedGenre: q.Get("genre"),
	}
	// Blank input never leaves the page
	if title := strings.TrimSpace(page.Query); title != "" {
		page.Searched = true
		page.Result = s.service.Search(r.Context(), title)
	}
	if q.Get("recommend") != "" {
		page.Recommended = true
		page.Recommendations = s.service.Recommend(r.Context(), page.SelectedGenre)
		page.SelectedGenre = page.Recommendations.Genre
	}
	var buf bytes.Buffer
	if err := s.renderer.Render(&buf, page); err != nil {
		slog.Error("Failed to render page", slog.String("error", err.Error()))
		http.Error(w, "Something went wrong rendering this page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

func (s *server) handleTheme(w http.ResponseWriter, r *http.Request) {
	if _, err := s.themes.Toggle(w, r); err != nil {
		slog.Error("Failed to save theme preference", slog.String("error", err.Error()))
	}
	http.Redirect(w, r, backTo(r), http.StatusSeeOther)
}

// backTo returns the local page the request came from so toggling the theme
// doesn't throw away the current search.
func backTo(r *http.Request) string {
	ref, err := url.Parse(r.Referer())
	if err != nil || ref.Path == "" || (ref.Host != "" && ref.Host != r.Host) {
		return "/"
	}
	if !strings.HasPrefix(ref.Path, "/") || strings.HasPrefix(ref.Path, "//") {
		return "/"
	}
	return (&url.URL{Path: ref.Path, RawQuery: ref.RawQuery}).String()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(status int) {
	sr.status = status
	sr.ResponseWriter.WriteHeader(status)
}

// Flush keeps the event stream working through the logger
func (sr *statusRecorder) Flush() {
	if f, ok := sr.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (sr *statusRecorder) Unwrap() http.ResponseWriter {
	return sr.ResponseWriter
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		w.Header().Set("X-Request-Id", requestID)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		slog.Info("HTTP request",
			slog.String("request_id", requestID),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rec.status),
			slog.Duration("duration", time.Since(start)),
			slog.String("remote_addr", r.RemoteAddr),
		)
	})
}

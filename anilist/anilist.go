package anilist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/marcus-crane/animedv/utils"
)

const (
	GraphqlEndpoint = "https://graphql.anilist.co"
)

var (
	ErrEmptyInput   = errors.New("anilist: empty search input")
	ErrNotFound     = errors.New("anilist: no matching media")
	ErrUnavailable  = errors.New("anilist: upstream unavailable")
	ErrMalformed    = errors.New("anilist: malformed response")
	ErrUnknownGenre = errors.New("anilist: unknown genre")
)

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(timeout time.Duration) *Client {
	return &Client{
		BaseURL:    GraphqlEndpoint,
		HTTPClient: utils.NewHTTPClient(timeout),
	}
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type GraphqlError struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func summarise(errs []GraphqlError) string {
	if len(errs) == 0 {
		return ""
	}
	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		messages = append(messages, e.Message)
	}
	return strings.Join(messages, "; ")
}

// query sends a single GraphQL request and decodes the envelope into out.
// Presence of the data payload is left for the caller to check.
func (c *Client) query(ctx context.Context, query string, variables map[string]any, out any) error {
	payload, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, "POST", c.BaseURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("%w: reading body: %w", ErrUnavailable, err)
	}
	if res.StatusCode >= http.StatusInternalServerError || res.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("%w: status %d", ErrUnavailable, res.StatusCode)
	}
	// AniList answers a missing Media with 404. Any other 4xx means it
	// rejected the query itself.
	if res.StatusCode >= http.StatusBadRequest && res.StatusCode != http.StatusNotFound {
		var rejected struct {
			Errors []GraphqlError `json:"errors"`
		}
		json.Unmarshal(body, &rejected)
		return fmt.Errorf("%w: status %d: %s", ErrMalformed, res.StatusCode, summarise(rejected.Errors))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: status %d: %w", ErrMalformed, res.StatusCode, err)
	}
	return nil
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, ErrEmptyInput):
		return "empty_input"
	case errors.Is(err, ErrUnknownGenre):
		return "unknown_genre"
	case errors.Is(err, ErrNotFound):
		return "upstream_empty"
	case errors.Is(err, ErrUnavailable):
		return "upstream_unavailable"
	case errors.Is(err, ErrMalformed):
		return "upstream_malformed"
	}
	return "unknown"
}

// logFailure records why a call collapsed into an empty result.
// A miss is routine, anything else points at the upstream or at us.
func logFailure(msg string, err error, attrs ...any) {
	attrs = append(attrs, slog.String("error", err.Error()), slog.String("kind", errorKind(err)))
	switch {
	case errors.Is(err, ErrEmptyInput):
		slog.Debug(msg, attrs...)
	case errors.Is(err, ErrNotFound):
		slog.Info(msg, attrs...)
	case errors.Is(err, ErrUnknownGenre):
		slog.Warn(msg, attrs...)
	default:
		slog.Error(msg, attrs...)
	}
}

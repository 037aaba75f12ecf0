package youtube

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/googleapi/transport"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"

	"github.com/marcus-crane/animedv/utils"
)

const (
	DataAPIEndpoint = "https://youtube.googleapis.com/"
	watchURL       = "https://www.youtube.com/watch?v=%s"
)

var (
	ErrDisabled    = errors.New("youtube: no api key configured")
	ErrEmptyInput  = errors.New("youtube: empty search input")
	ErrNoResults   = errors.New("youtube: no matching video")
	ErrRejected    = errors.New("youtube: request rejected")
	ErrUnavailable = errors.New("youtube: upstream unavailable")
	ErrMalformed   = errors.New("youtube: malformed response")
)

type Client struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(apiKey string, timeout time.Duration) *Client {
	return &Client{
		APIKey:     apiKey,
		BaseURL:    DataAPIEndpoint,
		HTTPClient: utils.NewHTTPClient(timeout),
	}
}

type TrailerLink struct {
	VideoURL string `json:"video_url"`
}

// FindTrailer returns a watch link for the first short video matching
// "<title> trailer". Any failure is logged and reported as false.
func (c *Client) FindTrailer(ctx context.Context, title string) (TrailerLink, bool) {
	link, err := c.searchTrailer(ctx, title)
	if err != nil {
		attrs := []any{
			slog.String("title", title),
			slog.String("error", err.Error()),
			slog.String("kind", errorKind(err)),
		}
		switch {
		case errors.Is(err, ErrEmptyInput), errors.Is(err, ErrDisabled):
			slog.Debug("Skipped trailer search", attrs...)
		case errors.Is(err, ErrNoResults):
			slog.Info("Failed to find trailer", attrs...)
		default:
			slog.Error("Failed to find trailer", attrs...)
		}
		return TrailerLink{}, false
	}
	return link, true
}

// service builds a Data API client on top of our own HTTP client. The key
// is attached by a transport since option.WithAPIKey is ignored once a
// custom HTTP client is supplied.
func (c *Client) service(ctx context.Context) (*yt.Service, error) {
	base := c.HTTPClient
	if base == nil {
		base = http.DefaultClient
	}
	httpClient := &http.Client{
		Timeout:   base.Timeout,
		Transport: &transport.APIKey{Key: c.APIKey, Transport: base.Transport},
	}
	return yt.NewService(ctx,
		option.WithHTTPClient(httpClient),
		option.WithEndpoint(c.BaseURL),
	)
}

func (c *Client) searchTrailer(ctx context.Context, title string) (TrailerLink, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return TrailerLink{}, ErrEmptyInput
	}
	if c.APIKey == "" {
		return TrailerLink{}, ErrDisabled
	}
	svc, err := c.service(ctx)
	if err != nil {
		return TrailerLink{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	res, err := svc.Search.List([]string{"snippet"}).
		Q(fmt.Sprintf("%s trailer", title)).
		Type("video").
		VideoDuration("short").
		Context(ctx).
		Do()
	if err != nil {
		return TrailerLink{}, classify(err, c.APIKey)
	}
	if len(res.Items) == 0 {
		return TrailerLink{}, fmt.Errorf("%w: %q", ErrNoResults, title)
	}
	first := res.Items[0]
	if first.Id == nil || first.Id.VideoId == "" {
		return TrailerLink{}, fmt.Errorf("%w: first item has no video id", ErrMalformed)
	}
	return TrailerLink{VideoURL: fmt.Sprintf(watchURL, url.QueryEscape(first.Id.VideoId))}, nil
}

// classify maps a failed Search.List call onto our error set. Anything that
// is neither an API error nor a transport error is a body we couldn't decode.
func classify(err error, apiKey string) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		if apiErr.Code >= http.StatusInternalServerError {
			return fmt.Errorf("%w: status %d", ErrUnavailable, apiErr.Code)
		}
		return fmt.Errorf("%w: status %d: %s", ErrRejected, apiErr.Code, redact(errors.New(apiErr.Message), apiKey))
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrUnavailable, redact(err, apiKey))
	}
	return fmt.Errorf("%w: %w", ErrMalformed, redact(err, apiKey))
}

// redact strips the api key out of transport errors, which embed the full URL.
func redact(err error, apiKey string) error {
	if apiKey == "" || !strings.Contains(err.Error(), apiKey) {
		return err
	}
	return errors.New(strings.ReplaceAll(err.Error(), apiKey, "REDACTED"))
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, ErrDisabled):
		return "disabled"
	case errors.Is(err, ErrEmptyInput):
		return "empty_input"
	case errors.Is(err, ErrNoResults):
		return "upstream_empty"
	case errors.Is(err, ErrRejected):
		return "upstream_rejected"
	case errors.Is(err, ErrUnavailable):
		return "upstream_unavailable"
	case errors.Is(err, ErrMalformed):
		return "upstream_malformed"
	}
	return "unknown"
}

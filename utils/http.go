package utils

import (
	"log/slog"
	"net/http"
	"time"

	"moul.io/http2curl"
)

const (
	UserAgent = "animedv/1.0 <github.com/marcus-crane/animedv>"
)

// Query parameters that carry credentials and must never show up in logs
var redactedParams = []string{"key", "access_token"}

type UARoundtripper struct {
	RT http.RoundTripper
}

func (uart *UARoundtripper) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.Header.Set("User-Agent", UserAgent)
	if slog.Default().Enabled(r.Context(), slog.LevelDebug) {
		if command, err := CurlCommand(r); err == nil {
			slog.Debug("Sending upstream request", slog.String("curl", command))
		}
	}
	rt := uart.RT
	if rt == nil {
		rt = http.DefaultTransport
	}
	return rt.RoundTrip(r)
}

func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: &UARoundtripper{},
		Timeout:   timeout,
	}
}

// CurlCommand renders req as a curl invocation with credentials redacted.
// The body of req is left untouched as long as the request supports GetBody.
func CurlCommand(req *http.Request) (string, error) {
	dup := req.Clone(req.Context())
	dup.Body = nil
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return "", err
		}
		dup.Body = body
	}
	query := dup.URL.Query()
	for _, param := range redactedParams {
		if query.Has(param) {
			query.Set(param, "REDACTED")
		}
	}
	dup.URL.RawQuery = query.Encode()
	command, err := http2curl.GetCurlCommand(dup)
	if err != nil {
		return "", err
	}
	return command.String(), nil
}

package anilist

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

const mediaQuery = `query ($animeName: String) {
  Media (search: $animeName, type: ANIME) {
    title {
      romaji
      english
      native
    }
    coverImage {
      large
    }
    description
    genres
    episodes
    averageScore
    trending
    siteUrl
  }
}`

// LookupMedia returns AniList's best match for title. Every failure,
// including the title simply not existing, is logged and reported as false.
func (c *Client) LookupMedia(ctx context.Context, title string) (*MediaRecord, bool) {
	record, err := c.fetchMedia(ctx, title)
	if err != nil {
		logFailure("Failed to look up anime", err, slog.String("title", title))
		return nil, false
	}
	return record, true
}

func (c *Client) fetchMedia(ctx context.Context, title string) (*MediaRecord, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyInput
	}
	var res MediaResponse
	if err := c.query(ctx, mediaQuery, map[string]any{"animeName": title}, &res); err != nil {
		return nil, err
	}
	if res.Data == nil || res.Data.Media == nil {
		if msg := summarise(res.Errors); msg != "" {
			return nil, fmt.Errorf("%w: %q: %s", ErrNotFound, title, msg)
		}
		return nil, fmt.Errorf("%w: %q", ErrNotFound, title)
	}
	return res.Data.Media.record(), nil
}

package anilist

import (
	"context"
	"fmt"
	"log/slog"
)

const PageSize = 10

const recommendationQuery = `query ($genre: String, $perPage: Int) {
  Page (perPage: $perPage) {
    media (genre: $genre, type: ANIME) {
      title {
        romaji
        english
      }
      coverImage {
        large
      }
      siteUrl
    }
  }
}`

// Recommend lists up to PageSize titles tagged with genre in AniList's own
// order. Genres outside Genres are rejected without contacting AniList.
// The result is never nil.
func (c *Client) Recommend(ctx context.Context, genre string) []Recommendation {
	items, err := c.fetchRecommendations(ctx, genre)
	if err != nil {
		logFailure("Failed to fetch recommendations", err, slog.String("genre", genre))
		return []Recommendation{}
	}
	return items
}

func (c *Client) fetchRecommendations(ctx context.Context, genre string) ([]Recommendation, error) {
	g, err := ParseGenre(genre)
	if err != nil {
		return nil, err
	}
	var res PageResponse
	variables := map[string]any{"genre": string(g), "perPage": PageSize}
	if err := c.query(ctx, recommendationQuery, variables, &res); err != nil {
		return nil, err
	}
	if res.Data == nil || res.Data.Page == nil || len(res.Data.Page.Media) == 0 {
		return nil, fmt.Errorf("%w: genre %q", ErrNotFound, g)
	}
	media := res.Data.Page.Media
	if len(media) > PageSize {
		media = media[:PageSize]
	}
	items := make([]Recommendation, 0, len(media))
	for _, m := range media {
		items = append(items, m.recommendation())
	}
	return items, nil
}

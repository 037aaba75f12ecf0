package anilist

import (
	"fmt"
	"strings"
)

type Genre string

const (
	Action    Genre = "Action"
	Adventure Genre = "Adventure"
	Comedy    Genre = "Comedy"
	Drama     Genre = "Drama"
	Fantasy   Genre = "Fantasy"
	Horror    Genre = "Horror"
	Romance   Genre = "Romance"
	SciFi     Genre = "Sci-Fi"
)

// Genres is the closed set offered for recommendations, in display order.
var Genres = []Genre{Action, Adventure, Comedy, Drama, Fantasy, Horror, Romance, SciFi}

// ParseGenre matches s case-insensitively against Genres and returns the
// canonical spelling AniList expects.
func ParseGenre(s string) (Genre, error) {
	s = strings.TrimSpace(s)
	for _, g := range Genres {
		if strings.EqualFold(string(g), s) {
			return g, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownGenre, s)
}

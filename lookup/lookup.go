package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/marcus-crane/animedv/anilist"
	"github.com/marcus-crane/animedv/events"
	"github.com/marcus-crane/animedv/youtube"
)

type MediaFinder interface {
	LookupMedia(ctx context.Context, title string) (*anilist.MediaRecord, bool)
}

type Recommender interface {
	Recommend(ctx context.Context, genre string) []anilist.Recommendation
}

type TrailerFinder interface {
	FindTrailer(ctx context.Context, title string) (youtube.TrailerLink, bool)
}

type Publisher interface {
	Publish(stream string, id string, data []byte)
}

type Kind string

const (
	TitleSearch Kind = "title"
	GenreSearch Kind = "genre"
)

type Query struct {
	Text string
	Kind Kind
}

// Result holds the outcome of a title search. Media and Trailer are
// independent: a missing trailer says nothing about the metadata.
type Result struct {
	Query   string               `json:"query"`
	Media   *anilist.MediaRecord `json:"media"`
	Trailer *youtube.TrailerLink `json:"trailer"`
}

type Recommendations struct {
	Genre string                   `json:"genre"`
	Items []anilist.Recommendation `json:"items"`
}

// Activity is broadcast on the lookups stream whenever a search completes.
type Activity struct {
	ID    string    `json:"id"`
	Kind  Kind      `json:"kind"`
	Query string    `json:"query"`
	Found bool      `json:"found"`
	At    time.Time `json:"at"`
}

type Service struct {
	Media       MediaFinder
	Recommender Recommender
	Trailers    TrailerFinder
	Events      Publisher

	now func() time.Time
}

func NewService(media MediaFinder, recommender Recommender, trailers TrailerFinder) *Service {
	return &Service{
		Media:       media,
		Recommender: recommender,
		Trailers:    trailers,
		now:         time.Now,
	}
}

// Search looks up title and, only when the catalog knows it, its trailer.
// Blank input returns an empty Result without touching either upstream.
func (s *Service) Search(ctx context.Context, title string) Result {
	title = strings.TrimSpace(title)
	result := Result{Query: title}
	if title == "" {
		return result
	}
	media, ok := s.Media.LookupMedia(ctx, title)
	if ok {
		result.Media = media
		if trailer, found := s.Trailers.FindTrailer(ctx, title); found {
			result.Trailer = &trailer
		}
	}
	s.publish(Query{Text: title, Kind: TitleSearch}, ok)
	return result
}

func (s *Service) Recommend(ctx context.Context, genre string) Recommendations {
	name := strings.TrimSpace(genre)
	if g, err := anilist.ParseGenre(name); err == nil {
		name = string(g)
	}
	items := s.Recommender.Recommend(ctx, name)
	s.publish(Query{Text: name, Kind: GenreSearch}, len(items) > 0)
	return Recommendations{Genre: name, Items: items}
}

func (s *Service) publish(q Query, found bool) {
	if s.Events == nil {
		return
	}
	now := time.Now
	if s.now != nil {
		now = s.now
	}
	at := now().UTC()
	activity := Activity{
		ID:    activityID(q, at),
		Kind:  q.Kind,
		Query: q.Text,
		Found: found,
		At:    at,
	}
	data, err := json.Marshal(activity)
	if err != nil {
		slog.Error("Failed to encode activity", slog.String("error", err.Error()))
		return
	}
	s.Events.Publish(events.LookupStream, activity.ID, data)
}

func activityID(q Query, at time.Time) string {
	key := fmt.Sprintf("%s-%s-%d", q.Kind, q.Text, at.UnixNano())
	return strconv.FormatUint(xxhash.Sum64String(key), 16)
}

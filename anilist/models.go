package anilist

import "strings"

type MediaResponse struct {
	Data   *MediaData     `json:"data"`
	Errors []GraphqlError `json:"errors"`
}

type MediaData struct {
	Media *Media `json:"Media"`
}

type PageResponse struct {
	Data   *PageData      `json:"data"`
	Errors []GraphqlError `json:"errors"`
}

type PageData struct {
	Page *Page `json:"Page"`
}

type Page struct {
	Media []Media `json:"media"`
}

type Media struct {
	Title        MediaTitle `json:"title"`
	CoverImage   MediaCover `json:"coverImage"`
	Description  string     `json:"description"`
	Genres       []string   `json:"genres"`
	Episodes     *int       `json:"episodes"`
	AverageScore *int       `json:"averageScore"`
	Trending     *int       `json:"trending"`
	SiteURL      string     `json:"siteUrl"`
}

type MediaTitle struct {
	Romaji  string  `json:"romaji"`
	English *string `json:"english"`
	Native  string  `json:"native"`
}

type MediaCover struct {
	Large string `json:"large"`
}

// MediaRecord is a single title search result flattened for display.
// Optional fields stay nil when AniList doesn't know them.
type MediaRecord struct {
	Title        string   `json:"title"`
	CoverImage   string   `json:"cover_image"`
	Description  string   `json:"description"`
	Genres       []string `json:"genres"`
	Episodes     *int     `json:"episodes"`
	AverageScore *int     `json:"average_score"`
	Trending     *int     `json:"trending"`
	URL          string   `json:"url"`
}

func (m MediaRecord) GenreList() string {
	return strings.Join(m.Genres, ", ")
}

type Recommendation struct {
	RomajiTitle  string  `json:"romaji_title"`
	EnglishTitle *string `json:"english_title"`
	CoverImage   string  `json:"cover_image"`
	URL          string  `json:"url"`
}

// DisplayTitle prefers romaji, falling back to native. The English title is
// requested but deliberately not consulted here.
func (t MediaTitle) DisplayTitle() string {
	if t.Romaji != "" {
		return t.Romaji
	}
	return t.Native
}

func (m Media) record() *MediaRecord {
	genres := m.Genres
	if genres == nil {
		genres = []string{}
	}
	return &MediaRecord{
		Title:        m.Title.DisplayTitle(),
		CoverImage:   m.CoverImage.Large,
		Description:  m.Description,
		Genres:       genres,
		Episodes:     m.Episodes,
		AverageScore: m.AverageScore,
		Trending:     m.Trending,
		URL:          m.SiteURL,
	}
}

func (m Media) recommendation() Recommendation {
	return Recommendation{
		RomajiTitle:  m.Title.Romaji,
		EnglishTitle: m.Title.English,
		CoverImage:   m.CoverImage.Large,
		URL:          m.SiteURL,
	}
}

package ui

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcus-crane/animedv/anilist"
	"github.com/marcus-crane/animedv/lookup"
	"github.com/marcus-crane/animedv/youtube"
)

func render(t *testing.T, page Page) string {
	t.Helper()
	r, err := NewRenderer()
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, page))
	return buf.String()
}

func knownAnime() *anilist.MediaRecord {
	score := 78
	return &anilist.MediaRecord{
		Title:        "KnownAnimeX",
		CoverImage:   "https://example.com/x.png",
		Description:  "A story.<br><br><i>(Source: Somewhere)</i>",
		Genres:       []string{"Action", "Comedy"},
		AverageScore: &score,
		URL:          "https://anilist.co/anime/999999",
	}
}

func TestRender_MetadataWithoutTrailer(t *testing.T) {
	t.Parallel()
	out := render(t, Page{
		Query:    "KnownAnimeX",
		Searched: true,
		Result:   lookup.Result{Query: "KnownAnimeX", Media: knownAnime()},
	})

	assert.Contains(t, out, "Title: KnownAnimeX")
	assert.Contains(t, out, "Genres: Action, Comedy")
	assert.Contains(t, out, "Episodes: unknown")
	assert.Contains(t, out, "Score: 78")
	assert.Contains(t, out, "(Source: Somewhere)")
	assert.NotContains(t, out, "&lt;br&gt;")
	assert.Contains(t, out, `href="https://anilist.co/anime/999999"`)
	assert.Contains(t, out, "Trailer not found.")
	assert.NotContains(t, out, "No anime found for that title.")
}

func TestRender_MetadataWithTrailer(t *testing.T) {
	t.Parallel()
	out := render(t, Page{
		Searched: true,
		Result: lookup.Result{
			Query:   "KnownAnimeX",
			Media:   knownAnime(),
			Trailer: &youtube.TrailerLink{VideoURL: "https://www.youtube.com/watch?v=abc"},
		},
	})

	assert.Contains(t, out, "Watch Trailer:")
	assert.Contains(t, out, `href="https://www.youtube.com/watch?v=abc"`)
	assert.NotContains(t, out, "Trailer not found.")
}

func TestRender_UnknownTitle(t *testing.T) {
	t.Parallel()
	out := render(t, Page{Searched: true, Result: lookup.Result{Query: "nope"}})

	assert.Contains(t, out, "No anime found for that title.")
	assert.NotContains(t, out, "Trailer not found.")
}

func TestRender_NoSearchShowsNoResultSection(t *testing.T) {
	t.Parallel()
	out := render(t, Page{})

	assert.NotContains(t, out, `id="result"`)
	assert.NotContains(t, out, `id="recommendations"`)
	for _, g := range anilist.Genres {
		assert.Contains(t, out, `<option value="`+string(g)+`"`)
	}
	assert.Contains(t, out, `class="light"`)
}

func TestRender_Recommendations(t *testing.T) {
	t.Parallel()
	out := render(t, Page{
		Dark:          true,
		SelectedGenre: "Horror",
		Recommended:   true,
		Recommendations: lookup.Recommendations{
			Genre: "Horror",
			Items: []anilist.Recommendation{
				{RomajiTitle: "Shiki", CoverImage: "https://example.com/shiki.png", URL: "https://anilist.co/anime/7724"},
			},
		},
	})

	assert.Contains(t, out, "Recommendations for Genre: Horror")
	assert.Contains(t, out, "Shiki")
	assert.Contains(t, out, `<option value="Horror" selected>`)
	assert.Contains(t, out, `class="dark"`)
}

func TestRender_EmptyRecommendations(t *testing.T) {
	t.Parallel()
	out := render(t, Page{
		Recommended:     true,
		Recommendations: lookup.Recommendations{Genre: "Horror", Items: []anilist.Recommendation{}},
	})

	assert.Contains(t, out, "No anime found in this genre.")
}

func TestPlainText(t *testing.T) {
	t.Parallel()
	cases := map[string]struct {
		in   string
		want string
	}{
		"empty":      {in: "", want: ""},
		"plain":      {in: "Just words", want: "Just words"},
		"breaks":     {in: "One.<br><br>\n<i>(Source: Sunrise)</i>", want: "One.\n\n(Source: Sunrise)"},
		"entities":   {in: "Tom &amp; Jerry", want: "Tom & Jerry"},
		"formatting": {in: "<b>Bold</b> and <i>italic</i>", want: "Bold and italic"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, PlainText(tc.in))
		})
	}
}

func TestThemes_ToggleIsPerSession(t *testing.T) {
	t.Parallel()
	themes := NewThemes([]byte("0123456789abcdef0123456789abcdef"), false)

	first := httptest.NewRequest(http.MethodPost, "/theme", nil)
	assert.False(t, themes.IsDark(first))

	rec := httptest.NewRecorder()
	dark, err := themes.Toggle(rec, first)
	require.NoError(t, err)
	assert.True(t, dark)

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	same := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		same.AddCookie(c)
	}
	assert.True(t, themes.IsDark(same))

	other := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.False(t, themes.IsDark(other))

	rec = httptest.NewRecorder()
	dark, err = themes.Toggle(rec, same)
	require.NoError(t, err)
	assert.False(t, dark)
}

func TestThemes_TamperedCookieFallsBackToLight(t *testing.T) {
	t.Parallel()
	themes := NewThemes([]byte("0123456789abcdef0123456789abcdef"), false)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: sessionName, Value: "garbage"})
	assert.False(t, themes.IsDark(req))
}

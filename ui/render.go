package ui

import (
	"embed"
	"html/template"
	"io"
	"strconv"

	"github.com/marcus-crane/animedv/anilist"
	"github.com/marcus-crane/animedv/lookup"
)

//go:embed templates/*.html
var templates embed.FS

type Page struct {
	Dark bool

	Query    string
	Searched bool
	Result   lookup.Result

	Genres          []anilist.Genre
	SelectedGenre   string
	Recommended     bool
	Recommendations lookup.Recommendations
}

type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("index.html").Funcs(template.FuncMap{
		"optional": optional,
		"plain":    PlainText,
	}).ParseFS(templates, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{tmpl: tmpl}, nil
}

func (r *Renderer) Render(w io.Writer, page Page) error {
	if page.Genres == nil {
		page.Genres = anilist.Genres
	}
	return r.tmpl.ExecuteTemplate(w, "index.html", page)
}

// optional renders a value AniList may not know yet
func optional(v *int) string {
	if v == nil {
		return "unknown"
	}
	return strconv.Itoa(*v)
}

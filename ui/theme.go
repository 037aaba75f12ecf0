package ui

import (
	"net/http"

	"github.com/gorilla/sessions"
)

const (
	sessionName = "animedv-session"
	darkModeKey = "dark_mode"
)

// Themes stores the light/dark preference in a signed cookie so each
// browser session carries its own setting.
type Themes struct {
	store *sessions.CookieStore
}

func NewThemes(secret []byte, secure bool) *Themes {
	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   0,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &Themes{store: store}
}

func (t *Themes) IsDark(r *http.Request) bool {
	session, err := t.store.Get(r, sessionName)
	if err != nil {
		return false
	}
	dark, _ := session.Values[darkModeKey].(bool)
	return dark
}

// Toggle flips the preference for the requesting session and returns the new value.
func (t *Themes) Toggle(w http.ResponseWriter, r *http.Request) (bool, error) {
	// A stale or tampered cookie still hands back a fresh session alongside the error
	session, _ := t.store.Get(r, sessionName)
	dark, _ := session.Values[darkModeKey].(bool)
	session.Values[darkModeKey] = !dark
	if err := session.Save(r, w); err != nil {
		return dark, err
	}
	return !dark, nil
}

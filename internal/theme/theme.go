package theme

import (
	"net/http"
	"time"
)

// Theme is the light/dark display preference
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// DefaultCookieName is the cookie holding the preference
const DefaultCookieName = "theme"

const cookieMaxAge = 365 * 24 * time.Hour

// Parse maps anything other than "dark" to Light
func Parse(s string) Theme {
	if Theme(s) == Dark {
		return Dark
	}
	return Light
}

// Toggle returns the other theme
func (t Theme) Toggle() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

func (t Theme) IsDark() bool {
	return t == Dark
}

// Store reads and writes the preference cookie.
type Store struct {
	cookieName string
}

// NewStore creates a Store; an empty name uses DefaultCookieName.
func NewStore(cookieName string) *Store {
	if cookieName == "" {
		cookieName = DefaultCookieName
	}
	return &Store{cookieName: cookieName}
}

// FromRequest returns the saved theme, Light when none is saved.
func (s *Store) FromRequest(r *http.Request) Theme {
	c, err := r.Cookie(s.cookieName)
	if err != nil {
		return Light
	}
	return Parse(c.Value)
}

// Save persists t on the response
func (s *Store) Save(w http.ResponseWriter, t Theme) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    string(t),
		Path:     "/",
		MaxAge:   int(cookieMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Toggle flips the saved theme and returns the new value.
func (s *Store) Toggle(w http.ResponseWriter, r *http.Request) Theme {
	next := s.FromRequest(r).Toggle()
	s.Save(w, next)
	return next
}

package theme

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	assert.Equal(t, Dark, Parse("dark"))
	assert.Equal(t, Light, Parse("light"))
	assert.Equal(t, Light, Parse(""))
	assert.Equal(t, Light, Parse("DARK"))
	assert.Equal(t, Light, Parse("solarized"))
}

func TestToggle(t *testing.T) {
	assert.Equal(t, Dark, Light.Toggle())
	assert.Equal(t, Light, Dark.Toggle())
	assert.Equal(t, Light, Light.Toggle().Toggle())
}

func TestStore_FromRequest(t *testing.T) {
	store := NewStore("")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, Light, store.FromRequest(req), "no cookie")

	req.AddCookie(&http.Cookie{Name: DefaultCookieName, Value: "dark"})
	assert.Equal(t, Dark, store.FromRequest(req))
}

func TestStore_Toggle(t *testing.T) {
	store := NewStore("admin_theme")

	req := httptest.NewRequest(http.MethodPost, "/theme", nil)
	req.AddCookie(&http.Cookie{Name: "admin_theme", Value: "dark"})
	w := httptest.NewRecorder()

	got := store.Toggle(w, req)
	assert.Equal(t, Light, got)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "admin_theme", cookies[0].Name)
	assert.Equal(t, "light", cookies[0].Value)
	assert.Equal(t, "/", cookies[0].Path)
	assert.Positive(t, cookies[0].MaxAge)
}

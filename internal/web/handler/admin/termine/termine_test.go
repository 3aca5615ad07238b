package termine

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buehnenwerk/udo-story/internal/config"
	"github.com/buehnenwerk/udo-story/internal/db/controller/termin"
	"github.com/buehnenwerk/udo-story/internal/db/store"
	"github.com/buehnenwerk/udo-story/internal/web/flash"
)

type noOpViews struct{}

func (noOpViews) Load() error { return nil }

func (noOpViews) Render(w io.Writer, name string, _ interface{}, _ ...string) error {
	_, _ = io.WriteString(w, name)
	return nil
}

func newTestApp(t *testing.T) (*fiber.App, *store.Store) {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "database.sqlite"))
	require.NoError(t, err, "failed to open test store")

	t.Cleanup(func() { _ = st.Close() })

	app := fiber.New(fiber.Config{Views: noOpViews{}})

	var s Service
	s.Init(app, &config.Config{}, st)

	return app, st
}

func postForm(t *testing.T, app *fiber.App, target string, form url.Values) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req, -1)
	require.NoError(t, err, "app.Test failed")

	t.Cleanup(func() { _ = resp.Body.Close() })

	return resp
}

func flashCookie(resp *http.Response, name string) string {
	for _, sc := range resp.Header.Values("Set-Cookie") {
		if strings.HasPrefix(sc, name+"=") {
			return sc
		}
	}

	return ""
}

func validForm() url.Values {
	return url.Values{
		"datum":        {"2026-05-01"},
		"zeit":         {"19:30"},
		"venue":        {"Stadthalle"},
		"stadt":        {"Wien"},
		"beschreibung": {"Jubiläumskonzert"},
		"ticket_link":  {"https://tickets.example.com/wien"},
	}
}

func TestAddCreatesTermin(t *testing.T) {
	app, st := newTestApp(t)

	resp := postForm(t, app, Path+"/add", validForm())

	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, Path, resp.Header.Get("Location"))
	assert.Contains(t, flashCookie(resp, flash.SuccessCookie), url.QueryEscape(FlashAdded))

	termine, err := termin.All(st)
	require.NoError(t, err)
	require.Len(t, termine, 1)
	assert.Equal(t, "Stadthalle", termine[0].Venue)
	assert.Equal(t, "Wien", termine[0].Stadt)
}

func TestAddRejectsInvalidForm(t *testing.T) {
	tests := []struct {
		name string
		form func(url.Values) url.Values
	}{
		{
			name: "missing venue",
			form: func(f url.Values) url.Values { f.Del("venue"); return f },
		},
		{
			name: "missing stadt",
			form: func(f url.Values) url.Values { f.Del("stadt"); return f },
		},
		{
			name: "german date format",
			form: func(f url.Values) url.Values { f.Set("datum", "01.05.2026"); return f },
		},
		{
			name: "missing datum",
			form: func(f url.Values) url.Values { f.Del("datum"); return f },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, st := newTestApp(t)

			resp := postForm(t, app, Path+"/add", tt.form(validForm()))

			require.Equal(t, http.StatusFound, resp.StatusCode)
			assert.Equal(t, Path, resp.Header.Get("Location"))
			assert.Contains(t, flashCookie(resp, flash.ErrorCookie), url.QueryEscape(FlashInvalidInput))

			count, err := termin.Count(st)
			require.NoError(t, err)
			assert.Zero(t, count)
		})
	}
}

func TestEditUpdatesTermin(t *testing.T) {
	app, st := newTestApp(t)

	require.NoError(t, termin.Add(st, termin.Fields{Datum: "2026-05-01", Venue: "Stadthalle", Stadt: "Wien"}))

	termine, err := termin.All(st)
	require.NoError(t, err)
	require.Len(t, termine, 1)

	f := validForm()
	f.Set("stadt", "Graz")
	f.Set("venue", "Orpheum")

	resp := postForm(t, app, Path+"/edit/"+strconv.FormatUint(termine[0].ID, 10), f)

	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Contains(t, flashCookie(resp, flash.SuccessCookie), url.QueryEscape(FlashUpdated))

	termine, err = termin.All(st)
	require.NoError(t, err)
	require.Len(t, termine, 1)
	assert.Equal(t, "Graz", termine[0].Stadt)
	assert.Equal(t, "Orpheum", termine[0].Venue)
}

func TestDeleteRemovesTermin(t *testing.T) {
	app, st := newTestApp(t)

	require.NoError(t, termin.Add(st, termin.Fields{Datum: "2026-05-01", Venue: "Stadthalle", Stadt: "Wien"}))

	termine, err := termin.All(st)
	require.NoError(t, err)
	require.Len(t, termine, 1)

	resp := postForm(t, app, Path+"/delete/"+strconv.FormatUint(termine[0].ID, 10), url.Values{})

	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Contains(t, flashCookie(resp, flash.SuccessCookie), url.QueryEscape(FlashDeleted))

	count, err := termin.Count(st)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestDeleteRejectsBadID(t *testing.T) {
	app, _ := newTestApp(t)

	resp := postForm(t, app, Path+"/delete/nicht-numerisch", url.Values{})

	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Contains(t, flashCookie(resp, flash.ErrorCookie), url.QueryEscape(FlashInvalidInput))
}

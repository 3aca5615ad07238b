package web

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/storage/memory/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buehnenwerk/udo-story/internal/config"
	terminctl "github.com/buehnenwerk/udo-story/internal/db/controller/termin"
	"github.com/buehnenwerk/udo-story/internal/db/store"
	"github.com/buehnenwerk/udo-story/internal/upload"
	"github.com/buehnenwerk/udo-story/internal/web/session"
)

func newTestService(t *testing.T) (*Service, *store.Store) {
	t.Helper()

	dir := t.TempDir()

	st, err := store.Open(filepath.Join(dir, "database.sqlite"))
	require.NoError(t, err, "failed to open test store")

	t.Cleanup(func() { _ = st.Close() })

	saver, err := upload.NewSaver(filepath.Join(dir, "uploads", "images"))
	require.NoError(t, err, "failed to create saver")

	session.Init(memory.New())

	cfg := &config.Config{
		Title: "Die Udo Jürgens Story",
		Webserver: config.Webserver{
			Port:          3000,
			SessionSecret: "test-secret",
			Session: config.Session{
				ExpiryTime: time.Hour,
			},
		},
	}

	return New(cfg, st, saver), st
}

func get(t *testing.T, svc *Service, target, cookie string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: cookie})
	}

	resp, err := svc.App.Test(req, -1)
	require.NoError(t, err, "app.Test failed")

	t.Cleanup(func() { _ = resp.Body.Close() })

	return resp
}

func post(t *testing.T, svc *Service, target, cookie string, form url.Values) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: cookie})
	}

	resp, err := svc.App.Test(req, -1)
	require.NoError(t, err, "app.Test failed")

	t.Cleanup(func() { _ = resp.Body.Close() })

	return resp
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return string(b)
}

// loginCookie performs the login POST and returns the session cookie value.
func loginCookie(t *testing.T, svc *Service) string {
	t.Helper()

	resp := post(t, svc, "/admin/login", "", url.Values{
		"username": {store.DefaultAdminUsername},
		"password": {store.DefaultAdminPassword},
	})

	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, "/admin", resp.Header.Get("Location"))

	for _, sc := range resp.Header.Values("Set-Cookie") {
		if strings.HasPrefix(sc, session.CookieName+"=") {
			return strings.TrimPrefix(strings.SplitN(sc, ";", 2)[0], session.CookieName+"=")
		}
	}

	t.Fatal("no session cookie issued")

	return ""
}

func TestPublicPagesRender(t *testing.T) {
	svc, _ := newTestService(t)

	for _, target := range []string{"/", "/kuenstler", "/termine", "/kritiken", "/presse", "/kontakt"} {
		resp := get(t, svc, target, "")
		assert.Equal(t, http.StatusOK, resp.StatusCode, "GET %s", target)
	}

	// the seeded site title appears on the home page
	resp := get(t, svc, "/", "")
	assert.Contains(t, body(t, resp), "Die Udo Jürgens Story")
}

func TestUnknownPageRenders404(t *testing.T) {
	svc, _ := newTestService(t)

	resp := get(t, svc, "/gibt-es-nicht", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body(t, resp), ErrMsgNotFound)
}

func TestAdminPagesRequireLogin(t *testing.T) {
	svc, _ := newTestService(t)

	for _, target := range []string{"/admin", "/admin/termine", "/admin/bilder", "/admin/kritiken", "/admin/einstellungen"} {
		resp := get(t, svc, target, "")
		require.Equal(t, http.StatusFound, resp.StatusCode, "GET %s", target)
		assert.Equal(t, "/admin/login", resp.Header.Get("Location"), "GET %s", target)
	}

	// a forged cookie does not pass the signature check
	resp := get(t, svc, "/admin", "deadbeef.deadbeef")
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin/login", resp.Header.Get("Location"))
}

func TestLoggedInAdminSkipsLoginPage(t *testing.T) {
	svc, _ := newTestService(t)

	cookie := loginCookie(t, svc)

	resp := get(t, svc, "/admin/login", cookie)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin", resp.Header.Get("Location"))
}

func TestTerminLifecycle(t *testing.T) {
	svc, st := newTestService(t)

	cookie := loginCookie(t, svc)

	// the dashboard is reachable with the session cookie
	resp := get(t, svc, "/admin", cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// add a tour date
	resp = post(t, svc, "/admin/termine/add", cookie, url.Values{
		"datum": {"2027-05-01"},
		"zeit":  {"19:30"},
		"venue": {"Stadthalle"},
		"stadt": {"Wien"},
	})
	require.Equal(t, http.StatusFound, resp.StatusCode)

	// it shows up on the public page, date in German display form
	resp = get(t, svc, "/termine", "")
	page := body(t, resp)
	assert.Contains(t, page, "Stadthalle")
	assert.Contains(t, page, "Wien")
	assert.Contains(t, page, "01.05.2027")

	// delete it again
	termine, err := terminctl.All(st)
	require.NoError(t, err)
	require.Len(t, termine, 1)

	resp = post(t, svc, "/admin/termine/delete/"+strconv.FormatUint(termine[0].ID, 10), cookie, url.Values{})
	require.Equal(t, http.StatusFound, resp.StatusCode)

	resp = get(t, svc, "/termine", "")
	assert.NotContains(t, body(t, resp), "Stadthalle")
}

func TestLogoutInvalidatesSession(t *testing.T) {
	svc, _ := newTestService(t)

	cookie := loginCookie(t, svc)

	resp := get(t, svc, "/admin/logout", cookie)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	// the old cookie no longer opens the admin panel
	resp = get(t, svc, "/admin", cookie)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin/login", resp.Header.Get("Location"))
}

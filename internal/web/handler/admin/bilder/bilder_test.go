package bilder

import (
	"bytes"
	"io"
	"mime/multipart"
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
	"github.com/buehnenwerk/udo-story/internal/db/controller/image"
	"github.com/buehnenwerk/udo-story/internal/db/store"
	"github.com/buehnenwerk/udo-story/internal/upload"
	"github.com/buehnenwerk/udo-story/internal/web/flash"
)

type noOpViews struct{}

func (noOpViews) Load() error { return nil }

func (noOpViews) Render(w io.Writer, name string, _ interface{}, _ ...string) error {
	_, _ = io.WriteString(w, name)
	return nil
}

func newTestApp(t *testing.T) (*fiber.App, *store.Store, *upload.Saver) {
	t.Helper()

	dir := t.TempDir()

	st, err := store.Open(filepath.Join(dir, "database.sqlite"))
	require.NoError(t, err, "failed to open test store")

	t.Cleanup(func() { _ = st.Close() })

	saver, err := upload.NewSaver(filepath.Join(dir, "uploads", "images"))
	require.NoError(t, err, "failed to create saver")

	app := fiber.New(fiber.Config{Views: noOpViews{}})

	var s Service
	s.Init(app, &config.Config{}, st, saver)

	return app, st, saver
}

func uploadRequest(t *testing.T, filename, contentType string, content []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer

	w := multipart.NewWriter(&buf)

	require.NoError(t, w.WriteField("title", "Konzertfoto"))
	require.NoError(t, w.WriteField("beschreibung", "Wien 2026"))

	if filename != "" {
		h := make(map[string][]string)
		h["Content-Disposition"] = []string{`form-data; name="` + FormFileKey + `"; filename="` + filename + `"`}
		h["Content-Type"] = []string{contentType}

		part, err := w.CreatePart(h)
		require.NoError(t, err)

		_, err = part.Write(content)
		require.NoError(t, err)
	}

	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, Path+"/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())

	return req
}

func flashCookie(resp *http.Response, name string) string {
	for _, sc := range resp.Header.Values("Set-Cookie") {
		if strings.HasPrefix(sc, name+"=") {
			return sc
		}
	}

	return ""
}

func TestUploadStoresFileAndRow(t *testing.T) {
	app, st, saver := newTestApp(t)

	resp, err := app.Test(uploadRequest(t, "konzert.jpg", "image/jpeg", []byte("fake image")), -1)
	require.NoError(t, err)

	defer func() {
		_ = resp.Body.Close()
	}()

	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, Path, resp.Header.Get("Location"))
	assert.Contains(t, flashCookie(resp, flash.SuccessCookie), url.QueryEscape(FlashUploaded))

	images, err := image.List(st, 0)
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, "konzert.jpg", images[0].OriginalName)
	assert.Equal(t, "Konzertfoto", images[0].Title)
	assert.FileExists(t, filepath.Join(saver.Dir(), images[0].Filename))
}

func TestUploadWithoutFile(t *testing.T) {
	app, st, _ := newTestApp(t)

	resp, err := app.Test(uploadRequest(t, "", "", nil), -1)
	require.NoError(t, err)

	defer func() {
		_ = resp.Body.Close()
	}()

	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Contains(t, flashCookie(resp, flash.ErrorCookie), url.QueryEscape(FlashNoFile))

	count, err := image.Count(st)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestUploadRejectsDisallowedType(t *testing.T) {
	app, st, _ := newTestApp(t)

	resp, err := app.Test(uploadRequest(t, "brief.pdf", "application/pdf", []byte("%PDF")), -1)
	require.NoError(t, err)

	defer func() {
		_ = resp.Body.Close()
	}()

	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Contains(t, flashCookie(resp, flash.ErrorCookie), url.QueryEscape(FlashBadFile))

	count, err := image.Count(st)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestDeleteRemovesFileThenRow(t *testing.T) {
	app, st, saver := newTestApp(t)

	resp, err := app.Test(uploadRequest(t, "weg.jpg", "image/jpeg", []byte("x")), -1)
	require.NoError(t, err)
	_ = resp.Body.Close()

	images, err := image.List(st, 0)
	require.NoError(t, err)
	require.Len(t, images, 1)

	stored := filepath.Join(saver.Dir(), images[0].Filename)
	assert.FileExists(t, stored)

	req := httptest.NewRequest(http.MethodPost, Path+"/delete/"+strconv.FormatUint(images[0].ID, 10), nil)

	resp, err = app.Test(req, -1)
	require.NoError(t, err)

	defer func() {
		_ = resp.Body.Close()
	}()

	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Contains(t, flashCookie(resp, flash.SuccessCookie), url.QueryEscape(FlashDeleted))
	assert.NoFileExists(t, stored)

	count, err := image.Count(st)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestDeleteUnknownIDStillSucceeds(t *testing.T) {
	app, _, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, Path+"/delete/9999", nil)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	defer func() {
		_ = resp.Body.Close()
	}()

	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Contains(t, flashCookie(resp, flash.SuccessCookie), url.QueryEscape(FlashDeleted))
}

package media

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func newMediaServer(t *testing.T) (*echo.Echo, string) {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "gallery"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "gallery", "gala.jpg"), []byte("jpeg bytes"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".env"), []byte("SECRET=1"), 0o644))

	e := echo.New()
	e.GET(Prefix+"*", NewServer(root).Handle())
	return e, root
}

func get(e *echo.Echo, path string, hdr map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestServeMedia(t *testing.T) {
	t.Parallel()
	e, _ := newMediaServer(t)

	rec := get(e, "/media/gallery/gala.jpg", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "jpeg bytes", rec.Body.String())
	require.Equal(t, "public, max-age=86400", rec.Header().Get("Cache-Control"))
	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)

	rec = get(e, "/media/gallery/gala.jpg", map[string]string{"If-None-Match": etag})
	require.Equal(t, http.StatusNotModified, rec.Code)

	rec = get(e, "/media/gallery/gala.jpg", map[string]string{"Range": "bytes=0-3"})
	require.Equal(t, http.StatusPartialContent, rec.Code)
	require.Equal(t, "jpeg", rec.Body.String())
}

func TestServeMedia_Rejects(t *testing.T) {
	t.Parallel()
	e, _ := newMediaServer(t)

	for _, p := range []string{"/media/missing.jpg", "/media/.env", "/media/gallery", "/media/"} {
		rec := get(e, p, nil)
		require.Equal(t, http.StatusNotFound, rec.Code, p)
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()
	s := NewServer("/srv/media")

	p, ok := s.resolve("../../etc/passwd")
	require.True(t, ok)
	require.Equal(t, filepath.Join("/srv/media", "etc", "passwd"), p)

	_, ok = s.resolve("gallery/.hidden/x.jpg")
	require.False(t, ok)
}

func TestETagCache_Strong(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	p := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(p, []byte("abc"), 0o644))
	info, err := os.Stat(p)
	require.NoError(t, err)

	c := NewETagCache()
	etag, err := c.ETag(p, info, ETagStrongSHA256)
	require.NoError(t, err)
	require.Equal(t, `"ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"`, etag)

	again, err := c.ETag(p, info, ETagStrongSHA256)
	require.NoError(t, err)
	require.Equal(t, etag, again)
}

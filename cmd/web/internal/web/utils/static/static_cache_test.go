package static

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"testing/fstest"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"diamondband.live/site/static"
)

func TestNewStaticCache_BuildsEntries(t *testing.T) {
	cache, err := NewStaticCache(static.FS)
	require.NoError(t, err)
	require.NotNil(t, cache)
	require.NotEmpty(t, cache.entries)

	ci, ok := cache.Lookup("dist/main.css")
	require.True(t, ok, "expected dist/main.css to be embedded")

	require.NotEmpty(t, ci.ETag)
	require.True(t, regexp.MustCompile(`^\"[0-9a-f]{64}\"$`).MatchString(ci.ETag))
	require.True(t, ci.Size > 0)
	require.False(t, ci.LastModified.IsZero())
}

func TestServeStaticFile(t *testing.T) {
	fsys := fstest.MapFS{
		"dist/main.js":    {Data: []byte("console.log(1)")},
		"images/band.jpg": {Data: []byte("jpg")},
	}
	cache, err := NewStaticCache(fsys)
	require.NoError(t, err)

	e := echo.New()
	e.GET("/static/*", cache.ServeStaticFile("/static/"))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/dist/main.js", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "console.log(1)", rec.Body.String())
	require.Equal(t, "no-cache, must-revalidate", rec.Header().Get(echo.HeaderCacheControl))
	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)

	req := httptest.NewRequest(http.MethodGet, "/static/dist/main.js", nil)
	req.Header.Set("If-None-Match", etag)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotModified, rec.Code)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/images/band.jpg", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get(echo.HeaderCacheControl), "max-age=31536000")

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/missing.css", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

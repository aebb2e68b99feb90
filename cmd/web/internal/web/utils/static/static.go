package static

import (
	"crypto/sha256"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// CachedFileInfo holds metadata for a static file used in HTTP cache headers.
type CachedFileInfo struct {
	ETag         string
	Size         int64
	LastModified time.Time
}

// StaticCache serves an asset filesystem with precomputed validators.
type StaticCache struct {
	fileLock sync.RWMutex
	entries  map[string]CachedFileInfo
	fs       fs.FS
}

// NewStaticCache hashes every file of fsys for ETag and Last-Modified.
func NewStaticCache(fsys fs.FS) (*StaticCache, error) {
	c := &StaticCache{
		entries: make(map[string]CachedFileInfo),
		fs:      fsys,
	}

	c.fileLock.Lock()
	defer c.fileLock.Unlock()

	// Embedded files carry no mod time; use process start instead.
	started := time.Now().UTC().Truncate(time.Second)

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		f, err := fsys.Open(p)
		if err != nil {
			return err
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil {
			return err
		}

		h := sha256.New()
		if _, err := io.Copy(h, f); err != nil {
			return err
		}
		modTime := info.ModTime()
		if modTime.IsZero() {
			modTime = started
		}

		c.entries[p] = CachedFileInfo{
			ETag:         fmt.Sprintf("\"%x\"", h.Sum(nil)),
			Size:         info.Size(),
			LastModified: modTime,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Lookup returns the cached metadata of an asset path.
func (s *StaticCache) Lookup(p string) (CachedFileInfo, bool) {
	s.fileLock.RLock()
	defer s.fileLock.RUnlock()
	ci, ok := s.entries[p]
	return ci, ok
}

func cacheControl(p string) string {
	ext := path.Ext(p)
	// dist/ is not fingerprinted, so revalidate on every load.
	if strings.HasPrefix(p, "dist/") {
		return "no-cache, must-revalidate"
	}
	switch ext {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp", ".svg", ".ico", ".woff", ".woff2", ".ttf":
		return "public, max-age=31536000, stale-while-revalidate=86400"
	default:
		return "public, max-age=3600, stale-while-revalidate=300"
	}
}

// ServeStaticFile serves paths below prefix, answering conditional requests
// with 304.
func (s *StaticCache) ServeStaticFile(prefix string) echo.HandlerFunc {
	return func(c echo.Context) error {
		p := strings.TrimPrefix(c.Request().URL.Path, prefix)

		ci, ok := s.Lookup(p)
		if !ok {
			return echo.ErrNotFound
		}
		if inm := c.Request().Header.Get("If-None-Match"); inm != "" && inm == ci.ETag {
			return c.NoContent(http.StatusNotModified)
		}
		if ims := c.Request().Header.Get(echo.HeaderIfModifiedSince); ims != "" {
			if t, err := http.ParseTime(ims); err == nil && !ci.LastModified.After(t) {
				return c.NoContent(http.StatusNotModified)
			}
		}

		f, err := s.fs.Open(p)
		if err != nil {
			return echo.ErrNotFound
		}
		defer f.Close()

		h := c.Response().Header()
		h.Set(echo.HeaderCacheControl, cacheControl(p))
		h.Set("ETag", ci.ETag)
		h.Set(echo.HeaderLastModified, ci.LastModified.Format(http.TimeFormat))

		contentType := mime.TypeByExtension(path.Ext(p))
		if contentType == "" {
			contentType = echo.MIMEOctetStream
		}
		return c.Stream(http.StatusOK, contentType, f)
	}
}

// Package media serves uploaded band photos and videos from a directory on
// disk. Gallery rows reference them as /media/<path>.
package media

import (
	"crypto/sha256"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// Prefix is the URL prefix media is mounted under.
const Prefix = "/media/"

// ETagMode determines how ETags are computed.
type ETagMode int

const (
	// ETagWeakStat uses file size and modtime for a weak ETag.
	ETagWeakStat ETagMode = iota
	// ETagStrongSHA256 hashes the file content.
	ETagStrongSHA256
)

type etagEntry struct {
	size    int64
	modTime time.Time
	mode    ETagMode
	etag    string
}

// ETagCache memoizes ETags for on-disk files. Entries go stale when the size
// or modtime changes.
type ETagCache struct {
	mu      sync.RWMutex
	entries map[string]etagEntry
}

func NewETagCache() *ETagCache {
	return &ETagCache{entries: make(map[string]etagEntry)}
}

// ETag computes or retrieves the ETag for the file at p.
func (c *ETagCache) ETag(p string, info os.FileInfo, mode ETagMode) (string, error) {
	c.mu.RLock()
	if e, ok := c.entries[p]; ok && e.size == info.Size() && e.modTime.Equal(info.ModTime()) && e.mode == mode {
		c.mu.RUnlock()
		return e.etag, nil
	}
	c.mu.RUnlock()

	etag, err := computeETag(p, info, mode)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.entries[p] = etagEntry{size: info.Size(), modTime: info.ModTime(), mode: mode, etag: etag}
	c.mu.Unlock()
	return etag, nil
}

func computeETag(p string, info os.FileInfo, mode ETagMode) (string, error) {
	switch mode {
	case ETagWeakStat:
		return fmt.Sprintf(`W/"%x-%x"`, info.ModTime().Unix(), info.Size()), nil
	case ETagStrongSHA256:
		f, err := os.Open(p)
		if err != nil {
			return "", err
		}
		defer f.Close()
		h := sha256.New()
		if _, err := io.Copy(h, f); err != nil {
			return "", err
		}
		return fmt.Sprintf(`"%x"`, h.Sum(nil)), nil
	default:
		return "", fmt.Errorf("unknown etag mode: %d", mode)
	}
}

// Server serves files below Root.
type Server struct {
	Root         string
	CacheControl string
	cache        *ETagCache
}

// NewServer returns a server for root. Photos rarely change once uploaded so
// they are cached for a day.
func NewServer(root string) *Server {
	return &Server{Root: root, CacheControl: "public, max-age=86400", cache: NewETagCache()}
}

// resolve maps a URL path below Prefix to a file inside Root. Paths that
// would escape Root are rejected.
func (s *Server) resolve(urlPath string) (string, bool) {
	rel := strings.TrimPrefix(path.Clean("/"+urlPath), "/")
	if rel == "" || rel == "." {
		return "", false
	}
	for _, part := range strings.Split(rel, "/") {
		if strings.HasPrefix(part, ".") {
			return "", false
		}
	}
	return filepath.Join(s.Root, filepath.FromSlash(rel)), true
}

// Handle serves GET /media/*.
func (s *Server) Handle() echo.HandlerFunc {
	return func(c echo.Context) error {
		if s.Root == "" {
			return echo.ErrNotFound
		}
		abs, ok := s.resolve(c.Param("*"))
		if !ok {
			return echo.ErrNotFound
		}
		return s.ServeFile(c, abs, ETagWeakStat)
	}
}

// ServeFile writes abs with caching headers and answers conditional and
// Range requests.
func (s *Server) ServeFile(c echo.Context, abs string, mode ETagMode) error {
	info, err := os.Stat(abs)
	if err != nil || info.IsDir() {
		return echo.ErrNotFound
	}

	etag, err := s.cache.ETag(abs, info, mode)
	if err != nil {
		etag = ""
	}

	req := c.Request()
	if etag != "" {
		if inm := req.Header.Get("If-None-Match"); inm != "" && strings.TrimSpace(inm) == etag {
			return c.NoContent(http.StatusNotModified)
		}
	}
	if ims := req.Header.Get("If-Modified-Since"); ims != "" {
		if t, err := http.ParseTime(ims); err == nil && !info.ModTime().After(t.Add(time.Second)) {
			return c.NoContent(http.StatusNotModified)
		}
	}

	h := c.Response().Header()
	h.Set(echo.HeaderCacheControl, s.CacheControl)
	h.Set("Last-Modified", info.ModTime().UTC().Format(http.TimeFormat))
	if etag != "" {
		h.Set("ETag", etag)
	}

	f, err := os.Open(abs)
	if err != nil {
		return echo.ErrNotFound
	}
	defer f.Close()

	// ServeContent handles Range requests, which video players use.
	http.ServeContent(c.Response(), req, filepath.Base(abs), info.ModTime(), f)
	return nil
}

package db

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
)

// DefaultStats feeds the home page counters when no settings row overrides
// them: "target,label,delay" entries separated by "|".
const DefaultStats = "500,Events Performed,100|50,Cities Visited,200|1000,Happy Clients,300|10,Years Experience,400"

// DefaultSiteSettings is used until an admin saves a settings row.
func DefaultSiteSettings() *SiteSetting {
	return &SiteSetting{
		SiteTitle: "Diamond Band",
		Tagline:   "Live music for weddings, corporate events and celebrations",
		AboutText: "Diamond Band is a professional live band bringing energy and elegance to every event.",
		Stats:     DefaultStats,
	}
}

type siteSettingsSource interface {
	GetSiteSettings(ctx context.Context) (*SiteSetting, error)
}

// SiteSettingsCache provides thread-safe access to the site settings row.
// Updated via LISTEN/NOTIFY when the row changes.
type SiteSettingsCache struct {
	mu       sync.RWMutex
	settings *SiteSetting
	src      siteSettingsSource
}

// NewSiteSettingsCache loads the initial values. A missing row yields the
// defaults.
func NewSiteSettingsCache(ctx context.Context, src siteSettingsSource) (*SiteSettingsCache, error) {
	c := &SiteSettingsCache{src: src}
	if err := c.Reload(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// Get returns the current settings. Safe for concurrent reads; callers must
// not modify the result.
func (c *SiteSettingsCache) Get() *SiteSetting {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.settings
}

// Reload fetches fresh settings from the database and updates the cache.
func (c *SiteSettingsCache) Reload(ctx context.Context) error {
	settings, err := c.src.GetSiteSettings(ctx)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return err
		}
		settings = DefaultSiteSettings()
	}
	if settings.Stats == "" {
		settings.Stats = DefaultStats
	}
	c.mu.Lock()
	c.settings = settings
	c.mu.Unlock()
	return nil
}

// Listen reloads the cache on every site_settings_changed notification until
// ctx is done, reconnecting after failures.
func (c *SiteSettingsCache) Listen(ctx context.Context, connConfig *pgx.ConnConfig) {
	for ctx.Err() == nil {
		conn, err := pgx.ConnectConfig(ctx, connConfig)
		if err != nil {
			slog.ErrorContext(ctx, "settings listen connect failed", "error", err)
			waitOrDone(ctx, 2*time.Second)
			continue
		}
		if err := New(conn).ListenSiteSettings(ctx); err != nil {
			slog.ErrorContext(ctx, "LISTEN failed", "channel", "site_settings_changed", "error", err)
			_ = conn.Close(context.Background())
			waitOrDone(ctx, 2*time.Second)
			continue
		}

		for {
			if _, err := conn.WaitForNotification(ctx); err != nil {
				if ctx.Err() == nil {
					slog.ErrorContext(ctx, "wait for notification failed", "channel", "site_settings_changed", "error", err)
				}
				break
			}
			if err := c.Reload(ctx); err != nil {
				slog.ErrorContext(ctx, "settings reload failed", "error", err)
			}
		}
		_ = conn.Close(context.Background())
	}
}

func waitOrDone(ctx context.Context, d time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}

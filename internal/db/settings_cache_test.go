package db

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
)

type stubSettings struct {
	row *SiteSetting
	err error
}

func (s *stubSettings) GetSiteSettings(context.Context) (*SiteSetting, error) {
	return s.row, s.err
}

func TestSiteSettingsCache_DefaultsWhenMissing(t *testing.T) {
	t.Parallel()

	c, err := NewSiteSettingsCache(context.Background(), &stubSettings{err: pgx.ErrNoRows})
	require.NoError(t, err)
	require.Equal(t, "Diamond Band", c.Get().SiteTitle)
	require.Equal(t, DefaultStats, c.Get().Stats)
}

func TestSiteSettingsCache_Reload(t *testing.T) {
	t.Parallel()

	src := &stubSettings{row: &SiteSetting{SiteTitle: "First"}}
	c, err := NewSiteSettingsCache(context.Background(), src)
	require.NoError(t, err)
	require.Equal(t, "First", c.Get().SiteTitle)
	require.Equal(t, DefaultStats, c.Get().Stats, "empty stats fall back")

	src.row = &SiteSetting{SiteTitle: "Second", Stats: "1,Gig,0"}
	require.NoError(t, c.Reload(context.Background()))
	require.Equal(t, "Second", c.Get().SiteTitle)
	require.Equal(t, "1,Gig,0", c.Get().Stats)
}

func TestSiteSettingsCache_Error(t *testing.T) {
	t.Parallel()

	_, err := NewSiteSettingsCache(context.Background(), &stubSettings{err: errors.New("db down")})
	require.Error(t, err)
}

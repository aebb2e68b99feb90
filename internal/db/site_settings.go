package db

import (
	"context"
)

const getSiteSettings = `SELECT site_title, tagline, about_text, phone, email, address,
	facebook_url, instagram_url, youtube_url, twitter_url, stats, updated_at
FROM site_settings
WHERE id = 1`

func (q *Queries) GetSiteSettings(ctx context.Context) (*SiteSetting, error) {
	var i SiteSetting
	err := q.db.QueryRow(ctx, getSiteSettings).Scan(
		&i.SiteTitle,
		&i.Tagline,
		&i.AboutText,
		&i.Phone,
		&i.Email,
		&i.Address,
		&i.FacebookUrl,
		&i.InstagramUrl,
		&i.YoutubeUrl,
		&i.TwitterUrl,
		&i.Stats,
		&i.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

const upsertSiteSettings = `INSERT INTO site_settings (
	id, site_title, tagline, about_text, phone, email, address,
	facebook_url, instagram_url, youtube_url, twitter_url, stats
) VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (id) DO UPDATE SET
	site_title = EXCLUDED.site_title,
	tagline = EXCLUDED.tagline,
	about_text = EXCLUDED.about_text,
	phone = EXCLUDED.phone,
	email = EXCLUDED.email,
	address = EXCLUDED.address,
	facebook_url = EXCLUDED.facebook_url,
	instagram_url = EXCLUDED.instagram_url,
	youtube_url = EXCLUDED.youtube_url,
	twitter_url = EXCLUDED.twitter_url,
	stats = EXCLUDED.stats,
	updated_at = now()`

func (q *Queries) UpsertSiteSettings(ctx context.Context, arg *SiteSetting) error {
	_, err := q.db.Exec(ctx, upsertSiteSettings,
		arg.SiteTitle,
		arg.Tagline,
		arg.AboutText,
		arg.Phone,
		arg.Email,
		arg.Address,
		arg.FacebookUrl,
		arg.InstagramUrl,
		arg.YoutubeUrl,
		arg.TwitterUrl,
		arg.Stats,
	)
	return err
}

const listenSiteSettings = `LISTEN site_settings_changed`

func (q *Queries) ListenSiteSettings(ctx context.Context) error {
	_, err := q.db.Exec(ctx, listenSiteSettings)
	return err
}

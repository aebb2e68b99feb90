package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const galleryItemColumns = `id, title, description, media_type, event_type, event_date, event_location,
	image_url, video_url, height, is_featured, is_public, created_at`

func scanGalleryItem(row pgx.Row) (*GalleryItem, error) {
	var i GalleryItem
	err := row.Scan(
		&i.ID,
		&i.Title,
		&i.Description,
		&i.MediaType,
		&i.EventType,
		&i.EventDate,
		&i.EventLocation,
		&i.ImageUrl,
		&i.VideoUrl,
		&i.Height,
		&i.IsFeatured,
		&i.IsPublic,
		&i.CreatedAt,
	)
	return &i, err
}

func collectGalleryItems(rows pgx.Rows, err error) ([]*GalleryItem, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []*GalleryItem{}
	for rows.Next() {
		i, err := scanGalleryItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const listPublicGalleryItems = `SELECT ` + galleryItemColumns + `
FROM gallery_items
WHERE is_public
ORDER BY event_date DESC NULLS LAST, created_at DESC`

func (q *Queries) ListPublicGalleryItems(ctx context.Context) ([]*GalleryItem, error) {
	return collectGalleryItems(q.db.Query(ctx, listPublicGalleryItems))
}

const listFeaturedGalleryItems = `SELECT ` + galleryItemColumns + `
FROM gallery_items
WHERE is_public AND is_featured
ORDER BY event_date DESC NULLS LAST, created_at DESC
LIMIT $1`

func (q *Queries) ListFeaturedGalleryItems(ctx context.Context, limit int32) ([]*GalleryItem, error) {
	return collectGalleryItems(q.db.Query(ctx, listFeaturedGalleryItems, limit))
}

const countGalleryItems = `SELECT count(*) FROM gallery_items`

func (q *Queries) CountGalleryItems(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, countGalleryItems).Scan(&n)
	return n, err
}

type CreateGalleryItemParams struct {
	Title         string
	Description   string
	MediaType     string
	EventType     string
	EventDate     pgtype.Date
	EventLocation string
	ImageUrl      string
	VideoUrl      string
	Height        int32
	IsFeatured    bool
	IsPublic      bool
}

const createGalleryItem = `INSERT INTO gallery_items (
	title, description, media_type, event_type, event_date, event_location,
	image_url, video_url, height, is_featured, is_public
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING ` + galleryItemColumns

func (q *Queries) CreateGalleryItem(ctx context.Context, arg *CreateGalleryItemParams) (*GalleryItem, error) {
	return scanGalleryItem(q.db.QueryRow(ctx, createGalleryItem,
		arg.Title,
		arg.Description,
		arg.MediaType,
		arg.EventType,
		arg.EventDate,
		arg.EventLocation,
		arg.ImageUrl,
		arg.VideoUrl,
		arg.Height,
		arg.IsFeatured,
		arg.IsPublic,
	))
}

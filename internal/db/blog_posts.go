package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
)

const blogPostColumns = `id, title, slug, excerpt, content, featured_image, status, is_featured, published_at, created_at`

func scanBlogPost(row pgx.Row) (*BlogPost, error) {
	var i BlogPost
	err := row.Scan(
		&i.ID,
		&i.Title,
		&i.Slug,
		&i.Excerpt,
		&i.Content,
		&i.FeaturedImage,
		&i.Status,
		&i.IsFeatured,
		&i.PublishedAt,
		&i.CreatedAt,
	)
	return &i, err
}

const listPublishedBlogPosts = `SELECT ` + blogPostColumns + `
FROM blog_posts
WHERE status = 'published' AND published_at <= $1
ORDER BY published_at DESC
LIMIT $2 OFFSET $3`

type ListPublishedBlogPostsParams struct {
	Now    time.Time
	Limit  int32
	Offset int32
}

func (q *Queries) ListPublishedBlogPosts(ctx context.Context, arg *ListPublishedBlogPostsParams) ([]*BlogPost, error) {
	rows, err := q.db.Query(ctx, listPublishedBlogPosts, arg.Now, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []*BlogPost{}
	for rows.Next() {
		i, err := scanBlogPost(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const countPublishedBlogPosts = `SELECT count(*) FROM blog_posts WHERE status = 'published' AND published_at <= $1`

func (q *Queries) CountPublishedBlogPosts(ctx context.Context, now time.Time) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, countPublishedBlogPosts, now).Scan(&n)
	return n, err
}

const getPublishedBlogPostBySlug = `SELECT ` + blogPostColumns + `
FROM blog_posts
WHERE slug = $1 AND status = 'published' AND published_at <= $2`

func (q *Queries) GetPublishedBlogPostBySlug(ctx context.Context, slug string, now time.Time) (*BlogPost, error) {
	return scanBlogPost(q.db.QueryRow(ctx, getPublishedBlogPostBySlug, slug, now))
}

const blogSlugExists = `SELECT EXISTS (SELECT 1 FROM blog_posts WHERE slug = $1)`

func (q *Queries) BlogSlugExists(ctx context.Context, slug string) (bool, error) {
	var ok bool
	err := q.db.QueryRow(ctx, blogSlugExists, slug).Scan(&ok)
	return ok, err
}

type CreateBlogPostParams struct {
	Title         string
	Slug          string
	Excerpt       string
	Content       string
	FeaturedImage string
	Status        PostStatus
	IsFeatured    bool
	PublishedAt   time.Time
}

const createBlogPost = `INSERT INTO blog_posts (title, slug, excerpt, content, featured_image, status, is_featured, published_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING ` + blogPostColumns

func (q *Queries) CreateBlogPost(ctx context.Context, arg *CreateBlogPostParams) (*BlogPost, error) {
	return scanBlogPost(q.db.QueryRow(ctx, createBlogPost,
		arg.Title,
		arg.Slug,
		arg.Excerpt,
		arg.Content,
		arg.FeaturedImage,
		arg.Status,
		arg.IsFeatured,
		arg.PublishedAt,
	))
}

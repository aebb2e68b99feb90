// Package seed loads the sample content shipped with the site: the photo
// gallery, testimonials, band members, services, news posts and the site
// settings row.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"diamondband.live/site/internal/db"
	"diamondband.live/site/pkg/utils/slug"
)

// Store is the subset of *db.Queries the seeder writes to.
type Store interface {
	CountGalleryItems(ctx context.Context) (int64, error)
	CreateGalleryItem(ctx context.Context, arg *db.CreateGalleryItemParams) (*db.GalleryItem, error)
	CreateTestimonial(ctx context.Context, arg *db.CreateTestimonialParams) (*db.Testimonial, error)
	CreateBandMember(ctx context.Context, arg *db.CreateBandMemberParams) error
	CreateService(ctx context.Context, arg *db.CreateServiceParams) error
	BlogSlugExists(ctx context.Context, slug string) (bool, error)
	CreateBlogPost(ctx context.Context, arg *db.CreateBlogPostParams) (*db.BlogPost, error)
	GetSiteSettings(ctx context.Context) (*db.SiteSetting, error)
	UpsertSiteSettings(ctx context.Context, arg *db.SiteSetting) error
}

// Report counts what a run inserted.
type Report struct {
	Gallery      int
	Testimonials int
	Members      int
	Services     int
	Posts        int
	Settings     bool
}

func (r Report) String() string {
	return fmt.Sprintf("gallery=%d testimonials=%d members=%d services=%d posts=%d settings=%t",
		r.Gallery, r.Testimonials, r.Members, r.Services, r.Posts, r.Settings)
}

// Run inserts the sample content. It is safe to repeat: the gallery,
// testimonials, members and services are only loaded into an empty gallery,
// posts are skipped by slug and an existing settings row is left alone.
func Run(ctx context.Context, store Store, now time.Time) (Report, error) {
	var r Report

	n, err := store.CountGalleryItems(ctx)
	if err != nil {
		return r, fmt.Errorf("count gallery: %w", err)
	}
	if n == 0 {
		if err := seedContent(ctx, store, &r); err != nil {
			return r, err
		}
	} else {
		slog.InfoContext(ctx, "Gallery not empty, skipping sample content", "items", n)
	}

	for i, p := range Posts {
		s := p.Slug
		if s == "" {
			s = slug.Make(p.Title)
		}
		exists, err := store.BlogSlugExists(ctx, s)
		if err != nil {
			return r, fmt.Errorf("check slug %q: %w", s, err)
		}
		if exists {
			continue
		}
		_, err = store.CreateBlogPost(ctx, &db.CreateBlogPostParams{
			Title:         p.Title,
			Slug:          s,
			Excerpt:       p.Excerpt,
			Content:       p.Content,
			FeaturedImage: p.Image,
			Status:        db.PostStatusPublished,
			IsFeatured:    p.Featured,
			// Older posts first so the list keeps this order.
			PublishedAt: now.Add(-time.Duration(len(Posts)-i) * 24 * time.Hour),
		})
		if err != nil {
			return r, fmt.Errorf("create post %q: %w", s, err)
		}
		r.Posts++
	}

	if _, err := store.GetSiteSettings(ctx); err != nil {
		if !db.IsNotFound(err) {
			return r, fmt.Errorf("get settings: %w", err)
		}
		if err := store.UpsertSiteSettings(ctx, Settings()); err != nil {
			return r, fmt.Errorf("save settings: %w", err)
		}
		r.Settings = true
	}

	slog.InfoContext(ctx, "Seed complete", "report", r.String())
	return r, nil
}

func seedContent(ctx context.Context, store Store, r *Report) error {
	for _, g := range Gallery() {
		if _, err := store.CreateGalleryItem(ctx, g); err != nil {
			return fmt.Errorf("create gallery item %q: %w", g.Title, err)
		}
		r.Gallery++
	}
	for _, t := range Testimonials {
		t := t
		if _, err := store.CreateTestimonial(ctx, &t); err != nil {
			return fmt.Errorf("create testimonial %q: %w", t.ClientName, err)
		}
		r.Testimonials++
	}
	for _, m := range Members {
		m := m
		if err := store.CreateBandMember(ctx, &m); err != nil {
			return fmt.Errorf("create member %q: %w", m.Name, err)
		}
		r.Members++
	}
	for _, s := range Services {
		s := s
		if err := store.CreateService(ctx, &s); err != nil {
			return fmt.Errorf("create service %q: %w", s.Name, err)
		}
		r.Services++
	}
	return nil
}

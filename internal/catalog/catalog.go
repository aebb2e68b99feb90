// Package catalog is the read side of the site: it turns stored rows into the
// values pages and widgets render.
package catalog

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"diamondband.live/site/internal/db"
	"diamondband.live/site/pkg/carousel"
	"diamondband.live/site/pkg/gallery"
	"diamondband.live/site/pkg/utils/slug"
)

// Store is the subset of *db.Queries the catalog reads from.
type Store interface {
	ListPublicGalleryItems(ctx context.Context) ([]*db.GalleryItem, error)
	ListFeaturedGalleryItems(ctx context.Context, limit int32) ([]*db.GalleryItem, error)
	ListTestimonials(ctx context.Context) ([]*db.Testimonial, error)
	ListActiveBandMembers(ctx context.Context, limit int32) ([]*db.BandMember, error)
	ListServices(ctx context.Context, arg *db.ListServicesParams) ([]*db.Service, error)
	ListPublishedBlogPosts(ctx context.Context, arg *db.ListPublishedBlogPostsParams) ([]*db.BlogPost, error)
	CountPublishedBlogPosts(ctx context.Context, now time.Time) (int64, error)
	GetPublishedBlogPostBySlug(ctx context.Context, slug string, now time.Time) (*db.BlogPost, error)
}

// Catalog serves content. It implements gallery.Source and carousel.Source.
type Catalog struct {
	store Store
	now   func() time.Time
}

var (
	_ gallery.Source  = (*Catalog)(nil)
	_ carousel.Source = (*Catalog)(nil)
)

// New returns a catalog over store.
func New(store Store) *Catalog {
	return &Catalog{store: store, now: time.Now}
}

// WithClock replaces the clock used for publication checks.
func (c *Catalog) WithClock(now func() time.Time) *Catalog {
	c.now = now
	return c
}

// GalleryItem converts a stored row.
func GalleryItem(r *db.GalleryItem) gallery.Item {
	return gallery.Item{
		ID:          db.UUIDString(r.ID),
		ImageURL:    r.ImageUrl,
		Height:      int(r.Height),
		Description: r.Description,
		Title:       r.Title,
		MediaType:   r.MediaType,
		EventType:   r.EventType,
		EventDate:   db.DateTime(r.EventDate),
		Location:    r.EventLocation,
		VideoURL:    r.VideoUrl,
		Featured:    r.IsFeatured,
	}
}

func galleryItems(rows []*db.GalleryItem) []gallery.Item {
	out := make([]gallery.Item, 0, len(rows))
	for _, r := range rows {
		out = append(out, GalleryItem(r))
	}
	return out
}

// ListGallery returns every public item, newest event first.
func (c *Catalog) ListGallery(ctx context.Context) ([]gallery.Item, error) {
	rows, err := c.store.ListPublicGalleryItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("list gallery: %w", err)
	}
	return galleryItems(rows), nil
}

// FeaturedGallery returns up to n featured public items.
func (c *Catalog) FeaturedGallery(ctx context.Context, n int) ([]gallery.Item, error) {
	rows, err := c.store.ListFeaturedGalleryItems(ctx, int32(n))
	if err != nil {
		return nil, fmt.Errorf("list featured gallery: %w", err)
	}
	return galleryItems(rows), nil
}

// ListTestimonials returns all testimonials, featured first.
func (c *Catalog) ListTestimonials(ctx context.Context) ([]carousel.Testimonial, error) {
	rows, err := c.store.ListTestimonials(ctx)
	if err != nil {
		return nil, fmt.Errorf("list testimonials: %w", err)
	}
	out := make([]carousel.Testimonial, 0, len(rows))
	for _, r := range rows {
		out = append(out, carousel.Testimonial{
			ID:            db.UUIDString(r.ID),
			ClientName:    r.ClientName,
			ClientCompany: r.ClientCompany,
			Text:          r.Testimonial,
			Rating:        int(r.Rating),
			EventType:     r.EventType,
			Featured:      r.IsFeatured,
		})
	}
	return out, nil
}

// Member is a band member card.
type Member struct {
	Name      string
	Role      string
	Bio       string
	ImageURL  string
	Instagram string
	Facebook  string
	Twitter   string
}

// Members returns active members in display order; n <= 0 returns all.
func (c *Catalog) Members(ctx context.Context, n int) ([]Member, error) {
	rows, err := c.store.ListActiveBandMembers(ctx, int32(n))
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	out := make([]Member, 0, len(rows))
	for _, r := range rows {
		out = append(out, Member{
			Name: r.Name, Role: r.Role, Bio: r.Bio, ImageURL: r.ImageUrl,
			Instagram: r.Instagram, Facebook: r.Facebook, Twitter: r.Twitter,
		})
	}
	return out, nil
}

// Service is an offering as shown on the services page.
type Service struct {
	Name             string
	Type             string
	TypeLabel        string
	Description      string
	ShortDescription string
	PriceRange       string
	Duration         string
	Features         []string
	Icon             string
	ImageURL         string
	Featured         bool
}

// Services lists offerings; featuredOnly and n narrow the list for the home
// page.
func (c *Catalog) Services(ctx context.Context, featuredOnly bool, n int) ([]Service, error) {
	rows, err := c.store.ListServices(ctx, &db.ListServicesParams{FeaturedOnly: featuredOnly, Limit: int32(n)})
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	out := make([]Service, 0, len(rows))
	for _, r := range rows {
		out = append(out, Service{
			Name:             r.Name,
			Type:             r.ServiceType,
			TypeLabel:        slug.Title(r.ServiceType),
			Description:      r.Description,
			ShortDescription: r.ShortDescription,
			PriceRange:       r.PriceRange,
			Duration:         r.Duration,
			Features:         r.FeatureList(),
			Icon:             r.Icon,
			ImageURL:         r.ImageUrl,
			Featured:         r.IsFeatured,
		})
	}
	return out, nil
}

// PostsPerPage is the blog index page size.
const PostsPerPage = 6

// PostPage is one page of the blog index.
type PostPage struct {
	Posts      []*db.BlogPost
	Page       int
	TotalPages int
}

// HasPrev reports whether a newer page exists.
func (p PostPage) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether an older page exists.
func (p PostPage) HasNext() bool { return p.Page < p.TotalPages }

// Posts returns page (1-based) of published posts. Out of range pages are
// clamped.
func (c *Catalog) Posts(ctx context.Context, page int) (PostPage, error) {
	now := c.now()
	total, err := c.store.CountPublishedBlogPosts(ctx, now)
	if err != nil {
		return PostPage{}, fmt.Errorf("count posts: %w", err)
	}
	pages := int((total + PostsPerPage - 1) / PostsPerPage)
	if pages < 1 {
		pages = 1
	}
	page = min(max(page, 1), pages)

	posts, err := c.store.ListPublishedBlogPosts(ctx, &db.ListPublishedBlogPostsParams{
		Now:    now,
		Limit:  PostsPerPage,
		Offset: int32((page - 1) * PostsPerPage),
	})
	if err != nil {
		return PostPage{}, fmt.Errorf("list posts: %w", err)
	}
	return PostPage{Posts: posts, Page: page, TotalPages: pages}, nil
}

// LatestPosts returns the n most recent published posts.
func (c *Catalog) LatestPosts(ctx context.Context, n int) ([]*db.BlogPost, error) {
	posts, err := c.store.ListPublishedBlogPosts(ctx, &db.ListPublishedBlogPostsParams{Now: c.now(), Limit: int32(n)})
	if err != nil {
		return nil, fmt.Errorf("list latest posts: %w", err)
	}
	return posts, nil
}

// Post returns one published post. Drafts and future posts are not found.
func (c *Catalog) Post(ctx context.Context, s string) (*db.BlogPost, error) {
	return c.store.GetPublishedBlogPostBySlug(ctx, s, c.now())
}

// Stat is one animated counter of the home page.
type Stat struct {
	Target int
	Label  string
	// Delay staggers the animation start.
	Delay time.Duration
}

// ParseStats reads "target,label,delayMillis|..." entries. Malformed entries
// are skipped.
func ParseStats(s string) []Stat {
	var out []Stat
	for _, entry := range strings.Split(s, "|") {
		parts := strings.Split(entry, ",")
		if len(parts) != 3 {
			continue
		}
		target, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			continue
		}
		delay, err := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err != nil {
			continue
		}
		out = append(out, Stat{
			Target: target,
			Label:  strings.TrimSpace(parts[1]),
			Delay:  time.Duration(delay) * time.Millisecond,
		})
	}
	return out
}

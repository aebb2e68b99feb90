// Package gallery holds the photo gallery model: the immutable item list, the
// modal navigator that tracks the currently viewed item, masonry column packing
// and the gallery filters.
package gallery

import (
	"context"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Media types for gallery items.
const (
	MediaImage = "image"
	MediaVideo = "video"
	MediaAudio = "audio"
)

// Item is a single gallery entry. Items are immutable once fetched.
type Item struct {
	ID          string    `json:"id"`
	ImageURL    string    `json:"image_url"`
	Height      int       `json:"height"`
	Description string    `json:"description"`
	Title       string    `json:"title,omitempty"`
	MediaType   string    `json:"media_type,omitempty"`
	EventType   string    `json:"event_type,omitempty"`
	EventDate   time.Time `json:"event_date,omitzero"`
	Location    string    `json:"event_location,omitempty"`
	VideoURL    string    `json:"video_url,omitempty"`
	Featured    bool      `json:"featured,omitempty"`
}

// Source lists gallery items from wherever they live (database, HTTP endpoint).
type Source interface {
	ListGallery(ctx context.Context) ([]Item, error)
}

// Load fetches the item list. A failing source degrades to an empty list so the
// page still renders; the failure is logged.
func Load(ctx context.Context, src Source, logger *slog.Logger) []Item {
	if logger == nil {
		logger = slog.Default()
	}
	items, err := src.ListGallery(ctx)
	if err != nil {
		logger.Warn("failed to load gallery items", "error", err)
		return []Item{}
	}
	if items == nil {
		return []Item{}
	}
	return items
}

// Filter narrows a list by event type, media type and year. Empty fields and
// the literal "all" match everything.
type Filter struct {
	EventType string `json:"event_type"`
	MediaType string `json:"media_type"`
	Year      string `json:"year"`
}

func matchAll(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, "all")
}

// IsZero reports whether the filter matches every item.
func (f Filter) IsZero() bool {
	return matchAll(f.EventType) && matchAll(f.MediaType) && matchAll(f.Year)
}

// Match reports whether the item satisfies the filter.
func (f Filter) Match(it Item) bool {
	if !matchAll(f.EventType) && !strings.EqualFold(it.EventType, strings.TrimSpace(f.EventType)) {
		return false
	}
	if !matchAll(f.MediaType) && !strings.EqualFold(it.MediaType, strings.TrimSpace(f.MediaType)) {
		return false
	}
	if !matchAll(f.Year) {
		year, err := strconv.Atoi(strings.TrimSpace(f.Year))
		if err != nil || it.EventDate.IsZero() || it.EventDate.Year() != year {
			return false
		}
	}
	return true
}

// Apply returns the matching items in their original order.
func (f Filter) Apply(items []Item) []Item {
	if f.IsZero() {
		return items
	}
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if f.Match(it) {
			out = append(out, it)
		}
	}
	return out
}

// Years returns the distinct event years present in items, newest first.
func Years(items []Item) []int {
	seen := map[int]struct{}{}
	var years []int
	for _, it := range items {
		if it.EventDate.IsZero() {
			continue
		}
		y := it.EventDate.Year()
		if _, ok := seen[y]; ok {
			continue
		}
		seen[y] = struct{}{}
		years = append(years, y)
	}
	slices.Sort(years)
	slices.Reverse(years)
	return years
}

// defaultHeight is used for items without a layout hint.
const defaultHeight = 400

// Columns packs items into n columns for a masonry layout. Each item goes to
// the column with the smallest accumulated height, so columns stay balanced
// while items keep their relative order inside a column.
func Columns(items []Item, n int) [][]Item {
	if n < 1 {
		n = 1
	}
	cols := make([][]Item, n)
	heights := make([]int, n)
	for _, it := range items {
		shortest := 0
		for i := 1; i < n; i++ {
			if heights[i] < heights[shortest] {
				shortest = i
			}
		}
		h := it.Height
		if h <= 0 {
			h = defaultHeight
		}
		cols[shortest] = append(cols[shortest], it)
		heights[shortest] += h
	}
	return cols
}

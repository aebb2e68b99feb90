// Package carousel implements the testimonial slider: a circular index over a
// fixed list that advances on a timer unless the visitor is hovering it.
package carousel

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// DefaultInterval is the autoplay period.
const DefaultInterval = 5 * time.Second

// ErrIndexOutOfRange is returned by JumpTo for an index outside the list.
var ErrIndexOutOfRange = errors.New("carousel: index out of range")

// Testimonial is one client quote. Immutable once fetched.
type Testimonial struct {
	ID            string `json:"id"`
	ClientName    string `json:"client_name"`
	ClientCompany string `json:"client_company,omitempty"`
	Text          string `json:"testimonial"`
	Rating        int    `json:"rating"`
	EventType     string `json:"event_type,omitempty"`
	Featured      bool   `json:"featured,omitempty"`
}

// Source lists testimonials.
type Source interface {
	ListTestimonials(ctx context.Context) ([]Testimonial, error)
}

// Fallback returns the built-in testimonials shown when the list cannot be
// fetched.
func Fallback() []Testimonial {
	return []Testimonial{
		{
			ID:         "1",
			ClientName: "Sarah & Michael",
			Text:       "Diamond Band made our wedding day absolutely magical! Their music was perfect and they were so professional.",
			Rating:     5,
			EventType:  "Wedding",
		},
		{
			ID:         "2",
			ClientName: "Corporate Events Inc.",
			Text:       "Outstanding performance at our annual gala. The band created the perfect atmosphere for our guests.",
			Rating:     5,
			EventType:  "Corporate Event",
		},
	}
}

// Load fetches testimonials, substituting Fallback when the source fails or
// returns nothing.
//
// TODO: surface the fallback to the page (e.g. a muted "sample reviews" label)
// so a backend outage is visible instead of silently masked.
func Load(ctx context.Context, src Source, logger *slog.Logger) []Testimonial {
	if logger == nil {
		logger = slog.Default()
	}
	items, err := src.ListTestimonials(ctx)
	if err != nil {
		logger.Warn("failed to load testimonials, using fallback", "error", err)
		return Fallback()
	}
	if len(items) == 0 {
		logger.Info("no testimonials available, using fallback")
		return Fallback()
	}
	return items
}

// Stars returns five flags, true for each filled star of rating.
func Stars(rating int) [5]bool {
	var s [5]bool
	for i := range s {
		s[i] = i < rating
	}
	return s
}

// Carousel holds the slider state. It is safe for concurrent use: the autoplay
// timer and visitor commands arrive on different goroutines.
type Carousel struct {
	mu       sync.Mutex
	items    []Testimonial
	index    int
	hovered  bool
	interval time.Duration
	ticker   func(time.Duration) Ticker
}

// Option configures a Carousel.
type Option func(*Carousel)

// WithInterval overrides the autoplay period.
func WithInterval(d time.Duration) Option {
	return func(c *Carousel) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithTicker replaces the timer source, mainly for tests.
func WithTicker(fn func(time.Duration) Ticker) Option {
	return func(c *Carousel) { c.ticker = fn }
}

// New returns a carousel positioned on the first item with autoplay enabled.
func New(items []Testimonial, opts ...Option) *Carousel {
	c := &Carousel{
		items:    items,
		interval: DefaultInterval,
		ticker:   newTimeTicker,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Len returns the number of testimonials.
func (c *Carousel) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Items returns the testimonial list.
func (c *Carousel) Items() []Testimonial {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.items
}

// Index returns the current position.
func (c *Carousel) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index
}

// Current returns the testimonial at the current position.
func (c *Carousel) Current() (Testimonial, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.items) == 0 {
		return Testimonial{}, false
	}
	return c.items[c.index], true
}

// Autoplay reports whether the timer is currently allowed to advance.
func (c *Carousel) Autoplay() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.hovered
}

// SetHover records whether the pointer is over the slider. Hovering pauses
// autoplay; leaving resumes it.
func (c *Carousel) SetHover(hovered bool) {
	c.mu.Lock()
	c.hovered = hovered
	c.mu.Unlock()
}

// Next advances circularly.
func (c *Carousel) Next() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.advance()
}

func (c *Carousel) advance() {
	if len(c.items) == 0 {
		return
	}
	c.index = (c.index + 1) % len(c.items)
}

// Previous retreats circularly.
func (c *Carousel) Previous() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.items) == 0 {
		return
	}
	c.index = (c.index - 1 + len(c.items)) % len(c.items)
}

// JumpTo moves straight to index i.
func (c *Carousel) JumpTo(i int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i < 0 || i >= len(c.items) {
		return ErrIndexOutOfRange
	}
	c.index = i
	return nil
}

// Tick is one timer firing. It advances only while autoplay is on and there
// is something to rotate to, and reports whether the index moved.
func (c *Carousel) Tick() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.hovered || len(c.items) < 2 {
		return false
	}
	c.advance()
	return true
}

// Run drives autoplay until ctx is done, calling onChange with the new index
// after every advancing tick. Manual navigation never touches the ticker, so
// the timer phase is preserved.
func (c *Carousel) Run(ctx context.Context, onChange func(int)) {
	t := c.ticker(c.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C():
			if c.Tick() && onChange != nil {
				onChange(c.Index())
			}
		}
	}
}

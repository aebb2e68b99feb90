// Package carouselhub keeps one testimonial carousel per open page view. The
// view's SSE stream subscribes to index changes; visitor commands arrive on
// separate requests and are applied to the same carousel.
package carouselhub

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"diamondband.live/site/pkg/carousel"
)

const (
	// Hard cap so a flood of tabs cannot pin unbounded timers.
	maxViews = 500

	eventBuffer = 8
)

var (
	ErrTooManyViews = errors.New("carouselhub: too many open views")
	ErrUnknownView  = errors.New("carouselhub: unknown view")
)

// Event reports the carousel state after a change.
type Event struct {
	View     string
	Index    int
	Autoplay bool
}

// Hub manages per-view carousels.
type Hub struct {
	mu    sync.Mutex
	views map[string]*view
	opts  []carousel.Option
}

type view struct {
	c      *carousel.Carousel
	cancel context.CancelFunc
	events chan Event
}

// NewHub returns a hub whose carousels are built with opts.
func NewHub(opts ...carousel.Option) *Hub {
	return &Hub{
		views: make(map[string]*view),
		opts:  opts,
	}
}

// Open starts a carousel over items and returns its view id and event
// channel. Autoplay runs until Close is called or ctx is done.
func (h *Hub) Open(ctx context.Context, items []carousel.Testimonial) (string, <-chan Event, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.views) >= maxViews {
		return "", nil, ErrTooManyViews
	}

	id := uuid.NewString()
	runCtx, cancel := context.WithCancel(ctx)
	v := &view{
		c:      carousel.New(items, h.opts...),
		cancel: cancel,
		events: make(chan Event, eventBuffer),
	}
	h.views[id] = v

	go v.c.Run(runCtx, func(int) { h.publish(id) })

	return id, v.events, nil
}

// Close stops the view's autoplay and closes its event channel.
func (h *Hub) Close(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	v, ok := h.views[id]
	if !ok {
		return
	}
	delete(h.views, id)
	v.cancel()
	close(v.events)
}

// Len returns the number of open views.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.views)
}

// Snapshot returns the current state of a view.
func (h *Hub) Snapshot(id string) (Event, error) {
	h.mu.Lock()
	v, ok := h.views[id]
	h.mu.Unlock()
	if !ok {
		return Event{}, ErrUnknownView
	}
	return Event{View: id, Index: v.c.Index(), Autoplay: v.c.Autoplay()}, nil
}

// Do applies fn to the view's carousel and notifies the stream.
func (h *Hub) Do(id string, fn func(*carousel.Carousel) error) error {
	h.mu.Lock()
	v, ok := h.views[id]
	h.mu.Unlock()
	if !ok {
		return ErrUnknownView
	}
	if err := fn(v.c); err != nil {
		return err
	}
	h.publish(id)
	return nil
}

func (h *Hub) publish(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	v, ok := h.views[id]
	if !ok {
		return
	}
	evt := Event{View: id, Index: v.c.Index(), Autoplay: v.c.Autoplay()}
	select {
	case v.events <- evt:
	default:
		// Drop rather than block; the next event carries the full state.
	}
}

// package testimonial_api streams the testimonial carousel and accepts the
// visitor's carousel commands.
package testimonial_api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/starfederation/datastar-go/datastar"

	"diamondband.live/site/cmd/web/handlers/common"
	"diamondband.live/site/cmd/web/internal/carouselhub"
	"diamondband.live/site/cmd/web/templates"
	"diamondband.live/site/pkg/carousel"
)

// SlideID is the element patched with the visible testimonial.
const SlideID = "testimonial-slide"

// HandleList returns the testimonials as JSON, falling back to the built-in
// list when the store fails.
func HandleList(src carousel.Source) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, carousel.Load(c.Request().Context(), src, nil))
	}
}

// HandleStream opens a carousel for this page view and streams each slide
// change until the visitor leaves.
func HandleStream(src carousel.Source, hub *carouselhub.Hub) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		items := carousel.Load(ctx, src, nil)

		id, events, err := hub.Open(ctx, items)
		if errors.Is(err, carouselhub.ErrTooManyViews) {
			return common.ErrUnavailable("too many open carousels")
		}
		if err != nil {
			return err
		}
		defer hub.Close(id)

		sse := common.NewSSE(c)

		b, _ := json.Marshal(map[string]any{"_carouselView": id})
		if err := sse.PatchSignals(b); err != nil {
			return nil
		}
		first, err := hub.Snapshot(id)
		if err != nil {
			return nil
		}
		if err := patchSlide(sse, items, first); err != nil {
			return nil
		}

		for {
			select {
			case <-ctx.Done():
				return nil
			case ev, ok := <-events:
				if !ok {
					return nil
				}
				if err := patchSlide(sse, items, ev); err != nil {
					slog.Debug("testimonial stream closed", "view", id, "error", err)
					return nil
				}
			}
		}
	}
}

func patchSlide(sse *datastar.ServerSentEventGenerator, items []carousel.Testimonial, ev carouselhub.Event) error {
	view := templates.SlideView{View: ev.View, Items: items, Index: ev.Index, Autoplay: ev.Autoplay}
	return sse.PatchElementTempl(templates.TestimonialSlide(view), datastar.WithSelectorID(SlideID), datastar.WithModeReplace())
}

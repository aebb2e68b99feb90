// package gallery_api serves the gallery list and drives the photo modal.
package gallery_api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/starfederation/datastar-go/datastar"

	"diamondband.live/site/cmd/web/handlers/common"
	"diamondband.live/site/cmd/web/handlers/content"
	"diamondband.live/site/cmd/web/templates"
	"diamondband.live/site/internal/catalog"
	"diamondband.live/site/pkg/gallery"
)

// ModalID is the element patched with the modal contents.
const ModalID = "gallery-modal"

// Signals is the modal state carried by the page.
type Signals struct {
	Index  *int           `json:"_galleryIndex"`
	Filter gallery.Filter `json:"_galleryFilter"`
}

// HandleList returns the public gallery as JSON, narrowed by the query filter.
func HandleList(cat *catalog.Catalog) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, gallery.Load(c.Request().Context(), cat, nil))
	}
}

// HandleFilter answers the gallery filter form with {"items": [...]}.
func HandleFilter(cat *catalog.Catalog) echo.HandlerFunc {
	return func(c echo.Context) error {
		items := gallery.Load(c.Request().Context(), cat, nil)
		return c.JSON(http.StatusOK, map[string]any{
			"items": content.FilterFromQuery(c).Apply(items),
		})
	}
}

// Op changes the modal selection.
type Op func(c echo.Context, nav *gallery.Navigator) error

// Open selects the item named by the :id route parameter.
func Open(c echo.Context, nav *gallery.Navigator) error {
	if !nav.Open(c.Param("id")) {
		return common.ErrNotFound("gallery item not found")
	}
	return nil
}

func Next(_ echo.Context, nav *gallery.Navigator) error     { nav.Next(); return nil }
func Previous(_ echo.Context, nav *gallery.Navigator) error { nav.Previous(); return nil }
func Close(_ echo.Context, nav *gallery.Navigator) error    { nav.Close(); return nil }

// Key applies the ?key= binding. Unbound keys are ignored.
func Key(c echo.Context, nav *gallery.Navigator) error {
	nav.HandleKey(c.QueryParam("key"))
	return nil
}

// HandleModal rebuilds the navigator from the page's signals, applies op, and
// patches the modal and the selected index back.
func HandleModal(cat *catalog.Catalog, op Op) echo.HandlerFunc {
	return func(c echo.Context) error {
		signals := &Signals{}
		if err := datastar.ReadSignals(c.Request(), signals); err != nil {
			return common.ErrBadRequest("invalid signals")
		}

		items := signals.Filter.Apply(gallery.Load(c.Request().Context(), cat, nil))
		idx := gallery.NoSelection
		if signals.Index != nil {
			idx = *signals.Index
		}
		nav := gallery.Restore(items, idx)
		if err := op(c, nav); err != nil {
			return err
		}

		view := templates.ModalView{Count: nav.Len()}
		if it, ok := nav.Selected(); ok {
			view.Open = true
			view.Item = it
			view.Index, _ = nav.Index()
		}
		selected, _ := nav.Index()

		sse := common.NewSSE(c)
		if err := sse.PatchElementTempl(templates.GalleryModal(view), datastar.WithSelectorID(ModalID), datastar.WithModeReplace()); err != nil {
			slog.Error("failed to patch gallery modal", "error", err)
			return err
		}
		b, _ := json.Marshal(map[string]any{"_galleryIndex": selected})
		return sse.PatchSignals(b)
	}
}

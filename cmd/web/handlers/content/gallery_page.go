package content

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"diamondband.live/site/cmd/web/handlers/common"
	"diamondband.live/site/cmd/web/templates"
	"diamondband.live/site/internal/catalog"
	"diamondband.live/site/pkg/forms"
	"diamondband.live/site/pkg/gallery"
)

// GalleryColumns is the masonry column count of the gallery page.
const GalleryColumns = 3

var mediaTypes = []forms.Choice{
	{Value: gallery.MediaImage, Label: "Photos"},
	{Value: gallery.MediaVideo, Label: "Videos"},
	{Value: gallery.MediaAudio, Label: "Audio"},
}

// FilterFromQuery reads ?event_type=&media_type=&year=.
func FilterFromQuery(c echo.Context) gallery.Filter {
	return gallery.Filter{
		EventType: c.QueryParam("event_type"),
		MediaType: c.QueryParam("media_type"),
		Year:      c.QueryParam("year"),
	}
}

// HandleGalleryPage renders the filtered masonry gallery. The modal opens
// over Datastar; the active filter rides along as a signal so the modal walks
// the same list the visitor sees.
func HandleGalleryPage(p *common.Pages, cat *catalog.Catalog) echo.HandlerFunc {
	return func(c echo.Context) error {
		all := gallery.Load(c.Request().Context(), cat, nil)
		filter := FilterFromQuery(c)
		items := filter.Apply(all)

		return common.Render(c, http.StatusOK, templates.Gallery(templates.GalleryView{
			Page:       p.Page(c, "Gallery", "gallery"),
			Filter:     filter,
			Columns:    gallery.Columns(items, GalleryColumns),
			Count:      len(items),
			Years:      gallery.Years(all),
			EventTypes: forms.EventTypes,
			MediaTypes: mediaTypes,
		}))
	}
}

package content

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"diamondband.live/site/cmd/web/handlers/common"
	"diamondband.live/site/cmd/web/templates"
	"diamondband.live/site/internal/catalog"
	"diamondband.live/site/pkg/gallery"
)

const (
	homeMembers  = 4
	homeServices = 3
	homeGallery  = 6
	homePosts    = 3
)

// HandleHomePage renders the landing page. Each section degrades to empty on
// a store error so the page always renders.
func HandleHomePage(p *common.Pages, cat *catalog.Catalog) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		page := p.Page(c, "", "home")

		members, err := cat.Members(ctx, homeMembers)
		if err != nil {
			slog.Warn("home: members unavailable", "error", err)
		}
		services, err := cat.Services(ctx, true, homeServices)
		if err != nil {
			slog.Warn("home: services unavailable", "error", err)
		}
		items, err := cat.FeaturedGallery(ctx, homeGallery)
		if err != nil {
			slog.Warn("home: gallery unavailable", "error", err)
			items = []gallery.Item{}
		}
		posts, err := cat.LatestPosts(ctx, homePosts)
		if err != nil {
			slog.Warn("home: posts unavailable", "error", err)
		}

		return common.Render(c, http.StatusOK, templates.Home(templates.HomeView{
			Page:     page,
			Members:  members,
			Services: services,
			Gallery:  items,
			Posts:    posts,
			Stats:    catalog.ParseStats(page.Settings.Stats),
		}))
	}
}

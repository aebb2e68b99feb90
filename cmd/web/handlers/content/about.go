package content

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"diamondband.live/site/cmd/web/handlers/common"
	"diamondband.live/site/cmd/web/templates"
	"diamondband.live/site/internal/catalog"
)

func HandleAboutPage(p *common.Pages, cat *catalog.Catalog) echo.HandlerFunc {
	return func(c echo.Context) error {
		page := p.Page(c, "About", "about")
		members, err := cat.Members(c.Request().Context(), 0)
		if err != nil {
			slog.Warn("about: members unavailable", "error", err)
		}
		return common.Render(c, http.StatusOK, templates.About(templates.AboutView{
			Page:    page,
			Members: members,
			Stats:   catalog.ParseStats(page.Settings.Stats),
		}))
	}
}

package content

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"diamondband.live/site/cmd/web/handlers/common"
	"diamondband.live/site/cmd/web/templates"
	"diamondband.live/site/internal/catalog"
)

func HandleServicesPage(p *common.Pages, cat *catalog.Catalog) echo.HandlerFunc {
	return func(c echo.Context) error {
		services, err := cat.Services(c.Request().Context(), false, 0)
		if err != nil {
			slog.Warn("services: list unavailable", "error", err)
		}
		return common.Render(c, http.StatusOK, templates.Services(templates.ServicesView{
			Page:     p.Page(c, "Services", "services"),
			Services: services,
		}))
	}
}

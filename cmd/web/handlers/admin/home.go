package admin

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"diamondband.live/site/cmd/web/handlers/common"
	"diamondband.live/site/cmd/web/templates"
	"diamondband.live/site/internal/db"
	"diamondband.live/site/internal/inbox"
)

var statuses = []db.BookingStatus{
	db.BookingStatusPending,
	db.BookingStatusConfirmed,
	db.BookingStatusCompleted,
	db.BookingStatusCancelled,
}

// HandleAdminHomePage lists bookings (optionally ?status=) and messages.
func HandleAdminHomePage(p *common.Pages, a *inbox.Admin) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		filter := db.BookingStatus(c.QueryParam("status"))
		if filter != "" && !filter.Valid() {
			return common.ErrBadRequest("unknown status")
		}

		summary, err := a.Summary(ctx)
		if err != nil {
			slog.Error("failed to load admin summary", "error", err)
		}
		bookings, err := a.Bookings(ctx, filter, common.PageParam(c))
		if err != nil {
			slog.Error("failed to list bookings", "error", err)
			return common.ErrInternal("failed to list bookings")
		}
		messages, err := a.Messages(ctx, false, 1)
		if err != nil {
			slog.Error("failed to list messages", "error", err)
			return common.ErrInternal("failed to list messages")
		}

		return common.Render(c, http.StatusOK, templates.AdminHome(templates.AdminView{
			Page:     p.Page(c, "Admin", "admin"),
			Summary:  summary,
			Filter:   filter,
			Bookings: bookings,
			Messages: messages,
			Statuses: statuses,
		}))
	}
}

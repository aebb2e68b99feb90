package admin

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"diamondband.live/site/cmd/web/handlers/common"
	"diamondband.live/site/internal/db"
	"diamondband.live/site/internal/inbox"
)

// HandleBookingStatus updates a booking's status, notes and quote.
func HandleBookingStatus(p *common.Pages, a *inbox.Admin) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := common.RequireUUIDParam(c, "id")
		if err != nil {
			return err
		}

		update := inbox.StatusUpdate{
			ID:          db.UUIDString(id),
			Status:      db.BookingStatus(c.FormValue("status")),
			QuotedPrice: c.FormValue("quoted_price"),
		}
		if _, ok := c.Request().PostForm["admin_notes"]; ok {
			notes := c.FormValue("admin_notes")
			update.Notes = &notes
		}

		b, err := a.SetBookingStatus(c.Request().Context(), update)
		msg := ""
		switch {
		case errors.Is(err, inbox.ErrNotFound):
			return common.ErrNotFound("booking not found")
		case err != nil:
			slog.Warn("failed to update booking", "id", update.ID, "error", err)
			msg = "Update failed: " + err.Error()
		default:
			slog.Info("booking updated", "reference", b.Reference, "status", b.Status, "admin", common.AdminName(c.Request().Context()))
			msg = "Booking " + b.Reference + " marked " + string(b.Status) + "."
		}
		if err := p.Sessions().AddFlash(c.Response().Writer, c.Request(), msg); err != nil {
			slog.Warn("failed to store flash", "error", err)
		}
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
}

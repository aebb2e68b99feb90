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

// HandleMessageRead sets or clears the read flag of a contact message.
func HandleMessageRead(a *inbox.Admin) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := common.RequireUUIDParam(c, "id")
		if err != nil {
			return err
		}
		read := c.FormValue("read") != "false"
		if err := a.MarkRead(c.Request().Context(), db.UUIDString(id), read); err != nil {
			if errors.Is(err, inbox.ErrNotFound) {
				return common.ErrNotFound("message not found")
			}
			slog.Error("failed to mark message", "error", err)
			return common.ErrInternal("failed to update message")
		}
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
}

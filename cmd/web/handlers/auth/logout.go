package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	webauth "diamondband.live/site/cmd/web/auth"
)

func HandleLogout(sm *webauth.SessionManager) echo.HandlerFunc {
	return func(c echo.Context) error {
		sm.ClearSession(c.Response().Writer, c.Request())
		return c.Redirect(http.StatusSeeOther, "/")
	}
}

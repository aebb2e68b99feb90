package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"diamondband.live/site/cmd/web/handlers/common"
	"diamondband.live/site/cmd/web/templates"
	"diamondband.live/site/internal/db"
	"diamondband.live/site/pkg/utils/passwords"
)

const msgInvalidLogin = "Invalid username or password"

// AdminUsers looks up admin accounts.
type AdminUsers interface {
	GetAdminUserByUsername(ctx context.Context, username string) (*db.AdminUser, error)
	TouchAdminLogin(ctx context.Context, user *db.AdminUser) error
}

func HandleLoginPage(p *common.Pages) echo.HandlerFunc {
	return func(c echo.Context) error {
		if common.AdminName(c.Request().Context()) != "" {
			return c.Redirect(http.StatusFound, "/admin/")
		}
		return common.Render(c, http.StatusOK, templates.Login(templates.LoginView{Page: p.Page(c, "Sign In", "admin")}))
	}
}

func HandleLogin(p *common.Pages, users AdminUsers) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		username := strings.TrimSpace(c.FormValue("username"))
		password := c.FormValue("password")

		fail := func(code int, msg string) error {
			return common.Render(c, code, templates.Login(templates.LoginView{
				Page:     p.Page(c, "Sign In", "admin"),
				Username: username,
				Error:    msg,
			}))
		}

		if username == "" || password == "" {
			return fail(http.StatusBadRequest, "Username and password are required")
		}

		user, err := users.GetAdminUserByUsername(ctx, username)
		if err != nil {
			if !db.IsNotFound(err) {
				slog.Error("failed to look up admin", "error", err)
				return fail(http.StatusInternalServerError, "An error occurred. Please try again.")
			}
			return fail(http.StatusUnauthorized, msgInvalidLogin)
		}
		if err := user.Password.Verify(password); err != nil {
			if !errors.Is(err, passwords.ErrMismatch) {
				slog.Error("failed to verify admin password", "error", err)
			}
			return fail(http.StatusUnauthorized, msgInvalidLogin)
		}

		if err := p.Sessions().SaveSession(c.Response().Writer, c.Request(), db.UUIDString(user.ID), user.Username); err != nil {
			slog.Error("failed to save session", "error", err)
			return fail(http.StatusInternalServerError, "An error occurred. Please try again.")
		}
		if err := users.TouchAdminLogin(ctx, user); err != nil {
			slog.Warn("failed to record admin login", "error", err)
		}
		slog.Info("admin signed in", "username", user.Username)
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
}

package form_api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/starfederation/datastar-go/datastar"

	"diamondband.live/site/cmd/web/handlers/common"
	"diamondband.live/site/cmd/web/templates"
	"diamondband.live/site/internal/inbox"
)

// NewsletterStatusID is the footer element patched with the outcome.
const NewsletterStatusID = "newsletter-status"

const subscribeFailed = "Sorry, we could not subscribe you right now. Please try again later."

// HandleSubscribe adds the posted address to the newsletter.
func HandleSubscribe(p *common.Pages, in *inbox.Inbox) echo.HandlerFunc {
	return func(c echo.Context) error {
		mode := common.RequestMode(c)
		var email string
		switch mode {
		case common.ModeHTML:
			email = c.FormValue("email")
		default:
			values, err := common.ReadStringSignals(c)
			if err != nil {
				return common.ErrBadRequest("invalid body")
			}
			email = values["newsletter_email"]
			if email == "" {
				email = values["email"]
			}
		}

		msg, err := in.Subscribe(c.Request().Context(), email)
		ok := err == nil
		code := http.StatusOK
		if verr, isValidation := inbox.IsValidation(err); isValidation {
			msg, code = verr.Fields["email"], http.StatusBadRequest
		} else if err != nil {
			slog.Error("newsletter subscribe failed", "error", err)
			msg, code = subscribeFailed, http.StatusInternalServerError
		}

		switch mode {
		case common.ModeDatastar:
			sse := common.NewSSE(c)
			if err := sse.PatchElementTempl(templates.NewsletterStatus(templates.NewsletterView{OK: ok, Message: msg}),
				datastar.WithSelectorID(NewsletterStatusID), datastar.WithModeReplace()); err != nil {
				return err
			}
			if !ok {
				return nil
			}
			b, _ := json.Marshal(map[string]string{"newsletter_email": ""})
			return sse.PatchSignals(b)
		case common.ModeJSON:
			return c.JSON(code, Response{Success: ok, Message: msg})
		}

		if err := p.Sessions().AddFlash(c.Response().Writer, c.Request(), msg); err != nil {
			slog.Warn("failed to store flash", "error", err)
		}
		return c.Redirect(http.StatusSeeOther, localReferer(c.Request().Referer()))
	}
}

// localReferer returns the path of ref, or "/" when ref is empty or points
// elsewhere.
func localReferer(ref string) string {
	u, err := url.Parse(ref)
	if err != nil || !strings.HasPrefix(u.Path, "/") || strings.HasPrefix(u.Path, "//") {
		return "/"
	}
	return u.Path
}

package common

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/starfederation/datastar-go/datastar"

	"diamondband.live/site/cmd/web/auth"
	"diamondband.live/site/cmd/web/ctxkeys"
	"diamondband.live/site/cmd/web/templates"
	"diamondband.live/site/internal/db"
)

// Settings returns the current site settings.
type Settings interface {
	Get() *db.SiteSetting
}

// Pages builds the shared page chrome for full renders.
type Pages struct {
	sm       *auth.SessionManager
	settings Settings
	now      func() time.Time
}

func NewPages(sm *auth.SessionManager, settings Settings) *Pages {
	return &Pages{sm: sm, settings: settings, now: time.Now}
}

// Page returns the chrome for a page titled title with nav entry active
// highlighted. Pending flashes are consumed.
func (p *Pages) Page(c echo.Context, title, active string) templates.Page {
	ctx := c.Request().Context()
	settings := p.settings.Get()
	if settings == nil {
		settings = db.DefaultSiteSettings()
	}
	return templates.Page{
		Title:    title,
		Active:   active,
		CSRF:     CSRFToken(ctx),
		Settings: settings,
		Flashes:  p.sm.Flashes(c.Response().Writer, c.Request()),
		Admin:    AdminName(ctx),
		Year:     p.now().Year(),
	}
}

// Sessions exposes the session manager to handlers that sign in or flash.
func (p *Pages) Sessions() *auth.SessionManager { return p.sm }

// CSRFToken returns the token stored by the CSRF middleware.
func CSRFToken(ctx context.Context) string {
	s, _ := ctx.Value(ctxkeys.CSRFToken).(string)
	return s
}

// AdminName returns the signed-in admin, or "".
func AdminName(ctx context.Context) string {
	s, _ := ctx.Value(ctxkeys.Admin).(string)
	return s
}

// Mode is how a request expects its response.
type Mode int

const (
	// ModeHTML is a classic browser navigation or form post.
	ModeHTML Mode = iota
	// ModeDatastar is a Datastar action expecting an SSE stream.
	ModeDatastar
	// ModeJSON is an API client posting and accepting JSON.
	ModeJSON
)

// RequestMode classifies c.
func RequestMode(c echo.Context) Mode {
	r := c.Request()
	if r.Header.Get("Datastar-Request") == "true" {
		return ModeDatastar
	}
	if strings.HasPrefix(r.Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) ||
		strings.Contains(r.Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON) {
		return ModeJSON
	}
	return ModeHTML
}

// ReadStringSignals reads a flat signal object and stringifies its scalar
// values. Nested objects are skipped.
func ReadStringSignals(c echo.Context) (map[string]string, error) {
	raw := map[string]any{}
	if err := datastar.ReadSignals(c.Request(), &raw); err != nil {
		return nil, err
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		switch v := v.(type) {
		case string:
			out[k] = v
		case float64, bool:
			out[k] = fmt.Sprint(v)
		case nil:
			out[k] = ""
		}
	}
	return out, nil
}

// FormValues reads the named fields of a classic form post.
func FormValues(c echo.Context, names ...string) map[string]string {
	out := make(map[string]string, len(names))
	for _, n := range names {
		out[n] = c.FormValue(n)
	}
	return out
}

// Render writes a full page.
func Render(c echo.Context, status int, comp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(status)
	if err := comp.Render(c.Request().Context(), c.Response()); err != nil {
		slog.Error("failed to render page", "path", c.Path(), "error", err)
		return err
	}
	return nil
}

package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"diamondband.live/site/cmd/web/auth"
	"diamondband.live/site/cmd/web/ctxkeys"
	"diamondband.live/site/cmd/web/handlers/admin"
	authhandlers "diamondband.live/site/cmd/web/handlers/auth"
	"diamondband.live/site/cmd/web/handlers/common"
	"diamondband.live/site/cmd/web/handlers/content"
	"diamondband.live/site/cmd/web/handlers/media"
	"diamondband.live/site/cmd/web/templates"

	"diamondband.live/site/cmd/web/handlers/api/form_api"
	"diamondband.live/site/cmd/web/handlers/api/gallery_api"
	"diamondband.live/site/cmd/web/handlers/api/testimonial_api"

	"diamondband.live/site/cmd/web/internal/carouselhub"
	staticpkg "diamondband.live/site/cmd/web/internal/web/utils/static"
	"diamondband.live/site/internal/catalog"
	"diamondband.live/site/internal/inbox"
	"diamondband.live/site/internal/tracing"
	"diamondband.live/site/static"
)

// Paths whose requests are long-lived streams; excluded from request logs.
const testimonialStreamPath = "/api/testimonials/stream"

// Deps are the services the web server routes to.
type Deps struct {
	Sessions   *auth.SessionManager
	Settings   common.Settings
	Catalog    *catalog.Catalog
	Inbox      *inbox.Inbox
	Admin      *inbox.Admin
	AdminUsers authhandlers.AdminUsers
	Carousels  *carouselhub.Hub
	Tracing    tracing.Options
	// MediaDir holds the gallery uploads; empty disables /media/.
	MediaDir string
}

type Webserver struct {
	*echo.Echo
	sessionManager *auth.SessionManager
	pages          *common.Pages
	catalog        *catalog.Catalog
	inbox          *inbox.Inbox
	admin          *inbox.Admin
	adminUsers     authhandlers.AdminUsers
	carousels      *carouselhub.Hub
	staticCache    *staticpkg.StaticCache
	media          *media.Server
}

func NewWebserver(ctx context.Context, deps Deps) (*Webserver, error) {
	e := echo.New()

	staticCache, err := staticpkg.NewStaticCache(static.FS)
	if err != nil {
		return nil, err
	}

	carousels := deps.Carousels
	if carousels == nil {
		carousels = carouselhub.NewHub()
	}

	webserver := &Webserver{
		Echo:           e,
		sessionManager: deps.Sessions,
		pages:          common.NewPages(deps.Sessions, deps.Settings),
		catalog:        deps.Catalog,
		inbox:          deps.Inbox,
		admin:          deps.Admin,
		adminUsers:     deps.AdminUsers,
		carousels:      carousels,
		staticCache:    staticCache,
		media:          media.NewServer(deps.MediaDir),
	}

	if err = webserver.setupMiddleware(deps.Tracing); err != nil {
		return nil, err
	}

	if err = webserver.registerRoutes(); err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "webserver ready", "routes", len(e.Routes()))
	return webserver, nil
}

func (s *Webserver) setupMiddleware(tr tracing.Options) error {
	s.HideBanner = true
	s.HidePort = true
	s.HTTPErrorHandler = s.handleError

	if tr.Skip == nil {
		tr.Skip = tracing.SkipPaths("/healthz", "/static/", media.Prefix)
	}
	s.Use(tracing.Middleware(tr))
	s.Use(middleware.BodyLimit("2M"))
	s.Use(middleware.Recover())
	s.Use(middleware.RequestID())
	s.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
		Skipper: func(c echo.Context) bool {
			// Gzip buffers; the carousel stream must flush every slide.
			return c.Request().URL.Path == testimonialStreamPath
		},
	}))
	s.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			return c.Path() == testimonialStreamPath
		},
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  false,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"remote_ip", v.RemoteIP,
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				fields = append(fields, "error", v.Error)
			}
			slog.Info("request", fields...)
			return nil
		},
	}))
	s.Use(middleware.CSRFWithConfig(middleware.CSRFConfig{
		TokenLookup:    "header:" + templates.CSRFHeader + ",form:" + templates.CSRFField,
		CookieName:     "csrftoken",
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSameSite: http.SameSiteLaxMode,
		ContextKey:     "csrf",
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Request().URL.Path, "/static/") || c.Request().URL.Path == "/healthz"
		},
	}))

	// Hand the CSRF token and the signed-in admin to templates through the
	// request context.
	s.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, _ := c.Get("csrf").(string)
			ctx := context.WithValue(c.Request().Context(), ctxkeys.CSRFToken, token)
			if _, username, err := s.sessionManager.GetSession(c.Request()); err == nil {
				ctx = context.WithValue(ctx, ctxkeys.Admin, username)
			}
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	})

	return nil
}

// requireAdmin sends visitors to the sign-in page.
func (s *Webserver) requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if common.AdminName(c.Request().Context()) == "" {
			return c.Redirect(http.StatusFound, "/admin/login")
		}
		return next(c)
	}
}

// page registers h at path and at path without its trailing slash.
func (s *Webserver) page(path string, h echo.HandlerFunc) {
	s.GET(path, h)
	if trimmed := strings.TrimSuffix(path, "/"); trimmed != "" && trimmed != path {
		s.GET(trimmed, h)
	}
}

func (s *Webserver) registerRoutes() error {
	p := s.pages

	// Pages
	s.page("/", content.HandleHomePage(p, s.catalog))
	s.page("/about/", content.HandleAboutPage(p, s.catalog))
	s.page("/services/", content.HandleServicesPage(p, s.catalog))
	s.page("/gallery/", content.HandleGalleryPage(p, s.catalog))
	s.page("/booking/", content.HandleBookingPage(p))
	s.page("/booking/success/", content.HandleSuccessPage(p, "Booking Request Sent", "/booking/"))
	s.page("/contact/", content.HandleContactPage(p))
	s.page("/contact/success/", content.HandleSuccessPage(p, "Message Sent", "/contact/"))
	s.page("/blog/", content.HandleBlogPage(p, s.catalog))
	s.page("/blog/:slug/", content.HandleBlogPost(p, s.catalog))

	// Form posts
	booking := form_api.HandleSubmit(p, form_api.BookingSpec(s.inbox))
	contact := form_api.HandleSubmit(p, form_api.ContactSpec(s.inbox))
	subscribe := form_api.HandleSubscribe(p, s.inbox)
	s.POST("/booking/", booking)
	s.POST("/booking", booking)
	s.POST("/contact/", contact)
	s.POST("/contact", contact)
	s.POST("/newsletter/", subscribe)
	s.POST("/newsletter", subscribe)
	s.GET("/gallery/filter/", gallery_api.HandleFilter(s.catalog))

	apiGroup := s.Group("/api")
	apiGroup.GET("/gallery/", gallery_api.HandleList(s.catalog))
	apiGroup.GET("/gallery", gallery_api.HandleList(s.catalog))
	apiGroup.POST("/gallery/open/:id", gallery_api.HandleModal(s.catalog, gallery_api.Open))
	apiGroup.POST("/gallery/next", gallery_api.HandleModal(s.catalog, gallery_api.Next))
	apiGroup.POST("/gallery/prev", gallery_api.HandleModal(s.catalog, gallery_api.Previous))
	apiGroup.POST("/gallery/close", gallery_api.HandleModal(s.catalog, gallery_api.Close))
	apiGroup.POST("/gallery/key", gallery_api.HandleModal(s.catalog, gallery_api.Key))

	apiGroup.GET("/testimonials/", testimonial_api.HandleList(s.catalog))
	apiGroup.GET("/testimonials", testimonial_api.HandleList(s.catalog))
	apiGroup.GET("/testimonials/stream", testimonial_api.HandleStream(s.catalog, s.carousels))
	apiGroup.POST("/testimonials/:view/hover", testimonial_api.HandleCommand(s.carousels, testimonial_api.Hover))
	apiGroup.POST("/testimonials/:view/unhover", testimonial_api.HandleCommand(s.carousels, testimonial_api.Unhover))
	apiGroup.POST("/testimonials/:view/next", testimonial_api.HandleCommand(s.carousels, testimonial_api.Next))
	apiGroup.POST("/testimonials/:view/prev", testimonial_api.HandleCommand(s.carousels, testimonial_api.Previous))
	apiGroup.POST("/testimonials/:view/jump/:index", testimonial_api.HandleCommand(s.carousels, testimonial_api.Jump))

	apiGroup.POST("/forms/:form/validate", form_api.HandleValidateField())

	// Admin
	s.GET("/admin/login", authhandlers.HandleLoginPage(p))
	s.POST("/admin/login", authhandlers.HandleLogin(p, s.adminUsers))
	s.POST("/admin/logout", authhandlers.HandleLogout(s.sessionManager))

	adminGroup := s.Group("/admin", s.requireAdmin)
	adminGroup.GET("", admin.HandleAdminHomePage(p, s.admin))
	adminGroup.GET("/", admin.HandleAdminHomePage(p, s.admin))
	adminGroup.POST("/bookings/:id/status", admin.HandleBookingStatus(p, s.admin))
	adminGroup.POST("/messages/:id/read", admin.HandleMessageRead(s.admin))

	// Health check
	s.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	// Static file serving
	s.GET("/static/*", s.staticCache.ServeStaticFile("/static/"))
	s.GET(media.Prefix+"*", s.media.Handle())

	return nil
}

// handleError renders HTML navigations as an error page and answers API
// clients with JSON.
func (s *Webserver) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := http.StatusText(code)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		} else {
			msg = http.StatusText(code)
		}
	}
	if code >= http.StatusInternalServerError {
		slog.Error("request failed", "path", c.Request().URL.Path, "status", code, "error", err)
	}

	r := c.Request()
	wantsHTML := common.RequestMode(c) == common.ModeHTML &&
		!strings.HasPrefix(r.URL.Path, "/api/") &&
		r.Method != http.MethodHead
	if !wantsHTML {
		if r.Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, map[string]any{"success": false, "message": msg})
		return
	}

	view := templates.ErrorView{
		Page:    s.pages.Page(c, http.StatusText(code), ""),
		Code:    code,
		Message: errorPageMessage(code, msg),
	}
	if rerr := common.Render(c, code, templates.Error(view)); rerr != nil {
		_ = c.String(code, msg)
	}
}

func errorPageMessage(code int, msg string) string {
	switch code {
	case http.StatusNotFound:
		return "The page you are looking for could not be found."
	case http.StatusForbidden:
		return "Your session expired. Please reload the page and try again."
	}
	if code >= http.StatusInternalServerError {
		return "Something went wrong on our side. Please try again later."
	}
	return msg
}

package tracing

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const instrumentation = "diamondband.live/site/internal/tracing"

// Options for Middleware.
type Options struct {
	// Provider defaults to the global tracer provider.
	Provider trace.TracerProvider
	// Propagator defaults to the global propagator.
	Propagator propagation.TextMapPropagator
	// Skip excludes requests (health checks, static files).
	Skip func(c echo.Context) bool
}

// Middleware starts a server span per request, named after the matched route.
func Middleware(opts Options) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if opts.Skip != nil && opts.Skip(c) {
				return next(c)
			}
			tp := opts.Provider
			if tp == nil {
				tp = otel.GetTracerProvider()
			}
			prop := opts.Propagator
			if prop == nil {
				prop = otel.GetTextMapPropagator()
			}

			req := c.Request()
			ctx := prop.Extract(req.Context(), propagation.HeaderCarrier(req.Header))

			route := c.Path()
			if route == "" {
				route = req.URL.Path
			}
			ctx, span := tp.Tracer(instrumentation).Start(ctx, req.Method+" "+route,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					semconv.HTTPRequestMethodKey.String(req.Method),
					semconv.HTTPRoute(route),
					semconv.URLPath(req.URL.Path),
					attribute.String("http.request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
				),
			)
			defer span.End()

			c.SetRequest(req.WithContext(ctx))
			err := next(c)

			status := c.Response().Status
			if err != nil {
				var he *echo.HTTPError
				if errors.As(err, &he) {
					status = he.Code
				} else if status < 400 {
					status = http.StatusInternalServerError
				}
				span.RecordError(err)
			}
			span.SetAttributes(semconv.HTTPResponseStatusCode(status))
			if status >= 500 {
				span.SetStatus(codes.Error, fmt.Sprintf("HTTP %d", status))
			}
			return err
		}
	}
}

// SkipPaths skips requests whose path starts with any prefix.
func SkipPaths(prefixes ...string) func(echo.Context) bool {
	return func(c echo.Context) bool {
		p := c.Request().URL.Path
		for _, pre := range prefixes {
			if strings.HasPrefix(p, pre) {
				return true
			}
		}
		return false
	}
}

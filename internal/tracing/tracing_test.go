package tracing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"diamondband.live/site/internal/config"
)

func TestSetup_NoopWithoutEndpoint(t *testing.T) {
	shutdown, err := Setup(context.Background(), config.Tracing{})
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}

func TestSetup_WithEndpoint(t *testing.T) {
	// Non-routable address: nothing is exported, shutdown still flushes cleanly.
	shutdown, err := Setup(context.Background(), config.Tracing{Endpoint: "http://192.0.2.1:4318", ServiceName: "test"})
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}

func newTestServer(t *testing.T) (*echo.Echo, *tracetest.SpanRecorder) {
	t.Helper()
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	e := echo.New()
	e.Use(Middleware(Options{
		Provider:   tp,
		Propagator: propagation.TraceContext{},
		Skip:       SkipPaths("/static/"),
	}))
	e.GET("/blog/:slug/", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.GET("/boom", func(c echo.Context) error { return echo.NewHTTPError(http.StatusBadGateway, "upstream") })
	e.GET("/static/*", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	return e, rec
}

func attrs(kv []attribute.KeyValue) map[attribute.Key]attribute.Value {
	m := map[attribute.Key]attribute.Value{}
	for _, a := range kv {
		m[a.Key] = a.Value
	}
	return m
}

func TestMiddleware_RecordsRouteSpan(t *testing.T) {
	t.Parallel()
	e, rec := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/blog/hello-world/", nil)
	req.Header.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	spans := rec.Ended()
	require.Len(t, spans, 1)
	s := spans[0]
	require.Equal(t, "GET /blog/:slug/", s.Name())
	require.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", s.SpanContext().TraceID().String())
	a := attrs(s.Attributes())
	require.Equal(t, int64(200), a["http.response.status_code"].AsInt64())
	require.Equal(t, "/blog/:slug/", a["http.route"].AsString())
}

func TestMiddleware_ErrorStatus(t *testing.T) {
	t.Parallel()
	e, rec := newTestServer(t)

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.Equal(t, http.StatusBadGateway, w.Code)

	spans := rec.Ended()
	require.Len(t, spans, 1)
	require.Equal(t, codes.Error, spans[0].Status().Code)
	require.Equal(t, int64(502), attrs(spans[0].Attributes())["http.response.status_code"].AsInt64())
}

func TestMiddleware_Skip(t *testing.T) {
	t.Parallel()
	e, rec := newTestServer(t)

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static/dist/main.css", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, rec.Ended())
}

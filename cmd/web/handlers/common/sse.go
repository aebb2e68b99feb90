package common

import (
	"github.com/labstack/echo/v4"
	"github.com/starfederation/datastar-go/datastar"
)

// NewSSE starts a Datastar event stream on the response. Signals must be read
// before calling it since it takes over the body.
func NewSSE(c echo.Context) *datastar.ServerSentEventGenerator {
	// datastar sets Content-Type, Cache-Control and Connection; nginx also
	// needs buffering off to flush each patch.
	c.Response().Header().Set("X-Accel-Buffering", "no")
	return datastar.NewSSE(c.Response().Writer, c.Request())
}

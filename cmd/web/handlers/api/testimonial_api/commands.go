package testimonial_api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"diamondband.live/site/cmd/web/handlers/common"
	"diamondband.live/site/cmd/web/internal/carouselhub"
	"diamondband.live/site/pkg/carousel"
)

// Command changes a carousel.
type Command func(c echo.Context, car *carousel.Carousel) error

func Hover(_ echo.Context, car *carousel.Carousel) error    { car.SetHover(true); return nil }
func Unhover(_ echo.Context, car *carousel.Carousel) error  { car.SetHover(false); return nil }
func Next(_ echo.Context, car *carousel.Carousel) error     { car.Next(); return nil }
func Previous(_ echo.Context, car *carousel.Carousel) error { car.Previous(); return nil }

// Jump shows the testimonial at the :index route parameter.
func Jump(c echo.Context, car *carousel.Carousel) error {
	i, err := common.RequireIntParam(c, "index")
	if err != nil {
		return err
	}
	if err := car.JumpTo(i); err != nil {
		return common.ErrBadRequest(err.Error())
	}
	return nil
}

// HandleCommand applies cmd to the carousel of the :view route parameter. The
// new slide reaches the page through its stream.
func HandleCommand(hub *carouselhub.Hub, cmd Command) echo.HandlerFunc {
	return func(c echo.Context) error {
		err := hub.Do(c.Param("view"), func(car *carousel.Carousel) error {
			return cmd(c, car)
		})
		if errors.Is(err, carouselhub.ErrUnknownView) {
			return common.ErrNotFound("carousel view not found")
		}
		if err != nil {
			return err
		}
		return c.NoContent(http.StatusNoContent)
	}
}

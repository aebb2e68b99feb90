package form_api

import (
	"github.com/labstack/echo/v4"
	"github.com/starfederation/datastar-go/datastar"

	"diamondband.live/site/cmd/web/handlers/common"
	"diamondband.live/site/cmd/web/templates"
	"diamondband.live/site/pkg/forms"
)

// HandleValidateField checks one field when it loses focus and patches its
// error slot.
func HandleValidateField() echo.HandlerFunc {
	return func(c echo.Context) error {
		schema, ok := forms.SchemaByName(c.Param("form"))
		if !ok {
			return common.ErrNotFound("unknown form")
		}
		name := c.QueryParam("field")
		if _, ok := schema.Field(name); !ok {
			return common.ErrBadRequest("unknown field")
		}
		values, err := common.ReadStringSignals(c)
		if err != nil {
			return common.ErrBadRequest("invalid signals")
		}

		f := forms.New(schema)
		f.Set(name, values[name])
		msg := f.Blur(name)

		sse := common.NewSSE(c)
		view := templates.FieldErrorView{Form: schema.Name, Name: name, Message: msg}
		return sse.PatchElementTempl(templates.FieldError(view),
			datastar.WithSelectorID(schema.Name+"-"+name+"-error"), datastar.WithModeReplace())
	}
}

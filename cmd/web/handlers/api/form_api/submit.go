// package form_api accepts the booking, contact and newsletter forms.
//
// Each form handler answers three kinds of client: Datastar actions get an SSE
// stream of status and field-error patches, JSON clients get a JSON receipt,
// and classic form posts get a redirect or a re-rendered page.
package form_api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/starfederation/datastar-go/datastar"

	"diamondband.live/site/cmd/web/handlers/common"
	"diamondband.live/site/cmd/web/handlers/content"
	"diamondband.live/site/cmd/web/templates"
	"diamondband.live/site/internal/inbox"
	"diamondband.live/site/pkg/forms"
)

// Failure messages shown when storing a submission fails.
const (
	BookingFailed = "Sorry, there was an error sending your request. Please try again or contact us directly."
	ContactFailed = "Sorry, there was an error sending your message. Please try again or contact us directly."
)

// Spec wires one form to its store and pages.
type Spec struct {
	Schema  forms.Schema
	Submit  func(ctx context.Context, values map[string]string) (*inbox.Receipt, error)
	Failed  string
	Title   string
	Active  string
	Success string
	View    func(page templates.Page, values, errs map[string]string) templates.FormView
	Page    func(templates.FormView) templ.Component
}

// BookingSpec wires the booking form to in.
func BookingSpec(in *inbox.Inbox) Spec {
	return Spec{
		Schema:  forms.BookingSchema(),
		Submit:  in.SubmitBooking,
		Failed:  BookingFailed,
		Title:   "Book Us",
		Active:  "booking",
		Success: "/booking/success/",
		View:    content.BookingView,
		Page:    templates.Booking,
	}
}

// ContactSpec wires the contact form to in.
func ContactSpec(in *inbox.Inbox) Spec {
	return Spec{
		Schema:  forms.ContactSchema(),
		Submit:  in.SubmitContact,
		Failed:  ContactFailed,
		Title:   "Contact",
		Active:  "contact",
		Success: "/contact/success/",
		View:    content.ContactView,
		Page:    templates.Contact,
	}
}

func (s Spec) fieldNames() []string {
	names := make([]string, 0, len(s.Schema.Fields))
	for _, f := range s.Schema.Fields {
		names = append(names, f.Name)
	}
	return names
}

// Response is the JSON answer to a submission.
type Response struct {
	Success   bool              `json:"success"`
	Message   string            `json:"message"`
	Reference string            `json:"reference,omitempty"`
	Errors    map[string]string `json:"errors,omitempty"`
}

// HandleSubmit accepts a submission of spec's form.
func HandleSubmit(p *common.Pages, spec Spec) echo.HandlerFunc {
	return func(c echo.Context) error {
		switch common.RequestMode(c) {
		case common.ModeDatastar:
			return submitDatastar(c, spec)
		case common.ModeJSON:
			return submitJSON(c, spec)
		default:
			return submitHTML(c, p, spec)
		}
	}
}

func newForm(spec Spec, values map[string]string) *forms.Form {
	f := forms.New(spec.Schema)
	for _, name := range spec.fieldNames() {
		f.Set(name, values[name])
	}
	return f
}

// submit runs the form lifecycle and reports the receipt and the field errors
// that stopped it, if any.
func submit(ctx context.Context, spec Spec, f *forms.Form, onStart func()) (*inbox.Receipt, map[string]string, error) {
	var receipt *inbox.Receipt
	err := f.Submit(ctx, forms.SubmitterFunc(func(ctx context.Context, values map[string]string) error {
		if onStart != nil {
			onStart()
		}
		r, err := spec.Submit(ctx, values)
		receipt = r
		return err
	}))
	if errors.Is(err, forms.ErrInvalid) {
		return nil, f.Errors(), err
	}
	if verr, ok := inbox.IsValidation(err); ok {
		return nil, verr.Fields, err
	}
	return receipt, nil, err
}

func successMessage(r *inbox.Receipt) string {
	if r.Reference == "" {
		return r.Message
	}
	return r.Message + " Reference: " + r.Reference
}

func submitDatastar(c echo.Context, spec Spec) error {
	values, err := common.ReadStringSignals(c)
	if err != nil {
		return common.ErrBadRequest("invalid signals")
	}
	f := newForm(spec, values)

	sse := common.NewSSE(c)
	status := func(st forms.Status, msg string) error {
		return sse.PatchElementTempl(
			templates.FormStatus(templates.StatusView{Form: spec.Schema.Name, Status: st, Message: msg}),
			datastar.WithSelectorID(spec.Schema.Name+"-status"), datastar.WithModeReplace())
	}

	receipt, fieldErrs, err := submit(c.Request().Context(), spec, f, func() {
		_ = status(forms.StatusSubmitting, "")
	})
	if perr := patchFieldErrors(sse, spec, fieldErrs); perr != nil {
		return perr
	}
	switch {
	case fieldErrs != nil:
		return status(forms.StatusError, inbox.CorrectErrors)
	case err != nil:
		slog.Error("form submission failed", "form", spec.Schema.Name, "error", err)
		return status(forms.StatusError, spec.Failed)
	}

	if err := status(forms.StatusSuccess, successMessage(receipt)); err != nil {
		return err
	}
	cleared := make(map[string]string, len(spec.Schema.Fields))
	for _, name := range spec.fieldNames() {
		cleared[name] = ""
	}
	b, _ := json.Marshal(cleared)
	return sse.PatchSignals(b)
}

// patchFieldErrors rewrites every field's error slot; valid fields are
// cleared.
func patchFieldErrors(sse *datastar.ServerSentEventGenerator, spec Spec, errs map[string]string) error {
	for _, name := range spec.fieldNames() {
		view := templates.FieldErrorView{Form: spec.Schema.Name, Name: name, Message: errs[name]}
		if err := sse.PatchElementTempl(templates.FieldError(view),
			datastar.WithSelectorID(spec.Schema.Name+"-"+name+"-error"), datastar.WithModeReplace()); err != nil {
			return err
		}
	}
	return nil
}

func submitJSON(c echo.Context, spec Spec) error {
	values, err := common.ReadStringSignals(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, Response{Message: "Invalid JSON body."})
	}
	receipt, fieldErrs, err := submit(c.Request().Context(), spec, newForm(spec, values), nil)
	switch {
	case fieldErrs != nil:
		return c.JSON(http.StatusBadRequest, Response{Message: inbox.CorrectErrors, Errors: fieldErrs})
	case err != nil:
		slog.Error("form submission failed", "form", spec.Schema.Name, "error", err)
		return c.JSON(http.StatusInternalServerError, Response{Message: spec.Failed})
	}
	return c.JSON(http.StatusOK, Response{Success: true, Message: receipt.Message, Reference: receipt.Reference})
}

func submitHTML(c echo.Context, p *common.Pages, spec Spec) error {
	values := common.FormValues(c, spec.fieldNames()...)
	receipt, fieldErrs, err := submit(c.Request().Context(), spec, newForm(spec, values), nil)
	if fieldErrs != nil || err != nil {
		code, msg := http.StatusBadRequest, inbox.CorrectErrors
		if fieldErrs == nil {
			slog.Error("form submission failed", "form", spec.Schema.Name, "error", err)
			code, msg = http.StatusInternalServerError, spec.Failed
		}
		view := spec.View(p.Page(c, spec.Title, spec.Active), values, fieldErrs)
		view.Status = forms.StatusError
		view.Message = msg
		return common.Render(c, code, spec.Page(view))
	}

	if err := p.Sessions().AddFlash(c.Response().Writer, c.Request(), successMessage(receipt)); err != nil {
		slog.Warn("failed to store flash", "error", err)
	}
	return c.Redirect(http.StatusSeeOther, spec.Success)
}

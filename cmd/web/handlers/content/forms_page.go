package content

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"diamondband.live/site/cmd/web/handlers/common"
	"diamondband.live/site/cmd/web/templates"
	"diamondband.live/site/pkg/forms"
)

// BookingView lays out the booking page.
func BookingView(page templates.Page, values, errs map[string]string) templates.FormView {
	v := templates.NewFormView(page, forms.BookingSchema(), values, errs)
	v.Heading = "Book Diamond Band"
	v.Intro = "Tell us about your event and we will get back to you with availability and a quote."
	v.Submit = "Submit Booking Inquiry"
	return v
}

// ContactView lays out the contact page.
func ContactView(page templates.Page, values, errs map[string]string) templates.FormView {
	v := templates.NewFormView(page, forms.ContactSchema(), values, errs)
	v.Heading = "Contact Us"
	v.Intro = "Questions, collaborations or press? Send us a message."
	v.Submit = "Send Message"
	return v
}

func HandleBookingPage(p *common.Pages) echo.HandlerFunc {
	return func(c echo.Context) error {
		values := map[string]string{"event_type": c.QueryParam("event_type")}
		return common.Render(c, http.StatusOK, templates.Booking(BookingView(p.Page(c, "Book Us", "booking"), values, nil)))
	}
}

func HandleContactPage(p *common.Pages) echo.HandlerFunc {
	return func(c echo.Context) error {
		values := map[string]string{"subject": c.QueryParam("subject")}
		return common.Render(c, http.StatusOK, templates.Contact(ContactView(p.Page(c, "Contact", "contact"), values, nil)))
	}
}

// HandleSuccessPage confirms a classic form submission. The receipt message
// arrives as a flash.
func HandleSuccessPage(p *common.Pages, heading, back string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return common.Render(c, http.StatusOK, templates.Success(templates.SuccessView{
			Page:    p.Page(c, heading, ""),
			Heading: heading,
			Back:    back,
		}))
	}
}

package forms

// Form names used in URLs.
const (
	BookingForm = "booking"
	ContactForm = "contact"
)

// EventTypes are the occasions a booking can be made for.
var EventTypes = []Choice{
	{Value: "wedding", Label: "Wedding"},
	{Value: "corporate", Label: "Corporate Event"},
	{Value: "party", Label: "Private Party"},
	{Value: "ceremony", Label: "Official Ceremony"},
	{Value: "concert", Label: "Concert/Show"},
	{Value: "festival", Label: "Festival"},
	{Value: "other", Label: "Other"},
}

// GuestCounts are the expected audience size ranges.
var GuestCounts = []Choice{
	{Value: "1-50", Label: "1-50 guests"},
	{Value: "51-100", Label: "51-100 guests"},
	{Value: "101-200", Label: "101-200 guests"},
	{Value: "201-500", Label: "201-500 guests"},
	{Value: "500+", Label: "500+ guests"},
}

// ContactSubjects are the topics of a contact message.
var ContactSubjects = []Choice{
	{Value: "general", Label: "General Inquiry"},
	{Value: "booking", Label: "Booking Inquiry"},
	{Value: "collaboration", Label: "Collaboration"},
	{Value: "media", Label: "Media/Press"},
	{Value: "feedback", Label: "Feedback"},
	{Value: "other", Label: "Other"},
}

// BookingSchema describes the booking inquiry form.
func BookingSchema() Schema {
	return Schema{
		Name: BookingForm,
		Fields: []Field{
			{Name: "name", Label: "Full Name", Kind: KindText, Required: true},
			{Name: "email", Label: "Email Address", Kind: KindEmail, Required: true},
			{Name: "phone", Label: "Phone Number", Kind: KindTel, Required: true},
			{Name: "company", Label: "Company", Kind: KindText},
			{Name: "event_type", Label: "Event Type", Kind: KindSelect, Required: true, Choices: EventTypes},
			{Name: "event_title", Label: "Event Title", Kind: KindText},
			{Name: "event_date", Label: "Event Date", Kind: KindDate, Required: true, NotPast: true},
			{Name: "start_time", Label: "Start Time", Kind: KindTime},
			{Name: "end_time", Label: "End Time", Kind: KindTime},
			{Name: "venue", Label: "Venue/Location", Kind: KindTextarea, Required: true},
			{Name: "guest_count", Label: "Expected Guests", Kind: KindSelect, Choices: GuestCounts},
			{Name: "budget_range", Label: "Budget Range", Kind: KindText},
			{Name: "message", Label: "Additional Details", Kind: KindTextarea},
			{Name: "special_requirements", Label: "Special Requirements", Kind: KindTextarea},
			{Name: "how_heard", Label: "How did you hear about us?", Kind: KindText},
		},
	}
}

// ContactSchema describes the contact form.
func ContactSchema() Schema {
	return Schema{
		Name: ContactForm,
		Fields: []Field{
			{Name: "name", Label: "Your Name", Kind: KindText, Required: true},
			{Name: "email", Label: "Email Address", Kind: KindEmail, Required: true},
			{Name: "phone", Label: "Phone Number", Kind: KindTel},
			{Name: "subject", Label: "Subject", Kind: KindSelect, Required: true, Choices: ContactSubjects},
			{Name: "message", Label: "Message", Kind: KindTextarea, Required: true},
		},
	}
}

// SchemaByName returns the schema registered under name.
func SchemaByName(name string) (Schema, bool) {
	switch name {
	case BookingForm:
		return BookingSchema(), true
	case ContactForm:
		return ContactSchema(), true
	}
	return Schema{}, false
}

// ChoiceLabel returns the display label of value, or value itself when it is
// not one of choices.
func ChoiceLabel(choices []Choice, value string) string {
	for _, c := range choices {
		if c.Value == value {
			return c.Label
		}
	}
	return value
}

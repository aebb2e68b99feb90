package forms

import (
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Field kinds, mirroring the HTML input types the site uses.
type Kind string

const (
	KindText     Kind = "text"
	KindEmail    Kind = "email"
	KindTel      Kind = "tel"
	KindDate     Kind = "date"
	KindTime     Kind = "time"
	KindNumber   Kind = "number"
	KindTextarea Kind = "textarea"
	KindSelect   Kind = "select"
)

// Validation messages shown next to a field.
const (
	MsgRequired  = "This field is required."
	MsgEmail     = "Please enter a valid email address."
	MsgPhone     = "Please enter a valid phone number."
	MsgPastDate  = "Event date cannot be in the past."
	MsgBadDate   = "Please enter a valid date."
	MsgBadTime   = "Please enter a valid time."
	MsgBadNumber = "Please enter a whole number."
	MsgChoice    = "Please select a valid option."
)

// DateLayout is the wire format of date inputs.
const DateLayout = "2006-01-02"

// TimeLayout is the wire format of time inputs.
const TimeLayout = "15:04"

var (
	phonePattern  = regexp.MustCompile(`^\+?[1-9]\d{0,15}$`)
	numberPattern = regexp.MustCompile(`^\d+$`)
	validate      = validator.New()
)

// ValidEmail reports whether s has the shape of an email address.
func ValidEmail(s string) bool {
	return validate.Var(s, "required,email") == nil
}

// ValidPhone reports whether s looks like a phone number once whitespace is
// removed.
func ValidPhone(s string) bool {
	return phonePattern.MatchString(strings.Join(strings.Fields(s), ""))
}

// NotPast reports whether the date is today or later relative to now, both
// taken in now's location.
func NotPast(date string, now time.Time) (bool, error) {
	d, err := time.ParseInLocation(DateLayout, date, now.Location())
	if err != nil {
		return false, err
	}
	y, m, dd := now.Date()
	today := time.Date(y, m, dd, 0, 0, 0, 0, now.Location())
	return !d.Before(today), nil
}

// Check validates one value against its field definition and returns the
// message to show, or "" when the value is acceptable.
func (f Field) Check(value string, now time.Time) string {
	value = strings.TrimSpace(value)
	if value == "" {
		if f.Required {
			return MsgRequired
		}
		return ""
	}

	switch f.Kind {
	case KindEmail:
		if !ValidEmail(value) {
			return MsgEmail
		}
	case KindTel:
		if !ValidPhone(value) {
			return MsgPhone
		}
	case KindDate:
		ok, err := NotPast(value, now)
		if err != nil {
			return MsgBadDate
		}
		if f.NotPast && !ok {
			return MsgPastDate
		}
	case KindTime:
		if _, err := time.Parse(TimeLayout, value); err != nil {
			return MsgBadTime
		}
	case KindNumber:
		if !numberPattern.MatchString(value) {
			return MsgBadNumber
		}
	case KindSelect:
		if len(f.Choices) > 0 && !f.hasChoice(value) {
			return MsgChoice
		}
	}
	return ""
}

func (f Field) hasChoice(v string) bool {
	for _, c := range f.Choices {
		if c.Value == v {
			return true
		}
	}
	return false
}

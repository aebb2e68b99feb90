// Package inbox is the write side of the site: booking inquiries, contact
// messages and newsletter signups, plus the admin views over them. Contact
// details are sealed before they are stored.
package inbox

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"diamondband.live/site/internal/db"
	"diamondband.live/site/pkg/encryption"
	"diamondband.live/site/pkg/forms"
)

// Messages shown after a successful submission.
const (
	BookingThanks     = "Your booking inquiry has been submitted successfully! We will contact you within 24 hours."
	ContactThanks     = "Your message has been sent successfully! We will get back to you soon."
	SubscribeThanks   = "Thank you for subscribing to our newsletter!"
	AlreadySubscribed = "This email is already subscribed."
	CorrectErrors     = "Please correct the errors below."
)

// Seal purposes bind ciphertexts to their column.
const (
	purposeBookingEmail = "booking.email"
	purposeBookingPhone = "booking.phone"
	purposeContactEmail = "contact.email"
	purposeContactPhone = "contact.phone"
)

// ValidationError carries per-field messages for a rejected submission.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		names = append(names, k)
	}
	return "invalid fields: " + strings.Join(names, ", ")
}

// IsValidation reports whether err is a ValidationError and returns it.
func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}

// Store is the subset of *db.Queries the inbox writes to.
type Store interface {
	CreateBookingInquiry(ctx context.Context, arg *db.CreateBookingInquiryParams) (*db.BookingInquiry, error)
	ListBookingInquiries(ctx context.Context, arg *db.ListBookingInquiriesParams) ([]*db.BookingInquiry, error)
	CountBookingInquiriesByStatus(ctx context.Context) (map[db.BookingStatus]int64, error)
	UpdateBookingInquiryStatus(ctx context.Context, arg *db.UpdateBookingInquiryStatusParams) (*db.BookingInquiry, error)
	CreateContactMessage(ctx context.Context, arg *db.CreateContactMessageParams) (*db.ContactMessage, error)
	ListContactMessages(ctx context.Context, arg *db.ListContactMessagesParams) ([]*db.ContactMessage, error)
	CountUnreadContactMessages(ctx context.Context) (int64, error)
	MarkContactMessageRead(ctx context.Context, id pgtype.UUID, read bool) (int64, error)
	SubscribeNewsletter(ctx context.Context, email string) (bool, error)
	CountNewsletterSubscribers(ctx context.Context) (int64, error)
}

// Inbox accepts submissions.
type Inbox struct {
	store  Store
	sealer *encryption.Sealer
	now    func() time.Time
	logger *slog.Logger
}

// Option configures an Inbox.
type Option func(*Inbox)

// WithClock replaces time.Now for date validation.
func WithClock(now func() time.Time) Option {
	return func(i *Inbox) { i.now = now }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(i *Inbox) { i.logger = l }
}

// New returns an inbox writing to store.
func New(store Store, sealer *encryption.Sealer, opts ...Option) *Inbox {
	i := &Inbox{store: store, sealer: sealer, now: time.Now, logger: slog.Default()}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// NewReference returns a booking reference such as "DB-3F9A1C2B".
func NewReference() string {
	id := uuid.New()
	return "DB-" + strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:8])
}

func clean(values map[string]string, schema forms.Schema) map[string]string {
	out := make(map[string]string, len(schema.Fields))
	for _, f := range schema.Fields {
		out[f.Name] = strings.TrimSpace(values[f.Name])
	}
	return out
}

// Receipt confirms a stored submission.
type Receipt struct {
	ID        string
	Reference string
	Message   string
}

// SubmitBooking validates and stores a booking inquiry.
func (i *Inbox) SubmitBooking(ctx context.Context, values map[string]string) (*Receipt, error) {
	schema := forms.BookingSchema()
	v := clean(values, schema)
	if errs := schema.Validate(v, i.now()); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	date, err := time.Parse(forms.DateLayout, v["event_date"])
	if err != nil {
		return nil, &ValidationError{Fields: map[string]string{"event_date": forms.MsgBadDate}}
	}
	email, err := i.sealer.SealString(purposeBookingEmail, strings.ToLower(v["email"]))
	if err != nil {
		return nil, fmt.Errorf("seal email: %w", err)
	}
	phone, err := i.sealer.SealString(purposeBookingPhone, v["phone"])
	if err != nil {
		return nil, fmt.Errorf("seal phone: %w", err)
	}

	title := v["event_title"]
	if title == "" {
		title = forms.ChoiceLabel(forms.EventTypes, v["event_type"]) + " for " + v["name"]
	}

	params := &db.CreateBookingInquiryParams{
		ClientName:          v["name"],
		ClientEmail:         email,
		ClientPhone:         phone,
		ClientCompany:       v["company"],
		EventType:           v["event_type"],
		EventTitle:          title,
		EventDate:           db.Date(date),
		StartTime:           v["start_time"],
		EndTime:             v["end_time"],
		EventLocation:       v["venue"],
		GuestCount:          v["guest_count"],
		BudgetRange:         v["budget_range"],
		Message:             v["message"],
		SpecialRequirements: v["special_requirements"],
		HowHeard:            v["how_heard"],
	}

	// References are random; retry on the unlikely collision.
	for attempt := 0; ; attempt++ {
		params.Reference = NewReference()
		row, err := i.store.CreateBookingInquiry(ctx, params)
		if err == nil {
			i.logger.InfoContext(ctx, "booking inquiry received", "reference", row.Reference, "event_type", row.EventType)
			return &Receipt{ID: db.UUIDString(row.ID), Reference: row.Reference, Message: BookingThanks}, nil
		}
		if !db.IsUniqueViolation(err) || attempt >= 3 {
			return nil, fmt.Errorf("store booking: %w", err)
		}
	}
}

// SubmitContact validates and stores a contact message.
func (i *Inbox) SubmitContact(ctx context.Context, values map[string]string) (*Receipt, error) {
	schema := forms.ContactSchema()
	v := clean(values, schema)
	if errs := schema.Validate(v, i.now()); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}
	email, err := i.sealer.SealString(purposeContactEmail, strings.ToLower(v["email"]))
	if err != nil {
		return nil, fmt.Errorf("seal email: %w", err)
	}
	phone, err := i.sealer.SealString(purposeContactPhone, v["phone"])
	if err != nil {
		return nil, fmt.Errorf("seal phone: %w", err)
	}
	row, err := i.store.CreateContactMessage(ctx, &db.CreateContactMessageParams{
		Name:    v["name"],
		Email:   email,
		Phone:   phone,
		Subject: v["subject"],
		Message: v["message"],
	})
	if err != nil {
		return nil, fmt.Errorf("store contact message: %w", err)
	}
	i.logger.InfoContext(ctx, "contact message received", "subject", row.Subject)
	return &Receipt{ID: db.UUIDString(row.ID), Message: ContactThanks}, nil
}

// Subscribe adds email to the newsletter. A repeated address is not an
// error; the returned message says so.
func (i *Inbox) Subscribe(ctx context.Context, email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", &ValidationError{Fields: map[string]string{"email": forms.MsgRequired}}
	}
	if !forms.ValidEmail(email) {
		return "", &ValidationError{Fields: map[string]string{"email": forms.MsgEmail}}
	}
	created, err := i.store.SubscribeNewsletter(ctx, email)
	if err != nil {
		return "", fmt.Errorf("subscribe: %w", err)
	}
	if !created {
		return AlreadySubscribed, nil
	}
	return SubscribeThanks, nil
}

package inbox

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"diamondband.live/site/internal/db"
	"diamondband.live/site/pkg/encryption"
)

// ErrNotFound is returned when an admin action names an unknown record.
var ErrNotFound = errors.New("inbox: record not found")

// AdminPageSize bounds admin listings.
const AdminPageSize = 50

// Booking is a booking inquiry with its contact details opened.
type Booking struct {
	ID          string
	Reference   string
	ClientName  string
	Email       string
	Phone       string
	Company     string
	EventType   string
	EventTitle  string
	EventDate   time.Time
	StartTime   string
	EndTime     string
	Venue       string
	GuestCount  string
	BudgetRange string
	Message     string
	Special     string
	HowHeard    string
	Status      db.BookingStatus
	AdminNotes  string
	QuotedPrice string
	CreatedAt   time.Time
}

// Message is a contact message with its contact details opened.
type Message struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Subject   string
	Body      string
	Read      bool
	CreatedAt time.Time
}

// Summary counts what is waiting for the admin.
type Summary struct {
	Bookings    map[db.BookingStatus]int64
	Unread      int64
	Subscribers int64
}

// Pending is the number of bookings not yet handled.
func (s Summary) Pending() int64 { return s.Bookings[db.BookingStatusPending] }

// Admin reads and updates the inbox on behalf of a signed-in admin.
type Admin struct {
	store  Store
	sealer *encryption.Sealer
	// Masked hides most of each email and phone in listings.
	Masked bool
}

// NewAdmin returns an admin view over store.
func NewAdmin(store Store, sealer *encryption.Sealer) *Admin {
	return &Admin{store: store, sealer: sealer}
}

func (a *Admin) open(purpose string, sealed []byte) string {
	v, err := a.sealer.OpenString(purpose, sealed)
	if err != nil {
		return "(unreadable)"
	}
	if a.Masked {
		return encryption.Mask(v)
	}
	return v
}

func (a *Admin) booking(row *db.BookingInquiry) Booking {
	return Booking{
		ID:          db.UUIDString(row.ID),
		Reference:   row.Reference,
		ClientName:  row.ClientName,
		Email:       a.open(purposeBookingEmail, row.ClientEmail),
		Phone:       a.open(purposeBookingPhone, row.ClientPhone),
		Company:     row.ClientCompany,
		EventType:   row.EventType,
		EventTitle:  row.EventTitle,
		EventDate:   row.EventDate.Time,
		StartTime:   row.StartTime,
		EndTime:     row.EndTime,
		Venue:       row.EventLocation,
		GuestCount:  row.GuestCount,
		BudgetRange: row.BudgetRange,
		Message:     row.Message,
		Special:     row.SpecialRequirements,
		HowHeard:    row.HowHeard,
		Status:      row.Status,
		AdminNotes:  row.AdminNotes,
		QuotedPrice: numericString(row.QuotedPrice),
		CreatedAt:   row.CreatedAt.Time,
	}
}

// Bookings lists inquiries, newest first. An empty status lists all.
func (a *Admin) Bookings(ctx context.Context, status db.BookingStatus, page int) ([]Booking, error) {
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("unknown booking status %q", status)
	}
	if page < 1 {
		page = 1
	}
	rows, err := a.store.ListBookingInquiries(ctx, &db.ListBookingInquiriesParams{
		Status: string(status),
		Limit:  AdminPageSize,
		Offset: int32((page - 1) * AdminPageSize),
	})
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	out := make([]Booking, 0, len(rows))
	for _, row := range rows {
		out = append(out, a.booking(row))
	}
	return out, nil
}

// StatusUpdate changes a booking. Notes and QuotedPrice are left alone when
// nil or empty.
type StatusUpdate struct {
	ID          string
	Status      db.BookingStatus
	Notes       *string
	QuotedPrice string
}

// SetBookingStatus applies u and returns the updated booking.
func (a *Admin) SetBookingStatus(ctx context.Context, u StatusUpdate) (*Booking, error) {
	if !u.Status.Valid() {
		return nil, fmt.Errorf("unknown booking status %q", u.Status)
	}
	id, err := db.ParseUUID(u.ID)
	if err != nil {
		return nil, ErrNotFound
	}
	price, err := parsePrice(u.QuotedPrice)
	if err != nil {
		return nil, &ValidationError{Fields: map[string]string{"quoted_price": "Please enter a valid amount."}}
	}
	row, err := a.store.UpdateBookingInquiryStatus(ctx, &db.UpdateBookingInquiryStatusParams{
		ID:          id,
		Status:      u.Status,
		AdminNotes:  u.Notes,
		QuotedPrice: price,
	})
	if err != nil {
		if db.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update booking: %w", err)
	}
	b := a.booking(row)
	return &b, nil
}

// Messages lists contact messages, newest first.
func (a *Admin) Messages(ctx context.Context, unreadOnly bool, page int) ([]Message, error) {
	if page < 1 {
		page = 1
	}
	rows, err := a.store.ListContactMessages(ctx, &db.ListContactMessagesParams{
		UnreadOnly: unreadOnly,
		Limit:      AdminPageSize,
		Offset:     int32((page - 1) * AdminPageSize),
	})
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	out := make([]Message, 0, len(rows))
	for _, row := range rows {
		out = append(out, Message{
			ID:        db.UUIDString(row.ID),
			Name:      row.Name,
			Email:     a.open(purposeContactEmail, row.Email),
			Phone:     a.open(purposeContactPhone, row.Phone),
			Subject:   row.Subject,
			Body:      row.Message,
			Read:      row.IsRead,
			CreatedAt: row.CreatedAt.Time,
		})
	}
	return out, nil
}

// MarkRead sets the read flag of a contact message.
func (a *Admin) MarkRead(ctx context.Context, id string, read bool) error {
	uid, err := db.ParseUUID(id)
	if err != nil {
		return ErrNotFound
	}
	n, err := a.store.MarkContactMessageRead(ctx, uid, read)
	if err != nil {
		return fmt.Errorf("mark message: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Summary returns the dashboard counts.
func (a *Admin) Summary(ctx context.Context) (*Summary, error) {
	byStatus, err := a.store.CountBookingInquiriesByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}
	unread, err := a.store.CountUnreadContactMessages(ctx)
	if err != nil {
		return nil, fmt.Errorf("count messages: %w", err)
	}
	subs, err := a.store.CountNewsletterSubscribers(ctx)
	if err != nil {
		return nil, fmt.Errorf("count subscribers: %w", err)
	}
	return &Summary{Bookings: byStatus, Unread: unread, Subscribers: subs}, nil
}

func parsePrice(s string) (pgtype.Numeric, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	s = strings.ReplaceAll(s, ",", "")
	var n pgtype.Numeric
	if s == "" {
		return n, nil
	}
	if err := n.Scan(s); err != nil {
		return pgtype.Numeric{}, fmt.Errorf("invalid price %q: %w", s, err)
	}
	if n.NaN || n.InfinityModifier != pgtype.Finite || n.Int.Sign() < 0 {
		return pgtype.Numeric{}, fmt.Errorf("invalid price %q", s)
	}
	return n, nil
}

func numericString(n pgtype.Numeric) string {
	f, err := n.Float64Value()
	if err != nil || !f.Valid {
		return ""
	}
	return fmt.Sprintf("%.2f", f.Float64)
}

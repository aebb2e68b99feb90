package inbox

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/require"

	"diamondband.live/site/internal/db"
	"diamondband.live/site/pkg/encryption"
	"diamondband.live/site/pkg/forms"
)

var fixedNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

type memStore struct {
	bookings    []*db.BookingInquiry
	messages    []*db.ContactMessage
	subscribers map[string]bool
	collisions  int
	err         error
}

func newID() pgtype.UUID {
	return pgtype.UUID{Bytes: uuid.New(), Valid: true}
}

func (m *memStore) CreateBookingInquiry(_ context.Context, arg *db.CreateBookingInquiryParams) (*db.BookingInquiry, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.collisions > 0 {
		m.collisions--
		return nil, &pgconn.PgError{Code: "23505"}
	}
	row := &db.BookingInquiry{
		ID:                  newID(),
		Reference:           arg.Reference,
		ClientName:          arg.ClientName,
		ClientEmail:         arg.ClientEmail,
		ClientPhone:         arg.ClientPhone,
		ClientCompany:       arg.ClientCompany,
		EventType:           arg.EventType,
		EventTitle:          arg.EventTitle,
		EventDate:           arg.EventDate,
		EventLocation:       arg.EventLocation,
		GuestCount:          arg.GuestCount,
		Message:             arg.Message,
		SpecialRequirements: arg.SpecialRequirements,
		Status:              db.BookingStatusPending,
		CreatedAt:           pgtype.Timestamptz{Time: fixedNow, Valid: true},
	}
	m.bookings = append(m.bookings, row)
	return row, nil
}

func (m *memStore) ListBookingInquiries(_ context.Context, arg *db.ListBookingInquiriesParams) ([]*db.BookingInquiry, error) {
	var out []*db.BookingInquiry
	for _, b := range m.bookings {
		if arg.Status == "" || string(b.Status) == arg.Status {
			out = append(out, b)
		}
	}
	return out, m.err
}

func (m *memStore) CountBookingInquiriesByStatus(context.Context) (map[db.BookingStatus]int64, error) {
	out := map[db.BookingStatus]int64{}
	for _, b := range m.bookings {
		out[b.Status]++
	}
	return out, m.err
}

func (m *memStore) UpdateBookingInquiryStatus(_ context.Context, arg *db.UpdateBookingInquiryStatusParams) (*db.BookingInquiry, error) {
	for _, b := range m.bookings {
		if b.ID == arg.ID {
			b.Status = arg.Status
			if arg.AdminNotes != nil {
				b.AdminNotes = *arg.AdminNotes
			}
			if arg.QuotedPrice.Valid {
				b.QuotedPrice = arg.QuotedPrice
			}
			return b, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memStore) CreateContactMessage(_ context.Context, arg *db.CreateContactMessageParams) (*db.ContactMessage, error) {
	if m.err != nil {
		return nil, m.err
	}
	row := &db.ContactMessage{
		ID:      newID(),
		Name:    arg.Name,
		Email:   arg.Email,
		Phone:   arg.Phone,
		Subject: arg.Subject,
		Message: arg.Message,
	}
	m.messages = append(m.messages, row)
	return row, nil
}

func (m *memStore) ListContactMessages(_ context.Context, arg *db.ListContactMessagesParams) ([]*db.ContactMessage, error) {
	var out []*db.ContactMessage
	for _, c := range m.messages {
		if !arg.UnreadOnly || !c.IsRead {
			out = append(out, c)
		}
	}
	return out, m.err
}

func (m *memStore) CountUnreadContactMessages(context.Context) (int64, error) {
	var n int64
	for _, c := range m.messages {
		if !c.IsRead {
			n++
		}
	}
	return n, m.err
}

func (m *memStore) MarkContactMessageRead(_ context.Context, id pgtype.UUID, read bool) (int64, error) {
	for _, c := range m.messages {
		if c.ID == id {
			c.IsRead = read
			return 1, nil
		}
	}
	return 0, m.err
}

func (m *memStore) SubscribeNewsletter(_ context.Context, email string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	if m.subscribers == nil {
		m.subscribers = map[string]bool{}
	}
	if m.subscribers[email] {
		return false, nil
	}
	m.subscribers[email] = true
	return true, nil
}

func (m *memStore) CountNewsletterSubscribers(context.Context) (int64, error) {
	return int64(len(m.subscribers)), m.err
}

func testSealer(t *testing.T) *encryption.Sealer {
	t.Helper()
	s, err := encryption.NewSealer(encryption.DefaultCipher, make([]byte, encryption.KeySize))
	require.NoError(t, err)
	return s
}

func newTestInbox(t *testing.T, store *memStore) *Inbox {
	return New(store, testSealer(t), WithClock(func() time.Time { return fixedNow }))
}

func validBooking() map[string]string {
	return map[string]string{
		"name":        " Sarah Johnson ",
		"email":       "Sarah@Example.com",
		"phone":       "+15551234567",
		"event_type":  "wedding",
		"event_date":  "2025-09-20",
		"venue":       "Grand Ballroom",
		"guest_count": "101-200",
		"message":     "First dance request inside.",
	}
}

func TestNewReference(t *testing.T) {
	t.Parallel()

	ref := NewReference()
	require.Len(t, ref, 11)
	require.True(t, strings.HasPrefix(ref, "DB-"))
	require.Equal(t, strings.ToUpper(ref), ref)
	require.NotEqual(t, ref, NewReference())
}

func TestSubmitBooking_Stores(t *testing.T) {
	t.Parallel()

	store := &memStore{}
	in := newTestInbox(t, store)

	rcpt, err := in.SubmitBooking(context.Background(), validBooking())
	require.NoError(t, err)
	require.Equal(t, BookingThanks, rcpt.Message)
	require.True(t, strings.HasPrefix(rcpt.Reference, "DB-"))

	require.Len(t, store.bookings, 1)
	row := store.bookings[0]
	require.Equal(t, "Sarah Johnson", row.ClientName)
	require.Equal(t, "Wedding for Sarah Johnson", row.EventTitle)
	require.NotContains(t, string(row.ClientEmail), "example.com")

	admin := NewAdmin(store, testSealer(t))
	list, err := admin.Bookings(context.Background(), "", 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "sarah@example.com", list[0].Email)
	require.Equal(t, "+15551234567", list[0].Phone)
	require.Equal(t, 2025, list[0].EventDate.Year())
}

func TestSubmitBooking_Invalid(t *testing.T) {
	t.Parallel()

	store := &memStore{}
	in := newTestInbox(t, store)

	v := validBooking()
	v["email"] = "nope"
	v["event_date"] = "2025-06-14"
	delete(v, "venue")

	_, err := in.SubmitBooking(context.Background(), v)
	ve, ok := IsValidation(err)
	require.True(t, ok)
	require.Equal(t, forms.MsgEmail, ve.Fields["email"])
	require.Equal(t, forms.MsgPastDate, ve.Fields["event_date"])
	require.Equal(t, forms.MsgRequired, ve.Fields["venue"])
	require.Empty(t, store.bookings)
}

func TestSubmitBooking_ReferenceCollision(t *testing.T) {
	t.Parallel()

	store := &memStore{collisions: 2}
	in := newTestInbox(t, store)

	_, err := in.SubmitBooking(context.Background(), validBooking())
	require.NoError(t, err)
	require.Len(t, store.bookings, 1)
}

func TestSubmitBooking_StoreError(t *testing.T) {
	t.Parallel()

	store := &memStore{err: errors.New("db down")}
	in := newTestInbox(t, store)

	_, err := in.SubmitBooking(context.Background(), validBooking())
	require.Error(t, err)
	_, ok := IsValidation(err)
	require.False(t, ok)
}

func TestSubmitContact(t *testing.T) {
	t.Parallel()

	store := &memStore{}
	in := newTestInbox(t, store)

	rcpt, err := in.SubmitContact(context.Background(), map[string]string{
		"name":    "Mike",
		"email":   "mike@example.com",
		"subject": "general",
		"message": "Hello there",
	})
	require.NoError(t, err)
	require.Equal(t, ContactThanks, rcpt.Message)
	require.Len(t, store.messages, 1)
	require.Nil(t, store.messages[0].Phone)

	_, err = in.SubmitContact(context.Background(), map[string]string{"name": "Mike"})
	ve, ok := IsValidation(err)
	require.True(t, ok)
	require.Contains(t, ve.Fields, "message")
}

func TestSubscribe(t *testing.T) {
	t.Parallel()

	store := &memStore{}
	in := newTestInbox(t, store)
	ctx := context.Background()

	msg, err := in.Subscribe(ctx, " Fan@Example.com ")
	require.NoError(t, err)
	require.Equal(t, SubscribeThanks, msg)

	msg, err = in.Subscribe(ctx, "fan@example.com")
	require.NoError(t, err)
	require.Equal(t, AlreadySubscribed, msg)

	_, err = in.Subscribe(ctx, "")
	ve, ok := IsValidation(err)
	require.True(t, ok)
	require.Equal(t, forms.MsgRequired, ve.Fields["email"])

	_, err = in.Subscribe(ctx, "not-an-email")
	ve, ok = IsValidation(err)
	require.True(t, ok)
	require.Equal(t, forms.MsgEmail, ve.Fields["email"])
}

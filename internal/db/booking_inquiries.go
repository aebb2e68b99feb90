package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const bookingColumns = `id, reference, client_name, client_email, client_phone, client_company, event_type,
	event_title, event_date, start_time, end_time, event_location, guest_count, budget_range, message,
	special_requirements, how_heard, status, admin_notes, quoted_price, created_at`

func scanBooking(row pgx.Row) (*BookingInquiry, error) {
	var i BookingInquiry
	err := row.Scan(
		&i.ID,
		&i.Reference,
		&i.ClientName,
		&i.ClientEmail,
		&i.ClientPhone,
		&i.ClientCompany,
		&i.EventType,
		&i.EventTitle,
		&i.EventDate,
		&i.StartTime,
		&i.EndTime,
		&i.EventLocation,
		&i.GuestCount,
		&i.BudgetRange,
		&i.Message,
		&i.SpecialRequirements,
		&i.HowHeard,
		&i.Status,
		&i.AdminNotes,
		&i.QuotedPrice,
		&i.CreatedAt,
	)
	return &i, err
}

type CreateBookingInquiryParams struct {
	Reference           string
	ClientName          string
	ClientEmail         []byte
	ClientPhone         []byte
	ClientCompany       string
	EventType           string
	EventTitle          string
	EventDate           pgtype.Date
	StartTime           string
	EndTime             string
	EventLocation       string
	GuestCount          string
	BudgetRange         string
	Message             string
	SpecialRequirements string
	HowHeard            string
}

const createBookingInquiry = `INSERT INTO booking_inquiries (
	reference, client_name, client_email, client_phone, client_company, event_type, event_title,
	event_date, start_time, end_time, event_location, guest_count, budget_range, message,
	special_requirements, how_heard
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
RETURNING ` + bookingColumns

func (q *Queries) CreateBookingInquiry(ctx context.Context, arg *CreateBookingInquiryParams) (*BookingInquiry, error) {
	return scanBooking(q.db.QueryRow(ctx, createBookingInquiry,
		arg.Reference,
		arg.ClientName,
		arg.ClientEmail,
		arg.ClientPhone,
		arg.ClientCompany,
		arg.EventType,
		arg.EventTitle,
		arg.EventDate,
		arg.StartTime,
		arg.EndTime,
		arg.EventLocation,
		arg.GuestCount,
		arg.BudgetRange,
		arg.Message,
		arg.SpecialRequirements,
		arg.HowHeard,
	))
}

const listBookingInquiries = `SELECT ` + bookingColumns + `
FROM booking_inquiries
WHERE ($1::text = '' OR status = $1)
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

type ListBookingInquiriesParams struct {
	Status string
	Limit  int32
	Offset int32
}

func (q *Queries) ListBookingInquiries(ctx context.Context, arg *ListBookingInquiriesParams) ([]*BookingInquiry, error) {
	rows, err := q.db.Query(ctx, listBookingInquiries, arg.Status, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []*BookingInquiry{}
	for rows.Next() {
		i, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const countBookingInquiriesByStatus = `SELECT status, count(*) FROM booking_inquiries GROUP BY status`

func (q *Queries) CountBookingInquiriesByStatus(ctx context.Context) (map[BookingStatus]int64, error) {
	rows, err := q.db.Query(ctx, countBookingInquiriesByStatus)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[BookingStatus]int64{}
	for rows.Next() {
		var s BookingStatus
		var n int64
		if err := rows.Scan(&s, &n); err != nil {
			return nil, err
		}
		out[s] = n
	}
	return out, rows.Err()
}

type UpdateBookingInquiryStatusParams struct {
	ID          pgtype.UUID
	Status      BookingStatus
	AdminNotes  *string
	QuotedPrice pgtype.Numeric
}

const updateBookingInquiryStatus = `UPDATE booking_inquiries
SET status = $2,
	admin_notes = COALESCE($3, admin_notes),
	quoted_price = COALESCE($4, quoted_price)
WHERE id = $1
RETURNING ` + bookingColumns

func (q *Queries) UpdateBookingInquiryStatus(ctx context.Context, arg *UpdateBookingInquiryStatusParams) (*BookingInquiry, error) {
	return scanBooking(q.db.QueryRow(ctx, updateBookingInquiryStatus,
		arg.ID,
		arg.Status,
		arg.AdminNotes,
		arg.QuotedPrice,
	))
}

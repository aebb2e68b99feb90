package db

import (
	"context"

	"github.com/jackc/pgx/v5"
)

const testimonialColumns = `id, client_name, client_company, testimonial, rating, event_type, is_featured, created_at`

func scanTestimonial(row pgx.Row) (*Testimonial, error) {
	var i Testimonial
	err := row.Scan(
		&i.ID,
		&i.ClientName,
		&i.ClientCompany,
		&i.Testimonial,
		&i.Rating,
		&i.EventType,
		&i.IsFeatured,
		&i.CreatedAt,
	)
	return &i, err
}

const listTestimonials = `SELECT ` + testimonialColumns + `
FROM testimonials
ORDER BY is_featured DESC, created_at DESC`

func (q *Queries) ListTestimonials(ctx context.Context) ([]*Testimonial, error) {
	rows, err := q.db.Query(ctx, listTestimonials)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []*Testimonial{}
	for rows.Next() {
		i, err := scanTestimonial(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

type CreateTestimonialParams struct {
	ClientName    string
	ClientCompany string
	Testimonial   string
	Rating        int16
	EventType     string
	IsFeatured    bool
}

const createTestimonial = `INSERT INTO testimonials (client_name, client_company, testimonial, rating, event_type, is_featured)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + testimonialColumns

func (q *Queries) CreateTestimonial(ctx context.Context, arg *CreateTestimonialParams) (*Testimonial, error) {
	return scanTestimonial(q.db.QueryRow(ctx, createTestimonial,
		arg.ClientName,
		arg.ClientCompany,
		arg.Testimonial,
		arg.Rating,
		arg.EventType,
		arg.IsFeatured,
	))
}

package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const contactMessageColumns = `id, name, email, phone, subject, message, is_read, created_at`

func scanContactMessage(row pgx.Row) (*ContactMessage, error) {
	var i ContactMessage
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Email,
		&i.Phone,
		&i.Subject,
		&i.Message,
		&i.IsRead,
		&i.CreatedAt,
	)
	return &i, err
}

type CreateContactMessageParams struct {
	Name    string
	Email   []byte
	Phone   []byte
	Subject string
	Message string
}

const createContactMessage = `INSERT INTO contact_messages (name, email, phone, subject, message)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + contactMessageColumns

func (q *Queries) CreateContactMessage(ctx context.Context, arg *CreateContactMessageParams) (*ContactMessage, error) {
	return scanContactMessage(q.db.QueryRow(ctx, createContactMessage,
		arg.Name,
		arg.Email,
		arg.Phone,
		arg.Subject,
		arg.Message,
	))
}

const listContactMessages = `SELECT ` + contactMessageColumns + `
FROM contact_messages
WHERE (NOT $1::boolean OR NOT is_read)
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

type ListContactMessagesParams struct {
	UnreadOnly bool
	Limit      int32
	Offset     int32
}

func (q *Queries) ListContactMessages(ctx context.Context, arg *ListContactMessagesParams) ([]*ContactMessage, error) {
	rows, err := q.db.Query(ctx, listContactMessages, arg.UnreadOnly, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []*ContactMessage{}
	for rows.Next() {
		i, err := scanContactMessage(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const countUnreadContactMessages = `SELECT count(*) FROM contact_messages WHERE NOT is_read`

func (q *Queries) CountUnreadContactMessages(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, countUnreadContactMessages).Scan(&n)
	return n, err
}

const markContactMessageRead = `UPDATE contact_messages SET is_read = $2 WHERE id = $1`

func (q *Queries) MarkContactMessageRead(ctx context.Context, id pgtype.UUID, read bool) (int64, error) {
	tag, err := q.db.Exec(ctx, markContactMessageRead, id, read)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

package db

import (
	"context"
)

const subscribeNewsletter = `INSERT INTO newsletter_subscribers (email)
VALUES ($1)
ON CONFLICT (lower(email)) DO NOTHING`

// SubscribeNewsletter stores email and reports whether it was new.
func (q *Queries) SubscribeNewsletter(ctx context.Context, email string) (bool, error) {
	tag, err := q.db.Exec(ctx, subscribeNewsletter, email)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

const countNewsletterSubscribers = `SELECT count(*) FROM newsletter_subscribers`

func (q *Queries) CountNewsletterSubscribers(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, countNewsletterSubscribers).Scan(&n)
	return n, err
}

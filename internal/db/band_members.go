package db

import (
	"context"
)

const listActiveBandMembers = `SELECT id, name, role, bio, image_url, instagram, facebook, twitter, sort_order, is_active
FROM band_members
WHERE is_active
ORDER BY sort_order, name
LIMIT $1`

// ListActiveBandMembers returns up to limit members; a non-positive limit
// returns all of them.
func (q *Queries) ListActiveBandMembers(ctx context.Context, limit int32) ([]*BandMember, error) {
	var lim any
	if limit > 0 {
		lim = limit
	}
	rows, err := q.db.Query(ctx, listActiveBandMembers, lim)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []*BandMember{}
	for rows.Next() {
		var i BandMember
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.Role,
			&i.Bio,
			&i.ImageUrl,
			&i.Instagram,
			&i.Facebook,
			&i.Twitter,
			&i.SortOrder,
			&i.IsActive,
		); err != nil {
			return nil, err
		}
		items = append(items, &i)
	}
	return items, rows.Err()
}

type CreateBandMemberParams struct {
	Name      string
	Role      string
	Bio       string
	ImageUrl  string
	Instagram string
	Facebook  string
	Twitter   string
	SortOrder int32
}

const createBandMember = `INSERT INTO band_members (name, role, bio, image_url, instagram, facebook, twitter, sort_order)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

func (q *Queries) CreateBandMember(ctx context.Context, arg *CreateBandMemberParams) error {
	_, err := q.db.Exec(ctx, createBandMember,
		arg.Name,
		arg.Role,
		arg.Bio,
		arg.ImageUrl,
		arg.Instagram,
		arg.Facebook,
		arg.Twitter,
		arg.SortOrder,
	)
	return err
}

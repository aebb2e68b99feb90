package db

import (
	"context"
	"strings"
)

const listServices = `SELECT id, name, service_type, description, short_description, price_range, duration,
	features, icon, image_url, is_featured, sort_order
FROM services
WHERE (NOT $1::boolean OR is_featured)
ORDER BY sort_order, name
LIMIT $2`

type ListServicesParams struct {
	FeaturedOnly bool
	// Limit <= 0 means no limit.
	Limit int32
}

func (q *Queries) ListServices(ctx context.Context, arg *ListServicesParams) ([]*Service, error) {
	var lim any
	if arg.Limit > 0 {
		lim = arg.Limit
	}
	rows, err := q.db.Query(ctx, listServices, arg.FeaturedOnly, lim)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []*Service{}
	for rows.Next() {
		var i Service
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.ServiceType,
			&i.Description,
			&i.ShortDescription,
			&i.PriceRange,
			&i.Duration,
			&i.Features,
			&i.Icon,
			&i.ImageUrl,
			&i.IsFeatured,
			&i.SortOrder,
		); err != nil {
			return nil, err
		}
		items = append(items, &i)
	}
	return items, rows.Err()
}

// FeatureList splits the newline separated features column.
func (s *Service) FeatureList() []string {
	var out []string
	for _, line := range strings.Split(s.Features, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

type CreateServiceParams struct {
	Name             string
	ServiceType      string
	Description      string
	ShortDescription string
	PriceRange       string
	Duration         string
	Features         string
	Icon             string
	IsFeatured       bool
	SortOrder        int32
}

const createService = `INSERT INTO services (name, service_type, description, short_description, price_range,
	duration, features, icon, is_featured, sort_order)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

func (q *Queries) CreateService(ctx context.Context, arg *CreateServiceParams) error {
	_, err := q.db.Exec(ctx, createService,
		arg.Name,
		arg.ServiceType,
		arg.Description,
		arg.ShortDescription,
		arg.PriceRange,
		arg.Duration,
		arg.Features,
		arg.Icon,
		arg.IsFeatured,
		arg.SortOrder,
	)
	return err
}

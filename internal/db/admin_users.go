package db

import (
	"context"
	"fmt"
	"strings"

	"diamondband.live/site/pkg/utils/passwords"
)

const adminUserColumns = `id, username, password, created_at, last_login_at`

const getAdminUserByUsername = `SELECT ` + adminUserColumns + `
FROM admin_users
WHERE lower(username) = lower($1)`

func (q *Queries) GetAdminUserByUsername(ctx context.Context, username string) (*AdminUser, error) {
	var i AdminUser
	err := q.db.QueryRow(ctx, getAdminUserByUsername, username).Scan(
		&i.ID,
		&i.Username,
		&i.Password,
		&i.CreatedAt,
		&i.LastLoginAt,
	)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

const upsertAdminUser = `INSERT INTO admin_users (username, password)
VALUES ($1, $2)
ON CONFLICT (username) DO UPDATE SET password = EXCLUDED.password
RETURNING ` + adminUserColumns

// NewAdminUserParams contains the parameters for creating an admin
type NewAdminUserParams struct {
	Username string
	Password string // plaintext password
}

// NewAdminUser hashes the password and creates the admin, or resets the
// password of an existing one.
func (q *Queries) NewAdminUser(ctx context.Context, params NewAdminUserParams) (*AdminUser, error) {
	username := strings.TrimSpace(params.Username)
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	hash, err := passwords.New(params.Password)
	if err != nil {
		return nil, err
	}

	var i AdminUser
	err = q.db.QueryRow(ctx, upsertAdminUser, username, hash).Scan(
		&i.ID,
		&i.Username,
		&i.Password,
		&i.CreatedAt,
		&i.LastLoginAt,
	)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

const touchAdminLogin = `UPDATE admin_users SET last_login_at = now() WHERE id = $1`

func (q *Queries) TouchAdminLogin(ctx context.Context, user *AdminUser) error {
	_, err := q.db.Exec(ctx, touchAdminLogin, user.ID)
	return err
}

// Package passwords hashes admin passwords with argon2id.
package passwords

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexedwards/argon2id"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	MinLength = 10
	MaxLength = 256
)

// ErrMismatch is returned by Verify when the password is wrong.
var ErrMismatch = errors.New("password does not match")

var params = &argon2id.Params{
	Memory:      64 * 1024,
	Iterations:  3,
	Parallelism: 2,
	SaltLength:  16,
	KeyLength:   32,
}

var validate = validator.New()

type input struct {
	Password string `validate:"required,min=10,max=256"`
}

// Hash is an encoded argon2id hash as stored in the admin_users table.
type Hash string

// New hashes plain after checking its length.
func New(plain string) (Hash, error) {
	if err := validate.Struct(input{Password: plain}); err != nil {
		return "", fmt.Errorf("password must be %d to %d characters", MinLength, MaxLength)
	}
	h, err := argon2id.CreateHash(plain, params)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return Hash(h), nil
}

// Verify returns nil when plain matches h.
func (h Hash) Verify(plain string) error {
	if !IsEncoded(string(h)) {
		return ErrMismatch
	}
	ok, err := argon2id.ComparePasswordAndHash(plain, string(h))
	if err != nil {
		return fmt.Errorf("compare password: %w", err)
	}
	if !ok {
		return ErrMismatch
	}
	return nil
}

// IsEncoded reports whether s looks like an argon2id hash.
func IsEncoded(s string) bool {
	return strings.HasPrefix(s, "$argon2id$")
}

// ScanText implements pgtype.TextScanner.
func (h *Hash) ScanText(v pgtype.Text) error {
	*h = Hash(v.String)
	return nil
}

// TextValue implements pgtype.TextValuer.
func (h Hash) TextValue() (pgtype.Text, error) {
	return pgtype.Text{String: string(h), Valid: h != ""}, nil
}

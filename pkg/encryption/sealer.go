package encryption

import (
	"crypto/cipher"
	"errors"
	"fmt"
	"strings"
)

// ErrOpen is returned when a sealed value fails authentication.
var ErrOpen = errors.New("encryption: cannot open sealed value")

// Sealer seals and opens strings with one key. Every value is bound to a
// purpose label (e.g. "booking.email") so a ciphertext copied into another
// column does not open.
type Sealer struct {
	kind CipherType
	aead cipher.AEAD
}

// NewSealer builds a sealer for the given cipher and raw key.
func NewSealer(t CipherType, key []byte) (*Sealer, error) {
	aead, err := newAEAD(t, key)
	if err != nil {
		return nil, fmt.Errorf("create %s sealer: %w", t, err)
	}
	return &Sealer{kind: t, aead: aead}, nil
}

// NewSealerFromHex parses a hex key and cipher name as found in configuration.
func NewSealerFromHex(keyHex, cipherName string) (*Sealer, error) {
	t, err := ParseCipherType(cipherName)
	if err != nil {
		return nil, err
	}
	key, err := KeyFromHex(keyHex)
	if err != nil {
		return nil, err
	}
	return NewSealer(t, key)
}

// CipherType returns the configured construction.
func (s *Sealer) CipherType() CipherType { return s.kind }

// SealString seals v for purpose. Empty strings seal to nil so optional
// columns stay NULL.
func (s *Sealer) SealString(purpose, v string) ([]byte, error) {
	if v == "" {
		return nil, nil
	}
	return seal(s.aead, []byte(v), []byte(purpose))
}

// OpenString reverses SealString. A nil input opens to "".
func (s *Sealer) OpenString(purpose string, sealed []byte) (string, error) {
	if len(sealed) == 0 {
		return "", nil
	}
	plain, err := open(s.aead, sealed, []byte(purpose))
	if err != nil {
		return "", fmt.Errorf("%w (%s): %v", ErrOpen, purpose, err)
	}
	return string(plain), nil
}

// Mask hides most of a contact detail for listings, keeping enough to
// recognise it: "s***@example.com", "***1234".
func Mask(v string) string {
	if v == "" {
		return ""
	}
	if at := strings.LastIndexByte(v, '@'); at > 0 {
		return v[:1] + "***" + v[at:]
	}
	r := []rune(v)
	if len(r) <= 4 {
		return "***"
	}
	return "***" + string(r[len(r)-4:])
}

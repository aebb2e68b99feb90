// Package encryption seals small values (contact email addresses and phone
// numbers) before they are written to the database.
package encryption

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/chacha20poly1305"
)

// CipherType names an AEAD construction.
type CipherType string

const (
	CipherChaCha20Poly1305  CipherType = "chacha20-poly1305"
	CipherXChaCha20Poly1305 CipherType = "xchacha20-poly1305"
	CipherAES256GCM         CipherType = "aes-256-gcm"
)

// DefaultCipher is used when no cipher is configured.
const DefaultCipher = CipherChaCha20Poly1305

// KeySize is the required key length in bytes for every supported cipher.
const KeySize = chacha20poly1305.KeySize

// ParseCipherType resolves a configured cipher name. Empty selects
// DefaultCipher.
func ParseCipherType(s string) (CipherType, error) {
	switch CipherType(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return DefaultCipher, nil
	case CipherChaCha20Poly1305:
		return CipherChaCha20Poly1305, nil
	case CipherXChaCha20Poly1305:
		return CipherXChaCha20Poly1305, nil
	case CipherAES256GCM:
		return CipherAES256GCM, nil
	}
	return "", fmt.Errorf("unsupported cipher %q (want %s, %s or %s)", s,
		CipherChaCha20Poly1305, CipherXChaCha20Poly1305, CipherAES256GCM)
}

// KeyFromHex decodes a 64 character hex key.
func KeyFromHex(s string) ([]byte, error) {
	key, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("key is not hex: %w", err)
	}
	if len(key) != KeySize {
		return nil, fmt.Errorf("key must be %d bytes (%d hex chars), got %d bytes", KeySize, KeySize*2, len(key))
	}
	return key, nil
}

func newAEAD(t CipherType, key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("invalid key size: got %d, want %d", len(key), KeySize)
	}
	switch t {
	case CipherChaCha20Poly1305:
		return chacha20poly1305.New(key)
	case CipherXChaCha20Poly1305:
		return chacha20poly1305.NewX(key)
	case CipherAES256GCM:
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, fmt.Errorf("aes: %w", err)
		}
		return cipher.NewGCM(block)
	}
	return nil, fmt.Errorf("unsupported cipher %q", t)
}

// seal returns [nonce][ciphertext+tag].
func seal(aead cipher.AEAD, plaintext, ad []byte) ([]byte, error) {
	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(plaintext)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("nonce: %w", err)
	}
	return aead.Seal(nonce, nonce, plaintext, ad), nil
}

func open(aead cipher.AEAD, sealed, ad []byte) ([]byte, error) {
	n := aead.NonceSize()
	if len(sealed) < n+aead.Overhead() {
		return nil, fmt.Errorf("sealed value too short: %d bytes", len(sealed))
	}
	return aead.Open(nil, sealed[:n], sealed[n:], ad)
}

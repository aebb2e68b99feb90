package application

import (
	"fmt"

	"diamondband.live/site/internal/config"
	"diamondband.live/site/pkg/encryption"
)

// InitSealer builds the sealer for contact details from configuration. The
// key must be a 64 character hex string (32 bytes); the cipher defaults to
// chacha20-poly1305.
func InitSealer(cfg config.Config) (*encryption.Sealer, error) {
	if cfg.EncryptionKey == "" {
		return nil, fmt.Errorf("ENCRYPTION_KEY is not set")
	}
	s, err := encryption.NewSealerFromHex(cfg.EncryptionKey, cfg.EncryptionCipher)
	if err != nil {
		return nil, fmt.Errorf("init sealer: %w", err)
	}
	return s, nil
}

package application

import (
	"testing"

	"github.com/stretchr/testify/require"

	"diamondband.live/site/internal/config"
	"diamondband.live/site/pkg/encryption"
)

const zeroKey = "0000000000000000000000000000000000000000000000000000000000000000"

func TestInitSealer_DefaultCipher(t *testing.T) {
	t.Parallel()

	s, err := InitSealer(config.Config{EncryptionKey: zeroKey})
	require.NoError(t, err)
	require.Equal(t, encryption.CipherChaCha20Poly1305, s.CipherType())
}

func TestInitSealer_SpecificCiphers(t *testing.T) {
	t.Parallel()

	for _, c := range []string{"chacha20-poly1305", "xchacha20-poly1305", "aes-256-gcm"} {
		t.Run(c, func(t *testing.T) {
			t.Parallel()
			s, err := InitSealer(config.Config{EncryptionKey: zeroKey, EncryptionCipher: c})
			require.NoError(t, err)
			require.Equal(t, encryption.CipherType(c), s.CipherType())
		})
	}
}

func TestInitSealer_Errors(t *testing.T) {
	t.Parallel()

	cases := map[string]config.Config{
		"missing key":        {},
		"invalid hex":        {EncryptionKey: "not-hex"},
		"wrong length":       {EncryptionKey: "deadbeef"},
		"unsupported cipher": {EncryptionKey: zeroKey, EncryptionCipher: "totally-not-a-cipher"},
	}
	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := InitSealer(cfg)
			require.Error(t, err)
		})
	}
}

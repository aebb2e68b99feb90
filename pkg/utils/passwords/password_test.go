package passwords

import (
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	t.Parallel()

	h, err := New("correct horse battery")
	require.NoError(t, err)
	require.True(t, IsEncoded(string(h)))

	require.NoError(t, h.Verify("correct horse battery"))
	require.ErrorIs(t, h.Verify("Correct horse battery"), ErrMismatch)
}

func TestNew_Length(t *testing.T) {
	t.Parallel()

	_, err := New("short")
	require.Error(t, err)

	_, err = New("")
	require.Error(t, err)
}

func TestVerify_NotEncoded(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, Hash("plaintext").Verify("plaintext"), ErrMismatch)
}

func TestHash_Text(t *testing.T) {
	t.Parallel()

	var h Hash
	require.NoError(t, h.ScanText(pgtype.Text{String: "$argon2id$x", Valid: true}))
	require.Equal(t, Hash("$argon2id$x"), h)

	v, err := h.TextValue()
	require.NoError(t, err)
	require.True(t, v.Valid)

	v, err = Hash("").TextValue()
	require.NoError(t, err)
	require.False(t, v.Valid)
}

package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	t.Parallel()

	require.Equal(t, "1,000", Comma(1000))
	require.Equal(t, "500+", Counter(500))
	require.Equal(t, "1,000+", Counter(1000))
	require.Equal(t, "3rd", Ordinal(3))
}

func TestDates(t *testing.T) {
	t.Parallel()

	d := time.Date(2025, time.June, 15, 9, 0, 0, 0, time.UTC)
	require.Equal(t, "June 15, 2025", Date(d))
	require.Empty(t, Date(time.Time{}))
	require.Equal(t, "3 days ago", Ago(d, d.Add(72*time.Hour)))
	require.Empty(t, Ago(time.Time{}, d))
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	require.Equal(t, "short", Truncate("short", 10))
	require.Equal(t, "Diamond...", Truncate("Diamond Band", 10))
	require.Equal(t, "ééé...", Truncate("éééééééééé", 6))
}

func TestInitials(t *testing.T) {
	t.Parallel()

	require.Equal(t, "SM", Initials("Sarah & Michael"))
	require.Equal(t, "CE", Initials("corporate events inc."))
	require.Equal(t, "", Initials(""))
}

package gallery

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func sampleItems(n int) []Item {
	items := make([]Item, n)
	for i := range items {
		items[i] = Item{ID: fmt.Sprintf("%d", i+1), Height: 300 + 10*i, Description: fmt.Sprintf("photo %d", i+1)}
	}
	return items
}

func TestNavigator_OpenNextPrevious(t *testing.T) {
	t.Parallel()

	nav := NewNavigator(sampleItems(3))
	_, ok := nav.Index()
	require.False(t, ok)

	require.True(t, nav.Open("2"))
	idx, ok := nav.Index()
	require.True(t, ok)
	require.Equal(t, 1, idx)

	nav.Next()
	idx, _ = nav.Index()
	require.Equal(t, 2, idx)

	// wraps forward
	nav.Next()
	idx, _ = nav.Index()
	require.Equal(t, 0, idx)

	// wraps backward
	nav.Previous()
	idx, _ = nav.Index()
	require.Equal(t, 2, idx)

	it, ok := nav.Selected()
	require.True(t, ok)
	require.Equal(t, "3", it.ID)

	nav.Close()
	_, ok = nav.Selected()
	require.False(t, ok)
}

func TestNavigator_OpenUnknownID(t *testing.T) {
	t.Parallel()

	nav := NewNavigator(sampleItems(2))
	require.True(t, nav.Open("1"))
	require.False(t, nav.Open("missing"))
	idx, ok := nav.Index()
	require.True(t, ok)
	require.Equal(t, 0, idx)
}

func TestNavigator_NextThenPreviousRoundTrips(t *testing.T) {
	t.Parallel()

	for n := 1; n <= 7; n++ {
		items := sampleItems(n)
		for start := 0; start < n; start++ {
			nav := Restore(items, start)
			nav.Next()
			idx, ok := nav.Index()
			require.True(t, ok)
			require.GreaterOrEqual(t, idx, 0)
			require.Less(t, idx, n)
			nav.Previous()
			idx, _ = nav.Index()
			require.Equal(t, start, idx, "n=%d start=%d", n, start)
		}
	}
}

func TestNavigator_EmptyListIsInert(t *testing.T) {
	t.Parallel()

	nav := NewNavigator(nil)
	require.False(t, nav.Open("1"))
	nav.Next()
	nav.Previous()
	require.False(t, nav.HandleKey(KeyRight))
	_, ok := nav.Index()
	require.False(t, ok)
}

func TestNavigator_HandleKey(t *testing.T) {
	t.Parallel()

	nav := NewNavigator(sampleItems(3))

	// inactive without a selection
	require.False(t, nav.HandleKey(KeyRight))
	_, ok := nav.Index()
	require.False(t, ok)

	require.True(t, nav.Open("1"))
	require.True(t, nav.HandleKey(KeyLeft))
	idx, _ := nav.Index()
	require.Equal(t, 2, idx)

	require.True(t, nav.HandleKey(KeyRight))
	idx, _ = nav.Index()
	require.Equal(t, 0, idx)

	require.False(t, nav.HandleKey("Enter"))

	require.True(t, nav.HandleKey(KeyEscape))
	_, ok = nav.Index()
	require.False(t, ok)
}

func TestRestore_OutOfRange(t *testing.T) {
	t.Parallel()

	items := sampleItems(2)
	for _, idx := range []int{-1, 2, 99} {
		nav := Restore(items, idx)
		_, ok := nav.Index()
		require.False(t, ok, "index %d", idx)
	}
}

func TestColumns_BalancesByHeight(t *testing.T) {
	t.Parallel()

	items := []Item{
		{ID: "a", Height: 500},
		{ID: "b", Height: 100},
		{ID: "c", Height: 100},
		{ID: "d", Height: 100},
		{ID: "e", Height: 0},
	}
	cols := Columns(items, 2)
	require.Len(t, cols, 2)

	ids := func(col []Item) []string {
		var out []string
		for _, it := range col {
			out = append(out, it.ID)
		}
		return out
	}
	require.Equal(t, []string{"a"}, ids(cols[0]))
	require.Equal(t, []string{"b", "c", "d", "e"}, ids(cols[1]))

	require.Len(t, Columns(items, 0), 1)
}

func TestFilter_Apply(t *testing.T) {
	t.Parallel()

	items := []Item{
		{ID: "1", EventType: "wedding", MediaType: MediaImage, EventDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "2", EventType: "concert", MediaType: MediaVideo, EventDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "3", EventType: "wedding", MediaType: MediaVideo, EventDate: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)},
	}

	cases := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"all", Filter{EventType: "all", MediaType: "all", Year: "all"}, []string{"1", "2", "3"}},
		{"empty", Filter{}, []string{"1", "2", "3"}},
		{"event type", Filter{EventType: "wedding"}, []string{"1", "3"}},
		{"media type", Filter{MediaType: "video"}, []string{"2", "3"}},
		{"year", Filter{Year: "2025"}, []string{"2", "3"}},
		{"combined", Filter{EventType: "wedding", Year: "2025"}, []string{"3"}},
		{"bad year", Filter{Year: "soon"}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got []string
			for _, it := range tc.filter.Apply(items) {
				got = append(got, it.ID)
			}
			require.Equal(t, tc.want, got)
		})
	}

	require.Equal(t, []int{2025, 2024}, Years(items))
}

type stubSource struct {
	items []Item
	err   error
}

func (s stubSource) ListGallery(context.Context) ([]Item, error) { return s.items, s.err }

func TestLoad_DegradesToEmpty(t *testing.T) {
	t.Parallel()

	items := Load(context.Background(), stubSource{err: errors.New("boom")}, nil)
	require.NotNil(t, items)
	require.Empty(t, items)

	items = Load(context.Background(), stubSource{items: sampleItems(2)}, nil)
	require.Len(t, items, 2)
}

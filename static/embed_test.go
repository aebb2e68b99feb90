package static

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmbeddedAssets(t *testing.T) {
	var got []string
	err := fs.WalkDir(FS, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		got = append(got, p)
		return nil
	})
	require.NoError(t, err)
	// WalkDir visits in lexical order.
	require.Equal(t, []string{"dist/main.css", "dist/main.js"}, got)
}

func TestStylesheetCoversWidgets(t *testing.T) {
	css, err := fs.ReadFile(FS, "dist/main.css")
	require.NoError(t, err)

	for _, class := range []string{".masonry", ".modal", ".testimonial", ".form-status", ".field-error", ".stat-number"} {
		require.Contains(t, string(css), class)
	}
}

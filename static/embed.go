// Package static embeds the compiled site assets served under /static/.
package static

import "embed"

//go:embed dist
var FS embed.FS

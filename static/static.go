// Package static embeds the storefront's stylesheet.
package static

import "embed"

//go:embed *.css
var FS embed.FS

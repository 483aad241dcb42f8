package slug

import (
	"regexp"
	"strings"
)

var (
	nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)
	handleRe = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// FromTitle builds a Shopify-style handle from a display title.
func FromTitle(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonAlnum.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "product"
	}
	return s
}

// ValidHandle reports whether s looks like a product or collection handle.
// Handlers reject anything else before querying the storefront.
func ValidHandle(s string) bool {
	return len(s) <= 255 && handleRe.MatchString(s)
}

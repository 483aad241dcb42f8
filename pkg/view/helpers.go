package view

import (
	"net/url"
	"strings"
)

// MenuItemPath turns absolute menu URLs that point back at the shop into
// relative paths, so navigation stays on this storefront. Other URLs pass
// through unchanged.
func MenuItemPath(raw, primaryDomainURL, publicStoreDomain string) string {
	if raw == "" {
		return "/"
	}
	internal := strings.Contains(raw, "myshopify.com") ||
		(publicStoreDomain != "" && strings.Contains(raw, publicStoreDomain)) ||
		(primaryDomainURL != "" && strings.Contains(raw, primaryDomainURL))
	if !internal {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Path == "" {
		return "/"
	}
	return u.Path
}

package storefront

import (
	"context"
	"regexp"
	"strings"
)

// I18n selects the @inContext country and language of a query.
type I18n struct {
	Language string
	Country  string
	// PathPrefix is the locale segment the request came in on ("/fr-ca"),
	// empty for the default locale.
	PathPrefix string
}

type i18nKey struct{}

func WithI18n(ctx context.Context, in I18n) context.Context {
	return context.WithValue(ctx, i18nKey{}, in)
}

// I18nFrom returns the locale stored on ctx, if any.
func I18nFrom(ctx context.Context) (I18n, bool) {
	in, ok := ctx.Value(i18nKey{}).(I18n)
	return in, ok
}

var localeSegment = regexp.MustCompile(`^([a-zA-Z]{2})-([a-zA-Z]{2})$`)

// ParseLocalePath reads a leading "/{language}-{country}" segment from path.
// It returns the locale, the path with the segment stripped, and whether a
// segment was present.
func ParseLocalePath(path string) (I18n, string, bool) {
	trimmed := strings.TrimPrefix(path, "/")
	first, rest, _ := strings.Cut(trimmed, "/")
	m := localeSegment.FindStringSubmatch(first)
	if m == nil {
		return I18n{}, path, false
	}
	in := I18n{
		Language:   strings.ToUpper(m[1]),
		Country:    strings.ToUpper(m[2]),
		PathPrefix: "/" + strings.ToLower(first),
	}
	return in, "/" + rest, true
}

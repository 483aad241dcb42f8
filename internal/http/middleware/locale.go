package middleware

import (
	"net/http"

	"homura.shop/app/internal/storefront"
)

// Locale strips an optional "/{language}-{country}" prefix before routing
// and stores the locale on the request context. Requests without a prefix
// get def.
//
// It wraps the router rather than being gin middleware because gin matches
// routes before any middleware runs.
func Locale(next http.Handler, def storefront.I18n) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		in, rest, ok := storefront.ParseLocalePath(r.URL.Path)
		if !ok {
			in = def
		} else {
			r2 := r.Clone(r.Context())
			r2.URL.Path = rest
			r2.URL.RawPath = ""
			r = r2
		}
		next.ServeHTTP(w, r.WithContext(storefront.WithI18n(r.Context(), in)))
	})
}

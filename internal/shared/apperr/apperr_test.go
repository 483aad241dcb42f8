package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"invalid", InvalidErr("bad", nil), http.StatusBadRequest},
		{"not found", NotFoundErr("gone"), http.StatusNotFound},
		{"unauthorized", UnauthorizedErr("login"), http.StatusUnauthorized},
		{"forbidden", ForbiddenErr("no"), http.StatusForbidden},
		{"conflict", ConflictErr("dup"), http.StatusConflict},
		{"wrapped internal", Wrap(errors.New("boom")), http.StatusInternalServerError},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
		{"nested", fmt.Errorf("handler: %w", NotFoundErr("gone")), http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, HTTPStatus(tc.err))
		})
	}
}

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(nil))

	cause := errors.New("storefront down")
	ae := Wrap(cause)
	assert.Equal(t, Internal, ae.Kind)
	assert.ErrorIs(t, ae, cause)
	assert.Equal(t, defaultPublicMsg, PublicMessage(ae))

	nf := NotFoundErr("Product not found.")
	assert.Same(t, nf, Wrap(fmt.Errorf("ctx: %w", nf)))
}

func TestPublicMessage(t *testing.T) {
	assert.Equal(t, "Product not found.", PublicMessage(NotFoundErr("Product not found.")))
	assert.Equal(t, defaultPublicMsg, PublicMessage(errors.New("secret detail")))
	assert.True(t, IsKind(InvalidErr("x", nil), Invalid))
	assert.False(t, IsKind(errors.New("x"), Invalid))
}

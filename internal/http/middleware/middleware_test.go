package middleware

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homura.shop/app/internal/http/flash"
	"homura.shop/app/internal/shared/apperr"
	"homura.shop/app/internal/storefront"
	"homura.shop/app/pkg/view"
)

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func init() { gin.SetMode(gin.TestMode) }

func TestLocaleStripsPrefix(t *testing.T) {
	def := storefront.I18n{Language: "EN", Country: "US"}
	var gotPath string
	var gotLocale storefront.I18n
	h := Locale(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotLocale, _ = storefront.I18nFrom(r.Context())
	}), def)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/fr-ca/products/shirt", nil))
	assert.Equal(t, "/products/shirt", gotPath)
	assert.Equal(t, storefront.I18n{Language: "FR", Country: "CA", PathPrefix: "/fr-ca"}, gotLocale)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/products/shirt", nil))
	assert.Equal(t, "/products/shirt", gotPath)
	assert.Equal(t, def, gotLocale)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/en-gb", nil))
	assert.Equal(t, "/", gotPath)
	assert.Equal(t, "GB", gotLocale.Country)
}

func TestErrorHandlerRendersStatus(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), ErrorHandler(discard()))
	r.GET("/missing", func(c *gin.Context) { Fail(c, apperr.NotFoundErr("Product not found.")) })
	r.GET("/boom", func(c *gin.Context) { Fail(c, apperr.Wrap(errors.New("db down"))) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Product not found.")
	assert.NotEmpty(t, w.Header().Get(HeaderRequestID))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "db down")

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	req.Header.Set("Accept", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Something went wrong. Please try again.","request_id":"`+w.Header().Get(HeaderRequestID)+`"}`, w.Body.String())
}

func TestRecoveryReturns500(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), ErrorHandler(discard()), Recovery(discard()))
	r.GET("/panic", func(c *gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

type loginFunc func(ctx context.Context, sid string) (bool, error)

func (f loginFunc) IsLoggedIn(ctx context.Context, sid string) (bool, error) { return f(ctx, sid) }

func TestRequireCustomerRedirects(t *testing.T) {
	codec := flash.NewCodec([]byte("0123456789abcdef0123456789abcdef"), "homura_flash", false)
	r := gin.New()
	r.GET("/account", RequireCustomer(loginFunc(func(context.Context, string) (bool, error) {
		return false, nil
	}), codec), func(c *gin.Context) { c.String(http.StatusOK, "secret") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/account", nil))
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/account/login?return_to=%2Faccount", w.Header().Get("Location"))
	assert.Contains(t, w.Header().Get("Set-Cookie"), "homura_flash=")
}

func TestFlashIsOneShot(t *testing.T) {
	codec := flash.NewCodec([]byte("0123456789abcdef0123456789abcdef"), "homura_flash", false)
	val, err := codec.Encode(view.Flash{Kind: view.FlashSuccess, Message: "Added to cart."})
	require.NoError(t, err)

	r := gin.New()
	r.Use(FlashMiddleware(codec))
	var got string
	r.GET("/", func(c *gin.Context) {
		if f := GetFlash(c); f != nil {
			got = f.Message
		}
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "homura_flash", Value: val, Expires: time.Now().Add(time.Minute)})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "Added to cart.", got)
	assert.Contains(t, w.Header().Get("Set-Cookie"), "Max-Age=0")
}

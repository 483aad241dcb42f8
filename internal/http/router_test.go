package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homura.shop/app/internal/config"
	"homura.shop/app/internal/store"
	"homura.shop/app/internal/storefront/storefronttest"
)

const (
	headerData = `{"shop":{"id":"gid://shopify/Shop/1","name":"Homura","description":"","primaryDomain":{"url":"https://homura.shop"},"brand":null},
"menu":{"id":"m","items":[{"id":"1","resourceId":null,"title":"Shop all","type":"HTTP","url":"https://homura.shop/collections","items":[]}]}}`
	footerData   = `{"menu":{"id":"f","items":[{"id":"2","resourceId":null,"title":"About","type":"PAGE","url":"https://homura.shop/pages/about","items":[]}]}}`
	featuredData = `{"collections":{"nodes":[{"id":"c1","title":"Spring","handle":"spring","image":null}]}}`
	productsData = `{"products":{"nodes":[
{"id":"p1","title":"Silk Tee","handle":"silk-tee","priceRange":{"minVariantPrice":{"amount":"20.0","currencyCode":"USD"}},"images":{"nodes":[{"id":"i","url":"https://cdn.shopify.com/t.jpg","altText":"","width":1,"height":1}]}}]}}`
	cartData = `{"id":"gid://shopify/Cart/c1?key=k","checkoutUrl":"https://homura.shop/checkouts/c1","totalQuantity":1,
"cost":{"subtotalAmount":{"amount":"20.0","currencyCode":"USD"},"totalAmount":{"amount":"20.0","currencyCode":"USD"},"totalTaxAmount":null},
"lines":{"nodes":[{"id":"gid://shopify/CartLine/1","quantity":1,"cost":{"totalAmount":{"amount":"20.0","currencyCode":"USD"},"amountPerQuantity":{"amount":"20.0","currencyCode":"USD"}},
"merchandise":{"id":"gid://shopify/ProductVariant/9","title":"M","availableForSale":true,"price":{"amount":"20.0","currencyCode":"USD"},"compareAtPrice":null,"image":null,
"selectedOptions":[{"name":"Size","value":"M"}],"product":{"id":"p1","handle":"silk-tee","title":"Silk Tee"}}}]},"note":""}`
)

func init() { gin.SetMode(gin.TestMode) }

func testConfig() config.Config {
	return config.Config{
		PublicStoreDomain: "homura.myshopify.com",
		DefaultCountry:    "US",
		DefaultLanguage:   "EN",
		HeaderMenuHandle:  "main-menu",
		FooterMenuHandle:  "footer",
		SessionSecret:     "0123456789abcdef0123456789abcdef",
		SessionTTL:        24 * time.Hour,
	}
}

func storeFake() *storefronttest.Fake {
	return storefronttest.New().
		Respond("Header", headerData).
		Respond("Footer", footerData).
		Respond("FeaturedCollection", featuredData).
		Respond("RecommendedProducts", productsData)
}

func newTestRouter(t *testing.T, sf *storefronttest.Fake) http.Handler {
	t.Helper()
	db, err := store.Open(store.Config{Driver: "sqlite", DSN: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background(), db, "sqlite", nil))

	l := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := testConfig()
	return NewRouter(l, cfg, NewServices(cfg, sf, db, l))
}

func get(h http.Handler, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func postForm(h http.Handler, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func cookieNamed(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestHomepage(t *testing.T) {
	h := newTestRouter(t, storeFake())

	w := get(h, "/")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()

	assert.Contains(t, body, "<title>Homura | Home</title>")
	assert.Contains(t, body, `class="background-video"`)
	assert.Contains(t, body, `<h1 class="hero-title">Homura</h1>`)
	assert.Contains(t, body, `href="/products/silk-tee"`)
	assert.Contains(t, body, "$20.00")
	assert.Contains(t, body, `id="cart-aside"`)
	assert.Contains(t, body, `id="mobile-menu-aside"`)
	assert.Contains(t, body, `href="/collections"`)
	assert.Contains(t, body, `href="/pages/about"`)
	assert.True(t, strings.HasSuffix(body, "</body></html>"))
}

func TestHomepageCriticalFailureIs500(t *testing.T) {
	sf := storeFake().Fail("FeaturedCollection", errors.New("unauthorized"))
	h := newTestRouter(t, sf)

	w := get(h, "/")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "unauthorized")
}

func TestHeaderFailureIs500(t *testing.T) {
	sf := storeFake().Fail("Header", errors.New("timeout"))
	h := newTestRouter(t, sf)

	assert.Equal(t, http.StatusInternalServerError, get(h, "/").Code)
}

func TestHomepageDeferredFailureStill200(t *testing.T) {
	sf := storeFake().
		Fail("RecommendedProducts", errors.New("throttled")).
		Fail("Footer", errors.New("throttled"))
	h := newTestRouter(t, sf)

	w := get(h, "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `<div class="recommended-products-grid"></div>`)
}

func TestHomepageNoMenuHasNoMobileAside(t *testing.T) {
	sf := storeFake().Respond("Header", `{"shop":{"id":"s","name":"Homura","description":"","primaryDomain":{"url":"https://homura.shop"},"brand":null},"menu":null}`)
	h := newTestRouter(t, sf)

	w := get(h, "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), `id="mobile-menu-aside"`)
}

// flushRecorder releases a held operation on the first flush, which is
// when the document shell has been written.
type flushRecorder struct {
	*httptest.ResponseRecorder
	onFlush func()
}

func (r *flushRecorder) Flush() {
	r.onFlush()
	r.ResponseRecorder.Flush()
}

func TestHomepageStreamsDeferredGrid(t *testing.T) {
	sf := storeFake()
	release := sf.Hold("RecommendedProducts")
	h := newTestRouter(t, sf)

	w := &flushRecorder{ResponseRecorder: httptest.NewRecorder(), onFlush: release}
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	placeholder := strings.Index(body, `<div id="S:`)
	streamed := strings.Index(body, `href="/products/silk-tee"`)
	require.NotEqual(t, -1, placeholder)
	require.NotEqual(t, -1, streamed)
	assert.Less(t, placeholder, streamed)
	assert.Contains(t, body, "__homuraSwap(")
}

func TestLocalePrefix(t *testing.T) {
	h := newTestRouter(t, storeFake())

	assert.Equal(t, http.StatusOK, get(h, "/fr-ca/").Code)
	assert.Equal(t, http.StatusOK, get(h, "/fr-ca").Code)
}

func TestProductInvalidHandleIs404WithoutQuery(t *testing.T) {
	sf := storeFake()
	h := newTestRouter(t, sf)

	w := get(h, "/products/Not_A_Handle")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 0, sf.CallCount("Product"))
}

func TestUnknownRouteIs404(t *testing.T) {
	h := newTestRouter(t, storeFake())
	assert.Equal(t, http.StatusNotFound, get(h, "/nope/nope").Code)
}

func TestAddToCartCreatesCart(t *testing.T) {
	sf := storeFake().
		Respond("cartCreate", `{"cartCreate":{"cart":`+cartData+`,"userErrors":[]}}`).
		Respond("CartQuery", `{"cart":`+cartData+`}`)
	h := newTestRouter(t, sf)

	w := postForm(h, "/cart/lines/add", url.Values{
		"merchandise_id": {"gid://shopify/ProductVariant/9"},
		"quantity":       {"1"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/cart", w.Header().Get("Location"))
	assert.Equal(t, 1, sf.CallCount("cartCreate"))

	ck := cookieNamed(w, "homura_cart")
	require.NotNil(t, ck)

	page := get(h, "/cart", ck)
	require.Equal(t, http.StatusOK, page.Code)
	assert.Contains(t, page.Body.String(), "Silk Tee")
	assert.Contains(t, page.Body.String(), "Size: M")

	checkout := get(h, "/cart/checkout", ck)
	assert.Equal(t, http.StatusSeeOther, checkout.Code)
	assert.Equal(t, "https://homura.shop/checkouts/c1", checkout.Header().Get("Location"))
}

func TestAddToCartUserErrorFlashes(t *testing.T) {
	sf := storeFake().Respond("cartCreate",
		`{"cartCreate":{"cart":null,"userErrors":[{"field":["input","lines","0","merchandiseId"],"message":"The merchandise is sold out.","code":"INVALID"}]}}`)
	h := newTestRouter(t, sf)

	w := postForm(h, "/cart/lines/add", url.Values{"merchandise_id": {"gid://shopify/ProductVariant/9"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/cart", w.Header().Get("Location"))
	assert.NotNil(t, cookieNamed(w, "homura_flash"))
	assert.Nil(t, cookieNamed(w, "homura_cart"))
}

func TestAddToCartRejectsBadQuantity(t *testing.T) {
	sf := storeFake()
	h := newTestRouter(t, sf)

	w := postForm(h, "/cart/lines/add", url.Values{"merchandise_id": {"v"}, "quantity": {"500"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, 0, sf.CallCount("cartCreate"))
}

func TestAccountRequiresLogin(t *testing.T) {
	h := newTestRouter(t, storeFake())

	w := get(h, "/account")
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/account/login?return_to=%2Faccount", w.Header().Get("Location"))
}

func TestLoginFlow(t *testing.T) {
	sf := storeFake().
		Respond("customerAccessTokenCreate", `{"customerAccessTokenCreate":{"customerAccessToken":{"accessToken":"tok","expiresAt":"2099-01-01T00:00:00Z"},"customerUserErrors":[]}}`).
		Respond("Customer", `{"customer":{"id":"gid://shopify/Customer/1","firstName":"Ada","lastName":"Lovelace","email":"ada@example.com"}}`).
		Respond("customerAccessTokenDelete", `{"customerAccessTokenDelete":{"deletedAccessToken":"tok","userErrors":[]}}`)
	h := newTestRouter(t, sf)

	w := postForm(h, "/account/login", url.Values{"email": {"ada@example.com"}, "password": {"secret123"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/account", w.Header().Get("Location"))
	sess := cookieNamed(w, "homura_session")
	require.NotNil(t, sess)

	page := get(h, "/account", sess)
	require.Equal(t, http.StatusOK, page.Code)
	assert.Contains(t, page.Body.String(), "Welcome, Ada Lovelace")

	out := postForm(h, "/account/logout", nil, sess)
	require.Equal(t, http.StatusSeeOther, out.Code)
	assert.Equal(t, 1, sf.CallCount("customerAccessTokenDelete"))

	assert.Equal(t, http.StatusFound, get(h, "/account", sess).Code)
}

func TestLoginWrongPassword(t *testing.T) {
	sf := storeFake().Respond("customerAccessTokenCreate",
		`{"customerAccessTokenCreate":{"customerAccessToken":null,"customerUserErrors":[{"field":["input"],"message":"Unidentified customer","code":"UNIDENTIFIED_CUSTOMER"}]}}`)
	h := newTestRouter(t, sf)

	w := postForm(h, "/account/login", url.Values{"email": {"ada@example.com"}, "password": {"wrong-pass"}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Incorrect email or password.")
	assert.Nil(t, cookieNamed(w, "homura_session"))
}

func TestLoginValidation(t *testing.T) {
	sf := storeFake()
	h := newTestRouter(t, sf)

	w := postForm(h, "/account/login", url.Values{"email": {"not-an-email"}, "password": {"x"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Enter a valid email address.")
	assert.Equal(t, 0, sf.CallCount("customerAccessTokenCreate"))
}

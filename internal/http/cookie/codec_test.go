package cookie

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("0123456789abcdef0123456789abcdef")

func TestRoundTrip(t *testing.T) {
	c := New(secret, "homura_cart", false, time.Hour)
	id := "gid://shopify/Cart/c1-abc123?key=d4e5.f6"

	got, err := c.Decode(c.Encode(id))
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestRejectsTampering(t *testing.T) {
	c := New(secret, "homura_cart", false, time.Hour)
	v := c.Encode("gid://shopify/Cart/c1")

	cases := map[string]string{
		"empty":         "",
		"no signature":  "Z2lk",
		"bad signature": v[:len(v)-43] + strings.Repeat("A", 43),
		"extra part":    v + ".x",
		"other payload": "b3RoZXI" + v[len(v)-44:],
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := c.Decode(in)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}

	t.Run("other secret", func(t *testing.T) {
		other := New([]byte("ffffffffffffffffffffffffffffffff"), "homura_cart", false, time.Hour)
		_, err := other.Decode(v)
		assert.ErrorIs(t, err, ErrInvalid)
	})

	t.Run("other cookie name", func(t *testing.T) {
		session := New(secret, "homura_session", false, time.Hour)
		_, err := session.Decode(v)
		assert.ErrorIs(t, err, ErrInvalid)
	})
}

func TestGetClearsInvalidCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c := New(secret, "homura_cart", true, time.Hour)

	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	ctx.Request.AddCookie(&http.Cookie{Name: "homura_cart", Value: "forged.value"})

	_, ok := c.Get(ctx)
	assert.False(t, ok)
	assert.Contains(t, w.Header().Get("Set-Cookie"), "homura_cart=;")
	assert.Contains(t, w.Header().Get("Set-Cookie"), "Max-Age=0")
}

func TestSetThenGet(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c := New(secret, "homura_session", false, 30*24*time.Hour)

	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Set(ctx, "sid-1")

	res := w.Result()
	require.Len(t, res.Cookies(), 1)
	ck := res.Cookies()[0]
	assert.True(t, ck.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, ck.SameSite)
	assert.Equal(t, 30*24*3600, ck.MaxAge)

	w2 := httptest.NewRecorder()
	ctx2, _ := gin.CreateTestContext(w2)
	ctx2.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	ctx2.Request.AddCookie(ck)
	got, ok := c.Get(ctx2)
	assert.True(t, ok)
	assert.Equal(t, "sid-1", got)
}

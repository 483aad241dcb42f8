// Package cookie stores small server-issued values (cart IDs, session IDs)
// in HMAC-signed cookies.
package cookie

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

var ErrInvalid = errors.New("invalid signed cookie")

type Codec struct {
	Secret     []byte
	CookieName string
	Secure     bool
	MaxAge     time.Duration
}

func New(secret []byte, name string, secure bool, maxAge time.Duration) *Codec {
	return &Codec{Secret: secret, CookieName: name, Secure: secure, MaxAge: maxAge}
}

// value format: base64(value).base64(hmac(name|value))
// The cookie name is signed too, so a cart cookie can't be replayed as a
// session cookie.
func (c *Codec) Encode(value string) string {
	payload := base64.RawURLEncoding.EncodeToString([]byte(value))
	return payload + "." + c.sign(payload)
}

func (c *Codec) Decode(v string) (string, error) {
	payload, sig, ok := strings.Cut(v, ".")
	if !ok || payload == "" || strings.Contains(sig, ".") {
		return "", ErrInvalid
	}
	if !hmac.Equal([]byte(c.sign(payload)), []byte(sig)) {
		return "", ErrInvalid
	}
	raw, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil || len(raw) == 0 {
		return "", ErrInvalid
	}
	return string(raw), nil
}

// Get reads and verifies the cookie. A tampered cookie is cleared.
func (c *Codec) Get(ctx *gin.Context) (string, bool) {
	v, err := ctx.Cookie(c.CookieName)
	if err != nil || v == "" {
		return "", false
	}
	val, err := c.Decode(v)
	if err != nil {
		c.Clear(ctx)
		return "", false
	}
	return val, true
}

func (c *Codec) Set(ctx *gin.Context, value string) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.CookieName, c.Encode(value), int(c.MaxAge.Seconds()), "/", "", c.Secure, true)
}

func (c *Codec) Clear(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.CookieName, "", -1, "/", "", c.Secure, true)
}

func (c *Codec) sign(payload string) string {
	mac := hmac.New(sha256.New, c.Secret)
	mac.Write([]byte(c.CookieName))
	mac.Write([]byte{'|'})
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

package middleware

import (
	"github.com/gin-gonic/gin"

	"homura.shop/app/internal/http/cookie"
)

const (
	ctxKeySessionID = "customer_session_id"
	ctxKeyCartID    = "cart_id"
)

// CustomerSession exposes the signed customer session ID, if any. Whether
// the session is still active is decided by the customer service.
func CustomerSession(codec *cookie.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, ok := codec.Get(c); ok {
			c.Set(ctxKeySessionID, id)
		}
		c.Next()
	}
}

func GetSessionID(c *gin.Context) string {
	return c.GetString(ctxKeySessionID)
}

// CartID exposes the cart GID from the signed cart cookie, if any.
func CartID(codec *cookie.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, ok := codec.Get(c); ok {
			c.Set(ctxKeyCartID, id)
		}
		c.Next()
	}
}

func GetCartID(c *gin.Context) string {
	return c.GetString(ctxKeyCartID)
}

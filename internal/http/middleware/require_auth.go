package middleware

import (
	"context"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"homura.shop/app/internal/http/flash"
	"homura.shop/app/internal/shared/apperr"
	"homura.shop/app/pkg/view"
)

type LoginChecker interface {
	IsLoggedIn(ctx context.Context, sessionID string) (bool, error)
}

// RequireCustomer lets signed-in customers through. Others are redirected
// to the login page with a flash (or get a 401 JSON).
func RequireCustomer(sessions LoginChecker, flashCodec *flash.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := sessions.IsLoggedIn(c.Request.Context(), GetSessionID(c))
		if err != nil {
			Fail(c, apperr.Wrap(err))
			return
		}
		if ok {
			c.Next()
			return
		}

		if WantsJSON(c) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":      "authentication required",
				"request_id": GetRequestID(c),
			})
			return
		}

		returnTo := c.Request.URL.RequestURI()
		SetFlashCookie(c, flashCodec, view.Flash{
			Kind:    view.FlashWarning,
			Message: "Please sign in to continue.",
		})
		c.Redirect(http.StatusFound, "/account/login?return_to="+url.QueryEscape(returnTo))
		c.Abort()
	}
}

package render

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"homura.shop/app/internal/http/flash"
	"homura.shop/app/internal/http/middleware"
	"homura.shop/app/pkg/view"
)

// RedirectWithFlash answers a form post with 303 See Other and a message
// for the next page.
func RedirectWithFlash(c *gin.Context, codec *flash.Codec, location string, kind view.FlashKind, msg string) {
	middleware.SetFlashCookie(c, codec, view.Flash{Kind: kind, Message: msg})
	c.Redirect(http.StatusSeeOther, location)
}

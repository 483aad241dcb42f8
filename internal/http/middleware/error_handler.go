package middleware

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	"homura.shop/app/internal/shared/apperr"
	"homura.shop/app/templates/pages"
)

func WantsJSON(c *gin.Context) bool {
	accept := c.GetHeader("Accept")
	if strings.Contains(accept, "application/json") {
		return true
	}
	return strings.HasPrefix(c.Request.URL.Path, "/api/")
}

func Fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// ErrorHandler turns the last c.Error into a status code and an error page
// (or JSON), unless the handler already started writing.
func ErrorHandler(l *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}
		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status := apperr.HTTPStatus(err)
		publicMsg := apperr.PublicMessage(err)
		rid := GetRequestID(c)

		level := slog.LevelError
		if status < 500 {
			level = slog.LevelWarn
		}
		l.LogAttrs(c.Request.Context(), level, "request_failed",
			slog.String("request_id", rid),
			slog.Int("status", status),
			slog.Any("err", err),
		)

		if WantsJSON(c) {
			payload := gin.H{
				"error":      publicMsg,
				"request_id": rid,
			}
			if ae, ok := apperr.As(err); ok && len(ae.Fields) > 0 {
				payload["fields"] = ae.Fields
			}
			c.AbortWithStatusJSON(status, payload)
			return
		}

		c.Abort()
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.Status(status)
		if err := pages.Error(status, publicMsg, rid, GetFlash(c)).Render(c.Request.Context(), c.Writer); err != nil {
			l.LogAttrs(c.Request.Context(), slog.LevelError, "render_failed",
				slog.String("request_id", rid),
				slog.Any("err", err),
			)
		}
	}
}

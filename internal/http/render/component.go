// Package render writes templ components to gin responses.
package render

import (
	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"

	"homura.shop/app/templates/components"
)

// Component writes comp with status. Suspense boundaries whose data is
// still loading are streamed after the document shell is flushed, so
// status must already reflect the critical data.
func Component(c *gin.Context, status int, comp templ.Component) {
	ctx := components.WithBoundaries(c.Request.Context(), c.Writer)
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if err := comp.Render(ctx, c.Writer); err != nil {
		// headers are gone; record it for the request log
		_ = c.Error(err)
	}
}

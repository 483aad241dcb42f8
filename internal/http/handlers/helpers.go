package handlers

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"homura.shop/app/internal/http/flash"
	"homura.shop/app/internal/http/middleware"
	"homura.shop/app/internal/modules/layout"
	"homura.shop/app/pkg/view"
)

// Base loads what every page needs around its own content.
type Base struct {
	Layout *layout.Loader
	Flash  *flash.Codec
}

func NewBase(l *layout.Loader, f *flash.Codec) *Base {
	return &Base{Layout: l, Flash: f}
}

// Page loads the layout data and runs critical in parallel with it. Any
// failure is passed to the error handler and ok is false.
//
// Both run on the request context rather than a group context: deferred
// values they start must outlive Wait.
func (b *Base) Page(c *gin.Context, title string, critical func(ctx context.Context) error) (view.Page, bool) {
	ctx := c.Request.Context()
	var g errgroup.Group
	var data layout.Data
	g.Go(func() error {
		var err error
		data, err = b.Layout.Load(ctx, layout.Request{
			CartID:    middleware.GetCartID(c),
			SessionID: middleware.GetSessionID(c),
		})
		return err
	})
	if critical != nil {
		g.Go(func() error { return critical(ctx) })
	}
	if err := g.Wait(); err != nil {
		middleware.Fail(c, err)
		return view.Page{}, false
	}
	return view.Page{
		Title:     title,
		Layout:    data,
		Flash:     middleware.GetFlash(c),
		RequestID: middleware.GetRequestID(c),
	}, true
}

// normalizeReturnTo only allows local paths, so a crafted return_to can't
// send the shopper to another site.
func normalizeReturnTo(s string) string {
	if s == "" || s[0] != '/' {
		return ""
	}
	if strings.HasPrefix(s, "//") || strings.HasPrefix(s, `/\`) {
		return ""
	}
	if strings.Contains(s, "://") {
		return ""
	}
	return s
}

func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

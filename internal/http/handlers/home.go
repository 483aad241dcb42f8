package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"homura.shop/app/internal/http/render"
	"homura.shop/app/internal/modules/home"
	"homura.shop/app/templates/pages"
)

type HomeHandler struct {
	base   *Base
	loader *home.Loader
}

func NewHomeHandler(base *Base, loader *home.Loader) *HomeHandler {
	return &HomeHandler{base: base, loader: loader}
}

// Show renders the homepage. A failed featured collection query is a 500;
// a failed recommendation query only leaves the grid empty.
func (h *HomeHandler) Show(c *gin.Context) {
	var data home.Data
	page, ok := h.base.Page(c, home.Meta()["title"], func(ctx context.Context) error {
		var err error
		data, err = h.loader.Load(ctx)
		return err
	})
	if !ok {
		return
	}
	render.Component(c, http.StatusOK, pages.Home(page, data))
}

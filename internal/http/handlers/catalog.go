package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"homura.shop/app/internal/http/render"
	"homura.shop/app/internal/modules/catalog"
	"homura.shop/app/internal/storefront"
	"homura.shop/app/pkg/view"
	"homura.shop/app/templates/pages"
)

type CatalogHandler struct {
	base *Base
	svc  *catalog.Service
}

func NewCatalogHandler(base *Base, svc *catalog.Service) *CatalogHandler {
	return &CatalogHandler{base: base, svc: svc}
}

// Collections handles GET /collections.
func (h *CatalogHandler) Collections(c *gin.Context) {
	var cols []storefront.Collection
	page, ok := h.base.Page(c, "Homura | Collections", func(ctx context.Context) error {
		var err error
		cols, err = h.svc.Collections(ctx)
		return err
	})
	if !ok {
		return
	}
	render.Component(c, http.StatusOK, pages.Collections(page, cols))
}

// Collection handles GET /collections/:handle.
func (h *CatalogHandler) Collection(c *gin.Context) {
	var col *storefront.Collection
	page, ok := h.base.Page(c, "", func(ctx context.Context) error {
		var err error
		col, err = h.svc.Collection(ctx, c.Param("handle"))
		return err
	})
	if !ok {
		return
	}
	page.Title = "Homura | " + col.Title
	render.Component(c, http.StatusOK, pages.Collection(page, *col))
}

// Product handles GET /products/:handle.
func (h *CatalogHandler) Product(c *gin.Context) {
	var p *storefront.Product
	page, ok := h.base.Page(c, "", func(ctx context.Context) error {
		var err error
		p, err = h.svc.Product(ctx, c.Param("handle"))
		return err
	})
	if !ok {
		return
	}
	page.Title = "Homura | " + p.Title
	render.Component(c, http.StatusOK, pages.Product(page, view.NewProductDetailPage(*p)))
}

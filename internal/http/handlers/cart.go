package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"homura.shop/app/internal/http/cookie"
	"homura.shop/app/internal/http/flash"
	"homura.shop/app/internal/http/middleware"
	"homura.shop/app/internal/http/render"
	"homura.shop/app/internal/http/validation"
	"homura.shop/app/internal/modules/cart"
	"homura.shop/app/internal/shared/apperr"
	"homura.shop/app/internal/storefront"
	"homura.shop/app/pkg/view"
	"homura.shop/app/templates/pages"
)

// CartHandler serves /cart and its line mutations. The cart itself lives in
// the Storefront API; only its ID is kept in a signed cookie.
type CartHandler struct {
	base  *Base
	svc   *cart.Service
	cartC *cookie.Codec
	flash *flash.Codec
}

func NewCartHandler(base *Base, svc *cart.Service, cartCookie *cookie.Codec, flashCodec *flash.Codec) *CartHandler {
	return &CartHandler{base: base, svc: svc, cartC: cartCookie, flash: flashCodec}
}

type addLineForm struct {
	MerchandiseID string `form:"merchandise_id" binding:"required"`
	Quantity      int    `form:"quantity" binding:"omitempty,gte=1,lte=99"`
	ReturnTo      string `form:"return_to"`
}

type updateLineForm struct {
	LineID   string `form:"line_id" binding:"required"`
	Quantity int    `form:"quantity" binding:"gte=0,lte=99"`
}

type removeLineForm struct {
	LineID string `form:"line_id" binding:"required"`
}

// Show handles GET /cart.
func (h *CartHandler) Show(c *gin.Context) {
	var ct *storefront.Cart
	page, ok := h.base.Page(c, "Homura | Cart", func(ctx context.Context) error {
		var err error
		ct, err = h.svc.Get(ctx, middleware.GetCartID(c))
		if err != nil {
			return apperr.Wrap(err)
		}
		return nil
	})
	if !ok {
		return
	}
	render.Component(c, http.StatusOK, pages.Cart(page, ct))
}

// Add handles POST /cart/lines/add. The first add creates the cart.
func (h *CartHandler) Add(c *gin.Context) {
	var in addLineForm
	if err := c.ShouldBind(&in); err != nil {
		render.RedirectWithFlash(c, h.flash, "/cart", view.FlashError, validation.FromBindError(err, &in).First())
		return
	}
	if in.Quantity == 0 {
		in.Quantity = 1
	}

	ct, err := h.svc.AddLines(c.Request.Context(), middleware.GetCartID(c), []cart.LineInput{{
		MerchandiseID: strings.TrimSpace(in.MerchandiseID),
		Quantity:      in.Quantity,
	}})
	if h.userError(c, err) {
		return
	}
	h.cartC.Set(c, ct.ID)

	dest := normalizeReturnTo(in.ReturnTo)
	if dest == "" {
		dest = "/cart"
	}
	render.RedirectWithFlash(c, h.flash, dest, view.FlashSuccess, "Added to cart.")
}

// Update handles POST /cart/lines/update. Quantity 0 removes the line.
func (h *CartHandler) Update(c *gin.Context) {
	var in updateLineForm
	if err := c.ShouldBind(&in); err != nil {
		render.RedirectWithFlash(c, h.flash, "/cart", view.FlashError, validation.FromBindError(err, &in).First())
		return
	}
	cartID := middleware.GetCartID(c)
	if cartID == "" {
		render.RedirectWithFlash(c, h.flash, "/cart", view.FlashWarning, "Your cart is empty.")
		return
	}

	_, err := h.svc.UpdateLines(c.Request.Context(), cartID, []cart.LineUpdate{{
		ID:       in.LineID,
		Quantity: clamp(in.Quantity, 0, cart.MaxLineQuantity),
	}})
	if h.userError(c, err) {
		return
	}
	c.Redirect(http.StatusSeeOther, "/cart")
}

// Remove handles POST /cart/lines/remove.
func (h *CartHandler) Remove(c *gin.Context) {
	var in removeLineForm
	if err := c.ShouldBind(&in); err != nil {
		render.RedirectWithFlash(c, h.flash, "/cart", view.FlashError, validation.FromBindError(err, &in).First())
		return
	}
	cartID := middleware.GetCartID(c)
	if cartID == "" {
		render.RedirectWithFlash(c, h.flash, "/cart", view.FlashWarning, "Your cart is empty.")
		return
	}

	_, err := h.svc.RemoveLines(c.Request.Context(), cartID, []string{in.LineID})
	if h.userError(c, err) {
		return
	}
	render.RedirectWithFlash(c, h.flash, "/cart", view.FlashInfo, "Item removed.")
}

// Checkout handles GET /cart/checkout by redirecting to the hosted checkout.
func (h *CartHandler) Checkout(c *gin.Context) {
	ct, err := h.svc.Get(c.Request.Context(), middleware.GetCartID(c))
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	if ct == nil || ct.CheckoutURL == "" || ct.TotalQuantity == 0 {
		render.RedirectWithFlash(c, h.flash, "/cart", view.FlashWarning, "Your cart is empty.")
		return
	}
	c.Redirect(http.StatusSeeOther, ct.CheckoutURL)
}

// userError handles a mutation error: invalid input goes back to the cart
// as a flash, anything else fails the request. It reports whether the
// response has been handled.
func (h *CartHandler) userError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}
	if apperr.IsKind(err, apperr.Invalid) || apperr.IsKind(err, apperr.NotFound) {
		render.RedirectWithFlash(c, h.flash, "/cart", view.FlashError, apperr.PublicMessage(err))
		return true
	}
	middleware.Fail(c, apperr.Wrap(err))
	return true
}

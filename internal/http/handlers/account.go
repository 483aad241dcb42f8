package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"homura.shop/app/internal/http/cookie"
	"homura.shop/app/internal/http/flash"
	"homura.shop/app/internal/http/middleware"
	"homura.shop/app/internal/http/render"
	"homura.shop/app/internal/http/validation"
	"homura.shop/app/internal/modules/customer"
	"homura.shop/app/internal/shared/apperr"
	"homura.shop/app/internal/storefront"
	"homura.shop/app/pkg/view"
	"homura.shop/app/templates/pages"
)

const loginTitle = "Homura | Sign in"

type AccountHandler struct {
	base     *Base
	svc      *customer.Service
	sessionC *cookie.Codec
	flash    *flash.Codec
}

func NewAccountHandler(base *Base, svc *customer.Service, sessionCookie *cookie.Codec, flashCodec *flash.Codec) *AccountHandler {
	return &AccountHandler{base: base, svc: svc, sessionC: sessionCookie, flash: flashCodec}
}

type loginInput struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required,min=5"`
	ReturnTo string `form:"return_to"`
}

// LoginForm handles GET /account/login.
func (h *AccountHandler) LoginForm(c *gin.Context) {
	in, err := h.svc.IsLoggedIn(c.Request.Context(), middleware.GetSessionID(c))
	if err == nil && in {
		c.Redirect(http.StatusFound, "/account")
		return
	}
	h.renderLogin(c, http.StatusOK, view.LoginForm{ReturnTo: normalizeReturnTo(c.Query("return_to"))})
}

// Login handles POST /account/login.
func (h *AccountHandler) Login(c *gin.Context) {
	var in loginInput
	if err := c.ShouldBind(&in); err != nil {
		h.renderLogin(c, http.StatusBadRequest, view.LoginForm{
			Email:       in.Email,
			ReturnTo:    normalizeReturnTo(in.ReturnTo),
			FieldErrors: validation.FromBindError(err, &in),
		})
		return
	}

	sess, err := h.svc.Login(c.Request.Context(), in.Email, in.Password)
	if apperr.IsKind(err, apperr.Unauthorized) {
		h.renderLogin(c, http.StatusUnauthorized, view.LoginForm{
			Email:    in.Email,
			ReturnTo: normalizeReturnTo(in.ReturnTo),
			Error:    apperr.PublicMessage(err),
		})
		return
	}
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	h.sessionC.Set(c, sess.ID)

	dest := normalizeReturnTo(in.ReturnTo)
	if dest == "" {
		dest = "/account"
	}
	render.RedirectWithFlash(c, h.flash, dest, view.FlashSuccess, "Welcome back.")
}

// Logout handles POST /account/logout.
func (h *AccountHandler) Logout(c *gin.Context) {
	if err := h.svc.Logout(c.Request.Context(), middleware.GetSessionID(c)); err != nil {
		middleware.Fail(c, err)
		return
	}
	h.sessionC.Clear(c)
	render.RedirectWithFlash(c, h.flash, "/", view.FlashInfo, "You have been signed out.")
}

// Show handles GET /account. RequireCustomer runs first.
func (h *AccountHandler) Show(c *gin.Context) {
	var cust *storefront.Customer
	page, ok := h.base.Page(c, "Homura | Account", func(ctx context.Context) error {
		var err error
		cust, err = h.svc.Current(ctx, middleware.GetSessionID(c))
		return err
	})
	if !ok {
		return
	}
	render.Component(c, http.StatusOK, pages.Account(page, view.AccountPage{Customer: *cust}))
}

func (h *AccountHandler) renderLogin(c *gin.Context, status int, form view.LoginForm) {
	page, ok := h.base.Page(c, loginTitle, nil)
	if !ok {
		return
	}
	render.Component(c, status, pages.Login(page, form))
}

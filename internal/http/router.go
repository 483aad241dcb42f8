package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"homura.shop/app/internal/config"
	"homura.shop/app/internal/http/cookie"
	"homura.shop/app/internal/http/flash"
	"homura.shop/app/internal/http/handlers"
	"homura.shop/app/internal/http/middleware"
	"homura.shop/app/internal/modules/cart"
	"homura.shop/app/internal/modules/catalog"
	"homura.shop/app/internal/modules/customer"
	"homura.shop/app/internal/modules/home"
	"homura.shop/app/internal/modules/layout"
	"homura.shop/app/internal/shared/apperr"
	"homura.shop/app/internal/storefront"
	"homura.shop/app/static"
)

const (
	cartCookieName    = "homura_cart"
	sessionCookieName = "homura_session"
	flashCookieName   = "homura_flash"

	cartCookieMaxAge = 14 * 24 * time.Hour
)

// Services are the domain services the routes are built on.
type Services struct {
	Layout   *layout.Loader
	Home     *home.Loader
	Catalog  *catalog.Service
	Cart     *cart.Service
	Customer *customer.Service
}

func NewServices(cfg config.Config, sf storefront.API, db *gorm.DB, l *slog.Logger) *Services {
	carts := cart.NewService(sf)
	customers := customer.NewService(customer.NewRepo(db), sf, cfg.SessionTTL, l)
	return &Services{
		Layout: layout.NewLoader(sf, carts, customers, layout.Config{
			PublicStoreDomain: cfg.PublicStoreDomain,
			HeaderMenuHandle:  cfg.HeaderMenuHandle,
			FooterMenuHandle:  cfg.FooterMenuHandle,
		}, l),
		Home:     home.NewLoader(sf, l),
		Catalog:  catalog.NewService(sf),
		Cart:     carts,
		Customer: customers,
	}
}

// NewRouter builds the storefront handler. Locale prefixes are stripped
// before gin sees the path.
func NewRouter(logger *slog.Logger, cfg config.Config, svc *Services) http.Handler {
	secret := []byte(cfg.SessionSecret)
	flashCodec := flash.NewCodec(secret, flashCookieName, cfg.CookieSecure)
	cartCookie := cookie.New(secret, cartCookieName, cfg.CookieSecure, cartCookieMaxAge)
	sessionCookie := cookie.New(secret, sessionCookieName, cfg.CookieSecure, cfg.SessionTTL)

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.ErrorHandler(logger),
		middleware.Recovery(logger),
		middleware.FlashMiddleware(flashCodec),
		middleware.CartID(cartCookie),
		middleware.CustomerSession(sessionCookie),
	)

	r.StaticFS("/assets", http.FS(static.FS))
	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	base := handlers.NewBase(svc.Layout, flashCodec)
	homeH := handlers.NewHomeHandler(base, svc.Home)
	catalogH := handlers.NewCatalogHandler(base, svc.Catalog)
	cartH := handlers.NewCartHandler(base, svc.Cart, cartCookie, flashCodec)
	accountH := handlers.NewAccountHandler(base, svc.Customer, sessionCookie, flashCodec)

	r.GET("/", homeH.Show)

	r.GET("/collections", catalogH.Collections)
	r.GET("/collections/:handle", catalogH.Collection)
	r.GET("/products/:handle", catalogH.Product)

	cartG := r.Group("/cart")
	cartG.GET("", cartH.Show)
	cartG.GET("/checkout", cartH.Checkout)
	cartG.POST("/lines/add", cartH.Add)
	cartG.POST("/lines/update", cartH.Update)
	cartG.POST("/lines/remove", cartH.Remove)

	acc := r.Group("/account")
	acc.GET("/login", accountH.LoginForm)
	acc.POST("/login", accountH.Login)
	acc.POST("/logout", accountH.Logout)
	acc.GET("", middleware.RequireCustomer(svc.Customer, flashCodec), accountH.Show)

	r.NoRoute(func(c *gin.Context) {
		middleware.Fail(c, apperr.NotFoundErr("Page not found."))
	})

	return middleware.Locale(r, storefront.I18n{
		Language: cfg.DefaultLanguage,
		Country:  cfg.DefaultCountry,
	})
}

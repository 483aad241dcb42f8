package layout

import (
	"context"
	"log/slog"

	"homura.shop/app/internal/deferred"
	"homura.shop/app/internal/shared/apperr"
	"homura.shop/app/internal/storefront"
)

// CartReader loads the shopper's cart; nil means no cart.
type CartReader interface {
	Get(ctx context.Context, cartID string) (*storefront.Cart, error)
}

// LoginChecker resolves the login state of a session.
type LoginChecker interface {
	IsLoggedIn(ctx context.Context, sessionID string) (bool, error)
}

// Data feeds the page layout shell on every page.
type Data struct {
	Header            *storefront.Header
	Footer            *deferred.Value[*storefront.Footer]
	Cart              *deferred.Value[*storefront.Cart]
	IsLoggedIn        *deferred.Value[bool]
	PublicStoreDomain string
}

// Request carries the per-shopper identifiers read from cookies.
type Request struct {
	CartID    string
	SessionID string
}

type Config struct {
	PublicStoreDomain string
	HeaderMenuHandle  string
	FooterMenuHandle  string
}

type Loader struct {
	sf       storefront.Querier
	carts    CartReader
	sessions LoginChecker
	cfg      Config
	log      *slog.Logger
}

func NewLoader(sf storefront.Querier, carts CartReader, sessions LoginChecker, cfg Config, l *slog.Logger) *Loader {
	return &Loader{sf: sf, carts: carts, sessions: sessions, cfg: cfg, log: l}
}

// Load returns the layout data. The header is critical; footer, cart and
// login state are deferred and resolve to their zero value on failure.
func (l *Loader) Load(ctx context.Context, req Request) (Data, error) {
	footer := deferred.Go(ctx, func(ctx context.Context) (*storefront.Footer, error) {
		var res storefront.Footer
		if err := l.sf.Query(ctx, storefront.FooterQuery, storefront.Vars{
			"footerMenuHandle": l.cfg.FooterMenuHandle,
		}, &res); err != nil {
			l.logDeferred(ctx, "Footer", err)
			return nil, nil
		}
		return &res, nil
	})

	cart := deferred.Go(ctx, func(ctx context.Context) (*storefront.Cart, error) {
		c, err := l.carts.Get(ctx, req.CartID)
		if err != nil {
			l.logDeferred(ctx, "CartQuery", err)
			return nil, nil
		}
		return c, nil
	})

	loggedIn := deferred.Go(ctx, func(ctx context.Context) (bool, error) {
		ok, err := l.sessions.IsLoggedIn(ctx, req.SessionID)
		if err != nil {
			l.logDeferred(ctx, "IsLoggedIn", err)
			return false, nil
		}
		return ok, nil
	})

	var header storefront.Header
	if err := l.sf.Query(ctx, storefront.HeaderQuery, storefront.Vars{
		"headerMenuHandle": l.cfg.HeaderMenuHandle,
	}, &header); err != nil {
		return Data{}, apperr.Wrap(err)
	}

	return Data{
		Header:            &header,
		Footer:            footer,
		Cart:              cart,
		IsLoggedIn:        loggedIn,
		PublicStoreDomain: l.cfg.PublicStoreDomain,
	}, nil
}

func (l *Loader) logDeferred(ctx context.Context, op string, err error) {
	l.log.LogAttrs(ctx, slog.LevelError, "deferred_query_failed",
		slog.String("operation", op),
		slog.Any("err", err),
	)
}

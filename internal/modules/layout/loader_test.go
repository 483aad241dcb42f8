package layout

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"homura.shop/app/internal/storefront"
	"homura.shop/app/internal/storefront/storefronttest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const headerJSON = `{"shop":{"id":"gid://shopify/Shop/1","name":"Homura","description":"","primaryDomain":{"url":"https://homura.shop"},"brand":null},
"menu":{"id":"m1","items":[{"id":"i1","resourceId":null,"title":"Shop","type":"HTTP","url":"https://homura.shop/collections","items":[]}]}}`

type cartStub struct {
	cart *storefront.Cart
	err  error
	got  string
}

func (c *cartStub) Get(_ context.Context, id string) (*storefront.Cart, error) {
	c.got = id
	return c.cart, c.err
}

type loginStub struct {
	ok  bool
	err error
}

func (s loginStub) IsLoggedIn(context.Context, string) (bool, error) { return s.ok, s.err }

var testCfg = Config{PublicStoreDomain: "homura.myshopify.com", HeaderMenuHandle: "main-menu", FooterMenuHandle: "footer"}

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestLoad(t *testing.T) {
	sf := storefronttest.New().
		Respond("Header", headerJSON).
		Respond("Footer", `{"menu":{"id":"f1","items":[]}}`)
	carts := &cartStub{cart: &storefront.Cart{ID: "c1", TotalQuantity: 3}}
	l := NewLoader(sf, carts, loginStub{ok: true}, testCfg, discard())
	ctx := context.Background()

	data, err := l.Load(ctx, Request{CartID: "c1", SessionID: "s1"})
	require.NoError(t, err)

	assert.Equal(t, "Homura", data.Header.Shop.Name)
	assert.Equal(t, "https://homura.shop", data.Header.Shop.PrimaryDomainURL())
	require.NotNil(t, data.Header.Menu)
	assert.Equal(t, "homura.myshopify.com", data.PublicStoreDomain)

	footer, err := data.Footer.Await(ctx)
	require.NoError(t, err)
	require.NotNil(t, footer.Menu)

	cart, err := data.Cart.Await(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, cart.TotalQuantity)
	assert.Equal(t, "c1", carts.got)

	in, err := data.IsLoggedIn.Await(ctx)
	require.NoError(t, err)
	assert.True(t, in)

	for _, c := range sf.Calls() {
		switch c.Operation {
		case "Header":
			assert.Equal(t, "main-menu", c.Vars["headerMenuHandle"])
		case "Footer":
			assert.Equal(t, "footer", c.Vars["footerMenuHandle"])
		}
	}
}

func TestDeferredFailuresResolveEmpty(t *testing.T) {
	sf := storefronttest.New().
		Respond("Header", headerJSON).
		Fail("Footer", errors.New("boom"))
	l := NewLoader(sf, &cartStub{err: errors.New("cart down")}, loginStub{err: errors.New("db down")}, testCfg, discard())
	ctx := context.Background()

	data, err := l.Load(ctx, Request{})
	require.NoError(t, err)

	footer, err := data.Footer.Await(ctx)
	require.NoError(t, err)
	assert.Nil(t, footer)

	cart, err := data.Cart.Await(ctx)
	require.NoError(t, err)
	assert.Nil(t, cart)

	in, err := data.IsLoggedIn.Await(ctx)
	require.NoError(t, err)
	assert.False(t, in)
}

func TestHeaderFailureIsCritical(t *testing.T) {
	sf := storefronttest.New().
		Fail("Header", errors.New("unauthorized")).
		Respond("Footer", `{"menu":null}`)
	l := NewLoader(sf, &cartStub{}, loginStub{}, testCfg, discard())

	_, err := l.Load(context.Background(), Request{})
	require.Error(t, err)
}

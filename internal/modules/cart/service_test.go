package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homura.shop/app/internal/shared/apperr"
	"homura.shop/app/internal/storefront/storefronttest"
)

const cartJSON = `{"id":"gid://shopify/Cart/c1","checkoutUrl":"https://homura.myshopify.com/cart/c/c1","totalQuantity":2,
"cost":{"subtotalAmount":{"amount":"40.0","currencyCode":"USD"},"totalAmount":{"amount":"40.0","currencyCode":"USD"}},
"lines":{"nodes":[{"id":"gid://shopify/CartLine/l1","quantity":2,
"cost":{"totalAmount":{"amount":"40.0","currencyCode":"USD"},"amountPerQuantity":{"amount":"20.0","currencyCode":"USD"}},
"merchandise":{"id":"gid://shopify/ProductVariant/v1","title":"M","price":{"amount":"20.0","currencyCode":"USD"},
"product":{"id":"gid://shopify/Product/p1","handle":"tee","title":"Tee"},"selectedOptions":[{"name":"Size","value":"M"}]}}]}}`

func TestGet(t *testing.T) {
	sf := storefronttest.New().Respond("CartQuery", `{"cart":`+cartJSON+`}`)
	svc := NewService(sf)
	ctx := context.Background()

	c, err := svc.Get(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, c)
	assert.Zero(t, sf.CallCount("CartQuery"))

	c, err = svc.Get(ctx, "gid://shopify/Cart/c1")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, 2, c.TotalQuantity)
	require.Len(t, c.Lines.Nodes, 1)
	assert.Equal(t, "tee", c.Lines.Nodes[0].Merchandise.Product.Handle)
	assert.Equal(t, "40", c.Cost.SubtotalAmount.Amount.String())
}

func TestAddLinesCreatesCart(t *testing.T) {
	sf := storefronttest.New().Respond("cartCreate", `{"cartCreate":{"cart":`+cartJSON+`,"userErrors":[]}}`)
	svc := NewService(sf)

	c, err := svc.AddLines(context.Background(), "", []LineInput{{MerchandiseID: "gid://shopify/ProductVariant/v1", Quantity: 2}})
	require.NoError(t, err)
	assert.Equal(t, "gid://shopify/Cart/c1", c.ID)
	assert.Equal(t, 1, sf.CallCount("cartCreate"))
	assert.Zero(t, sf.CallCount("cartLinesAdd"))
}

func TestAddLinesToExistingCart(t *testing.T) {
	sf := storefronttest.New().Respond("cartLinesAdd", `{"cartLinesAdd":{"cart":`+cartJSON+`,"userErrors":[]}}`)
	svc := NewService(sf)

	_, err := svc.AddLines(context.Background(), "gid://shopify/Cart/c1", []LineInput{{MerchandiseID: "v1", Quantity: 1}})
	require.NoError(t, err)
	calls := sf.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "gid://shopify/Cart/c1", calls[0].Vars["cartId"])
}

func TestAddLinesRecreatesMissingCart(t *testing.T) {
	sf := storefronttest.New().
		Respond("cartLinesAdd", `{"cartLinesAdd":{"cart":null,"userErrors":[]}}`).
		Respond("cartCreate", `{"cartCreate":{"cart":`+cartJSON+`,"userErrors":[]}}`)
	svc := NewService(sf)

	c, err := svc.AddLines(context.Background(), "gid://shopify/Cart/gone", []LineInput{{MerchandiseID: "v1", Quantity: 1}})
	require.NoError(t, err)
	assert.Equal(t, "gid://shopify/Cart/c1", c.ID)
}

func TestAddLinesValidation(t *testing.T) {
	svc := NewService(storefronttest.New())
	ctx := context.Background()

	_, err := svc.AddLines(ctx, "", nil)
	assert.True(t, apperr.IsKind(err, apperr.Invalid))

	_, err = svc.AddLines(ctx, "", []LineInput{{MerchandiseID: "", Quantity: 1}})
	assert.True(t, apperr.IsKind(err, apperr.Invalid))

	_, err = svc.AddLines(ctx, "", []LineInput{{MerchandiseID: "v1", Quantity: 100}})
	assert.True(t, apperr.IsKind(err, apperr.Invalid))
}

func TestUserErrors(t *testing.T) {
	sf := storefronttest.New().Respond("cartLinesUpdate",
		`{"cartLinesUpdate":{"cart":null,"userErrors":[{"field":["lines","0","quantity"],"message":"Only 1 item left","code":"INVALID"}]}}`)
	svc := NewService(sf)

	_, err := svc.UpdateLines(context.Background(), "c1", []LineUpdate{{ID: "l1", Quantity: 5}})
	require.Error(t, err)
	ae, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.Invalid, ae.Kind)
	assert.Equal(t, "Only 1 item left", ae.PublicMsg)
	assert.Equal(t, "Only 1 item left", ae.Fields["lines.0.quantity"])
}

func TestUpdateAndRemove(t *testing.T) {
	sf := storefronttest.New().
		Respond("cartLinesUpdate", `{"cartLinesUpdate":{"cart":`+cartJSON+`,"userErrors":[]}}`).
		Respond("cartLinesRemove", `{"cartLinesRemove":{"cart":`+cartJSON+`,"userErrors":[]}}`)
	svc := NewService(sf)
	ctx := context.Background()

	_, err := svc.UpdateLines(ctx, "", []LineUpdate{{ID: "l1", Quantity: 1}})
	assert.True(t, apperr.IsKind(err, apperr.NotFound))

	_, err = svc.UpdateLines(ctx, "c1", []LineUpdate{{ID: "l1", Quantity: -1}})
	assert.True(t, apperr.IsKind(err, apperr.Invalid))

	_, err = svc.UpdateLines(ctx, "c1", []LineUpdate{{ID: "l1", Quantity: 0}})
	require.NoError(t, err)

	_, err = svc.RemoveLines(ctx, "c1", nil)
	assert.True(t, apperr.IsKind(err, apperr.Invalid))

	_, err = svc.RemoveLines(ctx, "c1", []string{"l1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"l1"}, sf.Calls()[1].Vars["lineIds"])
}

func TestMutationTransportFailure(t *testing.T) {
	sf := storefronttest.New().Fail("cartCreate", errors.New("dial tcp: refused"))
	svc := NewService(sf)

	_, err := svc.AddLines(context.Background(), "", []LineInput{{MerchandiseID: "v1", Quantity: 1}})
	assert.True(t, apperr.IsKind(err, apperr.Internal))
}

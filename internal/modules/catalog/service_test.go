package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homura.shop/app/internal/shared/apperr"
	"homura.shop/app/internal/storefront/storefronttest"
)

func TestProduct(t *testing.T) {
	sf := storefronttest.New().Respond("Product", `{"product":{"id":"gid://shopify/Product/1","title":"Tee","handle":"tee",
"priceRange":{"minVariantPrice":{"amount":"20.0","currencyCode":"USD"}},
"images":{"nodes":[]},
"variants":{"nodes":[{"id":"gid://shopify/ProductVariant/1","title":"M","availableForSale":true,"price":{"amount":"20.0","currencyCode":"USD"},"selectedOptions":[{"name":"Size","value":"M"}]}]}}}`)
	svc := NewService(sf)

	p, err := svc.Product(context.Background(), "tee")
	require.NoError(t, err)
	assert.Equal(t, "Tee", p.Title)
	assert.Nil(t, p.FirstImage())
	require.NotNil(t, p.Variants)
	assert.True(t, p.Variants.Nodes[0].AvailableForSale)
}

func TestProductNotFound(t *testing.T) {
	sf := storefronttest.New().Respond("Product", `{"product":null}`)
	svc := NewService(sf)

	_, err := svc.Product(context.Background(), "missing")
	assert.True(t, apperr.IsKind(err, apperr.NotFound))

	_, err = svc.Product(context.Background(), "../../admin")
	assert.True(t, apperr.IsKind(err, apperr.NotFound))
	assert.Equal(t, 1, sf.CallCount("Product"), "invalid handles never reach the API")
}

func TestCollection(t *testing.T) {
	sf := storefronttest.New().Respond("Collection", `{"collection":{"id":"c1","title":"Spring","handle":"spring","image":null,
"products":{"nodes":[{"id":"p1","title":"Tee","handle":"tee","priceRange":{"minVariantPrice":{"amount":"20.0","currencyCode":"USD"}},"images":{"nodes":[]}}]}}}`)
	svc := NewService(sf)

	c, err := svc.Collection(context.Background(), "spring")
	require.NoError(t, err)
	require.NotNil(t, c.Products)
	assert.Len(t, c.Products.Nodes, 1)
	assert.Equal(t, collectionPageSize, sf.Calls()[0].Vars["first"])
}

func TestCollections(t *testing.T) {
	sf := storefronttest.New().Respond("StoreCollections", `{"collections":{"nodes":[{"id":"c1","title":"Spring","handle":"spring"},{"id":"c2","title":"Fall","handle":"fall"}]}}`)
	svc := NewService(sf)

	cs, err := svc.Collections(context.Background())
	require.NoError(t, err)
	assert.Len(t, cs, 2)

	sf.Fail("StoreCollections", errors.New("down"))
	_, err = svc.Collections(context.Background())
	assert.True(t, apperr.IsKind(err, apperr.Internal))
}

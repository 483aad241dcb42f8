package home

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"homura.shop/app/internal/shared/apperr"
	"homura.shop/app/internal/storefront/storefronttest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const (
	featured    = `{"collections":{"nodes":[{"id":"gid://shopify/Collection/1","title":"Spring","handle":"spring","image":{"id":"i1","url":"https://cdn.shopify.com/s.jpg","altText":"","width":10,"height":10}}]}}`
	recommended = `{"products":{"nodes":[
{"id":"p1","title":"Tee","handle":"tee","priceRange":{"minVariantPrice":{"amount":"20.0","currencyCode":"USD"}},"images":{"nodes":[{"id":"i","url":"https://cdn.shopify.com/t.jpg","altText":"Tee","width":1,"height":1}]}},
{"id":"p2","title":"Cap","handle":"cap","priceRange":{"minVariantPrice":{"amount":"15.5","currencyCode":"USD"}},"images":{"nodes":[]}}]}}`
)

func newLoader(sf *storefronttest.Fake) (*Loader, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewLoader(sf, slog.New(slog.NewJSONHandler(&buf, nil))), &buf
}

func TestLoad(t *testing.T) {
	sf := storefronttest.New().
		Respond("FeaturedCollection", featured).
		Respond("RecommendedProducts", recommended)
	l, _ := newLoader(sf)

	data, err := l.Load(context.Background())
	require.NoError(t, err)

	require.NotNil(t, data.FeaturedCollection)
	assert.Equal(t, "gid://shopify/Collection/1", data.FeaturedCollection.ID)
	assert.Equal(t, "Spring", data.FeaturedCollection.Title)
	assert.Equal(t, "spring", data.FeaturedCollection.Handle)
	require.NotNil(t, data.FeaturedCollection.Image)
	assert.Equal(t, "https://cdn.shopify.com/s.jpg", data.FeaturedCollection.Image.URL)

	rec, err := data.RecommendedProducts.Await(context.Background())
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Len(t, rec.Products.Nodes, 2)
	assert.Equal(t, "15.5", rec.Products.Nodes[1].PriceRange.MinVariantPrice.Amount.String())
}

func TestLoadDoesNotWaitForDeferred(t *testing.T) {
	sf := storefronttest.New().
		Respond("FeaturedCollection", featured).
		Respond("RecommendedProducts", recommended)
	release := sf.Hold("RecommendedProducts")
	l, _ := newLoader(sf)

	data, err := l.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, data.RecommendedProducts.Ready())

	release()
	rec, err := data.RecommendedProducts.Await(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, rec)
}

func TestDeferredFailureIsSwallowed(t *testing.T) {
	sf := storefronttest.New().
		Respond("FeaturedCollection", featured).
		Fail("RecommendedProducts", errors.New("throttled"))
	l, logs := newLoader(sf)

	data, err := l.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, data.FeaturedCollection)

	rec, err := data.RecommendedProducts.Await(context.Background())
	require.NoError(t, err)
	assert.Nil(t, rec)
	assert.Contains(t, logs.String(), "deferred_query_failed")
	assert.Contains(t, logs.String(), "throttled")
}

func TestCriticalFailurePropagates(t *testing.T) {
	sf := storefronttest.New().
		Fail("FeaturedCollection", errors.New("503")).
		Respond("RecommendedProducts", recommended)
	l, _ := newLoader(sf)

	_, err := l.Load(context.Background())
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Internal))
	assert.Eventually(t, func() bool { return sf.CallCount("RecommendedProducts") == 1 },
		time.Second, time.Millisecond, "deferred fetch still runs")
}

func TestNoCollections(t *testing.T) {
	sf := storefronttest.New().
		Respond("FeaturedCollection", `{"collections":{"nodes":[]}}`).
		Respond("RecommendedProducts", `{"products":{"nodes":[]}}`)
	l, _ := newLoader(sf)

	data, err := l.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, data.FeaturedCollection)

	rec, err := data.RecommendedProducts.Await(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rec.Products.Nodes)
}

func TestMeta(t *testing.T) {
	assert.Equal(t, "Homura | Home", Meta()["title"])
}

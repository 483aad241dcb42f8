package storefront

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type fakeAPI struct {
	srv   *httptest.Server
	hits  atomic.Int32
	mu    sync.Mutex
	last  gqlRequest
	token string
}

func newFakeAPI(t *testing.T, handler func(req gqlRequest) (int, string)) *fakeAPI {
	t.Helper()
	f := &fakeAPI{}
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.hits.Add(1)
		body, _ := io.ReadAll(r.Body)
		var req gqlRequest
		_ = json.Unmarshal(body, &req)
		f.mu.Lock()
		f.last = req
		f.token = r.Header.Get(tokenHeader)
		f.mu.Unlock()
		status, resp := handler(req)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, resp)
	}))
	t.Cleanup(f.srv.Close)
	return f
}

func newTestClient(t *testing.T, endpoint string, ttl time.Duration) *Client {
	t.Helper()
	c, err := New(Options{
		Endpoint:  endpoint,
		Token:     "public-token",
		Default:   I18n{Language: "EN", Country: "US"},
		CacheTTL:  ttl,
		CacheSize: 16,
	})
	require.NoError(t, err)
	return c
}

const featuredData = `{"data":{"collections":{"nodes":[{"id":"gid://shopify/Collection/1","title":"Spring","handle":"spring","image":{"id":"img1","url":"https://cdn.shopify.com/spring.jpg","altText":"Spring","width":800,"height":600}}]}}}`

func TestClientQuery(t *testing.T) {
	api := newFakeAPI(t, func(gqlRequest) (int, string) { return http.StatusOK, featuredData })
	c := newTestClient(t, api.srv.URL, 0)

	var res FeaturedCollectionResult
	require.NoError(t, c.Query(context.Background(), FeaturedCollectionQuery, nil, &res))

	require.Len(t, res.Collections.Nodes, 1)
	col := res.Collections.Nodes[0]
	assert.Equal(t, "spring", col.Handle)
	require.NotNil(t, col.Image)
	assert.Equal(t, 800, col.Image.Width)

	assert.Equal(t, "public-token", api.token)
	assert.Equal(t, "US", api.last.Variables["country"])
	assert.Equal(t, "EN", api.last.Variables["language"])
	assert.Contains(t, api.last.Query, "query FeaturedCollection")
}

func TestClientQueryUsesRequestLocale(t *testing.T) {
	api := newFakeAPI(t, func(gqlRequest) (int, string) { return http.StatusOK, featuredData })
	c := newTestClient(t, api.srv.URL, 0)

	ctx := WithI18n(context.Background(), I18n{Language: "FR", Country: "CA"})
	require.NoError(t, c.Query(ctx, FeaturedCollectionQuery, nil, &FeaturedCollectionResult{}))

	assert.Equal(t, "CA", api.last.Variables["country"])
	assert.Equal(t, "FR", api.last.Variables["language"])
}

func TestClientLocaleNotInjectedWithoutVariable(t *testing.T) {
	api := newFakeAPI(t, func(gqlRequest) (int, string) {
		return http.StatusOK, `{"data":{"customerAccessTokenDelete":{"deletedAccessToken":"t","userErrors":[]}}}`
	})
	c := newTestClient(t, api.srv.URL, 0)

	require.NoError(t, c.Mutate(context.Background(), CustomerAccessTokenDeleteMutation, Vars{"customerAccessToken": "t"}, nil))

	assert.NotContains(t, api.last.Variables, "country")
	assert.Equal(t, "t", api.last.Variables["customerAccessToken"])
}

func TestClientGraphQLError(t *testing.T) {
	api := newFakeAPI(t, func(gqlRequest) (int, string) {
		return http.StatusOK, `{"data":null,"errors":[{"message":"Access denied"}]}`
	})
	c := newTestClient(t, api.srv.URL, 0)

	err := c.Query(context.Background(), RecommendedProductsQuery, nil, &RecommendedProductsResult{})
	require.Error(t, err)

	var qe *QueryError
	require.ErrorAs(t, err, &qe)
	assert.Equal(t, "RecommendedProducts", qe.Operation)
	assert.Contains(t, err.Error(), "Access denied")
}

func TestClientServerError(t *testing.T) {
	api := newFakeAPI(t, func(gqlRequest) (int, string) { return http.StatusBadGateway, "upstream" })
	c := newTestClient(t, api.srv.URL, 0)

	err := c.Query(context.Background(), FeaturedCollectionQuery, nil, &FeaturedCollectionResult{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FeaturedCollection")
}

func TestClientCache(t *testing.T) {
	api := newFakeAPI(t, func(gqlRequest) (int, string) { return http.StatusOK, featuredData })
	c := newTestClient(t, api.srv.URL, time.Minute)

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c.cache.now = func() time.Time { return now }

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		var res FeaturedCollectionResult
		require.NoError(t, c.Query(ctx, FeaturedCollectionQuery, nil, &res))
		require.Len(t, res.Collections.Nodes, 1)
	}
	assert.EqualValues(t, 1, api.hits.Load())

	t.Run("different locale is a different entry", func(t *testing.T) {
		fr := WithI18n(ctx, I18n{Language: "FR", Country: "FR"})
		require.NoError(t, c.Query(fr, FeaturedCollectionQuery, nil, &FeaturedCollectionResult{}))
		assert.EqualValues(t, 2, api.hits.Load())
	})

	t.Run("no cache option", func(t *testing.T) {
		require.NoError(t, c.Query(ctx, FeaturedCollectionQuery, nil, &FeaturedCollectionResult{}, NoCache()))
		assert.EqualValues(t, 3, api.hits.Load())
	})

	t.Run("expired entries are refetched", func(t *testing.T) {
		now = now.Add(2 * time.Minute)
		require.NoError(t, c.Query(ctx, FeaturedCollectionQuery, nil, &FeaturedCollectionResult{}))
		assert.EqualValues(t, 4, api.hits.Load())
	})
}

func TestClientErrorsAreNotCached(t *testing.T) {
	var fail atomic.Bool
	fail.Store(true)
	api := newFakeAPI(t, func(gqlRequest) (int, string) {
		if fail.Load() {
			return http.StatusOK, `{"errors":[{"message":"Throttled"}]}`
		}
		return http.StatusOK, featuredData
	})
	c := newTestClient(t, api.srv.URL, time.Minute)

	require.Error(t, c.Query(context.Background(), FeaturedCollectionQuery, nil, &FeaturedCollectionResult{}))
	fail.Store(false)
	require.NoError(t, c.Query(context.Background(), FeaturedCollectionQuery, nil, &FeaturedCollectionResult{}))
	assert.EqualValues(t, 2, api.hits.Load())
}

func TestClientSharedQuerySurvivesCallerCancel(t *testing.T) {
	upstream := make(chan struct{})
	var once sync.Once
	release := func() { once.Do(func() { close(upstream) }) }
	api := newFakeAPI(t, func(gqlRequest) (int, string) {
		<-upstream
		return http.StatusOK, featuredData
	})
	t.Cleanup(release)
	c := newTestClient(t, api.srv.URL, time.Minute)

	first, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		firstErr <- c.Query(first, FeaturedCollectionQuery, nil, &FeaturedCollectionResult{})
	}()
	require.Eventually(t, func() bool { return api.hits.Load() == 1 }, time.Second, time.Millisecond)

	cancel()
	err := <-firstErr
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)

	// the upstream call is still in flight; a second shopper joins it
	secondErr := make(chan error, 1)
	var res FeaturedCollectionResult
	go func() {
		secondErr <- c.Query(context.Background(), FeaturedCollectionQuery, nil, &res)
	}()
	time.Sleep(20 * time.Millisecond)
	release()

	require.NoError(t, <-secondErr)
	require.Len(t, res.Collections.Nodes, 1)
	assert.EqualValues(t, 1, api.hits.Load())
}

func TestClientRequiresEndpoint(t *testing.T) {
	_, err := New(Options{})
	require.Error(t, err)
}

func TestOperationName(t *testing.T) {
	assert.Equal(t, "FeaturedCollection", OperationName(FeaturedCollectionQuery))
	assert.Equal(t, "RecommendedProducts", OperationName(RecommendedProductsQuery))
	assert.Equal(t, "Header", OperationName(HeaderQuery))
	assert.Equal(t, "CartQuery", OperationName(CartQuery))
	assert.Equal(t, "cartLinesAdd", OperationName(CartLinesAddMutation))
	assert.Equal(t, "customerAccessTokenCreate", OperationName(CustomerAccessTokenCreateMutation))
	assert.Equal(t, "anonymous", OperationName("{ shop { name } }"))
}

func TestParseLocalePath(t *testing.T) {
	in, rest, ok := ParseLocalePath("/fr-ca/products/tee")
	require.True(t, ok)
	assert.Equal(t, I18n{Language: "FR", Country: "CA", PathPrefix: "/fr-ca"}, in)
	assert.Equal(t, "/products/tee", rest)

	in, rest, ok = ParseLocalePath("/EN-us")
	require.True(t, ok)
	assert.Equal(t, "/", rest)
	assert.Equal(t, "/en-us", in.PathPrefix)

	_, rest, ok = ParseLocalePath("/products/tee")
	assert.False(t, ok)
	assert.Equal(t, "/products/tee", rest)

	_, _, ok = ParseLocalePath("/")
	assert.False(t, ok)
}

func TestRecommendedProductsQueryIsWellFormed(t *testing.T) {
	assert.Contains(t, RecommendedProductsQuery, "products(first: 4, sortKey: UPDATED_AT, reverse: true)")
	assert.Contains(t, RecommendedProductsQuery, "@inContext(country: $country, language: $language)")
	assert.Contains(t, FeaturedCollectionQuery, "collections(first: 1, sortKey: UPDATED_AT, reverse: true)")
}

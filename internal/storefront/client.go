package storefront

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/machinebox/graphql"
	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"
)

const tokenHeader = "X-Shopify-Storefront-Access-Token"

type Vars map[string]any

// Querier runs read queries against the Storefront API.
type Querier interface {
	Query(ctx context.Context, query string, vars Vars, out any, opts ...Option) error
}

// Mutator runs mutations against the Storefront API.
type Mutator interface {
	Mutate(ctx context.Context, mutation string, vars Vars, out any) error
}

// API is the full client surface used by the modules.
type API interface {
	Querier
	Mutator
}

type Option func(*queryOptions)

type queryOptions struct {
	noCache bool
}

// NoCache bypasses the query cache, for per-shopper data such as carts.
func NoCache() Option {
	return func(o *queryOptions) { o.noCache = true }
}

type Options struct {
	Endpoint   string
	Token      string
	HTTPClient *http.Client
	// Default locale when the request carries none.
	Default   I18n
	CacheTTL  time.Duration
	CacheSize int
	Logger    *slog.Logger
}

// Client is a Storefront API client with a short-lived result cache.
type Client struct {
	gql      *graphql.Client
	token    string
	def      I18n
	cache    *queryCache
	inflight singleflight.Group
	// bounds a shared query once it no longer follows any caller's context
	sharedTimeout time.Duration
	log           *slog.Logger
}

func New(opts Options) (*Client, error) {
	if opts.Endpoint == "" {
		return nil, errors.New("storefront: endpoint is required")
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	l := opts.Logger
	if l == nil {
		l = slog.Default()
	}
	cache, err := newQueryCache(opts.CacheSize, opts.CacheTTL)
	if err != nil {
		return nil, errors.Wrap(err, "storefront: cache")
	}

	gql := graphql.NewClient(opts.Endpoint, graphql.WithHTTPClient(hc))
	gql.Log = func(s string) { l.Debug(s, slog.String("component", "graphql")) }

	shared := hc.Timeout
	if shared <= 0 {
		shared = 10 * time.Second
	}

	return &Client{
		gql:           gql,
		token:         opts.Token,
		def:           opts.Default,
		cache:         cache,
		sharedTimeout: shared,
		log:           l,
	}, nil
}

// Query runs a read query and decodes its data into out. Results are cached
// for the configured TTL unless NoCache is given; identical concurrent
// queries share one request.
func (c *Client) Query(ctx context.Context, query string, vars Vars, out any, opts ...Option) error {
	var o queryOptions
	for _, opt := range opts {
		opt(&o)
	}
	vars = c.withLocale(ctx, query, vars)
	op := OperationName(query)

	if o.noCache || c.cache == nil {
		raw, err := c.run(ctx, op, query, vars)
		if err != nil {
			return err
		}
		return decode(op, raw, out)
	}

	key := cacheKey(query, vars)
	if raw, ok := c.cache.get(key); ok {
		c.log.LogAttrs(ctx, slog.LevelDebug, "storefront_query",
			slog.String("operation", op),
			slog.Bool("cached", true),
		)
		return decode(op, raw, out)
	}

	// The shared call keeps the first caller's values (locale, request ID)
	// but not its cancellation; each caller stops waiting on its own ctx.
	ch := c.inflight.DoChan(key, func() (any, error) {
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.sharedTimeout)
		defer cancel()
		raw, err := c.run(sctx, op, query, vars)
		if err != nil {
			return nil, err
		}
		c.cache.put(key, raw)
		return raw, nil
	})
	select {
	case <-ctx.Done():
		return &QueryError{Operation: op, Err: errors.Wrap(ctx.Err(), "wait")}
	case res := <-ch:
		if res.Err != nil {
			return res.Err
		}
		return decode(op, res.Val.(json.RawMessage), out)
	}
}

// Mutate runs a mutation. Mutations are never cached or shared.
func (c *Client) Mutate(ctx context.Context, mutation string, vars Vars, out any) error {
	vars = c.withLocale(ctx, mutation, vars)
	op := OperationName(mutation)
	raw, err := c.run(ctx, op, mutation, vars)
	if err != nil {
		return err
	}
	return decode(op, raw, out)
}

func (c *Client) run(ctx context.Context, op, doc string, vars Vars) (json.RawMessage, error) {
	req := graphql.NewRequest(doc)
	for k, v := range vars {
		req.Var(k, v)
	}
	req.Header.Set(tokenHeader, c.token)

	start := time.Now()
	var raw json.RawMessage
	err := c.gql.Run(ctx, req, &raw)

	attrs := []slog.Attr{
		slog.String("operation", op),
		slog.Bool("cached", false),
		slog.Duration("latency", time.Since(start)),
	}
	if err != nil {
		attrs = append(attrs, slog.Any("err", err))
		c.log.LogAttrs(ctx, slog.LevelWarn, "storefront_query", attrs...)
		return nil, &QueryError{Operation: op, Err: errors.Wrap(err, "run")}
	}
	c.log.LogAttrs(ctx, slog.LevelDebug, "storefront_query", attrs...)
	return raw, nil
}

// withLocale fills $country and $language from the request locale when the
// document declares them and the caller did not set them.
func (c *Client) withLocale(ctx context.Context, doc string, vars Vars) Vars {
	in, ok := I18nFrom(ctx)
	if !ok {
		in = c.def
	}
	out := make(Vars, len(vars)+2)
	for k, v := range vars {
		out[k] = v
	}
	if _, set := out["country"]; !set && in.Country != "" && strings.Contains(doc, "$country") {
		out["country"] = in.Country
	}
	if _, set := out["language"]; !set && in.Language != "" && strings.Contains(doc, "$language") {
		out["language"] = in.Language
	}
	return out
}

func decode(op string, raw json.RawMessage, out any) error {
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &QueryError{Operation: op, Err: errors.Wrap(err, "decode")}
	}
	return nil
}

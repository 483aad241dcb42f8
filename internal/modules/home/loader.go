package home

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"homura.shop/app/internal/deferred"
	"homura.shop/app/internal/shared/apperr"
	"homura.shop/app/internal/storefront"
)

// Title is the document title of the homepage.
const Title = "Homura | Home"

// Meta returns the homepage meta tags.
func Meta() map[string]string {
	return map[string]string{"title": Title}
}

// Data is what the homepage renders. RecommendedProducts resolves after the
// first byte is sent and may resolve to nil.
type Data struct {
	FeaturedCollection  *storefront.Collection
	RecommendedProducts *deferred.Value[*storefront.RecommendedProductsResult]
}

type Loader struct {
	sf  storefront.Querier
	log *slog.Logger
}

func NewLoader(sf storefront.Querier, l *slog.Logger) *Loader {
	return &Loader{sf: sf, log: l}
}

// Load starts the deferred queries, then waits for the critical ones.
// Only a critical failure is returned.
func (l *Loader) Load(ctx context.Context) (Data, error) {
	deferredData := l.loadDeferred(ctx)

	critical, err := l.loadCritical(ctx)
	if err != nil {
		return Data{}, err
	}

	return Data{
		FeaturedCollection:  critical.featuredCollection,
		RecommendedProducts: deferredData.recommendedProducts,
	}, nil
}

type criticalData struct {
	featuredCollection *storefront.Collection
}

// loadCritical fetches what is needed above the fold. Queries added here
// run in parallel; any failure fails the page.
func (l *Loader) loadCritical(ctx context.Context) (criticalData, error) {
	var featured storefront.FeaturedCollectionResult

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return l.sf.Query(gctx, storefront.FeaturedCollectionQuery, nil, &featured)
	})
	if err := g.Wait(); err != nil {
		return criticalData{}, apperr.Wrap(err)
	}

	var out criticalData
	if nodes := featured.Collections.Nodes; len(nodes) > 0 {
		out.featuredCollection = &nodes[0]
	}
	return out, nil
}

type deferredData struct {
	recommendedProducts *deferred.Value[*storefront.RecommendedProductsResult]
}

// loadDeferred fetches below-the-fold data. It never fails: errors are
// logged and the value resolves to nil.
func (l *Loader) loadDeferred(ctx context.Context) deferredData {
	recommended := deferred.Go(ctx, func(ctx context.Context) (*storefront.RecommendedProductsResult, error) {
		var res storefront.RecommendedProductsResult
		if err := l.sf.Query(ctx, storefront.RecommendedProductsQuery, nil, &res); err != nil {
			l.log.LogAttrs(ctx, slog.LevelError, "deferred_query_failed",
				slog.String("operation", "RecommendedProducts"),
				slog.Any("err", err),
			)
			return nil, nil
		}
		return &res, nil
	})
	return deferredData{recommendedProducts: recommended}
}

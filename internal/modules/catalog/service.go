package catalog

import (
	"context"

	"homura.shop/app/internal/shared/apperr"
	"homura.shop/app/internal/shared/slug"
	"homura.shop/app/internal/storefront"
)

const (
	collectionsPageSize = 24
	collectionPageSize  = 24
)

// Service reads collections and products for the catalog pages.
type Service struct {
	sf storefront.Querier
}

func NewService(sf storefront.Querier) *Service {
	return &Service{sf: sf}
}

func (s *Service) Collections(ctx context.Context) ([]storefront.Collection, error) {
	var res storefront.CollectionsResult
	if err := s.sf.Query(ctx, storefront.CollectionsQuery, storefront.Vars{"first": collectionsPageSize}, &res); err != nil {
		return nil, apperr.Wrap(err)
	}
	return res.Collections.Nodes, nil
}

func (s *Service) Collection(ctx context.Context, handle string) (*storefront.Collection, error) {
	if !slug.ValidHandle(handle) {
		return nil, apperr.NotFoundErr("Collection not found.")
	}
	var res storefront.CollectionResult
	if err := s.sf.Query(ctx, storefront.CollectionQuery, storefront.Vars{
		"handle": handle,
		"first":  collectionPageSize,
	}, &res); err != nil {
		return nil, apperr.Wrap(err)
	}
	if res.Collection == nil {
		return nil, apperr.NotFoundErr("Collection not found.")
	}
	return res.Collection, nil
}

func (s *Service) Product(ctx context.Context, handle string) (*storefront.Product, error) {
	if !slug.ValidHandle(handle) {
		return nil, apperr.NotFoundErr("Product not found.")
	}
	var res storefront.ProductResult
	if err := s.sf.Query(ctx, storefront.ProductQuery, storefront.Vars{"handle": handle}, &res); err != nil {
		return nil, apperr.Wrap(err)
	}
	if res.Product == nil {
		return nil, apperr.NotFoundErr("Product not found.")
	}
	return res.Product, nil
}

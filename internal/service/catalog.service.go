package service

import (
	"context"
	"fmt"

	"github.com/duccv/shop-admin/internal/model"
	"github.com/duccv/shop-admin/internal/repository"
	"github.com/duccv/shop-admin/pkg/cache"
)

type CatalogService interface {
	ListProducts(ctx context.Context, q model.ProductQuery) (model.Paginated[model.Product], error)
}

type catalogService struct {
	products repository.ProductRepository
	loader   *cache.Loader
}

func NewCatalogService(products repository.ProductRepository, loader *cache.Loader) CatalogService {
	return &catalogService{products: products, loader: loader}
}

func productsCacheKey(page, limit int, category *int64) string {
	c := int64(0)
	if category != nil {
		c = *category
	}
	return fmt.Sprintf("products:page=%d:limit=%d:category=%d", page, limit, c)
}

func (s *catalogService) ListProducts(ctx context.Context, q model.ProductQuery) (model.Paginated[model.Product], error) {
	page, limit := model.NormalizePage(q.Page, q.Limit)

	fetch := func(ctx context.Context) (model.Paginated[model.Product], error) {
		items, total, err := s.products.List(ctx, repository.ProductFilter{
			Page:       repository.Page{Page: page, Limit: limit},
			CategoryID: q.Category,
		})
		if err != nil {
			return model.Paginated[model.Product]{}, err
		}
		return model.Paginated[model.Product]{
			Data: items,
			Meta: model.NewPaginationMeta(page, limit, total),
		}, nil
	}

	if s.loader == nil {
		return fetch(ctx)
	}
	return cache.Load(ctx, s.loader, productsCacheKey(page, limit, q.Category), fetch)
}

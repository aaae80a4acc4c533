package service

import (
	"context"
	"strings"

	"github.com/duccv/shop-admin/internal/model"
	"github.com/duccv/shop-admin/internal/repository"
)

type OrderService interface {
	ListOrders(ctx context.Context, q model.OrderQuery) (model.Paginated[model.Order], error)
}

type orderService struct {
	orders repository.OrderRepository
}

func NewOrderService(orders repository.OrderRepository) OrderService {
	return &orderService{orders: orders}
}

func (s *orderService) ListOrders(ctx context.Context, q model.OrderQuery) (model.Paginated[model.Order], error) {
	page, limit := model.NormalizePage(q.Page, q.Limit)

	items, total, err := s.orders.List(ctx, repository.OrderFilter{
		Page:   repository.Page{Page: page, Limit: limit},
		Search: strings.TrimSpace(q.Search),
	})
	if err != nil {
		return model.Paginated[model.Order]{}, err
	}

	return model.Paginated[model.Order]{
		Data: items,
		Meta: model.NewPaginationMeta(page, limit, total),
	}, nil
}

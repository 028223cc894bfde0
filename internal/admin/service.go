package admin

import (
	"context"

	"github.com/nuttawut-l/storefront-backend/internal/order"
	"github.com/nuttawut-l/storefront-backend/internal/product"
)

// Stats is the storefront-wide aggregate. Revenue counts every order ever
// placed, cancelled ones included.
type Stats struct {
	TotalProducts int64   `json:"total_products"`
	TotalOrders   int64   `json:"total_orders"`
	TotalRevenue  float64 `json:"total_revenue"`
}

type Service struct {
	products *product.Service
	orders   *order.Service
}

func NewService(products *product.Service, orders *order.Service) *Service {
	return &Service{products: products, orders: orders}
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	totalProducts, err := s.products.Count(ctx)
	if err != nil {
		return Stats{}, err
	}

	totalOrders, err := s.orders.Count(ctx)
	if err != nil {
		return Stats{}, err
	}

	revenue, err := s.orders.Revenue(ctx)
	if err != nil {
		return Stats{}, err
	}

	return Stats{
		TotalProducts: totalProducts,
		TotalOrders:   totalOrders,
		TotalRevenue:  revenue,
	}, nil
}

func (s *Service) SetOrderStatus(ctx context.Context, orderID, status string) error {
	return s.orders.SetStatus(ctx, orderID, status)
}

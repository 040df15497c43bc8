package orders

import (
	"context"

	"github.com/fabyoh/storefront/internal/domain"
)

// Repository defines the interface for order data operations.
type Repository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrderByID(ctx context.Context, id string) (*domain.Order, error)
	ListOrdersByOwner(ctx context.Context, ownerEmail string) ([]domain.Order, error)
	ListAllOrders(ctx context.Context) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
}

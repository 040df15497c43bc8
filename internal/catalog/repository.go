package catalog

import (
	"context"

	"github.com/fabyoh/storefront/internal/domain"
)

// Repository defines the interface for product data operations.
type Repository interface {
	CreateProduct(ctx context.Context, product *domain.Product) error
	GetProductByID(ctx context.Context, id string) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, product *domain.Product) error
	DeleteProduct(ctx context.Context, id string) error
}

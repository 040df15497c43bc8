// Package catalog implements the public product listing and its
// admin-managed CRUD.
package catalog

import (
	"context"

	"github.com/fabyoh/storefront/internal/domain"
	"github.com/fabyoh/storefront/internal/pkg/ctxlog"
)

// Service implements catalog business logic.
type Service struct {
	repo Repository
}

// NewService creates a new catalog service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateProductInput contains data for creating a product.
type CreateProductInput struct {
	Name        string
	Description string
	PriceCents  int64
	ImageURL    string
	Attrs       map[string]any
}

// CreateProduct adds a new product to the catalog.
func (s *Service) CreateProduct(ctx context.Context, input CreateProductInput) (*domain.Product, error) {
	product := &domain.Product{
		Name:        input.Name,
		Description: input.Description,
		PriceCents:  input.PriceCents,
		ImageURL:    input.ImageURL,
		Attrs:       input.Attrs,
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, err
	}

	ctxlog.FromContext(ctx).Info("product created", "product_id", product.ID)
	return product, nil
}

// GetProduct returns a single product.
func (s *Service) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetProductByID(ctx, id)
}

// ListProducts returns the whole catalog.
func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListProducts(ctx)
}

// UpdateProductInput contains data for updating a product. All fields
// replace the stored ones.
type UpdateProductInput struct {
	Name        string
	Description string
	PriceCents  int64
	ImageURL    string
	Attrs       map[string]any
}

// UpdateProduct replaces a product's fields.
func (s *Service) UpdateProduct(ctx context.Context, id string, input UpdateProductInput) (*domain.Product, error) {
	product := &domain.Product{
		ID:          id,
		Name:        input.Name,
		Description: input.Description,
		PriceCents:  input.PriceCents,
		ImageURL:    input.ImageURL,
		Attrs:       input.Attrs,
	}

	if err := s.repo.UpdateProduct(ctx, product); err != nil {
		return nil, err
	}

	ctxlog.FromContext(ctx).Info("product updated", "product_id", id)
	return product, nil
}

// DeleteProduct removes a product from the catalog.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Info("product deleted", "product_id", id)
	return nil
}

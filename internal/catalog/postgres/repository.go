// Package postgres provides PostgreSQL implementation of the catalog repository.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fabyoh/storefront/internal/catalog"
	"github.com/fabyoh/storefront/internal/domain"
)

// Repository implements the catalog.Repository interface using PostgreSQL.
// Free-form product attributes live in a jsonb column; pgx maps it to
// map[string]any directly.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// CreateProduct creates a new product in the database.
func (r *Repository) CreateProduct(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (name, description, price_cents, image_url, attrs)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		product.Name,
		product.Description,
		product.PriceCents,
		product.ImageURL,
		product.Attrs,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// GetProductByID retrieves a product by its ID.
func (r *Repository) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	query := `
		SELECT id, name, description, price_cents, image_url, attrs, created_at, updated_at
		FROM products
		WHERE id = $1
	`
	var product domain.Product
	err := r.db.QueryRow(ctx, query, id).Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.PriceCents,
		&product.ImageURL,
		&product.Attrs,
		&product.CreatedAt,
		&product.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalog.ErrProductNotFound
		}
		return nil, fmt.Errorf("get product by id: %w", err)
	}
	return &product, nil
}

// ListProducts retrieves all products, newest first.
func (r *Repository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT id, name, description, price_cents, image_url, attrs, created_at, updated_at
		FROM products
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		var product domain.Product
		err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Description,
			&product.PriceCents,
			&product.ImageURL,
			&product.Attrs,
			&product.CreatedAt,
			&product.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}

// UpdateProduct replaces an existing product's fields.
func (r *Repository) UpdateProduct(ctx context.Context, product *domain.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, price_cents = $4, image_url = $5, attrs = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		product.ID,
		product.Name,
		product.Description,
		product.PriceCents,
		product.ImageURL,
		product.Attrs,
	).Scan(&product.CreatedAt, &product.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return catalog.ErrProductNotFound
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// DeleteProduct deletes a product by its ID.
func (r *Repository) DeleteProduct(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	if result.RowsAffected() == 0 {
		return catalog.ErrProductNotFound
	}
	return nil
}

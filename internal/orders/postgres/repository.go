// Package postgres provides PostgreSQL implementation of the orders repository.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fabyoh/storefront/internal/domain"
	"github.com/fabyoh/storefront/internal/orders"
)

// Repository implements the orders.Repository interface using PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// CreateOrder inserts a new order.
func (r *Repository) CreateOrder(ctx context.Context, order *domain.Order) error {
	query := `
		INSERT INTO orders (owner_email, amount_cents, item_refs, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		order.OwnerEmail,
		order.AmountCents,
		order.ItemRefs,
		order.Status,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

// GetOrderByID retrieves an order by its ID.
func (r *Repository) GetOrderByID(ctx context.Context, id string) (*domain.Order, error) {
	query := `
		SELECT id, owner_email, amount_cents, item_refs, status, created_at, updated_at
		FROM orders
		WHERE id = $1
	`
	var order domain.Order
	err := r.db.QueryRow(ctx, query, id).Scan(
		&order.ID,
		&order.OwnerEmail,
		&order.AmountCents,
		&order.ItemRefs,
		&order.Status,
		&order.CreatedAt,
		&order.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, orders.ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order by id: %w", err)
	}
	return &order, nil
}

// ListOrdersByOwner retrieves all orders for an owner, newest first.
func (r *Repository) ListOrdersByOwner(ctx context.Context, ownerEmail string) ([]domain.Order, error) {
	query := `
		SELECT id, owner_email, amount_cents, item_refs, status, created_at, updated_at
		FROM orders
		WHERE owner_email = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, ownerEmail)
	if err != nil {
		return nil, fmt.Errorf("list orders by owner: %w", err)
	}
	defer rows.Close()

	return scanOrders(rows)
}

// ListAllOrders retrieves every order, newest first.
func (r *Repository) ListAllOrders(ctx context.Context) ([]domain.Order, error) {
	query := `
		SELECT id, owner_email, amount_cents, item_refs, status, created_at, updated_at
		FROM orders
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list all orders: %w", err)
	}
	defer rows.Close()

	return scanOrders(rows)
}

// UpdateOrderStatus sets an order's status and returns the updated order.
func (r *Repository) UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	query := `
		UPDATE orders
		SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id, owner_email, amount_cents, item_refs, status, created_at, updated_at
	`
	var order domain.Order
	err := r.db.QueryRow(ctx, query, id, status).Scan(
		&order.ID,
		&order.OwnerEmail,
		&order.AmountCents,
		&order.ItemRefs,
		&order.Status,
		&order.CreatedAt,
		&order.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, orders.ErrOrderNotFound
		}
		return nil, fmt.Errorf("update order status: %w", err)
	}
	return &order, nil
}

func scanOrders(rows pgx.Rows) ([]domain.Order, error) {
	result := make([]domain.Order, 0)
	for rows.Next() {
		var order domain.Order
		err := rows.Scan(
			&order.ID,
			&order.OwnerEmail,
			&order.AmountCents,
			&order.ItemRefs,
			&order.Status,
			&order.CreatedAt,
			&order.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		result = append(result, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}
	return result, nil
}

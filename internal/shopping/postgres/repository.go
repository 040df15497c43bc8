// Package postgres provides PostgreSQL implementation of the shopping repository.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fabyoh/storefront/internal/domain"
	"github.com/fabyoh/storefront/internal/shopping"
)

// Repository implements the shopping.Repository interface using PostgreSQL.
// Every query carries the owner email in its WHERE clause so ownership
// filtering cannot be bypassed by a missing service-layer check.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// CreateCartItem inserts a new cart item.
func (r *Repository) CreateCartItem(ctx context.Context, item *domain.CartItem) error {
	query := `
		INSERT INTO cart_items (owner_email, product_ref, quantity, attrs)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		item.OwnerEmail,
		item.ProductRef,
		item.Quantity,
		item.Attrs,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create cart item: %w", err)
	}
	return nil
}

// ListCartItems retrieves all cart items for an owner, oldest first.
func (r *Repository) ListCartItems(ctx context.Context, ownerEmail string) ([]domain.CartItem, error) {
	query := `
		SELECT id, owner_email, product_ref, quantity, attrs, created_at, updated_at
		FROM cart_items
		WHERE owner_email = $1
		ORDER BY created_at
	`
	rows, err := r.db.Query(ctx, query, ownerEmail)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.CartItem, 0)
	for rows.Next() {
		var item domain.CartItem
		err := rows.Scan(
			&item.ID,
			&item.OwnerEmail,
			&item.ProductRef,
			&item.Quantity,
			&item.Attrs,
			&item.CreatedAt,
			&item.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cart items: %w", err)
	}
	return items, nil
}

// UpdateCartItemQuantity sets the quantity of a cart item owned by ownerEmail.
func (r *Repository) UpdateCartItemQuantity(ctx context.Context, id, ownerEmail string, quantity int) (*domain.CartItem, error) {
	query := `
		UPDATE cart_items
		SET quantity = $3, updated_at = NOW()
		WHERE id = $1 AND owner_email = $2
		RETURNING id, owner_email, product_ref, quantity, attrs, created_at, updated_at
	`
	var item domain.CartItem
	err := r.db.QueryRow(ctx, query, id, ownerEmail, quantity).Scan(
		&item.ID,
		&item.OwnerEmail,
		&item.ProductRef,
		&item.Quantity,
		&item.Attrs,
		&item.CreatedAt,
		&item.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shopping.ErrCartItemNotFound
		}
		return nil, fmt.Errorf("update cart item quantity: %w", err)
	}
	return &item, nil
}

// DeleteCartItem deletes a cart item owned by ownerEmail.
func (r *Repository) DeleteCartItem(ctx context.Context, id, ownerEmail string) error {
	result, err := r.db.Exec(ctx,
		`DELETE FROM cart_items WHERE id = $1 AND owner_email = $2`,
		id, ownerEmail)
	if err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}

	if result.RowsAffected() == 0 {
		return shopping.ErrCartItemNotFound
	}
	return nil
}

// RemoveCartItems deletes the given items when owned by ownerEmail.
// Ids belonging to other owners are silently skipped; the returned count
// says how many rows were actually removed.
func (r *Repository) RemoveCartItems(ctx context.Context, ids []string, ownerEmail string) (int, error) {
	result, err := r.db.Exec(ctx,
		`DELETE FROM cart_items WHERE id = ANY($1) AND owner_email = $2`,
		ids, ownerEmail)
	if err != nil {
		return 0, fmt.Errorf("remove cart items: %w", err)
	}
	return int(result.RowsAffected()), nil
}

// CreateWishlistItem inserts a new wishlist item.
func (r *Repository) CreateWishlistItem(ctx context.Context, item *domain.WishlistItem) error {
	query := `
		INSERT INTO wishlist_items (owner_email, product_ref, attrs)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query,
		item.OwnerEmail,
		item.ProductRef,
		item.Attrs,
	).Scan(&item.ID, &item.CreatedAt)

	if err != nil {
		return fmt.Errorf("create wishlist item: %w", err)
	}
	return nil
}

// ListWishlistItems retrieves all wishlist items for an owner, oldest first.
func (r *Repository) ListWishlistItems(ctx context.Context, ownerEmail string) ([]domain.WishlistItem, error) {
	query := `
		SELECT id, owner_email, product_ref, attrs, created_at
		FROM wishlist_items
		WHERE owner_email = $1
		ORDER BY created_at
	`
	rows, err := r.db.Query(ctx, query, ownerEmail)
	if err != nil {
		return nil, fmt.Errorf("list wishlist items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.WishlistItem, 0)
	for rows.Next() {
		var item domain.WishlistItem
		err := rows.Scan(
			&item.ID,
			&item.OwnerEmail,
			&item.ProductRef,
			&item.Attrs,
			&item.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan wishlist item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate wishlist items: %w", err)
	}
	return items, nil
}

// DeleteWishlistItem deletes a wishlist item owned by ownerEmail.
func (r *Repository) DeleteWishlistItem(ctx context.Context, id, ownerEmail string) error {
	result, err := r.db.Exec(ctx,
		`DELETE FROM wishlist_items WHERE id = $1 AND owner_email = $2`,
		id, ownerEmail)
	if err != nil {
		return fmt.Errorf("delete wishlist item: %w", err)
	}

	if result.RowsAffected() == 0 {
		return shopping.ErrWishlistItemNotFound
	}
	return nil
}

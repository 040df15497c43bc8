package shopping

import (
	"context"

	"github.com/fabyoh/storefront/internal/domain"
)

// Repository defines the interface for cart and wishlist data operations.
// Every read and write is scoped by owner email; no operation can see or
// touch another owner's rows.
type Repository interface {
	CreateCartItem(ctx context.Context, item *domain.CartItem) error
	ListCartItems(ctx context.Context, ownerEmail string) ([]domain.CartItem, error)
	UpdateCartItemQuantity(ctx context.Context, id, ownerEmail string, quantity int) (*domain.CartItem, error)
	DeleteCartItem(ctx context.Context, id, ownerEmail string) error
	// RemoveCartItems deletes the given items if owned by ownerEmail and
	// returns how many rows actually went away.
	RemoveCartItems(ctx context.Context, ids []string, ownerEmail string) (int, error)

	CreateWishlistItem(ctx context.Context, item *domain.WishlistItem) error
	ListWishlistItems(ctx context.Context, ownerEmail string) ([]domain.WishlistItem, error)
	DeleteWishlistItem(ctx context.Context, id, ownerEmail string) error
}

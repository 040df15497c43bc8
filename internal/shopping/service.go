// Package shopping implements per-user carts and wishlists.
package shopping

import (
	"context"

	"github.com/fabyoh/storefront/internal/domain"
	"github.com/fabyoh/storefront/internal/pkg/ctxlog"
)

// Service implements cart and wishlist business logic.
type Service struct {
	repo Repository
}

// NewService creates a new shopping service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// AddCartItemInput contains data for adding a cart item.
type AddCartItemInput struct {
	ProductRef string
	Quantity   int
	Attrs      map[string]any
}

// AddCartItem adds an item to the owner's cart. Repeated adds of the
// same product create separate rows; the client merges them if it wants
// a combined quantity.
func (s *Service) AddCartItem(ctx context.Context, ownerEmail string, input AddCartItemInput) (*domain.CartItem, error) {
	item := &domain.CartItem{
		OwnerEmail: ownerEmail,
		ProductRef: input.ProductRef,
		Quantity:   input.Quantity,
		Attrs:      input.Attrs,
	}

	if err := s.repo.CreateCartItem(ctx, item); err != nil {
		return nil, err
	}

	ctxlog.FromContext(ctx).Info("cart item added", "cart_item_id", item.ID)
	return item, nil
}

// ListCartItems returns the owner's cart.
func (s *Service) ListCartItems(ctx context.Context, ownerEmail string) ([]domain.CartItem, error) {
	return s.repo.ListCartItems(ctx, ownerEmail)
}

// UpdateCartItemQuantity sets a cart item's quantity.
func (s *Service) UpdateCartItemQuantity(ctx context.Context, id, ownerEmail string, quantity int) (*domain.CartItem, error) {
	return s.repo.UpdateCartItemQuantity(ctx, id, ownerEmail, quantity)
}

// RemoveCartItem deletes one item from the owner's cart.
func (s *Service) RemoveCartItem(ctx context.Context, id, ownerEmail string) error {
	return s.repo.DeleteCartItem(ctx, id, ownerEmail)
}

// RemoveCartItems deletes the given items from the owner's cart,
// skipping ids the owner does not hold. Used by checkout.
func (s *Service) RemoveCartItems(ctx context.Context, ids []string, ownerEmail string) (int, error) {
	return s.repo.RemoveCartItems(ctx, ids, ownerEmail)
}

// AddWishlistItemInput contains data for adding a wishlist item.
type AddWishlistItemInput struct {
	ProductRef string
	Attrs      map[string]any
}

// AddWishlistItem adds an item to the owner's wishlist.
func (s *Service) AddWishlistItem(ctx context.Context, ownerEmail string, input AddWishlistItemInput) (*domain.WishlistItem, error) {
	item := &domain.WishlistItem{
		OwnerEmail: ownerEmail,
		ProductRef: input.ProductRef,
		Attrs:      input.Attrs,
	}

	if err := s.repo.CreateWishlistItem(ctx, item); err != nil {
		return nil, err
	}

	ctxlog.FromContext(ctx).Info("wishlist item added", "wishlist_item_id", item.ID)
	return item, nil
}

// ListWishlistItems returns the owner's wishlist.
func (s *Service) ListWishlistItems(ctx context.Context, ownerEmail string) ([]domain.WishlistItem, error) {
	return s.repo.ListWishlistItems(ctx, ownerEmail)
}

// RemoveWishlistItem deletes one item from the owner's wishlist.
func (s *Service) RemoveWishlistItem(ctx context.Context, id, ownerEmail string) error {
	return s.repo.DeleteWishlistItem(ctx, id, ownerEmail)
}

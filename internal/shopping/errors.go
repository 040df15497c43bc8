package shopping

import "errors"

var (
	// ErrCartItemNotFound covers both a missing item and an item owned by
	// someone else. Cross-owner access looks identical to absence.
	ErrCartItemNotFound = errors.New("cart item not found")

	// ErrWishlistItemNotFound is the wishlist equivalent of ErrCartItemNotFound.
	ErrWishlistItemNotFound = errors.New("wishlist item not found")
)

package domain

import "time"

// CartItem belongs to exactly one user, identified by the normalized email
// carried in the identity token. Every non-admin query on cart items must
// filter on OwnerEmail.
type CartItem struct {
	ID         string         `json:"id"`
	OwnerEmail string         `json:"owner_email"`
	ProductRef string         `json:"product_ref"`
	Quantity   int            `json:"quantity"`
	Attrs      map[string]any `json:"attrs,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// WishlistItem is a saved product reference, owner-scoped like a cart item
// but without a quantity.
type WishlistItem struct {
	ID         string         `json:"id"`
	OwnerEmail string         `json:"owner_email"`
	ProductRef string         `json:"product_ref"`
	Attrs      map[string]any `json:"attrs,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

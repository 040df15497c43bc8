package domain

import "time"

// Product is a catalog entry. Attrs carries free-form catalog fields
// (size charts, colors, vendor data) without a fixed schema.
type Product struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	PriceCents  int64          `json:"price_cents"`
	ImageURL    string         `json:"image_url,omitempty"`
	Attrs       map[string]any `json:"attrs,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

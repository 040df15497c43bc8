package domain

import "time"

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// orderTransitions defines the allowed status moves. completed and
// cancelled are terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:      {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:   {OrderStatusCompleted},
	OrderStatusCompleted: {},
	OrderStatusCancelled: {},
}

// IsValid reports whether s is a known order status.
func (s OrderStatus) IsValid() bool {
	_, ok := orderTransitions[s]
	return ok
}

// IsTerminal reports whether no further transitions are allowed from s.
func (s OrderStatus) IsTerminal() bool {
	return len(orderTransitions[s]) == 0
}

// CanTransitionTo reports whether moving from s to next is allowed.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Order is created at checkout. ItemRefs holds the cart item ids the order
// was built from; the referenced cart rows are deleted best-effort after
// the order row is inserted.
type Order struct {
	ID          string      `json:"id"`
	OwnerEmail  string      `json:"owner_email"`
	AmountCents int64       `json:"amount_cents"`
	ItemRefs    []string    `json:"item_refs"`
	Status      OrderStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

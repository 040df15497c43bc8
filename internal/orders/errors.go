package orders

import "errors"

var (
	// ErrOrderNotFound is returned when an order does not exist.
	ErrOrderNotFound = errors.New("order not found")

	// ErrInvalidStatus is returned when a status update names an unknown status.
	ErrInvalidStatus = errors.New("invalid order status")

	// ErrInvalidTransition is returned when the requested status change is
	// not allowed from the order's current status.
	ErrInvalidTransition = errors.New("invalid status transition")
)

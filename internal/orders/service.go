// Package orders implements checkout, payment capture, and the order
// status lifecycle.
package orders

import (
	"context"

	"github.com/fabyoh/storefront/internal/domain"
	"github.com/fabyoh/storefront/internal/payment"
	"github.com/fabyoh/storefront/internal/pkg/ctxlog"
	"github.com/fabyoh/storefront/internal/pkg/metrics"
)

// CartRemover removes purchased items from the buyer's cart.
type CartRemover interface {
	RemoveCartItems(ctx context.Context, ids []string, ownerEmail string) (int, error)
}

// Service implements order business logic.
type Service struct {
	repo   Repository
	carts  CartRemover
	cards  payment.CardGateway
	wallet payment.RedirectGateway
}

// NewService creates a new order service.
func NewService(repo Repository, carts CartRemover, cards payment.CardGateway, wallet payment.RedirectGateway) *Service {
	return &Service{
		repo:   repo,
		carts:  carts,
		cards:  cards,
		wallet: wallet,
	}
}

// CreateChargeIntent asks the card provider for a charge intent the
// client confirms in the browser.
func (s *Service) CreateChargeIntent(ctx context.Context, amountCents int64, currency string) (*payment.Intent, error) {
	intent, err := s.cards.CreateChargeIntent(ctx, amountCents, currency)
	if err != nil {
		metrics.PaymentFailures.WithLabelValues("card").Inc()
		return nil, err
	}
	return intent, nil
}

// CreateRedirectPayment starts the wallet provider's approve flow.
func (s *Service) CreateRedirectPayment(ctx context.Context, amountCents int64, currency string) (*payment.RedirectOrder, error) {
	order, err := s.wallet.CreateRedirectPayment(ctx, amountCents, currency)
	if err != nil {
		metrics.PaymentFailures.WithLabelValues("wallet").Inc()
		return nil, err
	}
	return order, nil
}

// ExecuteRedirectPayment captures an approved wallet payment.
func (s *Service) ExecuteRedirectPayment(ctx context.Context, paymentID, payerID string) (*payment.Confirmation, error) {
	confirmation, err := s.wallet.ExecuteRedirectPayment(ctx, paymentID, payerID)
	if err != nil {
		metrics.PaymentFailures.WithLabelValues("wallet").Inc()
		return nil, err
	}
	return confirmation, nil
}

// CheckoutInput contains data for creating an order.
type CheckoutInput struct {
	AmountCents int64
	ItemRefs    []string
}

// CheckoutResult reports the created order and how many cart rows the
// cleanup actually removed.
type CheckoutResult struct {
	Order        *domain.Order `json:"order"`
	ItemsRemoved int           `json:"items_removed"`
}

// Checkout records an order and then clears the purchased items from the
// buyer's cart. The two steps are not atomic: if the cleanup fails the
// order stands and the leftover cart rows are reported to the caller.
func (s *Service) Checkout(ctx context.Context, ownerEmail string, input CheckoutInput) (*CheckoutResult, error) {
	order := &domain.Order{
		OwnerEmail:  ownerEmail,
		AmountCents: input.AmountCents,
		ItemRefs:    input.ItemRefs,
		Status:      domain.OrderStatusPending,
	}

	if err := s.repo.CreateOrder(ctx, order); err != nil {
		return nil, err
	}
	metrics.OrdersCreated.Inc()

	logger := ctxlog.FromContext(ctx)

	removed, err := s.carts.RemoveCartItems(ctx, input.ItemRefs, ownerEmail)
	if err != nil {
		logger.Error("cart cleanup failed after checkout", "order_id", order.ID, "error", err)
		removed = 0
	}
	if removed < len(input.ItemRefs) {
		logger.Warn("checkout removed fewer cart items than referenced",
			"order_id", order.ID,
			"referenced", len(input.ItemRefs),
			"removed", removed,
		)
	}

	logger.Info("order created", "order_id", order.ID, "amount_cents", order.AmountCents)
	return &CheckoutResult{Order: order, ItemsRemoved: removed}, nil
}

// ListOwnOrders returns the caller's orders.
func (s *Service) ListOwnOrders(ctx context.Context, ownerEmail string) ([]domain.Order, error) {
	return s.repo.ListOrdersByOwner(ctx, ownerEmail)
}

// ListAllOrders returns every order in the store.
func (s *Service) ListAllOrders(ctx context.Context) ([]domain.Order, error) {
	return s.repo.ListAllOrders(ctx)
}

// UpdateStatus moves an order to a new status, enforcing the lifecycle.
func (s *Service) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	order, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransitionTo(status) {
		return nil, ErrInvalidTransition
	}

	updated, err := s.repo.UpdateOrderStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	ctxlog.FromContext(ctx).Info("order status updated",
		"order_id", id, "from", order.Status, "to", status)
	return updated, nil
}

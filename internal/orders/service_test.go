package orders

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabyoh/storefront/internal/domain"
	"github.com/fabyoh/storefront/internal/payment"
)

// mockRepository implements Repository for testing.
type mockRepository struct {
	orders map[string]*domain.Order
	nextID int
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		orders: make(map[string]*domain.Order),
		nextID: 1,
	}
}

func (m *mockRepository) CreateOrder(_ context.Context, order *domain.Order) error {
	order.ID = fmt.Sprintf("order-%d", m.nextID)
	m.nextID++
	m.orders[order.ID] = order
	return nil
}

func (m *mockRepository) GetOrderByID(_ context.Context, id string) (*domain.Order, error) {
	if o, ok := m.orders[id]; ok {
		return o, nil
	}
	return nil, ErrOrderNotFound
}

func (m *mockRepository) ListOrdersByOwner(_ context.Context, ownerEmail string) ([]domain.Order, error) {
	result := make([]domain.Order, 0)
	for _, o := range m.orders {
		if o.OwnerEmail == ownerEmail {
			result = append(result, *o)
		}
	}
	return result, nil
}

func (m *mockRepository) ListAllOrders(_ context.Context) ([]domain.Order, error) {
	result := make([]domain.Order, 0)
	for _, o := range m.orders {
		result = append(result, *o)
	}
	return result, nil
}

func (m *mockRepository) UpdateOrderStatus(_ context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	o.Status = status
	return o, nil
}

// mockCartRemover implements CartRemover for testing.
type mockCartRemover struct {
	removed []string
	count   int
	err     error
}

func (m *mockCartRemover) RemoveCartItems(_ context.Context, ids []string, _ string) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.removed = ids
	if m.count >= 0 {
		return m.count, nil
	}
	return len(ids), nil
}

// mockCardGateway implements payment.CardGateway for testing.
type mockCardGateway struct {
	err error
}

func (m *mockCardGateway) CreateChargeIntent(_ context.Context, _ int64, _ string) (*payment.Intent, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &payment.Intent{ClientSecret: "cs_test", ProviderID: "pi_test"}, nil
}

func newTestService(repo *mockRepository, carts *mockCartRemover) *Service {
	return NewService(repo, carts, &mockCardGateway{}, payment.DisabledRedirectGateway{})
}

func TestCheckout(t *testing.T) {
	repo := newMockRepository()
	carts := &mockCartRemover{count: -1}
	service := newTestService(repo, carts)

	result, err := service.Checkout(context.Background(), "alice@example.com", CheckoutInput{
		AmountCents: 4999,
		ItemRefs:    []string{"item-1", "item-2"},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.OrderStatusPending, result.Order.Status)
	assert.Equal(t, int64(4999), result.Order.AmountCents)
	assert.Equal(t, 2, result.ItemsRemoved)
	assert.Equal(t, []string{"item-1", "item-2"}, carts.removed)
}

func TestCheckout_PartialCartCleanup(t *testing.T) {
	repo := newMockRepository()
	// Only one of the two referenced rows belongs to the buyer.
	carts := &mockCartRemover{count: 1}
	service := newTestService(repo, carts)

	result, err := service.Checkout(context.Background(), "alice@example.com", CheckoutInput{
		AmountCents: 4999,
		ItemRefs:    []string{"mine", "not-mine"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.ItemsRemoved)
}

func TestCheckout_CartCleanupFailureKeepsOrder(t *testing.T) {
	repo := newMockRepository()
	carts := &mockCartRemover{err: errors.New("db down")}
	service := newTestService(repo, carts)

	result, err := service.Checkout(context.Background(), "alice@example.com", CheckoutInput{
		AmountCents: 1000,
		ItemRefs:    []string{"item-1"},
	})
	require.NoError(t, err, "cleanup failure must not fail the checkout")
	assert.Equal(t, 0, result.ItemsRemoved)

	stored, err := repo.GetOrderByID(context.Background(), result.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPending, stored.Status)
}

func TestUpdateStatus(t *testing.T) {
	repo := newMockRepository()
	service := newTestService(repo, &mockCartRemover{count: -1})

	result, err := service.Checkout(context.Background(), "alice@example.com", CheckoutInput{
		AmountCents: 1000,
		ItemRefs:    []string{"item-1"},
	})
	require.NoError(t, err)
	id := result.Order.ID

	order, err := service.UpdateStatus(context.Background(), id, domain.OrderStatusPaid)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPaid, order.Status)

	// pending is behind us now
	_, err = service.UpdateStatus(context.Background(), id, domain.OrderStatusPaid)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	order, err = service.UpdateStatus(context.Background(), id, domain.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusShipped, order.Status)

	order, err = service.UpdateStatus(context.Background(), id, domain.OrderStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCompleted, order.Status)

	// completed is terminal
	_, err = service.UpdateStatus(context.Background(), id, domain.OrderStatusCancelled)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	service := newTestService(newMockRepository(), &mockCartRemover{count: -1})

	_, err := service.UpdateStatus(context.Background(), "any", domain.OrderStatus("refunded"))
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateStatus_OrderNotFound(t *testing.T) {
	service := newTestService(newMockRepository(), &mockCartRemover{count: -1})

	_, err := service.UpdateStatus(context.Background(), "missing", domain.OrderStatusPaid)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestCreateChargeIntent(t *testing.T) {
	service := newTestService(newMockRepository(), &mockCartRemover{count: -1})

	intent, err := service.CreateChargeIntent(context.Background(), 2500, "USD")
	require.NoError(t, err)
	assert.Equal(t, "cs_test", intent.ClientSecret)
}

func TestCreateChargeIntent_GatewayFailure(t *testing.T) {
	service := NewService(newMockRepository(), &mockCartRemover{count: -1},
		&mockCardGateway{err: fmt.Errorf("%w: card declined", payment.ErrPaymentFailed)},
		payment.DisabledRedirectGateway{})

	_, err := service.CreateChargeIntent(context.Background(), 2500, "USD")
	assert.ErrorIs(t, err, payment.ErrPaymentFailed)
}

func TestRedirectPayment_DisabledGateway(t *testing.T) {
	service := newTestService(newMockRepository(), &mockCartRemover{count: -1})

	_, err := service.CreateRedirectPayment(context.Background(), 2500, "USD")
	assert.ErrorIs(t, err, payment.ErrNotConfigured)

	_, err = service.ExecuteRedirectPayment(context.Background(), "pay-1", "payer-1")
	assert.ErrorIs(t, err, payment.ErrNotConfigured)
}

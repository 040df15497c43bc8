//go:build integration

package integration

import (
	"context"
	"fmt"
	"sync"

	"github.com/fabyoh/storefront/internal/payment"
)

// fakeCardGateway implements payment.CardGateway without talking to a
// provider. Set fail to simulate provider-side rejection.
type fakeCardGateway struct {
	mu    sync.Mutex
	fail  bool
	calls int
}

func (f *fakeCardGateway) setFail(fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail = fail
}

func (f *fakeCardGateway) CreateChargeIntent(_ context.Context, amountCents int64, currency string) (*payment.Intent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.fail {
		return nil, fmt.Errorf("%w: simulated decline", payment.ErrPaymentFailed)
	}
	return &payment.Intent{
		ClientSecret: fmt.Sprintf("cs_fake_%d_%s_%d", amountCents, currency, f.calls),
		ProviderID:   fmt.Sprintf("pi_fake_%d", f.calls),
	}, nil
}

// fakeRedirectGateway implements payment.RedirectGateway in memory.
type fakeRedirectGateway struct {
	mu    sync.Mutex
	fail  bool
	calls int
}

func (f *fakeRedirectGateway) setFail(fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail = fail
}

func (f *fakeRedirectGateway) CreateRedirectPayment(_ context.Context, amountCents int64, currency string) (*payment.RedirectOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.fail {
		return nil, fmt.Errorf("%w: simulated failure", payment.ErrPaymentFailed)
	}
	id := fmt.Sprintf("order_fake_%d", f.calls)
	return &payment.RedirectOrder{
		PaymentID:   id,
		ApprovalURL: "https://sandbox.example.com/approve/" + id,
	}, nil
}

func (f *fakeRedirectGateway) ExecuteRedirectPayment(_ context.Context, paymentID, payerID string) (*payment.Confirmation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return nil, fmt.Errorf("%w: simulated failure", payment.ErrPaymentFailed)
	}
	return &payment.Confirmation{
		PaymentID: paymentID,
		PayerID:   payerID,
		Status:    "COMPLETED",
	}, nil
}

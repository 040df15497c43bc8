// Package payment defines the gateway interfaces the order service charges
// through, keeping provider SDKs out of the business layer.
package payment

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrPaymentFailed wraps any provider-side failure.
	ErrPaymentFailed = errors.New("payment failed")

	// ErrNotConfigured is returned by a gateway that was started without
	// credentials. It is wrapped in ErrPaymentFailed so callers handle it
	// like any other provider failure.
	ErrNotConfigured = errors.New("payment gateway not configured")
)

// Intent is a provider-side charge attempt awaiting client confirmation.
type Intent struct {
	// ClientSecret is handed to the browser SDK to complete the charge.
	ClientSecret string
	// ProviderID is the provider's identifier for the attempt.
	ProviderID string
}

// RedirectOrder is a provider-side order the customer approves by
// visiting ApprovalURL.
type RedirectOrder struct {
	PaymentID   string
	ApprovalURL string
}

// Confirmation captures an approved redirect payment. It is returned to
// the client as-is.
type Confirmation struct {
	PaymentID string `json:"payment_id"`
	PayerID   string `json:"payer_id"`
	Status    string `json:"status"`
}

// CardGateway creates charge intents confirmed client-side (Stripe model).
type CardGateway interface {
	CreateChargeIntent(ctx context.Context, amountCents int64, currency string) (*Intent, error)
}

// RedirectGateway runs the create/approve/execute flow (PayPal model).
type RedirectGateway interface {
	CreateRedirectPayment(ctx context.Context, amountCents int64, currency string) (*RedirectOrder, error)
	ExecuteRedirectPayment(ctx context.Context, paymentID, payerID string) (*Confirmation, error)
}

func errDisabled() error {
	return fmt.Errorf("%w: %w", ErrPaymentFailed, ErrNotConfigured)
}

// DisabledCardGateway stands in when no card provider credentials are set.
type DisabledCardGateway struct{}

func (DisabledCardGateway) CreateChargeIntent(context.Context, int64, string) (*Intent, error) {
	return nil, errDisabled()
}

// DisabledRedirectGateway stands in when no redirect provider credentials are set.
type DisabledRedirectGateway struct{}

func (DisabledRedirectGateway) CreateRedirectPayment(context.Context, int64, string) (*RedirectOrder, error) {
	return nil, errDisabled()
}

func (DisabledRedirectGateway) ExecuteRedirectPayment(context.Context, string, string) (*Confirmation, error) {
	return nil, errDisabled()
}

// Package stripe adapts the Stripe PaymentIntents API to the payment
// gateway interface.
package stripe

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"

	"github.com/fabyoh/storefront/internal/payment"
)

// Gateway implements payment.CardGateway against Stripe.
type Gateway struct {
	client *client.API
}

// New builds a Gateway with its own client instance. A per-instance
// client avoids the SDK's global key state.
func New(apiKey string) *Gateway {
	sc := &client.API{}
	sc.Init(apiKey, nil)
	return &Gateway{client: sc}
}

// CreateChargeIntent creates a PaymentIntent and returns its client
// secret for browser-side confirmation.
func (g *Gateway) CreateChargeIntent(ctx context.Context, amountCents int64, currency string) (*payment.Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	// Fresh key per attempt. Retries after network failures reuse the
	// transport-level retry inside the SDK, not a second intent.
	params.IdempotencyKey = stripe.String(uuid.NewString())
	params.Context = ctx

	pi, err := g.client.PaymentIntents.New(params)
	if err != nil {
		return nil, mapError(err)
	}

	return &payment.Intent{
		ClientSecret: pi.ClientSecret,
		ProviderID:   pi.ID,
	}, nil
}

// mapError translates stripe-go errors into domain errors so the SDK
// does not leak into the service layer.
func mapError(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		switch stripeErr.Code {
		case stripe.ErrorCodeCardDeclined:
			return fmt.Errorf("%w: card declined", payment.ErrPaymentFailed)
		case stripe.ErrorCodeExpiredCard:
			return fmt.Errorf("%w: card expired", payment.ErrPaymentFailed)
		case stripe.ErrorCodeAmountTooSmall:
			return fmt.Errorf("%w: amount below provider minimum", payment.ErrPaymentFailed)
		}
		if stripeErr.HTTPStatusCode >= http.StatusInternalServerError {
			return fmt.Errorf("%w: provider unavailable", payment.ErrPaymentFailed)
		}
	}
	return fmt.Errorf("%w: %v", payment.ErrPaymentFailed, err)
}

// Package paypal adapts the PayPal Orders API to the redirect gateway
// interface.
package paypal

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/plutov/paypal/v4"

	"github.com/fabyoh/storefront/internal/payment"
)

// Gateway implements payment.RedirectGateway against PayPal.
type Gateway struct {
	client *paypal.Client

	mu     sync.Mutex
	authed bool
}

// New builds a Gateway. live selects the production API base; otherwise
// the sandbox is used.
func New(clientID, secret string, live bool) (*Gateway, error) {
	base := paypal.APIBaseSandBox
	if live {
		base = paypal.APIBaseLive
	}

	c, err := paypal.NewClient(clientID, secret, base)
	if err != nil {
		return nil, fmt.Errorf("create paypal client: %w", err)
	}
	return &Gateway{client: c}, nil
}

// ensureToken fetches an access token on first use. The SDK refreshes
// it on expiry afterwards.
func (g *Gateway) ensureToken(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.authed {
		return nil
	}
	if _, err := g.client.GetAccessToken(ctx); err != nil {
		return fmt.Errorf("%w: paypal auth: %v", payment.ErrPaymentFailed, err)
	}
	g.authed = true
	return nil
}

// CreateRedirectPayment creates a capture-intent order and returns the
// approval link the customer is sent to.
func (g *Gateway) CreateRedirectPayment(ctx context.Context, amountCents int64, currency string) (*payment.RedirectOrder, error) {
	if err := g.ensureToken(ctx); err != nil {
		return nil, err
	}

	units := []paypal.PurchaseUnitRequest{{
		Amount: &paypal.PurchaseUnitAmount{
			Currency: strings.ToUpper(currency),
			Value:    fmt.Sprintf("%d.%02d", amountCents/100, amountCents%100),
		},
	}}

	order, err := g.client.CreateOrder(ctx, paypal.OrderIntentCapture, units, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create order: %v", payment.ErrPaymentFailed, err)
	}

	approval := ""
	for _, link := range order.Links {
		if link.Rel == "approve" {
			approval = link.Href
			break
		}
	}
	if approval == "" {
		return nil, fmt.Errorf("%w: order %s has no approval link", payment.ErrPaymentFailed, order.ID)
	}

	return &payment.RedirectOrder{
		PaymentID:   order.ID,
		ApprovalURL: approval,
	}, nil
}

// ExecuteRedirectPayment captures an order the customer has approved.
// PayPal identifies the payer from the order itself; payerID is kept on
// the confirmation for the caller's records.
func (g *Gateway) ExecuteRedirectPayment(ctx context.Context, paymentID, payerID string) (*payment.Confirmation, error) {
	if err := g.ensureToken(ctx); err != nil {
		return nil, err
	}

	capture, err := g.client.CaptureOrder(ctx, paymentID, paypal.CaptureOrderRequest{})
	if err != nil {
		return nil, fmt.Errorf("%w: capture order: %v", payment.ErrPaymentFailed, err)
	}

	return &payment.Confirmation{
		PaymentID: capture.ID,
		PayerID:   payerID,
		Status:    string(capture.Status),
	}, nil
}

// Package payments wraps the external payment-gateway capability: create an
// intent for an amount and currency, get back a client-usable secret.
package payments

import (
	"context"
	"fmt"

	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// IntentCreator is the payment collaborator contract.
type IntentCreator interface {
	// CreateIntent registers a payment of amount minor units in the given
	// currency and returns the client secret for the frontend to confirm.
	CreateIntent(ctx context.Context, amount int64, currency string) (string, error)
}

// StripeCreator creates payment intents through the Stripe API.
type StripeCreator struct {
	api *client.API
}

// NewStripeCreator builds a Stripe-backed intent creator.
func NewStripeCreator(secretKey string) *StripeCreator {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeCreator{api: api}
}

// CreateIntent creates a card payment intent.
func (s *StripeCreator) CreateIntent(ctx context.Context, amount int64, currency string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Params:             stripe.Params{Context: ctx},
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	intent, err := s.api.PaymentIntents.New(params)
	if err != nil {
		return "", fmt.Errorf("create payment intent: %w", err)
	}
	return intent.ClientSecret, nil
}

// StaticCreator returns deterministic secrets without touching any gateway.
// It stands in for Stripe in tests and local development.
type StaticCreator struct{}

// CreateIntent fabricates a client secret from the amount.
func (StaticCreator) CreateIntent(_ context.Context, amount int64, currency string) (string, error) {
	if amount <= 0 {
		return "", fmt.Errorf("amount must be positive")
	}
	return fmt.Sprintf("pi_static_%s_%d_secret", currency, amount), nil
}

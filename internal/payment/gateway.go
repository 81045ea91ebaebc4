package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
)

// Intent is the gateway's authorisation of a charge. TransactionRef is the
// gateway-side identifier recorded against the payment; ClientSecret is
// handed to the frontend to confirm the charge.
type Intent struct {
	TransactionRef string
	ClientSecret   string
}

// Gateway defines the external payment capability: authorise an amount in
// minor currency units and return a transaction reference.
type Gateway interface {
	CreateIntent(ctx context.Context, amountCents int64, currency string) (*Intent, error)
}

// stripeGateway implements Gateway using the Stripe PaymentIntents API.
type stripeGateway struct {
	api     *client.API
	timeout time.Duration
	logger  zerolog.Logger
}

// NewStripeGateway creates a Stripe-backed gateway with a bounded per-call
// timeout. A timed-out call is treated as failed, never as settled.
func NewStripeGateway(secretKey string, timeout time.Duration, logger zerolog.Logger) Gateway {
	api := &client.API{}
	api.Init(secretKey, nil)

	return &stripeGateway{
		api:     api,
		timeout: timeout,
		logger:  logger.With().Str("component", "stripe-gateway").Logger(),
	}
}

// CreateIntent authorises a card charge for the given amount.
func (g *stripeGateway) CreateIntent(ctx context.Context, amountCents int64, currency string) (*Intent, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amountCents),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	intent, err := g.api.PaymentIntents.New(params)
	if err != nil {
		g.logger.Error().
			Err(err).
			Int64("amount_cents", amountCents).
			Str("currency", currency).
			Msg("failed to create payment intent")
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	g.logger.Debug().
		Str("intent_id", intent.ID).
		Int64("amount_cents", amountCents).
		Msg("payment intent created")

	return &Intent{
		TransactionRef: intent.ID,
		ClientSecret:   intent.ClientSecret,
	}, nil
}

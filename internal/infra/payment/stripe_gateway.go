// Package payment implements the payment gateway against Stripe.
package payment

import (
	"context"
	"log/slog"
	"math"

	"github.com/pkg/errors"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"go.uber.org/fx"

	"storefront/config"
	"storefront/internal/domain/service"
)

// stripeGateway is a concrete implementation of the PaymentGateway interface.
// Provider errors are returned unmodified so callers can surface them verbatim.
type stripeGateway struct {
	api    *client.API
	logger *slog.Logger
}

// StripeGatewayParams holds dependencies for the Stripe gateway, injected by Fx.
type StripeGatewayParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewStripeGateway is the constructor for stripeGateway.
func NewStripeGateway(params StripeGatewayParams) (service.PaymentGateway, error) {
	if params.Config.Stripe == nil || params.Config.Stripe.APIKey == "" {
		return nil, errors.New("stripe api key must be provided")
	}

	api := &client.API{}
	api.Init(params.Config.Stripe.APIKey, nil)

	return &stripeGateway{
		api:    api,
		logger: params.Logger,
	}, nil
}

// CreatePaymentIntent opens a payment intent. Stripe expects the amount in
// the minor currency unit (cents).
func (g *stripeGateway) CreatePaymentIntent(ctx context.Context, input service.PaymentIntentInput) (*service.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Params: stripe.Params{
			Context: ctx,
			Metadata: map[string]string{
				"orderId":     input.OrderID,
				"userId":      input.UserID,
				"orderNumber": input.OrderNumber,
			},
		},
		Amount:   stripe.Int64(int64(math.Round(input.Amount * 100))),
		Currency: stripe.String(input.Currency),
	}

	intent, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return nil, err
	}
	g.logger.Info("PaymentIntent created",
		slog.String("intentID", intent.ID),
		slog.String("orderNumber", input.OrderNumber))

	return &service.PaymentIntent{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
		Status:       string(intent.Status),
	}, nil
}

// CreateRefund refunds the full amount of a previously captured intent.
func (g *stripeGateway) CreateRefund(ctx context.Context, paymentIntentID string) (*service.Refund, error) {
	params := &stripe.RefundParams{
		Params:        stripe.Params{Context: ctx},
		PaymentIntent: stripe.String(paymentIntentID),
	}

	refund, err := g.api.Refunds.New(params)
	if err != nil {
		return nil, err
	}
	g.logger.Info("Refund processed", slog.String("intentID", paymentIntentID), slog.String("refundID", refund.ID))

	return &service.Refund{
		ID:     refund.ID,
		Status: string(refund.Status),
	}, nil
}

// CreatePaymentLink creates a shareable hosted payment page for a price.
func (g *stripeGateway) CreatePaymentLink(ctx context.Context, priceID string, quantity int) (string, error) {
	params := &stripe.PaymentLinkParams{
		Params: stripe.Params{Context: ctx},
		LineItems: []*stripe.PaymentLinkLineItemParams{
			{
				Price:    stripe.String(priceID),
				Quantity: stripe.Int64(int64(quantity)),
			},
		},
	}

	link, err := g.api.PaymentLinks.New(params)
	if err != nil {
		return "", err
	}
	g.logger.Info("Payment link created", slog.String("priceID", priceID))

	return link.URL, nil
}

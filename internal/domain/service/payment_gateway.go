package service

import (
	"context"
)

// PaymentIntentInput carries the data needed to open a payment intent with
// the external gateway. Amount is in the major currency unit; the gateway
// implementation converts to the provider's minor unit.
type PaymentIntentInput struct {
	Amount      float64
	Currency    string
	OrderID     string
	OrderNumber string
	UserID      string
}

// PaymentIntent is the gateway's handle for a pending payment.
type PaymentIntent struct {
	ID           string
	ClientSecret string
	Status       string
}

// Refund is the gateway's record of a refund against a payment intent.
type Refund struct {
	ID     string
	Status string
}

// PaymentGateway defines the interface for the external payment provider.
// Implementations must return provider errors unmodified so callers can
// surface them verbatim.
type PaymentGateway interface {
	// CreatePaymentIntent opens a payment intent and returns its handle.
	CreatePaymentIntent(ctx context.Context, input PaymentIntentInput) (*PaymentIntent, error)

	// CreateRefund refunds the full amount of a previously captured intent.
	CreateRefund(ctx context.Context, paymentIntentID string) (*Refund, error)

	// CreatePaymentLink creates a shareable hosted payment page for a
	// provider price and returns its URL.
	CreatePaymentLink(ctx context.Context, priceID string, quantity int) (string, error)
}

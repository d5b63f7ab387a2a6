package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CheckoutInput opens a payment for either a single product or the user's
// cart. At least one source must be provided; the cart wins when both are.
type CheckoutInput struct {
	ProductID *uuid.UUID
	Quantity  int // used with ProductID; defaults to 1
	FromCart  bool

	CouponCode        string
	ShippingAddressID *uuid.UUID
	BillingAddressID  *uuid.UUID
}

// PaymentLinkInput requests a hosted payment page for a provider price.
type PaymentLinkInput struct {
	PriceID  string
	Quantity int
}

// --- Output DTOs ---

// CheckoutOutput returns the pending order and the gateway handle the client
// needs to complete payment.
type CheckoutOutput struct {
	Order        *entity.Order
	ClientSecret string
	IntentID     string
}

// CheckoutUsecase defines the interface for opening payments against the
// external gateway.
type CheckoutUsecase interface {
	// CreatePaymentIntent prices the purchase, creates a pending order with
	// a pending payment record, then opens a gateway intent. Gateway
	// failures are returned as-is; the pending order is kept.
	CreatePaymentIntent(ctx context.Context, userID uuid.UUID, input CheckoutInput) (*CheckoutOutput, error)

	// ConfirmPayment marks the payment paid and the order confirmed, keyed
	// by the gateway's transaction ID.
	ConfirmPayment(ctx context.Context, transactionID string) error

	// RefundPayment refunds a captured payment via the gateway and marks the
	// order refunded.
	RefundPayment(ctx context.Context, orderID uuid.UUID) error

	// CreatePaymentLink returns a shareable hosted payment page URL.
	CreatePaymentLink(ctx context.Context, input PaymentLinkInput) (string, error)
}

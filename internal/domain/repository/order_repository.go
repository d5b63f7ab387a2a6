package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// Order domain errors.
var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrPaymentNotFound = errors.New("payment not found")
)

// OrderListFilter narrows order listings.
type OrderListFilter struct {
	UserID          *uuid.UUID
	DeliveryAgentID *uuid.UUID
	Status          *entity.OrderStatus
	Offset          int
	Limit           int
}

// OrderRepository defines persistence operations for orders, order items and
// payment records.
type OrderRepository interface {
	// FindByID retrieves an order with its items and payments.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// FindByOrderNumber retrieves an order by its human-readable number.
	FindByOrderNumber(ctx context.Context, orderNumber string) (*entity.Order, error)

	// List retrieves orders matching the filter, newest first, together with
	// the total count before pagination.
	List(ctx context.Context, filter OrderListFilter) ([]*entity.Order, int64, error)

	// CountByUser returns how many orders the user has placed. A count of
	// zero marks a first-time customer for coupon eligibility.
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)

	// Create persists a new order with its items and payments.
	Create(ctx context.Context, order *entity.Order) error

	// UpdateStatus transitions the order to the given status.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error

	// AssignDeliveryAgent sets the delivery agent on the order.
	AssignDeliveryAgent(ctx context.Context, id, agentID uuid.UUID) error

	// UpdatePayment modifies a payment record attached to an order.
	UpdatePayment(ctx context.Context, payment *entity.Payment) error

	// FindPaymentByTransactionID retrieves a payment by the gateway's
	// transaction identifier.
	FindPaymentByTransactionID(ctx context.Context, transactionID string) (*entity.Payment, error)
}

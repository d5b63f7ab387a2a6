package entity

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
	OrderStatusRefunded  OrderStatus = "refunded"
)

// IsValid checks if the OrderStatus is a valid value.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled, OrderStatusRefunded:
		return true
	default:
		return false
	}
}

// PaymentStatus is the lifecycle state of a payment record.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// Order is a priced purchase assembled at checkout. It owns its ordered items
// and one-or-more payment records.
type Order struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	OrderNumber     string
	Status          OrderStatus
	TotalAmount     float64
	DiscountAmount  float64
	TaxAmount       float64
	ShippingCost    float64
	ShippingAddress *uuid.UUID
	BillingAddress  *uuid.UUID
	DeliveryAgentID *uuid.UUID

	Items    []*OrderItem
	Payments []*Payment

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrderItem is one priced line of an order. Price is the unit price captured
// at checkout time; Total is Price times Quantity.
type OrderItem struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	ProductID uuid.UUID
	Quantity  int
	Price     float64
	Total     float64
}

// Payment records one payment attempt against an order. TransactionID holds
// the external gateway's identifier once known.
type Payment struct {
	ID            uuid.UUID
	OrderID       uuid.UUID
	Amount        float64
	Method        string
	Status        PaymentStatus
	TransactionID *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderModel mirrors the 'orders' table.
type OrderModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index"`
	OrderNumber     string    `gorm:"type:varchar(64);unique;not null"`
	Status          string    `gorm:"type:varchar(16);not null;default:pending"`
	TotalAmount     float64   `gorm:"type:numeric(12,2);not null"`
	DiscountAmount  float64   `gorm:"type:numeric(12,2);not null;default:0"`
	TaxAmount       float64   `gorm:"type:numeric(12,2);not null;default:0"`
	ShippingCost    float64   `gorm:"type:numeric(12,2);not null;default:0"`
	ShippingAddress *uuid.UUID
	BillingAddress  *uuid.UUID
	DeliveryAgentID *uuid.UUID `gorm:"index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Items    []*OrderItemModel `gorm:"foreignKey:OrderID"`
	Payments []*PaymentModel   `gorm:"foreignKey:OrderID"`
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel mirrors the 'order_items' table.
type OrderItemModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `gorm:"type:uuid;not null"`
	Quantity  int       `gorm:"not null"`
	Price     float64   `gorm:"type:numeric(12,2);not null"`
	Total     float64   `gorm:"type:numeric(12,2);not null"`
}

// TableName explicitly sets the table name for GORM.
func (OrderItemModel) TableName() string {
	return "order_items"
}

// PaymentModel mirrors the 'payments' table. TransactionID is the gateway's
// payment intent identifier.
type PaymentModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OrderID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Amount        float64   `gorm:"type:numeric(12,2);not null"`
	Method        string    `gorm:"type:varchar(32);not null"`
	Status        string    `gorm:"type:varchar(16);not null;default:pending"`
	TransactionID *string   `gorm:"type:varchar(255);uniqueIndex"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (PaymentModel) TableName() string {
	return "payments"
}

package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// ListOrdersInput narrows and paginates order listings.
type ListOrdersInput struct {
	UserID          *uuid.UUID
	DeliveryAgentID *uuid.UUID
	Status          *entity.OrderStatus
	Page            int
	Limit           int
}

// --- Output DTOs ---

// OrderListOutput returns one page of orders and the total match count.
type OrderListOutput struct {
	Orders []*entity.Order
	Total  int64
}

// OrderUsecase defines the interface for order management operations.
type OrderUsecase interface {
	// GetOrder retrieves an order with items and payments. Non-admin callers
	// may only read their own orders.
	GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// ListOrders retrieves a page of orders matching the filter.
	ListOrders(ctx context.Context, input ListOrdersInput) (*OrderListOutput, error)

	// UpdateStatus transitions an order to the given status. Cancelling a
	// pending order releases its reserved stock.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) (*entity.Order, error)

	// AssignDeliveryAgent attaches a delivery agent to the order. The target
	// user must hold a delivery agent role.
	AssignDeliveryAgent(ctx context.Context, orderID, agentID uuid.UUID) (*entity.Order, error)
}

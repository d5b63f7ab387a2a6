package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// Inventory domain errors.
var (
	ErrInventoryNotFound = errors.New("inventory not found")

	// ErrInsufficientStock is returned when a reservation would exceed the
	// available quantity.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// InventoryRepository defines persistence operations for stock tracking.
// Reserve and Release are conditional single-statement updates so concurrent
// checkouts cannot oversell.
type InventoryRepository interface {
	// FindByProductID retrieves all inventory rows for a product.
	FindByProductID(ctx context.Context, productID uuid.UUID) ([]*entity.Inventory, error)

	// UpsertQuantity sets the absolute on-hand quantity for a product,
	// creating the inventory row if none exists. Reserved is untouched.
	UpsertQuantity(ctx context.Context, productID uuid.UUID, quantity int) (*entity.Inventory, error)

	// Reserve atomically increases the reserved count by qty, failing with
	// ErrInsufficientStock when quantity minus reserved is below qty, and
	// ErrInventoryNotFound when no row exists.
	Reserve(ctx context.Context, productID uuid.UUID, qty int) error

	// Release atomically decreases the reserved count by qty, flooring at
	// zero. Returns ErrInventoryNotFound when no row exists.
	Release(ctx context.Context, productID uuid.UUID, qty int) error
}

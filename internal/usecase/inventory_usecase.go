package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// InventoryUsecase defines the interface for stock management operations.
type InventoryUsecase interface {
	// GetStock retrieves the inventory rows for a product.
	GetStock(ctx context.Context, productID uuid.UUID) ([]*entity.Inventory, error)

	// UpdateStock sets the absolute on-hand quantity for a product, creating
	// the inventory row if none exists.
	UpdateStock(ctx context.Context, productID uuid.UUID, quantity int) (*entity.Inventory, error)

	// ReserveStock holds qty units for a pending order. Fails when available
	// stock (quantity minus reserved) is below qty.
	ReserveStock(ctx context.Context, productID uuid.UUID, qty int) error

	// ReleaseStock returns qty previously reserved units, flooring the
	// reserved count at zero.
	ReleaseStock(ctx context.Context, productID uuid.UUID, qty int) error
}

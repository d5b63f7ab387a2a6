package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrCartItemNotFound is returned when the cart item does not exist or does
// not belong to the user.
var ErrCartItemNotFound = errors.New("cart item not found")

// CartRepository defines persistence operations for the per-user cart.
// A cart holds at most one item per product; adding the same product merges
// quantities at the use-case layer.
type CartRepository interface {
	// FindByUser retrieves all cart items for the user with products
	// preloaded, newest first.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.CartItem, error)

	// FindItem retrieves the user's cart item for the given product, or
	// ErrCartItemNotFound.
	FindItem(ctx context.Context, userID, productID uuid.UUID) (*entity.CartItem, error)

	// FindItemByID retrieves a cart item by its ID scoped to the user.
	FindItemByID(ctx context.Context, userID, itemID uuid.UUID) (*entity.CartItem, error)

	// Create persists a new cart item.
	Create(ctx context.Context, item *entity.CartItem) error

	// UpdateQuantity sets the quantity of an existing cart item.
	UpdateQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error

	// Delete removes a single cart item scoped to the user.
	Delete(ctx context.Context, userID, itemID uuid.UUID) error

	// Clear removes all cart items for the user.
	Clear(ctx context.Context, userID uuid.UUID) error
}

package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// AddToCartInput defines the data required to add a product to the cart.
type AddToCartInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// UpdateCartItemInput sets a cart item's quantity. Zero removes the item.
type UpdateCartItemInput struct {
	ItemID   uuid.UUID
	Quantity int
}

// CartUsecase defines the interface for shopping cart operations. All
// operations are scoped to the authenticated user.
type CartUsecase interface {
	// GetCart retrieves the user's cart with computed totals.
	GetCart(ctx context.Context, userID uuid.UUID) (*entity.Cart, error)

	// AddToCart adds a product, merging quantities when the product is
	// already present. The merged quantity must not exceed available stock
	// summed across the product's inventory rows.
	AddToCart(ctx context.Context, userID uuid.UUID, input AddToCartInput) (*entity.Cart, error)

	// UpdateItem sets an item's quantity, removing it when zero.
	UpdateItem(ctx context.Context, userID uuid.UUID, input UpdateCartItemInput) (*entity.Cart, error)

	// RemoveItem deletes a single item from the cart.
	RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*entity.Cart, error)

	// ClearCart empties the cart.
	ClearCart(ctx context.Context, userID uuid.UUID) error
}

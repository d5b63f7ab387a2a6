package entity

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is one line of a user's cart. The (UserID, ProductID) pair is
// unique; adding an existing product increases the quantity instead of
// creating a second row.
type CartItem struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ProductID uuid.UUID
	Quantity  int

	Product *Product

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Cart is the assembled view of a user's cart with computed totals.
type Cart struct {
	Items     []*CartItem
	Total     float64
	ItemCount int
}

// NewCart assembles a Cart from items, computing total (sum of unit price
// times quantity) and item count (sum of quantities).
func NewCart(items []*CartItem) *Cart {
	cart := &Cart{Items: items}
	for _, item := range items {
		if item.Product != nil {
			cart.Total += item.Product.Price * float64(item.Quantity)
		}
		cart.ItemCount += item.Quantity
	}

	return cart
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

// Category groups products. Categories may be nested one level via ParentID.
type Category struct {
	ID          uuid.UUID
	Name        string
	Description string
	ParentID    *uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Brand identifies a product manufacturer.
type Brand struct {
	ID        uuid.UUID
	Name      string
	LogoURL   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Product is a sellable catalog entry. It owns its ordered images, variants
// and the inventory rows tracking its stock.
type Product struct {
	ID           uuid.UUID
	Name         string
	Description  string
	Price        float64
	ComparePrice *float64
	SKU          string
	Barcode      string
	CategoryID   uuid.UUID
	BrandID      *uuid.UUID
	IsActive     bool
	IsFeatured   bool

	Category  *Category
	Brand     *Brand
	Images    []*ProductImage
	Variants  []*ProductVariant
	Inventory []*Inventory
	Reviews   []*Review

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AvailableStock sums quantity minus reserved across every inventory row of
// the product.
func (p *Product) AvailableStock() int {
	available := 0
	for _, inv := range p.Inventory {
		available += inv.Available()
	}

	return available
}

// ProductImage is one image of a product, ordered by SortOrder.
type ProductImage struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	URL       string
	IsMain    bool
	SortOrder int
}

// ProductVariant is a name/value option of a product (e.g. Color:Red) with an
// optional variant-specific price and SKU.
type ProductVariant struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	Name      string
	Value     string
	Price     *float64
	SKU       *string
}

// Inventory tracks on-hand stock for a product. Reserved is the portion held
// against orders not yet confirmed. Invariant: 0 <= Reserved <= Quantity.
type Inventory struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	Quantity  int
	Reserved  int
	UpdatedAt time.Time
}

// Available returns the sellable portion of this inventory row.
func (i *Inventory) Available() int {
	return i.Quantity - i.Reserved
}

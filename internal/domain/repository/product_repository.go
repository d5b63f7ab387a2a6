package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrProductNotFound is returned when a product does not exist.
var ErrProductNotFound = errors.New("product not found")

// ProductListFilter narrows catalog listings. Zero values mean "no filter".
type ProductListFilter struct {
	CategoryID *uuid.UUID
	BrandID    *uuid.UUID
	Search     string // matches name or description, case-insensitive
	Featured   *bool
	ActiveOnly bool
	MinPrice   *float64
	MaxPrice   *float64
	Offset     int
	Limit      int
}

// ProductRepository defines persistence operations for products and their
// owned images and variants.
type ProductRepository interface {
	// FindByID retrieves a product with its images, variants, inventory and
	// category/brand associations.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// FindBySKU retrieves a product by its unique SKU.
	FindBySKU(ctx context.Context, sku string) (*entity.Product, error)

	// FindByIDs retrieves the products whose IDs appear in ids. Missing IDs
	// are skipped, not errored.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Product, error)

	// List retrieves products matching the filter, newest first, together
	// with the total count before pagination.
	List(ctx context.Context, filter ProductListFilter) ([]*entity.Product, int64, error)

	// Create persists a new product with its images and variants.
	Create(ctx context.Context, product *entity.Product) error

	// Update modifies the product's own columns. Images and variants are
	// replaced wholesale when present on the entity.
	Update(ctx context.Context, product *entity.Product) error

	// Delete removes a product and its owned rows.
	Delete(ctx context.Context, id uuid.UUID) error
}

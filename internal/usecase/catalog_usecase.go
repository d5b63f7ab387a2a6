package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// ProductImageInput describes one image attached to a product.
type ProductImageInput struct {
	URL       string
	IsMain    bool
	SortOrder int
}

// ProductVariantInput describes one variant attached to a product.
type ProductVariantInput struct {
	Name  string
	Value string
	Price *float64
	SKU   *string
}

// CreateProductInput defines the data required to create a product.
type CreateProductInput struct {
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
	Images       []ProductImageInput
	Variants     []ProductVariantInput

	// InitialStock seeds an inventory row when positive.
	InitialStock int
}

// UpdateProductInput defines the mutable product fields. Nil pointers leave
// the current value untouched; non-nil Images/Variants replace wholesale.
type UpdateProductInput struct {
	Name         *string
	Description  *string
	Price        *float64
	ComparePrice *float64
	Barcode      *string
	CategoryID   *uuid.UUID
	BrandID      *uuid.UUID
	IsActive     *bool
	IsFeatured   *bool
	Images       []ProductImageInput
	Variants     []ProductVariantInput
}

// ListProductsInput narrows and paginates catalog listings.
type ListProductsInput struct {
	CategoryID *uuid.UUID
	BrandID    *uuid.UUID
	Search     string
	Featured   *bool
	IncludeAll bool // include inactive products (admin listings)
	MinPrice   *float64
	MaxPrice   *float64
	Page       int
	Limit      int
}

// CreateCategoryInput defines the data required to create a category.
type CreateCategoryInput struct {
	Name        string
	Description string
	ParentID    *uuid.UUID
}

// CreateBrandInput defines the data required to create a brand.
type CreateBrandInput struct {
	Name    string
	LogoURL string
}

// --- Output DTOs ---

// ProductListOutput returns one page of products and the total match count.
type ProductListOutput struct {
	Products []*entity.Product
	Total    int64
}

// BulkImportOutput summarises a committed spreadsheet import run.
type BulkImportOutput struct {
	Created int
	Skipped int
}

// CatalogUsecase defines the interface for product catalog operations.
type CatalogUsecase interface {
	// GetProduct retrieves a product with images, variants, inventory and
	// reviews.
	GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// ListProducts retrieves a page of products matching the filter.
	ListProducts(ctx context.Context, input ListProductsInput) (*ProductListOutput, error)

	// CreateProduct creates a product, optionally seeding inventory.
	CreateProduct(ctx context.Context, input CreateProductInput) (*entity.Product, error)

	// UpdateProduct modifies a product.
	UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*entity.Product, error)

	// DeleteProduct removes a product and its owned rows.
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	// BulkImportProducts creates products in bulk inside one transaction,
	// typically parsed from a spreadsheet upload. Rows whose SKU already
	// exists are skipped; any other row failure rolls back the whole batch.
	BulkImportProducts(ctx context.Context, inputs []CreateProductInput) (*BulkImportOutput, error)

	// Category taxonomy.
	ListCategories(ctx context.Context) ([]*entity.Category, error)
	CreateCategory(ctx context.Context, input CreateCategoryInput) (*entity.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, input CreateCategoryInput) (*entity.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	// Brand taxonomy.
	ListBrands(ctx context.Context) ([]*entity.Brand, error)
	CreateBrand(ctx context.Context, input CreateBrandInput) (*entity.Brand, error)
	UpdateBrand(ctx context.Context, id uuid.UUID, input CreateBrandInput) (*entity.Brand, error)
	DeleteBrand(ctx context.Context, id uuid.UUID) error
}

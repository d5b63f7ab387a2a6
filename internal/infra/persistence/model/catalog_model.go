package model

import (
	"time"

	"github.com/google/uuid"
)

// CategoryModel mirrors the 'categories' table.
type CategoryModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name        string    `gorm:"type:varchar(100);unique;not null"`
	Description string    `gorm:"type:text"`
	ParentID    *uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (CategoryModel) TableName() string {
	return "categories"
}

// BrandModel mirrors the 'brands' table.
type BrandModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name      string    `gorm:"type:varchar(100);unique;not null"`
	LogoURL   string    `gorm:"type:varchar(512)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (BrandModel) TableName() string {
	return "brands"
}

// ProductModel mirrors the 'products' table.
type ProductModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Description  string    `gorm:"type:text"`
	Price        float64   `gorm:"type:numeric(12,2);not null"`
	ComparePrice *float64  `gorm:"type:numeric(12,2)"`
	SKU          string    `gorm:"type:varchar(64);unique;not null"`
	Barcode      string    `gorm:"type:varchar(64)"`
	CategoryID   uuid.UUID `gorm:"type:uuid;not null;index"`
	BrandID      *uuid.UUID
	IsActive     bool `gorm:"not null;default:true"`
	IsFeatured   bool `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Category  *CategoryModel         `gorm:"foreignKey:CategoryID"`
	Brand     *BrandModel            `gorm:"foreignKey:BrandID"`
	Images    []*ProductImageModel   `gorm:"foreignKey:ProductID"`
	Variants  []*ProductVariantModel `gorm:"foreignKey:ProductID"`
	Inventory []*InventoryModel      `gorm:"foreignKey:ProductID"`
	Reviews   []*ReviewModel         `gorm:"foreignKey:ProductID"`
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}

// ProductImageModel mirrors the 'product_images' table.
type ProductImageModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	URL       string    `gorm:"type:varchar(512);not null"`
	IsMain    bool      `gorm:"not null;default:false"`
	SortOrder int       `gorm:"not null;default:0"`
}

// TableName explicitly sets the table name for GORM.
func (ProductImageModel) TableName() string {
	return "product_images"
}

// ProductVariantModel mirrors the 'product_variants' table.
type ProductVariantModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"type:varchar(64);not null"`
	Value     string    `gorm:"type:varchar(64);not null"`
	Price     *float64  `gorm:"type:numeric(12,2)"`
	SKU       *string   `gorm:"type:varchar(64)"`
}

// TableName explicitly sets the table name for GORM.
func (ProductVariantModel) TableName() string {
	return "product_variants"
}

// InventoryModel mirrors the 'inventory' table. One row per product; Reserved
// never exceeds Quantity.
type InventoryModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Quantity  int       `gorm:"not null;default:0"`
	Reserved  int       `gorm:"not null;default:0"`
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (InventoryModel) TableName() string {
	return "inventory"
}

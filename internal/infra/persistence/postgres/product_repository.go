package postgres

import (
	"context"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// productRepository implements the domain.ProductRepository interface using GORM.
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

// withAssociations preloads everything a full product view needs.
func (repo *productRepository) withAssociations(ctx context.Context) *gorm.DB {
	return repo.db.WithContext(ctx).
		Preload("Category").
		Preload("Brand").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("Variants").
		Preload("Inventory")
}

// FindByID retrieves a product with its images, variants, inventory and
// category/brand associations.
func (repo *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var productM model.ProductModel
	err := repo.withAssociations(ctx).First(&productM, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by id")
	}

	return toProductDomain(&productM), nil
}

// FindBySKU retrieves a product by its unique SKU.
func (repo *productRepository) FindBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	var productM model.ProductModel
	err := repo.withAssociations(ctx).First(&productM, "sku = ?", sku).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by sku")
	}

	return toProductDomain(&productM), nil
}

// FindByIDs retrieves the products whose IDs appear in ids. Missing IDs are
// skipped, not errored.
func (repo *productRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var productMs []*model.ProductModel
	err := repo.withAssociations(ctx).Where("id IN ?", ids).Find(&productMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find products by ids")
	}

	products := make([]*entity.Product, 0, len(productMs))
	for _, productM := range productMs {
		products = append(products, toProductDomain(productM))
	}

	return products, nil
}

// List retrieves products matching the filter, newest first, together with
// the total count before pagination.
func (repo *productRepository) List(ctx context.Context, filter repository.ProductListFilter) ([]*entity.Product, int64, error) {
	query := repo.db.WithContext(ctx).Model(&model.ProductModel{})
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.BrandID != nil {
		query = query.Where("brand_id = ?", *filter.BrandID)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	if filter.Featured != nil {
		query = query.Where("is_featured = ?", *filter.Featured)
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count products")
	}

	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var productMs []*model.ProductModel
	err := query.
		Preload("Category").
		Preload("Brand").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("Inventory").
		Order("created_at DESC").
		Find(&productMs).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list products")
	}

	products := make([]*entity.Product, 0, len(productMs))
	for _, productM := range productMs {
		products = append(products, toProductDomain(productM))
	}

	return products, total, nil
}

// Create persists a new product with its images and variants.
func (repo *productRepository) Create(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	if err := repo.db.WithContext(ctx).Create(productM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrSKUAlreadyExists.WrapMessage("sku already exists")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("invalid category or brand reference")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required product information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create product")
	}

	product.ID = productM.ID
	product.CreatedAt = productM.CreatedAt
	product.UpdatedAt = productM.UpdatedAt
	for i, imageM := range productM.Images {
		product.Images[i].ID = imageM.ID
		product.Images[i].ProductID = imageM.ProductID
	}
	for i, variantM := range productM.Variants {
		product.Variants[i].ID = variantM.ID
		product.Variants[i].ProductID = variantM.ProductID
	}

	return nil
}

// Update modifies the product's own columns. Images and variants are replaced
// wholesale when present on the entity.
func (repo *productRepository) Update(ctx context.Context, product *entity.Product) error {
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.ProductModel{}).
			Where("id = ?", product.ID).
			Updates(map[string]any{
				"name":          product.Name,
				"description":   product.Description,
				"price":         product.Price,
				"compare_price": product.ComparePrice,
				"sku":           product.SKU,
				"barcode":       product.Barcode,
				"category_id":   product.CategoryID,
				"brand_id":      product.BrandID,
				"is_active":     product.IsActive,
				"is_featured":   product.IsFeatured,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return repository.ErrProductNotFound
		}

		if product.Images != nil {
			if err := tx.Where("product_id = ?", product.ID).Delete(&model.ProductImageModel{}).Error; err != nil {
				return err
			}
			for _, image := range product.Images {
				imageM := fromProductImageDomain(image)
				imageM.ProductID = product.ID
				if err := tx.Create(imageM).Error; err != nil {
					return err
				}
				image.ID = imageM.ID
				image.ProductID = imageM.ProductID
			}
		}

		if product.Variants != nil {
			if err := tx.Where("product_id = ?", product.ID).Delete(&model.ProductVariantModel{}).Error; err != nil {
				return err
			}
			for _, variant := range product.Variants {
				variantM := fromProductVariantDomain(variant)
				variantM.ProductID = product.ID
				if err := tx.Create(variantM).Error; err != nil {
					return err
				}
				variant.ID = variantM.ID
				variant.ProductID = variantM.ProductID
			}
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return repository.ErrProductNotFound
		}
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrSKUAlreadyExists.WrapMessage("sku already exists")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("invalid category or brand reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update product")
	}

	return nil
}

// Delete removes a product and its owned rows.
func (repo *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Select(clause.Associations).
		Delete(&model.ProductModel{ID: id})
	if result.Error != nil {
		if isForeignKeyConstraintViolation(result.Error) {
			return domainerrors.ErrConflict.WrapMessage("product is referenced by existing orders")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete product")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toProductDomain converts a GORM ProductModel to a domain Product entity.
func toProductDomain(data *model.ProductModel) *entity.Product {
	if data == nil {
		return nil
	}

	images := make([]*entity.ProductImage, 0, len(data.Images))
	for _, imageM := range data.Images {
		images = append(images, &entity.ProductImage{
			ID:        imageM.ID,
			ProductID: imageM.ProductID,
			URL:       imageM.URL,
			IsMain:    imageM.IsMain,
			SortOrder: imageM.SortOrder,
		})
	}

	variants := make([]*entity.ProductVariant, 0, len(data.Variants))
	for _, variantM := range data.Variants {
		variants = append(variants, &entity.ProductVariant{
			ID:        variantM.ID,
			ProductID: variantM.ProductID,
			Name:      variantM.Name,
			Value:     variantM.Value,
			Price:     variantM.Price,
			SKU:       variantM.SKU,
		})
	}

	inventory := make([]*entity.Inventory, 0, len(data.Inventory))
	for _, invM := range data.Inventory {
		inventory = append(inventory, toInventoryDomain(invM))
	}

	reviews := make([]*entity.Review, 0, len(data.Reviews))
	for _, reviewM := range data.Reviews {
		reviews = append(reviews, toReviewDomain(reviewM))
	}

	return &entity.Product{
		ID:           data.ID,
		Name:         data.Name,
		Description:  data.Description,
		Price:        data.Price,
		ComparePrice: data.ComparePrice,
		SKU:          data.SKU,
		Barcode:      data.Barcode,
		CategoryID:   data.CategoryID,
		BrandID:      data.BrandID,
		IsActive:     data.IsActive,
		IsFeatured:   data.IsFeatured,
		Category:     toCategoryDomain(data.Category),
		Brand:        toBrandDomain(data.Brand),
		Images:       images,
		Variants:     variants,
		Inventory:    inventory,
		Reviews:      reviews,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

// fromProductDomain converts a domain Product entity to a GORM ProductModel
// with its owned images and variants.
func fromProductDomain(data *entity.Product) *model.ProductModel {
	if data == nil {
		return nil
	}

	images := make([]*model.ProductImageModel, 0, len(data.Images))
	for _, image := range data.Images {
		images = append(images, fromProductImageDomain(image))
	}

	variants := make([]*model.ProductVariantModel, 0, len(data.Variants))
	for _, variant := range data.Variants {
		variants = append(variants, fromProductVariantDomain(variant))
	}

	return &model.ProductModel{
		ID:           data.ID,
		Name:         data.Name,
		Description:  data.Description,
		Price:        data.Price,
		ComparePrice: data.ComparePrice,
		SKU:          data.SKU,
		Barcode:      data.Barcode,
		CategoryID:   data.CategoryID,
		BrandID:      data.BrandID,
		IsActive:     data.IsActive,
		IsFeatured:   data.IsFeatured,
		Images:       images,
		Variants:     variants,
	}
}

func fromProductImageDomain(data *entity.ProductImage) *model.ProductImageModel {
	return &model.ProductImageModel{
		ID:        data.ID,
		ProductID: data.ProductID,
		URL:       data.URL,
		IsMain:    data.IsMain,
		SortOrder: data.SortOrder,
	}
}

func fromProductVariantDomain(data *entity.ProductVariant) *model.ProductVariantModel {
	return &model.ProductVariantModel{
		ID:        data.ID,
		ProductID: data.ProductID,
		Name:      data.Name,
		Value:     data.Value,
		Price:     data.Price,
		SKU:       data.SKU,
	}
}

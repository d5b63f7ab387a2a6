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

// inventoryRepository implements the domain.InventoryRepository interface using GORM.
// Reserve and Release are single conditional UPDATE statements so concurrent
// checkouts cannot oversell.
type inventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository is the constructor for inventoryRepository.
func NewInventoryRepository(db *gorm.DB) repository.InventoryRepository {
	return &inventoryRepository{db: db}
}

// FindByProductID retrieves all inventory rows for a product.
func (repo *inventoryRepository) FindByProductID(ctx context.Context, productID uuid.UUID) ([]*entity.Inventory, error) {
	var invMs []*model.InventoryModel
	err := repo.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Find(&invMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find inventory by product id")
	}

	inventory := make([]*entity.Inventory, 0, len(invMs))
	for _, invM := range invMs {
		inventory = append(inventory, toInventoryDomain(invM))
	}

	return inventory, nil
}

// UpsertQuantity sets the absolute on-hand quantity for a product, creating
// the inventory row if none exists. Reserved is untouched.
func (repo *inventoryRepository) UpsertQuantity(ctx context.Context, productID uuid.UUID, quantity int) (*entity.Inventory, error) {
	invM := &model.InventoryModel{
		ProductID: productID,
		Quantity:  quantity,
	}

	err := repo.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"quantity", "updated_at"}),
	}).Create(invM).Error
	if err != nil {
		if isForeignKeyConstraintViolation(err) {
			return nil, repository.ErrProductNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to upsert inventory quantity")
	}

	// Re-read so the returned row carries the preserved reserved count.
	var saved model.InventoryModel
	err = repo.db.WithContext(ctx).
		First(&saved, "product_id = ?", productID).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to reload inventory after upsert")
	}

	return toInventoryDomain(&saved), nil
}

// Reserve atomically increases the reserved count by qty. The WHERE clause
// guards the invariant reserved <= quantity; zero rows affected on an
// existing product means the stock was insufficient.
func (repo *inventoryRepository) Reserve(ctx context.Context, productID uuid.UUID, qty int) error {
	result := repo.db.WithContext(ctx).Model(&model.InventoryModel{}).
		Where("product_id = ? AND quantity - reserved >= ?", productID, qty).
		Update("reserved", gorm.Expr("reserved + ?", qty))
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to reserve stock")
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := repo.db.WithContext(ctx).Model(&model.InventoryModel{}).
			Where("product_id = ?", productID).
			Count(&count).Error; err != nil {
			return errors.Wrap(err, "failed to check inventory existence")
		}
		if count == 0 {
			return repository.ErrInventoryNotFound
		}

		return repository.ErrInsufficientStock
	}

	return nil
}

// Release atomically decreases the reserved count by qty, flooring at zero.
func (repo *inventoryRepository) Release(ctx context.Context, productID uuid.UUID, qty int) error {
	result := repo.db.WithContext(ctx).Model(&model.InventoryModel{}).
		Where("product_id = ?", productID).
		Update("reserved", gorm.Expr("GREATEST(reserved - ?, 0)", qty))
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to release stock")
	}
	if result.RowsAffected == 0 {
		return repository.ErrInventoryNotFound
	}

	return nil
}

// toInventoryDomain converts a GORM InventoryModel to a domain Inventory entity.
func toInventoryDomain(data *model.InventoryModel) *entity.Inventory {
	if data == nil {
		return nil
	}

	return &entity.Inventory{
		ID:        data.ID,
		ProductID: data.ProductID,
		Quantity:  data.Quantity,
		Reserved:  data.Reserved,
		UpdatedAt: data.UpdatedAt,
	}
}

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
)

// couponRepository implements the domain.CouponRepository interface using GORM.
type couponRepository struct {
	db *gorm.DB
}

// NewCouponRepository is the constructor for couponRepository.
func NewCouponRepository(db *gorm.DB) repository.CouponRepository {
	return &couponRepository{db: db}
}

// FindByID retrieves a coupon by its unique ID.
func (repo *couponRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Coupon, error) {
	var couponM model.CouponModel
	err := repo.db.WithContext(ctx).First(&couponM, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCouponNotFound
		}

		return nil, errors.Wrap(err, "failed to find coupon by id")
	}

	return toCouponDomain(&couponM), nil
}

// FindByCode retrieves a coupon by its unique code.
func (repo *couponRepository) FindByCode(ctx context.Context, code string) (*entity.Coupon, error) {
	var couponM model.CouponModel
	err := repo.db.WithContext(ctx).First(&couponM, "code = ?", code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCouponNotFound
		}

		return nil, errors.Wrap(err, "failed to find coupon by code")
	}

	return toCouponDomain(&couponM), nil
}

// ListValid retrieves all coupons currently marked valid.
func (repo *couponRepository) ListValid(ctx context.Context) ([]*entity.Coupon, error) {
	var couponMs []*model.CouponModel
	err := repo.db.WithContext(ctx).
		Where("is_valid = ?", true).
		Order("created_at DESC").
		Find(&couponMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list valid coupons")
	}

	coupons := make([]*entity.Coupon, 0, len(couponMs))
	for _, couponM := range couponMs {
		coupons = append(coupons, toCouponDomain(couponM))
	}

	return coupons, nil
}

// List retrieves all coupons regardless of validity.
func (repo *couponRepository) List(ctx context.Context) ([]*entity.Coupon, error) {
	var couponMs []*model.CouponModel
	err := repo.db.WithContext(ctx).Order("created_at DESC").Find(&couponMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list coupons")
	}

	coupons := make([]*entity.Coupon, 0, len(couponMs))
	for _, couponM := range couponMs {
		coupons = append(coupons, toCouponDomain(couponM))
	}

	return coupons, nil
}

// Create persists a new coupon.
func (repo *couponRepository) Create(ctx context.Context, coupon *entity.Coupon) error {
	couponM := fromCouponDomain(coupon)

	if err := repo.db.WithContext(ctx).Create(couponM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("coupon code already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create coupon")
	}

	coupon.ID = couponM.ID
	coupon.CreatedAt = couponM.CreatedAt
	coupon.UpdatedAt = couponM.UpdatedAt

	return nil
}

// Update modifies an existing coupon.
func (repo *couponRepository) Update(ctx context.Context, coupon *entity.Coupon) error {
	result := repo.db.WithContext(ctx).Model(&model.CouponModel{}).
		Where("id = ?", coupon.ID).
		Updates(map[string]any{
			"code":                   coupon.Code,
			"condition":              string(coupon.Condition),
			"minimum_purchase_value": coupon.MinimumPurchaseValue,
			"discount_amount":        coupon.DiscountAmount,
			"usage_limit_per_person": coupon.UsageLimitPerPerson,
			"is_valid":               coupon.IsValid,
		})
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return domainerrors.ErrConflict.WrapMessage("coupon code already exists")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update coupon")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCouponNotFound
	}

	return nil
}

// Delete removes a coupon. Usage records remain for audit.
func (repo *couponRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.CouponModel{}, "id = ?", id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete coupon")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCouponNotFound
	}

	return nil
}

// CountUsage returns how many times the user has used the coupon.
func (repo *couponRepository) CountUsage(ctx context.Context, userID, couponID uuid.UUID) (int64, error) {
	var count int64
	err := repo.db.WithContext(ctx).Model(&model.CouponUsageModel{}).
		Where("user_id = ? AND coupon_id = ?", userID, couponID).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to count coupon usage")
	}

	return count, nil
}

// RecordUsage appends a usage record. Usage is never reversed.
func (repo *couponRepository) RecordUsage(ctx context.Context, usage *entity.CouponUsage) error {
	usageM := &model.CouponUsageModel{
		UserID:   usage.UserID,
		CouponID: usage.CouponID,
	}

	if err := repo.db.WithContext(ctx).Create(usageM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrCouponNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to record coupon usage")
	}

	usage.ID = usageM.ID
	usage.UsedAt = usageM.UsedAt

	return nil
}

// toCouponDomain converts a GORM CouponModel to a domain Coupon entity.
func toCouponDomain(data *model.CouponModel) *entity.Coupon {
	if data == nil {
		return nil
	}

	return &entity.Coupon{
		ID:                   data.ID,
		Code:                 data.Code,
		Condition:            entity.CouponCondition(data.Condition),
		MinimumPurchaseValue: data.MinimumPurchaseValue,
		DiscountAmount:       data.DiscountAmount,
		UsageLimitPerPerson:  data.UsageLimitPerPerson,
		IsValid:              data.IsValid,
		CreatedAt:            data.CreatedAt,
		UpdatedAt:            data.UpdatedAt,
	}
}

// fromCouponDomain converts a domain Coupon entity to a GORM CouponModel.
func fromCouponDomain(data *entity.Coupon) *model.CouponModel {
	if data == nil {
		return nil
	}

	return &model.CouponModel{
		ID:                   data.ID,
		Code:                 data.Code,
		Condition:            string(data.Condition),
		MinimumPurchaseValue: data.MinimumPurchaseValue,
		DiscountAmount:       data.DiscountAmount,
		UsageLimitPerPerson:  data.UsageLimitPerPerson,
		IsValid:              data.IsValid,
	}
}

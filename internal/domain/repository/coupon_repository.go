package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrCouponNotFound is returned when a coupon does not exist.
var ErrCouponNotFound = errors.New("coupon not found")

// CouponRepository defines persistence operations for coupons and their
// per-user usage records.
type CouponRepository interface {
	// FindByID retrieves a coupon by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Coupon, error)

	// FindByCode retrieves a coupon by its unique code.
	FindByCode(ctx context.Context, code string) (*entity.Coupon, error)

	// ListValid retrieves all coupons currently marked valid.
	ListValid(ctx context.Context) ([]*entity.Coupon, error)

	// List retrieves all coupons regardless of validity.
	List(ctx context.Context) ([]*entity.Coupon, error)

	// Create persists a new coupon.
	Create(ctx context.Context, coupon *entity.Coupon) error

	// Update modifies an existing coupon.
	Update(ctx context.Context, coupon *entity.Coupon) error

	// Delete removes a coupon.
	Delete(ctx context.Context, id uuid.UUID) error

	// CountUsage returns how many times the user has used the coupon.
	CountUsage(ctx context.Context, userID, couponID uuid.UUID) (int64, error)

	// RecordUsage appends a usage record. Usage is never reversed.
	RecordUsage(ctx context.Context, usage *entity.CouponUsage) error
}

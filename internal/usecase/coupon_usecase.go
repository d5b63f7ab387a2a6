package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CreateCouponInput defines the data required to create a coupon.
type CreateCouponInput struct {
	Code                 string
	Condition            entity.CouponCondition
	MinimumPurchaseValue float64
	DiscountAmount       float64
	UsageLimitPerPerson  int
	IsValid              bool
}

// ApplyCouponInput carries the coupon code and, optionally, the order amount
// it is applied against. The amount is required only for minimum-purchase
// coupons; when omitted the full discount amount is returned uncapped.
type ApplyCouponInput struct {
	Code        string
	OrderAmount float64
}

// --- Output DTOs ---

// ApplyCouponOutput returns the discount granted by a successful apply.
type ApplyCouponOutput struct {
	Coupon         *entity.Coupon
	DiscountAmount float64
	FinalAmount    float64
}

// CouponUsecase defines the interface for coupon operations.
type CouponUsecase interface {
	// ListCoupons retrieves all coupons. Admin only.
	ListCoupons(ctx context.Context) ([]*entity.Coupon, error)

	// CreateCoupon creates a coupon. Admin only.
	CreateCoupon(ctx context.Context, input CreateCouponInput) (*entity.Coupon, error)

	// UpdateCoupon modifies a coupon. Admin only.
	UpdateCoupon(ctx context.Context, id uuid.UUID, input CreateCouponInput) (*entity.Coupon, error)

	// DeleteCoupon removes a coupon. Admin only.
	DeleteCoupon(ctx context.Context, id uuid.UUID) error

	// FindApplicableCoupons returns the valid coupons the user can still
	// use, each with its remaining use count. First-purchase coupons are
	// excluded for users who have placed an order.
	FindApplicableCoupons(ctx context.Context, userID uuid.UUID) ([]*entity.ApplicableCoupon, error)

	// ApplyCoupon validates eligibility, irreversibly records a usage and
	// returns the discount.
	ApplyCoupon(ctx context.Context, userID uuid.UUID, input ApplyCouponInput) (*ApplyCouponOutput, error)
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

// CouponCondition is the eligibility rule attached to a discount code.
type CouponCondition string

const (
	// CouponConditionFirstUser restricts the coupon to users with no prior orders.
	CouponConditionFirstUser CouponCondition = "first_user"
	// CouponConditionPurchase requires the order amount to meet the coupon's
	// minimum purchase value. The spelling matches the stored enum value.
	CouponConditionPurchase CouponCondition = "purchase_coupoun"
)

// IsValid checks if the CouponCondition is a valid value.
func (c CouponCondition) IsValid() bool {
	return c == CouponConditionFirstUser || c == CouponConditionPurchase
}

// Coupon is a discount code with a per-person usage limit.
type Coupon struct {
	ID                   uuid.UUID
	Code                 string
	Condition            CouponCondition
	MinimumPurchaseValue float64
	DiscountAmount       float64
	UsageLimitPerPerson  int
	IsValid              bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// CouponUsage records one redemption of a coupon by a user. Usage rows are
// counted against the coupon's per-person limit and are never deleted.
type CouponUsage struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	CouponID uuid.UUID
	UsedAt   time.Time
}

// ApplicableCoupon is a coupon a specific user may still redeem, annotated
// with how many uses that user has left.
type ApplicableCoupon struct {
	Coupon
	RemainingUses int
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// CouponModel mirrors the 'coupons' table.
type CouponModel struct {
	ID                   uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Code                 string    `gorm:"type:varchar(64);unique;not null"`
	Condition            string    `gorm:"type:varchar(32);not null"`
	MinimumPurchaseValue float64   `gorm:"type:numeric(12,2);not null;default:0"`
	DiscountAmount       float64   `gorm:"type:numeric(12,2);not null"`
	UsageLimitPerPerson  int       `gorm:"not null;default:1"`
	IsValid              bool      `gorm:"not null;default:true"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// TableName explicitly sets the table name for GORM.
func (CouponModel) TableName() string {
	return "coupons"
}

// CouponUsageModel mirrors the 'coupon_usages' table. Rows are append-only.
type CouponUsageModel struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;index:idx_usage_user_coupon"`
	CouponID uuid.UUID `gorm:"type:uuid;not null;index:idx_usage_user_coupon"`
	UsedAt   time.Time `gorm:"not null;autoCreateTime"`
}

// TableName explicitly sets the table name for GORM.
func (CouponUsageModel) TableName() string {
	return "coupon_usages"
}

// Package model defines the GORM persistence models mirroring the database schema.
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. PostgreSQL generates UUIDs via uuid_generate_v7().
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Email        string    `gorm:"type:varchar(255);unique;not null"`
	Name         string    `gorm:"type:varchar(100)"`
	Phone        string    `gorm:"type:varchar(32)"`
	PasswordHash *string   `gorm:"type:varchar(255)"`
	Role         string    `gorm:"type:varchar(32);not null;index"`
	Status       string    `gorm:"type:varchar(16);not null;default:active"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	CustomerProfile      *CustomerProfileModel      `gorm:"foreignKey:UserID"`
	AdminProfile         *AdminProfileModel         `gorm:"foreignKey:UserID"`
	DeliveryAgentProfile *DeliveryAgentProfileModel `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// CustomerProfileModel mirrors the 'customer_profiles' table. UserID references users.id (UUID).
type CustomerProfileModel struct {
	UserID        uuid.UUID `gorm:"primaryKey"`
	LoyaltyPoints int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (CustomerProfileModel) TableName() string {
	return "customer_profiles"
}

// AdminProfileModel mirrors the 'admin_profiles' table. UserID references users.id (UUID).
type AdminProfileModel struct {
	UserID      uuid.UUID `gorm:"primaryKey"`
	Designation string    `gorm:"type:varchar(100)"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (AdminProfileModel) TableName() string {
	return "admin_profiles"
}

// DeliveryAgentProfileModel mirrors the 'delivery_agent_profiles' table.
type DeliveryAgentProfileModel struct {
	UserID        uuid.UUID `gorm:"primaryKey"`
	VehicleNumber string    `gorm:"type:varchar(32)"`
	Zone          string    `gorm:"type:varchar(100)"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (DeliveryAgentProfileModel) TableName() string {
	return "delivery_agent_profiles"
}

// UserOTPModel mirrors the 'user_otps' table. One active code per user.
type UserOTPModel struct {
	UserID    uuid.UUID `gorm:"primaryKey"`
	Code      string    `gorm:"type:varchar(8);not null"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserOTPModel) TableName() string {
	return "user_otps"
}

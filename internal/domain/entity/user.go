// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// UserStatus represents the account status of a user.
type UserStatus string

const (
	// UserStatusActive indicates a usable account.
	UserStatusActive UserStatus = "active"
	// UserStatusInactive indicates a disabled account.
	UserStatusInactive UserStatus = "inactive"
)

// User is the core identity entity. PasswordHash is nil for OTP-only
// accounts, which therefore cannot log in by password.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	Phone        string
	PasswordHash *string
	Role         Role
	Status       UserStatus

	// Zero-or-one profile depending on the role.
	CustomerProfile      *CustomerProfile
	AdminProfile         *AdminProfile
	DeliveryAgentProfile *DeliveryAgentProfile

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive reports whether the account may be used.
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// CustomerProfile holds data specific to the customer role.
type CustomerProfile struct {
	UserID        uuid.UUID
	LoyaltyPoints int
	UpdatedAt     time.Time
}

// AdminProfile holds data specific to back-office roles.
type AdminProfile struct {
	UserID      uuid.UUID
	Designation string
	UpdatedAt   time.Time
}

// DeliveryAgentProfile holds data specific to delivery agents.
type DeliveryAgentProfile struct {
	UserID        uuid.UUID
	VehicleNumber string
	Zone          string
	UpdatedAt     time.Time
}

// UserOTP is the single active one-time code for a user. Generating a new
// code overwrites the previous one; validation deletes the row.
type UserOTP struct {
	UserID    uuid.UUID
	Code      string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// IsExpired reports whether the code is past its expiry at the given time.
func (o *UserOTP) IsExpired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}

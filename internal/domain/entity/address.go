package entity

import (
	"time"

	"github.com/google/uuid"
)

// AddressType distinguishes shipping and billing addresses.
type AddressType string

const (
	AddressTypeShipping AddressType = "shipping"
	AddressTypeBilling  AddressType = "billing"
)

// IsValid checks if the AddressType is a valid value.
func (t AddressType) IsValid() bool {
	return t == AddressTypeShipping || t == AddressTypeBilling
}

// Address is a typed postal address owned by a user. At most one address per
// (user, type) may be marked default.
type Address struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Type       AddressType
	Line1      string
	Line2      string
	City       string
	State      string
	PostalCode string
	Country    string
	IsDefault  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

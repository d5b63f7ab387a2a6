package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// AddressInput defines the data required to create or replace an address.
type AddressInput struct {
	Type       entity.AddressType
	Line1      string
	Line2      string
	City       string
	State      string
	PostalCode string
	Country    string
	IsDefault  bool
}

// AddressUsecase defines the interface for address book operations. All
// operations are scoped to the authenticated user.
type AddressUsecase interface {
	// ListAddresses retrieves the user's addresses.
	ListAddresses(ctx context.Context, userID uuid.UUID) ([]*entity.Address, error)

	// CreateAddress adds an address. Marking it default unsets the previous
	// default of the same type.
	CreateAddress(ctx context.Context, userID uuid.UUID, input AddressInput) (*entity.Address, error)

	// UpdateAddress replaces an address's fields.
	UpdateAddress(ctx context.Context, userID, addressID uuid.UUID, input AddressInput) (*entity.Address, error)

	// DeleteAddress removes an address.
	DeleteAddress(ctx context.Context, userID, addressID uuid.UUID) error
}

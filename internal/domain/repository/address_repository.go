package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrAddressNotFound is returned when the address does not exist or does not
// belong to the user.
var ErrAddressNotFound = errors.New("address not found")

// AddressRepository defines persistence operations for user addresses.
type AddressRepository interface {
	// FindByID retrieves an address by ID scoped to the user.
	FindByID(ctx context.Context, userID, addressID uuid.UUID) (*entity.Address, error)

	// FindByUser retrieves all addresses belonging to the user.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Address, error)

	// Create persists a new address.
	Create(ctx context.Context, address *entity.Address) error

	// Update modifies an existing address.
	Update(ctx context.Context, address *entity.Address) error

	// Delete removes an address scoped to the user.
	Delete(ctx context.Context, userID, addressID uuid.UUID) error

	// ClearDefault unsets the default flag on all of the user's addresses of
	// the given type. Called before marking a new default.
	ClearDefault(ctx context.Context, userID uuid.UUID, addrType entity.AddressType) error
}

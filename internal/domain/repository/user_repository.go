// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserListFilter narrows admin user listings.
type UserListFilter struct {
	Role   *entity.Role
	Status *entity.UserStatus
	Offset int
	Limit  int
}

// UserRepository defines the standard operations for user persistence.
// The application layer will depend on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID, including the
	// role-specific profile when one exists.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// List retrieves users matching the filter, newest first, together with
	// the total count before pagination.
	List(ctx context.Context, filter UserListFilter) ([]*entity.User, int64, error)

	// Create persists a new user entity to the storage.
	Create(ctx context.Context, user *entity.User) error

	// Update modifies an existing user entity in the storage.
	Update(ctx context.Context, user *entity.User) error

	// Delete removes a user and their dependent rows.
	Delete(ctx context.Context, id uuid.UUID) error

	// SaveProfile upserts the role-specific profile attached to the user.
	SaveProfile(ctx context.Context, user *entity.User) error
}

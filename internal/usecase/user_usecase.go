package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CreateUserInput defines the data for an admin-created account.
type CreateUserInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
	Role     entity.Role

	// Role-specific profile fields, applied when the role matches.
	Designation   string // admin roles
	VehicleNumber string // delivery agents
	Zone          string // delivery agents
}

// UpdateUserInput defines the mutable account fields. Nil pointers leave the
// current value untouched.
type UpdateUserInput struct {
	Name   *string
	Phone  *string
	Status *entity.UserStatus

	Designation   *string
	VehicleNumber *string
	Zone          *string
}

// ListUsersInput narrows and paginates admin user listings.
type ListUsersInput struct {
	Role   *entity.Role
	Status *entity.UserStatus
	Page   int
	Limit  int
}

// --- Output DTOs ---

// UserListOutput returns one page of users and the total match count.
type UserListOutput struct {
	Users []*entity.User
	Total int64
}

// UserUsecase defines the interface for account management operations.
type UserUsecase interface {
	// GetUser retrieves a single account with its role profile.
	GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// ListUsers retrieves a page of accounts matching the filter.
	ListUsers(ctx context.Context, input ListUsersInput) (*UserListOutput, error)

	// CreateUser creates an account with an explicit role. Admin only.
	CreateUser(ctx context.Context, input CreateUserInput) (*entity.User, error)

	// UpdateUser modifies an account and its role profile.
	UpdateUser(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*entity.User, error)

	// DeleteUser removes an account.
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

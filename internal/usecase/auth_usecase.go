// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
// Password is optional; accounts without one authenticate via OTP.
type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

// LoginInput defines the data required for password login.
type LoginInput struct {
	Email    string
	Password string
}

// RequestOTPInput identifies the account requesting a one-time code.
type RequestOTPInput struct {
	Email string
}

// VerifyOTPInput carries the code submitted for OTP login.
type VerifyOTPInput struct {
	Email string
	Code  string
}

// --- Output DTOs ---

// AuthOutput returns the issued token and the authenticated user.
// Token is empty when registration defers to OTP verification.
type AuthOutput struct {
	Token string
	User  *entity.User
}

// AuthUsecase defines the interface for authentication operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	// Register creates an account. When a password is supplied the account is
	// immediately usable and a token is returned; otherwise an OTP is sent.
	Register(ctx context.Context, input RegisterInput) (*AuthOutput, error)

	// Login authenticates with email and password.
	Login(ctx context.Context, input LoginInput) (*AuthOutput, error)

	// RequestOTP issues a one-time code and emails it to the account.
	RequestOTP(ctx context.Context, input RequestOTPInput) error

	// VerifyOTP exchanges a valid one-time code for a token.
	VerifyOTP(ctx context.Context, input VerifyOTPInput) (*AuthOutput, error)
}

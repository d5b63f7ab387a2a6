package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrOTPNotFound is returned when no one-time code exists for the user.
var ErrOTPNotFound = errors.New("otp not found")

// OTPRepository persists one-time login codes. A user holds at most one
// active code; issuing a new one replaces the previous.
type OTPRepository interface {
	// Upsert stores the code for the user, replacing any existing one.
	Upsert(ctx context.Context, otp *entity.UserOTP) error

	// FindByUserID retrieves the active code for the user.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.UserOTP, error)

	// DeleteByUserID removes the user's code after successful verification.
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

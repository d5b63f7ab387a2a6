package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrReviewNotFound is returned when a review does not exist.
var ErrReviewNotFound = errors.New("review not found")

// ReviewRepository defines persistence operations for product reviews.
type ReviewRepository interface {
	// FindByID retrieves a review by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error)

	// FindByProduct retrieves all reviews for a product, newest first, with
	// the reviewer's name populated.
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]*entity.Review, error)

	// FindByUserAndProduct retrieves the user's review of the product, or
	// ErrReviewNotFound. Enforces the one-review-per-product rule.
	FindByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*entity.Review, error)

	// Create persists a new review.
	Create(ctx context.Context, review *entity.Review) error

	// Update modifies an existing review.
	Update(ctx context.Context, review *entity.Review) error

	// Delete removes a review.
	Delete(ctx context.Context, id uuid.UUID) error
}

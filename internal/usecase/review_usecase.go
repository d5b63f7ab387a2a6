package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// ReviewInput defines the data required to create or update a review.
type ReviewInput struct {
	Rating  int
	Comment string
}

// ReviewUsecase defines the interface for product review operations.
type ReviewUsecase interface {
	// ListReviews retrieves all reviews of a product, newest first.
	ListReviews(ctx context.Context, productID uuid.UUID) ([]*entity.Review, error)

	// CreateReview adds the user's review of a product. A user may review a
	// product at most once.
	CreateReview(ctx context.Context, userID, productID uuid.UUID, input ReviewInput) (*entity.Review, error)

	// UpdateReview modifies the caller's own review.
	UpdateReview(ctx context.Context, userID, reviewID uuid.UUID, input ReviewInput) (*entity.Review, error)

	// DeleteReview removes a review. Non-admin callers may only delete their
	// own reviews; the handler enforces this via capability checks.
	DeleteReview(ctx context.Context, userID, reviewID uuid.UUID, isAdmin bool) error
}

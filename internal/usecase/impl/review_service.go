package impl

import (
	"context"
	"log/slog"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// reviewService implements the ReviewUsecase interface.
type reviewService struct {
	txManager   repository.TransactionManager
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
	logger      *slog.Logger
}

// ReviewServiceParams holds dependencies for ReviewService, injected by Fx.
type ReviewServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	ReviewRepo  repository.ReviewRepository
	ProductRepo repository.ProductRepository
	Logger      *slog.Logger
}

// NewReviewService is the constructor for reviewService.
func NewReviewService(params ReviewServiceParams) usecase.ReviewUsecase {
	return &reviewService{
		txManager:   params.TxManager,
		reviewRepo:  params.ReviewRepo,
		productRepo: params.ProductRepo,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *reviewService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func validateReviewInput(input usecase.ReviewInput) error {
	if input.Rating < 1 || input.Rating > 5 {
		return errors.Wrap(domainerrors.ErrValidationFailed, "rating must be between 1 and 5")
	}

	return nil
}

// ListReviews retrieves all reviews of a product, newest first.
func (srv *reviewService) ListReviews(ctx context.Context, productID uuid.UUID) ([]*entity.Review, error) {
	// Single query operation - use direct repository instance
	reviews, err := srv.reviewRepo.FindByProduct(ctx, productID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list reviews")
	}

	return reviews, nil
}

// CreateReview adds the user's review of a product, enforcing one review per
// user and product.
func (srv *reviewService) CreateReview(ctx context.Context, userID, productID uuid.UUID, input usecase.ReviewInput) (*entity.Review, error) {
	srv.log(ctx).Debug("Creating review", slog.Any("userID", userID), slog.Any("productID", productID))

	if err := validateReviewInput(input); err != nil {
		return nil, err
	}

	var created *entity.Review

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		reviewRepo := repoFactory.NewReviewRepository()

		if _, err := repoFactory.NewProductRepository().FindByID(ctx, productID); err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return errors.Wrap(domainerrors.ErrProductNotFound, "cannot review unknown product")
			}

			return errors.Wrap(err, "failed to load product for review")
		}

		if _, err := reviewRepo.FindByUserAndProduct(ctx, userID, productID); err == nil {
			return errors.Wrap(domainerrors.ErrReviewAlreadyExists, "user already reviewed this product")
		} else if !errors.Is(err, repository.ErrReviewNotFound) {
			return errors.Wrap(err, "failed to check existing review")
		}

		review := &entity.Review{
			UserID:    userID,
			ProductID: productID,
			Rating:    input.Rating,
			Comment:   input.Comment,
		}
		if err := reviewRepo.Create(ctx, review); err != nil {
			return errors.Wrap(err, "failed to create review")
		}

		created = review

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to create review", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute review creation transaction")
	}

	return created, nil
}

// UpdateReview modifies the caller's own review.
func (srv *reviewService) UpdateReview(ctx context.Context, userID, reviewID uuid.UUID, input usecase.ReviewInput) (*entity.Review, error) {
	srv.log(ctx).Debug("Updating review", slog.Any("userID", userID), slog.Any("reviewID", reviewID))

	if err := validateReviewInput(input); err != nil {
		return nil, err
	}

	review, err := srv.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return nil, errors.Wrap(domainerrors.ErrReviewNotFound, "review does not exist")
		}

		return nil, errors.Wrap(err, "failed to load review")
	}
	if review.UserID != userID {
		return nil, errors.Wrap(domainerrors.ErrForbidden, "review belongs to another user")
	}

	review.Rating = input.Rating
	review.Comment = input.Comment

	if err := srv.reviewRepo.Update(ctx, review); err != nil {
		return nil, errors.Wrap(err, "failed to update review")
	}

	return review, nil
}

// DeleteReview removes a review. Admin callers may delete any review; others
// only their own.
func (srv *reviewService) DeleteReview(ctx context.Context, userID, reviewID uuid.UUID, isAdmin bool) error {
	srv.log(ctx).Debug("Deleting review", slog.Any("userID", userID), slog.Any("reviewID", reviewID))

	review, err := srv.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return errors.Wrap(domainerrors.ErrReviewNotFound, "review does not exist")
		}

		return errors.Wrap(err, "failed to load review")
	}
	if !isAdmin && review.UserID != userID {
		return errors.Wrap(domainerrors.ErrForbidden, "review belongs to another user")
	}

	if err := srv.reviewRepo.Delete(ctx, reviewID); err != nil {
		return errors.Wrap(err, "failed to delete review")
	}

	return nil
}

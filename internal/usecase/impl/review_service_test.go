package impl

import (
	"context"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	mockRepo "storefront/internal/mocks/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// reviewServiceFixtures holds all test dependencies for review service tests.
type reviewServiceFixtures struct {
	service     usecase.ReviewUsecase
	txManager   *mockRepo.MockTransactionManager
	reviewRepo  *mockRepo.MockReviewRepository
	productRepo *mockRepo.MockProductRepository
}

func createTestReviewService(t *testing.T) reviewServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	reviewRepo := mockRepo.NewMockReviewRepository(t)
	productRepo := mockRepo.NewMockProductRepository(t)

	service := NewReviewService(ReviewServiceParams{
		TxManager:   txManager,
		ReviewRepo:  reviewRepo,
		ProductRepo: productRepo,
		Logger:      newDiscardLogger(),
	})

	return reviewServiceFixtures{
		service:     service,
		txManager:   txManager,
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
	}
}

// createReviewInTx wires the transaction closure with review and product
// repository mocks, mirroring what CreateReview constructs inside Execute.
func createReviewInTx(t *testing.T, fx reviewServiceFixtures, ctx context.Context, setup func(reviewRepo *mockRepo.MockReviewRepository, productRepo *mockRepo.MockProductRepository)) {
	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockReviewRepo := mockRepo.NewMockReviewRepository(t)
			mockProductRepo := mockRepo.NewMockProductRepository(t)

			mockFactory.EXPECT().NewReviewRepository().Return(mockReviewRepo)
			mockFactory.EXPECT().NewProductRepository().Return(mockProductRepo)

			setup(mockReviewRepo, mockProductRepo)

			return fn(mockFactory)
		})
}

func TestReviewService_CreateReview_Success(t *testing.T) {
	fx := createTestReviewService(t)

	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	createReviewInTx(t, fx, ctx, func(reviewRepo *mockRepo.MockReviewRepository, productRepo *mockRepo.MockProductRepository) {
		productRepo.EXPECT().
			FindByID(ctx, productID).
			Return(&entity.Product{ID: productID, IsActive: true}, nil)

		reviewRepo.EXPECT().
			FindByUserAndProduct(ctx, userID, productID).
			Return(nil, repository.ErrReviewNotFound)

		reviewRepo.EXPECT().
			Create(ctx, mock.AnythingOfType("*entity.Review")).
			Run(func(ctx context.Context, review *entity.Review) {
				review.ID = uuid.New()
			}).
			Return(nil)
	})

	review, err := fx.service.CreateReview(ctx, userID, productID, usecase.ReviewInput{
		Rating:  4,
		Comment: "Solid build, battery could be better.",
	})

	require.NoError(t, err)
	assert.Equal(t, userID, review.UserID)
	assert.Equal(t, productID, review.ProductID)
	assert.Equal(t, 4, review.Rating)
}

func TestReviewService_CreateReview_RatingOutOfRange(t *testing.T) {
	fx := createTestReviewService(t)

	for _, rating := range []int{0, 6, -1} {
		review, err := fx.service.CreateReview(context.Background(), uuid.New(), uuid.New(), usecase.ReviewInput{Rating: rating})

		require.Error(t, err)
		assert.Nil(t, review)
		assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	}
	fx.txManager.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestReviewService_CreateReview_DuplicateReview(t *testing.T) {
	fx := createTestReviewService(t)

	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	createReviewInTx(t, fx, ctx, func(reviewRepo *mockRepo.MockReviewRepository, productRepo *mockRepo.MockProductRepository) {
		productRepo.EXPECT().
			FindByID(ctx, productID).
			Return(&entity.Product{ID: productID}, nil)

		reviewRepo.EXPECT().
			FindByUserAndProduct(ctx, userID, productID).
			Return(&entity.Review{ID: uuid.New(), UserID: userID, ProductID: productID}, nil)
	})

	review, err := fx.service.CreateReview(ctx, userID, productID, usecase.ReviewInput{Rating: 5})

	require.Error(t, err)
	assert.Nil(t, review)
	assert.ErrorIs(t, err, domainerrors.ErrReviewAlreadyExists)
}

func TestReviewService_CreateReview_UnknownProduct(t *testing.T) {
	fx := createTestReviewService(t)

	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	createReviewInTx(t, fx, ctx, func(reviewRepo *mockRepo.MockReviewRepository, productRepo *mockRepo.MockProductRepository) {
		productRepo.EXPECT().
			FindByID(ctx, productID).
			Return(nil, repository.ErrProductNotFound)
	})

	review, err := fx.service.CreateReview(ctx, userID, productID, usecase.ReviewInput{Rating: 3})

	require.Error(t, err)
	assert.Nil(t, review)
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestReviewService_UpdateReview_OwnershipEnforced(t *testing.T) {
	fx := createTestReviewService(t)

	ctx := context.Background()
	reviewID := uuid.New()

	fx.reviewRepo.EXPECT().
		FindByID(ctx, reviewID).
		Return(&entity.Review{ID: reviewID, UserID: uuid.New(), Rating: 4}, nil)

	review, err := fx.service.UpdateReview(ctx, uuid.New(), reviewID, usecase.ReviewInput{Rating: 1})

	require.Error(t, err)
	assert.Nil(t, review)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
	fx.reviewRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestReviewService_UpdateReview_Success(t *testing.T) {
	fx := createTestReviewService(t)

	ctx := context.Background()
	userID := uuid.New()
	reviewID := uuid.New()

	fx.reviewRepo.EXPECT().
		FindByID(ctx, reviewID).
		Return(&entity.Review{ID: reviewID, UserID: userID, Rating: 2, Comment: "meh"}, nil)

	fx.reviewRepo.EXPECT().
		Update(ctx, mock.AnythingOfType("*entity.Review")).
		Return(nil)

	review, err := fx.service.UpdateReview(ctx, userID, reviewID, usecase.ReviewInput{
		Rating:  5,
		Comment: "Grew on me after a month.",
	})

	require.NoError(t, err)
	assert.Equal(t, 5, review.Rating)
	assert.Equal(t, "Grew on me after a month.", review.Comment)
}

func TestReviewService_DeleteReview_AdminOverridesOwnership(t *testing.T) {
	fx := createTestReviewService(t)

	ctx := context.Background()
	reviewID := uuid.New()

	fx.reviewRepo.EXPECT().
		FindByID(ctx, reviewID).
		Return(&entity.Review{ID: reviewID, UserID: uuid.New()}, nil)

	fx.reviewRepo.EXPECT().
		Delete(ctx, reviewID).
		Return(nil)

	err := fx.service.DeleteReview(ctx, uuid.New(), reviewID, true)

	require.NoError(t, err)
}

func TestReviewService_DeleteReview_NonAdminCannotDeleteOthers(t *testing.T) {
	fx := createTestReviewService(t)

	ctx := context.Background()
	reviewID := uuid.New()

	fx.reviewRepo.EXPECT().
		FindByID(ctx, reviewID).
		Return(&entity.Review{ID: reviewID, UserID: uuid.New()}, nil)

	err := fx.service.DeleteReview(ctx, uuid.New(), reviewID, false)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
	fx.reviewRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

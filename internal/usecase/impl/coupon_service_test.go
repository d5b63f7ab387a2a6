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

// couponServiceFixtures holds all test dependencies for coupon service tests.
type couponServiceFixtures struct {
	service    usecase.CouponUsecase
	txManager  *mockRepo.MockTransactionManager
	couponRepo *mockRepo.MockCouponRepository
	orderRepo  *mockRepo.MockOrderRepository
}

func createTestCouponService(t *testing.T) couponServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	couponRepo := mockRepo.NewMockCouponRepository(t)
	orderRepo := mockRepo.NewMockOrderRepository(t)

	service := NewCouponService(CouponServiceParams{
		TxManager:  txManager,
		CouponRepo: couponRepo,
		OrderRepo:  orderRepo,
		Logger:     newDiscardLogger(),
	})

	return couponServiceFixtures{
		service:    service,
		txManager:  txManager,
		couponRepo: couponRepo,
		orderRepo:  orderRepo,
	}
}

// applyCouponInTx wires the transaction manager so the apply callback runs
// against the given coupon and order repositories.
func applyCouponInTx(t *testing.T, fx couponServiceFixtures, ctx context.Context, couponRepo *mockRepo.MockCouponRepository, orderRepo *mockRepo.MockOrderRepository) {
	t.Helper()

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockFactory.EXPECT().NewCouponRepository().Return(couponRepo)
			mockFactory.EXPECT().NewOrderRepository().Return(orderRepo)

			return fn(mockFactory)
		})
}

func TestCouponService_ApplyCoupon_Success(t *testing.T) {
	fx := createTestCouponService(t)

	ctx := context.Background()
	userID := uuid.New()
	coupon := &entity.Coupon{
		ID:                   uuid.New(),
		Code:                 "WELCOME10",
		Condition:            entity.CouponConditionPurchase,
		MinimumPurchaseValue: 50,
		DiscountAmount:       10,
		UsageLimitPerPerson:  1,
		IsValid:              true,
	}

	txCouponRepo := mockRepo.NewMockCouponRepository(t)
	txOrderRepo := mockRepo.NewMockOrderRepository(t)
	applyCouponInTx(t, fx, ctx, txCouponRepo, txOrderRepo)

	txCouponRepo.EXPECT().FindByCode(ctx, "WELCOME10").Return(coupon, nil)
	txCouponRepo.EXPECT().CountUsage(ctx, userID, coupon.ID).Return(int64(0), nil)
	txCouponRepo.EXPECT().
		RecordUsage(ctx, mock.AnythingOfType("*entity.CouponUsage")).
		Run(func(ctx context.Context, usage *entity.CouponUsage) {
			assert.Equal(t, userID, usage.UserID)
			assert.Equal(t, coupon.ID, usage.CouponID)
		}).
		Return(nil)

	output, err := fx.service.ApplyCoupon(ctx, userID, usecase.ApplyCouponInput{Code: "WELCOME10", OrderAmount: 80})

	require.NoError(t, err)
	assert.InDelta(t, 10.0, output.DiscountAmount, 0.001)
	assert.InDelta(t, 70.0, output.FinalAmount, 0.001)
}

func TestCouponService_ApplyCoupon_DiscountCappedAtOrderAmount(t *testing.T) {
	fx := createTestCouponService(t)

	ctx := context.Background()
	userID := uuid.New()
	coupon := &entity.Coupon{
		ID:                  uuid.New(),
		Code:                "BIGDISCOUNT",
		Condition:           entity.CouponConditionPurchase,
		DiscountAmount:      100,
		UsageLimitPerPerson: 1,
		IsValid:             true,
	}

	txCouponRepo := mockRepo.NewMockCouponRepository(t)
	txOrderRepo := mockRepo.NewMockOrderRepository(t)
	applyCouponInTx(t, fx, ctx, txCouponRepo, txOrderRepo)

	txCouponRepo.EXPECT().FindByCode(ctx, "BIGDISCOUNT").Return(coupon, nil)
	txCouponRepo.EXPECT().CountUsage(ctx, userID, coupon.ID).Return(int64(0), nil)
	txCouponRepo.EXPECT().RecordUsage(ctx, mock.AnythingOfType("*entity.CouponUsage")).Return(nil)

	output, err := fx.service.ApplyCoupon(ctx, userID, usecase.ApplyCouponInput{Code: "BIGDISCOUNT", OrderAmount: 30})

	require.NoError(t, err)
	assert.InDelta(t, 30.0, output.DiscountAmount, 0.001)
	assert.Zero(t, output.FinalAmount)
}

func TestCouponService_ApplyCoupon_WithoutOrderAmountReturnsFullDiscount(t *testing.T) {
	fx := createTestCouponService(t)

	ctx := context.Background()
	userID := uuid.New()
	coupon := &entity.Coupon{
		ID:                  uuid.New(),
		Code:                "FIRSTBUY",
		Condition:           entity.CouponConditionFirstUser,
		DiscountAmount:      10,
		UsageLimitPerPerson: 1,
		IsValid:             true,
	}

	txCouponRepo := mockRepo.NewMockCouponRepository(t)
	txOrderRepo := mockRepo.NewMockOrderRepository(t)
	applyCouponInTx(t, fx, ctx, txCouponRepo, txOrderRepo)

	txCouponRepo.EXPECT().FindByCode(ctx, "FIRSTBUY").Return(coupon, nil)
	txCouponRepo.EXPECT().CountUsage(ctx, userID, coupon.ID).Return(int64(0), nil)
	txOrderRepo.EXPECT().CountByUser(ctx, userID).Return(int64(0), nil)
	txCouponRepo.EXPECT().RecordUsage(ctx, mock.AnythingOfType("*entity.CouponUsage")).Return(nil)

	// No order amount supplied: the recorded usage still grants the full
	// discount instead of capping it to zero.
	output, err := fx.service.ApplyCoupon(ctx, userID, usecase.ApplyCouponInput{Code: "FIRSTBUY"})

	require.NoError(t, err)
	assert.InDelta(t, 10.0, output.DiscountAmount, 0.001)
	assert.Zero(t, output.FinalAmount)
}

func TestCouponService_ApplyCoupon_BelowMinimumPurchase(t *testing.T) {
	fx := createTestCouponService(t)

	ctx := context.Background()
	userID := uuid.New()
	coupon := &entity.Coupon{
		ID:                   uuid.New(),
		Code:                 "WELCOME10",
		Condition:            entity.CouponConditionPurchase,
		MinimumPurchaseValue: 50,
		DiscountAmount:       10,
		UsageLimitPerPerson:  1,
		IsValid:              true,
	}

	txCouponRepo := mockRepo.NewMockCouponRepository(t)
	txOrderRepo := mockRepo.NewMockOrderRepository(t)
	applyCouponInTx(t, fx, ctx, txCouponRepo, txOrderRepo)

	txCouponRepo.EXPECT().FindByCode(ctx, "WELCOME10").Return(coupon, nil)
	txCouponRepo.EXPECT().CountUsage(ctx, userID, coupon.ID).Return(int64(0), nil)

	output, err := fx.service.ApplyCoupon(ctx, userID, usecase.ApplyCouponInput{Code: "WELCOME10", OrderAmount: 20})

	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrCouponMinimumPurchase)
}

func TestCouponService_ApplyCoupon_FirstUserOnly(t *testing.T) {
	fx := createTestCouponService(t)

	ctx := context.Background()
	userID := uuid.New()
	coupon := &entity.Coupon{
		ID:                  uuid.New(),
		Code:                "FIRSTBUY",
		Condition:           entity.CouponConditionFirstUser,
		DiscountAmount:      15,
		UsageLimitPerPerson: 1,
		IsValid:             true,
	}

	txCouponRepo := mockRepo.NewMockCouponRepository(t)
	txOrderRepo := mockRepo.NewMockOrderRepository(t)
	applyCouponInTx(t, fx, ctx, txCouponRepo, txOrderRepo)

	txCouponRepo.EXPECT().FindByCode(ctx, "FIRSTBUY").Return(coupon, nil)
	txCouponRepo.EXPECT().CountUsage(ctx, userID, coupon.ID).Return(int64(0), nil)
	txOrderRepo.EXPECT().CountByUser(ctx, userID).Return(int64(2), nil)

	output, err := fx.service.ApplyCoupon(ctx, userID, usecase.ApplyCouponInput{Code: "FIRSTBUY", OrderAmount: 60})

	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrCouponFirstUserOnly)
}

func TestCouponService_ApplyCoupon_UsageLimitReached(t *testing.T) {
	fx := createTestCouponService(t)

	ctx := context.Background()
	userID := uuid.New()
	coupon := &entity.Coupon{
		ID:                  uuid.New(),
		Code:                "WELCOME10",
		Condition:           entity.CouponConditionPurchase,
		DiscountAmount:      10,
		UsageLimitPerPerson: 1,
		IsValid:             true,
	}

	txCouponRepo := mockRepo.NewMockCouponRepository(t)
	txOrderRepo := mockRepo.NewMockOrderRepository(t)
	applyCouponInTx(t, fx, ctx, txCouponRepo, txOrderRepo)

	txCouponRepo.EXPECT().FindByCode(ctx, "WELCOME10").Return(coupon, nil)
	txCouponRepo.EXPECT().CountUsage(ctx, userID, coupon.ID).Return(int64(1), nil)

	output, err := fx.service.ApplyCoupon(ctx, userID, usecase.ApplyCouponInput{Code: "WELCOME10", OrderAmount: 100})

	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrCouponUsageLimitReached)
}

func TestCouponService_ApplyCoupon_InactiveCoupon(t *testing.T) {
	fx := createTestCouponService(t)

	ctx := context.Background()
	userID := uuid.New()
	coupon := &entity.Coupon{
		ID:        uuid.New(),
		Code:      "EXPIRED",
		Condition: entity.CouponConditionPurchase,
		IsValid:   false,
	}

	txCouponRepo := mockRepo.NewMockCouponRepository(t)
	txOrderRepo := mockRepo.NewMockOrderRepository(t)
	applyCouponInTx(t, fx, ctx, txCouponRepo, txOrderRepo)

	txCouponRepo.EXPECT().FindByCode(ctx, "EXPIRED").Return(coupon, nil)

	output, err := fx.service.ApplyCoupon(ctx, userID, usecase.ApplyCouponInput{Code: "EXPIRED", OrderAmount: 100})

	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrCouponInvalid)
}

func TestCouponService_ApplyCoupon_UnknownCode(t *testing.T) {
	fx := createTestCouponService(t)

	ctx := context.Background()
	userID := uuid.New()

	txCouponRepo := mockRepo.NewMockCouponRepository(t)
	txOrderRepo := mockRepo.NewMockOrderRepository(t)
	applyCouponInTx(t, fx, ctx, txCouponRepo, txOrderRepo)

	txCouponRepo.EXPECT().FindByCode(ctx, "NOPE").Return(nil, repository.ErrCouponNotFound)

	output, err := fx.service.ApplyCoupon(ctx, userID, usecase.ApplyCouponInput{Code: "NOPE", OrderAmount: 100})

	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrCouponNotFound)
}

func TestCouponService_FindApplicableCoupons_FiltersByEligibility(t *testing.T) {
	fx := createTestCouponService(t)

	ctx := context.Background()
	userID := uuid.New()

	firstUser := &entity.Coupon{ID: uuid.New(), Code: "FIRSTBUY", Condition: entity.CouponConditionFirstUser, UsageLimitPerPerson: 1, IsValid: true}
	welcome := &entity.Coupon{ID: uuid.New(), Code: "WELCOME10", Condition: entity.CouponConditionPurchase, UsageLimitPerPerson: 2, IsValid: true}
	exhausted := &entity.Coupon{ID: uuid.New(), Code: "USEDUP", Condition: entity.CouponConditionPurchase, UsageLimitPerPerson: 1, IsValid: true}

	fx.couponRepo.EXPECT().ListValid(ctx).Return([]*entity.Coupon{firstUser, welcome, exhausted}, nil)
	// Returning customer: first-purchase coupons drop out.
	fx.orderRepo.EXPECT().CountByUser(ctx, userID).Return(int64(3), nil)
	fx.couponRepo.EXPECT().CountUsage(ctx, userID, welcome.ID).Return(int64(1), nil)
	fx.couponRepo.EXPECT().CountUsage(ctx, userID, exhausted.ID).Return(int64(1), nil)

	applicable, err := fx.service.FindApplicableCoupons(ctx, userID)

	require.NoError(t, err)
	require.Len(t, applicable, 1)
	assert.Equal(t, "WELCOME10", applicable[0].Code)
	assert.Equal(t, 1, applicable[0].RemainingUses)
}

func TestCouponService_CreateCoupon_UnknownCondition(t *testing.T) {
	fx := createTestCouponService(t)

	coupon, err := fx.service.CreateCoupon(context.Background(), usecase.CreateCouponInput{
		Code:      "BROKEN",
		Condition: entity.CouponCondition("unknown"),
	})

	require.Error(t, err)
	assert.Nil(t, coupon)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

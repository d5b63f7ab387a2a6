package impl

import (
	"context"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	mockRepo "storefront/internal/mocks/repository"
	mockSvc "storefront/internal/mocks/service"
	mockUsecase "storefront/internal/mocks/usecase"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// checkoutServiceFixtures holds all test dependencies for checkout service tests.
type checkoutServiceFixtures struct {
	service       usecase.CheckoutUsecase
	txManager     *mockRepo.MockTransactionManager
	orderRepo     *mockRepo.MockOrderRepository
	gateway       *mockSvc.MockPaymentGateway
	couponUsecase *mockUsecase.MockCouponUsecase
}

func createTestCheckoutService(t *testing.T) checkoutServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	orderRepo := mockRepo.NewMockOrderRepository(t)
	gateway := mockSvc.NewMockPaymentGateway(t)
	couponUsecase := mockUsecase.NewMockCouponUsecase(t)

	svc := NewCheckoutService(CheckoutServiceParams{
		TxManager:     txManager,
		OrderRepo:     orderRepo,
		Gateway:       gateway,
		CouponUsecase: couponUsecase,
		Logger:        newDiscardLogger(),
	})

	return checkoutServiceFixtures{
		service:       svc,
		txManager:     txManager,
		orderRepo:     orderRepo,
		gateway:       gateway,
		couponUsecase: couponUsecase,
	}
}

func TestCheckoutService_CreatePaymentIntent_NoSource(t *testing.T) {
	fx := createTestCheckoutService(t)

	output, err := fx.service.CreatePaymentIntent(context.Background(), uuid.New(), usecase.CheckoutInput{})

	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrCheckoutSourceMissing)
	// Nothing may be written when the source check fails.
	fx.txManager.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestCheckoutService_CreatePaymentIntent_SingleProduct(t *testing.T) {
	fx := createTestCheckoutService(t)

	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockProductRepo := mockRepo.NewMockProductRepository(t)
			mockInventoryRepo := mockRepo.NewMockInventoryRepository(t)
			mockOrderRepo := mockRepo.NewMockOrderRepository(t)

			mockFactory.EXPECT().NewProductRepository().Return(mockProductRepo)
			mockFactory.EXPECT().NewInventoryRepository().Return(mockInventoryRepo)
			mockFactory.EXPECT().NewOrderRepository().Return(mockOrderRepo)

			mockProductRepo.EXPECT().
				FindByID(ctx, productID).
				Return(&entity.Product{ID: productID, Name: "Widget", Price: 25, IsActive: true}, nil)

			mockInventoryRepo.EXPECT().
				Reserve(ctx, productID, 2).
				Return(nil)

			mockOrderRepo.EXPECT().
				Create(ctx, mock.AnythingOfType("*entity.Order")).
				Run(func(ctx context.Context, order *entity.Order) {
					order.ID = uuid.New()
				}).
				Return(nil)

			return fn(mockFactory)
		})

	fx.gateway.EXPECT().
		CreatePaymentIntent(ctx, mock.AnythingOfType("service.PaymentIntentInput")).
		Run(func(ctx context.Context, input service.PaymentIntentInput) {
			assert.InDelta(t, 50.0, input.Amount, 0.001)
			assert.Equal(t, "usd", input.Currency)
		}).
		Return(&service.PaymentIntent{ID: "pi_123", ClientSecret: "secret_123", Status: "requires_payment_method"}, nil)

	fx.orderRepo.EXPECT().
		UpdatePayment(ctx, mock.AnythingOfType("*entity.Payment")).
		Run(func(ctx context.Context, payment *entity.Payment) {
			require.NotNil(t, payment.TransactionID)
			assert.Equal(t, "pi_123", *payment.TransactionID)
		}).
		Return(nil)

	output, err := fx.service.CreatePaymentIntent(ctx, userID, usecase.CheckoutInput{ProductID: &productID, Quantity: 2})

	require.NoError(t, err)
	assert.Equal(t, "secret_123", output.ClientSecret)
	assert.Equal(t, "pi_123", output.IntentID)
	assert.InDelta(t, 50.0, output.Order.TotalAmount, 0.001)
	assert.Equal(t, entity.OrderStatusPending, output.Order.Status)
	require.Len(t, output.Order.Payments, 1)
	assert.Equal(t, entity.PaymentStatusPending, output.Order.Payments[0].Status)
}

func TestCheckoutService_CreatePaymentIntent_EmptyCart(t *testing.T) {
	fx := createTestCheckoutService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockProductRepo := mockRepo.NewMockProductRepository(t)
			mockCartRepo := mockRepo.NewMockCartRepository(t)

			mockFactory.EXPECT().NewProductRepository().Return(mockProductRepo)
			mockFactory.EXPECT().NewCartRepository().Return(mockCartRepo)

			mockCartRepo.EXPECT().
				FindByUser(ctx, userID).
				Return([]*entity.CartItem{}, nil)

			return fn(mockFactory)
		})

	output, err := fx.service.CreatePaymentIntent(ctx, userID, usecase.CheckoutInput{FromCart: true})

	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrCartEmpty)
}

func TestCheckoutService_CreatePaymentIntent_ReservationShortage(t *testing.T) {
	fx := createTestCheckoutService(t)

	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockProductRepo := mockRepo.NewMockProductRepository(t)
			mockInventoryRepo := mockRepo.NewMockInventoryRepository(t)

			mockFactory.EXPECT().NewProductRepository().Return(mockProductRepo)
			mockFactory.EXPECT().NewInventoryRepository().Return(mockInventoryRepo)

			mockProductRepo.EXPECT().
				FindByID(ctx, productID).
				Return(&entity.Product{ID: productID, Price: 25, IsActive: true}, nil)

			mockInventoryRepo.EXPECT().
				Reserve(ctx, productID, 5).
				Return(repository.ErrInsufficientStock)

			return fn(mockFactory)
		})

	output, err := fx.service.CreatePaymentIntent(ctx, userID, usecase.CheckoutInput{ProductID: &productID, Quantity: 5})

	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrInsufficientStock)
}

func TestCheckoutService_CreatePaymentIntent_GatewayFailureKeepsPendingOrder(t *testing.T) {
	fx := createTestCheckoutService(t)

	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockProductRepo := mockRepo.NewMockProductRepository(t)
			mockInventoryRepo := mockRepo.NewMockInventoryRepository(t)
			mockOrderRepo := mockRepo.NewMockOrderRepository(t)

			mockFactory.EXPECT().NewProductRepository().Return(mockProductRepo)
			mockFactory.EXPECT().NewInventoryRepository().Return(mockInventoryRepo)
			mockFactory.EXPECT().NewOrderRepository().Return(mockOrderRepo)

			mockProductRepo.EXPECT().
				FindByID(ctx, productID).
				Return(&entity.Product{ID: productID, Price: 25, IsActive: true}, nil)

			mockInventoryRepo.EXPECT().Reserve(ctx, productID, 1).Return(nil)

			mockOrderRepo.EXPECT().
				Create(ctx, mock.AnythingOfType("*entity.Order")).
				Return(nil)

			return fn(mockFactory)
		})

	fx.gateway.EXPECT().
		CreatePaymentIntent(ctx, mock.AnythingOfType("service.PaymentIntentInput")).
		Return(nil, errors.New("stripe: api key expired"))

	output, err := fx.service.CreatePaymentIntent(ctx, userID, usecase.CheckoutInput{ProductID: &productID})

	require.Error(t, err)
	assert.Nil(t, output)
	assert.Contains(t, err.Error(), "api key expired")
	// The pending order stays untouched when the gateway rejects the intent.
	fx.orderRepo.AssertNotCalled(t, "UpdatePayment", mock.Anything, mock.Anything)
}

func TestCheckoutService_ConfirmPayment_Success(t *testing.T) {
	fx := createTestCheckoutService(t)

	ctx := context.Background()
	orderID := uuid.New()
	transactionID := "pi_123"

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockOrderRepo := mockRepo.NewMockOrderRepository(t)

			mockFactory.EXPECT().NewOrderRepository().Return(mockOrderRepo)

			mockOrderRepo.EXPECT().
				FindPaymentByTransactionID(ctx, transactionID).
				Return(&entity.Payment{ID: uuid.New(), OrderID: orderID, Status: entity.PaymentStatusPending, TransactionID: &transactionID}, nil)

			mockOrderRepo.EXPECT().
				UpdatePayment(ctx, mock.AnythingOfType("*entity.Payment")).
				Run(func(ctx context.Context, payment *entity.Payment) {
					assert.Equal(t, entity.PaymentStatusPaid, payment.Status)
				}).
				Return(nil)

			mockOrderRepo.EXPECT().
				UpdateStatus(ctx, orderID, entity.OrderStatusConfirmed).
				Return(nil)

			return fn(mockFactory)
		})

	err := fx.service.ConfirmPayment(ctx, transactionID)

	require.NoError(t, err)
}

func TestCheckoutService_ConfirmPayment_UnknownTransaction(t *testing.T) {
	fx := createTestCheckoutService(t)

	ctx := context.Background()

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockOrderRepo := mockRepo.NewMockOrderRepository(t)

			mockFactory.EXPECT().NewOrderRepository().Return(mockOrderRepo)

			mockOrderRepo.EXPECT().
				FindPaymentByTransactionID(ctx, "pi_missing").
				Return(nil, repository.ErrPaymentNotFound)

			return fn(mockFactory)
		})

	err := fx.service.ConfirmPayment(ctx, "pi_missing")

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
}

func TestCheckoutService_RefundPayment_NoCapturedPayment(t *testing.T) {
	fx := createTestCheckoutService(t)

	ctx := context.Background()
	orderID := uuid.New()

	fx.orderRepo.EXPECT().
		FindByID(ctx, orderID).
		Return(&entity.Order{
			ID:     orderID,
			Status: entity.OrderStatusPending,
			Payments: []*entity.Payment{
				{OrderID: orderID, Status: entity.PaymentStatusPending},
			},
		}, nil)

	err := fx.service.RefundPayment(ctx, orderID)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	fx.gateway.AssertNotCalled(t, "CreateRefund", mock.Anything, mock.Anything)
}

func TestCheckoutService_CreatePaymentLink_DefaultsQuantity(t *testing.T) {
	fx := createTestCheckoutService(t)

	ctx := context.Background()

	fx.gateway.EXPECT().
		CreatePaymentLink(ctx, "price_123", 1).
		Return("https://pay.example.com/link", nil)

	url, err := fx.service.CreatePaymentLink(ctx, usecase.PaymentLinkInput{PriceID: "price_123"})

	require.NoError(t, err)
	assert.Equal(t, "https://pay.example.com/link", url)
}

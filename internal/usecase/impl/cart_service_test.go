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

// cartServiceFixtures holds all test dependencies for cart service tests.
type cartServiceFixtures struct {
	service   usecase.CartUsecase
	txManager *mockRepo.MockTransactionManager
	cartRepo  *mockRepo.MockCartRepository
}

func createTestCartService(t *testing.T) cartServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	cartRepo := mockRepo.NewMockCartRepository(t)

	service := NewCartService(CartServiceParams{
		TxManager: txManager,
		CartRepo:  cartRepo,
		Logger:    newDiscardLogger(),
	})

	return cartServiceFixtures{
		service:   service,
		txManager: txManager,
		cartRepo:  cartRepo,
	}
}

// productWithStock builds an active product whose inventory rows sum to the
// given available count.
func productWithStock(id uuid.UUID, price float64, available int) *entity.Product {
	return &entity.Product{
		ID:       id,
		Name:     "Widget",
		Price:    price,
		IsActive: true,
		Inventory: []*entity.Inventory{
			{ProductID: id, Quantity: available + 2, Reserved: 2},
		},
	}
}

func TestCartService_AddToCart_NewItem(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()
	input := usecase.AddToCartInput{ProductID: productID, Quantity: 2}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockProductRepo := mockRepo.NewMockProductRepository(t)
			mockCartRepo := mockRepo.NewMockCartRepository(t)

			mockFactory.EXPECT().NewProductRepository().Return(mockProductRepo)
			mockFactory.EXPECT().NewCartRepository().Return(mockCartRepo)

			mockProductRepo.EXPECT().
				FindByID(ctx, productID).
				Return(productWithStock(productID, 9.5, 10), nil)

			mockCartRepo.EXPECT().
				FindItem(ctx, userID, productID).
				Return(nil, repository.ErrCartItemNotFound)

			mockCartRepo.EXPECT().
				Create(ctx, mock.AnythingOfType("*entity.CartItem")).
				Run(func(ctx context.Context, item *entity.CartItem) {
					item.ID = uuid.New()
				}).
				Return(nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	fx.cartRepo.EXPECT().
		FindByUser(ctx, userID).
		Return([]*entity.CartItem{
			{UserID: userID, ProductID: productID, Quantity: 2, Product: productWithStock(productID, 9.5, 10)},
		}, nil)

	cart, err := fx.service.AddToCart(ctx, userID, input)

	require.NoError(t, err)
	assert.Equal(t, 2, cart.ItemCount)
	assert.InDelta(t, 19.0, cart.Total, 0.001)
}

func TestCartService_AddToCart_MergesQuantities(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()
	existingID := uuid.New()

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockProductRepo := mockRepo.NewMockProductRepository(t)
			mockCartRepo := mockRepo.NewMockCartRepository(t)

			mockFactory.EXPECT().NewProductRepository().Return(mockProductRepo)
			mockFactory.EXPECT().NewCartRepository().Return(mockCartRepo)

			mockProductRepo.EXPECT().
				FindByID(ctx, productID).
				Return(productWithStock(productID, 5, 10), nil)

			mockCartRepo.EXPECT().
				FindItem(ctx, userID, productID).
				Return(&entity.CartItem{ID: existingID, UserID: userID, ProductID: productID, Quantity: 3}, nil)

			// 3 already in cart + 4 requested merges to 7.
			mockCartRepo.EXPECT().
				UpdateQuantity(ctx, existingID, 7).
				Return(nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	fx.cartRepo.EXPECT().
		FindByUser(ctx, userID).
		Return([]*entity.CartItem{
			{ID: existingID, UserID: userID, ProductID: productID, Quantity: 7, Product: productWithStock(productID, 5, 10)},
		}, nil)

	cart, err := fx.service.AddToCart(ctx, userID, usecase.AddToCartInput{ProductID: productID, Quantity: 4})

	require.NoError(t, err)
	assert.Equal(t, 7, cart.ItemCount)
}

func TestCartService_AddToCart_MergedQuantityExceedsStock(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockProductRepo := mockRepo.NewMockProductRepository(t)
			mockCartRepo := mockRepo.NewMockCartRepository(t)

			mockFactory.EXPECT().NewProductRepository().Return(mockProductRepo)
			mockFactory.EXPECT().NewCartRepository().Return(mockCartRepo)

			// 4 available in total.
			mockProductRepo.EXPECT().
				FindByID(ctx, productID).
				Return(productWithStock(productID, 5, 4), nil)

			mockCartRepo.EXPECT().
				FindItem(ctx, userID, productID).
				Return(&entity.CartItem{ID: uuid.New(), UserID: userID, ProductID: productID, Quantity: 3}, nil)

			return fn(mockFactory)
		})

	cart, err := fx.service.AddToCart(ctx, userID, usecase.AddToCartInput{ProductID: productID, Quantity: 2})

	require.Error(t, err)
	assert.Nil(t, cart)
	assert.ErrorIs(t, err, domainerrors.ErrInsufficientStock)
}

func TestCartService_AddToCart_InactiveProduct(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockProductRepo := mockRepo.NewMockProductRepository(t)
			mockCartRepo := mockRepo.NewMockCartRepository(t)

			mockFactory.EXPECT().NewProductRepository().Return(mockProductRepo)
			mockFactory.EXPECT().NewCartRepository().Return(mockCartRepo)

			inactive := productWithStock(productID, 5, 10)
			inactive.IsActive = false

			mockProductRepo.EXPECT().
				FindByID(ctx, productID).
				Return(inactive, nil)

			return fn(mockFactory)
		})

	cart, err := fx.service.AddToCart(ctx, userID, usecase.AddToCartInput{ProductID: productID, Quantity: 1})

	require.Error(t, err)
	assert.Nil(t, cart)
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestCartService_AddToCart_NonPositiveQuantity(t *testing.T) {
	fx := createTestCartService(t)

	cart, err := fx.service.AddToCart(context.Background(), uuid.New(), usecase.AddToCartInput{ProductID: uuid.New(), Quantity: 0})

	require.Error(t, err)
	assert.Nil(t, cart)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestCartService_UpdateItem_ZeroQuantityRemovesItem(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	itemID := uuid.New()

	fx.cartRepo.EXPECT().
		Delete(ctx, userID, itemID).
		Return(nil)

	fx.cartRepo.EXPECT().
		FindByUser(ctx, userID).
		Return([]*entity.CartItem{}, nil)

	cart, err := fx.service.UpdateItem(ctx, userID, usecase.UpdateCartItemInput{ItemID: itemID, Quantity: 0})

	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.ItemCount)
}

func TestCartService_RemoveItem_NotFound(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	itemID := uuid.New()

	fx.cartRepo.EXPECT().
		Delete(ctx, userID, itemID).
		Return(repository.ErrCartItemNotFound)

	cart, err := fx.service.RemoveItem(ctx, userID, itemID)

	require.Error(t, err)
	assert.Nil(t, cart)
	assert.ErrorIs(t, err, domainerrors.ErrCartItemNotFound)
}

func TestCartService_GetCart_ComputesTotals(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	first := uuid.New()
	second := uuid.New()

	fx.cartRepo.EXPECT().
		FindByUser(ctx, userID).
		Return([]*entity.CartItem{
			{UserID: userID, ProductID: first, Quantity: 2, Product: productWithStock(first, 10, 5)},
			{UserID: userID, ProductID: second, Quantity: 1, Product: productWithStock(second, 4.5, 5)},
		}, nil)

	cart, err := fx.service.GetCart(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, 3, cart.ItemCount)
	assert.InDelta(t, 24.5, cart.Total, 0.001)
}

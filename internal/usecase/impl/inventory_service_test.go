package impl

import (
	"context"
	"testing"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	mockRepo "storefront/internal/mocks/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// inventoryServiceFixtures holds all test dependencies for inventory service tests.
type inventoryServiceFixtures struct {
	service       usecase.InventoryUsecase
	inventoryRepo *mockRepo.MockInventoryRepository
	productRepo   *mockRepo.MockProductRepository
}

func createTestInventoryService(t *testing.T) inventoryServiceFixtures {
	inventoryRepo := mockRepo.NewMockInventoryRepository(t)
	productRepo := mockRepo.NewMockProductRepository(t)

	service := NewInventoryService(InventoryServiceParams{
		InventoryRepo: inventoryRepo,
		ProductRepo:   productRepo,
		Logger:        newDiscardLogger(),
	})

	return inventoryServiceFixtures{
		service:       service,
		inventoryRepo: inventoryRepo,
		productRepo:   productRepo,
	}
}

func TestInventoryService_UpdateStock_Success(t *testing.T) {
	fx := createTestInventoryService(t)

	ctx := context.Background()
	productID := uuid.New()

	fx.productRepo.EXPECT().
		FindByID(ctx, productID).
		Return(&entity.Product{ID: productID, Name: "Widget"}, nil)

	fx.inventoryRepo.EXPECT().
		UpsertQuantity(ctx, productID, 40).
		Return(&entity.Inventory{ProductID: productID, Quantity: 40, Reserved: 3, UpdatedAt: time.Now()}, nil)

	inv, err := fx.service.UpdateStock(ctx, productID, 40)

	require.NoError(t, err)
	assert.Equal(t, 40, inv.Quantity)
	assert.Equal(t, 3, inv.Reserved)
}

func TestInventoryService_UpdateStock_NegativeQuantity(t *testing.T) {
	fx := createTestInventoryService(t)

	inv, err := fx.service.UpdateStock(context.Background(), uuid.New(), -1)

	require.Error(t, err)
	assert.Nil(t, inv)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestInventoryService_UpdateStock_UnknownProduct(t *testing.T) {
	fx := createTestInventoryService(t)

	ctx := context.Background()
	productID := uuid.New()

	fx.productRepo.EXPECT().
		FindByID(ctx, productID).
		Return(nil, repository.ErrProductNotFound)

	inv, err := fx.service.UpdateStock(ctx, productID, 10)

	require.Error(t, err)
	assert.Nil(t, inv)
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestInventoryService_ReserveStock_Success(t *testing.T) {
	fx := createTestInventoryService(t)

	ctx := context.Background()
	productID := uuid.New()

	fx.inventoryRepo.EXPECT().
		Reserve(ctx, productID, 2).
		Return(nil)

	err := fx.service.ReserveStock(ctx, productID, 2)

	require.NoError(t, err)
}

func TestInventoryService_ReserveStock_Insufficient(t *testing.T) {
	fx := createTestInventoryService(t)

	ctx := context.Background()
	productID := uuid.New()

	fx.inventoryRepo.EXPECT().
		Reserve(ctx, productID, 99).
		Return(repository.ErrInsufficientStock)

	err := fx.service.ReserveStock(ctx, productID, 99)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInsufficientStock)
}

func TestInventoryService_ReserveStock_NoInventoryRow(t *testing.T) {
	fx := createTestInventoryService(t)

	ctx := context.Background()
	productID := uuid.New()

	fx.inventoryRepo.EXPECT().
		Reserve(ctx, productID, 1).
		Return(repository.ErrInventoryNotFound)

	err := fx.service.ReserveStock(ctx, productID, 1)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInventoryNotFound)
}

func TestInventoryService_ReserveStock_NonPositiveQuantity(t *testing.T) {
	fx := createTestInventoryService(t)

	err := fx.service.ReserveStock(context.Background(), uuid.New(), 0)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestInventoryService_ReleaseStock_Success(t *testing.T) {
	fx := createTestInventoryService(t)

	ctx := context.Background()
	productID := uuid.New()

	fx.inventoryRepo.EXPECT().
		Release(ctx, productID, 2).
		Return(nil)

	err := fx.service.ReleaseStock(ctx, productID, 2)

	require.NoError(t, err)
}

func TestInventoryService_GetStock_PropagatesRepositoryError(t *testing.T) {
	fx := createTestInventoryService(t)

	ctx := context.Background()
	productID := uuid.New()

	fx.inventoryRepo.EXPECT().
		FindByProductID(ctx, productID).
		Return(nil, errors.New("connection reset"))

	rows, err := fx.service.GetStock(ctx, productID)

	require.Error(t, err)
	assert.Nil(t, rows)
}

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

// orderServiceFixtures holds all test dependencies for order service tests.
type orderServiceFixtures struct {
	service   usecase.OrderUsecase
	txManager *mockRepo.MockTransactionManager
	orderRepo *mockRepo.MockOrderRepository
	userRepo  *mockRepo.MockUserRepository
}

func createTestOrderService(t *testing.T) orderServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	orderRepo := mockRepo.NewMockOrderRepository(t)
	userRepo := mockRepo.NewMockUserRepository(t)

	service := NewOrderService(OrderServiceParams{
		TxManager: txManager,
		OrderRepo: orderRepo,
		UserRepo:  userRepo,
		Logger:    newDiscardLogger(),
	})

	return orderServiceFixtures{
		service:   service,
		txManager: txManager,
		orderRepo: orderRepo,
		userRepo:  userRepo,
	}
}

func TestOrderService_UpdateStatus_CancelPendingReleasesStock(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	orderID := uuid.New()
	firstProduct := uuid.New()
	secondProduct := uuid.New()

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockOrderRepo := mockRepo.NewMockOrderRepository(t)
			mockInventoryRepo := mockRepo.NewMockInventoryRepository(t)

			mockFactory.EXPECT().NewOrderRepository().Return(mockOrderRepo)
			mockFactory.EXPECT().NewInventoryRepository().Return(mockInventoryRepo)

			mockOrderRepo.EXPECT().
				FindByID(ctx, orderID).
				Return(&entity.Order{
					ID:     orderID,
					Status: entity.OrderStatusPending,
					Items: []*entity.OrderItem{
						{ProductID: firstProduct, Quantity: 2},
						{ProductID: secondProduct, Quantity: 1},
					},
				}, nil)

			mockInventoryRepo.EXPECT().Release(ctx, firstProduct, 2).Return(nil)
			mockInventoryRepo.EXPECT().Release(ctx, secondProduct, 1).Return(nil)

			mockOrderRepo.EXPECT().
				UpdateStatus(ctx, orderID, entity.OrderStatusCancelled).
				Return(nil)

			return fn(mockFactory)
		})

	order, err := fx.service.UpdateStatus(ctx, orderID, entity.OrderStatusCancelled)

	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, order.Status)
}

func TestOrderService_UpdateStatus_ShippedDoesNotTouchInventory(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	orderID := uuid.New()

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockOrderRepo := mockRepo.NewMockOrderRepository(t)

			mockFactory.EXPECT().NewOrderRepository().Return(mockOrderRepo)

			mockOrderRepo.EXPECT().
				FindByID(ctx, orderID).
				Return(&entity.Order{ID: orderID, Status: entity.OrderStatusConfirmed}, nil)

			mockOrderRepo.EXPECT().
				UpdateStatus(ctx, orderID, entity.OrderStatusShipped).
				Return(nil)

			return fn(mockFactory)
		})

	order, err := fx.service.UpdateStatus(ctx, orderID, entity.OrderStatusShipped)

	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusShipped, order.Status)
}

func TestOrderService_UpdateStatus_UnknownStatus(t *testing.T) {
	fx := createTestOrderService(t)

	order, err := fx.service.UpdateStatus(context.Background(), uuid.New(), entity.OrderStatus("teleported"))

	require.Error(t, err)
	assert.Nil(t, order)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestOrderService_AssignDeliveryAgent_RejectsNonAgent(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	orderID := uuid.New()
	agentID := uuid.New()

	fx.userRepo.EXPECT().
		FindByID(ctx, agentID).
		Return(&entity.User{ID: agentID, Role: entity.RoleCustomer}, nil)

	order, err := fx.service.AssignDeliveryAgent(ctx, orderID, agentID)

	require.Error(t, err)
	assert.Nil(t, order)
	assert.ErrorIs(t, err, domainerrors.ErrNotDeliveryAgent)
	fx.orderRepo.AssertNotCalled(t, "AssignDeliveryAgent", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_AssignDeliveryAgent_Success(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	orderID := uuid.New()
	agentID := uuid.New()

	fx.userRepo.EXPECT().
		FindByID(ctx, agentID).
		Return(&entity.User{ID: agentID, Role: entity.RoleDelivery}, nil)

	fx.orderRepo.EXPECT().
		AssignDeliveryAgent(ctx, orderID, agentID).
		Return(nil)

	fx.orderRepo.EXPECT().
		FindByID(ctx, orderID).
		Return(&entity.Order{ID: orderID, Status: entity.OrderStatusConfirmed, DeliveryAgentID: &agentID}, nil)

	order, err := fx.service.AssignDeliveryAgent(ctx, orderID, agentID)

	require.NoError(t, err)
	require.NotNil(t, order.DeliveryAgentID)
	assert.Equal(t, agentID, *order.DeliveryAgentID)
}

func TestOrderService_GetOrder_NotFound(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	orderID := uuid.New()

	fx.orderRepo.EXPECT().
		FindByID(ctx, orderID).
		Return(nil, repository.ErrOrderNotFound)

	order, err := fx.service.GetOrder(ctx, orderID)

	require.Error(t, err)
	assert.Nil(t, order)
	assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
}

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

// addressServiceFixtures holds all test dependencies for address service tests.
type addressServiceFixtures struct {
	service     usecase.AddressUsecase
	txManager   *mockRepo.MockTransactionManager
	addressRepo *mockRepo.MockAddressRepository
}

func createTestAddressService(t *testing.T) addressServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	addressRepo := mockRepo.NewMockAddressRepository(t)

	service := NewAddressService(AddressServiceParams{
		TxManager:   txManager,
		AddressRepo: addressRepo,
		Logger:      newDiscardLogger(),
	})

	return addressServiceFixtures{
		service:     service,
		txManager:   txManager,
		addressRepo: addressRepo,
	}
}

func TestAddressService_CreateAddress_DefaultClearsPrevious(t *testing.T) {
	fx := createTestAddressService(t)

	ctx := context.Background()
	userID := uuid.New()
	input := usecase.AddressInput{
		Type:       entity.AddressTypeShipping,
		Line1:      "221B Baker Street",
		City:       "London",
		PostalCode: "NW1 6XE",
		Country:    "UK",
		IsDefault:  true,
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockAddressRepo := mockRepo.NewMockAddressRepository(t)

			mockFactory.EXPECT().NewAddressRepository().Return(mockAddressRepo)

			mockAddressRepo.EXPECT().
				ClearDefault(ctx, userID, entity.AddressTypeShipping).
				Return(nil)

			mockAddressRepo.EXPECT().
				Create(ctx, mock.AnythingOfType("*entity.Address")).
				Run(func(ctx context.Context, address *entity.Address) {
					address.ID = uuid.New()
				}).
				Return(nil)

			return fn(mockFactory)
		})

	address, err := fx.service.CreateAddress(ctx, userID, input)

	require.NoError(t, err)
	assert.Equal(t, userID, address.UserID)
	assert.Equal(t, entity.AddressTypeShipping, address.Type)
	assert.True(t, address.IsDefault)
}

func TestAddressService_CreateAddress_NonDefaultKeepsExisting(t *testing.T) {
	fx := createTestAddressService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockAddressRepo := mockRepo.NewMockAddressRepository(t)

			mockFactory.EXPECT().NewAddressRepository().Return(mockAddressRepo)

			// ClearDefault is not expected here, a non-default address must
			// not touch the existing default.
			mockAddressRepo.EXPECT().
				Create(ctx, mock.AnythingOfType("*entity.Address")).
				Return(nil)

			return fn(mockFactory)
		})

	address, err := fx.service.CreateAddress(ctx, userID, usecase.AddressInput{
		Type:  entity.AddressTypeBilling,
		Line1: "1 Infinite Loop",
	})

	require.NoError(t, err)
	assert.False(t, address.IsDefault)
}

func TestAddressService_CreateAddress_UnknownType(t *testing.T) {
	fx := createTestAddressService(t)

	address, err := fx.service.CreateAddress(context.Background(), uuid.New(), usecase.AddressInput{
		Type: entity.AddressType("warehouse"),
	})

	require.Error(t, err)
	assert.Nil(t, address)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	fx.txManager.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestAddressService_UpdateAddress_PromoteToDefault(t *testing.T) {
	fx := createTestAddressService(t)

	ctx := context.Background()
	userID := uuid.New()
	addressID := uuid.New()

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockAddressRepo := mockRepo.NewMockAddressRepository(t)

			mockFactory.EXPECT().NewAddressRepository().Return(mockAddressRepo)

			mockAddressRepo.EXPECT().
				FindByID(ctx, userID, addressID).
				Return(&entity.Address{
					ID:        addressID,
					UserID:    userID,
					Type:      entity.AddressTypeShipping,
					Line1:     "Old Street 1",
					IsDefault: false,
				}, nil)

			mockAddressRepo.EXPECT().
				ClearDefault(ctx, userID, entity.AddressTypeShipping).
				Return(nil)

			mockAddressRepo.EXPECT().
				Update(ctx, mock.AnythingOfType("*entity.Address")).
				Return(nil)

			return fn(mockFactory)
		})

	address, err := fx.service.UpdateAddress(ctx, userID, addressID, usecase.AddressInput{
		Type:      entity.AddressTypeShipping,
		Line1:     "New Street 2",
		IsDefault: true,
	})

	require.NoError(t, err)
	assert.Equal(t, "New Street 2", address.Line1)
	assert.True(t, address.IsDefault)
}

func TestAddressService_UpdateAddress_NotFound(t *testing.T) {
	fx := createTestAddressService(t)

	ctx := context.Background()
	userID := uuid.New()
	addressID := uuid.New()

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockAddressRepo := mockRepo.NewMockAddressRepository(t)

			mockFactory.EXPECT().NewAddressRepository().Return(mockAddressRepo)

			mockAddressRepo.EXPECT().
				FindByID(ctx, userID, addressID).
				Return(nil, repository.ErrAddressNotFound)

			return fn(mockFactory)
		})

	address, err := fx.service.UpdateAddress(ctx, userID, addressID, usecase.AddressInput{
		Type: entity.AddressTypeBilling,
	})

	require.Error(t, err)
	assert.Nil(t, address)
	assert.ErrorIs(t, err, domainerrors.ErrAddressNotFound)
}

func TestAddressService_DeleteAddress_NotFound(t *testing.T) {
	fx := createTestAddressService(t)

	ctx := context.Background()
	userID := uuid.New()
	addressID := uuid.New()

	fx.addressRepo.EXPECT().
		Delete(ctx, userID, addressID).
		Return(repository.ErrAddressNotFound)

	err := fx.service.DeleteAddress(ctx, userID, addressID)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrAddressNotFound)
}

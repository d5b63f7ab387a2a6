package impl

import (
	"context"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	mockRepo "storefront/internal/mocks/repository"
	mockService "storefront/internal/mocks/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// userServiceFixtures holds all test dependencies for user service tests.
type userServiceFixtures struct {
	service   usecase.UserUsecase
	txManager *mockRepo.MockTransactionManager
	userRepo  *mockRepo.MockUserRepository
	hasher    *mockService.MockPasswordHasher
}

func createTestUserService(t *testing.T) userServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	hasher := mockService.NewMockPasswordHasher(t)

	service := NewUserService(UserServiceParams{
		TxManager: txManager,
		UserRepo:  userRepo,
		Hasher:    hasher,
		Logger:    newDiscardLogger(),
	})

	return userServiceFixtures{
		service:   service,
		txManager: txManager,
		userRepo:  userRepo,
		hasher:    hasher,
	}
}

func TestUserService_CreateUser_DeliveryAgent(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	input := usecase.CreateUserInput{
		Name:          "Ravi Kumar",
		Email:         "ravi@example.com",
		Phone:         "9876543210",
		Password:      "StrongPass123!",
		Role:          entity.RoleDelivery,
		VehicleNumber: "KA-01-AB-1234",
		Zone:          "south",
	}

	fx.hasher.EXPECT().Hash("StrongPass123!").Return("hashed_password", nil)

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().NewUserRepository().Return(mockUserRepo)

			mockUserRepo.EXPECT().
				FindByEmail(ctx, "ravi@example.com").
				Return(nil, repository.ErrUserNotFound)

			mockUserRepo.EXPECT().
				Create(ctx, mock.AnythingOfType("*entity.User")).
				Run(func(ctx context.Context, user *entity.User) {
					user.ID = uuid.New()
				}).
				Return(nil)

			return fn(mockFactory)
		})

	user, err := fx.service.CreateUser(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, entity.RoleDelivery, user.Role)
	assert.Equal(t, entity.UserStatusActive, user.Status)
	require.NotNil(t, user.PasswordHash)
	assert.Equal(t, "hashed_password", *user.PasswordHash)
	require.NotNil(t, user.DeliveryAgentProfile)
	assert.Equal(t, "KA-01-AB-1234", user.DeliveryAgentProfile.VehicleNumber)
	assert.Equal(t, "south", user.DeliveryAgentProfile.Zone)
	assert.Nil(t, user.CustomerProfile)
	assert.Nil(t, user.AdminProfile)
}

func TestUserService_CreateUser_AdminGetsDesignation(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	input := usecase.CreateUserInput{
		Name:        "Ops Lead",
		Email:       "ops@example.com",
		Role:        entity.RoleStoreManager,
		Designation: "Store Operations",
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().NewUserRepository().Return(mockUserRepo)

			mockUserRepo.EXPECT().
				FindByEmail(ctx, "ops@example.com").
				Return(nil, repository.ErrUserNotFound)

			mockUserRepo.EXPECT().
				Create(ctx, mock.AnythingOfType("*entity.User")).
				Return(nil)

			return fn(mockFactory)
		})

	user, err := fx.service.CreateUser(ctx, input)

	require.NoError(t, err)
	// No password supplied, so the account is OTP-only.
	assert.Nil(t, user.PasswordHash)
	require.NotNil(t, user.AdminProfile)
	assert.Equal(t, "Store Operations", user.AdminProfile.Designation)
}

func TestUserService_CreateUser_GuestRoleRejected(t *testing.T) {
	fx := createTestUserService(t)

	user, err := fx.service.CreateUser(context.Background(), usecase.CreateUserInput{
		Email: "ghost@example.com",
		Role:  entity.RoleGuest,
	})

	require.Error(t, err)
	assert.Nil(t, user)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidRole)
	fx.txManager.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestUserService_CreateUser_DuplicateEmail(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().NewUserRepository().Return(mockUserRepo)

			mockUserRepo.EXPECT().
				FindByEmail(ctx, "taken@example.com").
				Return(&entity.User{ID: uuid.New(), Email: "taken@example.com"}, nil)

			return fn(mockFactory)
		})

	user, err := fx.service.CreateUser(ctx, usecase.CreateUserInput{
		Email: "taken@example.com",
		Role:  entity.RoleCustomer,
	})

	require.Error(t, err)
	assert.Nil(t, user)
	assert.ErrorIs(t, err, domainerrors.ErrEmailAlreadyExists)
}

func TestUserService_UpdateUser_AppliesPartialFields(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	userID := uuid.New()
	newName := "Renamed"
	newStatus := entity.UserStatusInactive

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().NewUserRepository().Return(mockUserRepo)

			mockUserRepo.EXPECT().
				FindByID(ctx, userID).
				Return(&entity.User{
					ID:     userID,
					Name:   "Original",
					Phone:  "1112223333",
					Role:   entity.RoleCustomer,
					Status: entity.UserStatusActive,
				}, nil)

			mockUserRepo.EXPECT().
				Update(ctx, mock.AnythingOfType("*entity.User")).
				Return(nil)

			mockUserRepo.EXPECT().
				SaveProfile(ctx, mock.AnythingOfType("*entity.User")).
				Return(nil)

			return fn(mockFactory)
		})

	user, err := fx.service.UpdateUser(ctx, userID, usecase.UpdateUserInput{
		Name:   &newName,
		Status: &newStatus,
	})

	require.NoError(t, err)
	assert.Equal(t, "Renamed", user.Name)
	assert.Equal(t, entity.UserStatusInactive, user.Status)
	// Phone pointer was nil, so the original value survives.
	assert.Equal(t, "1112223333", user.Phone)
}

func TestUserService_GetUser_NotFound(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.userRepo.EXPECT().
		FindByID(ctx, userID).
		Return(nil, repository.ErrUserNotFound)

	user, err := fx.service.GetUser(ctx, userID)

	require.Error(t, err)
	assert.Nil(t, user)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestUserService_ListUsers_DefaultsPagination(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()

	fx.userRepo.EXPECT().
		List(ctx, mock.AnythingOfType("repository.UserListFilter")).
		RunAndReturn(func(ctx context.Context, filter repository.UserListFilter) ([]*entity.User, int64, error) {
			assert.Equal(t, 0, filter.Offset)
			assert.Equal(t, defaultPageSize, filter.Limit)

			return []*entity.User{{ID: uuid.New()}}, 1, nil
		})

	output, err := fx.service.ListUsers(ctx, usecase.ListUsersInput{})

	require.NoError(t, err)
	assert.Len(t, output.Users, 1)
	assert.Equal(t, int64(1), output.Total)
}

func TestUserService_DeleteUser_NotFound(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.userRepo.EXPECT().
		Delete(ctx, userID).
		Return(repository.ErrUserNotFound)

	err := fx.service.DeleteUser(ctx, userID)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

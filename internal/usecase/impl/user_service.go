package impl

import (
	"context"
	"log/slog"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager repository.TransactionManager
	userRepo  repository.UserRepository
	hasher    service.PasswordHasher
	logger    *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	UserRepo  repository.UserRepository
	Hasher    service.PasswordHasher
	Logger    *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager: params.TxManager,
		userRepo:  params.UserRepo,
		hasher:    params.Hasher,
		logger:    params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetUser retrieves a single account with its role profile.
func (srv *userService) GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	// Single query operation - use direct repository instance
	user, err := srv.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "user does not exist")
		}

		return nil, errors.Wrap(err, "failed to load user")
	}

	return user, nil
}

// ListUsers retrieves a page of accounts matching the filter.
func (srv *userService) ListUsers(ctx context.Context, input usecase.ListUsersInput) (*usecase.UserListOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	page := input.Page
	if page <= 0 {
		page = 1
	}

	filter := repository.UserListFilter{
		Role:   input.Role,
		Status: input.Status,
		Offset: (page - 1) * limit,
		Limit:  limit,
	}

	users, total, err := srv.userRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	return &usecase.UserListOutput{Users: users, Total: total}, nil
}

// CreateUser creates an account with an explicit role and its role profile.
func (srv *userService) CreateUser(ctx context.Context, input usecase.CreateUserInput) (*entity.User, error) {
	srv.log(ctx).Info("Creating user", slog.String("email", input.Email), slog.Any("role", input.Role))

	if !input.Role.IsValid() || input.Role == entity.RoleGuest {
		return nil, errors.Wrap(domainerrors.ErrInvalidRole, "role cannot be assigned to an account")
	}

	var created *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		if _, err := userRepo.FindByEmail(ctx, input.Email); err == nil {
			return errors.Wrap(domainerrors.ErrEmailAlreadyExists, "email already registered")
		} else if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to check email uniqueness")
		}

		user := &entity.User{
			Name:   input.Name,
			Email:  input.Email,
			Phone:  input.Phone,
			Role:   input.Role,
			Status: entity.UserStatusActive,
		}

		if input.Password != "" {
			hash, err := srv.hasher.Hash(input.Password)
			if err != nil {
				return errors.Wrap(err, "failed to hash password")
			}
			user.PasswordHash = &hash
		}

		attachRoleProfile(user, input)

		if err := userRepo.Create(ctx, user); err != nil {
			return errors.Wrap(err, "failed to create user")
		}

		created = user

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to create user", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute user creation transaction")
	}

	return created, nil
}

// attachRoleProfile sets the profile matching the account's role.
func attachRoleProfile(user *entity.User, input usecase.CreateUserInput) {
	switch user.Role {
	case entity.RoleCustomer:
		user.CustomerProfile = &entity.CustomerProfile{}
	case entity.RoleDelivery:
		user.DeliveryAgentProfile = &entity.DeliveryAgentProfile{
			VehicleNumber: input.VehicleNumber,
			Zone:          input.Zone,
		}
	case entity.RoleSuperAdmin, entity.RoleAdmin, entity.RoleStoreManager,
		entity.RoleProductManager, entity.RoleMarketingManager, entity.RoleCustomerSupport:
		user.AdminProfile = &entity.AdminProfile{Designation: input.Designation}
	}
}

// UpdateUser modifies an account and its role profile.
func (srv *userService) UpdateUser(ctx context.Context, id uuid.UUID, input usecase.UpdateUserInput) (*entity.User, error) {
	srv.log(ctx).Info("Updating user", slog.Any("userID", id))

	var updated *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		user, err := userRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrUserNotFound, "user does not exist")
			}

			return errors.Wrap(err, "failed to load user for update")
		}

		if input.Name != nil {
			user.Name = *input.Name
		}
		if input.Phone != nil {
			user.Phone = *input.Phone
		}
		if input.Status != nil {
			user.Status = *input.Status
		}
		if input.Designation != nil && user.AdminProfile != nil {
			user.AdminProfile.Designation = *input.Designation
		}
		if user.DeliveryAgentProfile != nil {
			if input.VehicleNumber != nil {
				user.DeliveryAgentProfile.VehicleNumber = *input.VehicleNumber
			}
			if input.Zone != nil {
				user.DeliveryAgentProfile.Zone = *input.Zone
			}
		}

		if err := userRepo.Update(ctx, user); err != nil {
			return errors.Wrap(err, "failed to update user")
		}
		if err := userRepo.SaveProfile(ctx, user); err != nil {
			return errors.Wrap(err, "failed to update role profile")
		}

		updated = user

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to update user", slog.Any("userID", id), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute user update transaction")
	}

	return updated, nil
}

// DeleteUser removes an account.
func (srv *userService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	srv.log(ctx).Info("Deleting user", slog.Any("userID", id))

	if err := srv.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(domainerrors.ErrUserNotFound, "user does not exist")
		}

		return errors.Wrap(err, "failed to delete user")
	}

	return nil
}

package postgres

import (
	"context"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// userRepository implements the domain.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a domain.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByID retrieves a single user by their unique ID, preloading the role-specific profiles.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Preload("CustomerProfile").
		Preload("AdminProfile").
		Preload("DeliveryAgentProfile").
		First(&userM, "id = ?", id).Error

	if err != nil {
		// If the error is 'record not found', return a domain-specific error.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	// Map the persistence model back to a pure domain entity before returning.
	return toUserDomain(&userM), nil
}

// FindByEmail retrieves a single user by their email address, preloading the role-specific profiles.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Preload("CustomerProfile").
		Preload("AdminProfile").
		Preload("DeliveryAgentProfile").
		First(&userM, "email = ?", email).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return toUserDomain(&userM), nil
}

// List retrieves users matching the filter, newest first, together with the
// total count before pagination.
func (repo *userRepository) List(ctx context.Context, filter repository.UserListFilter) ([]*entity.User, int64, error) {
	query := repo.db.WithContext(ctx).Model(&model.UserModel{})
	if filter.Role != nil {
		query = query.Where("role = ?", string(*filter.Role))
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count users")
	}

	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var userMs []*model.UserModel
	err := query.
		Preload("CustomerProfile").
		Preload("AdminProfile").
		Preload("DeliveryAgentProfile").
		Order("created_at DESC").
		Find(&userMs).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list users")
	}

	users := make([]*entity.User, 0, len(userMs))
	for _, userM := range userMs {
		users = append(users, toUserDomain(userM))
	}

	return users, total, nil
}

// Create persists a new user entity, including its role-specific profile, to the database.
// GORM's Create with associations inserts into users and the profile table in one statement batch.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	// Map the pure domain entity to a GORM persistence model.
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		// Convert PostgreSQL errors to domain errors
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrEmailAlreadyExists.WrapMessage("email already exists")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required user information")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("invalid foreign key reference")
		}
		// For other database errors, return a generic database error
		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	// Update the user entity with the generated ID and timestamps
	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	if user.CustomerProfile != nil && userM.CustomerProfile != nil {
		user.CustomerProfile.UserID = userM.CustomerProfile.UserID
		user.CustomerProfile.UpdatedAt = userM.CustomerProfile.UpdatedAt
	}
	if user.AdminProfile != nil && userM.AdminProfile != nil {
		user.AdminProfile.UserID = userM.AdminProfile.UserID
		user.AdminProfile.UpdatedAt = userM.AdminProfile.UpdatedAt
	}
	if user.DeliveryAgentProfile != nil && userM.DeliveryAgentProfile != nil {
		user.DeliveryAgentProfile.UserID = userM.DeliveryAgentProfile.UserID
		user.DeliveryAgentProfile.UpdatedAt = userM.DeliveryAgentProfile.UpdatedAt
	}

	return nil
}

// Update modifies the user's own columns. Profiles are saved separately via SaveProfile.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)
	userM.CustomerProfile = nil
	userM.AdminProfile = nil
	userM.DeliveryAgentProfile = nil

	result := repo.db.WithContext(ctx).Model(&model.UserModel{}).
		Where("id = ?", user.ID).
		Updates(map[string]any{
			"email":         userM.Email,
			"name":          userM.Name,
			"phone":         userM.Phone,
			"password_hash": userM.PasswordHash,
			"role":          userM.Role,
			"status":        userM.Status,
		})
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return domainerrors.ErrEmailAlreadyExists.WrapMessage("email already exists")
		}
		if isNotNullConstraintViolation(result.Error) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required user information")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update user")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// Delete removes a user together with their profile rows.
func (repo *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Select(clause.Associations).
		Delete(&model.UserModel{ID: id})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete user")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// SaveProfile upserts the role-specific profile attached to the user.
// Only the profile matching the user's role is written.
func (repo *userRepository) SaveProfile(ctx context.Context, user *entity.User) error {
	db := repo.db.WithContext(ctx)

	switch {
	case user.CustomerProfile != nil:
		profileM := fromCustomerProfileDomain(user.CustomerProfile)
		profileM.UserID = user.ID
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).Create(profileM).Error; err != nil {
			return domainerrors.NewDatabaseExecuteError(err, "failed to save customer profile")
		}
		user.CustomerProfile.UpdatedAt = profileM.UpdatedAt
	case user.AdminProfile != nil:
		profileM := fromAdminProfileDomain(user.AdminProfile)
		profileM.UserID = user.ID
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).Create(profileM).Error; err != nil {
			return domainerrors.NewDatabaseExecuteError(err, "failed to save admin profile")
		}
		user.AdminProfile.UpdatedAt = profileM.UpdatedAt
	case user.DeliveryAgentProfile != nil:
		profileM := fromDeliveryAgentProfileDomain(user.DeliveryAgentProfile)
		profileM.UserID = user.ID
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).Create(profileM).Error; err != nil {
			return domainerrors.NewDatabaseExecuteError(err, "failed to save delivery agent profile")
		}
		user.DeliveryAgentProfile.UpdatedAt = profileM.UpdatedAt
	}

	return nil
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:                   data.ID,
		Email:                data.Email,
		Name:                 data.Name,
		Phone:                data.Phone,
		PasswordHash:         data.PasswordHash,
		Role:                 entity.Role(data.Role),
		Status:               entity.UserStatus(data.Status),
		CustomerProfile:      toCustomerProfileDomain(data.CustomerProfile),
		AdminProfile:         toAdminProfileDomain(data.AdminProfile),
		DeliveryAgentProfile: toDeliveryAgentProfileDomain(data.DeliveryAgentProfile),
		CreatedAt:            data.CreatedAt,
		UpdatedAt:            data.UpdatedAt,
	}
}

// fromUserDomain converts a domain User entity to a GORM UserModel for persistence.
func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		ID:                   data.ID,
		Email:                data.Email,
		Name:                 data.Name,
		Phone:                data.Phone,
		PasswordHash:         data.PasswordHash,
		Role:                 string(data.Role),
		Status:               string(data.Status),
		CustomerProfile:      fromCustomerProfileDomain(data.CustomerProfile),
		AdminProfile:         fromAdminProfileDomain(data.AdminProfile),
		DeliveryAgentProfile: fromDeliveryAgentProfileDomain(data.DeliveryAgentProfile),
	}
}

func toCustomerProfileDomain(data *model.CustomerProfileModel) *entity.CustomerProfile {
	if data == nil {
		return nil
	}

	return &entity.CustomerProfile{
		UserID:        data.UserID,
		LoyaltyPoints: data.LoyaltyPoints,
		UpdatedAt:     data.UpdatedAt,
	}
}

func fromCustomerProfileDomain(data *entity.CustomerProfile) *model.CustomerProfileModel {
	if data == nil {
		return nil
	}

	return &model.CustomerProfileModel{
		UserID:        data.UserID,
		LoyaltyPoints: data.LoyaltyPoints,
	}
}

func toAdminProfileDomain(data *model.AdminProfileModel) *entity.AdminProfile {
	if data == nil {
		return nil
	}

	return &entity.AdminProfile{
		UserID:      data.UserID,
		Designation: data.Designation,
		UpdatedAt:   data.UpdatedAt,
	}
}

func fromAdminProfileDomain(data *entity.AdminProfile) *model.AdminProfileModel {
	if data == nil {
		return nil
	}

	return &model.AdminProfileModel{
		UserID:      data.UserID,
		Designation: data.Designation,
	}
}

func toDeliveryAgentProfileDomain(data *model.DeliveryAgentProfileModel) *entity.DeliveryAgentProfile {
	if data == nil {
		return nil
	}

	return &entity.DeliveryAgentProfile{
		UserID:        data.UserID,
		VehicleNumber: data.VehicleNumber,
		Zone:          data.Zone,
		UpdatedAt:     data.UpdatedAt,
	}
}

func fromDeliveryAgentProfileDomain(data *entity.DeliveryAgentProfile) *model.DeliveryAgentProfileModel {
	if data == nil {
		return nil
	}

	return &model.DeliveryAgentProfileModel{
		UserID:        data.UserID,
		VehicleNumber: data.VehicleNumber,
		Zone:          data.Zone,
	}
}

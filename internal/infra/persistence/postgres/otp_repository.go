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

// otpRepository implements the domain.OTPRepository interface using GORM.
type otpRepository struct {
	db *gorm.DB
}

// NewOTPRepository is the constructor for otpRepository.
func NewOTPRepository(db *gorm.DB) repository.OTPRepository {
	return &otpRepository{db: db}
}

// Upsert stores the code for the user, replacing any existing one. A user
// holds at most one active code at a time.
func (repo *otpRepository) Upsert(ctx context.Context, otp *entity.UserOTP) error {
	otpM := &model.UserOTPModel{
		UserID:    otp.UserID,
		Code:      otp.Code,
		ExpiresAt: otp.ExpiresAt,
	}

	err := repo.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"code", "expires_at", "created_at"}),
	}).Create(otpM).Error
	if err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrUserNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to upsert otp")
	}

	otp.CreatedAt = otpM.CreatedAt

	return nil
}

// FindByUserID retrieves the active code for the user.
func (repo *otpRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.UserOTP, error) {
	var otpM model.UserOTPModel
	err := repo.db.WithContext(ctx).First(&otpM, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOTPNotFound
		}

		return nil, errors.Wrap(err, "failed to find otp by user id")
	}

	return &entity.UserOTP{
		UserID:    otpM.UserID,
		Code:      otpM.Code,
		ExpiresAt: otpM.ExpiresAt,
		CreatedAt: otpM.CreatedAt,
	}, nil
}

// DeleteByUserID removes the user's code after successful verification.
func (repo *otpRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.UserOTPModel{}).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete otp")
	}

	return nil
}

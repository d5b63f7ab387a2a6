package impl

import (
	"context"
	"testing"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	mockRepo "storefront/internal/mocks/repository"
	mockSvc "storefront/internal/mocks/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// authServiceFixtures holds all test dependencies for auth service tests.
type authServiceFixtures struct {
	service      usecase.AuthUsecase
	txManager    *mockRepo.MockTransactionManager
	userRepo     *mockRepo.MockUserRepository
	otpRepo      *mockRepo.MockOTPRepository
	hasher       *mockSvc.MockPasswordHasher
	tokenService *mockSvc.MockTokenService
	mailer       *mockSvc.MockMailer
}

func createTestAuthService(t *testing.T) authServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	otpRepo := mockRepo.NewMockOTPRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	tokenService := mockSvc.NewMockTokenService(t)
	mailer := mockSvc.NewMockMailer(t)

	service := NewAuthService(AuthServiceParams{
		TxManager:    txManager,
		UserRepo:     userRepo,
		OTPRepo:      otpRepo,
		Hasher:       hasher,
		TokenService: tokenService,
		Mailer:       mailer,
		Logger:       newDiscardLogger(),
	})

	return authServiceFixtures{
		service:      service,
		txManager:    txManager,
		userRepo:     userRepo,
		otpRepo:      otpRepo,
		hasher:       hasher,
		tokenService: tokenService,
		mailer:       mailer,
	}
}

func registerInTx(t *testing.T, fx authServiceFixtures, ctx context.Context, userRepo *mockRepo.MockUserRepository) {
	t.Helper()

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockFactory.EXPECT().NewUserRepository().Return(userRepo)

			return fn(mockFactory)
		})
}

func TestAuthService_Register_WithPassword(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	input := usecase.RegisterInput{
		Name:     "Test User",
		Email:    "test@example.com",
		Password: "Password123!",
	}

	txUserRepo := mockRepo.NewMockUserRepository(t)
	registerInTx(t, fx, ctx, txUserRepo)

	txUserRepo.EXPECT().
		FindByEmail(ctx, input.Email).
		Return(nil, repository.ErrUserNotFound)

	fx.hasher.EXPECT().Hash(input.Password).Return("hashed_password", nil)

	txUserRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.User")).
		Run(func(ctx context.Context, user *entity.User) {
			assert.Equal(t, entity.RoleCustomer, user.Role)
			assert.NotNil(t, user.CustomerProfile)
			user.ID = uuid.New()
		}).
		Return(nil)

	fx.tokenService.EXPECT().
		GenerateToken(mock.AnythingOfType("*entity.User")).
		Return("signed.jwt.token", nil)

	output, err := fx.service.Register(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, "signed.jwt.token", output.Token)
	assert.Equal(t, input.Email, output.User.Email)
}

func TestAuthService_Register_WithoutPasswordIssuesOTP(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	input := usecase.RegisterInput{
		Name:  "Passwordless User",
		Email: "otp@example.com",
	}

	txUserRepo := mockRepo.NewMockUserRepository(t)
	registerInTx(t, fx, ctx, txUserRepo)

	txUserRepo.EXPECT().
		FindByEmail(ctx, input.Email).
		Return(nil, repository.ErrUserNotFound)

	txUserRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.User")).
		Run(func(ctx context.Context, user *entity.User) {
			assert.Nil(t, user.PasswordHash)
			user.ID = uuid.New()
		}).
		Return(nil)

	var issuedCode string
	fx.otpRepo.EXPECT().
		Upsert(ctx, mock.AnythingOfType("*entity.UserOTP")).
		Run(func(ctx context.Context, otp *entity.UserOTP) {
			assert.Len(t, otp.Code, 6)
			assert.True(t, otp.ExpiresAt.After(time.Now()))
			issuedCode = otp.Code
		}).
		Return(nil)

	fx.mailer.EXPECT().
		SendOTP(ctx, input.Email, mock.AnythingOfType("string")).
		Run(func(ctx context.Context, to string, code string) {
			assert.Equal(t, issuedCode, code)
		}).
		Return(nil)

	output, err := fx.service.Register(ctx, input)

	require.NoError(t, err)
	assert.Empty(t, output.Token)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	input := usecase.RegisterInput{Name: "Dup", Email: "dup@example.com", Password: "Password123!"}

	txUserRepo := mockRepo.NewMockUserRepository(t)
	registerInTx(t, fx, ctx, txUserRepo)

	txUserRepo.EXPECT().
		FindByEmail(ctx, input.Email).
		Return(&entity.User{ID: uuid.New(), Email: input.Email}, nil)

	output, err := fx.service.Register(ctx, input)

	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrEmailAlreadyExists)
}

func TestAuthService_Login_Success(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	hash := "hashed_password"
	user := &entity.User{
		ID:           uuid.New(),
		Email:        "test@example.com",
		PasswordHash: &hash,
		Role:         entity.RoleCustomer,
		Status:       entity.UserStatusActive,
	}

	fx.userRepo.EXPECT().FindByEmail(ctx, user.Email).Return(user, nil)
	fx.hasher.EXPECT().Check("Password123!", hash).Return(true)
	fx.tokenService.EXPECT().GenerateToken(user).Return("signed.jwt.token", nil)

	output, err := fx.service.Login(ctx, usecase.LoginInput{Email: user.Email, Password: "Password123!"})

	require.NoError(t, err)
	assert.Equal(t, "signed.jwt.token", output.Token)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	hash := "hashed_password"
	user := &entity.User{ID: uuid.New(), Email: "test@example.com", PasswordHash: &hash, Status: entity.UserStatusActive}

	fx.userRepo.EXPECT().FindByEmail(ctx, user.Email).Return(user, nil)
	fx.hasher.EXPECT().Check("wrong", hash).Return(false)

	output, err := fx.service.Login(ctx, usecase.LoginInput{Email: user.Email, Password: "wrong"})

	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmailLooksLikeBadCredentials(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()

	fx.userRepo.EXPECT().FindByEmail(ctx, "nobody@example.com").Return(nil, repository.ErrUserNotFound)

	output, err := fx.service.Login(ctx, usecase.LoginInput{Email: "nobody@example.com", Password: "whatever"})

	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_Login_PasswordlessAccount(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), Email: "otp@example.com", Status: entity.UserStatusActive}

	fx.userRepo.EXPECT().FindByEmail(ctx, user.Email).Return(user, nil)

	output, err := fx.service.Login(ctx, usecase.LoginInput{Email: user.Email, Password: "whatever"})

	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrPasswordLoginUnavailable)
}

func TestAuthService_Login_InactiveAccount(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	hash := "hashed_password"
	user := &entity.User{ID: uuid.New(), Email: "gone@example.com", PasswordHash: &hash, Status: entity.UserStatusInactive}

	fx.userRepo.EXPECT().FindByEmail(ctx, user.Email).Return(user, nil)
	fx.hasher.EXPECT().Check("Password123!", hash).Return(true)

	output, err := fx.service.Login(ctx, usecase.LoginInput{Email: user.Email, Password: "Password123!"})

	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func verifyOTPInTx(t *testing.T, fx authServiceFixtures, ctx context.Context, userRepo *mockRepo.MockUserRepository, otpRepo *mockRepo.MockOTPRepository) {
	t.Helper()

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockFactory.EXPECT().NewUserRepository().Return(userRepo)
			mockFactory.EXPECT().NewOTPRepository().Return(otpRepo)

			return fn(mockFactory)
		})
}

func TestAuthService_VerifyOTP_Success(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), Email: "otp@example.com", Role: entity.RoleCustomer, Status: entity.UserStatusActive}

	txUserRepo := mockRepo.NewMockUserRepository(t)
	txOTPRepo := mockRepo.NewMockOTPRepository(t)
	verifyOTPInTx(t, fx, ctx, txUserRepo, txOTPRepo)

	txUserRepo.EXPECT().FindByEmail(ctx, user.Email).Return(user, nil)
	txOTPRepo.EXPECT().
		FindByUserID(ctx, user.ID).
		Return(&entity.UserOTP{UserID: user.ID, Code: "123456", ExpiresAt: time.Now().Add(5 * time.Minute)}, nil)
	txOTPRepo.EXPECT().DeleteByUserID(ctx, user.ID).Return(nil)

	fx.tokenService.EXPECT().GenerateToken(user).Return("signed.jwt.token", nil)

	output, err := fx.service.VerifyOTP(ctx, usecase.VerifyOTPInput{Email: user.Email, Code: "123456"})

	require.NoError(t, err)
	assert.Equal(t, "signed.jwt.token", output.Token)
}

func TestAuthService_VerifyOTP_ExpiredCode(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), Email: "otp@example.com", Status: entity.UserStatusActive}

	txUserRepo := mockRepo.NewMockUserRepository(t)
	txOTPRepo := mockRepo.NewMockOTPRepository(t)
	verifyOTPInTx(t, fx, ctx, txUserRepo, txOTPRepo)

	txUserRepo.EXPECT().FindByEmail(ctx, user.Email).Return(user, nil)
	txOTPRepo.EXPECT().
		FindByUserID(ctx, user.ID).
		Return(&entity.UserOTP{UserID: user.ID, Code: "123456", ExpiresAt: time.Now().Add(-time.Minute)}, nil)

	output, err := fx.service.VerifyOTP(ctx, usecase.VerifyOTPInput{Email: user.Email, Code: "123456"})

	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrExpiredOTP)
}

func TestAuthService_VerifyOTP_CodeMismatch(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), Email: "otp@example.com", Status: entity.UserStatusActive}

	txUserRepo := mockRepo.NewMockUserRepository(t)
	txOTPRepo := mockRepo.NewMockOTPRepository(t)
	verifyOTPInTx(t, fx, ctx, txUserRepo, txOTPRepo)

	txUserRepo.EXPECT().FindByEmail(ctx, user.Email).Return(user, nil)
	txOTPRepo.EXPECT().
		FindByUserID(ctx, user.ID).
		Return(&entity.UserOTP{UserID: user.ID, Code: "123456", ExpiresAt: time.Now().Add(5 * time.Minute)}, nil)

	output, err := fx.service.VerifyOTP(ctx, usecase.VerifyOTPInput{Email: user.Email, Code: "654321"})

	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidOTP)
}

func TestAuthService_RequestOTP_UnknownEmail(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()

	fx.userRepo.EXPECT().FindByEmail(ctx, "nobody@example.com").Return(nil, repository.ErrUserNotFound)

	err := fx.service.RequestOTP(ctx, usecase.RequestOTPInput{Email: "nobody@example.com"})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

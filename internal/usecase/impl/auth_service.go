package impl

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const defaultOTPTTL = 15 * time.Minute

// authService implements the AuthUsecase interface.
type authService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	otpRepo      repository.OTPRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	mailer       service.Mailer
	otpTTL       time.Duration
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	OTPRepo      repository.OTPRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Mailer       service.Mailer
	Config       *config.Config
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	otpTTL := defaultOTPTTL
	if params.Config != nil && params.Config.Auth != nil && params.Config.Auth.OTPTTLMinutes > 0 {
		otpTTL = time.Duration(params.Config.Auth.OTPTTLMinutes) * time.Minute
	}

	return &authService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		otpRepo:      params.OTPRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		mailer:       params.Mailer,
		otpTTL:       otpTTL,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a customer account. With a password the account is
// immediately usable and a token is returned; without one a one-time code is
// issued instead.
func (srv *authService) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Info("Registering account", slog.String("email", input.Email))

	var registered *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		if _, err := userRepo.FindByEmail(ctx, input.Email); err == nil {
			return errors.Wrap(domainerrors.ErrEmailAlreadyExists, "email already registered")
		} else if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to check email uniqueness")
		}

		user := &entity.User{
			Name:            input.Name,
			Email:           input.Email,
			Phone:           input.Phone,
			Role:            entity.RoleCustomer,
			Status:          entity.UserStatusActive,
			CustomerProfile: &entity.CustomerProfile{},
		}

		if input.Password != "" {
			hash, err := srv.hasher.Hash(input.Password)
			if err != nil {
				return errors.Wrap(err, "failed to hash password during registration")
			}
			user.PasswordHash = &hash
		}

		if err := userRepo.Create(ctx, user); err != nil {
			return errors.Wrap(err, "failed to create user during registration")
		}

		registered = user

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute registration transaction")
	}

	if registered.PasswordHash == nil {
		// OTP-only account: the first login code is issued immediately.
		if err := srv.issueOTP(ctx, registered); err != nil {
			return nil, err
		}

		return &usecase.AuthOutput{User: registered}, nil
	}

	token, err := srv.tokenService.GenerateToken(registered)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate token after registration")
	}

	return &usecase.AuthOutput{Token: token, User: registered}, nil
}

// Login authenticates with email and password.
func (srv *authService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Debug("Starting login", slog.String("email", input.Email))

	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}

		return nil, errors.Wrap(err, "failed to load user for login")
	}

	if user.PasswordHash == nil {
		return nil, errors.Wrap(domainerrors.ErrPasswordLoginUnavailable, "account has no password")
	}

	// bcrypt check runs outside any transaction (CPU-bound).
	if !srv.hasher.Check(input.Password, *user.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	if !user.IsActive() {
		return nil, errors.Wrap(domainerrors.ErrForbidden, "account is inactive")
	}

	token, err := srv.tokenService.GenerateToken(user)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate token")
	}
	srv.log(ctx).Debug("Login succeeded", slog.Any("userID", user.ID))

	return &usecase.AuthOutput{Token: token, User: user}, nil
}

// RequestOTP issues a one-time code and emails it to the account.
func (srv *authService) RequestOTP(ctx context.Context, input usecase.RequestOTPInput) error {
	srv.log(ctx).Info("OTP requested", slog.String("email", input.Email))

	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(domainerrors.ErrUserNotFound, "no account for email")
		}

		return errors.Wrap(err, "failed to load user for otp request")
	}

	return srv.issueOTP(ctx, user)
}

// issueOTP generates a six-digit code, stores it with the configured expiry
// and emails it. A new code replaces any previous one.
func (srv *authService) issueOTP(ctx context.Context, user *entity.User) error {
	code, err := generateOTPCode()
	if err != nil {
		return errors.Wrap(err, "failed to generate otp code")
	}

	otp := &entity.UserOTP{
		UserID:    user.ID,
		Code:      code,
		ExpiresAt: time.Now().Add(srv.otpTTL),
	}
	if err := srv.otpRepo.Upsert(ctx, otp); err != nil {
		return errors.Wrap(err, "failed to store otp")
	}

	if err := srv.mailer.SendOTP(ctx, user.Email, code); err != nil {
		srv.log(ctx).Error("Failed to send otp email", slog.Any("userID", user.ID), slog.Any("error", err))

		return errors.Wrap(err, "failed to send otp email")
	}
	srv.log(ctx).Debug("OTP issued", slog.Any("userID", user.ID))

	return nil
}

// generateOTPCode returns a uniformly random six-digit code.
func generateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", errors.Wrap(err, "failed to read random source")
	}

	return fmt.Sprintf("%06d", n.Int64()), nil
}

// VerifyOTP exchanges a valid one-time code for a token. The code is deleted
// on success so it cannot be replayed.
func (srv *authService) VerifyOTP(ctx context.Context, input usecase.VerifyOTPInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Debug("Verifying OTP", slog.String("email", input.Email))

	var user *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()
		otpRepo := repoFactory.NewOTPRepository()

		found, err := userRepo.FindByEmail(ctx, input.Email)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrInvalidOTP, "no account for email")
			}

			return errors.Wrap(err, "failed to load user for otp verification")
		}

		otp, err := otpRepo.FindByUserID(ctx, found.ID)
		if err != nil {
			if errors.Is(err, repository.ErrOTPNotFound) {
				return errors.Wrap(domainerrors.ErrInvalidOTP, "no active code for account")
			}

			return errors.Wrap(err, "failed to load otp")
		}

		if otp.IsExpired(time.Now()) {
			return errors.Wrap(domainerrors.ErrExpiredOTP, "code has expired")
		}
		if otp.Code != input.Code {
			return errors.Wrap(domainerrors.ErrInvalidOTP, "code mismatch")
		}

		if err := otpRepo.DeleteByUserID(ctx, found.ID); err != nil {
			return errors.Wrap(err, "failed to consume otp")
		}

		user = found

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("OTP verification failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute otp verification transaction")
	}

	token, err := srv.tokenService.GenerateToken(user)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate token after otp verification")
	}

	return &usecase.AuthOutput{Token: token, User: user}, nil
}

package impl

import (
	"context"
	"log/slog"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// addressService implements the AddressUsecase interface.
type addressService struct {
	txManager   repository.TransactionManager
	addressRepo repository.AddressRepository
	logger      *slog.Logger
}

// AddressServiceParams holds dependencies for AddressService, injected by Fx.
type AddressServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	AddressRepo repository.AddressRepository
	Logger      *slog.Logger
}

// NewAddressService is the constructor for addressService.
func NewAddressService(params AddressServiceParams) usecase.AddressUsecase {
	return &addressService{
		txManager:   params.TxManager,
		addressRepo: params.AddressRepo,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *addressService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListAddresses retrieves the user's addresses.
func (srv *addressService) ListAddresses(ctx context.Context, userID uuid.UUID) ([]*entity.Address, error) {
	// Single query operation - use direct repository instance
	addresses, err := srv.addressRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list addresses")
	}

	return addresses, nil
}

// CreateAddress adds an address. Marking it default unsets the previous
// default of the same type in the same transaction.
func (srv *addressService) CreateAddress(ctx context.Context, userID uuid.UUID, input usecase.AddressInput) (*entity.Address, error) {
	srv.log(ctx).Debug("Creating address", slog.Any("userID", userID), slog.Any("type", input.Type))

	if !input.Type.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown address type")
	}

	address := buildAddressEntity(userID, input)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		addressRepo := repoFactory.NewAddressRepository()

		if input.IsDefault {
			if err := addressRepo.ClearDefault(ctx, userID, input.Type); err != nil {
				return errors.Wrap(err, "failed to clear previous default address")
			}
		}

		if err := addressRepo.Create(ctx, address); err != nil {
			return errors.Wrap(err, "failed to create address")
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute address creation transaction")
	}

	return address, nil
}

func buildAddressEntity(userID uuid.UUID, input usecase.AddressInput) *entity.Address {
	return &entity.Address{
		UserID:     userID,
		Type:       input.Type,
		Line1:      input.Line1,
		Line2:      input.Line2,
		City:       input.City,
		State:      input.State,
		PostalCode: input.PostalCode,
		Country:    input.Country,
		IsDefault:  input.IsDefault,
	}
}

// UpdateAddress replaces an address's fields.
func (srv *addressService) UpdateAddress(ctx context.Context, userID, addressID uuid.UUID, input usecase.AddressInput) (*entity.Address, error) {
	srv.log(ctx).Debug("Updating address", slog.Any("userID", userID), slog.Any("addressID", addressID))

	if !input.Type.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown address type")
	}

	var updated *entity.Address

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		addressRepo := repoFactory.NewAddressRepository()

		address, err := addressRepo.FindByID(ctx, userID, addressID)
		if err != nil {
			if errors.Is(err, repository.ErrAddressNotFound) {
				return errors.Wrap(domainerrors.ErrAddressNotFound, "address does not exist")
			}

			return errors.Wrap(err, "failed to load address")
		}

		if input.IsDefault && !address.IsDefault {
			if err := addressRepo.ClearDefault(ctx, userID, input.Type); err != nil {
				return errors.Wrap(err, "failed to clear previous default address")
			}
		}

		address.Type = input.Type
		address.Line1 = input.Line1
		address.Line2 = input.Line2
		address.City = input.City
		address.State = input.State
		address.PostalCode = input.PostalCode
		address.Country = input.Country
		address.IsDefault = input.IsDefault

		if err := addressRepo.Update(ctx, address); err != nil {
			return errors.Wrap(err, "failed to update address")
		}

		updated = address

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute address update transaction")
	}

	return updated, nil
}

// DeleteAddress removes an address.
func (srv *addressService) DeleteAddress(ctx context.Context, userID, addressID uuid.UUID) error {
	srv.log(ctx).Debug("Deleting address", slog.Any("userID", userID), slog.Any("addressID", addressID))

	if err := srv.addressRepo.Delete(ctx, userID, addressID); err != nil {
		if errors.Is(err, repository.ErrAddressNotFound) {
			return errors.Wrap(domainerrors.ErrAddressNotFound, "address does not exist")
		}

		return errors.Wrap(err, "failed to delete address")
	}

	return nil
}

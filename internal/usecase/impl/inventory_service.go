// Package impl contains the implementation of the application's business logic.
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

// inventoryService implements the InventoryUsecase interface.
type inventoryService struct {
	inventoryRepo repository.InventoryRepository
	productRepo   repository.ProductRepository
	logger        *slog.Logger
}

// InventoryServiceParams holds dependencies for InventoryService, injected by Fx.
type InventoryServiceParams struct {
	fx.In

	InventoryRepo repository.InventoryRepository
	ProductRepo   repository.ProductRepository
	Logger        *slog.Logger
}

// NewInventoryService is the constructor for inventoryService.
func NewInventoryService(params InventoryServiceParams) usecase.InventoryUsecase {
	return &inventoryService{
		inventoryRepo: params.InventoryRepo,
		productRepo:   params.ProductRepo,
		logger:        params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *inventoryService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetStock retrieves the inventory rows for a product.
func (srv *inventoryService) GetStock(ctx context.Context, productID uuid.UUID) ([]*entity.Inventory, error) {
	// Single query operation - use direct repository instance
	rows, err := srv.inventoryRepo.FindByProductID(ctx, productID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load inventory")
	}

	return rows, nil
}

// UpdateStock sets the absolute on-hand quantity for a product, creating the
// inventory row if none exists.
func (srv *inventoryService) UpdateStock(ctx context.Context, productID uuid.UUID, quantity int) (*entity.Inventory, error) {
	srv.log(ctx).Info("Updating stock", slog.Any("productID", productID), slog.Int("quantity", quantity))

	if quantity < 0 {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "quantity must not be negative")
	}

	if _, err := srv.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, errors.Wrap(domainerrors.ErrProductNotFound, "cannot set stock for unknown product")
		}

		return nil, errors.Wrap(err, "failed to load product for stock update")
	}

	inv, err := srv.inventoryRepo.UpsertQuantity(ctx, productID, quantity)
	if err != nil {
		srv.log(ctx).Error("Failed to upsert stock", slog.Any("productID", productID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to upsert stock")
	}

	return inv, nil
}

// ReserveStock holds qty units for a pending order. The repository performs a
// conditional update so concurrent reservations cannot exceed availability.
func (srv *inventoryService) ReserveStock(ctx context.Context, productID uuid.UUID, qty int) error {
	srv.log(ctx).Debug("Reserving stock", slog.Any("productID", productID), slog.Int("qty", qty))

	if qty <= 0 {
		return errors.Wrap(domainerrors.ErrValidationFailed, "reserve quantity must be positive")
	}

	if err := srv.inventoryRepo.Reserve(ctx, productID, qty); err != nil {
		if errors.Is(err, repository.ErrInsufficientStock) {
			return errors.Wrap(domainerrors.ErrInsufficientStock, "not enough available stock to reserve")
		}
		if errors.Is(err, repository.ErrInventoryNotFound) {
			return errors.Wrap(domainerrors.ErrInventoryNotFound, "no inventory row for product")
		}

		return errors.Wrap(err, "failed to reserve stock")
	}

	return nil
}

// ReleaseStock returns qty previously reserved units. The reserved count is
// floored at zero so double releases stay harmless.
func (srv *inventoryService) ReleaseStock(ctx context.Context, productID uuid.UUID, qty int) error {
	srv.log(ctx).Debug("Releasing stock", slog.Any("productID", productID), slog.Int("qty", qty))

	if qty <= 0 {
		return errors.Wrap(domainerrors.ErrValidationFailed, "release quantity must be positive")
	}

	if err := srv.inventoryRepo.Release(ctx, productID, qty); err != nil {
		if errors.Is(err, repository.ErrInventoryNotFound) {
			return errors.Wrap(domainerrors.ErrInventoryNotFound, "no inventory row for product")
		}

		return errors.Wrap(err, "failed to release stock")
	}

	return nil
}

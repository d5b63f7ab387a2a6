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

// cartService implements the CartUsecase interface.
type cartService struct {
	txManager repository.TransactionManager
	cartRepo  repository.CartRepository
	logger    *slog.Logger
}

// CartServiceParams holds dependencies for CartService, injected by Fx.
type CartServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	CartRepo  repository.CartRepository
	Logger    *slog.Logger
}

// NewCartService is the constructor for cartService.
func NewCartService(params CartServiceParams) usecase.CartUsecase {
	return &cartService{
		txManager: params.TxManager,
		cartRepo:  params.CartRepo,
		logger:    params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *cartService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetCart retrieves the user's cart with computed totals.
func (srv *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*entity.Cart, error) {
	// Single query operation - use direct repository instance
	items, err := srv.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load cart items")
	}

	return entity.NewCart(items), nil
}

// AddToCart adds a product to the user's cart. When the product is already in
// the cart the quantities are merged, and the merged quantity is validated
// against the product's available stock summed across its inventory rows.
func (srv *cartService) AddToCart(ctx context.Context, userID uuid.UUID, input usecase.AddToCartInput) (*entity.Cart, error) {
	srv.log(ctx).Debug("Adding to cart", slog.Any("userID", userID), slog.Any("productID", input.ProductID), slog.Int("quantity", input.Quantity))

	if input.Quantity <= 0 {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "quantity must be positive")
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.NewProductRepository()
		cartRepo := repoFactory.NewCartRepository()

		product, err := productRepo.FindByID(ctx, input.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return errors.Wrap(domainerrors.ErrProductNotFound, "cannot add unknown product to cart")
			}

			return errors.Wrap(err, "failed to load product for cart")
		}
		if !product.IsActive {
			return errors.Wrap(domainerrors.ErrProductNotFound, "product is not available")
		}

		requested := input.Quantity

		existing, err := cartRepo.FindItem(ctx, userID, input.ProductID)
		if err != nil && !errors.Is(err, repository.ErrCartItemNotFound) {
			return errors.Wrap(err, "failed to look up existing cart item")
		}
		if existing != nil {
			requested += existing.Quantity
		}

		if requested > product.AvailableStock() {
			return errors.Wrap(domainerrors.ErrInsufficientStock, "requested quantity exceeds available stock")
		}

		if existing != nil {
			if err := cartRepo.UpdateQuantity(ctx, existing.ID, requested); err != nil {
				return errors.Wrap(err, "failed to merge cart item quantity")
			}

			return nil
		}

		item := &entity.CartItem{
			UserID:    userID,
			ProductID: input.ProductID,
			Quantity:  input.Quantity,
		}
		if err := cartRepo.Create(ctx, item); err != nil {
			return errors.Wrap(err, "failed to create cart item")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to add to cart", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute add-to-cart transaction")
	}

	return srv.GetCart(ctx, userID)
}

// UpdateItem sets an item's quantity, removing the item when zero.
func (srv *cartService) UpdateItem(ctx context.Context, userID uuid.UUID, input usecase.UpdateCartItemInput) (*entity.Cart, error) {
	srv.log(ctx).Debug("Updating cart item", slog.Any("userID", userID), slog.Any("itemID", input.ItemID), slog.Int("quantity", input.Quantity))

	if input.Quantity < 0 {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "quantity must not be negative")
	}

	if input.Quantity == 0 {
		return srv.RemoveItem(ctx, userID, input.ItemID)
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		cartRepo := repoFactory.NewCartRepository()
		productRepo := repoFactory.NewProductRepository()

		item, err := cartRepo.FindItemByID(ctx, userID, input.ItemID)
		if err != nil {
			if errors.Is(err, repository.ErrCartItemNotFound) {
				return errors.Wrap(domainerrors.ErrCartItemNotFound, "cart item does not exist")
			}

			return errors.Wrap(err, "failed to load cart item")
		}

		product, err := productRepo.FindByID(ctx, item.ProductID)
		if err != nil {
			return errors.Wrap(err, "failed to load product for cart item")
		}
		if input.Quantity > product.AvailableStock() {
			return errors.Wrap(domainerrors.ErrInsufficientStock, "requested quantity exceeds available stock")
		}

		if err := cartRepo.UpdateQuantity(ctx, item.ID, input.Quantity); err != nil {
			return errors.Wrap(err, "failed to update cart item quantity")
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute cart update transaction")
	}

	return srv.GetCart(ctx, userID)
}

// RemoveItem deletes a single item from the cart.
func (srv *cartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*entity.Cart, error) {
	// Single operation - use direct repository instance
	if err := srv.cartRepo.Delete(ctx, userID, itemID); err != nil {
		if errors.Is(err, repository.ErrCartItemNotFound) {
			return nil, errors.Wrap(domainerrors.ErrCartItemNotFound, "cart item does not exist")
		}

		return nil, errors.Wrap(err, "failed to delete cart item")
	}

	return srv.GetCart(ctx, userID)
}

// ClearCart empties the cart.
func (srv *cartService) ClearCart(ctx context.Context, userID uuid.UUID) error {
	srv.log(ctx).Debug("Clearing cart", slog.Any("userID", userID))

	// Single operation - use direct repository instance
	if err := srv.cartRepo.Clear(ctx, userID); err != nil {
		return errors.Wrap(err, "failed to clear cart")
	}

	return nil
}

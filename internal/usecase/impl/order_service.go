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

// orderService implements the OrderUsecase interface.
type orderService struct {
	txManager repository.TransactionManager
	orderRepo repository.OrderRepository
	userRepo  repository.UserRepository
	logger    *slog.Logger
}

// OrderServiceParams holds dependencies for OrderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	OrderRepo repository.OrderRepository
	UserRepo  repository.UserRepository
	Logger    *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		txManager: params.TxManager,
		orderRepo: params.OrderRepo,
		userRepo:  params.UserRepo,
		logger:    params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetOrder retrieves an order with its items and payments.
func (srv *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	// Single query operation - use direct repository instance
	order, err := srv.orderRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, errors.Wrap(domainerrors.ErrOrderNotFound, "order does not exist")
		}

		return nil, errors.Wrap(err, "failed to load order")
	}

	return order, nil
}

// ListOrders retrieves a page of orders matching the filter.
func (srv *orderService) ListOrders(ctx context.Context, input usecase.ListOrdersInput) (*usecase.OrderListOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	page := input.Page
	if page <= 0 {
		page = 1
	}

	filter := repository.OrderListFilter{
		UserID:          input.UserID,
		DeliveryAgentID: input.DeliveryAgentID,
		Status:          input.Status,
		Offset:          (page - 1) * limit,
		Limit:           limit,
	}

	orders, total, err := srv.orderRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return &usecase.OrderListOutput{Orders: orders, Total: total}, nil
}

// UpdateStatus transitions an order. Cancelling a pending order releases the
// stock it had reserved.
func (srv *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) (*entity.Order, error) {
	srv.log(ctx).Info("Updating order status", slog.Any("orderID", id), slog.Any("status", status))

	if !status.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown order status")
	}

	var updated *entity.Order

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.NewOrderRepository()

		order, err := orderRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return errors.Wrap(domainerrors.ErrOrderNotFound, "order does not exist")
			}

			return errors.Wrap(err, "failed to load order for status update")
		}

		if status == entity.OrderStatusCancelled && order.Status == entity.OrderStatusPending {
			inventoryRepo := repoFactory.NewInventoryRepository()
			for _, item := range order.Items {
				if err := inventoryRepo.Release(ctx, item.ProductID, item.Quantity); err != nil &&
					!errors.Is(err, repository.ErrInventoryNotFound) {
					return errors.Wrap(err, "failed to release reserved stock on cancel")
				}
			}
		}

		if err := orderRepo.UpdateStatus(ctx, id, status); err != nil {
			return errors.Wrap(err, "failed to update order status")
		}

		order.Status = status
		updated = order

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to update order status", slog.Any("orderID", id), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute order status transaction")
	}

	return updated, nil
}

// AssignDeliveryAgent attaches a delivery agent to the order. The target user
// must hold a delivery agent role.
func (srv *orderService) AssignDeliveryAgent(ctx context.Context, orderID, agentID uuid.UUID) (*entity.Order, error) {
	srv.log(ctx).Info("Assigning delivery agent", slog.Any("orderID", orderID), slog.Any("agentID", agentID))

	agent, err := srv.userRepo.FindByID(ctx, agentID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "delivery agent does not exist")
		}

		return nil, errors.Wrap(err, "failed to load delivery agent")
	}
	if !agent.Role.Can(entity.CapDeliverOrders) {
		return nil, errors.Wrap(domainerrors.ErrNotDeliveryAgent, "user cannot deliver orders")
	}

	if err := srv.orderRepo.AssignDeliveryAgent(ctx, orderID, agentID); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, errors.Wrap(domainerrors.ErrOrderNotFound, "order does not exist")
		}

		return nil, errors.Wrap(err, "failed to assign delivery agent")
	}

	return srv.GetOrder(ctx, orderID)
}

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
)

// orderRepository implements the domain.OrderRepository interface using GORM.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

// FindByID retrieves an order with its items and payments.
func (repo *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel
	err := repo.db.WithContext(ctx).
		Preload("Items").
		Preload("Payments").
		First(&orderM, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by id")
	}

	return toOrderDomain(&orderM), nil
}

// FindByOrderNumber retrieves an order by its human-readable number.
func (repo *orderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*entity.Order, error) {
	var orderM model.OrderModel
	err := repo.db.WithContext(ctx).
		Preload("Items").
		Preload("Payments").
		First(&orderM, "order_number = ?", orderNumber).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by order number")
	}

	return toOrderDomain(&orderM), nil
}

// List retrieves orders matching the filter, newest first, together with the
// total count before pagination.
func (repo *orderRepository) List(ctx context.Context, filter repository.OrderListFilter) ([]*entity.Order, int64, error) {
	query := repo.db.WithContext(ctx).Model(&model.OrderModel{})
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.DeliveryAgentID != nil {
		query = query.Where("delivery_agent_id = ?", *filter.DeliveryAgentID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count orders")
	}

	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var orderMs []*model.OrderModel
	err := query.
		Preload("Items").
		Preload("Payments").
		Order("created_at DESC").
		Find(&orderMs).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list orders")
	}

	orders := make([]*entity.Order, 0, len(orderMs))
	for _, orderM := range orderMs {
		orders = append(orders, toOrderDomain(orderM))
	}

	return orders, total, nil
}

// CountByUser returns how many orders the user has placed.
func (repo *orderRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := repo.db.WithContext(ctx).Model(&model.OrderModel{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to count orders by user")
	}

	return count, nil
}

// Create persists a new order with its items and payments in one statement batch.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("order number already exists")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("invalid order reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	// Write the generated identifiers and timestamps back to the entity.
	order.ID = orderM.ID
	order.CreatedAt = orderM.CreatedAt
	order.UpdatedAt = orderM.UpdatedAt
	for i, itemM := range orderM.Items {
		order.Items[i].ID = itemM.ID
		order.Items[i].OrderID = itemM.OrderID
	}
	for i, paymentM := range orderM.Payments {
		order.Payments[i].ID = paymentM.ID
		order.Payments[i].OrderID = paymentM.OrderID
		order.Payments[i].CreatedAt = paymentM.CreatedAt
		order.Payments[i].UpdatedAt = paymentM.UpdatedAt
	}

	return nil
}

// UpdateStatus transitions the order to the given status.
func (repo *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error {
	result := repo.db.WithContext(ctx).Model(&model.OrderModel{}).
		Where("id = ?", id).
		Update("status", string(status))
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update order status")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// AssignDeliveryAgent sets the delivery agent on the order.
func (repo *orderRepository) AssignDeliveryAgent(ctx context.Context, id, agentID uuid.UUID) error {
	result := repo.db.WithContext(ctx).Model(&model.OrderModel{}).
		Where("id = ?", id).
		Update("delivery_agent_id", agentID)
	if result.Error != nil {
		if isForeignKeyConstraintViolation(result.Error) {
			return repository.ErrUserNotFound
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to assign delivery agent")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// UpdatePayment modifies a payment record attached to an order.
func (repo *orderRepository) UpdatePayment(ctx context.Context, payment *entity.Payment) error {
	result := repo.db.WithContext(ctx).Model(&model.PaymentModel{}).
		Where("id = ?", payment.ID).
		Updates(map[string]any{
			"status":         string(payment.Status),
			"transaction_id": payment.TransactionID,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update payment")
	}
	if result.RowsAffected == 0 {
		return repository.ErrPaymentNotFound
	}

	return nil
}

// FindPaymentByTransactionID retrieves a payment by the gateway's transaction
// identifier.
func (repo *orderRepository) FindPaymentByTransactionID(ctx context.Context, transactionID string) (*entity.Payment, error) {
	var paymentM model.PaymentModel
	err := repo.db.WithContext(ctx).
		First(&paymentM, "transaction_id = ?", transactionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPaymentNotFound
		}

		return nil, errors.Wrap(err, "failed to find payment by transaction id")
	}

	return toPaymentDomain(&paymentM), nil
}

// --- Mapper Functions ---

// toOrderDomain converts a GORM OrderModel to a domain Order entity.
func toOrderDomain(data *model.OrderModel) *entity.Order {
	if data == nil {
		return nil
	}

	items := make([]*entity.OrderItem, 0, len(data.Items))
	for _, itemM := range data.Items {
		items = append(items, &entity.OrderItem{
			ID:        itemM.ID,
			OrderID:   itemM.OrderID,
			ProductID: itemM.ProductID,
			Quantity:  itemM.Quantity,
			Price:     itemM.Price,
			Total:     itemM.Total,
		})
	}

	payments := make([]*entity.Payment, 0, len(data.Payments))
	for _, paymentM := range data.Payments {
		payments = append(payments, toPaymentDomain(paymentM))
	}

	return &entity.Order{
		ID:              data.ID,
		UserID:          data.UserID,
		OrderNumber:     data.OrderNumber,
		Status:          entity.OrderStatus(data.Status),
		TotalAmount:     data.TotalAmount,
		DiscountAmount:  data.DiscountAmount,
		TaxAmount:       data.TaxAmount,
		ShippingCost:    data.ShippingCost,
		ShippingAddress: data.ShippingAddress,
		BillingAddress:  data.BillingAddress,
		DeliveryAgentID: data.DeliveryAgentID,
		Items:           items,
		Payments:        payments,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

// fromOrderDomain converts a domain Order entity to a GORM OrderModel with
// its owned items and payments.
func fromOrderDomain(data *entity.Order) *model.OrderModel {
	if data == nil {
		return nil
	}

	items := make([]*model.OrderItemModel, 0, len(data.Items))
	for _, item := range data.Items {
		items = append(items, &model.OrderItemModel{
			ID:        item.ID,
			OrderID:   item.OrderID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Total:     item.Total,
		})
	}

	payments := make([]*model.PaymentModel, 0, len(data.Payments))
	for _, payment := range data.Payments {
		payments = append(payments, &model.PaymentModel{
			ID:            payment.ID,
			OrderID:       payment.OrderID,
			Amount:        payment.Amount,
			Method:        payment.Method,
			Status:        string(payment.Status),
			TransactionID: payment.TransactionID,
		})
	}

	return &model.OrderModel{
		ID:              data.ID,
		UserID:          data.UserID,
		OrderNumber:     data.OrderNumber,
		Status:          string(data.Status),
		TotalAmount:     data.TotalAmount,
		DiscountAmount:  data.DiscountAmount,
		TaxAmount:       data.TaxAmount,
		ShippingCost:    data.ShippingCost,
		ShippingAddress: data.ShippingAddress,
		BillingAddress:  data.BillingAddress,
		DeliveryAgentID: data.DeliveryAgentID,
		Items:           items,
		Payments:        payments,
	}
}

// toPaymentDomain converts a GORM PaymentModel to a domain Payment entity.
func toPaymentDomain(data *model.PaymentModel) *entity.Payment {
	if data == nil {
		return nil
	}

	return &entity.Payment{
		ID:            data.ID,
		OrderID:       data.OrderID,
		Amount:        data.Amount,
		Method:        data.Method,
		Status:        entity.PaymentStatus(data.Status),
		TransactionID: data.TransactionID,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}

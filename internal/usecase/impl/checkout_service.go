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
	"storefront/internal/util"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const defaultCurrency = "usd"

// checkoutService implements the CheckoutUsecase interface.
type checkoutService struct {
	txManager     repository.TransactionManager
	orderRepo     repository.OrderRepository
	gateway       service.PaymentGateway
	couponUsecase usecase.CouponUsecase
	logger        *slog.Logger
}

// CheckoutServiceParams holds dependencies for CheckoutService, injected by Fx.
type CheckoutServiceParams struct {
	fx.In

	TxManager     repository.TransactionManager
	OrderRepo     repository.OrderRepository
	Gateway       service.PaymentGateway
	CouponUsecase usecase.CouponUsecase
	Logger        *slog.Logger
}

// NewCheckoutService is the constructor for checkoutService.
func NewCheckoutService(params CheckoutServiceParams) usecase.CheckoutUsecase {
	return &checkoutService{
		txManager:     params.TxManager,
		orderRepo:     params.OrderRepo,
		gateway:       params.Gateway,
		couponUsecase: params.CouponUsecase,
		logger:        params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *checkoutService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// checkoutLine is one priced line assembled from the purchase source.
type checkoutLine struct {
	productID uuid.UUID
	quantity  int
	price     float64
}

// CreatePaymentIntent prices the purchase, persists a pending order with a
// pending payment record, then opens a gateway intent. The source check runs
// before anything is written; a gateway failure leaves the pending order in
// place and surfaces the provider error verbatim.
func (srv *checkoutService) CreatePaymentIntent(ctx context.Context, userID uuid.UUID, input usecase.CheckoutInput) (*usecase.CheckoutOutput, error) {
	srv.log(ctx).Info("Creating payment intent", slog.Any("userID", userID), slog.Bool("fromCart", input.FromCart))

	if input.ProductID == nil && !input.FromCart {
		return nil, errors.Wrap(domainerrors.ErrCheckoutSourceMissing, "no purchase source provided")
	}

	var order *entity.Order

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		lines, err := srv.buildLines(ctx, repoFactory, userID, input)
		if err != nil {
			return err
		}

		subtotal := 0.0
		for _, line := range lines {
			subtotal += line.price * float64(line.quantity)
		}

		// ApplyCoupon commits in its own transaction; the usage record
		// survives even when a later checkout step fails.
		discount := 0.0
		if input.CouponCode != "" {
			applied, err := srv.couponUsecase.ApplyCoupon(ctx, userID, usecase.ApplyCouponInput{
				Code:        input.CouponCode,
				OrderAmount: subtotal,
			})
			if err != nil {
				return errors.Wrap(err, "failed to apply coupon at checkout")
			}
			discount = applied.DiscountAmount
		}

		inventoryRepo := repoFactory.NewInventoryRepository()
		for _, line := range lines {
			if err := inventoryRepo.Reserve(ctx, line.productID, line.quantity); err != nil {
				if errors.Is(err, repository.ErrInsufficientStock) {
					return errors.Wrap(domainerrors.ErrInsufficientStock, "not enough stock to reserve for checkout")
				}
				if errors.Is(err, repository.ErrInventoryNotFound) {
					return errors.Wrap(domainerrors.ErrInventoryNotFound, "no inventory row for ordered product")
				}

				return errors.Wrap(err, "failed to reserve stock for checkout")
			}
		}

		order = srv.buildOrder(userID, input, lines, subtotal, discount)

		if err := repoFactory.NewOrderRepository().Create(ctx, order); err != nil {
			return errors.Wrap(err, "failed to create pending order")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Checkout transaction failed", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute checkout transaction")
	}

	// Gateway call runs outside the transaction. On failure the pending
	// order is kept so the client can retry payment.
	intent, err := srv.gateway.CreatePaymentIntent(ctx, service.PaymentIntentInput{
		Amount:      order.TotalAmount,
		Currency:    defaultCurrency,
		OrderID:     order.ID.String(),
		OrderNumber: order.OrderNumber,
		UserID:      userID.String(),
	})
	if err != nil {
		srv.log(ctx).Error("Payment gateway rejected intent", slog.Any("orderID", order.ID), slog.Any("error", err))

		return nil, domainerrors.NewGatewayError(err, "")
	}

	payment := order.Payments[0]
	payment.TransactionID = &intent.ID
	if err := srv.orderRepo.UpdatePayment(ctx, payment); err != nil {
		return nil, errors.Wrap(err, "failed to attach transaction id to payment")
	}

	return &usecase.CheckoutOutput{
		Order:        order,
		ClientSecret: intent.ClientSecret,
		IntentID:     intent.ID,
	}, nil
}

// buildLines assembles the priced order lines from the cart or
// single-product source. The cart wins when both are set.
func (srv *checkoutService) buildLines(ctx context.Context, repoFactory repository.RepositoryFactory, userID uuid.UUID, input usecase.CheckoutInput) ([]checkoutLine, error) {
	productRepo := repoFactory.NewProductRepository()

	if !input.FromCart && input.ProductID != nil {
		qty := input.Quantity
		if qty <= 0 {
			qty = 1
		}

		product, err := productRepo.FindByID(ctx, *input.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return nil, errors.Wrap(domainerrors.ErrProductNotFound, "checkout product does not exist")
			}

			return nil, errors.Wrap(err, "failed to load checkout product")
		}

		return []checkoutLine{{productID: product.ID, quantity: qty, price: product.Price}}, nil
	}

	items, err := repoFactory.NewCartRepository().FindByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load cart for checkout")
	}
	if len(items) == 0 {
		return nil, errors.Wrap(domainerrors.ErrCartEmpty, "cannot check out an empty cart")
	}

	lines := make([]checkoutLine, 0, len(items))
	for _, item := range items {
		if item.Product == nil {
			return nil, errors.Wrap(domainerrors.ErrProductNotFound, "cart references a missing product")
		}
		lines = append(lines, checkoutLine{
			productID: item.ProductID,
			quantity:  item.Quantity,
			price:     item.Product.Price,
		})
	}

	return lines, nil
}

func (srv *checkoutService) buildOrder(userID uuid.UUID, input usecase.CheckoutInput, lines []checkoutLine, subtotal, discount float64) *entity.Order {
	order := &entity.Order{
		UserID:          userID,
		OrderNumber:     util.GenerateOrderNumber(),
		Status:          entity.OrderStatusPending,
		TotalAmount:     subtotal - discount,
		DiscountAmount:  discount,
		ShippingAddress: input.ShippingAddressID,
		BillingAddress:  input.BillingAddressID,
	}

	for _, line := range lines {
		order.Items = append(order.Items, &entity.OrderItem{
			ProductID: line.productID,
			Quantity:  line.quantity,
			Price:     line.price,
			Total:     line.price * float64(line.quantity),
		})
	}

	order.Payments = []*entity.Payment{{
		Amount: order.TotalAmount,
		Method: "stripe",
		Status: entity.PaymentStatusPending,
	}}

	return order
}

// ConfirmPayment marks the payment paid and its order confirmed, keyed by the
// gateway's transaction ID. The cart is intentionally left untouched; clients
// clear it themselves once the order is confirmed.
func (srv *checkoutService) ConfirmPayment(ctx context.Context, transactionID string) error {
	srv.log(ctx).Info("Confirming payment", slog.String("transactionID", transactionID))

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.NewOrderRepository()

		payment, err := orderRepo.FindPaymentByTransactionID(ctx, transactionID)
		if err != nil {
			if errors.Is(err, repository.ErrPaymentNotFound) {
				return errors.Wrap(domainerrors.ErrOrderNotFound, "no payment for transaction id")
			}

			return errors.Wrap(err, "failed to load payment by transaction id")
		}

		payment.Status = entity.PaymentStatusPaid
		if err := orderRepo.UpdatePayment(ctx, payment); err != nil {
			return errors.Wrap(err, "failed to mark payment paid")
		}

		if err := orderRepo.UpdateStatus(ctx, payment.OrderID, entity.OrderStatusConfirmed); err != nil {
			return errors.Wrap(err, "failed to confirm order")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to confirm payment", slog.String("transactionID", transactionID), slog.Any("error", err))

		return errors.Wrap(err, "failed to execute payment confirmation transaction")
	}

	return nil
}

// RefundPayment refunds the order's captured payment via the gateway and
// marks both records refunded.
func (srv *checkoutService) RefundPayment(ctx context.Context, orderID uuid.UUID) error {
	srv.log(ctx).Info("Refunding payment", slog.Any("orderID", orderID))

	order, err := srv.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return errors.Wrap(domainerrors.ErrOrderNotFound, "order does not exist")
		}

		return errors.Wrap(err, "failed to load order for refund")
	}

	var paid *entity.Payment
	for _, payment := range order.Payments {
		if payment.Status == entity.PaymentStatusPaid && payment.TransactionID != nil {
			paid = payment

			break
		}
	}
	if paid == nil {
		return errors.Wrap(domainerrors.ErrValidationFailed, "order has no captured payment to refund")
	}

	if _, err := srv.gateway.CreateRefund(ctx, *paid.TransactionID); err != nil {
		srv.log(ctx).Error("Payment gateway rejected refund", slog.Any("orderID", orderID), slog.Any("error", err))

		return domainerrors.NewGatewayError(err, "")
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.NewOrderRepository()

		paid.Status = entity.PaymentStatusRefunded
		if err := orderRepo.UpdatePayment(ctx, paid); err != nil {
			return errors.Wrap(err, "failed to mark payment refunded")
		}

		if err := orderRepo.UpdateStatus(ctx, order.ID, entity.OrderStatusRefunded); err != nil {
			return errors.Wrap(err, "failed to mark order refunded")
		}

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to execute refund transaction")
	}

	return nil
}

// CreatePaymentLink returns a shareable hosted payment page URL.
func (srv *checkoutService) CreatePaymentLink(ctx context.Context, input usecase.PaymentLinkInput) (string, error) {
	qty := input.Quantity
	if qty <= 0 {
		qty = 1
	}

	url, err := srv.gateway.CreatePaymentLink(ctx, input.PriceID, qty)
	if err != nil {
		srv.log(ctx).Error("Payment gateway rejected payment link", slog.Any("error", err))

		return "", domainerrors.NewGatewayError(err, "")
	}

	return url, nil
}

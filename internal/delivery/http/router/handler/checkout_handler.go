package handler

import (
	"log/slog"
	"net/http"

	"storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/response"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CheckoutHandler holds dependencies for checkout and payment handlers.
type CheckoutHandler struct {
	uc     usecase.CheckoutUsecase
	logger *slog.Logger
}

// NewCheckoutHandler is the constructor for CheckoutHandler, injected by Fx.
func NewCheckoutHandler(uc usecase.CheckoutUsecase, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		uc:     uc,
		logger: logger,
	}
}

// confirmPaymentRequest identifies the gateway intent to confirm.
type confirmPaymentRequest struct {
	TransactionID string `json:"transactionId"`
}

// CreatePaymentIntent prices the purchase, creates a pending order and opens
// a gateway payment intent.
func (h *CheckoutHandler) CreatePaymentIntent(c echo.Context) error {
	var input usecase.CheckoutInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid checkout input")
	}

	output, err := h.uc.CreatePaymentIntent(c.Request().Context(), middleware.UserID(c), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output)
}

// ConfirmPayment marks the payment paid and the order confirmed.
func (h *CheckoutHandler) ConfirmPayment(c echo.Context) error {
	var req confirmPaymentRequest
	if err := c.Bind(&req); err != nil || req.TransactionID == "" {
		return response.BindingError(c, "INVALID_INPUT", "Missing transaction id")
	}

	if err := h.uc.ConfirmPayment(c.Request().Context(), req.TransactionID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Payment confirmed"})
}

// RefundPayment refunds the paid payment of an order through the gateway.
func (h *CheckoutHandler) RefundPayment(c echo.Context) error {
	orderID, err := uuid.Parse(c.Param("orderId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid order id")
	}

	if err := h.uc.RefundPayment(c.Request().Context(), orderID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Payment refunded"})
}

// CreatePaymentLink returns a hosted payment page URL for a provider price.
func (h *CheckoutHandler) CreatePaymentLink(c echo.Context) error {
	var input usecase.PaymentLinkInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid payment link input")
	}

	url, err := h.uc.CreatePaymentLink(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, map[string]string{"url": url})
}

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

// CouponHandler holds dependencies for coupon handlers.
type CouponHandler struct {
	uc     usecase.CouponUsecase
	logger *slog.Logger
}

// NewCouponHandler is the constructor for CouponHandler, injected by Fx.
func NewCouponHandler(uc usecase.CouponUsecase, logger *slog.Logger) *CouponHandler {
	return &CouponHandler{
		uc:     uc,
		logger: logger,
	}
}

// ListCoupons returns every coupon for back-office management.
func (h *CouponHandler) ListCoupons(c echo.Context) error {
	coupons, err := h.uc.ListCoupons(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, coupons)
}

// CreateCoupon handles coupon creation.
func (h *CouponHandler) CreateCoupon(c echo.Context) error {
	var input usecase.CreateCouponInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid coupon input")
	}

	coupon, err := h.uc.CreateCoupon(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, coupon)
}

// UpdateCoupon handles coupon updates.
func (h *CouponHandler) UpdateCoupon(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid coupon id")
	}

	var input usecase.CreateCouponInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid coupon input")
	}

	coupon, err := h.uc.UpdateCoupon(c.Request().Context(), id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, coupon)
}

// DeleteCoupon handles coupon deletion.
func (h *CouponHandler) DeleteCoupon(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid coupon id")
	}

	if err := h.uc.DeleteCoupon(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Coupon deleted"})
}

// FindApplicableCoupons returns the coupons the authenticated user may still
// redeem.
func (h *CouponHandler) FindApplicableCoupons(c echo.Context) error {
	coupons, err := h.uc.FindApplicableCoupons(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, coupons)
}

// ApplyCoupon validates and redeems a coupon against an order amount.
func (h *CouponHandler) ApplyCoupon(c echo.Context) error {
	var input usecase.ApplyCouponInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid coupon input")
	}

	output, err := h.uc.ApplyCoupon(c.Request().Context(), middleware.UserID(c), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output)
}

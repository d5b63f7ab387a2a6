package handler

import (
	"log/slog"
	"net/http"

	"storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/response"
	"storefront/internal/domain/entity"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// OrderHandler holds dependencies for order management handlers.
type OrderHandler struct {
	uc     usecase.OrderUsecase
	logger *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler, injected by Fx.
func NewOrderHandler(uc usecase.OrderUsecase, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		uc:     uc,
		logger: logger,
	}
}

// updateOrderStatusRequest carries the target lifecycle state.
type updateOrderStatusRequest struct {
	Status entity.OrderStatus `json:"status"`
}

// assignAgentRequest identifies the delivery agent to assign.
type assignAgentRequest struct {
	AgentID uuid.UUID `json:"agentId"`
}

// GetOrder returns a single order with items and payments. Shoppers may only
// read their own orders.
func (h *OrderHandler) GetOrder(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid order id")
	}

	order, err := h.uc.GetOrder(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	if !middleware.UserRole(c).Can(entity.CapManageOrders) && order.UserID != middleware.UserID(c) {
		return response.Forbidden(c, "FORBIDDEN", "Not your order")
	}

	return response.Success(c, http.StatusOK, order)
}

// ListMyOrders returns the authenticated user's own orders.
func (h *OrderHandler) ListMyOrders(c echo.Context) error {
	userID := middleware.UserID(c)
	input := usecase.ListOrdersInput{
		UserID: &userID,
		Page:   queryInt(c, "page", 1),
		Limit:  queryInt(c, "limit", 0),
	}
	if raw := c.QueryParam("status"); raw != "" {
		status := entity.OrderStatus(raw)
		input.Status = &status
	}

	output, err := h.uc.ListOrders(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output)
}

// ListOrders returns a filtered order listing for back-office use.
func (h *OrderHandler) ListOrders(c echo.Context) error {
	input := usecase.ListOrdersInput{
		Page:  queryInt(c, "page", 1),
		Limit: queryInt(c, "limit", 0),
	}
	if raw := c.QueryParam("user_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "Invalid user id")
		}
		input.UserID = &id
	}
	if raw := c.QueryParam("agent_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "Invalid agent id")
		}
		input.DeliveryAgentID = &id
	}
	if raw := c.QueryParam("status"); raw != "" {
		status := entity.OrderStatus(raw)
		input.Status = &status
	}

	output, err := h.uc.ListOrders(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output)
}

// ListAssignedOrders returns the orders assigned to the authenticated
// delivery agent.
func (h *OrderHandler) ListAssignedOrders(c echo.Context) error {
	agentID := middleware.UserID(c)
	input := usecase.ListOrdersInput{
		DeliveryAgentID: &agentID,
		Page:            queryInt(c, "page", 1),
		Limit:           queryInt(c, "limit", 0),
	}
	if raw := c.QueryParam("status"); raw != "" {
		status := entity.OrderStatus(raw)
		input.Status = &status
	}

	output, err := h.uc.ListOrders(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output)
}

// UpdateStatus transitions an order's lifecycle state.
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid order id")
	}

	var req updateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}

	order, err := h.uc.UpdateStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order)
}

// AssignDeliveryAgent attaches a delivery agent to an order.
func (h *OrderHandler) AssignDeliveryAgent(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid order id")
	}

	var req assignAgentRequest
	if err := c.Bind(&req); err != nil || req.AgentID == uuid.Nil {
		return response.BindingError(c, "INVALID_INPUT", "Missing agent id")
	}

	order, err := h.uc.AssignDeliveryAgent(c.Request().Context(), id, req.AgentID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order)
}

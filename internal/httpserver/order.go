package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"shop-backend/internal/service"
	"shop-backend/internal/transport"
	"shop-backend/pkg/logging"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

func (h *OrderHTTP) PlaceOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.place")

	userID, err := GetID(c)
	if err != nil {
		l.Error("place_order_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, transport.ErrorResponse{Error: "unauthorized"})
	}

	order, err := h.Svc.PlaceOrder(ctx, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyCart):
			l.Warn("place_order_error", "status", 400, "reason", "empty cart")
			return c.JSON(http.StatusBadRequest, transport.ErrorResponse{Error: "Cart is empty"})
		case errors.Is(err, service.ErrValidation):
			l.Warn("place_order_error", "status", 400, "error", err)
			return c.JSON(http.StatusBadRequest, transport.ErrorResponse{Error: err.Error()})
		default:
			l.Error("place_order_error", "status", 500, "error", err)
			return c.JSON(http.StatusInternalServerError, transport.ErrorResponse{Error: "internal error"})
		}
	}

	l.Info("order placed", "order_id", order.ID, "total", order.Total)
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list")

	userID, err := GetID(c)
	if err != nil {
		l.Error("list_orders_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, transport.ErrorResponse{Error: "unauthorized"})
	}

	orders, err := h.Svc.ListOrders(ctx, userID)
	if err != nil {
		l.Error("list_orders_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, transport.ErrorResponse{Error: "internal error"})
	}

	return c.JSON(http.StatusOK, orders)
}

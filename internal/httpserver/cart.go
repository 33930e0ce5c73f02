package httpserver

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"shop-backend/internal/models"
	"shop-backend/internal/service"
	"shop-backend/internal/transport"
	"shop-backend/pkg/logging"
)

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	userID, err := GetID(c)
	if err != nil {
		l.Error("get_cart_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, transport.ErrorResponse{Error: "unauthorized"})
	}

	items, err := h.Svc.GetCart(ctx, userID)
	if err != nil {
		l.Error("get_cart_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, transport.ErrorResponse{Error: "internal error"})
	}

	return c.JSON(http.StatusOK, items)
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	userID, err := GetID(c)
	if err != nil {
		l.Error("add_to_cart_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, transport.ErrorResponse{Error: "unauthorized"})
	}

	var req transport.AddToCartRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, transport.ErrorResponse{Error: "invalid body"})
	}
	if req.Quantity == 0 || req.ProductID == uuid.Nil {
		l.Warn("add_to_cart_error", "status", 400)
		return c.JSON(http.StatusBadRequest, transport.ErrorResponse{Error: "quantity>0 and product_id required"})
	}

	item := models.CartItem{
		UserID:    userID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	}
	if err := h.Svc.AddToCart(ctx, &item); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			l.Warn("add_to_cart_error", "status", 404, "error", err)
			return c.JSON(http.StatusNotFound, transport.ErrorResponse{Error: "product not found"})
		case errors.Is(err, service.ErrValidation):
			l.Warn("add_to_cart_error", "status", 400, "error", err)
			return c.JSON(http.StatusBadRequest, transport.ErrorResponse{Error: err.Error()})
		default:
			l.Error("add_to_cart_error", "status", 500, "error", err)
			return c.JSON(http.StatusInternalServerError, transport.ErrorResponse{Error: "internal error"})
		}
	}

	l.Info("cart_item_added", "product_id", req.ProductID)
	return c.JSON(http.StatusCreated, item)
}

func (h *CartHTTP) DeleteOneFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.delete_one")

	userID, err := GetID(c)
	if err != nil {
		l.Error("delete_one_from_cart_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, transport.ErrorResponse{Error: "unauthorized"})
	}

	var req transport.DeleteCartItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("delete_one_from_cart_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, transport.ErrorResponse{Error: "invalid body"})
	}
	if req.ProductID == uuid.Nil {
		return c.JSON(http.StatusBadRequest, transport.ErrorResponse{Error: "product_id required"})
	}

	deleted, item, err := h.Svc.DeleteOneFromCart(ctx, req.ProductID, userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("delete_one_from_cart_not_found", "status", 404, "error", err)
			return c.JSON(http.StatusNotFound, transport.ErrorResponse{Error: "item not found"})
		}
		l.Error("delete_one_from_cart_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, transport.ErrorResponse{Error: "internal error"})
	}

	if deleted {
		return c.JSON(http.StatusOK, map[string]any{"deleted": true, "product_id": req.ProductID})
	}
	return c.JSON(http.StatusOK, item)
}

func (h *CartHTTP) DeleteAllFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.clear")

	userID, err := GetID(c)
	if err != nil {
		l.Error("delete_all_from_cart_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, transport.ErrorResponse{Error: "unauthorized"})
	}

	if err := h.Svc.DeleteAllFromCart(ctx, userID); err != nil {
		l.Error("delete_all_from_cart_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, transport.ErrorResponse{Error: "internal error"})
	}

	l.Info("cart cleared")
	return c.JSON(http.StatusOK, map[string]string{"status": "cart cleared"})
}

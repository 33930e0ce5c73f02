package httpserver

import (
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"shop-backend/internal/service"
	"shop-backend/internal/transport"
	"shop-backend/pkg/logging"
)

type CheckoutHTTP struct {
	Svc *service.CheckoutService
}

func (h *CheckoutHTTP) CreateCheckoutSession(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout.create_session")

	userID, err := GetID(c)
	if err != nil {
		l.Error("create_session_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, transport.ErrorResponse{Error: "unauthorized"})
	}

	orderID, err := uuid.Parse(c.Param("order_id"))
	if err != nil {
		l.Warn("create_session_error", "status", 400, "reason", "invalid order id")
		return c.JSON(http.StatusBadRequest, transport.ErrorResponse{Error: "invalid order id"})
	}

	url, err := h.Svc.CreateCheckoutSession(ctx, userID, orderID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			l.Warn("create_session_error", "status", 404, "order_id", orderID)
			return c.JSON(http.StatusNotFound, transport.ErrorResponse{Error: "Order not found"})
		case errors.Is(err, service.ErrAlreadyProcessed):
			l.Warn("create_session_error", "status", 400, "order_id", orderID)
			return c.JSON(http.StatusBadRequest, transport.ErrorResponse{Error: "Order already processed"})
		case errors.Is(err, service.ErrGatewayUnavailable):
			l.Error("create_session_error", "status", 502, "order_id", orderID, "error", err)
			return c.JSON(http.StatusBadGateway, transport.ErrorResponse{Error: "payment gateway unavailable"})
		default:
			l.Error("create_session_error", "status", 500, "error", err)
			return c.JSON(http.StatusInternalServerError, transport.ErrorResponse{Error: "internal error"})
		}
	}

	l.Info("checkout session created", "order_id", orderID)
	return c.JSON(http.StatusOK, transport.CheckoutSessionResponse{CheckoutURL: url})
}

// HandleWebhook receives provider callbacks. The body is passed to the
// service raw; nothing is parsed until the signature is verified.
func (h *CheckoutHTTP) HandleWebhook(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout.webhook")

	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		l.Warn("webhook_error", "status", 400, "reason", "unreadable body", "error", err)
		return c.JSON(http.StatusBadRequest, transport.ErrorResponse{Error: "invalid body"})
	}

	sigHeader := c.Request().Header.Get("Stripe-Signature")

	if err := h.Svc.HandleWebhook(ctx, payload, sigHeader); err != nil {
		if errors.Is(err, service.ErrInvalidSignature) {
			l.Warn("webhook_error", "status", 400, "reason", "invalid signature")
			return c.JSON(http.StatusBadRequest, transport.ErrorResponse{Error: "invalid signature"})
		}
		l.Error("webhook_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, transport.ErrorResponse{Error: "internal error"})
	}

	return c.NoContent(http.StatusOK)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"shop-backend/internal/models"
	"shop-backend/internal/mykafka"
	"shop-backend/internal/payment"
	"shop-backend/internal/repo"
	"shop-backend/pkg/logging"
)

// PaymentGateway is what the checkout flow needs from the provider adapter.
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, order *models.Order, items []payment.LineItem) (*payment.Session, error)
	ConstructEvent(payload []byte, sigHeader string) (*payment.Event, error)
}

type CheckoutService struct {
	Repo     *repo.GormRepo
	Gateway  PaymentGateway
	Producer EventPublisher
}

// CreateCheckoutSession builds provider line items from the order's captured
// prices and returns the hosted checkout URL. Order state is not touched;
// the order stays pending until the webhook confirms payment.
func (s *CheckoutService) CreateCheckoutSession(ctx context.Context, userID, orderID uuid.UUID) (string, error) {
	order, err := s.Repo.GetOrderForUser(ctx, orderID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("%w: order %s", ErrNotFound, orderID)
		}
		return "", err
	}

	if order.Status != models.OrderStatusPending {
		return "", fmt.Errorf("%w: order is %s", ErrAlreadyProcessed, order.Status)
	}

	items, err := s.Repo.GetOrderItems(ctx, orderID)
	if err != nil {
		return "", err
	}

	lineItems := make([]payment.LineItem, 0, len(items))
	for _, it := range items {
		name := ""
		if it.Product != nil {
			name = it.Product.Name
		}
		lineItems = append(lineItems, payment.LineItem{
			Name:       name,
			UnitAmount: int64(math.Round(it.Price * 100)),
			Quantity:   int64(it.Quantity),
		})
	}

	sess, err := s.Gateway.CreateCheckoutSession(ctx, order, lineItems)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}

	return sess.URL, nil
}

// HandleWebhook verifies the provider signature before the payload is parsed
// and applies the pending→paid transition for completed checkout sessions.
// Once the signature checks out the provider always gets a success response;
// a retry cannot fix an unknown order id, so the miss is logged and published
// instead of surfaced.
func (s *CheckoutService) HandleWebhook(ctx context.Context, payload []byte, sigHeader string) error {
	l := logging.FromContext(ctx)

	event, err := s.Gateway.ConstructEvent(payload, sigHeader)
	if err != nil {
		// The signature checked out but the payload did not parse; a retry
		// delivers the same bytes, so acknowledge and leave a trace.
		if errors.Is(err, payment.ErrMalformedPayload) {
			l.Warn("webhook payload unparseable", "error", err)
			return nil
		}
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	if event.Type != payment.EventCheckoutCompleted {
		l.Info("webhook event ignored", "event_type", event.Type)
		return nil
	}

	orderID, err := uuid.Parse(event.OrderID)
	if err != nil {
		l.Warn("webhook with missing or malformed order id", "order_id", event.OrderID)
		s.publishOrderMissing(ctx, event.OrderID)
		return nil
	}

	updated, err := s.Repo.TransitionOrderStatus(ctx, orderID, models.OrderStatusPending, models.OrderStatusPaid)
	if err != nil {
		return err
	}

	if !updated {
		// Either a duplicate delivery or an order this backend never saw.
		if _, lookupErr := s.Repo.GetOrder(ctx, orderID); lookupErr == nil {
			l.Info("duplicate payment confirmation", "order_id", orderID)
			return nil
		}
		l.Warn("payment confirmed for unknown order", "order_id", orderID)
		s.publishOrderMissing(ctx, event.OrderID)
		return nil
	}

	l.Info("order paid", "order_id", orderID)
	publish(ctx, s.Producer, mykafka.TopicOrderEvents, orderID.String(), map[string]any{
		"type":     "order_paid",
		"order_id": orderID,
	})
	return nil
}

func (s *CheckoutService) publishOrderMissing(ctx context.Context, orderID string) {
	publish(ctx, s.Producer, mykafka.TopicOrderEvents, orderID, map[string]any{
		"type":     "order_missing",
		"order_id": orderID,
	})
}

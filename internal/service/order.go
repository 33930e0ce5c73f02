package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"shop-backend/internal/models"
	"shop-backend/internal/mykafka"
	"shop-backend/internal/repo"
)

type OrderService struct {
	Repo      *repo.GormRepo
	Inventory *InventoryService
	Producer  EventPublisher
}

// PlaceOrder snapshots the user's cart into a pending order. The repository
// runs the whole conversion in one transaction; on success the cart is empty
// and post-commit hooks fire.
func (s *OrderService) PlaceOrder(ctx context.Context, userID uuid.UUID) (*models.Order, error) {
	order, err := s.Repo.PlaceOrder(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrEmptyCart) {
			return nil, fmt.Errorf("%w: %v", ErrEmptyCart, err)
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product not found", ErrValidation)
		}
		return nil, err
	}

	publish(ctx, s.Producer, mykafka.TopicOrderEvents, order.ID.String(), map[string]any{
		"type":     "order_created",
		"order_id": order.ID,
		"user_id":  userID,
		"total":    order.Total,
	})

	if s.Inventory != nil {
		for _, item := range order.Items {
			s.Inventory.StockChanged(ctx, item.ProductID)
		}
	}

	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	return s.Repo.ListOrders(ctx, userID)
}

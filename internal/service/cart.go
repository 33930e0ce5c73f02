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

type CartService struct {
	Repo     *repo.GormRepo
	Producer EventPublisher
}

func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	return s.Repo.GetCart(ctx, userID)
}

func (s *CartService) AddToCart(ctx context.Context, item *models.CartItem) error {
	if item.ProductID == uuid.Nil {
		return fmt.Errorf("product_id must not be nil: %w", ErrValidation)
	}
	if item.Quantity == 0 {
		return fmt.Errorf("quantity must be more than zero: %w", ErrValidation)
	}

	product, err := s.Repo.GetProduct(ctx, item.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("product not found: %w", ErrNotFound)
		}
		return err
	}
	if !product.Active {
		return fmt.Errorf("product is not available: %w", ErrValidation)
	}

	if err := s.Repo.AddToCart(ctx, item); err != nil {
		return err
	}

	publish(ctx, s.Producer, mykafka.TopicCartEvents, item.UserID.String(), map[string]any{
		"type":       "cart_item_added",
		"user_id":    item.UserID,
		"product_id": item.ProductID,
		"quantity":   item.Quantity,
	})
	return nil
}

func (s *CartService) DeleteOneFromCart(ctx context.Context, productID, userID uuid.UUID) (bool, *models.CartItem, error) {
	if productID == uuid.Nil {
		return false, nil, fmt.Errorf("product_id must not be nil: %w", ErrValidation)
	}

	deleted, item, err := s.Repo.DeleteOneFromCart(ctx, productID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil, fmt.Errorf("cart item not found: %w", ErrNotFound)
	}
	if err != nil {
		return false, nil, err
	}

	publish(ctx, s.Producer, mykafka.TopicCartEvents, userID.String(), map[string]any{
		"type":       "cart_item_removed",
		"user_id":    userID,
		"product_id": productID,
		"deleted":    deleted,
	})
	return deleted, item, nil
}

func (s *CartService) DeleteAllFromCart(ctx context.Context, userID uuid.UUID) error {
	if err := s.Repo.DeleteAllFromCart(ctx, userID); err != nil {
		return err
	}

	publish(ctx, s.Producer, mykafka.TopicCartEvents, userID.String(), map[string]any{
		"type":    "cart_cleared",
		"user_id": userID,
	})
	return nil
}

package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"shop-backend/internal/mykafka"
	"shop-backend/internal/repo"
	"shop-backend/pkg/logging"
)

// InventoryService owns the stock ledger hooks. The decrement itself happens
// inside the order-placement transaction; StockChanged runs after commit and
// raises the low-stock signal for the products that crossed the threshold.
type InventoryService struct {
	Repo              *repo.GormRepo
	Producer          EventPublisher
	LowStockThreshold uint
}

func (s *InventoryService) StockChanged(ctx context.Context, productID uuid.UUID) {
	inv, err := s.Repo.GetInventory(ctx, productID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logging.FromContext(ctx).Error("inventory lookup failed", "product_id", productID, "error", err)
		}
		return
	}

	if inv.Stock > s.LowStockThreshold {
		return
	}

	logging.FromContext(ctx).Warn("low stock",
		"product_id", productID,
		"stock", inv.Stock,
		"threshold", s.LowStockThreshold,
	)
	publish(ctx, s.Producer, mykafka.TopicInventoryEvents, productID.String(), map[string]any{
		"type":       "low_stock",
		"product_id": productID,
		"stock":      inv.Stock,
	})
}

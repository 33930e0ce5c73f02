package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"shop-backend/internal/models"
)

// decrementStock lowers the ledger row inside the caller's transaction with
// one guarded UPDATE, clamping at zero. Concurrent decrements each apply
// against the current row value, so none is lost. A product without a ledger
// row is left untracked: zero rows match and that is fine.
func decrementStock(tx *gorm.DB, productID uuid.UUID, qty uint) error {
	return tx.Model(&models.Inventory{}).
		Where("product_id = ?", productID).
		Update("stock", gorm.Expr("CASE WHEN stock >= ? THEN stock - ? ELSE 0 END", qty, qty)).Error
}

func (r *GormRepo) GetInventory(ctx context.Context, productID uuid.UUID) (*models.Inventory, error) {
	var inv models.Inventory
	if err := r.DB.WithContext(ctx).Where("product_id = ?", productID).First(&inv).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

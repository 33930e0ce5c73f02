package repo

import (
	"errors"

	"gorm.io/gorm"

	"shop-backend/internal/models"
)

// ErrEmptyCart is returned by PlaceOrder when the user's cart holds no items.
var ErrEmptyCart = errors.New("cart is empty")

type GormRepo struct {
	DB *gorm.DB
}

func (r *GormRepo) Migrate() error {
	return r.DB.AutoMigrate(
		&models.Product{},
		&models.Inventory{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	)
}

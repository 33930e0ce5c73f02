package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"shop-backend/internal/models"
)

// PlaceOrder converts the user's cart into an order inside one transaction:
// read cart, price items against the live product rows, create the order and
// its items, adjust the stock ledger, clear the cart. Either all of it
// happens or none of it does. The cart rows are read FOR UPDATE, so a second
// placement for the same user blocks here, re-reads an empty cart once the
// first commits, and fails with ErrEmptyCart instead of duplicating the
// order. Only the rows read at the start are deleted, so a line added
// concurrently survives for the next order.
func (r *GormRepo) PlaceOrder(ctx context.Context, userID uuid.UUID) (*models.Order, error) {
	var order models.Order

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var items []models.CartItem
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).Find(&items).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}

		var total float64
		orderItems := make([]models.OrderItem, 0, len(items))
		cartIDs := make([]uuid.UUID, 0, len(items))

		for _, it := range items {
			var p models.Product
			if err := tx.Where("id = ?", it.ProductID).First(&p).Error; err != nil {
				return err
			}

			total += float64(it.Quantity) * p.Price
			orderItems = append(orderItems, models.OrderItem{
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
				Price:     p.Price,
			})
			cartIDs = append(cartIDs, it.ID)
		}

		order = models.Order{
			UserID: userID,
			Status: models.OrderStatusPending,
			Total:  total,
			Items:  orderItems,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, it := range items {
			if err := decrementStock(tx, it.ProductID, it.Quantity); err != nil {
				return err
			}
		}

		return tx.Where("user_id = ? AND id IN ?", userID, cartIDs).
			Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) ListOrders(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	if err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Items.Product").
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) GetOrderForUser(ctx context.Context, orderID, userID uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) GetOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).Where("id = ?", orderID).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) GetOrderItems(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error) {
	var items []models.OrderItem
	if err := r.DB.WithContext(ctx).
		Where("order_id = ?", orderID).
		Preload("Product").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// TransitionOrderStatus applies a status-guarded update and reports whether
// a row changed. Zero rows means the order is missing or no longer in the
// `from` status, which makes duplicate webhook deliveries harmless.
func (r *GormRepo) TransitionOrderStatus(ctx context.Context, orderID uuid.UUID, from, to models.OrderStatus) (bool, error) {
	res := r.DB.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	ID          uuid.UUID `gorm:"primaryKey"         json:"id"`
	Name        string    `gorm:"not null"           json:"name"`
	Description string    `json:"description"`
	Price       float64   `gorm:"not null"           json:"price"`
	Active      bool      `gorm:"default:true"       json:"active"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (Product) TableName() string {
	return "products"
}

// Inventory is the stock ledger row for a product. Stock is adjusted inside
// the order-placement transaction and never goes below zero.
type Inventory struct {
	ID        uuid.UUID `gorm:"primaryKey"            json:"id"`
	ProductID uuid.UUID `gorm:"uniqueIndex;not null"  json:"product_id"`
	Stock     uint      `gorm:"default:0"             json:"stock"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (i *Inventory) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

func (Inventory) TableName() string {
	return "inventories"
}

type CartItem struct {
	ID        uuid.UUID `gorm:"primaryKey"                             json:"id"`
	UserID    uuid.UUID `gorm:"uniqueIndex:idx_user_product;not null"  json:"user_id"`
	ProductID uuid.UUID `gorm:"uniqueIndex:idx_user_product;not null"  json:"product_id"`
	Quantity  uint      `gorm:"default:1;check:quantity>0"             json:"quantity"`
}

func (c *CartItem) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (CartItem) TableName() string {
	return "cart_items"
}

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order is immutable after creation except for Status. Items keep the price
// captured at placement time, decoupled from the live product price.
type Order struct {
	ID        uuid.UUID   `gorm:"primaryKey"               json:"id"`
	UserID    uuid.UUID   `gorm:"index;not null"           json:"user_id"`
	CreatedAt time.Time   `gorm:"not null"                 json:"created_at"`
	Status    OrderStatus `gorm:"not null;default:pending" json:"status"`
	Total     float64     `gorm:"not null"                 json:"total"`
	Items     []OrderItem `gorm:"foreignKey:OrderID"       json:"items"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

func (Order) TableName() string {
	return "orders"
}

type OrderItem struct {
	ID        uuid.UUID `gorm:"primaryKey"                 json:"id"`
	OrderID   uuid.UUID `gorm:"index;not null"             json:"order_id"`
	ProductID uuid.UUID `gorm:"not null"                   json:"product_id"`
	Quantity  uint      `gorm:"check:quantity>0"           json:"quantity"`
	Price     float64   `gorm:"not null"                   json:"price"`
	Product   *Product  `gorm:"foreignKey:ProductID"       json:"product,omitempty"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

func (OrderItem) TableName() string {
	return "order_items"
}

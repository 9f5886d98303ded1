package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Customer struct {
	ID    uuid.UUID `gorm:"primaryKey"           json:"id"`
	Name  string    `gorm:"not null"             json:"name"`
	Email string    `gorm:"uniqueIndex;not null" json:"email"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type Product struct {
	ID          uuid.UUID `gorm:"primaryKey"           json:"id"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	Description string    `json:"description"`
	Price       float64   `gorm:"not null"             json:"price"`
	Quantity    uint      `json:"quantity"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type Order struct {
	ID         uuid.UUID   `gorm:"primaryKey"     json:"id"`
	CustomerID uuid.UUID   `gorm:"index;not null" json:"customer_id"`
	CreatedAt  int64       `gorm:"not null"       json:"created_at"`
	Items      []OrderItem `json:"items"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

type OrderItem struct {
	ID        uuid.UUID `gorm:"primaryKey"                 json:"id"`
	OrderID   uuid.UUID `gorm:"index;not null"             json:"order_id"`
	ProductID uuid.UUID `gorm:"not null"                   json:"product_id"`
	Quantity  uint      `gorm:"default:1;check:quantity>0" json:"quantity"`
	Price     float64   `gorm:"not null"                   json:"price"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// StockUpdate is one entry of a batch quantity write. Quantity is the new
// absolute value, not a delta.
type StockUpdate struct {
	ID       uuid.UUID
	Quantity uint
}

package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderPreparing OrderStatus = "PREPARING"
	OrderDelivered OrderStatus = "DELIVERED"
	OrderCancelled OrderStatus = "CANCELLED"
)

// Terminal reports whether no further status transition is allowed.
func (s OrderStatus) Terminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

type Order struct {
	ID         string `gorm:"primaryKey;size:64;not null"`
	ProviderID string `gorm:"size:64;index;not null"`
	SchoolID   string `gorm:"size:64;index;not null"`

	// At most one of the two is set; both empty means an anonymous POS sale.
	StudentID string `gorm:"size:64;index"`
	StaffID   string `gorm:"size:64;index"`

	CustomerName string `gorm:"size:128"`

	// Subsidy is folded into FinalAmount before persistence, so
	// FinalAmount == Subtotal + TaxAmount - subsidy at commit time.
	Subtotal    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TaxAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	FinalAmount decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	PaymentMethod PaymentMethod `gorm:"size:32;not null"`
	Status        OrderStatus   `gorm:"size:32;index;not null"` // PENDING, PREPARING, DELIVERED, CANCELLED

	CreatedAt time.Time
	UpdatedAt time.Time
}

type OrderItem struct {
	ID uint `gorm:"primaryKey"`
	// FK → orders.id
	OrderID string `gorm:"size:64;index;not null"`
	// FK → products.id
	ProductID   string          `gorm:"size:64;index;not null"`
	ProductName string          `gorm:"size:128;not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Quantity    int             `gorm:"not null"`
	// Preserves cart insertion order.
	Position int `gorm:"not null"`

	CreatedAt time.Time
}

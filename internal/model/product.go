package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID         string          `gorm:"primaryKey;size:64;not null"`
	ProviderID string          `gorm:"size:64;index;not null"`
	Name       string          `gorm:"size:128;not null"`
	Price      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Stock      int             `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Provider is the selling side of a catalog (cafeteria concession,
// marketplace vendor). TaxRate is a percentage applied to every sale.
type Provider struct {
	ID        string          `gorm:"primaryKey;size:64;not null"`
	Name      string          `gorm:"size:128;not null"`
	TaxRate   decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

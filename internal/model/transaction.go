package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "PENDING"
	TransactionPaid      TransactionStatus = "PAID"
	TransactionCancelled TransactionStatus = "CANCELLED"
	// Overdue is never stored; it is projected from PENDING + past due date.
	TransactionOverdue TransactionStatus = "OVERDUE"
)

// RecurringTransaction is one installment of a recurring charge
// (tuition, meal plan). TotalAmount is the stored base amount; late fees
// are computed on read and never written back.
type RecurringTransaction struct {
	ID          string            `gorm:"primaryKey;size:64;not null"`
	ScopeID     string            `gorm:"size:64;index;not null"` // student or staff account the charge bills against
	Description string            `gorm:"size:128"`
	TotalAmount decimal.Decimal   `gorm:"type:decimal(12,2);not null"`
	DueDate     time.Time         `gorm:"not null"`
	Status      TransactionStatus `gorm:"size:16;index;not null"` // PENDING, PAID, CANCELLED

	CreatedAt time.Time
	UpdatedAt time.Time
}

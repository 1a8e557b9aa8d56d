package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type AccountKind string

const (
	AccountStaff   AccountKind = "STAFF"
	AccountStudent AccountKind = "STUDENT"
)

// Account holds either a staff corporate-credit line or a pre-funded
// student balance, plus the PIN digest gating both.
type Account struct {
	ID          string      `gorm:"primaryKey;size:64;not null"`
	Kind        AccountKind `gorm:"size:16;index;not null"` // STAFF, STUDENT
	SchoolID    string      `gorm:"size:64;index;not null"`
	DisplayName string      `gorm:"size:128;not null"`

	// Staff credit line: CorporateDebt + newCharge <= CreditLimit.
	CreditLimit   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CorporateDebt decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	// Student wallet: Balance >= finalAmount.
	Balance decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	// bcrypt digest of the 4-digit PIN.
	PinHash string `gorm:"size:128;not null"`

	// FK → benefits.id; nil means no subsidy.
	BenefitID *string `gorm:"size:64"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Benefit is a subsidy policy attachable to a staff account. Both
// components apply additively to the taxed total.
type Benefit struct {
	ID         string          `gorm:"primaryKey;size:64;not null"`
	Name       string          `gorm:"size:128;not null"`
	Percentage decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	FixedOff   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt  time.Time
}

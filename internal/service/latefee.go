package service

import (
	"time"

	"campus-commerce/internal/model"

	"github.com/shopspring/decimal"
)

// DefaultLateFeeDailyRate is 0.2% simple interest per whole day overdue.
var DefaultLateFeeDailyRate = decimal.NewFromFloat(0.002)

// LateFeeProjection is the read-time view of a recurring transaction.
// The stored record is never mutated; the fee is recomputed from the due
// date and "now" on every read.
type LateFeeProjection struct {
	Status           model.TransactionStatus
	DaysLate         int
	LateFee          decimal.Decimal
	TotalWithLateFee decimal.Decimal
}

// ProjectLateFee derives the current status and accrued penalty for one
// recurring transaction. A due date in the future, or clock skew, yields
// zero days late.
func ProjectLateFee(tx *model.RecurringTransaction, dailyRate decimal.Decimal, now time.Time) LateFeeProjection {
	status := tx.Status
	if status == model.TransactionPending && tx.DueDate.Before(now) {
		status = model.TransactionOverdue
	}

	daysLate := 0
	if status == model.TransactionOverdue {
		if d := int(now.Sub(tx.DueDate).Hours() / 24); d > 0 {
			daysLate = d
		}
	}

	lateFee := tx.TotalAmount.Mul(dailyRate).Mul(decimal.NewFromInt(int64(daysLate)))

	return LateFeeProjection{
		Status:           status,
		DaysLate:         daysLate,
		LateFee:          lateFee,
		TotalWithLateFee: tx.TotalAmount.Add(lateFee),
	}
}

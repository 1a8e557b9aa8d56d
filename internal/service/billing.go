package service

import (
	"context"
	"fmt"
	"time"

	"campus-commerce/internal/model"
	"campus-commerce/internal/repository"

	"github.com/shopspring/decimal"
)

// TransactionView pairs a stored recurring transaction with its
// read-time late-fee projection.
type TransactionView struct {
	Transaction *model.RecurringTransaction
	Projection  LateFeeProjection
}

type BillingService interface {
	RecurringStatus(ctx context.Context, scopeID string, now time.Time) ([]TransactionView, error)
}

type billingServiceImpl struct {
	transactionRepo repository.TransactionRepository
	dailyRate       decimal.Decimal
}

func NewBillingService(transactionRepo repository.TransactionRepository, dailyRate decimal.Decimal) BillingService {
	return &billingServiceImpl{
		transactionRepo: transactionRepo,
		dailyRate:       dailyRate,
	}
}

// RecurringStatus projects current status and accrued late fee for every
// recurring transaction billed against the scope. The stored records are
// never touched.
func (s *billingServiceImpl) RecurringStatus(ctx context.Context, scopeID string, now time.Time) ([]TransactionView, error) {
	transactions, err := s.transactionRepo.ListByScope(ctx, scopeID)
	if err != nil {
		return nil, fmt.Errorf("list recurring transactions: %w", err)
	}

	views := make([]TransactionView, len(transactions))
	for i, tx := range transactions {
		views[i] = TransactionView{
			Transaction: tx,
			Projection:  ProjectLateFee(tx, s.dailyRate, now),
		}
	}

	return views, nil
}

package repository

import (
	"context"

	"campus-commerce/internal/model"

	"gorm.io/gorm"
)

type TransactionRepository interface {
	ListByScope(ctx context.Context, scopeID string) ([]*model.RecurringTransaction, error)
	Create(ctx context.Context, tx *model.RecurringTransaction) error
}

type transactionRepoImpl struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepoImpl{
		db: db,
	}
}

func (r *transactionRepoImpl) ListByScope(ctx context.Context, scopeID string) ([]*model.RecurringTransaction, error) {
	var transactions []*model.RecurringTransaction
	err := r.db.WithContext(ctx).
		Where("scope_id = ?", scopeID).
		Order("due_date asc").
		Find(&transactions).Error

	if err != nil {
		return nil, err
	}

	return transactions, nil
}

func (r *transactionRepoImpl) Create(ctx context.Context, transaction *model.RecurringTransaction) error {
	return r.db.WithContext(ctx).Create(transaction).Error
}

package repository

import (
	"context"
	"errors"

	"campus-commerce/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	// ErrBalanceConflict means a compare-and-set debit found less
	// balance than required (a concurrent sale won the funds).
	ErrBalanceConflict = errors.New("balance conflict")
	// ErrCreditConflict means a compare-and-set charge would push the
	// corporate debt past the credit limit.
	ErrCreditConflict = errors.New("credit conflict")
)

type AccountRepository interface {
	Get(ctx context.Context, tx *gorm.DB, accountID string) (*model.Account, error)
	GetBenefit(ctx context.Context, benefitID string) (*model.Benefit, error)
	// DebitBalance atomically subtracts amount from a student balance,
	// failing with ErrBalanceConflict when it would go negative. Must
	// run inside the commit transaction.
	DebitBalance(ctx context.Context, tx *gorm.DB, accountID string, amount decimal.Decimal) error
	// AddCorporateDebt atomically raises staff debt, failing with
	// ErrCreditConflict when the credit limit would be exceeded.
	AddCorporateDebt(ctx context.Context, tx *gorm.DB, accountID string, amount decimal.Decimal) error
}

type accountRepoImpl struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepoImpl{
		db: db,
	}
}

func (r *accountRepoImpl) Get(ctx context.Context, tx *gorm.DB, accountID string) (*model.Account, error) {
	if tx == nil {
		tx = r.db
	}

	var account model.Account
	err := tx.WithContext(ctx).
		Where("id = ?", accountID).
		First(&account).Error

	if err != nil {
		return nil, err
	}

	return &account, nil
}

func (r *accountRepoImpl) GetBenefit(ctx context.Context, benefitID string) (*model.Benefit, error) {
	var benefit model.Benefit
	err := r.db.WithContext(ctx).
		Where("id = ?", benefitID).
		First(&benefit).Error

	if err != nil {
		return nil, err
	}

	return &benefit, nil
}

// The money arithmetic stays in decimal: the row is read inside the
// transaction, the new amount is computed exactly, and the write is
// guarded on the value that was read. Subtracting in SQL would run the
// cents through floating point and drift off exact values.
func (r *accountRepoImpl) DebitBalance(ctx context.Context, tx *gorm.DB, accountID string, amount decimal.Decimal) error {
	account, err := r.Get(ctx, tx, accountID)
	if err != nil {
		return err
	}
	if account.Kind != model.AccountStudent || account.Balance.LessThan(amount) {
		return ErrBalanceConflict
	}

	result := tx.WithContext(ctx).Model(&model.Account{}).
		Where("id = ? AND balance = ?", accountID, account.Balance).
		Update("balance", account.Balance.Sub(amount))

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBalanceConflict
	}

	return nil
}

func (r *accountRepoImpl) AddCorporateDebt(ctx context.Context, tx *gorm.DB, accountID string, amount decimal.Decimal) error {
	account, err := r.Get(ctx, tx, accountID)
	if err != nil {
		return err
	}
	if account.Kind != model.AccountStaff || account.CorporateDebt.Add(amount).GreaterThan(account.CreditLimit) {
		return ErrCreditConflict
	}

	result := tx.WithContext(ctx).Model(&model.Account{}).
		Where("id = ? AND corporate_debt = ?", accountID, account.CorporateDebt).
		Update("corporate_debt", account.CorporateDebt.Add(amount))

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCreditConflict
	}

	return nil
}

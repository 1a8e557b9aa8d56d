package service

import (
	"errors"
	"fmt"

	"campus-commerce/internal/model"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrSessionNotFound = errors.New("pin session not found")
	ErrSessionExpired  = errors.New("pin session expired")
)

// InvalidQuantityError rejects a cart line before any pricing happens.
type InvalidQuantityError struct {
	ProductID string
	Quantity  int
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("invalid quantity %d for product %s", e.Quantity, e.ProductID)
}

// VisibilityError means the catalog is not purchasable for this school
// at this moment.
type VisibilityError struct {
	CatalogID string
	Reason    string
}

func (e *VisibilityError) Error() string {
	return fmt.Sprintf("catalog %s not available: %s", e.CatalogID, e.Reason)
}

// MethodNotAcceptedError means the chosen payment method is outside the
// catalog's accepted set.
type MethodNotAcceptedError struct {
	Method model.PaymentMethod
}

func (e *MethodNotAcceptedError) Error() string {
	return fmt.Sprintf("payment method %s not accepted by this catalog", e.Method)
}

// CreditLimitExceededError carries the exact shortfall so the operator
// can offer another method on the spot.
type CreditLimitExceededError struct {
	CreditLimit   decimal.Decimal
	CorporateDebt decimal.Decimal
	Requested     decimal.Decimal
	Shortfall     decimal.Decimal
}

func (e *CreditLimitExceededError) Error() string {
	return fmt.Sprintf("credit limit exceeded: limit %s, debt %s, requested %s, short by %s",
		e.CreditLimit.StringFixed(2), e.CorporateDebt.StringFixed(2),
		e.Requested.StringFixed(2), e.Shortfall.StringFixed(2))
}

type InsufficientBalanceError struct {
	Balance   decimal.Decimal
	Requested decimal.Decimal
	Shortfall decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: have %s, requested %s, short by %s",
		e.Balance.StringFixed(2), e.Requested.StringFixed(2), e.Shortfall.StringFixed(2))
}

// PinMismatchError is recoverable while AttemptsLeft > 0.
type PinMismatchError struct {
	AttemptsLeft int
}

func (e *PinMismatchError) Error() string {
	return fmt.Sprintf("pin mismatch, %d attempts left", e.AttemptsLeft)
}

// AccountLockedError is terminal for the checkout session.
type AccountLockedError struct {
	AccountID string
}

func (e *AccountLockedError) Error() string {
	return fmt.Sprintf("account %s locked after too many pin attempts", e.AccountID)
}

// InsufficientStockError is raised only at commit time when a concurrent
// sale won the remaining stock.
type InsufficientStockError struct {
	ProductID string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

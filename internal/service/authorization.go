package service

import (
	"fmt"
	"slices"

	"campus-commerce/internal/model"

	"github.com/shopspring/decimal"
)

// AuthorizePayment checks that the chosen method can cover finalAmount.
// It is a pure admission decision: no balance or debt is mutated here.
// The actual debit/charge happens atomically inside the order commit,
// after the PIN challenge (when required) has passed.
//
// acceptedMethods is the catalog's configured set; upstream UI filtering
// is re-validated here and never trusted on its own.
func AuthorizePayment(method model.PaymentMethod, finalAmount decimal.Decimal, account *model.Account, acceptedMethods []model.PaymentMethod) error {
	if len(acceptedMethods) == 0 {
		acceptedMethods = model.DefaultAcceptedMethods()
	}
	if !slices.Contains(acceptedMethods, method) {
		return &MethodNotAcceptedError{Method: method}
	}

	switch method {
	case model.PaymentCorporateCredit:
		if account == nil || account.Kind != model.AccountStaff {
			return fmt.Errorf("corporate credit requires a staff account")
		}
		projected := account.CorporateDebt.Add(finalAmount)
		if projected.GreaterThan(account.CreditLimit) {
			return &CreditLimitExceededError{
				CreditLimit:   account.CreditLimit,
				CorporateDebt: account.CorporateDebt,
				Requested:     finalAmount,
				Shortfall:     projected.Sub(account.CreditLimit),
			}
		}
	case model.PaymentStudentBalance:
		if account == nil || account.Kind != model.AccountStudent {
			return fmt.Errorf("student balance requires a student account")
		}
		if finalAmount.GreaterThan(account.Balance) {
			return &InsufficientBalanceError{
				Balance:   account.Balance,
				Requested: finalAmount,
				Shortfall: finalAmount.Sub(account.Balance),
			}
		}
	case model.PaymentCash, model.PaymentCreditCard, model.PaymentBankTransfer:
		// Settled outside the system, or at physical handoff. Nothing to check.
	default:
		return fmt.Errorf("unknown payment method %q", method)
	}

	return nil
}

package model

// PaymentMethod enumerates the settlement options a catalog may accept.
type PaymentMethod string

const (
	PaymentCorporateCredit PaymentMethod = "CORPORATE_CREDIT"
	PaymentStudentBalance  PaymentMethod = "STUDENT_BALANCE"
	PaymentCash            PaymentMethod = "CASH"
	PaymentCreditCard      PaymentMethod = "CREDIT_CARD"
	PaymentBankTransfer    PaymentMethod = "BANK_TRANSFER"
)

// RequiresPin reports whether the method draws on an account-held secret
// and therefore must pass the PIN challenge before commit.
func (m PaymentMethod) RequiresPin() bool {
	return m == PaymentCorporateCredit || m == PaymentStudentBalance
}

// DefaultAcceptedMethods is the fallback set for catalogs configured with
// no accepted methods at all.
func DefaultAcceptedMethods() []PaymentMethod {
	return []PaymentMethod{PaymentCreditCard, PaymentBankTransfer}
}

package service

import (
	"github.com/shopspring/decimal"
)

// CartItem is one line of an uncommitted cart. Order is insertion order.
type CartItem struct {
	ProductID   string
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int
}

// Subsidy is the active benefit applied to a purchase. Both components
// apply additively against the taxed total.
type Subsidy struct {
	Percentage  decimal.Decimal
	FixedAmount decimal.Decimal
}

// Pricing is the full money breakdown of a cart. All fields carry their
// unrounded values; Rounded() produces the two-decimal display form.
type Pricing struct {
	Subtotal      decimal.Decimal
	TaxAmount     decimal.Decimal
	OriginalTotal decimal.Decimal
	SubsidyValue  decimal.Decimal
	FinalAmount   decimal.Decimal
}

// Rounded returns the pricing with every amount rounded half-up to two
// decimals. Intermediate amounts are never rounded before the subsidy is
// applied, only here at the display/persistence boundary.
func (p Pricing) Rounded() Pricing {
	return Pricing{
		Subtotal:      p.Subtotal.Round(2),
		TaxAmount:     p.TaxAmount.Round(2),
		OriginalTotal: p.OriginalTotal.Round(2),
		SubsidyValue:  p.SubsidyValue.Round(2),
		FinalAmount:   p.FinalAmount.Round(2),
	}
}

var percentBase = decimal.NewFromInt(100)

// Price computes subtotal, tax, subsidy deduction and final amount for a
// cart. Pure function: same inputs always yield the same breakdown.
// The subsidy may exceed the taxed total; the final amount clamps at zero
// so the customer never pays a negative amount.
func Price(items []CartItem, taxRate decimal.Decimal, subsidy *Subsidy) (Pricing, error) {
	if len(items) == 0 {
		return Pricing{}, ErrEmptyCart
	}

	subtotal := decimal.Zero
	for _, item := range items {
		if item.Quantity <= 0 {
			return Pricing{}, &InvalidQuantityError{ProductID: item.ProductID, Quantity: item.Quantity}
		}
		subtotal = subtotal.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	taxAmount := subtotal.Mul(taxRate).Div(percentBase)
	originalTotal := subtotal.Add(taxAmount)

	subsidyValue := decimal.Zero
	if subsidy != nil {
		subsidyValue = subsidyValue.Add(originalTotal.Mul(subsidy.Percentage).Div(percentBase))
		subsidyValue = subsidyValue.Add(subsidy.FixedAmount)
	}

	finalAmount := originalTotal.Sub(subsidyValue)
	if finalAmount.IsNegative() {
		finalAmount = decimal.Zero
	}

	return Pricing{
		Subtotal:      subtotal,
		TaxAmount:     taxAmount,
		OriginalTotal: originalTotal,
		SubsidyValue:  subsidyValue,
		FinalAmount:   finalAmount,
	}, nil
}

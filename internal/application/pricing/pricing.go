// Package pricing computes document totals for proposals, carts and
// invoices. All arithmetic is decimal; rounding happens once, at display
// time, via Totals.Round.
package pricing

import (
	"github.com/hostify/hostify-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// LineItem is one quantity-times-price input line
type LineItem struct {
	Quantity  int
	UnitPrice decimal.Decimal
}

// Discount describes a percentage or fixed reduction on the subtotal
type Discount struct {
	Type  enum.DiscountType
	Value decimal.Decimal
}

// Totals holds the computed amounts at full precision
type Totals struct {
	SubTotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxAmount      decimal.Decimal
	Total          decimal.Decimal
}

// LineTotal returns the clamped quantity times clamped unit price for one line
func LineTotal(item LineItem) decimal.Decimal {
	qty := item.Quantity
	if qty < 0 {
		qty = 0
	}
	price := item.UnitPrice
	if price.IsNegative() {
		price = decimal.Zero
	}
	return price.Mul(decimal.NewFromInt(int64(qty)))
}

// Calculate computes subtotal, discount, tax and total for a set of lines.
// Negative quantities and prices count as zero; the discount is clamped to
// [0, subtotal]; tax never goes below zero.
func Calculate(items []LineItem, discount Discount, taxPercent decimal.Decimal) Totals {
	subTotal := decimal.Zero
	for _, item := range items {
		subTotal = subTotal.Add(LineTotal(item))
	}

	discountAmount := decimal.Zero
	switch discount.Type {
	case enum.DiscountTypePercentage:
		discountAmount = subTotal.Mul(discount.Value).Div(oneHundred)
	case enum.DiscountTypeFixed:
		discountAmount = discount.Value
	}
	if discountAmount.IsNegative() {
		discountAmount = decimal.Zero
	}
	if discountAmount.GreaterThan(subTotal) {
		discountAmount = subTotal
	}

	taxAmount := decimal.Zero
	if taxPercent.IsPositive() {
		taxAmount = subTotal.Sub(discountAmount).Mul(taxPercent).Div(oneHundred)
	}
	if taxAmount.IsNegative() {
		taxAmount = decimal.Zero
	}

	return Totals{
		SubTotal:       subTotal,
		DiscountAmount: discountAmount,
		TaxAmount:      taxAmount,
		Total:          subTotal.Sub(discountAmount).Add(taxAmount),
	}
}

// Round returns the 2-decimal display form of the totals
func (t Totals) Round() Totals {
	return Totals{
		SubTotal:       t.SubTotal.Round(2),
		DiscountAmount: t.DiscountAmount.Round(2),
		TaxAmount:      t.TaxAmount.Round(2),
		Total:          t.Total.Round(2),
	}
}

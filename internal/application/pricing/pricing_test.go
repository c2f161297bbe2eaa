package pricing

import (
	"math/rand"
	"testing"

	"github.com/hostify/hostify-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestCalculateReferenceScenario(t *testing.T) {
	items := []LineItem{
		{Quantity: 2, UnitPrice: d("9.99")},
		{Quantity: 1, UnitPrice: d("49.99")},
	}
	totals := Calculate(items, Discount{Type: enum.DiscountTypePercentage, Value: d("10")}, d("5"))

	assert.True(t, totals.SubTotal.Equal(d("69.97")), "subtotal = %s", totals.SubTotal)
	assert.True(t, totals.DiscountAmount.Equal(d("6.997")), "discount = %s", totals.DiscountAmount)
	assert.True(t, totals.TaxAmount.Equal(d("3.14865")), "tax = %s", totals.TaxAmount)

	rounded := totals.Round()
	assert.True(t, rounded.SubTotal.Equal(d("69.97")))
	assert.True(t, rounded.DiscountAmount.Equal(d("7.00")))
	assert.True(t, rounded.TaxAmount.Equal(d("3.15")))
	assert.True(t, rounded.Total.Equal(d("66.12")), "total = %s", rounded.Total)
}

func TestCalculateFixedDiscount(t *testing.T) {
	items := []LineItem{{Quantity: 1, UnitPrice: d("50.00")}}
	totals := Calculate(items, Discount{Type: enum.DiscountTypeFixed, Value: d("10")}, d("0"))

	assert.True(t, totals.DiscountAmount.Equal(d("10")))
	assert.True(t, totals.Total.Equal(d("40")))
}

func TestCalculateClampsNegativeInputs(t *testing.T) {
	items := []LineItem{
		{Quantity: -3, UnitPrice: d("9.99")},
		{Quantity: 2, UnitPrice: d("-5.00")},
		{Quantity: 1, UnitPrice: d("20.00")},
	}
	totals := Calculate(items, Discount{}, d("0"))

	assert.True(t, totals.SubTotal.Equal(d("20.00")), "negative lines count as zero, got %s", totals.SubTotal)
}

func TestCalculateDiscountNeverExceedsSubtotal(t *testing.T) {
	items := []LineItem{{Quantity: 1, UnitPrice: d("30.00")}}

	totals := Calculate(items, Discount{Type: enum.DiscountTypeFixed, Value: d("100")}, d("10"))
	assert.True(t, totals.DiscountAmount.Equal(d("30.00")))
	assert.True(t, totals.TaxAmount.IsZero())
	assert.True(t, totals.Total.IsZero())

	totals = Calculate(items, Discount{Type: enum.DiscountTypePercentage, Value: d("150")}, d("10"))
	assert.True(t, totals.DiscountAmount.Equal(d("30.00")))
	assert.True(t, totals.Total.IsZero())
}

func TestCalculateNegativeDiscountIgnored(t *testing.T) {
	items := []LineItem{{Quantity: 1, UnitPrice: d("25.00")}}
	totals := Calculate(items, Discount{Type: enum.DiscountTypeFixed, Value: d("-5")}, d("0"))

	assert.True(t, totals.DiscountAmount.IsZero())
	assert.True(t, totals.Total.Equal(d("25.00")))
}

func TestCalculateNegativeTaxIgnored(t *testing.T) {
	items := []LineItem{{Quantity: 1, UnitPrice: d("25.00")}}
	totals := Calculate(items, Discount{}, d("-8"))

	assert.True(t, totals.TaxAmount.IsZero())
	assert.True(t, totals.Total.Equal(d("25.00")))
}

func TestCalculateEmptyItems(t *testing.T) {
	totals := Calculate(nil, Discount{Type: enum.DiscountTypeFixed, Value: d("10")}, d("16"))

	assert.True(t, totals.SubTotal.IsZero())
	assert.True(t, totals.DiscountAmount.IsZero())
	assert.True(t, totals.TaxAmount.IsZero())
	assert.True(t, totals.Total.IsZero())
}

func TestCalculateIsPure(t *testing.T) {
	items := []LineItem{
		{Quantity: 3, UnitPrice: d("12.50")},
		{Quantity: 1, UnitPrice: d("99.00")},
	}
	discount := Discount{Type: enum.DiscountTypePercentage, Value: d("7.5")}

	first := Calculate(items, discount, d("16"))
	second := Calculate(items, discount, d("16"))

	assert.True(t, first.Total.Equal(second.Total))
	assert.True(t, first.SubTotal.Equal(second.SubTotal))
}

func TestCalculateInvariantsRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		var items []LineItem
		for n := rng.Intn(6); n >= 0; n-- {
			items = append(items, LineItem{
				Quantity:  rng.Intn(21) - 5,
				UnitPrice: decimal.NewFromFloat(rng.Float64()*200 - 20).Round(4),
			})
		}

		discount := Discount{
			Type:  enum.DiscountType(rng.Intn(2)),
			Value: decimal.NewFromFloat(rng.Float64()*150 - 20).Round(4),
		}
		taxPercent := decimal.NewFromFloat(rng.Float64()*40 - 10).Round(2)

		totals := Calculate(items, discount, taxPercent)

		require.False(t, totals.SubTotal.IsNegative(), "subtotal must be >= 0")
		require.False(t, totals.DiscountAmount.IsNegative(), "discount must be >= 0")
		require.False(t, totals.TaxAmount.IsNegative(), "tax must be >= 0")
		require.False(t, totals.Total.IsNegative(), "total must be >= 0")
		require.True(t, totals.DiscountAmount.LessThanOrEqual(totals.SubTotal),
			"discount must not exceed subtotal")
		require.True(t, totals.Total.Equal(totals.SubTotal.Sub(totals.DiscountAmount).Add(totals.TaxAmount)),
			"total must equal subtotal - discount + tax")
	}
}

// Package pricing computes line item subtotals from a per-gram price, a
// weight, and a pricing tier. All amounts are whole currency units.
package pricing

import (
	"github.com/aurumpos/backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// retailStep is the granularity retail unit prices are rounded up to.
var retailStep = decimal.NewFromInt(1000)

// EffectiveUnitPrice returns the per-gram price actually charged for the
// tier. Retail rounds up to the next multiple of 1000; bulk uses the
// price as given.
func EffectiveUnitPrice(unitPricePerGram float64, tier enums.Tier) decimal.Decimal {
	price := decimal.NewFromFloat(unitPricePerGram)
	if tier == enums.TierRetail {
		price = price.Div(retailStep).Ceil().Mul(retailStep)
	}
	return price
}

// Subtotal computes the integer subtotal for weightGrams of a material
// priced at unitPricePerGram under the given tier. The product is rounded
// to the nearest whole currency unit. Validating the weight is the
// caller's concern.
func Subtotal(unitPricePerGram float64, weightGrams float64, tier enums.Tier) int64 {
	price := EffectiveUnitPrice(unitPricePerGram, tier)
	return price.Mul(decimal.NewFromFloat(weightGrams)).Round(0).IntPart()
}

package services

import (
	"github.com/shopspring/decimal"

	"storefront/internal/models"
)

// Pricing policy: flat shipping fee waived above the free-shipping threshold,
// flat tax rate applied to the subtotal.
const (
	freeShippingThreshold = 100
	flatShippingFee       = 10
	taxRatePercent        = 10
)

// PriceBreakdown holds the four computed price fields of an order. It is
// derived from a cart snapshot and never mutated afterwards.
type PriceBreakdown struct {
	Subtotal      float64 `json:"subtotal"`
	ShippingPrice float64 `json:"shippingPrice"`
	TaxPrice      float64 `json:"taxPrice"`
	TotalPrice    float64 `json:"totalPrice"`
}

// ComputeBreakdown prices an order from its line items. Shipping is free when
// the subtotal exceeds 100, otherwise a flat 10; tax is 10% of the subtotal
// rounded to cents. All arithmetic is decimal-exact.
func ComputeBreakdown(items []models.OrderItem) PriceBreakdown {
	subtotal := decimal.Zero
	for _, item := range items {
		line := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(line)
	}

	shipping := decimal.NewFromInt(flatShippingFee)
	if subtotal.GreaterThan(decimal.NewFromInt(freeShippingThreshold)) {
		shipping = decimal.Zero
	}

	tax := subtotal.Mul(decimal.NewFromInt(taxRatePercent)).Div(decimal.NewFromInt(100)).Round(2)
	total := subtotal.Add(shipping).Add(tax)

	return PriceBreakdown{
		Subtotal:      toFloat(subtotal),
		ShippingPrice: toFloat(shipping),
		TaxPrice:      toFloat(tax),
		TotalPrice:    toFloat(total),
	}
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

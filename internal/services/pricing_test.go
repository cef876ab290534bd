package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"storefront/internal/models"
	"storefront/internal/services"
)

func items(pairs ...float64) []models.OrderItem {
	// pairs is (price, quantity) repeated.
	out := make([]models.OrderItem, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, models.OrderItem{Price: pairs[i], Quantity: int(pairs[i+1])})
	}
	return out
}

func TestComputeBreakdown_EmptyCart(t *testing.T) {
	breakdown := services.ComputeBreakdown(nil)

	assert.Equal(t, 0.0, breakdown.Subtotal)
	assert.Equal(t, 10.0, breakdown.ShippingPrice)
	assert.Equal(t, 0.0, breakdown.TaxPrice)
	assert.Equal(t, 10.0, breakdown.TotalPrice)
}

func TestComputeBreakdown_ShippingThreshold(t *testing.T) {
	// Exactly 100.00 still pays shipping.
	at := services.ComputeBreakdown(items(100.00, 1))
	assert.Equal(t, 100.00, at.Subtotal)
	assert.Equal(t, 10.0, at.ShippingPrice)

	// 100.01 crosses the threshold.
	above := services.ComputeBreakdown(items(100.01, 1))
	assert.Equal(t, 100.01, above.Subtotal)
	assert.Equal(t, 0.0, above.ShippingPrice)
}

func TestComputeBreakdown_EndToEnd(t *testing.T) {
	// 2 x 30.00 + 1 x 45.00 = 105.00, free shipping, 10% tax.
	breakdown := services.ComputeBreakdown(items(30.00, 2, 45.00, 1))

	assert.Equal(t, 105.00, breakdown.Subtotal)
	assert.Equal(t, 0.0, breakdown.ShippingPrice)
	assert.Equal(t, 10.50, breakdown.TaxPrice)
	assert.Equal(t, 115.50, breakdown.TotalPrice)
}

func TestComputeBreakdown_TaxRounding(t *testing.T) {
	// 3 x 9.99 = 29.97, tax 2.997 rounds to 3.00.
	breakdown := services.ComputeBreakdown(items(9.99, 3))

	assert.Equal(t, 29.97, breakdown.Subtotal)
	assert.Equal(t, 3.00, breakdown.TaxPrice)
	assert.Equal(t, 42.97, breakdown.TotalPrice)
}

func TestComputeBreakdown_MonotonicInQuantity(t *testing.T) {
	// Increasing any quantity never decreases the total, even where the
	// shipping fee drops away.
	prev := 0.0
	for qty := 1; qty <= 20; qty++ {
		breakdown := services.ComputeBreakdown(items(10.50, float64(qty)))
		assert.GreaterOrEqual(t, breakdown.TotalPrice, prev, "quantity %d", qty)
		prev = breakdown.TotalPrice
	}
}

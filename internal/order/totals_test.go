package order_test

import (
	"testing"

	"ticket-store/internal/models"
	"ticket-store/internal/order"

	"github.com/stretchr/testify/assert"
)

func TestCalculateTotalsAppliesTaxAfterDiscount(t *testing.T) {
	items := []models.OrderItem{
		{ProductID: "product-a", Quantity: 2, Subtotal: 60000},
		{ProductID: "product-b", Quantity: 1, Subtotal: 40000},
	}

	totals := order.CalculateTotals(items, 10000)

	assert.InDelta(t, 100000, totals.Subtotal, 0.001)
	assert.InDelta(t, 10000, totals.Discount, 0.001)
	assert.InDelta(t, 99900, totals.GrandTotal, 0.001)
}

func TestCalculateTotalsCapsDiscountAtSubtotal(t *testing.T) {
	items := []models.OrderItem{
		{ProductID: "product-a", Quantity: 1, Subtotal: 50000},
	}

	totals := order.CalculateTotals(items, 80000)

	assert.InDelta(t, 50000, totals.Discount, 0.001)
	assert.Zero(t, totals.GrandTotal)
}

func TestCalculateTotalsEmptyCart(t *testing.T) {
	totals := order.CalculateTotals(nil, 0)

	assert.Zero(t, totals.Subtotal)
	assert.Zero(t, totals.GrandTotal)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 99900.0, order.Round2(99899.9999999999))
	assert.Equal(t, 1.11, order.Round2(1.11499))
	assert.Equal(t, 1.12, order.Round2(1.115001))
}

package order

import (
	"math"

	"ticket-store/internal/models"
)

// TaxRate is the tax applied after discount on every recompute.
const TaxRate = 0.11

// Round2 rounds to two decimal places, the precision totals are stored at.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Totals is one consistent snapshot of an order's money columns:
// grand = round2((subtotal - discount) * (1 + TaxRate)).
type Totals struct {
	Subtotal   float64
	Discount   float64
	GrandTotal float64
}

// CalculateTotals derives totals from an item set and a discount. The
// discount is capped at the subtotal so the grand total never goes negative.
func CalculateTotals(items []models.OrderItem, discount float64) Totals {
	var subtotal float64
	for _, item := range items {
		subtotal += item.Subtotal
	}
	if discount > subtotal {
		discount = subtotal
	}
	if discount < 0 {
		discount = 0
	}
	return Totals{
		Subtotal:   subtotal,
		Discount:   discount,
		GrandTotal: Round2((subtotal - discount) * (1 + TaxRate)),
	}
}

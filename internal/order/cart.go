package order

import (
	"context"
	"fmt"
	"time"

	"ticket-store/internal/models"
	"ticket-store/internal/order/coupon"

	"github.com/google/uuid"
)

// SyncResult reports the order state after a cart sync, including whether an
// applied coupon survived re-validation.
type SyncResult struct {
	Order         *models.Order      `json:"order"`
	Items         []models.OrderItem `json:"items"`
	CouponRemoved bool               `json:"coupon_removed,omitempty"`
	CouponReason  string             `json:"coupon_reason,omitempty"`
}

// SyncCart replaces the order's item set with the client's lines, recomputes
// totals, and re-validates any applied coupon against the new cart. A coupon
// that no longer qualifies is dropped silently; the sync itself still
// succeeds.
func (s *OrderService) SyncCart(ctx context.Context, orderID string, lines []models.CartItem) (*SyncResult, error) {
	order, err := s.DB.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("order %s not found: %w", orderID, err)
	}

	now := time.Now()
	items := make([]models.OrderItem, len(lines))
	for i, line := range lines {
		items[i] = models.OrderItem{
			ID:           uuid.NewString(),
			OrderID:      orderID,
			ProductID:    line.ProductID,
			Quantity:     line.Quantity,
			Subtotal:     line.Subtotal,
			Metadata:     line.Metadata,
			RecordStatus: models.RecordPublished,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
	}

	if err := s.DB.ReplaceOrderItems(ctx, orderID, items); err != nil {
		return nil, fmt.Errorf("failed to sync cart items: %w", err)
	}

	result := &SyncResult{Items: items}
	discount := 0.0

	if order.CouponID != nil {
		discount = s.revalidateCoupon(ctx, order, items, result)
	}

	totals := CalculateTotals(items, discount)
	order.Subtotal = totals.Subtotal
	order.DiscountAmount = totals.Discount
	order.GrandTotal = totals.GrandTotal
	order.UpdatedAt = time.Now()

	err = s.DB.UpdateOrder(ctx, order, "id_coupons", "order_subtotal", "discount_amount", "grand_order_total")
	if err != nil {
		return nil, fmt.Errorf("failed to update order totals: %w", err)
	}
	s.Logger.LogOrder("SYNC", order.OrderCode, fmt.Sprintf("%d items, grand total %.2f", len(items), totals.GrandTotal))

	result.Order = order
	return result, nil
}

// revalidateCoupon re-runs the applied coupon against the new cart. It
// returns the discount to carry forward, or zero after clearing the coupon
// from the order when validation fails for any reason, lookup errors
// included.
func (s *OrderService) revalidateCoupon(ctx context.Context, order *models.Order, items []models.OrderItem, result *SyncResult) float64 {
	clear := func(reason string) float64 {
		order.CouponID = nil
		result.CouponRemoved = true
		result.CouponReason = reason
		s.Logger.LogOrder("COUPON", order.OrderCode, "coupon removed on sync: "+reason)
		return 0
	}

	applied, err := s.DB.GetCouponByID(ctx, *order.CouponID)
	if err != nil {
		return clear("coupon could not be loaded")
	}
	if applied == nil {
		return clear("coupon no longer exists")
	}

	base := CalculateTotals(items, 0)
	outcome, err := s.Coupons.Validate(ctx, coupon.Input{
		Code:          applied.Code,
		EventID:       order.EventID,
		OrderSubtotal: base.Subtotal,
		GrandTotal:    base.GrandTotal,
		Items:         cartLines(items),
	})
	if err != nil {
		return clear("coupon could not be re-validated")
	}
	if !outcome.Valid {
		return clear(outcome.Reason)
	}
	return outcome.DiscountAmount
}

package coupon

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ticket-store/internal/models"
)

// Store is the subset of the order database the evaluator needs.
type Store interface {
	// GetCouponByCode returns the published coupon for a code, or nil when
	// no such coupon exists.
	GetCouponByCode(ctx context.Context, code string) (*models.Coupon, error)
	// GetCouponProducts returns the published product-scope rows for a
	// coupon. An empty slice means the coupon applies to the whole cart.
	GetCouponProducts(ctx context.Context, couponID string) ([]models.CouponProduct, error)
}

// Evaluator validates coupons against the current cart and computes the
// discount they grant.
type Evaluator struct {
	store Store
}

func NewEvaluator(store Store) *Evaluator {
	return &Evaluator{store: store}
}

// Input captures everything a validation needs: the code, the event the
// storefront sells for, and the cart as the client sees it.
type Input struct {
	Code          string
	EventID       string
	OrderSubtotal float64
	GrandTotal    float64
	Items         []models.CartItem
}

// Result reports validity, the matched coupon, and the discount amount.
// Business-rule failures set Valid=false with a Reason; they are never
// returned as errors. Errors are reserved for transport/database failures.
type Result struct {
	Valid          bool           `json:"valid"`
	Coupon         *models.Coupon `json:"coupon,omitempty"`
	DiscountAmount float64        `json:"discountAmount"`
	Reason         string         `json:"error,omitempty"`
}

func invalid(reason string) *Result {
	return &Result{Valid: false, Reason: reason}
}

// Validate runs the rule chain in order, short-circuiting on the first
// failure: existence → event match → expiry → usage cap → minimum purchase
// → product scope. Product-scoped coupons discount only the in-scope items'
// subtotals.
func (e *Evaluator) Validate(ctx context.Context, in Input) (*Result, error) {
	if strings.TrimSpace(in.Code) == "" {
		return invalid("Coupon code is required"), nil
	}

	coupon, err := e.store.GetCouponByCode(ctx, strings.ToUpper(strings.TrimSpace(in.Code)))
	if err != nil {
		return nil, fmt.Errorf("failed to look up coupon: %w", err)
	}
	if coupon == nil {
		return invalid("Invalid coupon code"), nil
	}

	if in.EventID != "" && coupon.EventID != in.EventID {
		return invalid("This coupon is not valid for this event"), nil
	}

	if coupon.ExpiredDate != nil && time.Now().After(*coupon.ExpiredDate) {
		return invalid("This coupon has expired"), nil
	}

	if coupon.UsageLimit != nil && coupon.CurrentUsage >= *coupon.UsageLimit {
		return invalid("This coupon has reached its usage limit"), nil
	}

	if coupon.IsActive && coupon.MinTotalPurchase != nil && in.GrandTotal < *coupon.MinTotalPurchase {
		return invalid(fmt.Sprintf("Minimum purchase of %.0f is required", *coupon.MinTotalPurchase)), nil
	}

	base := in.OrderSubtotal

	scope, err := e.store.GetCouponProducts(ctx, coupon.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up coupon products: %w", err)
	}
	if len(scope) > 0 {
		inScope := make(map[string]bool, len(scope))
		for _, cp := range scope {
			inScope[strings.TrimSpace(cp.ProductID)] = true
		}

		scopedSubtotal := 0.0
		matched := false
		for _, item := range in.Items {
			if inScope[strings.TrimSpace(item.ProductID)] {
				matched = true
				scopedSubtotal += item.Subtotal
			}
		}
		if !matched {
			return invalid("This coupon is not valid for selected products"), nil
		}
		if scopedSubtotal <= 0 {
			return invalid("This coupon is not valid for selected products"), nil
		}
		base = scopedSubtotal
	}

	var discount float64
	switch coupon.Type {
	case models.CouponPercentage:
		discount = base * coupon.Amount / 100
	case models.CouponFixedAmount:
		discount = coupon.Amount
		if discount > base {
			discount = base
		}
	default:
		return invalid(fmt.Sprintf("Unsupported coupon type: %s", coupon.Type)), nil
	}

	return &Result{Valid: true, Coupon: coupon, DiscountAmount: discount}, nil
}

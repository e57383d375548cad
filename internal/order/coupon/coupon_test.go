package coupon_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"ticket-store/internal/models"
	"ticket-store/internal/order/coupon"

	"github.com/stretchr/testify/assert"
)

type MockStore struct {
	coupons      map[string]*models.Coupon
	scope        map[string][]models.CouponProduct
	shouldFailOn string
}

func NewMockStore() *MockStore {
	return &MockStore{
		coupons: make(map[string]*models.Coupon),
		scope:   make(map[string][]models.CouponProduct),
	}
}

func (m *MockStore) GetCouponByCode(ctx context.Context, code string) (*models.Coupon, error) {
	if m.shouldFailOn == "GetCouponByCode" {
		return nil, errors.New("connection refused")
	}
	return m.coupons[code], nil
}

func (m *MockStore) GetCouponProducts(ctx context.Context, couponID string) ([]models.CouponProduct, error) {
	if m.shouldFailOn == "GetCouponProducts" {
		return nil, errors.New("connection refused")
	}
	return m.scope[couponID], nil
}

func percentCoupon() *models.Coupon {
	return &models.Coupon{
		ID:           "coupon-1",
		EventID:      "event-1",
		Code:         "SAVE10",
		Type:         models.CouponPercentage,
		Amount:       10,
		IsActive:     true,
		RecordStatus: models.RecordPublished,
	}
}

func TestValidateRequiresCode(t *testing.T) {
	evaluator := coupon.NewEvaluator(NewMockStore())

	result, err := evaluator.Validate(context.Background(), coupon.Input{Code: "  "})

	assert.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, "Coupon code is required", result.Reason)
}

func TestValidateUnknownCode(t *testing.T) {
	evaluator := coupon.NewEvaluator(NewMockStore())

	result, err := evaluator.Validate(context.Background(), coupon.Input{Code: "NOPE"})

	assert.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, "Invalid coupon code", result.Reason)
}

func TestValidateLookupErrorSurfaces(t *testing.T) {
	store := NewMockStore()
	store.shouldFailOn = "GetCouponByCode"
	evaluator := coupon.NewEvaluator(store)

	result, err := evaluator.Validate(context.Background(), coupon.Input{Code: "SAVE10"})

	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestValidateWrongEvent(t *testing.T) {
	store := NewMockStore()
	store.coupons["SAVE10"] = percentCoupon()
	evaluator := coupon.NewEvaluator(store)

	result, err := evaluator.Validate(context.Background(), coupon.Input{
		Code:    "save10",
		EventID: "another-event",
	})

	assert.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, "This coupon is not valid for this event", result.Reason)
}

func TestValidateExpired(t *testing.T) {
	store := NewMockStore()
	c := percentCoupon()
	expired := time.Now().Add(-time.Hour)
	c.ExpiredDate = &expired
	store.coupons["SAVE10"] = c
	evaluator := coupon.NewEvaluator(store)

	result, err := evaluator.Validate(context.Background(), coupon.Input{
		Code:    "SAVE10",
		EventID: "event-1",
	})

	assert.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, "This coupon has expired", result.Reason)
}

func TestValidateUsageLimitReached(t *testing.T) {
	store := NewMockStore()
	c := percentCoupon()
	limit := 5
	c.UsageLimit = &limit
	c.CurrentUsage = 5
	store.coupons["SAVE10"] = c
	evaluator := coupon.NewEvaluator(store)

	result, err := evaluator.Validate(context.Background(), coupon.Input{
		Code:    "SAVE10",
		EventID: "event-1",
	})

	assert.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, "This coupon has reached its usage limit", result.Reason)
}

func TestValidateMinimumPurchase(t *testing.T) {
	store := NewMockStore()
	c := percentCoupon()
	min := 500000.0
	c.MinTotalPurchase = &min
	store.coupons["SAVE10"] = c
	evaluator := coupon.NewEvaluator(store)

	// Minimum purchase is checked against the tax-inclusive grand total.
	result, err := evaluator.Validate(context.Background(), coupon.Input{
		Code:          "SAVE10",
		EventID:       "event-1",
		OrderSubtotal: 400000,
		GrandTotal:    444000,
	})

	assert.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, "Minimum purchase of 500000 is required", result.Reason)

	result, err = evaluator.Validate(context.Background(), coupon.Input{
		Code:          "SAVE10",
		EventID:       "event-1",
		OrderSubtotal: 460000,
		GrandTotal:    510600,
	})

	assert.NoError(t, err)
	assert.True(t, result.Valid)
	assert.InDelta(t, 46000, result.DiscountAmount, 0.001)
}

func TestValidatePercentageDiscount(t *testing.T) {
	store := NewMockStore()
	store.coupons["SAVE10"] = percentCoupon()
	evaluator := coupon.NewEvaluator(store)

	result, err := evaluator.Validate(context.Background(), coupon.Input{
		Code:          "SAVE10",
		EventID:       "event-1",
		OrderSubtotal: 100000,
		GrandTotal:    111000,
	})

	assert.NoError(t, err)
	assert.True(t, result.Valid)
	assert.InDelta(t, 10000, result.DiscountAmount, 0.001)
	assert.Equal(t, "coupon-1", result.Coupon.ID)
}

func TestValidateFixedAmountCappedAtBase(t *testing.T) {
	store := NewMockStore()
	c := percentCoupon()
	c.Type = models.CouponFixedAmount
	c.Amount = 150000
	store.coupons["SAVE10"] = c
	evaluator := coupon.NewEvaluator(store)

	result, err := evaluator.Validate(context.Background(), coupon.Input{
		Code:          "SAVE10",
		EventID:       "event-1",
		OrderSubtotal: 100000,
		GrandTotal:    111000,
	})

	assert.NoError(t, err)
	assert.True(t, result.Valid)
	assert.InDelta(t, 100000, result.DiscountAmount, 0.001)
}

func TestValidateProductScope(t *testing.T) {
	store := NewMockStore()
	store.coupons["SAVE10"] = percentCoupon()
	store.scope["coupon-1"] = []models.CouponProduct{
		{ID: "cp-1", CouponID: "coupon-1", ProductID: "product-a"},
	}
	evaluator := coupon.NewEvaluator(store)

	// Cart with only out-of-scope items is rejected.
	result, err := evaluator.Validate(context.Background(), coupon.Input{
		Code:          "SAVE10",
		EventID:       "event-1",
		OrderSubtotal: 300000,
		GrandTotal:    333000,
		Items: []models.CartItem{
			{ProductID: "product-c", Quantity: 1, Subtotal: 300000},
		},
	})

	assert.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, "This coupon is not valid for selected products", result.Reason)

	// A mixed cart discounts only the in-scope subtotal.
	result, err = evaluator.Validate(context.Background(), coupon.Input{
		Code:          "SAVE10",
		EventID:       "event-1",
		OrderSubtotal: 300000,
		GrandTotal:    333000,
		Items: []models.CartItem{
			{ProductID: "product-a", Quantity: 1, Subtotal: 100000},
			{ProductID: "product-c", Quantity: 2, Subtotal: 200000},
		},
	})

	assert.NoError(t, err)
	assert.True(t, result.Valid)
	assert.InDelta(t, 10000, result.DiscountAmount, 0.001)
}

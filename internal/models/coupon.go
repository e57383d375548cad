package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Coupon discount types.
const (
	CouponPercentage  = "percentage"
	CouponFixedAmount = "fixed_amount"
)

type Coupon struct {
	bun.BaseModel `bun:"table:coupons"`

	ID               string     `bun:"id_coupons,pk" json:"id_coupons"`
	EventID          string     `bun:"id_events" json:"id_events"`
	Code             string     `bun:"coupon_code_name" json:"coupon_code_name"`
	Type             string     `bun:"type_coupon" json:"type_coupon"`
	Amount           float64    `bun:"amount" json:"amount"`
	ExpiredDate      *time.Time `bun:"expired_date,nullzero" json:"expired_date,omitempty"`
	UsageLimit       *int       `bun:"usage_limit,nullzero" json:"usage_limit,omitempty"`
	CurrentUsage     int        `bun:"current_usage" json:"current_usage"`
	MinTotalPurchase *float64   `bun:"min_total_purchase,nullzero" json:"min_total_purchase,omitempty"`
	IsActive         bool       `bun:"is_active" json:"is_active"`
	IsPublic         bool       `bun:"is_public" json:"is_public"`
	SaleLabel        string     `bun:"sale_label,nullzero" json:"sale_label,omitempty"`
	SaleShortDesc    string     `bun:"sale_shortdesc,nullzero" json:"sale_shortdesc,omitempty"`
	RankRecord       int        `bun:"rank_record" json:"rank_record"`
	RecordStatus     string     `bun:"record_status" json:"record_status"`
	CreatedAt        time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt        time.Time  `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// CouponFilter narrows coupon listings; zero value lists all published coupons.
type CouponFilter struct {
	IsPublic bool
	IsActive bool
	WithSale bool
}

// CouponProduct scopes a coupon to a product. A coupon with no published
// rows here applies to the whole cart.
type CouponProduct struct {
	bun.BaseModel `bun:"table:coupon_products"`

	ID           string `bun:"id_coupon_products,pk" json:"id_coupon_products"`
	CouponID     string `bun:"id_coupons" json:"id_coupons"`
	ProductID    string `bun:"id_products" json:"id_products"`
	RecordStatus string `bun:"record_status" json:"record_status"`
}

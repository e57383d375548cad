package models

import (
	"encoding/json"
	"time"

	"github.com/uptrace/bun"
)

// Payment lifecycle of an order.
const (
	PaymentPending   = "pending"
	PaymentPaid      = "paid"
	PaymentFailed    = "failed"
	PaymentCancelled = "cancelled"
	PaymentRefunded  = "refunded"
)

// Record visibility states shared by every storefront table.
const (
	RecordDraft     = "draft"
	RecordPublished = "published"
	RecordArchived  = "archived"
)

type Order struct {
	bun.BaseModel `bun:"table:orders"`

	ID               string     `bun:"id_orders,pk" json:"id_orders"`
	EventID          string     `bun:"id_events" json:"id_events"`
	CustomerID       *string    `bun:"id_customers,nullzero" json:"id_customers"`
	CouponID         *string    `bun:"id_coupons,nullzero" json:"id_coupons"`
	OrderCode        string     `bun:"order_id" json:"order_id"`
	OrderNotes       string     `bun:"order_notes,nullzero" json:"order_notes,omitempty"`
	Subtotal         float64    `bun:"order_subtotal" json:"order_subtotal"`
	DiscountAmount   float64    `bun:"discount_amount" json:"discount_amount"`
	GrandTotal       float64    `bun:"grand_order_total" json:"grand_order_total"`
	PaymentMethod    string     `bun:"payment_method,nullzero" json:"payment_method,omitempty"`
	PaymentProvider  string     `bun:"payment_provider,nullzero" json:"payment_provider,omitempty"`
	PaymentIntentID  string     `bun:"payment_intent_id,nullzero" json:"payment_intent_id,omitempty"`
	PaymentStatus    string     `bun:"payment_status" json:"payment_status"`
	OrderMerchant    string     `bun:"order_merchant" json:"order_merchant"`
	SessionToken     string     `bun:"session_token,nullzero" json:"session_token,omitempty"`
	SessionExpiresAt *time.Time `bun:"session_expires_at,nullzero" json:"session_expires_at,omitempty"`
	PaidAt           *time.Time `bun:"paid_at,nullzero" json:"paid_at,omitempty"`
	CancelledAt      *time.Time `bun:"cancelled_at,nullzero" json:"cancelled_at,omitempty"`
	RefundedAt       *time.Time `bun:"refunded_at,nullzero" json:"refunded_at,omitempty"`
	RecordStatus     string     `bun:"record_status" json:"record_status"`
	CreatedAt        time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt        time.Time  `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

type OrderItem struct {
	bun.BaseModel `bun:"table:order_items"`

	ID           string                 `bun:"id_order_items,pk" json:"id_order_items"`
	OrderID      string                 `bun:"id_orders" json:"id_orders"`
	ProductID    string                 `bun:"id_products" json:"id_products"`
	Quantity     int                    `bun:"quantity" json:"quantity"`
	Subtotal     float64                `bun:"subtotal" json:"subtotal"`
	Metadata     map[string]interface{} `bun:"metadata,type:jsonb,nullzero" json:"metadata,omitempty"`
	RecordStatus string                 `bun:"record_status" json:"record_status"`
	CreatedAt    time.Time              `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt    time.Time              `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// CartItem is the client-authoritative line sent on a cart sync. The server
// regenerates order-item IDs on every sync, so the client never sends them.
type CartItem struct {
	ProductID string                 `json:"id_products"`
	Quantity  int                    `json:"quantity"`
	Subtotal  float64                `json:"subtotal"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// OrderPatch carries the optional fields of an order PATCH. Pointers
// distinguish "not sent" from zero values; CouponID stays raw so an explicit
// JSON null clears the coupon reference while absence leaves it untouched.
type OrderPatch struct {
	CouponID        json.RawMessage `json:"id_coupons"`
	Subtotal        *float64        `json:"order_subtotal"`
	DiscountAmount  *float64        `json:"discount_amount"`
	GrandTotal      *float64        `json:"grand_order_total"`
	PaymentMethod   *string         `json:"payment_method"`
	PaymentProvider *string         `json:"payment_provider"`
	PaymentIntentID *string         `json:"payment_intent_id"`
	PaymentStatus   *string         `json:"payment_status"`
	PaidAt          *string         `json:"paid_at"`
	RecordStatus    *string         `json:"record_status"`
}

package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Product struct {
	bun.BaseModel `bun:"table:products"`

	ID           string    `bun:"id_products,pk" json:"id_products"`
	EventID      string    `bun:"id_events" json:"id_events"`
	ProductCode  string    `bun:"product_id" json:"product_id"`
	Name         string    `bun:"product_name" json:"product_name"`
	Description  string    `bun:"product_description,nullzero" json:"product_description,omitempty"`
	Price        float64   `bun:"price" json:"price"`
	PriceSale    *float64  `bun:"price_sale,nullzero" json:"price_sale,omitempty"`
	Variant      string    `bun:"variant_product,nullzero" json:"variant_product,omitempty"`
	RecordStatus string    `bun:"record_status" json:"record_status"`
	CreatedAt    time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt    time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

type Event struct {
	bun.BaseModel `bun:"table:events"`

	ID           string    `bun:"id_events,pk" json:"id_events"`
	Name         string    `bun:"event_name" json:"event_name"`
	StartDate    time.Time `bun:"start_date" json:"start_date"`
	EndDate      time.Time `bun:"end_date" json:"end_date"`
	RecordStatus string    `bun:"record_status" json:"record_status"`
	CreatedAt    time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}

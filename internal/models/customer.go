package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Customer struct {
	bun.BaseModel `bun:"table:customers"`

	ID                string    `bun:"id_customers,pk" json:"id_customers"`
	EventID           string    `bun:"id_events" json:"id_events"`
	BillingID         string    `bun:"billing_id" json:"billing_id"`
	BillingName       string    `bun:"billing_name" json:"billing_name"`
	BillingEmail      string    `bun:"billing_email,nullzero" json:"billing_email,omitempty"`
	BillingCompany    string    `bun:"billing_company,nullzero" json:"billing_company,omitempty"`
	BillingCountry    string    `bun:"billing_country,nullzero" json:"billing_country,omitempty"`
	BillingWebsiteURL string    `bun:"billing_website_url,nullzero" json:"billing_website_url,omitempty"`
	IsApproved        bool      `bun:"is_approved" json:"is_approved"`
	RecordStatus      string    `bun:"record_status" json:"record_status"`
	CreatedAt         time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt         time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

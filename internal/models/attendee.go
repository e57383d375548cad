package models

import (
	"time"

	"github.com/uptrace/bun"
)

type CustomQuestion struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type SocialAccount struct {
	SocialMedia string `json:"socialmedia"`
	URL         string `json:"url"`
}

type Attendee struct {
	bun.BaseModel `bun:"table:attendee"`

	ID             string           `bun:"id_attendee,pk" json:"id_attendee"`
	EventID        string           `bun:"id_events" json:"id_events"`
	CustomerID     *string          `bun:"id_customers,nullzero" json:"id_customers,omitempty"`
	AttendeeCode   string           `bun:"attendee_id" json:"attendee_id"`
	FirstName      string           `bun:"first_name" json:"first_name"`
	LastName       string           `bun:"last_name,nullzero" json:"last_name,omitempty"`
	Email          string           `bun:"email" json:"email"`
	Country        string           `bun:"country,nullzero" json:"country,omitempty"`
	Position       string           `bun:"position,nullzero" json:"position,omitempty"`
	CompanyName    string           `bun:"company_name,nullzero" json:"company_name,omitempty"`
	CompanyFocus   string           `bun:"company_focus,nullzero" json:"company_focus,omitempty"`
	CompanySize    string           `bun:"company_size,nullzero" json:"company_size,omitempty"`
	CompanyWebsite string           `bun:"company_website,nullzero" json:"company_website,omitempty"`
	CustomAnswers  []CustomQuestion `bun:"custom_questions,type:jsonb,nullzero" json:"custom_questions,omitempty"`
	SocialAccounts []SocialAccount  `bun:"social_accounts,type:jsonb,nullzero" json:"social_accounts,omitempty"`
	QRCode         []byte           `bun:"qr_code,nullzero" json:"-"`
	IsCustomer     bool             `bun:"is_customer" json:"is_customer"`
	IsApproved     bool             `bun:"is_approved" json:"is_approved"`
	SelfEdited     bool             `bun:"self_edited" json:"self_edited"`
	RecordStatus   string           `bun:"record_status" json:"record_status"`
	CreatedAt      time.Time        `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt      time.Time        `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// OrderItemAttendee links an attendee to exactly one order-item.
type OrderItemAttendee struct {
	bun.BaseModel `bun:"table:order_item_attendees"`

	ID           string `bun:"id_order_item_attendees,pk" json:"id_order_item_attendees"`
	OrderItemID  string `bun:"id_order_items" json:"id_order_items"`
	AttendeeID   string `bun:"id_attendee" json:"id_attendee"`
	RecordStatus string `bun:"record_status" json:"record_status"`
}

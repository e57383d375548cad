package models

// InvoiceItem is one line of an invoice sent to the payment provider.
type InvoiceItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	URL      string  `json:"url"`
}

type InvoiceCustomer struct {
	GivenNames string `json:"given_names"`
	Surname    string `json:"surname"`
	Email      string `json:"email"`
}

type NotificationPreference struct {
	InvoiceCreated []string `json:"invoice_created"`
}

// InvoiceRequest is the invoice-creation payload for the provider API.
type InvoiceRequest struct {
	ExternalID                   string                 `json:"external_id"`
	Amount                       float64                `json:"amount"`
	PayerEmail                   string                 `json:"payer_email"`
	Description                  string                 `json:"description"`
	Customer                     InvoiceCustomer        `json:"customer"`
	CallbackURL                  string                 `json:"callback_url"`
	SuccessRedirectURL           string                 `json:"success_redirect_url"`
	FailureRedirectURL           string                 `json:"failure_redirect_url"`
	Currency                     string                 `json:"currency"`
	Items                        []InvoiceItem          `json:"items"`
	InvoiceDuration              int                    `json:"invoice_duration"`
	CustomerNotificationPref     NotificationPreference `json:"customer_notification_preference"`
	ShouldAuthenticateCreditCard bool                   `json:"should_authenticate_credit_card"`
}

// Invoice is the subset of the provider's invoice object the storefront
// cares about.
type Invoice struct {
	ID         string  `json:"id"`
	ExternalID string  `json:"external_id"`
	Status     string  `json:"status"`
	Amount     float64 `json:"amount"`
	InvoiceURL string  `json:"invoice_url"`
	PayerEmail string  `json:"payer_email"`
	Currency   string  `json:"currency"`
	PaidAt     string  `json:"paid_at,omitempty"`
}

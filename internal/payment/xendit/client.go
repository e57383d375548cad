package xendit

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ticket-store/internal/models"
)

// Client calls the invoice API with basic auth. The API token is the
// username; the password is empty.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	authHeader string
}

func NewClient(baseURL, apiToken string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		authHeader: "Basic " + base64.StdEncoding.EncodeToString([]byte(apiToken+":")),
	}
}

// CreateInvoice posts a new invoice and returns the provider's invoice
// object, which carries the hosted payment URL.
func (c *Client) CreateInvoice(ctx context.Context, req models.InvoiceRequest) (*models.Invoice, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode invoice request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v2/invoices", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", c.authHeader)

	return c.do(httpReq)
}

// GetInvoice fetches an invoice by the provider's invoice id.
func (c *Client) GetInvoice(ctx context.Context, invoiceID string) (*models.Invoice, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/v2/invoices/"+invoiceID, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", c.authHeader)

	return c.do(httpReq)
}

func (c *Client) do(req *http.Request) (*models.Invoice, error) {
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("invoice API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read invoice API response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("invoice API returned %d: %s", resp.StatusCode, string(body))
	}

	var invoice models.Invoice
	if err := json.Unmarshal(body, &invoice); err != nil {
		return nil, fmt.Errorf("failed to decode invoice API response: %w", err)
	}
	return &invoice, nil
}

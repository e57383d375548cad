package forms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ticket-store/internal/models"
)

// HubSpotClient fetches a marketing form definition with a bearer token.
type HubSpotClient struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

func NewHubSpotClient(baseURL, token string) *HubSpotClient {
	return &HubSpotClient{
		BaseURL:    baseURL,
		Token:      token,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *HubSpotClient) FetchForm(ctx context.Context, formID string) (*models.HubSpotForm, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/"+formID, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.Token)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("forms API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("forms API error: %d", resp.StatusCode)
	}

	var form models.HubSpotForm
	if err := json.NewDecoder(resp.Body).Decode(&form); err != nil {
		return nil, fmt.Errorf("failed to decode form definition: %w", err)
	}
	return &form, nil
}

// ExtractFieldOptions pulls the dropdown options of one named field,
// searching top-level fields first and field groups second. Options missing
// a value or label are dropped; a missing label falls back to the value.
func ExtractFieldOptions(form *models.HubSpotForm, fieldName string) []models.FormOption {
	fields := form.Fields
	if len(fields) == 0 {
		for _, group := range form.FieldGroups {
			fields = append(fields, group.Fields...)
		}
	}

	for _, field := range fields {
		if field.Name != fieldName {
			continue
		}
		options := make([]models.FormOption, 0, len(field.Options))
		for _, opt := range field.Options {
			label := opt.Label
			if label == "" {
				label = opt.Value
			}
			if opt.Value == "" || label == "" {
				continue
			}
			options = append(options, models.FormOption{Value: opt.Value, Label: label})
		}
		return options
	}
	return nil
}

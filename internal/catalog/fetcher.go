package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ticket-store/internal/models"
)

// Fetcher pulls the product catalog from an upstream event service.
type Fetcher struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewFetcher(baseURL string) *Fetcher {
	return &Fetcher{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (f *Fetcher) FetchProducts(ctx context.Context, eventID string) ([]models.Product, error) {
	url := fmt.Sprintf("%s/products?id_events=%s", f.BaseURL, eventID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog service error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("catalog service returned status: %d", resp.StatusCode)
	}

	var products []models.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("failed to decode catalog response: %w", err)
	}
	return products, nil
}

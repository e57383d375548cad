package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"ticket-store/internal/config"
	"ticket-store/internal/logger"
	"ticket-store/internal/models"
	"ticket-store/internal/payment"
	"ticket-store/internal/payment/api"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockProvider struct {
	invoices     map[string]*models.Invoice
	shouldFailOn string
}

func (m *MockProvider) CreateInvoice(ctx context.Context, req models.InvoiceRequest) (*models.Invoice, error) {
	if m.shouldFailOn == "CreateInvoice" {
		return nil, errors.New("simulated provider failure")
	}
	return &models.Invoice{ID: "inv-1", ExternalID: req.ExternalID, Status: "PENDING", InvoiceURL: "https://invoice.test/inv-1"}, nil
}

func (m *MockProvider) GetInvoice(ctx context.Context, invoiceID string) (*models.Invoice, error) {
	if m.shouldFailOn == "GetInvoice" {
		return nil, errors.New("simulated provider failure")
	}
	inv, ok := m.invoices[invoiceID]
	if !ok {
		return nil, fmt.Errorf("invoice %s not found", invoiceID)
	}
	return inv, nil
}

type MockDB struct {
	orders map[string]*models.Order
}

func (m *MockDB) GetOrderByID(ctx context.Context, id string) (*models.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, fmt.Errorf("order %s not found", id)
	}
	return o, nil
}

func (m *MockDB) UpdateOrder(ctx context.Context, o *models.Order, columns ...string) error {
	m.orders[o.ID] = o
	return nil
}

func (m *MockDB) GetOrderItems(ctx context.Context, orderID string) ([]models.OrderItem, error) {
	return []models.OrderItem{}, nil
}

func (m *MockDB) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	return nil, fmt.Errorf("product %s not found", id)
}

func setupRouter(provider *MockProvider, mockDB *MockDB) *chi.Mux {
	log := logger.NewLogger()
	svc := payment.NewService(provider, mockDB, nil, log, config.PaymentConfig{
		SiteURL:     "https://store.example.test",
		CallbackURL: "https://store.example.test/api/payments/webhook/invoice",
		Currency:    "IDR",
	})

	r := chi.NewRouter()
	api.NewHandler(svc, log, "webhook-secret").RegisterRoutes(r)
	return r
}

func TestCreatePaymentRequiresAllFields(t *testing.T) {
	r := setupRouter(&MockProvider{}, &MockDB{orders: map[string]*models.Order{}})

	body := `{"extrnlId":"ORD-1","payerEmail":"ada@example.test"}`
	req := httptest.NewRequest(http.MethodPost, "/create", bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "fullname and order are required")
}

func TestCreatePaymentFreeOrderSkipsProvider(t *testing.T) {
	mockDB := &MockDB{orders: map[string]*models.Order{
		"order-1": {ID: "order-1", OrderCode: "ORD-FREE", GrandTotal: 0, PaymentStatus: models.PaymentPending},
	}}
	r := setupRouter(&MockProvider{shouldFailOn: "CreateInvoice"}, mockDB)

	body := `{"extrnlId":"ORD-FREE","amount":0,"payerEmail":"ada@example.test","fullname":"Ada Lovelace","order":"order-1"}`
	req := httptest.NewRequest(http.MethodPost, "/create", bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var result payment.DispatchResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.Free)
	assert.Nil(t, result.Invoice)
	assert.Equal(t, models.PaymentPaid, result.Order.PaymentStatus)
}

func TestCreatePaymentReturnsInvoiceURL(t *testing.T) {
	mockDB := &MockDB{orders: map[string]*models.Order{
		"order-1": {ID: "order-1", OrderCode: "ORD-1", GrandTotal: 111000, PaymentStatus: models.PaymentPending},
	}}
	r := setupRouter(&MockProvider{}, mockDB)

	body := `{"extrnlId":"ORD-1","amount":111000,"payerEmail":"ada@example.test","fullname":"Ada Lovelace","order":"order-1"}`
	req := httptest.NewRequest(http.MethodPost, "/create", bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var result payment.DispatchResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.NotNil(t, result.Invoice)
	assert.Equal(t, "https://invoice.test/inv-1", result.Invoice.InvoiceURL)
	assert.Equal(t, "inv-1", mockDB.orders["order-1"].PaymentIntentID)
}

func TestWebhookRejectsBadSecret(t *testing.T) {
	r := setupRouter(&MockProvider{}, &MockDB{orders: map[string]*models.Order{}})

	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewBufferString(`{"paymentId":"inv-1"}`))
	req.Header.Set("x-api-key", "wrong-secret")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Contains(t, w.Body.String(), "Forbidden")
}

func TestWebhookResolvesInvoice(t *testing.T) {
	provider := &MockProvider{invoices: map[string]*models.Invoice{
		"inv-1": {ID: "inv-1", Status: "PAID"},
	}}
	r := setupRouter(provider, &MockDB{orders: map[string]*models.Order{}})

	req := httptest.NewRequest(http.MethodPost, "/webhook/invoice", bytes.NewBufferString(`{"paymentId":"inv-1"}`))
	req.Header.Set("x-api-key", "webhook-secret")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var invoice models.Invoice
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &invoice))
	assert.Equal(t, "PAID", invoice.Status)
}

func TestWebhookRequiresPaymentID(t *testing.T) {
	r := setupRouter(&MockProvider{}, &MockDB{orders: map[string]*models.Order{}})

	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewBufferString(`{}`))
	req.Header.Set("x-api-key", "webhook-secret")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

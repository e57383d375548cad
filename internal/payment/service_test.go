package payment_test

import (
	"context"
	"errors"
	"testing"

	"ticket-store/internal/config"
	"ticket-store/internal/logger"
	"ticket-store/internal/models"
	"ticket-store/internal/payment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockProvider struct {
	createdRequests []models.InvoiceRequest
	invoice         *models.Invoice
	shouldFail      bool
}

func (m *MockProvider) CreateInvoice(ctx context.Context, req models.InvoiceRequest) (*models.Invoice, error) {
	if m.shouldFail {
		return nil, errors.New("connection refused")
	}
	m.createdRequests = append(m.createdRequests, req)
	return m.invoice, nil
}

func (m *MockProvider) GetInvoice(ctx context.Context, invoiceID string) (*models.Invoice, error) {
	if m.shouldFail {
		return nil, errors.New("connection refused")
	}
	return m.invoice, nil
}

type MockDB struct {
	orders   map[string]*models.Order
	items    map[string][]models.OrderItem
	products map[string]*models.Product
	updated  [][]string
}

func NewMockDB() *MockDB {
	return &MockDB{
		orders:   make(map[string]*models.Order),
		items:    make(map[string][]models.OrderItem),
		products: make(map[string]*models.Product),
	}
}

func (m *MockDB) GetOrderByID(ctx context.Context, id string) (*models.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, errors.New("order not found")
	}
	copied := *o
	return &copied, nil
}

func (m *MockDB) UpdateOrder(ctx context.Context, o *models.Order, columns ...string) error {
	copied := *o
	m.orders[o.ID] = &copied
	m.updated = append(m.updated, columns)
	return nil
}

func (m *MockDB) GetOrderItems(ctx context.Context, orderID string) ([]models.OrderItem, error) {
	return m.items[orderID], nil
}

func (m *MockDB) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, errors.New("product not found")
	}
	return p, nil
}

type MockPublisher struct {
	paid int
}

func (p *MockPublisher) PublishOrderPaid(models.Order) error { p.paid++; return nil }

func newService(provider *MockProvider, db *MockDB, publisher *MockPublisher) *payment.Service {
	cfg := config.PaymentConfig{
		APIBaseURL:  "https://api.example.test",
		SiteURL:     "https://store.example.test",
		CallbackURL: "https://store.example.test/api/payments/webhook/invoice",
		Currency:    "IDR",
	}
	return payment.NewService(provider, db, publisher, logger.NewLogger(), cfg)
}

func TestDispatchFreeOrderSkipsProvider(t *testing.T) {
	provider := &MockProvider{}
	db := NewMockDB()
	publisher := &MockPublisher{}
	db.orders["order-1"] = &models.Order{
		ID: "order-1", OrderCode: "ORD-FREE", GrandTotal: 0,
		PaymentStatus: models.PaymentPending,
	}
	svc := newService(provider, db, publisher)

	result, err := svc.Dispatch(context.Background(), payment.CreateRequest{OrderID: "order-1"})
	require.NoError(t, err)

	assert.True(t, result.Free)
	assert.Nil(t, result.Invoice)
	assert.Empty(t, provider.createdRequests)
	assert.Equal(t, 1, publisher.paid)

	stored := db.orders["order-1"]
	assert.Equal(t, models.PaymentPaid, stored.PaymentStatus)
	assert.Equal(t, "free", stored.PaymentMethod)
	require.NotNil(t, stored.PaidAt)
}

func TestDispatchPaidOrderCreatesInvoice(t *testing.T) {
	provider := &MockProvider{
		invoice: &models.Invoice{
			ID:         "inv-123",
			ExternalID: "ext-1",
			Status:     "PENDING",
			InvoiceURL: "https://checkout.example.test/inv-123",
		},
	}
	db := NewMockDB()
	publisher := &MockPublisher{}
	db.orders["order-1"] = &models.Order{
		ID: "order-1", OrderCode: "ORD-PAID", GrandTotal: 111000,
		PaymentStatus: models.PaymentPending,
	}
	db.items["order-1"] = []models.OrderItem{
		{ID: "item-1", OrderID: "order-1", ProductID: "product-a", Quantity: 2, Subtotal: 100000},
	}
	db.products["product-a"] = &models.Product{
		ID: "product-a", Name: "General Admission", Price: 50000,
	}
	svc := newService(provider, db, publisher)

	result, err := svc.Dispatch(context.Background(), payment.CreateRequest{
		ExternalID: "ext-1",
		Amount:     111000,
		PayerEmail: "buyer@example.test",
		FullName:   "Test Buyer",
		OrderID:    "order-1",
	})
	require.NoError(t, err)

	require.NotNil(t, result.Invoice)
	assert.Equal(t, "https://checkout.example.test/inv-123", result.Invoice.InvoiceURL)
	assert.False(t, result.Free)
	assert.Zero(t, publisher.paid)

	require.Len(t, provider.createdRequests, 1)
	req := provider.createdRequests[0]
	assert.Equal(t, "ext-1", req.ExternalID)
	assert.Equal(t, "IDR", req.Currency)
	assert.Equal(t, 900, req.InvoiceDuration)
	assert.True(t, req.ShouldAuthenticateCreditCard)
	assert.Contains(t, req.SuccessRedirectURL, "order-received?process=order-1")
	assert.Contains(t, req.FailureRedirectURL, "order-failed?process=order-1")
	require.Len(t, req.Items, 1)
	assert.Equal(t, "General Admission", req.Items[0].Name)
	assert.Equal(t, 2, req.Items[0].Quantity)
	assert.InDelta(t, 50000, req.Items[0].Price, 0.001)

	stored := db.orders["order-1"]
	assert.Equal(t, "Xendit", stored.PaymentProvider)
	assert.Equal(t, "inv-123", stored.PaymentIntentID)
	assert.Equal(t, models.PaymentPending, stored.PaymentStatus)
}

func TestDispatchSurfacesProviderError(t *testing.T) {
	provider := &MockProvider{shouldFail: true}
	db := NewMockDB()
	db.orders["order-1"] = &models.Order{ID: "order-1", OrderCode: "ORD-ERR", GrandTotal: 111000}
	svc := newService(provider, db, &MockPublisher{})

	_, err := svc.Dispatch(context.Background(), payment.CreateRequest{OrderID: "order-1"})
	assert.Error(t, err)
	assert.Empty(t, db.orders["order-1"].PaymentIntentID)
}

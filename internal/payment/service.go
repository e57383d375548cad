package payment

import (
	"context"
	"fmt"
	"time"

	"ticket-store/internal/config"
	"ticket-store/internal/logger"
	"ticket-store/internal/models"
)

// Provider is the invoice API surface the dispatcher needs.
type Provider interface {
	CreateInvoice(ctx context.Context, req models.InvoiceRequest) (*models.Invoice, error)
	GetInvoice(ctx context.Context, invoiceID string) (*models.Invoice, error)
}

// DBLayer is the persistence surface the dispatcher needs.
type DBLayer interface {
	GetOrderByID(ctx context.Context, id string) (*models.Order, error)
	UpdateOrder(ctx context.Context, order *models.Order, columns ...string) error
	GetOrderItems(ctx context.Context, orderID string) ([]models.OrderItem, error)
	GetProductByID(ctx context.Context, id string) (*models.Product, error)
}

// Publisher streams payment lifecycle events; publishing is best-effort.
type Publisher interface {
	PublishOrderPaid(order models.Order) error
}

// CreateRequest is the payment-creation request body.
type CreateRequest struct {
	ExternalID string  `json:"extrnlId"`
	Amount     float64 `json:"amount"`
	PayerEmail string  `json:"payerEmail"`
	FullName   string  `json:"fullname"`
	OrderID    string  `json:"order"`
}

// DispatchResult pairs the provider invoice (nil for free orders) with the
// order as it stands after dispatch.
type DispatchResult struct {
	Invoice *models.Invoice `json:"data,omitempty"`
	Order   *models.Order   `json:"order"`
	Free    bool            `json:"free,omitempty"`
}

type Service struct {
	Provider Provider
	DB       DBLayer
	Events   Publisher
	Logger   *logger.Logger
	Config   config.PaymentConfig
}

func NewService(provider Provider, db DBLayer, events Publisher, log *logger.Logger, cfg config.PaymentConfig) *Service {
	return &Service{
		Provider: provider,
		DB:       db,
		Events:   events,
		Logger:   log,
		Config:   cfg,
	}
}

// Dispatch routes an order to payment. Zero-total orders are marked paid on
// the spot; everything else gets a hosted invoice whose id is persisted on
// the order before the URL is handed back for redirect.
func (s *Service) Dispatch(ctx context.Context, req CreateRequest) (*DispatchResult, error) {
	order, err := s.DB.GetOrderByID(ctx, req.OrderID)
	if err != nil {
		return nil, fmt.Errorf("order %s not found: %w", req.OrderID, err)
	}

	if order.GrandTotal <= 0 {
		return s.completeFreeOrder(ctx, order)
	}

	items, err := s.DB.GetOrderItems(ctx, req.OrderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order items: %w", err)
	}

	lines := make([]models.InvoiceItem, 0, len(items))
	for _, item := range items {
		line := models.InvoiceItem{
			Name:     item.ProductID,
			Quantity: item.Quantity,
			Price:    item.Subtotal,
			Category: "Tickets",
			URL:      "N/A",
		}
		product, err := s.DB.GetProductByID(ctx, item.ProductID)
		if err != nil {
			s.Logger.Warn("PAYMENT", fmt.Sprintf("product %s lookup failed, invoicing with raw line: %v", item.ProductID, err))
		} else if product != nil {
			line.Name = product.Name
			line.Price = product.Price
			if line.Price == 0 && product.PriceSale != nil {
				line.Price = *product.PriceSale
			}
		}
		lines = append(lines, line)
	}

	invoiceReq := models.InvoiceRequest{
		ExternalID:         req.ExternalID,
		Amount:             req.Amount,
		PayerEmail:         req.PayerEmail,
		Description:        fmt.Sprintf("Payment for order (#%s)", order.OrderCode),
		Customer:           models.InvoiceCustomer{GivenNames: req.FullName, Surname: req.FullName, Email: req.PayerEmail},
		CallbackURL:        s.Config.CallbackURL,
		SuccessRedirectURL: fmt.Sprintf("%s/checkout/order-received?process=%s", s.Config.SiteURL, order.ID),
		FailureRedirectURL: fmt.Sprintf("%s/checkout/order-failed?process=%s", s.Config.SiteURL, order.ID),
		Currency:           s.Config.Currency,
		Items:              lines,
		InvoiceDuration:    900,
		CustomerNotificationPref: models.NotificationPreference{
			InvoiceCreated: []string{"email"},
		},
		ShouldAuthenticateCreditCard: true,
	}

	invoice, err := s.Provider.CreateInvoice(ctx, invoiceReq)
	if err != nil {
		s.Logger.Error("PAYMENT", fmt.Sprintf("invoice creation failed for order %s: %v", order.OrderCode, err))
		return nil, err
	}

	order.PaymentProvider = "Xendit"
	order.PaymentIntentID = invoice.ID
	order.UpdatedAt = time.Now()
	if err := s.DB.UpdateOrder(ctx, order, "payment_provider", "payment_intent_id"); err != nil {
		s.Logger.Error("PAYMENT", fmt.Sprintf("failed to store payment intent for order %s: %v", order.OrderCode, err))
	}
	s.Logger.LogPayment("CREATE", order.OrderCode, fmt.Sprintf("invoice %s created for %.2f %s", invoice.ID, req.Amount, s.Config.Currency))

	return &DispatchResult{Invoice: invoice, Order: order}, nil
}

// completeFreeOrder marks a zero-total order paid without touching the
// provider.
func (s *Service) completeFreeOrder(ctx context.Context, order *models.Order) (*DispatchResult, error) {
	now := time.Now()
	order.PaymentStatus = models.PaymentPaid
	order.PaymentMethod = "free"
	order.PaidAt = &now
	order.UpdatedAt = now

	err := s.DB.UpdateOrder(ctx, order, "payment_status", "payment_method", "paid_at")
	if err != nil {
		return nil, fmt.Errorf("failed to complete free order: %w", err)
	}
	s.Logger.LogPayment("FREE", order.OrderCode, "zero-total order marked paid")

	if s.Events != nil {
		if err := s.Events.PublishOrderPaid(*order); err != nil {
			s.Logger.Warn("KAFKA", fmt.Sprintf("order paid event not published: %v", err))
		}
	}
	return &DispatchResult{Order: order, Free: true}, nil
}

// LookupInvoice fetches the provider's invoice object for a webhook
// notification.
func (s *Service) LookupInvoice(ctx context.Context, invoiceID string) (*models.Invoice, error) {
	return s.Provider.GetInvoice(ctx, invoiceID)
}

package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ticket-store/internal/logger"
	"ticket-store/internal/models"
	"ticket-store/internal/order/coupon"
	"ticket-store/internal/session"
	"ticket-store/internal/utils"

	"github.com/google/uuid"
)

// DBLayer is the persistence surface the order service depends on.
type DBLayer interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrderByID(ctx context.Context, id string) (*models.Order, error)
	UpdateOrder(ctx context.Context, order *models.Order, columns ...string) error

	GetOrderItems(ctx context.Context, orderID string) ([]models.OrderItem, error)
	GetOrderItemByID(ctx context.Context, id string) (*models.OrderItem, error)
	CreateOrderItem(ctx context.Context, item *models.OrderItem) error
	UpdateOrderItem(ctx context.Context, item *models.OrderItem, columns ...string) error
	DeleteOrderItem(ctx context.Context, id string) error
	DeleteOrderItems(ctx context.Context, orderID string) error
	ReplaceOrderItems(ctx context.Context, orderID string, items []models.OrderItem) error

	GetCouponByCode(ctx context.Context, code string) (*models.Coupon, error)
	GetCouponByID(ctx context.Context, id string) (*models.Coupon, error)
	ListCoupons(ctx context.Context, filter models.CouponFilter) ([]models.Coupon, error)
	GetCouponProducts(ctx context.Context, couponID string) ([]models.CouponProduct, error)
}

// Publisher streams order lifecycle events. Publishing is best-effort; the
// service logs failures and moves on.
type Publisher interface {
	PublishOrderCreated(order models.Order) error
	PublishOrderUpdated(order models.Order) error
	PublishOrderCancelled(order models.Order) error
}

var ErrSessionMismatch = errors.New("session token does not match order")

type OrderService struct {
	DB       DBLayer
	Coupons  *coupon.Evaluator
	Sessions *session.Manager
	Events   Publisher
	Logger   *logger.Logger
	EventID  string
}

func NewOrderService(db DBLayer, evaluator *coupon.Evaluator, sessions *session.Manager, events Publisher, log *logger.Logger, eventID string) *OrderService {
	return &OrderService{
		DB:       db,
		Coupons:  evaluator,
		Sessions: sessions,
		Events:   events,
		Logger:   log,
		EventID:  eventID,
	}
}

// CreateOrder opens an empty checkout session: zero totals, pending payment,
// and a signed session token that expires with the session.
func (s *OrderService) CreateOrder(ctx context.Context, eventID string) (*models.Order, error) {
	if eventID == "" {
		eventID = s.EventID
	}

	orderID := uuid.NewString()
	token, expiresAt, err := s.Sessions.Issue(orderID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order := &models.Order{
		ID:               orderID,
		EventID:          eventID,
		OrderCode:        utils.GenerateOrderCode(),
		Subtotal:         0,
		DiscountAmount:   0,
		GrandTotal:       0,
		PaymentStatus:    models.PaymentPending,
		OrderMerchant:    "online",
		SessionToken:     token,
		SessionExpiresAt: &expiresAt,
		RecordStatus:     models.RecordPublished,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.DB.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	s.Logger.LogOrder("CREATE", order.OrderCode, "empty order created")

	if s.Events != nil {
		if err := s.Events.PublishOrderCreated(*order); err != nil {
			s.Logger.Warn("KAFKA", fmt.Sprintf("order created event not published: %v", err))
		}
	}
	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	return s.DB.GetOrderByID(ctx, id)
}

// VerifySession checks that the presented token is valid, unexpired, and
// was issued for the given order.
func (s *OrderService) VerifySession(token, orderID string) error {
	subject, err := s.Sessions.Verify(token)
	if err != nil {
		return err
	}
	if subject != orderID {
		return ErrSessionMismatch
	}
	return nil
}

// UpdateOrder applies a partial update. Only fields present in the patch are
// written; an explicit null coupon clears the reference.
func (s *OrderService) UpdateOrder(ctx context.Context, id string, patch models.OrderPatch) (*models.Order, error) {
	order, err := s.DB.GetOrderByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("order %s not found: %w", id, err)
	}

	columns := make([]string, 0, 8)

	if len(patch.CouponID) > 0 {
		if string(patch.CouponID) == "null" {
			order.CouponID = nil
		} else {
			var couponID string
			if err := json.Unmarshal(patch.CouponID, &couponID); err != nil {
				return nil, fmt.Errorf("invalid id_coupons value: %w", err)
			}
			order.CouponID = &couponID
		}
		columns = append(columns, "id_coupons")
	}
	if patch.Subtotal != nil {
		order.Subtotal = *patch.Subtotal
		columns = append(columns, "order_subtotal")
	}
	if patch.DiscountAmount != nil {
		order.DiscountAmount = *patch.DiscountAmount
		columns = append(columns, "discount_amount")
	}
	if patch.GrandTotal != nil {
		order.GrandTotal = *patch.GrandTotal
		columns = append(columns, "grand_order_total")
	}
	if patch.PaymentMethod != nil {
		order.PaymentMethod = *patch.PaymentMethod
		columns = append(columns, "payment_method")
	}
	if patch.PaymentProvider != nil {
		order.PaymentProvider = *patch.PaymentProvider
		columns = append(columns, "payment_provider")
	}
	if patch.PaymentIntentID != nil {
		order.PaymentIntentID = *patch.PaymentIntentID
		columns = append(columns, "payment_intent_id")
	}
	if patch.PaymentStatus != nil {
		order.PaymentStatus = *patch.PaymentStatus
		columns = append(columns, "payment_status")
	}
	if patch.PaidAt != nil {
		paidAt, err := time.Parse(time.RFC3339, *patch.PaidAt)
		if err != nil {
			return nil, fmt.Errorf("invalid paid_at value: %w", err)
		}
		order.PaidAt = &paidAt
		columns = append(columns, "paid_at")
	}
	if patch.RecordStatus != nil {
		order.RecordStatus = *patch.RecordStatus
		columns = append(columns, "record_status")
	}

	if len(columns) == 0 {
		return order, nil
	}

	order.UpdatedAt = time.Now()
	if err := s.DB.UpdateOrder(ctx, order, columns...); err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}
	s.Logger.LogOrder("UPDATE", order.OrderCode, fmt.Sprintf("columns %v updated", columns))

	if s.Events != nil {
		if order.PaymentStatus == models.PaymentCancelled && patch.PaymentStatus != nil {
			if err := s.Events.PublishOrderCancelled(*order); err != nil {
				s.Logger.Warn("KAFKA", fmt.Sprintf("order cancelled event not published: %v", err))
			}
		} else if err := s.Events.PublishOrderUpdated(*order); err != nil {
			s.Logger.Warn("KAFKA", fmt.Sprintf("order updated event not published: %v", err))
		}
	}
	return order, nil
}

// ---------------- ORDER ITEMS ----------------

func (s *OrderService) GetOrderItems(ctx context.Context, orderID string) ([]models.OrderItem, error) {
	return s.DB.GetOrderItems(ctx, orderID)
}

func (s *OrderService) GetOrderItem(ctx context.Context, id string) (*models.OrderItem, error) {
	return s.DB.GetOrderItemByID(ctx, id)
}

func (s *OrderService) CreateOrderItem(ctx context.Context, orderID string, line models.CartItem) (*models.OrderItem, error) {
	now := time.Now()
	item := &models.OrderItem{
		ID:           uuid.NewString(),
		OrderID:      orderID,
		ProductID:    line.ProductID,
		Quantity:     line.Quantity,
		Subtotal:     line.Subtotal,
		Metadata:     line.Metadata,
		RecordStatus: models.RecordPublished,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.DB.CreateOrderItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create order item: %w", err)
	}
	return item, nil
}

func (s *OrderService) UpdateOrderItem(ctx context.Context, id string, line models.CartItem) (*models.OrderItem, error) {
	item, err := s.DB.GetOrderItemByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("order item %s not found: %w", id, err)
	}

	item.Quantity = line.Quantity
	item.Subtotal = line.Subtotal
	if line.Metadata != nil {
		item.Metadata = line.Metadata
	}
	item.UpdatedAt = time.Now()

	if err := s.DB.UpdateOrderItem(ctx, item, "quantity", "subtotal", "metadata"); err != nil {
		return nil, fmt.Errorf("failed to update order item: %w", err)
	}
	return item, nil
}

func (s *OrderService) DeleteOrderItem(ctx context.Context, id string) error {
	return s.DB.DeleteOrderItem(ctx, id)
}

func (s *OrderService) DeleteOrderItems(ctx context.Context, orderID string) error {
	return s.DB.DeleteOrderItems(ctx, orderID)
}

// ---------------- COUPONS ----------------

func (s *OrderService) ListCoupons(ctx context.Context, filter models.CouponFilter) ([]models.Coupon, error) {
	return s.DB.ListCoupons(ctx, filter)
}

func (s *OrderService) GetCouponByID(ctx context.Context, id string) (*models.Coupon, error) {
	return s.DB.GetCouponByID(ctx, id)
}

// ValidateCoupon runs the evaluator against the supplied cart snapshot.
func (s *OrderService) ValidateCoupon(ctx context.Context, in coupon.Input) (*coupon.Result, error) {
	if in.EventID == "" {
		in.EventID = s.EventID
	}
	return s.Coupons.Validate(ctx, in)
}

// ApplyCoupon validates a code against the order's current item set and, if
// valid, persists the coupon reference and recomputed totals.
func (s *OrderService) ApplyCoupon(ctx context.Context, orderID, code string) (*coupon.Result, error) {
	order, err := s.DB.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("order %s not found: %w", orderID, err)
	}

	items, err := s.DB.GetOrderItems(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order items: %w", err)
	}

	base := CalculateTotals(items, 0)
	result, err := s.Coupons.Validate(ctx, coupon.Input{
		Code:          code,
		EventID:       order.EventID,
		OrderSubtotal: base.Subtotal,
		GrandTotal:    base.GrandTotal,
		Items:         cartLines(items),
	})
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return result, nil
	}

	totals := CalculateTotals(items, result.DiscountAmount)
	order.CouponID = &result.Coupon.ID
	order.Subtotal = totals.Subtotal
	order.DiscountAmount = totals.Discount
	order.GrandTotal = totals.GrandTotal
	order.UpdatedAt = time.Now()

	err = s.DB.UpdateOrder(ctx, order, "id_coupons", "order_subtotal", "discount_amount", "grand_order_total")
	if err != nil {
		return nil, fmt.Errorf("failed to apply coupon: %w", err)
	}
	s.Logger.LogOrder("COUPON", order.OrderCode, fmt.Sprintf("coupon %s applied, discount %.2f", result.Coupon.Code, totals.Discount))
	return result, nil
}

// RemoveCoupon clears the coupon reference and restores undiscounted totals.
func (s *OrderService) RemoveCoupon(ctx context.Context, orderID string) (*models.Order, error) {
	order, err := s.DB.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("order %s not found: %w", orderID, err)
	}

	items, err := s.DB.GetOrderItems(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order items: %w", err)
	}

	totals := CalculateTotals(items, 0)
	order.CouponID = nil
	order.Subtotal = totals.Subtotal
	order.DiscountAmount = 0
	order.GrandTotal = totals.GrandTotal
	order.UpdatedAt = time.Now()

	err = s.DB.UpdateOrder(ctx, order, "id_coupons", "order_subtotal", "discount_amount", "grand_order_total")
	if err != nil {
		return nil, fmt.Errorf("failed to remove coupon: %w", err)
	}
	return order, nil
}

func cartLines(items []models.OrderItem) []models.CartItem {
	lines := make([]models.CartItem, len(items))
	for i, item := range items {
		lines[i] = models.CartItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Subtotal:  item.Subtotal,
			Metadata:  item.Metadata,
		}
	}
	return lines
}

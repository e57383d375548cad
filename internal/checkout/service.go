package checkout

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"ticket-store/internal/logger"
	"ticket-store/internal/models"
	"ticket-store/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
	"github.com/uptrace/bun"
)

// ValidationError marks a rejected submission; handlers map it to a 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErrorf(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// Submission is one attendee form as the client sends it. The order-item
// reference may be omitted when the order holds a single item.
type Submission struct {
	FirstName      string                  `json:"first_name" validate:"required"`
	LastName       string                  `json:"last_name"`
	Email          string                  `json:"email" validate:"required,email"`
	Country        string                  `json:"country"`
	Position       string                  `json:"position"`
	CompanyName    string                  `json:"company_name"`
	CompanyFocus   string                  `json:"company_focus"`
	CompanySize    string                  `json:"company_size"`
	CompanyWebsite string                  `json:"company_website" validate:"omitempty,url"`
	CustomAnswers  []models.CustomQuestion `json:"custom_questions"`
	SocialAccounts []models.SocialAccount  `json:"social_accounts"`
	OrderItemID    string                  `json:"id_order_items"`
}

// Result reports what the checkout created.
type Result struct {
	CustomerID  string   `json:"customer_id"`
	AttendeeIDs []string `json:"attendee_ids"`
}

// Service turns attendee submissions into customer, attendee and link rows.
// The whole write path runs in one database transaction.
type Service struct {
	DB       *bun.DB
	Validate *validator.Validate
	Logger   *logger.Logger
}

func NewService(db *bun.DB, log *logger.Logger) *Service {
	return &Service{
		DB:       db,
		Validate: validator.New(),
		Logger:   log,
	}
}

// Checkout creates one customer from the first attendee, one attendee row per
// submission, and a 1:1 link from each attendee to its order-item. The order
// gains the customer reference in the same transaction.
func (s *Service) Checkout(ctx context.Context, orderID string, subs []Submission) (*Result, error) {
	if len(subs) == 0 {
		return nil, validationErrorf("no attendee data provided")
	}

	sanitize(subs)
	for i := range subs {
		if err := s.Validate.Struct(&subs[i]); err != nil {
			return nil, validationErrorf("attendee %d: %v", i+1, err)
		}
	}

	var order models.Order
	err := s.DB.NewSelect().Model(&order).Where("id_orders = ?", orderID).Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, validationErrorf("order %s not found", orderID)
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}

	var items []models.OrderItem
	err = s.DB.NewSelect().
		Model(&items).
		Where("id_orders = ?", orderID).
		Where("record_status = ?", models.RecordPublished).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load order items: %w", err)
	}
	if len(items) == 0 {
		return nil, validationErrorf("order has no items to assign attendees to")
	}

	if err := resolveOrderItems(subs, items); err != nil {
		return nil, err
	}

	result := &Result{AttendeeIDs: make([]string, 0, len(subs))}

	err = s.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		now := time.Now()

		first := subs[0]
		customer := &models.Customer{
			ID:                uuid.NewString(),
			EventID:           order.EventID,
			BillingID:         utils.GenerateBillingCode(),
			BillingName:       strings.TrimSpace(first.FirstName + " " + first.LastName),
			BillingEmail:      first.Email,
			BillingCompany:    first.CompanyName,
			BillingCountry:    first.Country,
			BillingWebsiteURL: first.CompanyWebsite,
			IsApproved:        false,
			RecordStatus:      models.RecordPublished,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		if _, err := tx.NewInsert().Model(customer).Exec(ctx); err != nil {
			return fmt.Errorf("failed to create customer: %w", err)
		}
		result.CustomerID = customer.ID

		_, err := tx.NewUpdate().
			Model(&order).
			Set("id_customers = ?", customer.ID).
			Set("updated_at = ?", now).
			Where("id_orders = ?", order.ID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to attach customer to order: %w", err)
		}

		attendees := make([]models.Attendee, len(subs))
		links := make([]models.OrderItemAttendee, len(subs))
		for i, sub := range subs {
			code := utils.GenerateAttendeeCode()
			png, err := qrcode.Encode(code, qrcode.Medium, 256)
			if err != nil {
				return fmt.Errorf("failed to generate attendee QR: %w", err)
			}

			attendees[i] = models.Attendee{
				ID:             uuid.NewString(),
				EventID:        order.EventID,
				CustomerID:     &customer.ID,
				AttendeeCode:   code,
				FirstName:      sub.FirstName,
				LastName:       sub.LastName,
				Email:          sub.Email,
				Country:        sub.Country,
				Position:       sub.Position,
				CompanyName:    sub.CompanyName,
				CompanyFocus:   sub.CompanyFocus,
				CompanySize:    sub.CompanySize,
				CompanyWebsite: sub.CompanyWebsite,
				CustomAnswers:  sub.CustomAnswers,
				SocialAccounts: sub.SocialAccounts,
				QRCode:         png,
				IsCustomer:     i == 0,
				IsApproved:     false,
				RecordStatus:   models.RecordPublished,
				CreatedAt:      now,
				UpdatedAt:      now,
			}
			links[i] = models.OrderItemAttendee{
				ID:           uuid.NewString(),
				OrderItemID:  sub.OrderItemID,
				AttendeeID:   attendees[i].ID,
				RecordStatus: models.RecordPublished,
			}
		}

		if _, err := tx.NewInsert().Model(&attendees).Exec(ctx); err != nil {
			return fmt.Errorf("failed to create attendees: %w", err)
		}
		if _, err := tx.NewInsert().Model(&links).Exec(ctx); err != nil {
			return fmt.Errorf("failed to link attendees to order items: %w", err)
		}

		for i := range attendees {
			result.AttendeeIDs = append(result.AttendeeIDs, attendees[i].ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.LogOrder("CHECKOUT", order.OrderCode, fmt.Sprintf("%d attendees linked, customer %s", len(subs), result.CustomerID))
	return result, nil
}

// GetCustomer returns a published customer by id.
func (s *Service) GetCustomer(ctx context.Context, id string) (*models.Customer, error) {
	var customer models.Customer
	err := s.DB.NewSelect().
		Model(&customer).
		Where("id_customers = ?", id).
		Where("record_status = ?", models.RecordPublished).
		Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

func sanitize(subs []Submission) {
	for i := range subs {
		subs[i].FirstName = strings.TrimSpace(subs[i].FirstName)
		subs[i].LastName = strings.TrimSpace(subs[i].LastName)
		subs[i].Email = strings.TrimSpace(subs[i].Email)
		subs[i].Country = strings.TrimSpace(subs[i].Country)
		subs[i].Position = strings.TrimSpace(subs[i].Position)
		subs[i].CompanyName = strings.TrimSpace(subs[i].CompanyName)
		subs[i].CompanyFocus = strings.TrimSpace(subs[i].CompanyFocus)
		subs[i].CompanySize = strings.TrimSpace(subs[i].CompanySize)
		subs[i].CompanyWebsite = strings.TrimSpace(subs[i].CompanyWebsite)
		subs[i].OrderItemID = strings.TrimSpace(subs[i].OrderItemID)

		questions := subs[i].CustomAnswers[:0]
		for _, q := range subs[i].CustomAnswers {
			q.Question = strings.TrimSpace(q.Question)
			q.Answer = strings.TrimSpace(q.Answer)
			if q.Question != "" {
				questions = append(questions, q)
			}
		}
		subs[i].CustomAnswers = questions

		accounts := subs[i].SocialAccounts[:0]
		for _, a := range subs[i].SocialAccounts {
			a.SocialMedia = strings.TrimSpace(a.SocialMedia)
			a.URL = strings.TrimSpace(a.URL)
			if a.SocialMedia != "" || a.URL != "" {
				accounts = append(accounts, a)
			}
		}
		subs[i].SocialAccounts = accounts
	}
}

// resolveOrderItems assigns each submission to an order-item of the order.
// A missing reference is inferred only when exactly one item exists; with
// several items every submission must name its item explicitly.
func resolveOrderItems(subs []Submission, items []models.OrderItem) error {
	allowed := make(map[string]bool, len(items))
	for _, item := range items {
		allowed[item.ID] = true
	}

	for i := range subs {
		if subs[i].OrderItemID == "" {
			if len(items) != 1 {
				return validationErrorf("attendee %d: id_order_items is required when the order has multiple items", i+1)
			}
			subs[i].OrderItemID = items[0].ID
			continue
		}
		if !allowed[subs[i].OrderItemID] {
			return validationErrorf("attendee %d: order item %s does not belong to this order", i+1, subs[i].OrderItemID)
		}
	}
	return nil
}

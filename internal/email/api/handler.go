package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"ticket-store/internal/email"
	"ticket-store/internal/logger"
	"ticket-store/internal/utils"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	Sender  *email.Sender
	Logger  *logger.Logger
	SiteURL string
}

func NewHandler(sender *email.Sender, log *logger.Logger, siteURL string) *Handler {
	return &Handler{
		Sender:  sender,
		Logger:  log,
		SiteURL: siteURL,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/order-confirmation", h.SendOrderConfirmation)
}

// SendOrderConfirmation fires the confirmation email for a completed order.
// Delivery is best-effort: a failed send still returns 200 with a warning so
// the checkout flow never stalls on email.
func (h *Handler) SendOrderConfirmation(w http.ResponseWriter, r *http.Request) {
	var body struct {
		OrderID  string  `json:"orderId"`
		Email    string  `json:"email"`
		FullName string  `json:"fullname"`
		Amount   float64 `json:"amount"`
		IsFree   bool    `json:"isFree"`
		SentAt   string  `json:"sentAt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if body.OrderID == "" || body.Email == "" || body.FullName == "" {
		utils.WriteError(w, http.StatusBadRequest, "Missing required fields: orderId, email, fullname")
		return
	}

	amount := body.Amount
	if body.IsFree {
		amount = 0
	}
	data := email.TemplateData{
		OrderID:  body.OrderID,
		FullName: body.FullName,
		Amount:   amount,
		SentAt:   body.SentAt,
		OrderURL: fmt.Sprintf("%s/checkout/order-received?process=%s", h.SiteURL, body.OrderID),
		IsFree:   body.IsFree,
	}

	if err := h.Sender.SendOrderConfirmation(body.Email, data); err != nil {
		warning := "Email processing error but order was processed"
		if errors.Is(err, email.ErrNotConfigured) {
			warning = "Email configuration is missing but order was processed"
		}
		h.Logger.Warn("EMAIL", fmt.Sprintf("confirmation for order %s not sent: %v", body.OrderID, err))
		utils.WriteJSON(w, http.StatusOK, map[string]string{
			"warning": warning,
			"error":   err.Error(),
		})
		return
	}

	message := "Paid order email sent successfully"
	if body.IsFree {
		message = "Free order email sent successfully"
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": message,
	})
}

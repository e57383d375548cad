package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"ticket-store/internal/logger"
	"ticket-store/internal/payment"
	"ticket-store/internal/utils"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	Payments      *payment.Service
	Logger        *logger.Logger
	WebhookSecret string
}

func NewHandler(payments *payment.Service, log *logger.Logger, webhookSecret string) *Handler {
	return &Handler{
		Payments:      payments,
		Logger:        log,
		WebhookSecret: webhookSecret,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/create", h.CreatePayment)
	r.Post("/webhook", h.Webhook)
	r.Post("/webhook/invoice", h.Webhook)
}

func (h *Handler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req payment.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.ExternalID == "" || req.PayerEmail == "" || req.FullName == "" || req.OrderID == "" {
		utils.WriteError(w, http.StatusBadRequest, "extrnlId, payerEmail, fullname and order are required")
		return
	}

	result, err := h.Payments.Dispatch(r.Context(), req)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("CreatePayment: %v", err))
		utils.WriteError(w, http.StatusInternalServerError, "Failed to create payment")
		return
	}
	utils.WriteJSON(w, http.StatusOK, result)
}

// Webhook resolves a provider notification to the full invoice object. The
// shared secret in x-api-key gates the endpoint; the payload itself is not
// trusted beyond the invoice id.
func (h *Handler) Webhook(w http.ResponseWriter, r *http.Request) {
	apiKey := r.Header.Get("x-api-key")
	if apiKey == "" || apiKey != h.WebhookSecret {
		utils.WriteError(w, http.StatusMethodNotAllowed, "Forbidden")
		return
	}

	var body struct {
		PaymentID string `json:"paymentId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.PaymentID == "" {
		utils.WriteError(w, http.StatusBadRequest, "paymentId is required")
		return
	}

	invoice, err := h.Payments.LookupInvoice(r.Context(), body.PaymentID)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("Webhook: invoice lookup failed: %v", err))
		utils.WriteError(w, http.StatusInternalServerError, "Failed to resolve invoice")
		return
	}
	utils.WriteJSON(w, http.StatusOK, invoice)
}

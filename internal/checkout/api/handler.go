package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"ticket-store/internal/checkout"
	"ticket-store/internal/logger"
	"ticket-store/internal/order"
	"ticket-store/internal/session"
	"ticket-store/internal/utils"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	Checkout     *checkout.Service
	OrderService *order.OrderService
	Logger       *logger.Logger
}

func NewHandler(checkoutService *checkout.Service, orderService *order.OrderService, log *logger.Logger) *Handler {
	return &Handler{
		Checkout:     checkoutService,
		OrderService: orderService,
		Logger:       log,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/attendees", h.CreateAttendees)
	r.Get("/customers", h.GetCustomer)
}

// CreateAttendees accepts either an attendees array or a single attendee
// object and runs the checkout flow for the order named by id_orders.
func (h *Handler) CreateAttendees(w http.ResponseWriter, r *http.Request) {
	orderID := r.URL.Query().Get("id_orders")
	if orderID == "" {
		utils.WriteError(w, http.StatusBadRequest, "id_orders is required")
		return
	}

	token, err := session.FromRequest(r)
	if err != nil {
		utils.WriteError(w, http.StatusUnauthorized, "Session token is required")
		return
	}
	if err := h.OrderService.VerifySession(token, orderID); err != nil {
		if errors.Is(err, session.ErrExpired) {
			utils.WriteJSON(w, http.StatusOK, utils.Envelope{
				Warning: "Session has expired, please start a new order",
			})
			return
		}
		utils.WriteError(w, http.StatusUnauthorized, "Invalid session token")
		return
	}

	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	subs, err := decodeSubmissions(raw)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.Checkout.Checkout(r.Context(), orderID, subs)
	if err != nil {
		var verr *checkout.ValidationError
		if errors.As(err, &verr) {
			utils.WriteError(w, http.StatusBadRequest, verr.Message)
			return
		}
		h.Logger.Error("API", fmt.Sprintf("CreateAttendees: %v", err))
		utils.WriteError(w, http.StatusInternalServerError, "Failed to create attendees")
		return
	}

	utils.WriteData(w, http.StatusCreated, result, "Attendees created and linked to order items successfully")
}

func (h *Handler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	customerID := r.URL.Query().Get("id_customers")
	if customerID == "" {
		utils.WriteError(w, http.StatusBadRequest, "id_customers is required")
		return
	}

	customer, err := h.Checkout.GetCustomer(r.Context(), customerID)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("GetCustomer: %v", err))
		utils.WriteError(w, http.StatusInternalServerError, "Failed to load customer")
		return
	}
	if customer == nil {
		utils.WriteError(w, http.StatusNotFound, "Customer not found")
		return
	}
	utils.WriteJSON(w, http.StatusOK, customer)
}

// decodeSubmissions accepts {"attendees":[...]}, a bare array, or one
// attendee object.
func decodeSubmissions(raw json.RawMessage) ([]checkout.Submission, error) {
	var wrapped struct {
		Attendees []checkout.Submission `json:"attendees"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && len(wrapped.Attendees) > 0 {
		return wrapped.Attendees, nil
	}

	var list []checkout.Submission
	if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
		return list, nil
	}

	var single checkout.Submission
	if err := json.Unmarshal(raw, &single); err == nil && (single.FirstName != "" || single.Email != "") {
		return []checkout.Submission{single}, nil
	}

	return nil, errors.New("No attendee data provided")
}

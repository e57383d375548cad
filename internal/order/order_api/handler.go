package order_api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"ticket-store/internal/logger"
	"ticket-store/internal/models"
	"ticket-store/internal/order"
	"ticket-store/internal/order/coupon"
	"ticket-store/internal/session"
	"ticket-store/internal/utils"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	OrderService *order.OrderService
	Logger       *logger.Logger
}

func NewHandler(orderService *order.OrderService, log *logger.Logger) *Handler {
	return &Handler{
		OrderService: orderService,
		Logger:       log,
	}
}

// RegisterRoutes mounts the order, order-item and coupon endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		r.Post("/", h.CreateOrder)
		r.Get("/", h.GetOrder)
		r.Patch("/", h.UpdateOrder)
	})
	r.Route("/order-items", func(r chi.Router) {
		r.Get("/", h.GetOrderItems)
		r.Post("/", h.CreateOrderItem)
		r.Put("/", h.SyncCart)
		r.Delete("/", h.DeleteOrderItems)
		r.Get("/{itemId}", h.GetOrderItem)
		r.Patch("/{itemId}", h.UpdateOrderItem)
		r.Delete("/{itemId}", h.DeleteOrderItem)
	})
	r.Route("/coupons", func(r chi.Router) {
		r.Get("/", h.ListCoupons)
		r.Post("/validate", h.ValidateCoupon)
	})
}

// requireSession checks the X-Session-Token header against the target order.
// It writes the error response itself and reports whether the caller may
// proceed.
func (h *Handler) requireSession(w http.ResponseWriter, r *http.Request, orderID string) bool {
	token, err := session.FromRequest(r)
	if err != nil {
		h.Logger.Warn("API", fmt.Sprintf("session token missing for order %s", orderID))
		utils.WriteError(w, http.StatusUnauthorized, "Session token is required")
		return false
	}

	if err := h.OrderService.VerifySession(token, orderID); err != nil {
		switch err {
		case session.ErrExpired:
			// Soft rejection so the storefront can prompt for a fresh order
			// instead of surfacing an HTTP failure.
			utils.WriteJSON(w, http.StatusOK, utils.Envelope{
				Warning: "Session has expired, please start a new order",
			})
		default:
			utils.WriteError(w, http.StatusUnauthorized, "Invalid session token")
		}
		return false
	}
	return true
}

// ---------------- ORDERS ----------------

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var body struct {
		EventID string `json:"id_events"`
	}
	if r.Body != nil {
		// Body is optional; an empty one falls back to the configured event.
		_ = json.NewDecoder(r.Body).Decode(&body)
	}

	orderData, err := h.OrderService.CreateOrder(r.Context(), body.EventID)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("CreateOrder: %v", err))
		utils.WriteError(w, http.StatusInternalServerError, "Failed to create order")
		return
	}
	utils.WriteJSON(w, http.StatusCreated, orderData)
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := r.URL.Query().Get("id_orders")
	if orderID == "" {
		utils.WriteError(w, http.StatusBadRequest, "id_orders is required")
		return
	}

	orderData, err := h.OrderService.GetOrder(r.Context(), orderID)
	if err != nil {
		h.Logger.Warn("API", fmt.Sprintf("GetOrder: order %s not found: %v", orderID, err))
		utils.WriteError(w, http.StatusNotFound, "Order not found")
		return
	}
	utils.WriteJSON(w, http.StatusOK, orderData)
}

func (h *Handler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	orderID := r.URL.Query().Get("id_orders")
	if orderID == "" {
		utils.WriteError(w, http.StatusBadRequest, "id_orders is required")
		return
	}
	if !h.requireSession(w, r, orderID) {
		return
	}

	var patch models.OrderPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	orderData, err := h.OrderService.UpdateOrder(r.Context(), orderID, patch)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("UpdateOrder: %v", err))
		utils.WriteError(w, http.StatusInternalServerError, "Failed to update order")
		return
	}
	utils.WriteJSON(w, http.StatusOK, orderData)
}

// ---------------- ORDER ITEMS ----------------

func (h *Handler) GetOrderItems(w http.ResponseWriter, r *http.Request) {
	orderID := r.URL.Query().Get("id_orders")
	if orderID == "" {
		utils.WriteError(w, http.StatusBadRequest, "id_orders is required")
		return
	}

	items, err := h.OrderService.GetOrderItems(r.Context(), orderID)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("GetOrderItems: %v", err))
		utils.WriteError(w, http.StatusInternalServerError, "Failed to load order items")
		return
	}
	utils.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) CreateOrderItem(w http.ResponseWriter, r *http.Request) {
	orderID := r.URL.Query().Get("id_orders")
	if orderID == "" {
		utils.WriteError(w, http.StatusBadRequest, "id_orders is required")
		return
	}
	if !h.requireSession(w, r, orderID) {
		return
	}

	var line models.CartItem
	if err := json.NewDecoder(r.Body).Decode(&line); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if line.ProductID == "" || line.Quantity <= 0 {
		utils.WriteError(w, http.StatusBadRequest, "id_products and a positive quantity are required")
		return
	}

	item, err := h.OrderService.CreateOrderItem(r.Context(), orderID, line)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("CreateOrderItem: %v", err))
		utils.WriteError(w, http.StatusInternalServerError, "Failed to create order item")
		return
	}
	utils.WriteJSON(w, http.StatusCreated, item)
}

// SyncCart replaces the whole item set of an order with the request body's
// items array and returns the recomputed order.
func (h *Handler) SyncCart(w http.ResponseWriter, r *http.Request) {
	orderID := r.URL.Query().Get("id_orders")
	if orderID == "" {
		utils.WriteError(w, http.StatusBadRequest, "id_orders is required")
		return
	}
	if !h.requireSession(w, r, orderID) {
		return
	}

	var body struct {
		Items []models.CartItem `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	for _, line := range body.Items {
		if line.ProductID == "" || line.Quantity <= 0 {
			utils.WriteError(w, http.StatusBadRequest, "every item needs id_products and a positive quantity")
			return
		}
	}

	result, err := h.OrderService.SyncCart(r.Context(), orderID, body.Items)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("SyncCart: %v", err))
		utils.WriteError(w, http.StatusInternalServerError, "Failed to sync cart")
		return
	}
	utils.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) DeleteOrderItems(w http.ResponseWriter, r *http.Request) {
	orderID := r.URL.Query().Get("id_orders")
	if orderID == "" {
		utils.WriteError(w, http.StatusBadRequest, "id_orders is required")
		return
	}
	if !h.requireSession(w, r, orderID) {
		return
	}

	if err := h.OrderService.DeleteOrderItems(r.Context(), orderID); err != nil {
		h.Logger.Error("API", fmt.Sprintf("DeleteOrderItems: %v", err))
		utils.WriteError(w, http.StatusInternalServerError, "Failed to delete order items")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetOrderItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemId")

	item, err := h.OrderService.GetOrderItem(r.Context(), itemID)
	if err != nil {
		utils.WriteError(w, http.StatusNotFound, "Order item not found")
		return
	}
	utils.WriteJSON(w, http.StatusOK, item)
}

func (h *Handler) UpdateOrderItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemId")

	item, err := h.OrderService.GetOrderItem(r.Context(), itemID)
	if err != nil {
		utils.WriteError(w, http.StatusNotFound, "Order item not found")
		return
	}
	if !h.requireSession(w, r, item.OrderID) {
		return
	}

	var line models.CartItem
	if err := json.NewDecoder(r.Body).Decode(&line); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if line.Quantity <= 0 {
		utils.WriteError(w, http.StatusBadRequest, "a positive quantity is required")
		return
	}

	updated, err := h.OrderService.UpdateOrderItem(r.Context(), itemID, line)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("UpdateOrderItem: %v", err))
		utils.WriteError(w, http.StatusInternalServerError, "Failed to update order item")
		return
	}
	utils.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteOrderItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemId")

	item, err := h.OrderService.GetOrderItem(r.Context(), itemID)
	if err != nil {
		utils.WriteError(w, http.StatusNotFound, "Order item not found")
		return
	}
	if !h.requireSession(w, r, item.OrderID) {
		return
	}

	if err := h.OrderService.DeleteOrderItem(r.Context(), itemID); err != nil {
		h.Logger.Error("API", fmt.Sprintf("DeleteOrderItem: %v", err))
		utils.WriteError(w, http.StatusInternalServerError, "Failed to delete order item")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---------------- COUPONS ----------------

func (h *Handler) ListCoupons(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if couponID := q.Get("id_coupons"); couponID != "" {
		couponData, err := h.OrderService.GetCouponByID(r.Context(), couponID)
		if err != nil {
			utils.WriteError(w, http.StatusInternalServerError, "Failed to load coupon")
			return
		}
		if couponData == nil {
			utils.WriteError(w, http.StatusNotFound, "Coupon not found")
			return
		}
		utils.WriteJSON(w, http.StatusOK, couponData)
		return
	}

	filter := models.CouponFilter{
		IsPublic: q.Get("is_public") == "true",
		IsActive: q.Get("is_active") == "true",
		WithSale: q.Get("with_sale") == "true",
	}
	coupons, err := h.OrderService.ListCoupons(r.Context(), filter)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ListCoupons: %v", err))
		utils.WriteError(w, http.StatusInternalServerError, "Failed to load coupons")
		return
	}
	utils.WriteJSON(w, http.StatusOK, coupons)
}

// ValidateCoupon checks a code against a cart snapshot without touching any
// order. Business-rule failures return 200 with valid:false; only transport
// failures return 500.
func (h *Handler) ValidateCoupon(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Code          string            `json:"couponCode"`
		OrderSubtotal *float64          `json:"orderSubtotal"`
		GrandTotal    float64           `json:"grandTotal"`
		Items         []models.CartItem `json:"cartItems"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if body.Code == "" {
		utils.WriteError(w, http.StatusBadRequest, "couponCode is required")
		return
	}
	if body.OrderSubtotal == nil {
		utils.WriteError(w, http.StatusBadRequest, "orderSubtotal is required")
		return
	}

	grandTotal := body.GrandTotal
	if grandTotal == 0 {
		grandTotal = order.Round2(*body.OrderSubtotal * (1 + order.TaxRate))
	}

	result, err := h.OrderService.ValidateCoupon(r.Context(), coupon.Input{
		Code:          body.Code,
		OrderSubtotal: *body.OrderSubtotal,
		GrandTotal:    grandTotal,
		Items:         body.Items,
	})
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ValidateCoupon: %v", err))
		utils.WriteError(w, http.StatusInternalServerError, "Failed to validate coupon")
		return
	}
	utils.WriteJSON(w, http.StatusOK, result)
}

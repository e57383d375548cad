package api

import (
	"fmt"
	"net/http"

	"ticket-store/internal/catalog"
	"ticket-store/internal/logger"
	"ticket-store/internal/utils"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	Service *catalog.Service
	Logger  *logger.Logger
}

func NewHandler(service *catalog.Service, log *logger.Logger) *Handler {
	return &Handler{Service: service, Logger: log}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/products", h.ListProducts)
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.Service.ListProducts(r.Context())
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ListProducts: %v", err))
		utils.WriteError(w, http.StatusInternalServerError, "Failed to load products")
		return
	}
	utils.WriteJSON(w, http.StatusOK, products)
}

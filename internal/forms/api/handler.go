package api

import (
	"net/http"

	"ticket-store/internal/forms"
	"ticket-store/internal/models"
	"ticket-store/internal/utils"

	"github.com/go-chi/chi/v5"
)

// Field names as they appear in the marketing form definition.
const (
	fieldCompanySize  = "company_size"
	fieldPosition     = "job_title_position"
	fieldCompanyFocus = "company_focus"
	fieldNetworking   = "what_type_of_connections_and_networking_do_you_hope_to_achieve_at_coinfest_asia_"
	fieldHearAbout    = "where_did_you_hear_about_coinfest_asia_2024_"
)

type Handler struct {
	Forms *forms.Service
}

func NewHandler(formsService *forms.Service) *Handler {
	return &Handler{Forms: formsService}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/company-sizes", h.options(fieldCompanySize, forms.FallbackCompanySizes))
	r.Get("/company-positions", h.options(fieldPosition, forms.FallbackPositions))
	r.Get("/company-focus", h.options(fieldCompanyFocus, forms.FallbackCompanyFocus))
	r.Get("/networking", h.options(fieldNetworking, forms.FallbackNetworking))
	r.Get("/hear-about", h.options(fieldHearAbout, forms.FallbackHearAbout))
}

func (h *Handler) options(fieldName string, fallback []models.FormOption) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := h.Forms.GetFieldOptions(r.Context(), fieldName, fallback)
		w.Header().Set("Cache-Control", "public, s-maxage=3600, stale-while-revalidate=86400")
		utils.WriteJSON(w, http.StatusOK, response)
	}
}

package adaptor

import (
	"encoding/json"
	"net/http"

	"studio-booking/internal/dto/request"
	"studio-booking/internal/usecase"
	"studio-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CheckoutHandler struct {
	service usecase.CheckoutService
	log     *zap.Logger
}

func NewCheckoutHandler(service usecase.CheckoutService, log *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		log:     log.With(zap.String("handler", "checkout")),
	}
}

// Get handles GET /api/appointments/{id}/checkout
func (h *CheckoutHandler) Get(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromRequest(w, r)
	if !ok {
		return
	}

	res, err := h.service.Get(r.Context(), tenantID, chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, h.log, err, "get checkout")
		return
	}

	utils.ResponseSuccess(w, "success", res)
}

// SetItems handles PUT /api/appointments/{id}/checkout/items
func (h *CheckoutHandler) SetItems(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromRequest(w, r)
	if !ok {
		return
	}

	var req request.SetCheckoutItemsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	res, err := h.service.SetItems(r.Context(), tenantID, chi.URLParam(r, "id"), &req)
	if err != nil {
		respondServiceError(w, h.log, err, "set checkout items")
		return
	}

	utils.ResponseSuccess(w, "success", res)
}

// ApplyDiscount handles PUT /api/appointments/{id}/checkout/discount
func (h *CheckoutHandler) ApplyDiscount(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromRequest(w, r)
	if !ok {
		return
	}

	var req request.ApplyDiscountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	res, err := h.service.ApplyDiscount(r.Context(), tenantID, chi.URLParam(r, "id"), &req)
	if err != nil {
		respondServiceError(w, h.log, err, "apply discount")
		return
	}

	utils.ResponseSuccess(w, "success", res)
}

// RemoveDiscount handles DELETE /api/appointments/{id}/checkout/discount
func (h *CheckoutHandler) RemoveDiscount(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromRequest(w, r)
	if !ok {
		return
	}

	res, err := h.service.RemoveDiscount(r.Context(), tenantID, chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, h.log, err, "remove discount")
		return
	}

	utils.ResponseSuccess(w, "success", res)
}

// Confirm handles POST /api/appointments/{id}/checkout/confirm
func (h *CheckoutHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromRequest(w, r)
	if !ok {
		return
	}

	res, err := h.service.Confirm(r.Context(), tenantID, chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, h.log, err, "confirm checkout")
		return
	}

	utils.ResponseSuccess(w, "success", res)
}

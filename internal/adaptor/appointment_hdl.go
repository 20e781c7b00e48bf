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

type AppointmentHandler struct {
	service usecase.AppointmentService
	log     *zap.Logger
}

func NewAppointmentHandler(service usecase.AppointmentService, log *zap.Logger) *AppointmentHandler {
	return &AppointmentHandler{
		service: service,
		log:     log.With(zap.String("handler", "appointment")),
	}
}

// Create handles POST /api/appointments
func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromRequest(w, r)
	if !ok {
		return
	}

	var req request.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	res, err := h.service.Create(r.Context(), tenantID, &req)
	if err != nil {
		respondServiceError(w, h.log, err, "create appointment")
		return
	}

	utils.ResponseCreated(w, "success", res)
}

// GetByID handles GET /api/appointments/{id}
func (h *AppointmentHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromRequest(w, r)
	if !ok {
		return
	}

	res, err := h.service.GetByID(r.Context(), tenantID, chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, h.log, err, "get appointment")
		return
	}

	utils.ResponseSuccess(w, "success", res)
}

// List handles GET /api/appointments
func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromRequest(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	res, err := h.service.List(r.Context(), tenantID, req)
	if err != nil {
		respondServiceError(w, h.log, err, "list appointments")
		return
	}

	utils.ResponseSuccess(w, "success", res)
}

// Reschedule handles PUT /api/appointments/{id}/reschedule
func (h *AppointmentHandler) Reschedule(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromRequest(w, r)
	if !ok {
		return
	}

	var req request.RescheduleAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	res, err := h.service.Reschedule(r.Context(), tenantID, chi.URLParam(r, "id"), &req)
	if err != nil {
		respondServiceError(w, h.log, err, "reschedule appointment")
		return
	}

	utils.ResponseSuccess(w, "success", res)
}

// Confirm handles PUT /api/appointments/{id}/confirm
func (h *AppointmentHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromRequest(w, r)
	if !ok {
		return
	}

	if err := h.service.Confirm(r.Context(), tenantID, chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, h.log, err, "confirm appointment")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// Cancel handles PUT /api/appointments/{id}/cancel
func (h *AppointmentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromRequest(w, r)
	if !ok {
		return
	}

	var req request.CancelAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.Cancel(r.Context(), tenantID, chi.URLParam(r, "id"), &req); err != nil {
		respondServiceError(w, h.log, err, "cancel appointment")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// MarkNoShow handles PUT /api/appointments/{id}/no-show
func (h *AppointmentHandler) MarkNoShow(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromRequest(w, r)
	if !ok {
		return
	}

	if err := h.service.MarkNoShow(r.Context(), tenantID, chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, h.log, err, "mark appointment no-show")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

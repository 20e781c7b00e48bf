package adaptor

import (
	"encoding/json"
	"net/http"

	"studio-booking/internal/dto/request"
	"studio-booking/internal/usecase"
	"studio-booking/pkg/utils"

	"go.uber.org/zap"
)

type AvailabilityHandler struct {
	service usecase.AvailabilityService
	log     *zap.Logger
}

func NewAvailabilityHandler(service usecase.AvailabilityService, log *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		service: service,
		log:     log.With(zap.String("handler", "availability")),
	}
}

// GetSlots handles GET /api/availability/slots?service_id=&date=&home_visit=
func (h *AvailabilityHandler) GetSlots(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromRequest(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	serviceID := query.Get("service_id")
	date := query.Get("date")
	if serviceID == "" || date == "" {
		utils.ResponseBadRequest(w, "service_id and date are required", nil)
		return
	}
	isHomeVisit := query.Get("home_visit") == "true"

	res, err := h.service.GetAvailableSlots(r.Context(), tenantID, serviceID, date, isHomeVisit)
	if err != nil {
		respondServiceError(w, h.log, err, "get available slots")
		return
	}

	utils.ResponseSuccess(w, "success", res)
}

// BulkCreateBlocks handles POST /api/availability/blocks (admin)
func (h *AvailabilityHandler) BulkCreateBlocks(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromRequest(w, r)
	if !ok {
		return
	}

	var req request.BulkCreateBlocksRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	res, err := h.service.BulkCreateBlocks(r.Context(), tenantID, &req)
	if err != nil {
		respondServiceError(w, h.log, err, "bulk create blocks")
		return
	}

	utils.ResponseCreated(w, "success", res)
}

// BulkDeleteBlocks handles DELETE /api/availability/blocks (admin)
func (h *AvailabilityHandler) BulkDeleteBlocks(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromRequest(w, r)
	if !ok {
		return
	}

	var req request.BulkDeleteBlocksRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	res, err := h.service.BulkDeleteBlocks(r.Context(), tenantID, &req)
	if err != nil {
		respondServiceError(w, h.log, err, "bulk delete blocks")
		return
	}

	utils.ResponseSuccess(w, "success", res)
}

package adaptor

import (
	"net/http"

	"studio-booking/internal/usecase"
	"studio-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AttendanceHandler struct {
	service usecase.AttendanceService
	log     *zap.Logger
}

func NewAttendanceHandler(service usecase.AttendanceService, log *zap.Logger) *AttendanceHandler {
	return &AttendanceHandler{
		service: service,
		log:     log.With(zap.String("handler", "attendance")),
	}
}

// Start handles POST /api/appointments/{id}/timer/start
func (h *AttendanceHandler) Start(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromRequest(w, r)
	if !ok {
		return
	}

	res, err := h.service.StartTimer(r.Context(), tenantID, chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, h.log, err, "start timer")
		return
	}

	utils.ResponseSuccess(w, "success", res)
}

// Pause handles POST /api/appointments/{id}/timer/pause
func (h *AttendanceHandler) Pause(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromRequest(w, r)
	if !ok {
		return
	}

	res, err := h.service.PauseTimer(r.Context(), tenantID, chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, h.log, err, "pause timer")
		return
	}

	utils.ResponseSuccess(w, "success", res)
}

// Resume handles POST /api/appointments/{id}/timer/resume
func (h *AttendanceHandler) Resume(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromRequest(w, r)
	if !ok {
		return
	}

	res, err := h.service.ResumeTimer(r.Context(), tenantID, chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, h.log, err, "resume timer")
		return
	}

	utils.ResponseSuccess(w, "success", res)
}

// Finish handles POST /api/appointments/{id}/timer/finish
func (h *AttendanceHandler) Finish(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromRequest(w, r)
	if !ok {
		return
	}

	res, err := h.service.FinishTimer(r.Context(), tenantID, chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, h.log, err, "finish timer")
		return
	}

	utils.ResponseSuccess(w, "success", res)
}

// Get handles GET /api/appointments/{id}/timer
func (h *AttendanceHandler) Get(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromRequest(w, r)
	if !ok {
		return
	}

	res, err := h.service.GetTimer(r.Context(), tenantID, chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, h.log, err, "get timer")
		return
	}

	utils.ResponseSuccess(w, "success", res)
}

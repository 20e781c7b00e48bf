package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"studio-booking/internal/dto/request"
	"studio-booking/internal/gateway"
	"studio-booking/internal/usecase"
	"studio-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	service usecase.PaymentService
	log     *zap.Logger
}

func NewPaymentHandler(service usecase.PaymentService, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		log:     log.With(zap.String("handler", "payment")),
	}
}

// handleError maps gateway failures before falling back to the generic
// message-shape switch. Network failures surface as 502 because the charge
// may have landed on the provider side; the client must poll, not retry
// blindly.
func (h *PaymentHandler) handleError(w http.ResponseWriter, err error, operation string) {
	var gwErr *gateway.Error
	if errors.As(err, &gwErr) {
		switch gwErr.Class {
		case gateway.ErrorClassNetwork:
			h.log.Warn(operation+" failed - provider unreachable", zap.Error(err))
			utils.ResponseBadGateway(w, gwErr.UserMessage)
		case gateway.ErrorClassProvider:
			h.log.Warn(operation+" rejected by provider",
				zap.Error(err),
				zap.String("code", gwErr.Code),
				zap.Int("provider_status", gwErr.HTTPStatus))
			utils.ResponseBadRequest(w, gwErr.UserMessage, nil)
		default:
			h.log.Error(operation+" failed - gateway misconfigured", zap.Error(err))
			utils.ResponseInternalError(w, gwErr.UserMessage)
		}
		return
	}

	respondServiceError(w, h.log, err, operation)
}

// CreatePixCharge handles POST /api/appointments/{id}/payments/pix
func (h *PaymentHandler) CreatePixCharge(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromRequest(w, r)
	if !ok {
		return
	}

	var req request.PixChargeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	res, err := h.service.CreatePixCharge(r.Context(), tenantID, chi.URLParam(r, "id"), &req)
	if err != nil {
		h.handleError(w, err, "create pix charge")
		return
	}

	utils.ResponseCreated(w, "success", res)
}

// CreateCardCharge handles POST /api/appointments/{id}/payments/card
func (h *PaymentHandler) CreateCardCharge(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromRequest(w, r)
	if !ok {
		return
	}

	var req request.CardChargeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	res, err := h.service.CreateCardCharge(r.Context(), tenantID, chi.URLParam(r, "id"), &req)
	if err != nil {
		h.handleError(w, err, "create card charge")
		return
	}

	utils.ResponseCreated(w, "success", res)
}

// CreatePointCharge handles POST /api/appointments/{id}/payments/point
func (h *PaymentHandler) CreatePointCharge(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromRequest(w, r)
	if !ok {
		return
	}

	var req request.PointChargeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	res, err := h.service.CreatePointCharge(r.Context(), tenantID, chi.URLParam(r, "id"), &req)
	if err != nil {
		h.handleError(w, err, "create point charge")
		return
	}

	utils.ResponseCreated(w, "success", res)
}

// PollOrder handles GET /api/appointments/{id}/payments/orders/{orderID}
func (h *PaymentHandler) PollOrder(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromRequest(w, r)
	if !ok {
		return
	}

	res, err := h.service.PollOrder(r.Context(), tenantID, chi.URLParam(r, "id"), chi.URLParam(r, "orderID"))
	if err != nil {
		h.handleError(w, err, "poll order")
		return
	}

	utils.ResponseSuccess(w, "success", res)
}

// RecordManualPayment handles POST /api/appointments/{id}/payments/manual
func (h *PaymentHandler) RecordManualPayment(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromRequest(w, r)
	if !ok {
		return
	}

	var req request.ManualPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	res, err := h.service.RecordManualPayment(r.Context(), tenantID, chi.URLParam(r, "id"), &req)
	if err != nil {
		h.handleError(w, err, "record manual payment")
		return
	}

	utils.ResponseCreated(w, "success", res)
}

// Waive handles POST /api/appointments/{id}/payments/waive
func (h *PaymentHandler) Waive(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromRequest(w, r)
	if !ok {
		return
	}

	if err := h.service.Waive(r.Context(), tenantID, chi.URLParam(r, "id")); err != nil {
		h.handleError(w, err, "waive payment")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// Unwaive handles DELETE /api/appointments/{id}/payments/waive
func (h *PaymentHandler) Unwaive(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromRequest(w, r)
	if !ok {
		return
	}

	if err := h.service.Unwaive(r.Context(), tenantID, chi.URLParam(r, "id")); err != nil {
		h.handleError(w, err, "unwaive payment")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// Recalculate handles POST /api/appointments/{id}/payments/recalculate
func (h *PaymentHandler) Recalculate(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromRequest(w, r)
	if !ok {
		return
	}

	res, err := h.service.Recalculate(r.Context(), tenantID, chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, err, "recalculate payment status")
		return
	}

	utils.ResponseSuccess(w, "success", res)
}

package adaptor

import (
	"net/http"
	"strings"

	"studio-booking/internal/usecase"
	"studio-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handler struct {
	Auth         *AuthHandler
	Availability *AvailabilityHandler
	Appointment  *AppointmentHandler
	Checkout     *CheckoutHandler
	Payment      *PaymentHandler
	Attendance   *AttendanceHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(service.Auth, log),
		Availability: NewAvailabilityHandler(service.Availability, log),
		Appointment:  NewAppointmentHandler(service.Appointment, log),
		Checkout:     NewCheckoutHandler(service.Checkout, log),
		Payment:      NewPaymentHandler(service.Payment, log),
		Attendance:   NewAttendanceHandler(service.Attendance, log),
	}
}

// tenantFromRequest pulls the tenant resolved by the middleware; it writes
// the failure response itself so handlers can just bail out.
func tenantFromRequest(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	tenantID, ok := utils.GetTenantIDFromContext(r.Context())
	if !ok {
		utils.ResponseBadRequest(w, "Missing tenant", nil)
	}
	return tenantID, ok
}

// respondServiceError maps use case errors onto HTTP responses by message
// shape.
func respondServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "validation failed"),
		strings.Contains(errMsg, "invalid"),
		strings.Contains(errMsg, "cannot"):
		log.Warn(operation+" rejected", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "unavailable"),
		strings.Contains(errMsg, "conflict"),
		strings.Contains(errMsg, "already"):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, errMsg)

	case strings.Contains(errMsg, "unauthorized"):
		log.Warn(operation+" failed - unauthorized", zap.Error(err))
		utils.ResponseUnauthorized(w, errMsg)

	default:
		log.Error(operation+" failed", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

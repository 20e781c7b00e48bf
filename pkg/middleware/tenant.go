package middleware

import (
	"net/http"

	"studio-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Tenant resolves the tenant for the request. An X-Tenant-ID header wins
// when it carries a valid UUID; otherwise the configured default applies.
func Tenant(defaultTenantID string, logger *zap.Logger) func(http.Handler) http.Handler {
	fallback, err := uuid.Parse(defaultTenantID)
	if err != nil {
		logger.Warn("Invalid default tenant ID, tenant header becomes mandatory",
			zap.String("tenant_id", defaultTenantID))
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tenantID := fallback
			if header := r.Header.Get("X-Tenant-ID"); header != "" {
				if parsed, err := uuid.Parse(header); err == nil {
					tenantID = parsed
				}
			}

			if tenantID == uuid.Nil {
				utils.ResponseBadRequest(w, "Missing tenant", nil)
				return
			}

			next.ServeHTTP(w, r.WithContext(utils.SetTenantContext(r.Context(), tenantID)))
		})
	}
}

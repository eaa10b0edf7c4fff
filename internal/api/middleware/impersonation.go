package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/recruithub/recruiting-system/internal/api/metrics"
	"github.com/recruithub/recruiting-system/internal/core/domain"
	"github.com/recruithub/recruiting-system/internal/core/ports"
)

// mutatingMethods are the HTTP methods the impersonation gate treats as
// writes. Anything not listed is a pure read.
var mutatingMethods = map[string]struct{}{
	http.MethodPost:   {},
	http.MethodPut:    {},
	http.MethodPatch:  {},
	http.MethodDelete: {},
}

// ImpersonationGate runs after session verification and before the handler.
// Read-only impersonation sessions are cut off before any mutating handler
// executes; mutations under full impersonation proceed but leave an audit
// record carrying both identities. A failed audit write fails the request:
// an unaudited impersonated mutation must not reach the handler.
func ImpersonationGate(audit ports.AuditRepository, logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session, ok := SessionFromContext(c)
			if !ok || !session.IsImpersonated() {
				return next(c)
			}

			if _, mutating := mutatingMethods[c.Request().Method]; !mutating {
				return next(c)
			}

			if session.Mode == domain.ImpersonationReadOnly {
				metrics.ImpersonationBlocksTotal.Inc()
				return domain.ErrImpersonationReadOnly
			}

			rec := &domain.AuditRecord{
				ID:             uuid.NewString(),
				SubjectUserID:  session.UserID,
				ImpersonatorID: session.ImpersonatorID,
				CompanyID:      session.TenantID(),
				Method:         c.Request().Method,
				Path:           c.Request().URL.Path,
				OccurredAt:     time.Now().UTC(),
			}
			if err := audit.Record(c.Request().Context(), rec); err != nil {
				logger.Error().Err(err).
					Str("impersonator_id", session.ImpersonatorID).
					Str("subject_id", session.UserID).
					Msg("audit write failed, rejecting impersonated mutation")
				return err
			}

			return next(c)
		}
	}
}

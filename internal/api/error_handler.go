package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/recruithub/recruiting-system/internal/api/metrics"
	"github.com/recruithub/recruiting-system/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors: a human
// message plus a stable machine code.
type errorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status and machine code.
//   - Collapses cross-tenant denial into the plain not-found response so a
//     tenant cannot probe for another tenant's records.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := resolveError(err, log, c)
		_ = c.JSON(status, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Message: fmt.Sprintf("%v", he.Message), Code: codeForStatus(he.Code)}
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorResponse{Message: "invalid credentials", Code: "INVALID_CREDENTIALS"}
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, errorResponse{Message: "invalid or expired token", Code: "INVALID_TOKEN"}
	case errors.Is(err, domain.ErrTenantNotFound):
		return http.StatusNotFound, errorResponse{Message: "tenant not found", Code: "TENANT_NOT_FOUND"}
	case errors.Is(err, domain.ErrCompanyNotFound):
		return http.StatusNotFound, errorResponse{Message: "company not found", Code: "COMPANY_NOT_FOUND"}
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, errorResponse{Message: "user not found", Code: "USER_NOT_FOUND"}
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, errorResponse{Message: "user already exists", Code: "USER_EXISTS"}
	case errors.Is(err, domain.ErrDocumentNotFound):
		// Cross-tenant access collapses into this same response on purpose.
		return http.StatusNotFound, errorResponse{Message: "document not found", Code: "DOC_NOT_FOUND"}
	case errors.Is(err, domain.ErrInvalidIdentifier):
		return http.StatusBadRequest, errorResponse{Message: "invalid identifier", Code: "INVALID_IDENTIFIER"}
	case errors.Is(err, domain.ErrInsufficientSeniority):
		metrics.SeniorityDenialsTotal.Inc()
		return http.StatusForbidden, errorResponse{Message: "insufficient role seniority", Code: "INSUFFICIENT_SENIORITY"}
	case errors.Is(err, domain.ErrSelfRoleChange):
		return http.StatusForbidden, errorResponse{Message: "own role cannot be changed", Code: "INSUFFICIENT_SENIORITY"}
	case errors.Is(err, domain.ErrImpersonationReadOnly):
		return http.StatusForbidden, errorResponse{Message: "impersonation session is read-only", Code: "IMPERSONATION_READ_ONLY"}
	case errors.Is(err, domain.ErrAdminTierRequired):
		return http.StatusForbidden, errorResponse{Message: "admin tier required", Code: "ADMIN_TIER_REQUIRED"}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Message: "internal server error", Code: "INTERNAL"}
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "BAD_REQUEST"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	default:
		return "INTERNAL"
	}
}

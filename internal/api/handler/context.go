package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/recruithub/recruiting-system/internal/api/middleware"
	"github.com/recruithub/recruiting-system/internal/core/domain"
)

// ctxSession extracts the session injected by the Session middleware and
// fast-fails before any service call: a missing session means the route was
// wired without authentication, which is a configuration defect surfaced as
// 401 rather than a panic deeper down.
func ctxSession(c echo.Context) (domain.SessionContext, error) {
	session, ok := middleware.SessionFromContext(c)
	if !ok || session.UserID == "" {
		return domain.SessionContext{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication context")
	}
	return session, nil
}

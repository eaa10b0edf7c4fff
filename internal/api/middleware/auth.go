package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/recruithub/recruiting-system/internal/core/domain"
	"github.com/recruithub/recruiting-system/internal/core/ports"
)

const sessionKey = "session"

// Session verifies the bearer credential and injects the decoded
// SessionContext into the echo context.
func Session(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			session, err := tokens.Verify(parts[1])
			if err != nil {
				return domain.ErrInvalidToken
			}

			c.Set(sessionKey, session)
			return next(c)
		}
	}
}

// SessionFromContext returns the SessionContext injected by Session.
func SessionFromContext(c echo.Context) (domain.SessionContext, bool) {
	session, ok := c.Get(sessionKey).(domain.SessionContext)
	return session, ok
}

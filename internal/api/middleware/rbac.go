package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/recruithub/recruiting-system/internal/core/domain"
)

// AdminTier restricts a route to admin-tier sessions. Tier membership is
// decided at token issuance from the closed role set, never from a raw role
// string supplied by the request.
func AdminTier() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session, ok := SessionFromContext(c)
			if !ok || !session.IsAdminTier {
				return domain.ErrAdminTierRequired
			}
			return next(c)
		}
	}
}

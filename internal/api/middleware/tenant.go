package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/recruithub/recruiting-system/internal/api/metrics"
	"github.com/recruithub/recruiting-system/internal/core/domain"
	"github.com/recruithub/recruiting-system/internal/core/ports"
)

const tenantKey = "tenant_company_id"

// tenantOverrideParam is the development-only query override honored by the
// resolver on local and preview hosts.
const tenantOverrideParam = "companyId"

// ResolveTenant maps the request host to a company and attaches it to the
// context. Used on public, unauthenticated routes; authenticated routes
// derive their tenant from the session credential instead.
func ResolveTenant(tenants ports.TenantService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			companyID, err := tenants.Resolve(
				c.Request().Context(),
				c.Request().Host,
				c.QueryParam(tenantOverrideParam),
			)
			if err != nil {
				if errors.Is(err, domain.ErrTenantNotFound) {
					metrics.TenantResolutionsTotal.WithLabelValues("miss").Inc()
				}
				return err
			}
			metrics.TenantResolutionsTotal.WithLabelValues("hit").Inc()
			c.Set(tenantKey, companyID)
			return next(c)
		}
	}
}

// TenantFromContext returns the company resolved by ResolveTenant.
func TenantFromContext(c echo.Context) (string, bool) {
	companyID, ok := c.Get(tenantKey).(string)
	return companyID, ok && companyID != ""
}

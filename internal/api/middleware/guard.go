package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/recruithub/recruiting-system/internal/api/metrics"
	"github.com/recruithub/recruiting-system/internal/core/domain"
	"github.com/recruithub/recruiting-system/internal/core/ports"
)

// TenantGuard blocks cross-tenant access to single documents of the given
// resource kind. It loads only the document's owning company and compares it
// to the session's tenant. A missing document and a foreign document produce
// the identical not-found error: distinguishing them would let one tenant
// probe for the existence of another tenant's records.
//
// List and search routes are not guarded here; they scope their queries
// through AccessService instead.
func TenantGuard(store ports.OwnershipStore, kind string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session, ok := SessionFromContext(c)
			if !ok {
				return domain.ErrInvalidToken
			}

			id := domain.CanonicalID(c.Param("id"))
			if !domain.IsValidID(id) {
				return domain.ErrInvalidIdentifier
			}

			owner, err := store.OwnerCompany(c.Request().Context(), kind, id)
			if err != nil {
				if errors.Is(err, domain.ErrDocumentNotFound) {
					return domain.ErrDocumentNotFound
				}
				return err
			}
			if domain.CanonicalID(owner) != domain.CanonicalID(session.TenantID()) {
				metrics.GuardBlocksTotal.WithLabelValues(kind).Inc()
				return domain.ErrDocumentNotFound
			}
			return next(c)
		}
	}
}

package ports

import (
	"context"

	"github.com/recruithub/recruiting-system/internal/core/domain"
)

// CompanyRepository defines persistence for tenants.
type CompanyRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Company, error)
	// FindByAnyAlias returns every company holding at least one of the given
	// domain aliases. Used by tenant resolution with the candidate prefix set
	// of the request's subdomain label.
	FindByAnyAlias(ctx context.Context, aliases []string) ([]*domain.Company, error)
}

// ClientRepository defines persistence for sub-tenants.
type ClientRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Client, error)
	// FindByIDs returns the clients for the given identifiers. Order of the
	// result is unspecified; callers re-order as needed.
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Client, error)
}

package ports

import (
	"context"

	"github.com/recruithub/recruiting-system/internal/core/domain"
)

// CampaignRepository defines persistence for the campaign resource kind.
// List queries are always scoped by the caller's allowed clients; single
// documents go through the ownership guard before these methods run.
type CampaignRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Campaign, error)
	// List returns campaigns of companyID whose client is in clientIDs.
	// An empty clientIDs yields an empty result, never an error.
	List(ctx context.Context, companyID string, clientIDs []string) ([]*domain.Campaign, error)
	Update(ctx context.Context, campaign *domain.Campaign) error
	Delete(ctx context.Context, id string) error
}

// OwnershipStore loads only the owning company of a document, by resource
// kind. It is the minimal projection used by the per-document tenant guard.
type OwnershipStore interface {
	OwnerCompany(ctx context.Context, kind, id string) (string, error)
}

// AuditRepository records impersonated mutations.
type AuditRepository interface {
	Record(ctx context.Context, rec *domain.AuditRecord) error
}

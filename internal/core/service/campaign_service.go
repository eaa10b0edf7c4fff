package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/recruithub/recruiting-system/internal/core/domain"
	"github.com/recruithub/recruiting-system/internal/core/ports"
)

// CampaignService is the thin resource layer of the collaborator contract:
// list queries are scoped to the caller's allowed clients before touching
// the store, and single-document routes reach this service only after the
// tenant guard has validated ownership.
type CampaignService struct {
	campaigns ports.CampaignRepository
	access    ports.AccessService
	logger    zerolog.Logger
}

func NewCampaignService(campaigns ports.CampaignRepository, access ports.AccessService, logger zerolog.Logger) *CampaignService {
	return &CampaignService{campaigns: campaigns, access: access, logger: logger}
}

// List returns the campaigns visible to the session: those belonging to an
// allowed client of the current company. An empty allowed set returns an
// empty collection, never an error.
func (s *CampaignService) List(ctx context.Context, session domain.SessionContext) ([]*domain.Campaign, error) {
	allowed, err := s.access.AllowedClients(ctx, session.UserID, session.TenantID())
	if err != nil {
		return nil, err
	}
	if len(allowed) == 0 {
		return []*domain.Campaign{}, nil
	}
	return s.campaigns.List(ctx, domain.CanonicalID(session.TenantID()), allowed)
}

func (s *CampaignService) Get(ctx context.Context, id string) (*domain.Campaign, error) {
	return s.campaigns.FindByID(ctx, domain.CanonicalID(id))
}

func (s *CampaignService) Update(ctx context.Context, id, title, status string) (*domain.Campaign, error) {
	campaign, err := s.campaigns.FindByID(ctx, domain.CanonicalID(id))
	if err != nil {
		return nil, err
	}
	if title != "" {
		campaign.Title = title
	}
	if status != "" {
		campaign.Status = status
	}
	campaign.UpdatedAt = time.Now().UTC()
	if err := s.campaigns.Update(ctx, campaign); err != nil {
		return nil, err
	}
	return campaign, nil
}

func (s *CampaignService) Delete(ctx context.Context, id string) error {
	return s.campaigns.Delete(ctx, domain.CanonicalID(id))
}

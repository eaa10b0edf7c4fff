package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/recruithub/recruiting-system/internal/core/domain"
	"github.com/recruithub/recruiting-system/internal/core/ports"
)

// ContextService switches a user's active company/client context. The
// persistence step is a read-modify-write on the user's per-company
// preference map; concurrent switches by the same user are last-write-wins,
// which is harmless for a preference and deliberately not serialized.
type ContextService struct {
	users     ports.UserRepository
	companies ports.CompanyRepository
	clients   ports.ClientRepository
	access    ports.AccessService
	tokens    ports.TokenService
	logger    zerolog.Logger
}

func NewContextService(
	users ports.UserRepository,
	companies ports.CompanyRepository,
	clients ports.ClientRepository,
	access ports.AccessService,
	tokens ports.TokenService,
	logger zerolog.Logger,
) *ContextService {
	return &ContextService{
		users:     users,
		companies: companies,
		clients:   clients,
		access:    access,
		tokens:    tokens,
		logger:    logger,
	}
}

// SwitchContext moves userID into targetCompanyID, resolves the new active
// client, persists the preference, and mints a fresh credential.
//
// Client resolution order, first match wins:
//  1. explicitClientID, if present in the user's allowed clients
//  2. the remembered last active client for the target company, if still allowed
//  3. the first enabled client in the company's master list
//  4. the first client in the master list regardless of enabled
//  5. no client, when the company has none
func (s *ContextService) SwitchContext(ctx context.Context, userID, targetCompanyID, explicitClientID string) (*domain.User, string, error) {
	targetCompanyID = domain.CanonicalID(targetCompanyID)
	if !domain.IsValidID(targetCompanyID) {
		return nil, "", domain.ErrInvalidIdentifier
	}

	user, err := s.users.FindByID(ctx, domain.CanonicalID(userID))
	if err != nil {
		return nil, "", err
	}
	company, err := s.companies.FindByID(ctx, targetCompanyID)
	if err != nil {
		return nil, "", err
	}

	allowed, err := s.access.AllowedClients(ctx, user.ID, company.ID)
	if err != nil {
		return nil, "", err
	}

	clientID, err := s.resolveClient(ctx, user, company, allowed, domain.CanonicalID(explicitClientID))
	if err != nil {
		return nil, "", err
	}

	user.CurrentCompanyID = targetCompanyID
	user.ActiveClientID = clientID
	if clientID != "" {
		user.RememberClient(targetCompanyID, clientID)
	}
	if err := s.users.UpdateActiveContext(ctx, user.ID, targetCompanyID, clientID, user.LastActiveClientByCompany); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.IssueForContext(user, targetCompanyID, clientID)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Str("company_id", targetCompanyID).
		Str("client_id", clientID).
		Msg("context switched")

	return user, token, nil
}

func (s *ContextService) resolveClient(ctx context.Context, user *domain.User, company *domain.Company, allowed []string, explicit string) (string, error) {
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, id := range allowed {
		allowedSet[id] = struct{}{}
	}

	// A caller-supplied client outside the allowed set falls through to the
	// remembered/auto-pick chain instead of being honored.
	if explicit != "" {
		if _, ok := allowedSet[explicit]; ok {
			return explicit, nil
		}
		s.logger.Warn().
			Str("user_id", user.ID).
			Str("company_id", company.ID).
			Str("client_id", explicit).
			Msg("explicit client not in allowed set, falling through")
	}

	if remembered := user.RememberedClient(company.ID); remembered != "" {
		if _, ok := allowedSet[remembered]; ok {
			return remembered, nil
		}
	}

	master := domain.CanonicalIDs(company.MasterClientIDs)
	if len(master) == 0 {
		return "", nil
	}

	clients, err := s.clients.FindByIDs(ctx, master)
	if err != nil {
		return "", err
	}
	enabled := make(map[string]bool, len(clients))
	for _, cl := range clients {
		enabled[domain.CanonicalID(cl.ID)] = cl.Enabled
	}
	for _, id := range master {
		if enabled[id] {
			return id, nil
		}
	}
	// Last resort: the first master client even when nothing is enabled.
	return master[0], nil
}

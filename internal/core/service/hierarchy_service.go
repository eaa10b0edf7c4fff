package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/recruithub/recruiting-system/internal/core/domain"
	"github.com/recruithub/recruiting-system/internal/core/ports"
)

// HierarchyService ranks roles per company and enforces the seniority rules
// gating user management. Rank ascending means more senior; a role absent
// from the hierarchy ranks RankUnranked (least senior).
type HierarchyService struct {
	hierarchies ports.HierarchyRepository
	cache       ports.RankCache
	logger      zerolog.Logger
}

func NewHierarchyService(hierarchies ports.HierarchyRepository, cache ports.RankCache, logger zerolog.Logger) *HierarchyService {
	return &HierarchyService{hierarchies: hierarchies, cache: cache, logger: logger}
}

// Rank returns the seniority rank of roleRef within companyID.
func (s *HierarchyService) Rank(ctx context.Context, roleRef, companyID string) (int, error) {
	roleRef = domain.CanonicalID(roleRef)
	companyID = domain.CanonicalID(companyID)

	ranks, err := s.ranks(ctx, companyID)
	if err != nil {
		return 0, err
	}
	if rank, ok := ranks[roleRef]; ok {
		return rank, nil
	}
	return domain.RankUnranked, nil
}

// SetHierarchy validates and persists a company's hierarchy, then drops the
// cached rank map before returning. Invalidation is synchronous: rank checks
// gate privilege escalation, so a stale cache must not outlive the write.
func (s *HierarchyService) SetHierarchy(ctx context.Context, hierarchy *domain.RoleHierarchy) error {
	if err := hierarchy.Validate(); err != nil {
		return err
	}
	if err := s.hierarchies.Save(ctx, hierarchy); err != nil {
		return err
	}
	if err := s.cache.Invalidate(ctx, domain.CanonicalID(hierarchy.CompanyID)); err != nil {
		return err
	}
	return nil
}

// CheckAssignRole permits assigning newRoleRef only to an operator strictly
// more senior than the role being handed out. Admin tier bypasses the check.
func (s *HierarchyService) CheckAssignRole(ctx context.Context, operator domain.SessionContext, newRoleRef string) error {
	if operator.IsAdminTier {
		return nil
	}
	companyID := operator.TenantID()
	opRank, err := s.Rank(ctx, operator.RoleRef, companyID)
	if err != nil {
		return err
	}
	newRank, err := s.Rank(ctx, newRoleRef, companyID)
	if err != nil {
		return err
	}
	if opRank >= newRank {
		return domain.ErrInsufficientSeniority
	}
	return nil
}

// CheckModifyUser permits editing a target user's non-role fields when the
// operator outranks the target's current role, is editing their own record,
// or is admin tier.
func (s *HierarchyService) CheckModifyUser(ctx context.Context, operator domain.SessionContext, target *domain.User) error {
	if operator.IsAdminTier {
		return nil
	}
	if domain.CanonicalID(operator.UserID) == domain.CanonicalID(target.ID) {
		return nil
	}
	companyID := operator.TenantID()
	opRank, err := s.Rank(ctx, operator.RoleRef, companyID)
	if err != nil {
		return err
	}
	targetRank, err := s.Rank(ctx, target.RoleRef, companyID)
	if err != nil {
		return err
	}
	if opRank >= targetRank {
		return domain.ErrInsufficientSeniority
	}
	return nil
}

// CheckRoleChange permits reassigning a target's role only when the operator
// outranks both the target's current role and the requested one. Outranking
// someone on their current role is not enough to promote them past you.
func (s *HierarchyService) CheckRoleChange(ctx context.Context, operator domain.SessionContext, target *domain.User, newRoleRef string) error {
	if domain.CanonicalID(operator.UserID) == domain.CanonicalID(target.ID) && !operator.IsAdminTier {
		return domain.ErrSelfRoleChange
	}
	if operator.IsAdminTier {
		return nil
	}
	if err := s.CheckModifyUser(ctx, operator, target); err != nil {
		return err
	}
	return s.CheckAssignRole(ctx, operator, newRoleRef)
}

// ranks loads the roleRef→rank map for a company, consulting the cache
// first. A cache read failure falls through to the store: availability of
// the cache must never change an authorization outcome.
func (s *HierarchyService) ranks(ctx context.Context, companyID string) (map[string]int, error) {
	cached, ok, err := s.cache.Get(ctx, companyID)
	if err != nil {
		s.logger.Warn().Err(err).Str("company_id", companyID).Msg("rank cache read failed")
	} else if ok {
		return cached, nil
	}

	hierarchy, err := s.hierarchies.FindByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	ranks := make(map[string]int, len(hierarchy.Entries))
	for _, e := range hierarchy.Entries {
		ranks[domain.CanonicalID(e.RoleRef)] = e.Rank
	}
	if err := s.cache.Set(ctx, companyID, ranks); err != nil {
		s.logger.Warn().Err(err).Str("company_id", companyID).Msg("rank cache write failed")
	}
	return ranks, nil
}

package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/recruithub/recruiting-system/internal/core/domain"
	"github.com/recruithub/recruiting-system/internal/core/ports"
)

// AccessService computes the clients a user may operate on within a company.
// Every tenant-scoped list/read/write query calls AllowedClients before
// building its store predicate.
type AccessService struct {
	companies ports.CompanyRepository
	users     ports.UserRepository
	logger    zerolog.Logger
}

func NewAccessService(companies ports.CompanyRepository, users ports.UserRepository, logger zerolog.Logger) *AccessService {
	return &AccessService{companies: companies, users: users, logger: logger}
}

// AllowedClients returns the client identifiers userID may act on within
// companyID, in canonical form and master-list order:
//   - admin tier: the company's full master client list
//   - otherwise: the intersection of the user's assigned clients and the
//     master list; assignments the company no longer owns drop out silently
//
// An empty master list or empty assignment yields an empty slice. Callers
// treat an empty result as "no matching resources", never as an error.
func (s *AccessService) AllowedClients(ctx context.Context, userID, companyID string) ([]string, error) {
	userID = domain.CanonicalID(userID)
	companyID = domain.CanonicalID(companyID)

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	company, err := s.companies.FindByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	master := domain.CanonicalIDs(company.MasterClientIDs)
	if user.IsAdminTier() {
		return master, nil
	}

	assigned := make(map[string]struct{}, len(user.AssignedClientIDs))
	for _, id := range domain.CanonicalIDs(user.AssignedClientIDs) {
		assigned[id] = struct{}{}
	}

	allowed := make([]string, 0, len(assigned))
	for _, id := range master {
		if _, ok := assigned[id]; ok {
			allowed = append(allowed, id)
		}
	}
	return allowed, nil
}

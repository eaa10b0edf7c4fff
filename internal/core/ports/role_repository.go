package ports

import (
	"context"

	"github.com/recruithub/recruiting-system/internal/core/domain"
)

// RoleRepository defines persistence for roles.
type RoleRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Role, error)
}

// HierarchyRepository defines persistence for per-company role hierarchies.
type HierarchyRepository interface {
	FindByCompany(ctx context.Context, companyID string) (*domain.RoleHierarchy, error)
	Save(ctx context.Context, hierarchy *domain.RoleHierarchy) error
}

// RankCache caches the roleRef→rank map per company. Entries are invalidated
// synchronously on hierarchy writes; rank checks gate privilege escalation,
// so a time-based expiry alone is not acceptable.
type RankCache interface {
	Get(ctx context.Context, companyID string) (map[string]int, bool, error)
	Set(ctx context.Context, companyID string, ranks map[string]int) error
	Invalidate(ctx context.Context, companyID string) error
}

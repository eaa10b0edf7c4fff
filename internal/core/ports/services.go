package ports

import (
	"context"

	"github.com/recruithub/recruiting-system/internal/core/domain"
)

// TokenService mints and verifies bearer credentials. A credential is never
// mutated; every context change issues a fresh one.
type TokenService interface {
	Issue(user *domain.User) (string, error)
	IssueForContext(user *domain.User, companyID, clientID string) (string, error)
	IssueImpersonation(subject *domain.User, impersonatorID string, mode domain.ImpersonationMode) (string, error)
	Verify(token string) (domain.SessionContext, error)
}

// AccessService computes the set of clients a user may operate on within a
// company. Deterministic and side-effect free; called by every tenant-scoped
// query to build its client predicate.
type AccessService interface {
	AllowedClients(ctx context.Context, userID, companyID string) ([]string, error)
}

// HierarchyService ranks roles per company and enforces seniority rules for
// user-management operations.
type HierarchyService interface {
	Rank(ctx context.Context, roleRef, companyID string) (int, error)
	SetHierarchy(ctx context.Context, hierarchy *domain.RoleHierarchy) error
	CheckAssignRole(ctx context.Context, operator domain.SessionContext, newRoleRef string) error
	CheckModifyUser(ctx context.Context, operator domain.SessionContext, target *domain.User) error
	CheckRoleChange(ctx context.Context, operator domain.SessionContext, target *domain.User, newRoleRef string) error
}

// ContextService switches a user's active company/client context and returns
// the updated user together with a freshly minted credential.
type ContextService interface {
	SwitchContext(ctx context.Context, userID, targetCompanyID, explicitClientID string) (*domain.User, string, error)
}

// TenantService resolves an inbound host (plus an optional development-only
// override) to a company identifier.
type TenantService interface {
	Resolve(ctx context.Context, host, override string) (string, error)
}

// AuthService implements login and admin impersonation.
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Impersonate(ctx context.Context, operator domain.SessionContext, targetUserID string, mode domain.ImpersonationMode) (string, *domain.User, error)
}

// CreateUserInput carries the fields an operator supplies for a new user.
type CreateUserInput struct {
	Email             string
	Name              string
	Password          string
	RoleRef           string
	AssignedClientIDs []string
}

// UpdateUserInput carries a partial user update. Nil pointers mean "leave
// unchanged". RoleRef changes are checked against both the target's current
// role and the requested one.
type UpdateUserInput struct {
	Name              *string
	Email             *string
	RoleRef           *string
	AssignedClientIDs *[]string
	Enabled           *bool
}

// UserService implements seniority-guarded user management.
type UserService interface {
	Create(ctx context.Context, operator domain.SessionContext, input CreateUserInput) (*domain.User, error)
	Get(ctx context.Context, operator domain.SessionContext, id string) (*domain.User, error)
	Update(ctx context.Context, operator domain.SessionContext, id string, input UpdateUserInput) (*domain.User, error)
}

// CampaignService is the thin resource layer exercising the collaborator
// contract: lists are scoped through AccessService, single documents pass
// the tenant guard before reaching it.
type CampaignService interface {
	List(ctx context.Context, session domain.SessionContext) ([]*domain.Campaign, error)
	Get(ctx context.Context, id string) (*domain.Campaign, error)
	Update(ctx context.Context, id, title, status string) (*domain.Campaign, error)
	Delete(ctx context.Context, id string) error
}

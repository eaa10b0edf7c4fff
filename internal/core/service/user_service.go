package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/recruithub/recruiting-system/internal/core/domain"
	"github.com/recruithub/recruiting-system/internal/core/ports"
)

// UserService implements user management gated by role seniority.
type UserService struct {
	users     ports.UserRepository
	roles     ports.RoleRepository
	hierarchy ports.HierarchyService
	logger    zerolog.Logger
}

func NewUserService(users ports.UserRepository, roles ports.RoleRepository, hierarchy ports.HierarchyService, logger zerolog.Logger) *UserService {
	return &UserService{users: users, roles: roles, hierarchy: hierarchy, logger: logger}
}

// Create adds a user to the operator's current company. The operator must
// strictly outrank the role being assigned (admin tier bypasses).
func (s *UserService) Create(ctx context.Context, operator domain.SessionContext, input ports.CreateUserInput) (*domain.User, error) {
	roleRef := domain.CanonicalID(input.RoleRef)
	if input.Email == "" || input.Password == "" || !domain.IsValidID(roleRef) {
		return nil, domain.ErrInvalidIdentifier
	}
	if err := s.hierarchy.CheckAssignRole(ctx, operator, roleRef); err != nil {
		return nil, err
	}

	role, err := s.roles.FindByID(ctx, roleRef)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:             input.Email,
		Name:              input.Name,
		PasswordHash:      string(hash),
		HomeCompanyID:     operator.TenantID(),
		AssignedClientIDs: domain.CanonicalIDs(input.AssignedClientIDs),
		Role:              role.Name,
		RoleRef:           roleRef,
		Enabled:           true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", created.ID).Str("operator_id", operator.UserID).Msg("user created")
	return created, nil
}

// Get returns a user record. The operator must share the target's tenant.
func (s *UserService) Get(ctx context.Context, operator domain.SessionContext, id string) (*domain.User, error) {
	target, err := s.users.FindByID(ctx, domain.CanonicalID(id))
	if err != nil {
		return nil, err
	}
	if domain.CanonicalID(target.HomeCompanyID) != domain.CanonicalID(operator.TenantID()) {
		// Masked as not-found: a foreign tenant must not learn the user exists.
		return nil, domain.ErrUserNotFound
	}
	return target, nil
}

// Update applies a partial edit to a user. Non-role fields require the
// operator to outrank the target or be editing themselves; a role change is
// additionally checked against the requested role, and a user can never
// change their own role through this path unless admin tier.
func (s *UserService) Update(ctx context.Context, operator domain.SessionContext, id string, input ports.UpdateUserInput) (*domain.User, error) {
	target, err := s.Get(ctx, operator, id)
	if err != nil {
		return nil, err
	}

	if input.RoleRef != nil {
		newRef := domain.CanonicalID(*input.RoleRef)
		if !domain.IsValidID(newRef) {
			return nil, domain.ErrInvalidIdentifier
		}
		if err := s.hierarchy.CheckRoleChange(ctx, operator, target, newRef); err != nil {
			return nil, err
		}
		role, err := s.roles.FindByID(ctx, newRef)
		if err != nil {
			return nil, err
		}
		target.Role = role.Name
		target.RoleRef = newRef
	} else if err := s.hierarchy.CheckModifyUser(ctx, operator, target); err != nil {
		return nil, err
	}

	if input.Name != nil {
		target.Name = *input.Name
	}
	if input.Email != nil {
		target.Email = *input.Email
	}
	if input.AssignedClientIDs != nil {
		target.AssignedClientIDs = domain.CanonicalIDs(*input.AssignedClientIDs)
	}
	if input.Enabled != nil {
		target.Enabled = *input.Enabled
	}
	target.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, target); err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", target.ID).Str("operator_id", operator.UserID).Msg("user updated")
	return target, nil
}

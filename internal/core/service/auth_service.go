package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/recruithub/recruiting-system/internal/core/domain"
	"github.com/recruithub/recruiting-system/internal/core/ports"
)

// AuthService implements login and administrative impersonation.
type AuthService struct {
	users  ports.UserRepository
	tokens ports.TokenService
	logger zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenService, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, logger: logger}
}

// Login verifies the password and mints a normal session credential.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// An unknown account and a wrong password are indistinguishable.
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !user.Enabled {
		return "", nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Impersonate mints a short-lived credential acting as targetUserID on
// behalf of the operator. Admin tier only; the credential carries both
// identities so the gate can audit every mutation taken under it.
func (s *AuthService) Impersonate(ctx context.Context, operator domain.SessionContext, targetUserID string, mode domain.ImpersonationMode) (string, *domain.User, error) {
	if !operator.IsAdminTier {
		return "", nil, domain.ErrAdminTierRequired
	}
	if mode != domain.ImpersonationReadOnly && mode != domain.ImpersonationFull {
		return "", nil, domain.ErrInvalidIdentifier
	}

	target, err := s.users.FindByID(ctx, domain.CanonicalID(targetUserID))
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokens.IssueImpersonation(target, operator.UserID, mode)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().
		Str("impersonator_id", operator.UserID).
		Str("subject_id", target.ID).
		Str("mode", string(mode)).
		Msg("impersonation session issued")

	return token, target, nil
}

package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/recruithub/recruiting-system/internal/core/domain"
)

const (
	tokenIssuer = "recruiting-system"

	// Session lifetimes are fixed, not configurable: a normal session lives
	// 30 days, an impersonation session one hour.
	sessionTTL       = 30 * 24 * time.Hour
	impersonationTTL = time.Hour
)

// Claims is the authorization context carried in the bearer credential.
// CompanyID is always the home company; CurrentCompanyID appears only after
// a context switch. ImpersonatorID and Mode appear only on impersonation
// credentials.
type Claims struct {
	UserID           string                   `json:"id"`
	Email            string                   `json:"email"`
	CompanyID        string                   `json:"companyID"`
	ActiveClientID   string                   `json:"activeClientID,omitempty"`
	Role             string                   `json:"role"`
	RoleRef          string                   `json:"roleRef"`
	CurrentCompanyID string                   `json:"currentCompanyID,omitempty"`
	ProductAdmin     bool                     `json:"productAdmin,omitempty"`
	ImpersonatorID   string                   `json:"impersonatorID,omitempty"`
	Mode             domain.ImpersonationMode `json:"mode,omitempty"`
	jwt.RegisteredClaims
}

// TokenService mints and verifies HS256 session credentials.
type TokenService struct {
	secret []byte
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

// Issue mints a normal session credential from the user's stored context.
func (s *TokenService) Issue(user *domain.User) (string, error) {
	return s.sign(s.claimsFor(user, user.CurrentCompanyID, user.ActiveClientID), sessionTTL)
}

// IssueForContext mints a credential for a freshly switched context.
func (s *TokenService) IssueForContext(user *domain.User, companyID, clientID string) (string, error) {
	return s.sign(s.claimsFor(user, companyID, clientID), sessionTTL)
}

// IssueImpersonation mints a short-lived credential acting as subject on
// behalf of impersonatorID.
func (s *TokenService) IssueImpersonation(subject *domain.User, impersonatorID string, mode domain.ImpersonationMode) (string, error) {
	claims := s.claimsFor(subject, subject.CurrentCompanyID, subject.ActiveClientID)
	claims.ImpersonatorID = domain.CanonicalID(impersonatorID)
	claims.Mode = mode
	return s.sign(claims, impersonationTTL)
}

// Verify parses and validates a credential and returns its session context.
func (s *TokenService) Verify(token string) (domain.SessionContext, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return domain.SessionContext{}, domain.ErrInvalidToken
	}
	if claims.UserID == "" || claims.CompanyID == "" {
		return domain.SessionContext{}, domain.ErrInvalidToken
	}

	return domain.SessionContext{
		UserID:           claims.UserID,
		Email:            claims.Email,
		HomeCompanyID:    claims.CompanyID,
		CurrentCompanyID: claims.CurrentCompanyID,
		ActiveClientID:   claims.ActiveClientID,
		Role:             claims.Role,
		RoleRef:          claims.RoleRef,
		IsAdminTier:      claims.ProductAdmin || domain.TierOf(claims.Role) == domain.TierAdmin,
		ImpersonatorID:   claims.ImpersonatorID,
		Mode:             claims.Mode,
	}, nil
}

func (s *TokenService) claimsFor(user *domain.User, currentCompanyID, activeClientID string) Claims {
	home := domain.CanonicalID(user.HomeCompanyID)
	current := domain.CanonicalID(currentCompanyID)
	if current == home {
		// The current-company claim marks a switched context only.
		current = ""
	}
	return Claims{
		UserID:           domain.CanonicalID(user.ID),
		Email:            user.Email,
		CompanyID:        home,
		ActiveClientID:   domain.CanonicalID(activeClientID),
		Role:             user.Role,
		RoleRef:          domain.CanonicalID(user.RoleRef),
		CurrentCompanyID: current,
		ProductAdmin:     user.IsAdminTier(),
	}
}

func (s *TokenService) sign(claims Claims, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   claims.UserID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		ID:        uuid.NewString(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

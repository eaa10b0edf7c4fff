package domain

import (
	"strings"
	"time"
)

// Admin-tier role names. Membership in the tier bypasses role seniority
// checks and widens client access to the company's full master list. Kept as
// a closed set so a typo in a role name can never silently grant the tier.
const (
	RoleProductAdmin = "Product Admin"
	RoleSupportAdmin = "Support Admin"
)

// RoleTier classifies a role name into an access tier.
type RoleTier int

const (
	TierStandard RoleTier = iota
	TierAdmin
)

var adminTierRoles = []string{RoleProductAdmin, RoleSupportAdmin}

// TierOf returns the tier for a role name. Comparison is case-insensitive;
// anything outside the closed admin set is TierStandard.
func TierOf(roleName string) RoleTier {
	for _, r := range adminTierRoles {
		if strings.EqualFold(strings.TrimSpace(roleName), r) {
			return TierAdmin
		}
	}
	return TierStandard
}

// User is an authenticated actor. HomeCompanyID is the tenant of record;
// CurrentCompanyID is set only once the user has switched context away from
// home. LastActiveClientByCompany remembers the previously selected client
// per company so a re-switch restores it.
type User struct {
	ID                        string            `json:"id"`
	Email                     string            `json:"email"`
	Name                      string            `json:"name"`
	PasswordHash              string            `json:"-"`
	HomeCompanyID             string            `json:"home_company_id"`
	CurrentCompanyID          string            `json:"current_company_id,omitempty"`
	ActiveClientID            string            `json:"active_client_id,omitempty"`
	AssignedClientIDs         []string          `json:"assigned_client_ids"`
	Role                      string            `json:"role"`
	RoleRef                   string            `json:"role_ref"`
	LastActiveClientByCompany map[string]string `json:"last_active_client_by_company,omitempty"`
	Enabled                   bool              `json:"enabled"`
	CreatedAt                 time.Time         `json:"created_at"`
	UpdatedAt                 time.Time         `json:"updated_at"`
}

// TenantID is the company the user currently acts under.
func (u *User) TenantID() string {
	if u.CurrentCompanyID != "" {
		return u.CurrentCompanyID
	}
	return u.HomeCompanyID
}

// IsAdminTier reports whether the user's role is in the admin tier.
func (u *User) IsAdminTier() bool {
	return TierOf(u.Role) == TierAdmin
}

// RememberClient records clientID as the last active client under companyID.
// The map is persisted whole on any change; concurrent switches by the same
// user are last-write-wins, which is acceptable for a preference.
func (u *User) RememberClient(companyID, clientID string) {
	if u.LastActiveClientByCompany == nil {
		u.LastActiveClientByCompany = make(map[string]string, 1)
	}
	u.LastActiveClientByCompany[CanonicalID(companyID)] = CanonicalID(clientID)
}

// RememberedClient returns the previously selected client for companyID.
func (u *User) RememberedClient(companyID string) string {
	return u.LastActiveClientByCompany[CanonicalID(companyID)]
}

package domain

// ImpersonationMode constrains what an impersonation session may do.
type ImpersonationMode string

const (
	ImpersonationReadOnly ImpersonationMode = "read-only"
	ImpersonationFull     ImpersonationMode = "full"
)

// SessionContext is the decoded authorization context of a request. It is
// carried in the bearer credential, never persisted, and never mutated in
// place: a context change always mints a new credential.
type SessionContext struct {
	UserID           string
	Email            string
	HomeCompanyID    string
	CurrentCompanyID string
	ActiveClientID   string
	Role             string
	RoleRef          string
	IsAdminTier      bool
	ImpersonatorID   string
	Mode             ImpersonationMode
}

// TenantID is the company the session acts under: the switched-to company
// when set, the home company otherwise.
func (s SessionContext) TenantID() string {
	if s.CurrentCompanyID != "" {
		return s.CurrentCompanyID
	}
	return s.HomeCompanyID
}

// IsImpersonated reports whether the session is an administrative
// impersonation of another identity.
func (s SessionContext) IsImpersonated() bool {
	return s.ImpersonatorID != ""
}

package domain

import "errors"

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidToken = errors.New("invalid or expired token")
var ErrTenantNotFound = errors.New("tenant not found")
var ErrCompanyNotFound = errors.New("company not found")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrDocumentNotFound = errors.New("document not found")
var ErrInvalidIdentifier = errors.New("invalid identifier")
var ErrInsufficientSeniority = errors.New("insufficient role seniority")
var ErrImpersonationReadOnly = errors.New("impersonation session is read-only")
var ErrAdminTierRequired = errors.New("admin tier required")
var ErrSelfRoleChange = errors.New("own role cannot be changed")

// ErrClientIntegrity flags a Client document whose company_id disagrees with
// the owning Company's master client list. This is a data defect, never a
// valid state; it is surfaced for operators rather than silently repaired.
var ErrClientIntegrity = errors.New("client ownership integrity violation")

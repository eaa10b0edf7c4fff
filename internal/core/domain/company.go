package domain

import "time"

// CompanyStatus is the lifecycle state of a tenant. Companies are never hard
// deleted; offboarding flips the status instead.
type CompanyStatus string

const (
	CompanyActive    CompanyStatus = "active"
	CompanySuspended CompanyStatus = "suspended"
)

// Company is a tenant. MasterClientIDs is the authoritative list of clients
// (sub-tenants) the company owns; DomainAliases are the subdomain labels the
// tenant is reachable under.
type Company struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	MasterClientIDs []string      `json:"master_client_ids"`
	DomainAliases   []string      `json:"domain_aliases"`
	Status          CompanyStatus `json:"status"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// Client is a sub-tenant owned by exactly one Company. Its CompanyID must
// agree with membership in that Company's MasterClientIDs.
type Client struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Name      string    `json:"name"`
	Enabled   bool      `json:"enabled"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CheckOwnership verifies the Client/Company integrity invariant: the client
// claims the company as owner and the company lists the client as its own.
func (cl *Client) CheckOwnership(company *Company) error {
	if CanonicalID(cl.CompanyID) != CanonicalID(company.ID) {
		return ErrClientIntegrity
	}
	id := CanonicalID(cl.ID)
	for _, m := range company.MasterClientIDs {
		if CanonicalID(m) == id {
			return nil
		}
	}
	return ErrClientIntegrity
}

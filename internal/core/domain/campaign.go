package domain

import "time"

// Campaign is a tenant-owned resource. Its business payload lives outside
// the access-control core; only the ownership fields matter here: CompanyID
// for the per-document guard, ClientID for access-scoped list queries.
type Campaign struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	ClientID  string    `json:"client_id"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

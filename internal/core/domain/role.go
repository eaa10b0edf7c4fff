package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// RankUnranked is the rank of any role absent from a company's hierarchy:
// least senior, never equal to a real rank.
const RankUnranked = math.MaxInt32

// Role is a named permission bundle. A role may be shared across tenants
// (CompanyScope lists every company it applies to), which is why seniority
// rank lives on the per-company RoleHierarchy and not here. The permission
// payload is opaque to access control; only UI and business logic read it.
type Role struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	CompanyScope []string        `json:"company_scope"`
	Permissions  json.RawMessage `json:"permissions,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// RoleRank associates a role reference with its seniority rank.
// Rank ascending means more senior: rank 0 is the most senior role.
type RoleRank struct {
	RoleRef string `json:"role_ref"`
	Rank    int    `json:"rank"`
}

// RoleHierarchy is the per-company seniority ordering. At most one entry per
// role reference.
type RoleHierarchy struct {
	ID        string     `json:"id"`
	CompanyID string     `json:"company_id"`
	Entries   []RoleRank `json:"entries"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// RankOf returns the rank of roleRef within the hierarchy, or RankUnranked
// when the role is not listed.
func (h *RoleHierarchy) RankOf(roleRef string) int {
	ref := CanonicalID(roleRef)
	for _, e := range h.Entries {
		if CanonicalID(e.RoleRef) == ref {
			return e.Rank
		}
	}
	return RankUnranked
}

// Validate enforces the one-entry-per-role invariant and non-negative ranks.
func (h *RoleHierarchy) Validate() error {
	seen := make(map[string]struct{}, len(h.Entries))
	for _, e := range h.Entries {
		ref := CanonicalID(e.RoleRef)
		if ref == "" {
			return fmt.Errorf("hierarchy for company %s: empty role ref", h.CompanyID)
		}
		if e.Rank < 0 {
			return fmt.Errorf("hierarchy for company %s: negative rank for role %s", h.CompanyID, ref)
		}
		if _, dup := seen[ref]; dup {
			return fmt.Errorf("hierarchy for company %s: duplicate role %s", h.CompanyID, ref)
		}
		seen[ref] = struct{}{}
	}
	return nil
}

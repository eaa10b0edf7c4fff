package domain

import "strings"

// Identifiers reach this package in mixed shapes: raw 24-char object IDs,
// hex strings with stray whitespace, occasionally upper-cased copies pasted
// through admin tooling. Every identifier is canonicalized exactly once, at
// the boundary where it enters the core, so that set operations downstream
// can rely on plain string equality.

// CanonicalID returns the single canonical representation of an identifier.
func CanonicalID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// CanonicalIDs canonicalizes a slice, dropping empties and duplicates while
// preserving first-seen order.
func CanonicalIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		c := CanonicalID(id)
		if c == "" {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// IsValidID reports whether id looks like a canonical object identifier
// (24 lower-case hex characters).
func IsValidID(id string) bool {
	id = CanonicalID(id)
	if len(id) != 24 {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

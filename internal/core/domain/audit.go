package domain

import "time"

// AuditRecord captures a mutating action taken under impersonation. Both
// identities are recorded: who the session claims to be and who is actually
// driving it.
type AuditRecord struct {
	ID             string    `json:"id"`
	SubjectUserID  string    `json:"subject_user_id"`
	ImpersonatorID string    `json:"impersonator_id"`
	CompanyID      string    `json:"company_id"`
	Method         string    `json:"method"`
	Path           string    `json:"path"`
	OccurredAt     time.Time `json:"occurred_at"`
}

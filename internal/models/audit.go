package models

import "time"

// Audit actions recorded for privileged mutations.
const (
	AuditActionRoleUpdate  = "ROLE_UPDATE"
	AuditActionClassReview = "CLASS_REVIEW"
	AuditActionPayment     = "PAYMENT"
)

// AuditLog is an append-only record of a privileged mutation.
type AuditLog struct {
	ID         string    `db:"id" json:"id"`
	UserEmail  *string   `db:"user_email" json:"user_email,omitempty"`
	Action     string    `db:"action" json:"action"`
	Resource   string    `db:"resource" json:"resource"`
	ResourceID *string   `db:"resource_id" json:"resource_id,omitempty"`
	Detail     []byte    `db:"detail" json:"detail,omitempty"`
	IPAddress  string    `db:"ip_address" json:"ip_address,omitempty"`
	UserAgent  string    `db:"user_agent" json:"user_agent,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

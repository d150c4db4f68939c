package domain

import "time"

// AuditAction identifies a session lifecycle event worth keeping a trail of.
type AuditAction string

const (
	AuditLogin        AuditAction = "login"
	AuditLogout       AuditAction = "logout"
	AuditForcedLogout AuditAction = "forced_logout"
	AuditAdminCreated AuditAction = "admin_created"
)

// AuditEvent records one session lifecycle event for the audit trail.
type AuditEvent struct {
	SessionID string      `json:"session_id" bson:"session_id"`
	UserID    string      `json:"user_id,omitempty" bson:"user_id,omitempty"`
	Username  string      `json:"username,omitempty" bson:"username,omitempty"`
	Action    AuditAction `json:"action" bson:"action"`
	Timestamp time.Time   `json:"timestamp" bson:"timestamp"`
}

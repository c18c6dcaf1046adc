package entities

import "time"

// AuditEntry represents a logged moderation or configuration action.
type AuditEntry struct {
	ID        int64          `json:"id"`
	Action    string         `json:"action"`
	RecordID  string         `json:"record_id,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

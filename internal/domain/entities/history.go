package entities

import "time"

// FieldChange records a single field's before and after display values.
type FieldChange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// EditHistoryEntry records one approved edit proposal merged into a record:
// who proposed it, when it was merged, and which fields changed.
type EditHistoryEntry struct {
	Name    string                 `json:"name"`
	Email   string                 `json:"email"`
	Date    time.Time              `json:"date"`
	Changes map[string]FieldChange `json:"changes"`
}

package entities

import (
	"errors"
	"time"
)

// Connection represents a directed cause→effect relationship between two
// events. A connection with EditOf set proposes field changes to an existing
// connection; one with DeleteOf set proposes its removal. At most one of the
// two may be set.
type Connection struct {
	ID      string `json:"id"`
	Section string `json:"section"`

	CauseEventID  string `json:"cause_event_id"`
	EffectEventID string `json:"effect_event_id"`
	Description   string `json:"description"`

	AddedBy      string    `json:"added_by"`
	AddedByEmail string    `json:"added_by_email"`
	AddedByUID   string    `json:"added_by_uid"`
	DateAdded    time.Time `json:"date_added"`
	Status       Status    `json:"status"`

	EditOf   string `json:"edit_of,omitempty"`
	DeleteOf string `json:"delete_of,omitempty"`
}

// IsProposal reports whether the connection is an edit or delete proposal.
func (c *Connection) IsProposal() bool {
	return c.EditOf != "" || c.DeleteOf != ""
}

// Involves reports whether the connection touches the given event id.
func (c *Connection) Involves(eventID string) bool {
	return c.CauseEventID == eventID || c.EffectEventID == eventID
}

// Other returns the opposite endpoint of the given event id, or "" when the
// connection does not involve it.
func (c *Connection) Other(eventID string) string {
	switch eventID {
	case c.CauseEventID:
		return c.EffectEventID
	case c.EffectEventID:
		return c.CauseEventID
	default:
		return ""
	}
}

// Validate checks the connection invariants enforced at the submission
// boundary.
func (c *Connection) Validate() error {
	if c.CauseEventID == "" || c.EffectEventID == "" {
		return errors.New("cause and effect event ids are required")
	}
	if c.CauseEventID == c.EffectEventID {
		return errors.New("cause and effect must be different events")
	}
	if c.EditOf != "" && c.DeleteOf != "" {
		return errors.New("a connection proposal cannot be both an edit and a delete")
	}
	return nil
}

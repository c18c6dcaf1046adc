package ports

import "context"

// Change is one live update pushed by a hosted store.
type Change struct {
	Table    string `json:"table"`
	Action   string `json:"action"` // create, update or delete
	RecordID string `json:"record_id"`
}

// ChangeFeed streams live document updates. This is separate from
// DocumentStore because only hosted backends support push updates; local
// backends simply don't implement it.
type ChangeFeed interface {
	// Watch emits changes for a table until the context is canceled.
	Watch(ctx context.Context, table string) (<-chan Change, error)
}

package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/nvall/chronoline/internal/domain/diff"
	"github.com/nvall/chronoline/internal/domain/entities"
	"github.com/nvall/chronoline/internal/domain/services"
)

// ModerationHandler handles the teacher review queue.
type ModerationHandler struct {
	moderation *services.ModerationService
}

// NewModerationHandler creates a new ModerationHandler.
func NewModerationHandler(moderation *services.ModerationService) *ModerationHandler {
	return &ModerationHandler{moderation: moderation}
}

// QueueItem is one pending submission with display metadata.
type QueueItem struct {
	Kind        string // "event", "event-edit", "connection", "connection-edit", "connection-delete"
	ID          string
	Title       string
	SubmittedBy string
}

// HandleQueue lists the pending queue for a section.
func (h *ModerationHandler) HandleQueue(ctx context.Context, section string) ([]QueueItem, error) {
	events, err := h.moderation.PendingEvents(ctx, section)
	if err != nil {
		return nil, fmt.Errorf("listing pending events: %w", err)
	}
	conns, err := h.moderation.PendingConnections(ctx, section)
	if err != nil {
		return nil, fmt.Errorf("listing pending connections: %w", err)
	}

	items := make([]QueueItem, 0, len(events)+len(conns))
	for i := range events {
		kind := "event"
		if events[i].IsProposal() {
			kind = "event-edit"
		}
		items = append(items, QueueItem{
			Kind:        kind,
			ID:          events[i].ID,
			Title:       events[i].Title,
			SubmittedBy: events[i].AddedBy,
		})
	}
	for i := range conns {
		kind := "connection"
		switch {
		case conns[i].EditOf != "":
			kind = "connection-edit"
		case conns[i].DeleteOf != "":
			kind = "connection-delete"
		}
		items = append(items, QueueItem{
			Kind:        kind,
			ID:          conns[i].ID,
			Title:       conns[i].Description,
			SubmittedBy: conns[i].AddedBy,
		})
	}
	return items, nil
}

// HandleApproveEvent approves a pending event and returns a human-readable
// change summary (empty for plain approvals).
func (h *ModerationHandler) HandleApproveEvent(ctx context.Context, id string) (string, error) {
	changes, err := h.moderation.ApproveEvent(ctx, id)
	if err != nil {
		return "", err
	}
	return FormatChanges(changes), nil
}

// HandleRejectEvent discards a pending event.
func (h *ModerationHandler) HandleRejectEvent(ctx context.Context, id string) error {
	return h.moderation.RejectEvent(ctx, id)
}

// HandleApproveConnection approves a pending connection.
func (h *ModerationHandler) HandleApproveConnection(ctx context.Context, id string) error {
	return h.moderation.ApproveConnection(ctx, id)
}

// HandleRejectConnection discards a pending connection.
func (h *ModerationHandler) HandleRejectConnection(ctx context.Context, id string) error {
	return h.moderation.RejectConnection(ctx, id)
}

// HandleAuditLog returns the audit trail for a record.
func (h *ModerationHandler) HandleAuditLog(ctx context.Context, recordID string) ([]entities.AuditEntry, error) {
	return h.moderation.AuditLog(ctx, recordID)
}

// FormatChanges renders a change set for terminal display. Text fields show
// their word diff with {+added+} and [-removed-] runs.
func FormatChanges(changes []diff.Change) string {
	if len(changes) == 0 {
		return ""
	}

	var b strings.Builder
	for _, c := range changes {
		if len(c.Words) == 0 {
			fmt.Fprintf(&b, "  %s: %q -> %q\n", c.Field, c.From, c.To)
			continue
		}
		fmt.Fprintf(&b, "  %s: ", c.Field)
		for _, tok := range c.Words {
			switch tok.Type {
			case diff.TokenAdd:
				fmt.Fprintf(&b, "{+%s+}", tok.Text)
			case diff.TokenDel:
				fmt.Fprintf(&b, "[-%s-]", tok.Text)
			default:
				b.WriteString(tok.Text)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

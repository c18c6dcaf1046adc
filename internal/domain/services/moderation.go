package services

import (
	"context"
	"fmt"

	"github.com/nvall/chronoline/internal/domain/chrono"
	"github.com/nvall/chronoline/internal/domain/diff"
	"github.com/nvall/chronoline/internal/domain/entities"
	"github.com/nvall/chronoline/internal/domain/ports"
)

// ModerationService applies teacher decisions to pending submissions.
// Approving an edit proposal diffs it against the original, appends a
// history entry, applies only the changed fields and deletes the proposal.
type ModerationService struct {
	store ports.DocumentStore
}

// NewModerationService creates a new ModerationService.
func NewModerationService(store ports.DocumentStore) *ModerationService {
	return &ModerationService{store: store}
}

// PendingEvents lists a section's pending event submissions, proposals
// included.
func (s *ModerationService) PendingEvents(ctx context.Context, section string) ([]entities.Event, error) {
	return s.store.ListEvents(ctx, section, entities.StatusPending)
}

// PendingConnections lists a section's pending connection submissions.
func (s *ModerationService) PendingConnections(ctx context.Context, section string) ([]entities.Connection, error) {
	return s.store.ListConnections(ctx, section, entities.StatusPending)
}

// ApproveEvent approves a pending event. Plain submissions flip to
// approved; edit proposals are merged into their original. The applied
// changes (nil for a plain approval) are returned for display.
func (s *ModerationService) ApproveEvent(ctx context.Context, id string) ([]diff.Change, error) {
	event, err := s.store.FindEventByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("finding event: %w", err)
	}
	if event == nil {
		return nil, fmt.Errorf("event not found: %s", id)
	}
	if event.Status != entities.StatusPending {
		return nil, fmt.Errorf("event is not pending: %s", id)
	}

	if !event.IsProposal() {
		event.Status = entities.StatusApproved
		if err := s.store.SaveEvent(ctx, event); err != nil {
			return nil, fmt.Errorf("saving event: %w", err)
		}
		_ = s.store.LogAction(ctx, "event.approved", event.ID, nil)
		return nil, nil
	}
	return s.approveEventEdit(ctx, event)
}

// approveEventEdit merges an edit proposal into its original. A concurrent
// deletion of the original is treated as an empty result: the orphaned
// proposal is discarded without error.
func (s *ModerationService) approveEventEdit(ctx context.Context, proposal *entities.Event) ([]diff.Change, error) {
	original, err := s.store.FindEventByID(ctx, proposal.EditOf)
	if err != nil {
		return nil, fmt.Errorf("finding original event: %w", err)
	}
	if original == nil {
		if err := s.store.DeleteEvent(ctx, proposal.ID); err != nil {
			return nil, fmt.Errorf("discarding orphaned proposal: %w", err)
		}
		_ = s.store.LogAction(ctx, "event.edit_orphaned", proposal.ID, nil)
		return nil, nil
	}

	periods, err := s.store.ListPeriods(ctx, original.Section)
	if err != nil {
		return nil, fmt.Errorf("listing periods: %w", err)
	}

	changes := EventChanges(original, proposal, periods)
	if len(changes) > 0 {
		entry := entities.EditHistoryEntry{
			Name:    proposal.AddedBy,
			Email:   proposal.AddedByEmail,
			Date:    timeNow(),
			Changes: make(map[string]entities.FieldChange, len(changes)),
		}
		for _, c := range changes {
			entry.Changes[c.Field] = entities.FieldChange{From: c.From, To: c.To}
		}
		original.EditHistory = append(original.EditHistory, entry)
		applyEventChanges(original, proposal, changes)

		if err := s.store.SaveEvent(ctx, original); err != nil {
			return nil, fmt.Errorf("saving merged event: %w", err)
		}
	}

	if err := s.store.DeleteEvent(ctx, proposal.ID); err != nil {
		return nil, fmt.Errorf("deleting merged proposal: %w", err)
	}
	_ = s.store.LogAction(ctx, "event.edit_approved", original.ID, map[string]any{
		"proposal": proposal.ID,
		"fields":   changedFieldNames(changes),
	})
	return changes, nil
}

// RejectEvent discards a pending event or proposal.
func (s *ModerationService) RejectEvent(ctx context.Context, id string) error {
	event, err := s.store.FindEventByID(ctx, id)
	if err != nil {
		return fmt.Errorf("finding event: %w", err)
	}
	if event == nil {
		return fmt.Errorf("event not found: %s", id)
	}
	if event.Status != entities.StatusPending {
		return fmt.Errorf("event is not pending: %s", id)
	}
	if err := s.store.DeleteEvent(ctx, id); err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}
	_ = s.store.LogAction(ctx, "event.rejected", id, nil)
	return nil
}

// ApproveConnection approves a pending connection. Edit proposals merge
// their description into the original; delete proposals remove the target.
func (s *ModerationService) ApproveConnection(ctx context.Context, id string) error {
	conn, err := s.store.FindConnectionByID(ctx, id)
	if err != nil {
		return fmt.Errorf("finding connection: %w", err)
	}
	if conn == nil {
		return fmt.Errorf("connection not found: %s", id)
	}
	if conn.Status != entities.StatusPending {
		return fmt.Errorf("connection is not pending: %s", id)
	}

	switch {
	case conn.DeleteOf != "":
		if err := s.store.DeleteConnection(ctx, conn.DeleteOf); err != nil {
			return fmt.Errorf("deleting connection: %w", err)
		}
		if err := s.store.DeleteConnection(ctx, conn.ID); err != nil {
			return fmt.Errorf("deleting proposal: %w", err)
		}
		_ = s.store.LogAction(ctx, "connection.delete_approved", conn.DeleteOf, nil)

	case conn.EditOf != "":
		original, err := s.store.FindConnectionByID(ctx, conn.EditOf)
		if err != nil {
			return fmt.Errorf("finding original connection: %w", err)
		}
		if original != nil {
			original.Description = conn.Description
			if err := s.store.SaveConnection(ctx, original); err != nil {
				return fmt.Errorf("saving merged connection: %w", err)
			}
		}
		if err := s.store.DeleteConnection(ctx, conn.ID); err != nil {
			return fmt.Errorf("deleting proposal: %w", err)
		}
		_ = s.store.LogAction(ctx, "connection.edit_approved", conn.EditOf, nil)

	default:
		conn.Status = entities.StatusApproved
		if err := s.store.SaveConnection(ctx, conn); err != nil {
			return fmt.Errorf("saving connection: %w", err)
		}
		_ = s.store.LogAction(ctx, "connection.approved", conn.ID, nil)
	}
	return nil
}

// RejectConnection discards a pending connection or proposal.
func (s *ModerationService) RejectConnection(ctx context.Context, id string) error {
	conn, err := s.store.FindConnectionByID(ctx, id)
	if err != nil {
		return fmt.Errorf("finding connection: %w", err)
	}
	if conn == nil {
		return fmt.Errorf("connection not found: %s", id)
	}
	if conn.Status != entities.StatusPending {
		return fmt.Errorf("connection is not pending: %s", id)
	}
	if err := s.store.DeleteConnection(ctx, id); err != nil {
		return fmt.Errorf("deleting connection: %w", err)
	}
	_ = s.store.LogAction(ctx, "connection.rejected", id, nil)
	return nil
}

// AuditLog returns the audit entries recorded against a record id.
func (s *ModerationService) AuditLog(ctx context.Context, recordID string) ([]entities.AuditEntry, error) {
	return s.store.FindAuditLog(ctx, recordID)
}

// eventFieldOrder fixes the comparison and display order of event diffs.
var eventFieldOrder = []string{
	"title", "description", "year", "month", "day",
	"end_year", "end_month", "end_day",
	"period", "tags", "source_type", "source_note",
	"source_url", "image_url", "region",
}

// EventChanges computes the moderation diff between an original event and a
// proposal. Months render as month names and period ids as period labels,
// both for comparison and display.
func EventChanges(original, proposal *entities.Event, periods []entities.Period) []diff.Change {
	labels := make(map[string]string, len(periods))
	for _, p := range periods {
		labels[p.ID] = p.Label
	}

	formatters := map[string]func(any) string{
		"month":     formatMonth,
		"end_month": formatMonth,
		"period": func(v any) string {
			id, _ := v.(string)
			if label, ok := labels[id]; ok {
				return label
			}
			return id
		},
	}

	specs := make([]diff.Spec, 0, len(eventFieldOrder))
	for _, name := range eventFieldOrder {
		spec := diff.Spec{Name: name, Kind: diff.KindScalar, Format: formatters[name]}
		switch name {
		case "title", "description", "source_note":
			spec.Kind = diff.KindText
		case "tags":
			spec.Kind = diff.KindList
		}
		specs = append(specs, spec)
	}

	return diff.Fields(eventValues(original), eventValues(proposal), specs)
}

func eventValues(e *entities.Event) map[string]any {
	values := map[string]any{
		"title":       e.Title,
		"description": e.Description,
		"year":        e.Year,
		"period":      e.PeriodID,
		"tags":        e.Tags,
		"source_type": string(e.SourceType),
		"source_note": e.SourceNote,
		"source_url":  e.SourceURL,
		"image_url":   e.ImageURL,
		"region":      e.Region,
	}
	if e.Month > 0 {
		values["month"] = e.Month
	}
	if e.Day > 0 {
		values["day"] = e.Day
	}
	if e.EndYear != nil {
		values["end_year"] = *e.EndYear
		if e.EndMonth > 0 {
			values["end_month"] = e.EndMonth
		}
		if e.EndDay > 0 {
			values["end_day"] = e.EndDay
		}
	}
	return values
}

func formatMonth(v any) string {
	m, ok := v.(int)
	if !ok {
		return ""
	}
	return chrono.MonthName(m)
}

// applyEventChanges copies only the changed fields from the proposal onto
// the original.
func applyEventChanges(original, proposal *entities.Event, changes []diff.Change) {
	for _, c := range changes {
		switch c.Field {
		case "title":
			original.Title = proposal.Title
		case "description":
			original.Description = proposal.Description
		case "year":
			original.Year = proposal.Year
		case "month":
			original.Month = proposal.Month
		case "day":
			original.Day = proposal.Day
		case "end_year":
			original.EndYear = proposal.EndYear
		case "end_month":
			original.EndMonth = proposal.EndMonth
		case "end_day":
			original.EndDay = proposal.EndDay
		case "period":
			original.PeriodID = proposal.PeriodID
		case "tags":
			original.Tags = proposal.Tags
		case "source_type":
			original.SourceType = proposal.SourceType
		case "source_note":
			original.SourceNote = proposal.SourceNote
		case "source_url":
			original.SourceURL = proposal.SourceURL
		case "image_url":
			original.ImageURL = proposal.ImageURL
		case "region":
			original.Region = proposal.Region
		}
	}
}

func changedFieldNames(changes []diff.Change) []string {
	names := make([]string, len(changes))
	for i, c := range changes {
		names[i] = c.Field
	}
	return names
}

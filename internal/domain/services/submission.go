// Package services contains the domain services driving submission,
// moderation and section configuration.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nvall/chronoline/internal/domain/entities"
	"github.com/nvall/chronoline/internal/domain/ports"
)

// timeNow returns the current time (can be mocked in tests).
var timeNow = time.Now

// Submitter identifies the authenticated user creating a record.
type Submitter struct {
	Name  string
	Email string
	UID   string
}

// SubmissionService creates pending events and connections. All boundary
// validation happens here; records that reach the store always satisfy the
// domain invariants.
type SubmissionService struct {
	store ports.DocumentStore
}

// NewSubmissionService creates a new SubmissionService.
func NewSubmissionService(store ports.DocumentStore) *SubmissionService {
	return &SubmissionService{store: store}
}

// SubmitEvent validates and stores a new pending event.
func (s *SubmissionService) SubmitEvent(ctx context.Context, event *entities.Event, by Submitter) (*entities.Event, error) {
	if err := event.Validate(); err != nil {
		return nil, fmt.Errorf("validating event: %w", err)
	}
	if err := s.checkMandatoryFields(ctx, event); err != nil {
		return nil, err
	}

	event.ID = uuid.New().String()
	event.AddedBy = by.Name
	event.AddedByEmail = by.Email
	event.AddedByUID = by.UID
	event.DateAdded = timeNow()
	event.Status = entities.StatusPending
	event.EditHistory = nil

	if err := s.store.SaveEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("saving event: %w", err)
	}
	_ = s.store.LogAction(ctx, "event.submitted", event.ID, map[string]any{
		"section": event.Section,
		"title":   event.Title,
	})
	return event, nil
}

// ProposeEventEdit stores a pending edit proposal for an approved event.
// The proposal is a full event record carrying EditOf.
func (s *SubmissionService) ProposeEventEdit(ctx context.Context, originalID string, proposal *entities.Event, by Submitter) (*entities.Event, error) {
	original, err := s.store.FindEventByID(ctx, originalID)
	if err != nil {
		return nil, fmt.Errorf("finding original event: %w", err)
	}
	if original == nil {
		return nil, fmt.Errorf("event not found: %s", originalID)
	}
	if original.Status != entities.StatusApproved {
		return nil, fmt.Errorf("only approved events accept edit proposals: %s", originalID)
	}

	proposal.EditOf = originalID
	proposal.Section = original.Section
	ev, err := s.SubmitEvent(ctx, proposal, by)
	if err != nil {
		return nil, err
	}
	_ = s.store.LogAction(ctx, "event.edit_proposed", originalID, map[string]any{
		"proposal": ev.ID,
	})
	return ev, nil
}

// SubmitConnection validates and stores a new pending connection. Both
// endpoints must exist; section filtering may later hide one of them, which
// is a display concern, not a submission error.
func (s *SubmissionService) SubmitConnection(ctx context.Context, conn *entities.Connection, by Submitter) (*entities.Connection, error) {
	if err := conn.Validate(); err != nil {
		return nil, fmt.Errorf("validating connection: %w", err)
	}
	for _, id := range []string{conn.CauseEventID, conn.EffectEventID} {
		ev, err := s.store.FindEventByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("finding event: %w", err)
		}
		if ev == nil {
			return nil, fmt.Errorf("connection endpoint not found: %s", id)
		}
	}

	conn.ID = uuid.New().String()
	conn.AddedBy = by.Name
	conn.AddedByEmail = by.Email
	conn.AddedByUID = by.UID
	conn.DateAdded = timeNow()
	conn.Status = entities.StatusPending

	if err := s.store.SaveConnection(ctx, conn); err != nil {
		return nil, fmt.Errorf("saving connection: %w", err)
	}
	_ = s.store.LogAction(ctx, "connection.submitted", conn.ID, map[string]any{
		"cause":  conn.CauseEventID,
		"effect": conn.EffectEventID,
	})
	return conn, nil
}

// ProposeConnectionEdit stores a pending edit proposal for an approved
// connection. Only the description is editable; the endpoints carry over
// from the target.
func (s *SubmissionService) ProposeConnectionEdit(ctx context.Context, connectionID, description string, by Submitter) (*entities.Connection, error) {
	target, err := s.store.FindConnectionByID(ctx, connectionID)
	if err != nil {
		return nil, fmt.Errorf("finding connection: %w", err)
	}
	if target == nil {
		return nil, fmt.Errorf("connection not found: %s", connectionID)
	}
	if target.Status != entities.StatusApproved {
		return nil, fmt.Errorf("only approved connections accept edit proposals: %s", connectionID)
	}

	proposal := &entities.Connection{
		ID:            uuid.New().String(),
		Section:       target.Section,
		CauseEventID:  target.CauseEventID,
		EffectEventID: target.EffectEventID,
		Description:   description,
		AddedBy:       by.Name,
		AddedByEmail:  by.Email,
		AddedByUID:    by.UID,
		DateAdded:     timeNow(),
		Status:        entities.StatusPending,
		EditOf:        connectionID,
	}
	if err := s.store.SaveConnection(ctx, proposal); err != nil {
		return nil, fmt.Errorf("saving edit proposal: %w", err)
	}
	_ = s.store.LogAction(ctx, "connection.edit_proposed", connectionID, map[string]any{
		"proposal": proposal.ID,
	})
	return proposal, nil
}

// ProposeConnectionDelete stores a pending delete proposal for an approved
// connection.
func (s *SubmissionService) ProposeConnectionDelete(ctx context.Context, connectionID string, by Submitter) (*entities.Connection, error) {
	target, err := s.store.FindConnectionByID(ctx, connectionID)
	if err != nil {
		return nil, fmt.Errorf("finding connection: %w", err)
	}
	if target == nil {
		return nil, fmt.Errorf("connection not found: %s", connectionID)
	}

	proposal := &entities.Connection{
		ID:            uuid.New().String(),
		Section:       target.Section,
		CauseEventID:  target.CauseEventID,
		EffectEventID: target.EffectEventID,
		Description:   target.Description,
		AddedBy:       by.Name,
		AddedByEmail:  by.Email,
		AddedByUID:    by.UID,
		DateAdded:     timeNow(),
		Status:        entities.StatusPending,
		DeleteOf:      connectionID,
	}
	if err := s.store.SaveConnection(ctx, proposal); err != nil {
		return nil, fmt.Errorf("saving delete proposal: %w", err)
	}
	_ = s.store.LogAction(ctx, "connection.delete_proposed", connectionID, map[string]any{
		"proposal": proposal.ID,
	})
	return proposal, nil
}

// checkMandatoryFields enforces the section's field-mode map on the
// optional content fields.
func (s *SubmissionService) checkMandatoryFields(ctx context.Context, event *entities.Event) error {
	settings, err := s.store.FindSettings(ctx, event.Section)
	if err != nil {
		return fmt.Errorf("finding section settings: %w", err)
	}
	if settings == nil {
		return nil
	}

	values := map[string]string{
		"description": event.Description,
		"source_note": event.SourceNote,
		"source_url":  event.SourceURL,
		"image_url":   event.ImageURL,
		"region":      event.Region,
	}
	for field, value := range values {
		if settings.Mode(field) == entities.FieldMandatory && value == "" {
			return fmt.Errorf("field %q is mandatory for section %s", field, event.Section)
		}
	}
	return nil
}

// Package handlers bridges CLI commands to domain services.
package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/nvall/chronoline/internal/domain/entities"
	"github.com/nvall/chronoline/internal/domain/ports"
	"github.com/nvall/chronoline/internal/domain/services"
)

// EventHandler handles event submission and listing.
type EventHandler struct {
	submissions *services.SubmissionService
	store       ports.DocumentStore
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(submissions *services.SubmissionService, store ports.DocumentStore) *EventHandler {
	return &EventHandler{submissions: submissions, store: store}
}

// SubmitInput carries the raw submission-form values.
type SubmitInput struct {
	Section     string
	Title       string
	Description string
	Year        int
	Month       int
	Day         int
	EndYear     int // 0 = point event
	EndMonth    int
	EndDay      int
	PeriodID    string
	Tags        string // comma-separated
	SourceType  string
	SourceNote  string
	SourceURL   string
	ImageURL    string
	Region      string
	EditOf      string
}

// HandleSubmit builds and submits a pending event (or edit proposal) from
// form input.
func (h *EventHandler) HandleSubmit(ctx context.Context, in SubmitInput, by services.Submitter) (*entities.Event, error) {
	event := &entities.Event{
		Section:     in.Section,
		Title:       in.Title,
		Description: in.Description,
		Year:        in.Year,
		Month:       in.Month,
		Day:         in.Day,
		PeriodID:    in.PeriodID,
		Tags:        splitTags(in.Tags),
		SourceType:  parseSourceType(in.SourceType),
		SourceNote:  in.SourceNote,
		SourceURL:   in.SourceURL,
		ImageURL:    in.ImageURL,
		Region:      in.Region,
	}
	if in.EndYear != 0 {
		end := in.EndYear
		event.EndYear = &end
		event.EndMonth = in.EndMonth
		event.EndDay = in.EndDay
	}

	if in.EditOf != "" {
		return h.submissions.ProposeEventEdit(ctx, in.EditOf, event, by)
	}
	return h.submissions.SubmitEvent(ctx, event, by)
}

// HandleList lists a section's events with the given status.
func (h *EventHandler) HandleList(ctx context.Context, section string, status entities.Status) ([]entities.Event, error) {
	return h.store.ListEvents(ctx, section, status)
}

// HandleConnect submits a pending cause→effect connection.
func (h *EventHandler) HandleConnect(ctx context.Context, section, causeID, effectID, description string, by services.Submitter) (*entities.Connection, error) {
	conn := &entities.Connection{
		Section:       section,
		CauseEventID:  causeID,
		EffectEventID: effectID,
		Description:   description,
	}
	return h.submissions.SubmitConnection(ctx, conn, by)
}

// HandleProposeConnectionEdit submits a pending description change for an
// approved connection.
func (h *EventHandler) HandleProposeConnectionEdit(ctx context.Context, connectionID, description string, by services.Submitter) (*entities.Connection, error) {
	return h.submissions.ProposeConnectionEdit(ctx, connectionID, description, by)
}

// HandleProposeConnectionDelete submits a pending removal of an approved
// connection.
func (h *EventHandler) HandleProposeConnectionDelete(ctx context.Context, connectionID string, by services.Submitter) (*entities.Connection, error) {
	return h.submissions.ProposeConnectionDelete(ctx, connectionID, by)
}

func splitTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func parseSourceType(s string) entities.SourceType {
	if strings.EqualFold(s, "primary") {
		return entities.SourcePrimary
	}
	return entities.SourceSecondary
}

// FormatEventDate renders an event's date (or range) for listings.
func FormatEventDate(e *entities.Event) string {
	start := e.Start().Format()
	if end, ok := e.End(); ok {
		return fmt.Sprintf("%s – %s", start, end.Format())
	}
	return start
}

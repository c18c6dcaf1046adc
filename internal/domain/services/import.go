package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/nvall/chronoline/internal/domain/entities"
	"github.com/nvall/chronoline/internal/domain/ports"
	"github.com/nvall/chronoline/internal/infrastructure/parsers"
)

// ImportOptions controls import behavior.
type ImportOptions struct {
	DryRun bool // Validate without saving
}

// ImportError represents an error for a specific event during import.
type ImportError struct {
	Line    int    // Line number (1-indexed, 0 if unknown)
	Message string // Human-readable error message
}

func (e ImportError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// ImportResult contains the result of an import operation.
type ImportResult struct {
	Imported int
	Errors   []ImportError
}

// ImportService seeds a section's timeline from instructor-provided files.
// Imported events skip the moderation queue and land approved.
type ImportService struct {
	store ports.DocumentStore
}

// NewImportService creates a new ImportService.
func NewImportService(store ports.DocumentStore) *ImportService {
	return &ImportService{store: store}
}

// Import validates and stores raw events into a section. Rows that fail
// validation are reported per line; the valid remainder is still imported.
func (s *ImportService) Import(ctx context.Context, section string, rawEvents []parsers.RawEvent, by Submitter, opts ImportOptions) (*ImportResult, error) {
	result := &ImportResult{}

	events := make([]*entities.Event, 0, len(rawEvents))
	for i := range rawEvents {
		raw := &rawEvents[i]
		lineNum := raw.LineNum
		if lineNum == 0 {
			lineNum = i + 1
		}

		event := convertRawEvent(raw, section, by)
		if err := event.Validate(); err != nil {
			result.Errors = append(result.Errors, ImportError{Line: lineNum, Message: err.Error()})
			continue
		}
		events = append(events, event)
	}

	if opts.DryRun {
		result.Imported = len(events)
		return result, nil
	}

	for _, event := range events {
		if err := s.store.SaveEvent(ctx, event); err != nil {
			return nil, fmt.Errorf("saving imported event %q: %w", event.Title, err)
		}
	}
	if len(events) > 0 {
		_ = s.store.LogAction(ctx, "events.imported", section, map[string]any{
			"count": len(events),
			"by":    by.Name,
		})
	}

	result.Imported = len(events)
	return result, nil
}

// convertRawEvent builds an approved domain event from an import row.
func convertRawEvent(raw *parsers.RawEvent, section string, by Submitter) *entities.Event {
	event := &entities.Event{
		ID:           uuid.New().String(),
		Section:      section,
		Title:        raw.Title,
		Description:  raw.Description,
		Year:         raw.Year,
		Month:        raw.Month,
		Day:          raw.Day,
		Tags:         splitImportTags(raw.Tags),
		SourceType:   parseImportSourceType(raw.SourceType),
		SourceNote:   raw.SourceNote,
		SourceURL:    raw.SourceURL,
		Region:       raw.Region,
		AddedBy:      by.Name,
		AddedByEmail: by.Email,
		AddedByUID:   by.UID,
		DateAdded:    timeNow(),
		Status:       entities.StatusApproved,
	}
	if raw.EndYear != 0 {
		end := raw.EndYear
		event.EndYear = &end
		event.EndMonth = raw.EndMonth
		event.EndDay = raw.EndDay
	}
	return event
}

func splitImportTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func parseImportSourceType(s string) entities.SourceType {
	if strings.EqualFold(s, "primary") {
		return entities.SourcePrimary
	}
	return entities.SourceSecondary
}

// Package entities contains core domain data structures.
package entities

import (
	"errors"
	"fmt"
	"time"

	"github.com/nvall/chronoline/internal/domain/chrono"
)

// Status tracks a submission through the moderation workflow.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
)

// SourceType classifies the historical source backing an event.
type SourceType string

const (
	SourcePrimary   SourceType = "primary"
	SourceSecondary SourceType = "secondary"
)

// Event represents a historical occurrence submitted to a section's timeline.
// An event with EndYear set spans a range; otherwise it is a point event.
// An event with EditOf set is an edit proposal for an approved event and is
// never rendered itself.
type Event struct {
	ID      string `json:"id"`
	Section string `json:"section"`

	Year  int `json:"year"` // negative = BCE, never 0
	Month int `json:"month,omitempty"`
	Day   int `json:"day,omitempty"`

	EndYear  *int `json:"end_year,omitempty"`
	EndMonth int  `json:"end_month,omitempty"`
	EndDay   int  `json:"end_day,omitempty"`

	PeriodID   string     `json:"period_id"`
	Tags       []string   `json:"tags"`
	SourceType SourceType `json:"source_type"`

	Title       string `json:"title"`
	Description string `json:"description"`
	SourceNote  string `json:"source_note"`
	SourceURL   string `json:"source_url,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	Region      string `json:"region,omitempty"`

	AddedBy      string    `json:"added_by"`
	AddedByEmail string    `json:"added_by_email"`
	AddedByUID   string    `json:"added_by_uid"`
	DateAdded    time.Time `json:"date_added"`
	Status       Status    `json:"status"`

	EditOf      string             `json:"edit_of,omitempty"`
	EditHistory []EditHistoryEntry `json:"edit_history,omitempty"`
}

// Start returns the event's start date.
func (e *Event) Start() chrono.Date {
	return chrono.Date{Year: e.Year, Month: e.Month, Day: e.Day}
}

// End returns the event's end date, or false for a point event.
func (e *Event) End() (chrono.Date, bool) {
	if e.EndYear == nil {
		return chrono.Date{}, false
	}
	return chrono.Date{Year: *e.EndYear, Month: e.EndMonth, Day: e.EndDay}, true
}

// IsRange reports whether the event spans a date range.
func (e *Event) IsRange() bool {
	return e.EndYear != nil
}

// IsProposal reports whether the event is an edit proposal for another event.
func (e *Event) IsProposal() bool {
	return e.EditOf != ""
}

// Validate checks the temporal and content invariants enforced at the
// submission boundary. The layout engine assumes events it receives pass this.
func (e *Event) Validate() error {
	if err := e.Start().Validate(); err != nil {
		return fmt.Errorf("start date: %w", err)
	}
	if end, ok := e.End(); ok {
		if err := end.Validate(); err != nil {
			return fmt.Errorf("end date: %w", err)
		}
		if chrono.Compare(end, e.Start()) < 0 {
			return errors.New("end date precedes start date")
		}
	}
	if e.Title == "" {
		return errors.New("title is required")
	}
	if len(e.Tags) == 0 {
		return errors.New("at least one tag is required")
	}
	switch e.SourceType {
	case SourcePrimary, SourceSecondary:
	default:
		return fmt.Errorf("invalid source type: %q", e.SourceType)
	}
	return nil
}

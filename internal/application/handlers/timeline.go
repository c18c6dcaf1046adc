package handlers

import (
	"context"
	"fmt"

	"github.com/nvall/chronoline/internal/domain/entities"
	"github.com/nvall/chronoline/internal/domain/ports"
	"github.com/nvall/chronoline/internal/domain/services"
	"github.com/nvall/chronoline/internal/domain/timeline"
	"github.com/nvall/chronoline/internal/infrastructure/render"
)

// TimelineHandler assembles layout snapshots and renders them.
type TimelineHandler struct {
	store    ports.DocumentStore
	sections *services.SectionService
}

// NewTimelineHandler creates a new TimelineHandler.
func NewTimelineHandler(store ports.DocumentStore, sections *services.SectionService) *TimelineHandler {
	return &TimelineHandler{store: store, sections: sections}
}

// Snapshot is everything one layout pass consumed and produced, kept
// together so callers can follow up with arc or hit lookups.
type Snapshot struct {
	Layout   timeline.Layout
	Bounds   timeline.Bounds
	Settings *entities.SectionSettings
	Events   []entities.Event
	Periods  []entities.Period
}

// HandleLayout loads a section's approved records and computes the layout
// for the given view and viewport width.
func (h *TimelineHandler) HandleLayout(ctx context.Context, section string, view timeline.View, viewportWidth float64, opts timeline.Options) (*Snapshot, error) {
	settings, err := h.sections.Settings(ctx, section)
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	events, err := h.store.ListEvents(ctx, section, entities.StatusApproved)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	events = dropMalformedDates(events)
	periods, err := h.store.ListPeriods(ctx, section)
	if err != nil {
		return nil, fmt.Errorf("listing periods: %w", err)
	}
	bounds := timeline.Bounds{Start: settings.TimelineStart, End: settings.TimelineEnd}
	layout := timeline.Compute(timeline.Input{
		Events:        events,
		Periods:       periods,
		Bounds:        bounds,
		View:          view,
		ViewportWidth: viewportWidth,
		Options:       opts,
	})

	return &Snapshot{
		Layout:   layout,
		Bounds:   bounds,
		Settings: settings,
		Events:   events,
		Periods:  periods,
	}, nil
}

// dropMalformedDates excludes events whose dates fail validation. The
// hosted store is shared; records written by other processes may carry
// temporal data this process never validated.
func dropMalformedDates(events []entities.Event) []entities.Event {
	kept := make([]entities.Event, 0, len(events))
	for i := range events {
		if events[i].Start().Validate() != nil {
			continue
		}
		if end, ok := events[i].End(); ok && end.Validate() != nil {
			continue
		}
		kept = append(kept, events[i])
	}
	return kept
}

// HandleArcs computes the connector arcs for an expanded event, fetching
// the event's approved connections from the store.
func (h *TimelineHandler) HandleArcs(ctx context.Context, snap *Snapshot, expandedEventID string) ([]timeline.Arc, error) {
	conns, err := h.store.ListConnectionsByEvent(ctx, expandedEventID)
	if err != nil {
		return nil, fmt.Errorf("listing connections: %w", err)
	}
	return timeline.Arcs(&snap.Layout, expandedEventID, conns), nil
}

// HandleRender lays out a section and renders it as an SVG document. When
// expandedEventID is set, its connector arcs are drawn.
func (h *TimelineHandler) HandleRender(ctx context.Context, section string, view timeline.View, viewportWidth float64, opts timeline.Options, expandedEventID string) ([]byte, error) {
	snap, err := h.HandleLayout(ctx, section, view, viewportWidth, opts)
	if err != nil {
		return nil, err
	}

	renderOpts := render.Options{Title: section}
	if snap.Settings.ShowQuestion {
		renderOpts.Question = snap.Settings.CompellingQuestion
	}
	if expandedEventID != "" {
		arcs, err := h.HandleArcs(ctx, snap, expandedEventID)
		if err != nil {
			return nil, err
		}
		renderOpts.Arcs = arcs
	}
	return render.Document(snap.Layout, snap.Periods, snap.Bounds, renderOpts), nil
}

package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvall/chronoline/internal/domain/entities"
	"github.com/nvall/chronoline/internal/domain/mocks"
	"github.com/nvall/chronoline/internal/domain/services"
	"github.com/nvall/chronoline/internal/domain/timeline"
)

func newTimelineHandler() (*TimelineHandler, *mocks.DocumentStore) {
	store := mocks.NewDocumentStore()
	return NewTimelineHandler(store, services.NewSectionService(store)), store
}

func seedTimeline(t *testing.T, store *mocks.DocumentStore) {
	t.Helper()
	require.NoError(t, store.SaveSettings(context.Background(), &entities.SectionSettings{
		Section: "period-3", TimelineStart: 2000, TimelineEnd: 2100,
	}))
	for _, ev := range []entities.Event{
		{ID: "a", Section: "period-3", Year: 2000, Title: "a", Status: entities.StatusApproved},
		{ID: "b", Section: "period-3", Year: 2080, Title: "b", Status: entities.StatusApproved},
		{ID: "hidden", Section: "period-3", Year: 2050, Title: "hidden", Status: entities.StatusPending},
	} {
		e := ev
		require.NoError(t, store.SaveEvent(context.Background(), &e))
	}
	require.NoError(t, store.SaveConnection(context.Background(), &entities.Connection{
		ID: "c-1", Section: "period-3",
		CauseEventID: "a", EffectEventID: "b",
		Status: entities.StatusApproved,
	}))
}

func TestTimelineHandler_HandleLayout(t *testing.T) {
	h, store := newTimelineHandler()
	seedTimeline(t, store)

	snap, err := h.HandleLayout(context.Background(), "period-3",
		timeline.View{Zoom: 1}, 100, timeline.Options{})
	require.NoError(t, err)

	assert.Equal(t, timeline.Bounds{Start: 2000, End: 2100}, snap.Bounds)
	assert.Len(t, snap.Events, 2, "pending events never reach the layout")
	assert.Len(t, snap.Layout.Clusters, 2)
}

func TestTimelineHandler_HandleLayout_MalformedDates(t *testing.T) {
	h, store := newTimelineHandler()
	require.NoError(t, store.SaveSettings(context.Background(), &entities.SectionSettings{
		Section: "period-3", TimelineStart: 2000, TimelineEnd: 2100,
	}))
	// A shared store can hold records this process never validated.
	badEnd := 0
	for _, ev := range []entities.Event{
		{ID: "bad", Section: "period-3", Year: 0, Title: "bad", Status: entities.StatusApproved},
		{ID: "bad-end", Section: "period-3", Year: 2010, EndYear: &badEnd, Title: "bad end", Status: entities.StatusApproved},
		{ID: "good", Section: "period-3", Year: 2050, Title: "good", Status: entities.StatusApproved},
	} {
		e := ev
		require.NoError(t, store.SaveEvent(context.Background(), &e))
	}

	snap, err := h.HandleLayout(context.Background(), "period-3",
		timeline.View{Zoom: 1}, 100, timeline.Options{})
	require.NoError(t, err)

	require.Len(t, snap.Events, 1)
	assert.Equal(t, "good", snap.Events[0].ID)
	require.Len(t, snap.Layout.Clusters, 1)
	assert.Equal(t, []string{"good"}, snap.Layout.Clusters[0].EventIDs)
}

func TestTimelineHandler_HandleArcs(t *testing.T) {
	h, store := newTimelineHandler()
	seedTimeline(t, store)

	snap, err := h.HandleLayout(context.Background(), "period-3",
		timeline.View{Zoom: 1}, 100, timeline.Options{})
	require.NoError(t, err)

	arcs, err := h.HandleArcs(context.Background(), snap, "a")
	require.NoError(t, err)
	require.Len(t, arcs, 1)
	assert.True(t, arcs[0].Outgoing)
	assert.Equal(t, "b", arcs[0].OtherEventID)

	none, err := h.HandleArcs(context.Background(), snap, "missing")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestTimelineHandler_HandleRender(t *testing.T) {
	h, store := newTimelineHandler()
	seedTimeline(t, store)
	require.NoError(t, store.SaveSettings(context.Background(), &entities.SectionSettings{
		Section: "period-3", TimelineStart: 2000, TimelineEnd: 2100,
		CompellingQuestion: "What causes wars?", ShowQuestion: true,
	}))

	svg, err := h.HandleRender(context.Background(), "period-3",
		timeline.View{Zoom: 1}, 100, timeline.Options{}, "a")
	require.NoError(t, err)

	out := string(svg)
	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, "What causes wars?")
	assert.Contains(t, out, "<path", "expanded event draws its connector arc")
}

func TestTimelineHandler_DefaultsWhenUnconfigured(t *testing.T) {
	h, _ := newTimelineHandler()

	snap, err := h.HandleLayout(context.Background(), "untouched",
		timeline.View{Zoom: 1}, 100, timeline.Options{})
	require.NoError(t, err)

	assert.Equal(t, entities.DefaultTimelineStart, snap.Bounds.Start)
	assert.Equal(t, entities.DefaultTimelineEnd, snap.Bounds.End)
	assert.Empty(t, snap.Events)
}

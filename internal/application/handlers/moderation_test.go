package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvall/chronoline/internal/domain/diff"
	"github.com/nvall/chronoline/internal/domain/entities"
	"github.com/nvall/chronoline/internal/domain/mocks"
	"github.com/nvall/chronoline/internal/domain/services"
)

func newModerationHandler() (*ModerationHandler, *mocks.DocumentStore) {
	store := mocks.NewDocumentStore()
	return NewModerationHandler(services.NewModerationService(store)), store
}

func TestModerationHandler_HandleQueue(t *testing.T) {
	h, store := newModerationHandler()

	require.NoError(t, store.SaveEvent(context.Background(), &entities.Event{
		ID: "ev-1", Section: "period-3", Year: 1914,
		Title: "Assassination in Sarajevo", AddedBy: "Ben Ochoa",
		Status: entities.StatusPending,
	}))
	require.NoError(t, store.SaveEvent(context.Background(), &entities.Event{
		ID: "ev-2", Section: "period-3", Year: 1914,
		Title: "Better wording", EditOf: "ev-0",
		Status: entities.StatusPending,
	}))
	require.NoError(t, store.SaveConnection(context.Background(), &entities.Connection{
		ID: "c-1", Section: "period-3",
		CauseEventID: "a", EffectEventID: "b",
		Status: entities.StatusPending, DeleteOf: "c-0",
	}))

	items, err := h.HandleQueue(context.Background(), "period-3")
	require.NoError(t, err)
	require.Len(t, items, 3)

	kinds := map[string]string{}
	for _, item := range items {
		kinds[item.ID] = item.Kind
	}
	assert.Equal(t, "event", kinds["ev-1"])
	assert.Equal(t, "event-edit", kinds["ev-2"])
	assert.Equal(t, "connection-delete", kinds["c-1"])
}

func TestModerationHandler_ApproveRejectEvent(t *testing.T) {
	h, store := newModerationHandler()

	require.NoError(t, store.SaveEvent(context.Background(), &entities.Event{
		ID: "ev-1", Section: "period-3", Year: 1914,
		Title: "x", Status: entities.StatusPending,
	}))

	changes, err := h.HandleApproveEvent(context.Background(), "ev-1")
	require.NoError(t, err)
	assert.Empty(t, changes, "plain approvals carry no change summary")

	require.NoError(t, store.SaveEvent(context.Background(), &entities.Event{
		ID: "ev-2", Section: "period-3", Year: 1915,
		Title: "y", Status: entities.StatusPending,
	}))
	require.NoError(t, h.HandleRejectEvent(context.Background(), "ev-2"))

	gone, _ := store.FindEventByID(context.Background(), "ev-2")
	assert.Nil(t, gone)
}

func TestFormatChanges(t *testing.T) {
	assert.Empty(t, FormatChanges(nil))

	out := FormatChanges([]diff.Change{
		{Field: "year", From: "1940", To: "1941"},
		{Field: "title", From: "the cat sat", To: "the dog sat",
			Words: diff.Words("the cat sat", "the dog sat")},
	})

	assert.Contains(t, out, `year: "1940" -> "1941"`)
	assert.Contains(t, out, "[-cat-]")
	assert.Contains(t, out, "{+dog+}")
	assert.Contains(t, out, "the ")
}

package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvall/chronoline/internal/domain/entities"
	"github.com/nvall/chronoline/internal/domain/mocks"
	"github.com/nvall/chronoline/internal/infrastructure/parsers"
)

func TestImportService_Import(t *testing.T) {
	useFixedClock(t)
	store := mocks.NewDocumentStore()
	svc := NewImportService(store)

	raw := []parsers.RawEvent{
		{Title: "Treaty of Versailles", Year: 1919, Month: 6, Day: 28, Tags: "treaty, europe", LineNum: 2},
		{Title: "Korean War", Year: 1950, EndYear: 1953, SourceType: "primary", LineNum: 3},
	}

	result, err := svc.Import(context.Background(), "period-3", raw, testSubmitter(), ImportOptions{})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Empty(t, result.Errors)

	events, err := store.ListEvents(context.Background(), "period-3", entities.StatusApproved)
	require.NoError(t, err)
	require.Len(t, events, 2)

	var treaty, war *entities.Event
	for i := range events {
		switch events[i].Title {
		case "Treaty of Versailles":
			treaty = &events[i]
		case "Korean War":
			war = &events[i]
		}
	}
	require.NotNil(t, treaty)
	require.NotNil(t, war)

	assert.NotEmpty(t, treaty.ID)
	assert.Equal(t, entities.StatusApproved, treaty.Status)
	assert.Equal(t, []string{"treaty", "europe"}, treaty.Tags)
	assert.Equal(t, entities.SourceSecondary, treaty.SourceType)
	assert.Equal(t, "Ada Rivera", treaty.AddedBy)
	assert.Equal(t, fixedNow, treaty.DateAdded)

	require.NotNil(t, war.EndYear)
	assert.Equal(t, 1953, *war.EndYear)
	assert.Equal(t, entities.SourcePrimary, war.SourceType)
}

func TestImportService_Import_InvalidRows(t *testing.T) {
	store := mocks.NewDocumentStore()
	svc := NewImportService(store)

	raw := []parsers.RawEvent{
		{Title: "Treaty of Versailles", Year: 1919, LineNum: 2},
		{Title: "No such year", Year: 0, LineNum: 3},
		{Year: 1950, LineNum: 4}, // missing title
	}

	result, err := svc.Import(context.Background(), "period-3", raw, testSubmitter(), ImportOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	require.Len(t, result.Errors, 2)
	assert.Equal(t, 3, result.Errors[0].Line)
	assert.Equal(t, 4, result.Errors[1].Line)

	events, err := store.ListEvents(context.Background(), "period-3", entities.StatusApproved)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestImportService_Import_DryRun(t *testing.T) {
	store := mocks.NewDocumentStore()
	svc := NewImportService(store)

	raw := []parsers.RawEvent{
		{Title: "Treaty of Versailles", Year: 1919, LineNum: 2},
	}

	result, err := svc.Import(context.Background(), "period-3", raw, testSubmitter(), ImportOptions{DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)

	events, err := store.ListEvents(context.Background(), "period-3", entities.StatusApproved)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestImportError_Error(t *testing.T) {
	assert.Equal(t, "line 3: bad row", ImportError{Line: 3, Message: "bad row"}.Error())
	assert.Equal(t, "bad row", ImportError{Message: "bad row"}.Error())
}

package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvall/chronoline/internal/domain/entities"
	"github.com/nvall/chronoline/internal/infrastructure/config"
	"github.com/nvall/chronoline/internal/infrastructure/documentdb/sqlite"
)

func newTestRepo(t *testing.T, path string) *sqlite.Repository {
	t.Helper()
	repo, err := sqlite.NewRepository(config.SQLiteConfig{Path: path})
	require.NoError(t, err)
	require.NoError(t, repo.EnsureSchema(context.Background()))
	return repo
}

func testEvent(id, section string, year int, status entities.Status) *entities.Event {
	return &entities.Event{
		ID:         id,
		Section:    section,
		Year:       year,
		Title:      "event " + id,
		Tags:       []string{"history"},
		SourceType: entities.SourceSecondary,
		DateAdded:  time.Now().UTC().Truncate(time.Second),
		Status:     status,
	}
}

func TestSQLiteIntegration_EventsRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	repo := newTestRepo(t, dbPath)
	defer repo.Close()

	_, err := os.Stat(dbPath)
	require.NoError(t, err, "database file should exist")

	ctx := context.Background()

	ev := testEvent("ev-1", "period-3", 1945, entities.StatusApproved)
	ev.Month = 5
	ev.Day = 8
	ev.Description = "the war ends in Europe"
	require.NoError(t, repo.SaveEvent(ctx, ev))

	found, err := repo.FindEventByID(ctx, "ev-1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, ev.Title, found.Title)
	assert.Equal(t, 5, found.Month)
	assert.Equal(t, []string{"history"}, found.Tags)

	missing, err := repo.FindEventByID(ctx, "ghost")
	require.NoError(t, err)
	assert.Nil(t, missing)

	// Status and section filters.
	require.NoError(t, repo.SaveEvent(ctx, testEvent("ev-2", "period-3", 1950, entities.StatusPending)))
	require.NoError(t, repo.SaveEvent(ctx, testEvent("ev-3", "period-4", 1960, entities.StatusApproved)))

	approved, err := repo.ListEvents(ctx, "period-3", entities.StatusApproved)
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, "ev-1", approved[0].ID)

	all, err := repo.ListEvents(ctx, "", entities.StatusApproved)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, repo.DeleteEvent(ctx, "ev-1"))
	gone, err := repo.FindEventByID(ctx, "ev-1")
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestSQLiteIntegration_EditHistorySurvivesPersistence(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")
	ctx := context.Background()

	repo := newTestRepo(t, dbPath)

	ev := testEvent("ev-1", "period-3", 1969, entities.StatusApproved)
	ev.EditHistory = []entities.EditHistoryEntry{{
		Name:  "Ben Ochoa",
		Email: "ben@example.edu",
		Date:  time.Now().UTC().Truncate(time.Second),
		Changes: map[string]entities.FieldChange{
			"title": {From: "Moon landing", To: "Apollo 11 lands"},
		},
	}}
	require.NoError(t, repo.SaveEvent(ctx, ev))
	repo.Close()

	// Reopen and verify the JSON payload came back intact.
	repo2 := newTestRepo(t, dbPath)
	defer repo2.Close()

	found, err := repo2.FindEventByID(ctx, "ev-1")
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Len(t, found.EditHistory, 1)
	assert.Equal(t, "Ben Ochoa", found.EditHistory[0].Name)
	assert.Equal(t, "Apollo 11 lands", found.EditHistory[0].Changes["title"].To)
}

func TestSQLiteIntegration_Connections(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	repo := newTestRepo(t, filepath.Join(t.TempDir(), "test.db"))
	defer repo.Close()
	ctx := context.Background()

	conn := &entities.Connection{
		ID:            "c-1",
		Section:       "period-3",
		CauseEventID:  "a",
		EffectEventID: "b",
		Description:   "led to",
		DateAdded:     time.Now().UTC().Truncate(time.Second),
		Status:        entities.StatusApproved,
	}
	require.NoError(t, repo.SaveConnection(ctx, conn))
	require.NoError(t, repo.SaveConnection(ctx, &entities.Connection{
		ID: "c-2", Section: "period-3",
		CauseEventID: "b", EffectEventID: "x",
		DateAdded: time.Now().UTC().Truncate(time.Second),
		Status:    entities.StatusPending,
	}))

	byEvent, err := repo.ListConnectionsByEvent(ctx, "a")
	require.NoError(t, err)
	require.Len(t, byEvent, 1)
	assert.Equal(t, "c-1", byEvent[0].ID)

	pending, err := repo.ListConnections(ctx, "period-3", entities.StatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "c-2", pending[0].ID)

	require.NoError(t, repo.DeleteConnection(ctx, "c-1"))
	gone, err := repo.FindConnectionByID(ctx, "c-1")
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestSQLiteIntegration_PeriodsAndDefaults(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	repo := newTestRepo(t, filepath.Join(t.TempDir(), "test.db"))
	defer repo.Close()
	ctx := context.Background()

	// Section "" is the default template.
	require.NoError(t, repo.SavePeriod(ctx, &entities.Period{
		ID: "tpl-1", Section: "", Label: "Ancient", StartYear: -3000, EndYear: 500,
	}))
	require.NoError(t, repo.SavePeriod(ctx, &entities.Period{
		ID: "p-2", Section: "period-3", Label: "Cold War", StartYear: 1947, EndYear: 1991,
	}))
	require.NoError(t, repo.SavePeriod(ctx, &entities.Period{
		ID: "p-1", Section: "period-3", Label: "Interwar", StartYear: 1918, EndYear: 1939,
	}))

	periods, err := repo.ListPeriods(ctx, "period-3")
	require.NoError(t, err)
	require.Len(t, periods, 2)
	assert.Equal(t, "Interwar", periods[0].Label, "periods come back ordered by era start")

	defaults, err := repo.ListDefaultPeriods(ctx)
	require.NoError(t, err)
	require.Len(t, defaults, 1)
	assert.Equal(t, "Ancient", defaults[0].Label)

	require.NoError(t, repo.DeletePeriod(ctx, "p-1"))
	assert.Error(t, repo.DeletePeriod(ctx, "p-1"), "deleting a missing period fails")
}

func TestSQLiteIntegration_SettingsAndAudit(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	repo := newTestRepo(t, filepath.Join(t.TempDir(), "test.db"))
	defer repo.Close()
	ctx := context.Background()

	none, err := repo.FindSettings(ctx, "period-3")
	require.NoError(t, err)
	assert.Nil(t, none)

	settings := &entities.SectionSettings{
		Section:            "period-3",
		TimelineStart:      1900,
		TimelineEnd:        2030,
		CompellingQuestion: "Was the Cold War inevitable?",
		ShowQuestion:       true,
		FieldModes:         map[string]entities.FieldMode{"source_note": entities.FieldMandatory},
	}
	require.NoError(t, repo.SaveSettings(ctx, settings))

	found, err := repo.FindSettings(ctx, "period-3")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, settings.CompellingQuestion, found.CompellingQuestion)
	assert.Equal(t, entities.FieldMandatory, found.Mode("source_note"))

	// Upsert replaces.
	settings.TimelineEnd = 2040
	require.NoError(t, repo.SaveSettings(ctx, settings))
	found, err = repo.FindSettings(ctx, "period-3")
	require.NoError(t, err)
	assert.Equal(t, 2040, found.TimelineEnd)

	require.NoError(t, repo.LogAction(ctx, "event.approved", "ev-1", map[string]any{"by": "teacher"}))
	require.NoError(t, repo.LogAction(ctx, "event.rejected", "ev-2", nil))

	entries, err := repo.FindAuditLog(ctx, "ev-1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "event.approved", entries[0].Action)
	assert.Equal(t, "teacher", entries[0].Details["by"])
	assert.False(t, entries[0].CreatedAt.IsZero())
}

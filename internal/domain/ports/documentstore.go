// Package ports defines interfaces for external service communication.
package ports

import (
	"context"

	"github.com/nvall/chronoline/internal/domain/entities"
)

// DocumentStore defines the persistence interface for timeline documents:
// events, connections, periods and per-section settings, plus the audit log
// written by the moderation workflow. Find methods return nil (not an
// error) when a record does not exist.
type DocumentStore interface {
	// EnsureSchema prepares the backing store if needed.
	EnsureSchema(ctx context.Context) error

	// Close releases the store connection.
	Close() error

	// Event operations

	// SaveEvent inserts or replaces an event.
	SaveEvent(ctx context.Context, event *entities.Event) error

	// FindEventByID finds an event by id.
	FindEventByID(ctx context.Context, id string) (*entities.Event, error)

	// ListEvents lists a section's events with the given status, ordered by
	// date added. An empty section lists all sections.
	ListEvents(ctx context.Context, section string, status entities.Status) ([]entities.Event, error)

	// DeleteEvent deletes an event by id.
	DeleteEvent(ctx context.Context, id string) error

	// Connection operations

	// SaveConnection inserts or replaces a connection.
	SaveConnection(ctx context.Context, conn *entities.Connection) error

	// FindConnectionByID finds a connection by id.
	FindConnectionByID(ctx context.Context, id string) (*entities.Connection, error)

	// ListConnections lists a section's connections with the given status.
	// An empty section lists all sections.
	ListConnections(ctx context.Context, section string, status entities.Status) ([]entities.Connection, error)

	// ListConnectionsByEvent lists approved connections touching an event.
	ListConnectionsByEvent(ctx context.Context, eventID string) ([]entities.Connection, error)

	// DeleteConnection deletes a connection by id.
	DeleteConnection(ctx context.Context, id string) error

	// Period operations

	// SavePeriod inserts or replaces a period.
	SavePeriod(ctx context.Context, period *entities.Period) error

	// ListPeriods lists a section's periods ordered by era start.
	ListPeriods(ctx context.Context, section string) ([]entities.Period, error)

	// ListDefaultPeriods lists the template periods that seed new sections.
	ListDefaultPeriods(ctx context.Context) ([]entities.Period, error)

	// DeletePeriod deletes a period by id.
	DeletePeriod(ctx context.Context, id string) error

	// Settings operations

	// SaveSettings inserts or replaces a section's settings.
	SaveSettings(ctx context.Context, settings *entities.SectionSettings) error

	// FindSettings finds a section's settings.
	FindSettings(ctx context.Context, section string) (*entities.SectionSettings, error)

	// Audit log

	// LogAction logs an action to the audit log.
	LogAction(ctx context.Context, action string, recordID string, details map[string]any) error

	// FindAuditLog finds audit log entries for a specific record.
	FindAuditLog(ctx context.Context, recordID string) ([]entities.AuditEntry, error)
}

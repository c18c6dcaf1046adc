// Package sqlite provides a local SQLite implementation of the
// DocumentStore interface, for classrooms running without a hosted store.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/nvall/chronoline/internal/domain/entities"
	"github.com/nvall/chronoline/internal/infrastructure/config"
)

// Repository implements ports.DocumentStore using SQLite.
type Repository struct {
	db   *sql.DB
	path string
}

// NewRepository creates a new SQLite repository.
func NewRepository(cfg config.SQLiteConfig) (*Repository, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite path is required")
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// Enable foreign keys for referential integrity
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	// Enable WAL mode for better concurrent read/write performance
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Set busy timeout to avoid "database is locked" errors
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	return &Repository{db: db, path: cfg.Path}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Path returns the database file path.
func (r *Repository) Path() string {
	return r.path
}

// EnsureSchema creates the database schema if it doesn't exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	schema := `
	-- Events (point and range occurrences, including edit proposals)
	CREATE TABLE IF NOT EXISTS events (
		id TEXT PRIMARY KEY,
		section TEXT NOT NULL,
		data TEXT NOT NULL,
		status TEXT NOT NULL,
		edit_of TEXT,
		date_added TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_events_section ON events(section, status);
	CREATE INDEX IF NOT EXISTS idx_events_edit_of ON events(edit_of);

	-- Connections (directed cause -> effect links between events)
	CREATE TABLE IF NOT EXISTS connections (
		id TEXT PRIMARY KEY,
		section TEXT NOT NULL,
		cause_event_id TEXT NOT NULL,
		effect_event_id TEXT NOT NULL,
		data TEXT NOT NULL,
		status TEXT NOT NULL,
		date_added TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_connections_section ON connections(section, status);
	CREATE INDEX IF NOT EXISTS idx_connections_cause ON connections(cause_event_id);
	CREATE INDEX IF NOT EXISTS idx_connections_effect ON connections(effect_event_id);

	-- Periods (era bands; section '' holds the default template)
	CREATE TABLE IF NOT EXISTS periods (
		id TEXT PRIMARY KEY,
		section TEXT NOT NULL,
		start_year INTEGER NOT NULL,
		data TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_periods_section ON periods(section, start_year);

	-- Per-section teacher settings
	CREATE TABLE IF NOT EXISTS settings (
		section TEXT PRIMARY KEY,
		data TEXT NOT NULL
	);

	-- Audit log (tracks moderation and configuration actions)
	CREATE TABLE IF NOT EXISTS audit_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		action TEXT NOT NULL,
		record_id TEXT,
		details TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_audit_log_record ON audit_log(record_id);
	CREATE INDEX IF NOT EXISTS idx_audit_log_action ON audit_log(action);
	`

	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// SaveEvent inserts or replaces an event.
func (r *Repository) SaveEvent(ctx context.Context, event *entities.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshaling event: %w", err)
	}

	var editOf sql.NullString
	if event.EditOf != "" {
		editOf = sql.NullString{String: event.EditOf, Valid: true}
	}

	query := `
		INSERT INTO events (id, section, data, status, edit_of, date_added)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			section = excluded.section,
			data = excluded.data,
			status = excluded.status,
			edit_of = excluded.edit_of
	`
	_, err = r.db.ExecContext(ctx, query,
		event.ID,
		event.Section,
		string(data),
		string(event.Status),
		editOf,
		event.DateAdded,
	)
	if err != nil {
		return fmt.Errorf("saving event: %w", err)
	}
	return nil
}

// FindEventByID finds an event by id. Returns nil when absent.
func (r *Repository) FindEventByID(ctx context.Context, id string) (*entities.Event, error) {
	row := r.db.QueryRowContext(ctx, `SELECT data FROM events WHERE id = ?`, id)

	var data string
	err := row.Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning event: %w", err)
	}
	return unmarshalEvent(data)
}

// ListEvents lists a section's events with the given status, ordered by
// date added. An empty section lists all sections.
func (r *Repository) ListEvents(ctx context.Context, section string, status entities.Status) ([]entities.Event, error) {
	query := `SELECT data FROM events WHERE status = ?`
	args := []any{string(status)}
	if section != "" {
		query += ` AND section = ?`
		args = append(args, section)
	}
	query += ` ORDER BY date_added ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer rows.Close()

	events := make([]entities.Event, 0, 16)
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		ev, err := unmarshalEvent(data)
		if err != nil {
			return nil, err
		}
		events = append(events, *ev)
	}
	return events, rows.Err()
}

// DeleteEvent deletes an event by id.
func (r *Repository) DeleteEvent(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}
	return nil
}

// SaveConnection inserts or replaces a connection.
func (r *Repository) SaveConnection(ctx context.Context, conn *entities.Connection) error {
	data, err := json.Marshal(conn)
	if err != nil {
		return fmt.Errorf("marshaling connection: %w", err)
	}

	query := `
		INSERT INTO connections (id, section, cause_event_id, effect_event_id, data, status, date_added)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			section = excluded.section,
			cause_event_id = excluded.cause_event_id,
			effect_event_id = excluded.effect_event_id,
			data = excluded.data,
			status = excluded.status
	`
	_, err = r.db.ExecContext(ctx, query,
		conn.ID,
		conn.Section,
		conn.CauseEventID,
		conn.EffectEventID,
		string(data),
		string(conn.Status),
		conn.DateAdded,
	)
	if err != nil {
		return fmt.Errorf("saving connection: %w", err)
	}
	return nil
}

// FindConnectionByID finds a connection by id. Returns nil when absent.
func (r *Repository) FindConnectionByID(ctx context.Context, id string) (*entities.Connection, error) {
	row := r.db.QueryRowContext(ctx, `SELECT data FROM connections WHERE id = ?`, id)

	var data string
	err := row.Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning connection: %w", err)
	}
	return unmarshalConnection(data)
}

// ListConnections lists a section's connections with the given status. An
// empty section lists all sections.
func (r *Repository) ListConnections(ctx context.Context, section string, status entities.Status) ([]entities.Connection, error) {
	query := `SELECT data FROM connections WHERE status = ?`
	args := []any{string(status)}
	if section != "" {
		query += ` AND section = ?`
		args = append(args, section)
	}
	query += ` ORDER BY date_added ASC`

	return r.queryConnections(ctx, query, args...)
}

// ListConnectionsByEvent lists approved connections touching an event.
func (r *Repository) ListConnectionsByEvent(ctx context.Context, eventID string) ([]entities.Connection, error) {
	query := `
		SELECT data FROM connections
		WHERE status = ? AND (cause_event_id = ? OR effect_event_id = ?)
		ORDER BY date_added ASC
	`
	return r.queryConnections(ctx, query, string(entities.StatusApproved), eventID, eventID)
}

// DeleteConnection deletes a connection by id.
func (r *Repository) DeleteConnection(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM connections WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting connection: %w", err)
	}
	return nil
}

// queryConnections is a helper to execute connection queries.
func (r *Repository) queryConnections(ctx context.Context, query string, args ...any) ([]entities.Connection, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying connections: %w", err)
	}
	defer rows.Close()

	conns := make([]entities.Connection, 0, 16)
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scanning connection: %w", err)
		}
		conn, err := unmarshalConnection(data)
		if err != nil {
			return nil, err
		}
		conns = append(conns, *conn)
	}
	return conns, rows.Err()
}

// SavePeriod inserts or replaces a period.
func (r *Repository) SavePeriod(ctx context.Context, period *entities.Period) error {
	data, err := json.Marshal(period)
	if err != nil {
		return fmt.Errorf("marshaling period: %w", err)
	}

	query := `
		INSERT INTO periods (id, section, start_year, data)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			section = excluded.section,
			start_year = excluded.start_year,
			data = excluded.data
	`
	_, err = r.db.ExecContext(ctx, query, period.ID, period.Section, period.StartYear, string(data))
	if err != nil {
		return fmt.Errorf("saving period: %w", err)
	}
	return nil
}

// ListPeriods lists a section's periods ordered by era start.
func (r *Repository) ListPeriods(ctx context.Context, section string) ([]entities.Period, error) {
	return r.queryPeriods(ctx, section)
}

// ListDefaultPeriods lists the template periods that seed new sections.
// Templates are stored under the empty section.
func (r *Repository) ListDefaultPeriods(ctx context.Context) ([]entities.Period, error) {
	return r.queryPeriods(ctx, "")
}

func (r *Repository) queryPeriods(ctx context.Context, section string) ([]entities.Period, error) {
	query := `SELECT data FROM periods WHERE section = ? ORDER BY start_year ASC`
	rows, err := r.db.QueryContext(ctx, query, section)
	if err != nil {
		return nil, fmt.Errorf("querying periods: %w", err)
	}
	defer rows.Close()

	periods := make([]entities.Period, 0, 8)
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scanning period: %w", err)
		}
		var p entities.Period
		if err := json.Unmarshal([]byte(data), &p); err != nil {
			return nil, fmt.Errorf("unmarshaling period: %w", err)
		}
		periods = append(periods, p)
	}
	return periods, rows.Err()
}

// DeletePeriod deletes a period by id.
func (r *Repository) DeletePeriod(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM periods WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting period: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("period not found: %s", id)
	}
	return nil
}

// SaveSettings inserts or replaces a section's settings.
func (r *Repository) SaveSettings(ctx context.Context, settings *entities.SectionSettings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshaling settings: %w", err)
	}

	query := `
		INSERT INTO settings (section, data)
		VALUES (?, ?)
		ON CONFLICT(section) DO UPDATE SET data = excluded.data
	`
	if _, err := r.db.ExecContext(ctx, query, settings.Section, string(data)); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	return nil
}

// FindSettings finds a section's settings. Returns nil when absent.
func (r *Repository) FindSettings(ctx context.Context, section string) (*entities.SectionSettings, error) {
	row := r.db.QueryRowContext(ctx, `SELECT data FROM settings WHERE section = ?`, section)

	var data string
	err := row.Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning settings: %w", err)
	}

	var s entities.SectionSettings
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		return nil, fmt.Errorf("unmarshaling settings: %w", err)
	}
	return &s, nil
}

// LogAction logs an action to the audit log.
func (r *Repository) LogAction(ctx context.Context, action string, recordID string, details map[string]any) error {
	var detailsJSON sql.NullString
	if details != nil {
		data, err := json.Marshal(details)
		if err != nil {
			return fmt.Errorf("marshaling details: %w", err)
		}
		detailsJSON = sql.NullString{String: string(data), Valid: true}
	}

	var recordPtr sql.NullString
	if recordID != "" {
		recordPtr = sql.NullString{String: recordID, Valid: true}
	}

	query := `INSERT INTO audit_log (action, record_id, details) VALUES (?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, action, recordPtr, detailsJSON); err != nil {
		return fmt.Errorf("logging action: %w", err)
	}
	return nil
}

// FindAuditLog finds audit log entries for a specific record.
func (r *Repository) FindAuditLog(ctx context.Context, recordID string) ([]entities.AuditEntry, error) {
	query := `
		SELECT id, action, record_id, details, created_at
		FROM audit_log
		WHERE record_id = ?
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, recordID)
	if err != nil {
		return nil, fmt.Errorf("querying audit log: %w", err)
	}
	defer rows.Close()

	var entries []entities.AuditEntry
	for rows.Next() {
		var entry entities.AuditEntry
		var record, details sql.NullString

		if err := rows.Scan(
			&entry.ID,
			&entry.Action,
			&record,
			&details,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning audit entry: %w", err)
		}
		entry.RecordID = record.String

		if details.Valid && details.String != "" {
			if err := json.Unmarshal([]byte(details.String), &entry.Details); err != nil {
				return nil, fmt.Errorf("unmarshaling details: %w", err)
			}
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func unmarshalEvent(data string) (*entities.Event, error) {
	var ev entities.Event
	if err := json.Unmarshal([]byte(data), &ev); err != nil {
		return nil, fmt.Errorf("unmarshaling event: %w", err)
	}
	return &ev, nil
}

func unmarshalConnection(data string) (*entities.Connection, error) {
	var conn entities.Connection
	if err := json.Unmarshal([]byte(data), &conn); err != nil {
		return nil, fmt.Errorf("unmarshaling connection: %w", err)
	}
	return &conn, nil
}

// Package surreal provides a hosted SurrealDB implementation of the
// DocumentStore interface. This is the realtime backend: every classroom
// client talks to the same database over a websocket, and the change feed
// lets viewers follow moderation as it happens.
package surreal

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	surrealdb "github.com/surrealdb/surrealdb.go"

	"github.com/nvall/chronoline/internal/domain/entities"
	"github.com/nvall/chronoline/internal/domain/ports"
	"github.com/nvall/chronoline/internal/infrastructure/config"
)

// Table names in the hosted database.
const (
	TableEvents      = "events"
	TableConnections = "connections"
	TablePeriods     = "periods"
	TableDefaults    = "default_periods"
	TableSettings    = "settings"
	TableAudit       = "audit_log"
)

// pollInterval drives the change feed. The pinned client speaks the live
// RPC but exposes no notification channel, so Watch polls instead.
const pollInterval = 2 * time.Second

// Repository implements ports.DocumentStore and ports.ChangeFeed against a
// SurrealDB instance.
type Repository struct {
	db  *surrealdb.DB
	log zerolog.Logger
}

// NewRepository connects, authenticates and selects the configured
// namespace and database.
func NewRepository(cfg config.SurrealConfig, log zerolog.Logger) (*Repository, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("surreal url is required")
	}

	db, err := surrealdb.New(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connecting to surrealdb: %w", err)
	}

	if cfg.User != "" {
		if _, err := db.Signin(map[string]any{"user": cfg.User, "pass": cfg.Pass}); err != nil {
			db.Close()
			return nil, fmt.Errorf("signing in: %w", err)
		}
	}
	if _, err := db.Use(cfg.Namespace, cfg.Database); err != nil {
		db.Close()
		return nil, fmt.Errorf("selecting namespace: %w", err)
	}

	log.Debug().Str("url", cfg.URL).Str("ns", cfg.Namespace).Msg("connected to surrealdb")
	return &Repository{db: db, log: log}, nil
}

// Close closes the websocket connection.
func (r *Repository) Close() error {
	r.db.Close()
	return nil
}

// EnsureSchema is a no-op: SurrealDB tables are schemaless and spring into
// existence on first write.
func (r *Repository) EnsureSchema(_ context.Context) error {
	return nil
}

// SaveEvent inserts or replaces an event.
func (r *Repository) SaveEvent(_ context.Context, event *entities.Event) error {
	return r.upsert(TableEvents, event.ID, event)
}

// FindEventByID finds an event by id. Returns nil when absent.
func (r *Repository) FindEventByID(_ context.Context, id string) (*entities.Event, error) {
	return findOne[entities.Event](r, TableEvents, id)
}

// ListEvents lists a section's events with the given status.
func (r *Repository) ListEvents(_ context.Context, section string, status entities.Status) ([]entities.Event, error) {
	query := "SELECT * FROM type::table($tb) WHERE status = $status"
	vars := map[string]any{"tb": TableEvents, "status": string(status)}
	if section != "" {
		query += " AND section = $section"
		vars["section"] = section
	}
	query += " ORDER BY date_added ASC"

	return listQuery[entities.Event](r, query, vars)
}

// DeleteEvent deletes an event by id.
func (r *Repository) DeleteEvent(_ context.Context, id string) error {
	return r.remove(TableEvents, id)
}

// SaveConnection inserts or replaces a connection.
func (r *Repository) SaveConnection(_ context.Context, conn *entities.Connection) error {
	return r.upsert(TableConnections, conn.ID, conn)
}

// FindConnectionByID finds a connection by id. Returns nil when absent.
func (r *Repository) FindConnectionByID(_ context.Context, id string) (*entities.Connection, error) {
	return findOne[entities.Connection](r, TableConnections, id)
}

// ListConnections lists a section's connections with the given status.
func (r *Repository) ListConnections(_ context.Context, section string, status entities.Status) ([]entities.Connection, error) {
	query := "SELECT * FROM type::table($tb) WHERE status = $status"
	vars := map[string]any{"tb": TableConnections, "status": string(status)}
	if section != "" {
		query += " AND section = $section"
		vars["section"] = section
	}
	query += " ORDER BY date_added ASC"
	return listQuery[entities.Connection](r, query, vars)
}

// ListConnectionsByEvent lists approved connections touching an event.
func (r *Repository) ListConnectionsByEvent(_ context.Context, eventID string) ([]entities.Connection, error) {
	query := "SELECT * FROM type::table($tb) WHERE status = $status" +
		" AND (cause_event_id = $id OR effect_event_id = $id) ORDER BY date_added ASC"
	vars := map[string]any{
		"tb":     TableConnections,
		"status": string(entities.StatusApproved),
		"id":     eventID,
	}
	return listQuery[entities.Connection](r, query, vars)
}

// DeleteConnection deletes a connection by id.
func (r *Repository) DeleteConnection(_ context.Context, id string) error {
	return r.remove(TableConnections, id)
}

// SavePeriod inserts or replaces a period.
func (r *Repository) SavePeriod(_ context.Context, period *entities.Period) error {
	return r.upsert(TablePeriods, period.ID, period)
}

// ListPeriods lists a section's periods ordered by era start.
func (r *Repository) ListPeriods(_ context.Context, section string) ([]entities.Period, error) {
	query := "SELECT * FROM type::table($tb) WHERE section = $section ORDER BY start_year ASC"
	return listQuery[entities.Period](r, query, map[string]any{"tb": TablePeriods, "section": section})
}

// ListDefaultPeriods lists the template periods that seed new sections.
func (r *Repository) ListDefaultPeriods(_ context.Context) ([]entities.Period, error) {
	query := "SELECT * FROM type::table($tb) ORDER BY start_year ASC"
	return listQuery[entities.Period](r, query, map[string]any{"tb": TableDefaults})
}

// DeletePeriod deletes a period by id.
func (r *Repository) DeletePeriod(_ context.Context, id string) error {
	return r.remove(TablePeriods, id)
}

// SaveSettings inserts or replaces a section's settings, keyed by section.
func (r *Repository) SaveSettings(_ context.Context, settings *entities.SectionSettings) error {
	return r.upsert(TableSettings, settings.Section, settings)
}

// FindSettings finds a section's settings. Returns nil when absent.
func (r *Repository) FindSettings(_ context.Context, section string) (*entities.SectionSettings, error) {
	return findOne[entities.SectionSettings](r, TableSettings, section)
}

// LogAction logs an action to the audit log.
func (r *Repository) LogAction(_ context.Context, action string, recordID string, details map[string]any) error {
	entry := map[string]any{
		"action":     action,
		"record_id":  recordID,
		"details":    details,
		"created_at": time.Now().UTC().Format(time.RFC3339),
	}
	if _, err := r.db.Create(TableAudit, entry); err != nil {
		return fmt.Errorf("logging action: %w", err)
	}
	return nil
}

// auditRecord mirrors AuditEntry minus the numeric id, which the hosted
// store replaces with its own record id.
type auditRecord struct {
	Action    string         `json:"action"`
	RecordID  string         `json:"record_id,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// FindAuditLog finds audit log entries for a specific record.
func (r *Repository) FindAuditLog(_ context.Context, recordID string) ([]entities.AuditEntry, error) {
	query := "SELECT * FROM type::table($tb) WHERE record_id = $id ORDER BY created_at DESC"
	records, err := listQuery[auditRecord](r, query, map[string]any{"tb": TableAudit, "id": recordID})
	if err != nil {
		return nil, err
	}

	entries := make([]entities.AuditEntry, len(records))
	for i, rec := range records {
		entries[i] = entities.AuditEntry{
			ID:        int64(i + 1),
			Action:    rec.Action,
			RecordID:  rec.RecordID,
			Details:   rec.Details,
			CreatedAt: rec.CreatedAt,
		}
	}
	return entries, nil
}

// Watch polls a table and emits one Change per created, updated or deleted
// record until the context is canceled.
func (r *Repository) Watch(ctx context.Context, table string) (<-chan ports.Change, error) {
	known, err := r.snapshot(table)
	if err != nil {
		return nil, fmt.Errorf("taking initial snapshot: %w", err)
	}

	out := make(chan ports.Change)
	go func() {
		defer close(out)
		ticker := time.NewTicker(pollInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			current, err := r.snapshot(table)
			if err != nil {
				r.log.Warn().Err(err).Str("table", table).Msg("change feed poll failed")
				continue
			}

			for id, body := range current {
				prev, ok := known[id]
				switch {
				case !ok:
					emit(ctx, out, ports.Change{Table: table, Action: "create", RecordID: id})
				case prev != body:
					emit(ctx, out, ports.Change{Table: table, Action: "update", RecordID: id})
				}
			}
			for id := range known {
				if _, ok := current[id]; !ok {
					emit(ctx, out, ports.Change{Table: table, Action: "delete", RecordID: id})
				}
			}
			known = current
		}
	}()
	return out, nil
}

func emit(ctx context.Context, out chan<- ports.Change, c ports.Change) {
	select {
	case out <- c:
	case <-ctx.Done():
	}
}

// snapshot reads every record in a table keyed by id, with the serialized
// body used for update detection.
func (r *Repository) snapshot(table string) (map[string]string, error) {
	raw, err := r.db.Select(table)
	if err != nil {
		return nil, err
	}
	var records []map[string]any
	if err := surrealdb.Unmarshal(raw, &records); err != nil {
		return nil, err
	}

	snap := make(map[string]string, len(records))
	for _, rec := range records {
		id, _ := rec["id"].(string)
		if id == "" {
			continue
		}
		body, err := json.Marshal(rec)
		if err != nil {
			return nil, err
		}
		snap[trimTable(id)] = string(body)
	}
	return snap, nil
}

// upsert writes a record under an explicit id.
func (r *Repository) upsert(table, id string, v any) error {
	content, err := toMap(v)
	if err != nil {
		return err
	}
	query := "UPDATE type::thing($tb, $id) CONTENT $content"
	vars := map[string]any{"tb": table, "id": id, "content": content}
	if _, err := r.db.Query(query, vars); err != nil {
		return fmt.Errorf("upserting %s record: %w", table, err)
	}
	return nil
}

func (r *Repository) remove(table, id string) error {
	query := "DELETE type::thing($tb, $id)"
	if _, err := r.db.Query(query, map[string]any{"tb": table, "id": id}); err != nil {
		return fmt.Errorf("deleting %s record: %w", table, err)
	}
	return nil
}

// findOne reads one record by id, returning nil when it does not exist.
func findOne[T any](r *Repository, table, id string) (*T, error) {
	query := "SELECT * FROM type::thing($tb, $id)"
	results, err := listQuery[T](r, query, map[string]any{"tb": table, "id": id})
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return &results[0], nil
}

// listQuery runs a SurrealQL query and decodes the first statement's rows.
func listQuery[T any](r *Repository, query string, vars map[string]any) ([]T, error) {
	raw, err := r.db.Query(query, vars)
	if err != nil {
		return nil, fmt.Errorf("querying surrealdb: %w", err)
	}

	var stmts []surrealdb.RawQuery[[]map[string]any]
	if _, err := surrealdb.UnmarshalRaw(raw, &stmts); err != nil {
		return nil, fmt.Errorf("decoding surrealdb response: %w", err)
	}

	var out []T
	for _, stmt := range stmts {
		for _, rec := range stmt.Result {
			// Record ids come back as "table:id"; callers only know the
			// bare id.
			if id, ok := rec["id"].(string); ok {
				rec["id"] = trimTable(id)
			}
			body, err := json.Marshal(rec)
			if err != nil {
				return nil, fmt.Errorf("re-encoding record: %w", err)
			}
			var item T
			if err := json.Unmarshal(body, &item); err != nil {
				return nil, fmt.Errorf("decoding record: %w", err)
			}
			out = append(out, item)
		}
	}
	return out, nil
}

func toMap(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshaling record: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("remarshaling record: %w", err)
	}
	delete(m, "id")
	return m, nil
}

func trimTable(thing string) string {
	if i := strings.IndexByte(thing, ':'); i >= 0 {
		return strings.Trim(thing[i+1:], "⟨⟩")
	}
	return thing
}

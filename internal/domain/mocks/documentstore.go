// Package mocks provides in-memory implementations of the domain ports for
// tests.
package mocks

import (
	"context"
	"sort"
	"time"

	"github.com/nvall/chronoline/internal/domain/entities"
)

// DocumentStore is a mock implementation of ports.DocumentStore backed by
// maps. Set Err to force every method to fail.
type DocumentStore struct {
	Events      map[string]*entities.Event
	Connections map[string]*entities.Connection
	Periods     map[string]*entities.Period
	Settings    map[string]*entities.SectionSettings
	Defaults    []entities.Period
	Audit       []entities.AuditEntry
	Err         error
}

// NewDocumentStore creates an empty mock store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		Events:      make(map[string]*entities.Event),
		Connections: make(map[string]*entities.Connection),
		Periods:     make(map[string]*entities.Period),
		Settings:    make(map[string]*entities.SectionSettings),
	}
}

// EnsureSchema prepares the backing store if needed.
func (m *DocumentStore) EnsureSchema(_ context.Context) error {
	return m.Err
}

// Close releases the store connection.
func (m *DocumentStore) Close() error {
	return nil
}

// SaveEvent inserts or replaces an event.
func (m *DocumentStore) SaveEvent(_ context.Context, event *entities.Event) error {
	if m.Err != nil {
		return m.Err
	}
	cp := *event
	m.Events[event.ID] = &cp
	return nil
}

// FindEventByID finds an event by id.
func (m *DocumentStore) FindEventByID(_ context.Context, id string) (*entities.Event, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	ev, ok := m.Events[id]
	if !ok {
		return nil, nil
	}
	cp := *ev
	return &cp, nil
}

// ListEvents lists a section's events with the given status.
func (m *DocumentStore) ListEvents(_ context.Context, section string, status entities.Status) ([]entities.Event, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var result []entities.Event
	for _, ev := range m.Events {
		if ev.Status != status {
			continue
		}
		if section != "" && ev.Section != section {
			continue
		}
		result = append(result, *ev)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].DateAdded.Before(result[j].DateAdded)
	})
	return result, nil
}

// DeleteEvent deletes an event by id.
func (m *DocumentStore) DeleteEvent(_ context.Context, id string) error {
	if m.Err != nil {
		return m.Err
	}
	delete(m.Events, id)
	return nil
}

// SaveConnection inserts or replaces a connection.
func (m *DocumentStore) SaveConnection(_ context.Context, conn *entities.Connection) error {
	if m.Err != nil {
		return m.Err
	}
	cp := *conn
	m.Connections[conn.ID] = &cp
	return nil
}

// FindConnectionByID finds a connection by id.
func (m *DocumentStore) FindConnectionByID(_ context.Context, id string) (*entities.Connection, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	conn, ok := m.Connections[id]
	if !ok {
		return nil, nil
	}
	cp := *conn
	return &cp, nil
}

// ListConnections lists a section's connections with the given status.
func (m *DocumentStore) ListConnections(_ context.Context, section string, status entities.Status) ([]entities.Connection, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var result []entities.Connection
	for _, conn := range m.Connections {
		if conn.Status != status {
			continue
		}
		if section != "" && conn.Section != section {
			continue
		}
		result = append(result, *conn)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].DateAdded.Before(result[j].DateAdded)
	})
	return result, nil
}

// ListConnectionsByEvent lists approved connections touching an event.
func (m *DocumentStore) ListConnectionsByEvent(_ context.Context, eventID string) ([]entities.Connection, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var result []entities.Connection
	for _, conn := range m.Connections {
		if conn.Status == entities.StatusApproved && conn.Involves(eventID) {
			result = append(result, *conn)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// DeleteConnection deletes a connection by id.
func (m *DocumentStore) DeleteConnection(_ context.Context, id string) error {
	if m.Err != nil {
		return m.Err
	}
	delete(m.Connections, id)
	return nil
}

// SavePeriod inserts or replaces a period.
func (m *DocumentStore) SavePeriod(_ context.Context, period *entities.Period) error {
	if m.Err != nil {
		return m.Err
	}
	cp := *period
	m.Periods[period.ID] = &cp
	return nil
}

// ListPeriods lists a section's periods ordered by era start.
func (m *DocumentStore) ListPeriods(_ context.Context, section string) ([]entities.Period, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var result []entities.Period
	for _, p := range m.Periods {
		if p.Section == section {
			result = append(result, *p)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].StartYear < result[j].StartYear
	})
	return result, nil
}

// ListDefaultPeriods lists the template periods that seed new sections.
func (m *DocumentStore) ListDefaultPeriods(_ context.Context) ([]entities.Period, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return append([]entities.Period(nil), m.Defaults...), nil
}

// DeletePeriod deletes a period by id.
func (m *DocumentStore) DeletePeriod(_ context.Context, id string) error {
	if m.Err != nil {
		return m.Err
	}
	delete(m.Periods, id)
	return nil
}

// SaveSettings inserts or replaces a section's settings.
func (m *DocumentStore) SaveSettings(_ context.Context, settings *entities.SectionSettings) error {
	if m.Err != nil {
		return m.Err
	}
	cp := *settings
	m.Settings[settings.Section] = &cp
	return nil
}

// FindSettings finds a section's settings.
func (m *DocumentStore) FindSettings(_ context.Context, section string) (*entities.SectionSettings, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	s, ok := m.Settings[section]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

// LogAction logs an action to the audit log.
func (m *DocumentStore) LogAction(_ context.Context, action string, recordID string, details map[string]any) error {
	if m.Err != nil {
		return m.Err
	}
	m.Audit = append(m.Audit, entities.AuditEntry{
		ID:        int64(len(m.Audit) + 1),
		Action:    action,
		RecordID:  recordID,
		Details:   details,
		CreatedAt: time.Now(),
	})
	return nil
}

// FindAuditLog finds audit log entries for a specific record.
func (m *DocumentStore) FindAuditLog(_ context.Context, recordID string) ([]entities.AuditEntry, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var result []entities.AuditEntry
	for _, e := range m.Audit {
		if e.RecordID == recordID {
			result = append(result, e)
		}
	}
	return result, nil
}

/*
Package sqlite provides a SQLite-backed implementation of the booking
event log.

PURPOSE:
  Persists the append-only audit trail of slot lifecycle changes. The
  scheduling core itself is in-memory and deterministic; this store is a
  harness concern, used by the HTTP server so an operator can inspect what
  happened during a session.

APPEND-ONLY ENFORCEMENT:
  - No UPDATE statements on the events table
  - No DELETE statements on the events table

WAL MODE:
  The database is opened with WAL (Write-Ahead Logging) so readers do not
  block the single writer.

USAGE:
  log, err := sqlite.New(":memory:")
  if err != nil {
      ...
  }
  defer log.Close()

  err = log.Append(ctx, clinic.Event{...})

SEE ALSO:
  - clinic/history.go: EventLog interface definition
  - clinic/store/memory.go: in-memory implementation for tests
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/bpc/clinic-engine/clinic"
)

// Log implements clinic.EventLog using SQLite.
type Log struct {
	db *sql.DB
}

// New creates a SQLite event log at the given path. Use ":memory:" for an
// in-memory database.
func New(dbPath string) (*Log, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	log := &Log{db: db}
	if err := log.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return log, nil
}

// Close closes the database connection.
func (l *Log) Close() error {
	return l.db.Close()
}

func (l *Log) migrate() error {
	schema := `
	-- Booking events (append-only audit trail)
	CREATE TABLE IF NOT EXISTS events (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL,
		event_type TEXT NOT NULL,
		slot_id TEXT NOT NULL,
		client_id TEXT,
		at TEXT NOT NULL,
		details TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_events_slot
		ON events(slot_id);
	CREATE INDEX IF NOT EXISTS idx_events_client
		ON events(client_id) WHERE client_id != '';
	`
	_, err := l.db.Exec(schema)
	return err
}

// Append persists one event. This is the only write operation.
func (l *Log) Append(ctx context.Context, ev clinic.Event) error {
	_, err := l.db.ExecContext(ctx, `
		INSERT INTO events (id, event_type, slot_id, client_id, at, details)
		VALUES (?, ?, ?, ?, ?, ?)`,
		ev.ID, string(ev.Type), string(ev.SlotID), string(ev.ClientID),
		ev.At.String(), ev.Details,
	)
	if err != nil {
		return fmt.Errorf("failed to append event: %w", err)
	}
	return nil
}

// Events returns all events in append order.
func (l *Log) Events(ctx context.Context) ([]clinic.Event, error) {
	return l.query(ctx, `SELECT id, event_type, slot_id, client_id, at, details
		FROM events ORDER BY seq`)
}

// BySlot returns the events touching one slot, in append order.
func (l *Log) BySlot(ctx context.Context, id clinic.SlotID) ([]clinic.Event, error) {
	return l.query(ctx, `SELECT id, event_type, slot_id, client_id, at, details
		FROM events WHERE slot_id = ? ORDER BY seq`, string(id))
}

// ByClient returns the events involving one client, in append order.
func (l *Log) ByClient(ctx context.Context, id clinic.ClientID) ([]clinic.Event, error) {
	return l.query(ctx, `SELECT id, event_type, slot_id, client_id, at, details
		FROM events WHERE client_id = ? ORDER BY seq`, string(id))
}

func (l *Log) query(ctx context.Context, q string, args ...any) ([]clinic.Event, error) {
	rows, err := l.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []clinic.Event
	for rows.Next() {
		var ev clinic.Event
		var evType, slotID, clientID, at string
		if err := rows.Scan(&ev.ID, &evType, &slotID, &clientID, &at, &ev.Details); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		ev.Type = clinic.EventType(evType)
		ev.SlotID = clinic.SlotID(slotID)
		ev.ClientID = clinic.ClientID(clientID)
		tp, err := clinic.ParseTimePoint(at)
		if err != nil {
			return nil, fmt.Errorf("failed to parse event time %q: %w", at, err)
		}
		ev.At = tp
		events = append(events, ev)
	}
	return events, rows.Err()
}

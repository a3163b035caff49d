// Package journal keeps an append-only history of registry actions in
// a local SQLite database.
package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"lpf/internal/tunnel"
)

// EventType classifies a journal entry.
type EventType string

const (
	EventAdd          EventType = "add"
	EventLaunch       EventType = "launch"
	EventLaunchFailed EventType = "launch-failed"
	EventStop         EventType = "stop"
)

// Event is one recorded registry action.
type Event struct {
	Time      time.Time `json:"time"`
	Type      EventType `json:"type"`
	Host      string    `json:"host"`
	LocalPort int       `json:"local_port"`
	PID       int       `json:"pid,omitempty"`     // 0 when no supervisor PID applies
	Details   string    `json:"details,omitempty"` // free text, e.g. the launch command or an error
}

// ForRecord builds an event for a tunnel record.
func ForRecord(t EventType, rec tunnel.Record, pid int, details string) Event {
	return Event{
		Type:      t,
		Host:      rec.Host,
		LocalPort: rec.LocalPort,
		PID:       pid,
		Details:   details,
	}
}

const schema = `
CREATE TABLE IF NOT EXISTS events (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	ts TEXT NOT NULL,
	type TEXT NOT NULL,
	host TEXT NOT NULL,
	local_port INTEGER NOT NULL,
	pid INTEGER NOT NULL DEFAULT 0,
	details TEXT NOT NULL DEFAULT ''
);
`

// Journal is an append-only event log.
type Journal struct {
	db *sql.DB
}

// Open creates or opens the journal database at path.
func Open(ctx context.Context, path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create journal dir: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if err := os.Chmod(path, 0o600); err != nil && !errors.Is(err, os.ErrNotExist) {
		db.Close()
		return nil, fmt.Errorf("chmod journal: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create events table: %w", err)
	}
	return &Journal{db: db}, nil
}

// Close releases the database handle.
func (j *Journal) Close() error {
	if j == nil || j.db == nil {
		return nil
	}
	return j.db.Close()
}

// Record appends an event. A zero Time is filled with the current time.
func (j *Journal) Record(ctx context.Context, ev Event) error {
	if ev.Time.IsZero() {
		ev.Time = time.Now().UTC()
	}
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO events(ts, type, host, local_port, pid, details) VALUES (?, ?, ?, ?, ?, ?)`,
		ev.Time.UTC().Format(time.RFC3339Nano), string(ev.Type), ev.Host, ev.LocalPort, ev.PID, ev.Details)
	if err != nil {
		return fmt.Errorf("record event: %w", err)
	}
	return nil
}

// Events returns entries in insertion order. A localPort of 0 returns
// the full history.
func (j *Journal) Events(ctx context.Context, localPort int) ([]Event, error) {
	query := `SELECT ts, type, host, local_port, pid, details FROM events ORDER BY id`
	var args []any
	if localPort != 0 {
		query = `SELECT ts, type, host, local_port, pid, details FROM events WHERE local_port = ? ORDER BY id`
		args = append(args, localPort)
	}

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var (
			ev  Event
			ts  string
			typ string
		)
		if err := rows.Scan(&ts, &typ, &ev.Host, &ev.LocalPort, &ev.PID, &ev.Details); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		if parsed, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			ev.Time = parsed
		}
		ev.Type = EventType(typ)
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read events: %w", err)
	}
	return events, nil
}

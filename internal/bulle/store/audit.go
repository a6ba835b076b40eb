package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// TurnEntry is one recorded assistant turn.
type TurnEntry struct {
	ID           int64
	Timestamp    time.Time
	TraceID      string
	SiteName     string
	SectionID    sql.NullString
	Message      string
	Source       string
	Result       string
	ErrorMessage sql.NullString
}

// Turn sources.
const (
	SourceLocal  = "local"
	SourceRemote = "remote"
)

// WriteTurn records one assistant turn in the turn log.
func (d *DB) WriteTurn(ctx context.Context, traceID, siteName, sectionID, message, source, result, errorMsg string) error {
	var sectionNull sql.NullString
	if sectionID != "" {
		sectionNull = sql.NullString{String: sectionID, Valid: true}
	}
	var errorNull sql.NullString
	if errorMsg != "" {
		errorNull = sql.NullString{String: errorMsg, Valid: true}
	}

	_, err := d.db.ExecContext(ctx, `
		INSERT INTO turn_log (ts, trace_id, site_name, section_id, message, source, result, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, time.Now(), traceID, siteName, sectionNull, message, source, result, errorNull)
	if err != nil {
		return fmt.Errorf("store: write turn log: %w", err)
	}
	return nil
}

// RecentTurns returns the latest turn log entries, newest first.
func (d *DB) RecentTurns(ctx context.Context, limit int) ([]*TurnEntry, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := d.db.QueryContext(ctx, `
		SELECT id, ts, trace_id, site_name, section_id, message, source, result, error_message
		FROM turn_log
		ORDER BY ts DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("store: query turn log: %w", err)
	}
	defer rows.Close()

	var entries []*TurnEntry
	for rows.Next() {
		entry := &TurnEntry{}
		if err := rows.Scan(
			&entry.ID, &entry.Timestamp, &entry.TraceID, &entry.SiteName,
			&entry.SectionID, &entry.Message, &entry.Source, &entry.Result,
			&entry.ErrorMessage,
		); err != nil {
			return nil, fmt.Errorf("store: scan turn log entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: iterate turn log: %w", err)
	}
	return entries, nil
}

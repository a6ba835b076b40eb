package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrSettingNotFound is returned by Settings.Get for an unset key.
var ErrSettingNotFound = errors.New("store: setting not found")

// Well-known setting keys.
const (
	SettingAssistantBaseURL = "assistant.base_url"
	SettingAssistantModel   = "assistant.model"
	SettingAssistantRate    = "assistant.rate_per_min"
)

// Settings is the read/write interface for operator-tunable knobs. It holds
// non-secret values only; API keys stay in the environment.
type Settings interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string]string, error)
}

type sqliteSettings struct {
	db *DB
}

// NewSettings returns a Settings store backed by the application database.
func NewSettings(db *DB) Settings {
	return &sqliteSettings{db: db}
}

func (s *sqliteSettings) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ?`, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrSettingNotFound
	}
	if err != nil {
		return "", fmt.Errorf("store: get setting %q: %w", key, err)
	}
	return value, nil
}

func (s *sqliteSettings) Set(ctx context.Context, key, value string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.db.ExecContext(ctx, `
		INSERT INTO settings (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value      = excluded.value,
			updated_at = excluded.updated_at
	`, key, value, now)
	if err != nil {
		return fmt.Errorf("store: set setting %q: %w", key, err)
	}
	return nil
}

func (s *sqliteSettings) Delete(ctx context.Context, key string) error {
	if _, err := s.db.db.ExecContext(ctx, `DELETE FROM settings WHERE key = ?`, key); err != nil {
		return fmt.Errorf("store: delete setting %q: %w", key, err)
	}
	return nil
}

func (s *sqliteSettings) List(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.db.QueryContext(ctx, `SELECT key, value FROM settings`)
	if err != nil {
		return nil, fmt.Errorf("store: list settings: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("store: scan setting: %w", err)
		}
		out[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: list settings: %w", err)
	}
	return out, nil
}

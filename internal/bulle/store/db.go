package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/Kiwi570/bulle/internal/bulle/site"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// ErrSiteNotFound is returned by LoadSite for an unknown site name.
var ErrSiteNotFound = errors.New("store: site not found")

// DB is the SQLite-backed persistence layer: saved sites, the turn log, and
// the settings table.
type DB struct {
	db *sql.DB
}

// OpenDB opens (or creates) the database at dbPath and applies pending
// migrations. Use ":memory:" for tests.
func OpenDB(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}

	// SQLite is single-writer by design. A single shared connection lets
	// database/sql serialize callers instead of them fighting for write locks.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("store: set pragma: %w", err)
		}
	}

	d := &DB{db: db}
	if err := d.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: run migrations: %w", err)
	}
	return d, nil
}

// Close closes the underlying connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) runMigrations() error {
	_, err := d.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			description TEXT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}

	var currentVersion int
	if err := d.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&currentVersion); err != nil {
		return fmt.Errorf("get current schema version: %w", err)
	}

	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("read migrations directory: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		// "0001_init.sql" -> version 1, description "init".
		parts := strings.SplitN(entry.Name(), "_", 2)
		if len(parts) < 2 {
			continue
		}
		var version int
		if _, err := fmt.Sscanf(parts[0], "%d", &version); err != nil {
			continue
		}
		description := strings.TrimSuffix(parts[1], ".sql")

		if version <= currentVersion {
			continue
		}

		content, err := migrationsFS.ReadFile(filepath.Join("migrations", entry.Name()))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", entry.Name(), err)
		}

		tx, err := d.db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", version, err)
		}
		if _, err := tx.Exec(string(content)); err != nil {
			tx.Rollback()
			return fmt.Errorf("execute migration %d: %w", version, err)
		}
		if _, err := tx.Exec(
			"INSERT INTO schema_migrations (version, applied_at, description) VALUES (?, ?, ?)",
			version, time.Now(), description,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("record migration %d: %w", version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", version, err)
		}

		slog.Info("applied migration", "version", fmt.Sprintf("%04d", version), "description", description)
	}
	return nil
}

// SaveSite upserts a site under its name.
func (d *DB) SaveSite(ctx context.Context, s *site.Site) error {
	if s.Name == "" {
		return fmt.Errorf("store: save site: empty name")
	}
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("store: marshal site %q: %w", s.Name, err)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err = d.db.ExecContext(ctx, `
		INSERT INTO sites (name, data_json, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			data_json  = excluded.data_json,
			updated_at = excluded.updated_at
	`, s.Name, string(data), now)
	if err != nil {
		return fmt.Errorf("store: save site %q: %w", s.Name, err)
	}
	return nil
}

// LoadSite returns the saved site with the given name.
func (d *DB) LoadSite(ctx context.Context, name string) (*site.Site, error) {
	var data string
	err := d.db.QueryRowContext(ctx,
		`SELECT data_json FROM sites WHERE name = ?`, name,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSiteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: load site %q: %w", name, err)
	}
	var s site.Site
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		return nil, fmt.Errorf("store: decode site %q: %w", name, err)
	}
	return &s, nil
}

// ListSites returns the saved site names, most recently updated first.
func (d *DB) ListSites(ctx context.Context) ([]string, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT name FROM sites ORDER BY updated_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("store: list sites: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("store: scan site name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: list sites: %w", err)
	}
	return names, nil
}

// DeleteSite removes a saved site. Unknown names are a no-op.
func (d *DB) DeleteSite(ctx context.Context, name string) error {
	if _, err := d.db.ExecContext(ctx, `DELETE FROM sites WHERE name = ?`, name); err != nil {
		return fmt.Errorf("store: delete site %q: %w", name, err)
	}
	return nil
}

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/samsaffron/vidbrief/internal/insight"
	"github.com/samsaffron/vidbrief/internal/markdown"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// Schema for the generations database.
const schema = `
CREATE TABLE IF NOT EXISTS generations (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    kind TEXT NOT NULL CHECK (kind IN ('report', 'article')),
    title TEXT,
    source TEXT,
    provider TEXT NOT NULL,
    model TEXT NOT NULL,
    markdown TEXT NOT NULL,
    sources TEXT,
    input_tokens INTEGER DEFAULT 0,
    output_tokens INTEGER DEFAULT 0,
    duration_ms INTEGER DEFAULT 0,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_generations_created_at ON generations(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_generations_kind ON generations(kind);
`

// schemaVersion is the current schema version.
// Fresh databases get the full schema from the schema const and start here;
// existing databases run migrations to reach it. Increment when adding
// migrations.
const schemaVersion = 1

// migration represents a schema migration.
type migration struct {
	version     int
	description string
	up          func(db *sql.DB) error
}

// migrations defines schema migrations for upgrading existing databases.
// The base schema const always contains the FULL current schema; migrations
// are only needed for databases created before a schema change.
var migrations = []migration{}

// NewSQLiteStore opens (creating if needed) the generations database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// initSchema initializes the database schema and runs any pending migrations.
// Optimized for the common case: schema already current = single SELECT query.
func initSchema(db *sql.DB) error {
	// Fast path: check if schema is already current
	var currentVersion int
	err := db.QueryRow("SELECT version FROM schema_version").Scan(&currentVersion)
	if err == nil && currentVersion >= schemaVersion {
		return nil
	}

	// Create base schema (uses IF NOT EXISTS, safe to run multiple times)
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("create base schema: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("create schema_version table: %w", err)
	}

	// Fresh databases get the full schema above, so they start at the
	// latest version with no migrations to run.
	err = db.QueryRow("SELECT version FROM schema_version").Scan(&currentVersion)
	if err == sql.ErrNoRows {
		currentVersion = schemaVersion
		if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", currentVersion); err != nil {
			return fmt.Errorf("insert initial version: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("get current version: %w", err)
	}

	for _, m := range migrations {
		if m.version > currentVersion {
			if err := m.up(db); err != nil {
				return fmt.Errorf("migration %d (%s): %w", m.version, m.description, err)
			}
			if _, err := db.Exec("UPDATE schema_version SET version = ?", m.version); err != nil {
				return fmt.Errorf("update version to %d: %w", m.version, err)
			}
		}
	}

	return nil
}

// Save inserts a new generation and fills in its ID.
func (s *SQLiteStore) Save(ctx context.Context, g *Generation) error {
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now()
	}

	sourcesJSON, err := marshalSources(g.Sources)
	if err != nil {
		return fmt.Errorf("serialize sources: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO generations (kind, title, source, provider, model, markdown, sources,
		                         input_tokens, output_tokens, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.Kind, nullString(g.Title), nullString(g.Source), g.Provider, g.Model,
		g.Markdown, sourcesJSON, g.InputTokens, g.OutputTokens, g.DurationMs, g.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert generation: %w", err)
	}

	id, _ := result.LastInsertId()
	g.ID = id
	return nil
}

// Get retrieves a generation by ID. Returns (nil, nil) when it doesn't exist.
func (s *SQLiteStore) Get(ctx context.Context, id int64) (*Generation, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, kind, title, source, provider, model, markdown, sources,
		       input_tokens, output_tokens, duration_ms, created_at
		FROM generations WHERE id = ?`, id)
	return scanGeneration(row)
}

// Latest returns the most recent generation, optionally filtered by kind.
// Returns (nil, nil) when the store is empty.
func (s *SQLiteStore) Latest(ctx context.Context, kind string) (*Generation, error) {
	query := `
		SELECT id, kind, title, source, provider, model, markdown, sources,
		       input_tokens, output_tokens, duration_ms, created_at
		FROM generations`
	args := []any{}
	if kind != "" {
		query += " WHERE kind = ?"
		args = append(args, kind)
	}
	query += " ORDER BY created_at DESC, id DESC LIMIT 1"

	return scanGeneration(s.db.QueryRowContext(ctx, query, args...))
}

// List returns generation summaries matching the options, newest first.
func (s *SQLiteStore) List(ctx context.Context, opts ListOptions) ([]Summary, error) {
	// A 400-byte markdown prefix is plenty for a one-line excerpt.
	query := `
		SELECT id, kind, title, source, provider, model, substr(markdown, 1, 400), created_at
		FROM generations
		WHERE 1=1`
	args := []any{}

	if opts.Kind != "" {
		query += " AND kind = ?"
		args = append(args, opts.Kind)
	}

	query += " ORDER BY created_at DESC, id DESC"

	limit := opts.Limit
	if limit == 0 {
		limit = 50 // Default
	}
	query += fmt.Sprintf(" LIMIT %d", limit)
	if opts.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", opts.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query generations: %w", err)
	}
	defer rows.Close()

	var results []Summary
	for rows.Next() {
		var sum Summary
		var title, source sql.NullString
		var snippet string
		err := rows.Scan(&sum.ID, &sum.Kind, &title, &source,
			&sum.Provider, &sum.Model, &snippet, &sum.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan generation summary: %w", err)
		}
		sum.Title = title.String
		sum.Source = source.String
		sum.Excerpt = markdown.Excerpt(snippet, 96)
		results = append(results, sum)
	}
	return results, rows.Err()
}

// Delete removes a generation.
func (s *SQLiteStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM generations WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete generation: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("generation not found: %d", id)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGeneration(row rowScanner) (*Generation, error) {
	var g Generation
	var title, source, sources sql.NullString
	err := row.Scan(&g.ID, &g.Kind, &title, &source, &g.Provider, &g.Model,
		&g.Markdown, &sources, &g.InputTokens, &g.OutputTokens, &g.DurationMs, &g.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan generation: %w", err)
	}
	g.Title = title.String
	g.Source = source.String
	if sources.Valid && sources.String != "" {
		if err := json.Unmarshal([]byte(sources.String), &g.Sources); err != nil {
			return nil, fmt.Errorf("deserialize sources: %w", err)
		}
	}
	return &g, nil
}

func marshalSources(sources []insight.Source) (sql.NullString, error) {
	if len(sources) == 0 {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(sources)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

// nullString converts an empty string to NULL for database storage.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

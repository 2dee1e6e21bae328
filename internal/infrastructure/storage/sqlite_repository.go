package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"BrandMentionScanner/internal/domain"
	"BrandMentionScanner/internal/ports"
)

// SQLiteRepository archives labeled run results into a local SQLite file.
type SQLiteRepository struct {
	db *sql.DB
}

var _ ports.RunRepository = (*SQLiteRepository)(nil)

const schema = `CREATE TABLE IF NOT EXISTS run_records (
	run_id     TEXT    NOT NULL,
	brand      TEXT    NOT NULL,
	category   TEXT    NOT NULL,
	prompt     TEXT    NOT NULL,
	response   TEXT    NOT NULL,
	mentioned  INTEGER NOT NULL,
	has_wiki   INTEGER NOT NULL,
	wiki_title TEXT,
	created_at TIMESTAMP NOT NULL
)`

// Open creates the archive database at path, applying the schema if needed.
func Open(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// Close releases the underlying database handle.
func (r *SQLiteRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// SaveRun inserts one row per record under the given run identifier.
func (r *SQLiteRepository) SaveRun(ctx context.Context, runID string, records []domain.Record) error {
	if r == nil || r.db == nil || len(records) == 0 {
		return nil
	}

	builder := sq.Insert("run_records").Columns(
		"run_id", "brand", "category", "prompt", "response",
		"mentioned", "has_wiki", "wiki_title", "created_at",
	)

	now := time.Now().UTC()
	for _, rec := range records {
		builder = builder.Values(
			runID,
			rec.Brand,
			rec.Category,
			rec.Prompt,
			rec.Response,
			rec.Mentioned,
			rec.HasWiki,
			rec.WikiTitle,
			now,
		)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert run records: %w", err)
	}

	return nil
}

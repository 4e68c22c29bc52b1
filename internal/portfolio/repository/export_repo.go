package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/portfolio/domain"
)

const DefaultListLimit = 50

const schema = `
	CREATE TABLE IF NOT EXISTS portfolio_exports (
		id          UUID PRIMARY KEY,
		username    TEXT NOT NULL,
		role        TEXT NOT NULL,
		file_name   TEXT NOT NULL,
		theme       TEXT NOT NULL,
		pages       INTEGER NOT NULL,
		bytes       BIGINT NOT NULL,
		warnings    JSONB NOT NULL DEFAULT '[]'::jsonb,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS portfolio_exports_created_at_idx ON portfolio_exports (created_at);
	CREATE INDEX IF NOT EXISTS portfolio_exports_username_idx ON portfolio_exports (username, created_at DESC);
`

// ExportRepository handles PostgreSQL operations for export history
type ExportRepository struct {
	db *sql.DB
}

func NewExportRepository(db *sql.DB) *ExportRepository {
	return &ExportRepository{db: db}
}

// EnsureSchema creates the export table and its indexes when missing.
func (r *ExportRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure export schema: %w", err)
	}
	return nil
}

// Create inserts rec, filling ID and CreatedAt.
func (r *ExportRepository) Create(ctx context.Context, rec *domain.ExportRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}

	warnings := rec.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	warningsJSON, err := json.Marshal(warnings)
	if err != nil {
		return fmt.Errorf("failed to encode export warnings: %w", err)
	}

	query := `
		INSERT INTO portfolio_exports (id, username, role, file_name, theme, pages, bytes, warnings)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`
	err = r.db.QueryRowContext(ctx, query,
		rec.ID,
		rec.Username,
		rec.Role,
		rec.FileName,
		rec.Theme,
		rec.Pages,
		rec.Bytes,
		warningsJSON,
	).Scan(&rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create export record: %w", err)
	}
	return nil
}

// List returns the newest exports first. An empty username lists every
// user's exports.
func (r *ExportRepository) List(ctx context.Context, username string, limit int) ([]domain.ExportRecord, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	query := `
		SELECT id, username, role, file_name, theme, pages, bytes, warnings, created_at
		FROM portfolio_exports
		WHERE ($1 = '' OR username = $1)
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, username, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list exports: %w", err)
	}
	defer rows.Close()

	records := []domain.ExportRecord{}
	for rows.Next() {
		var rec domain.ExportRecord
		var warningsJSON []byte
		if err := rows.Scan(
			&rec.ID,
			&rec.Username,
			&rec.Role,
			&rec.FileName,
			&rec.Theme,
			&rec.Pages,
			&rec.Bytes,
			&warningsJSON,
			&rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan export: %w", err)
		}
		if len(warningsJSON) == 0 || json.Unmarshal(warningsJSON, &rec.Warnings) != nil {
			rec.Warnings = []string{}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate exports: %w", err)
	}
	return records, nil
}

// PurgeOlderThan deletes exports created before cutoff and reports how many
// rows went.
func (r *ExportRepository) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM portfolio_exports WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge exports: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count purged exports: %w", err)
	}
	return n, nil
}

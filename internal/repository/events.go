// Package repository provides persistence implementations for the auth
// activity journal.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/atinyakov/receipts/internal/models"
)

// PostgresEventRepository stores auth events in a PostgreSQL database.
type PostgresEventRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresEventRepository creates a new PostgresEventRepository with the given database connection.
// db must be a valid *sql.DB connected to a PostgreSQL instance.
func NewPostgresEventRepository(db *sql.DB) *PostgresEventRepository {
	return &PostgresEventRepository{DB: db}
}

// InsertEvent appends ev to the journal. Re-inserting an existing ID is a no-op.
func (r *PostgresEventRepository) InsertEvent(ctx context.Context, ev models.AuthEvent) error {
	_, err := r.DB.ExecContext(
		ctx,
		`INSERT INTO auth_events (id, kind, path, detail, created_at) VALUES ($1, $2, $3, $4, $5) ON CONFLICT DO NOTHING`,
		ev.ID, string(ev.Kind), ev.Path, ev.Detail, ev.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert auth event: %w", err)
	}
	return nil
}

// DeleteEventsBefore removes events created before cutoff and returns how
// many rows were deleted.
func (r *PostgresEventRepository) DeleteEventsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM auth_events WHERE created_at < $1`, cutoff.Unix())
	if err != nil {
		return 0, fmt.Errorf("delete auth events: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete auth events: %w", err)
	}
	return removed, nil
}

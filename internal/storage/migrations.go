package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RunMigrations creates all tables used by the studio backend.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	ddl := `
		CREATE TABLE IF NOT EXISTS documents (
			path       TEXT PRIMARY KEY,
			body       JSONB NOT NULL,
			seq        BIGINT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE TABLE IF NOT EXISTS content_log (
			seq        BIGSERIAL PRIMARY KEY,
			path       TEXT NOT NULL,
			body       JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE INDEX IF NOT EXISTS idx_content_log_path
			ON content_log (path, seq);

		CREATE TABLE IF NOT EXISTS appointment_requests (
			id           UUID PRIMARY KEY,
			body         JSONB NOT NULL,
			submitted_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE INDEX IF NOT EXISTS idx_appointments_submitted
			ON appointment_requests (submitted_at DESC);

		CREATE TABLE IF NOT EXISTS sessions (
			token      UUID PRIMARY KEY,
			username   TEXT NOT NULL,
			expires_at TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE TABLE IF NOT EXISTS watch_checkpoints (
			node_id    TEXT PRIMARY KEY,
			last_seq   BIGINT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
	`

	if _, err := pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

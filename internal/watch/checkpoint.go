package watch

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Checkpoint persists the last changelog sequence a watcher node has
// processed.
type Checkpoint interface {
	Load(ctx context.Context, nodeID string) (int64, error)
	Save(ctx context.Context, nodeID string, seq int64) error
}

// PostgresCheckpoint implements Checkpoint using the watch_checkpoints table.
type PostgresCheckpoint struct {
	pool *pgxpool.Pool
}

func NewPostgresCheckpoint(pool *pgxpool.Pool) *PostgresCheckpoint {
	return &PostgresCheckpoint{pool: pool}
}

// Load returns the saved sequence for nodeID, or -1 when the node has no
// checkpoint yet so the watcher can initialize from the current log head
// instead of replaying history.
func (c *PostgresCheckpoint) Load(ctx context.Context, nodeID string) (int64, error) {
	var seq int64
	err := c.pool.QueryRow(ctx,
		`SELECT last_seq FROM watch_checkpoints WHERE node_id = $1`,
		nodeID,
	).Scan(&seq)
	if err != nil {
		return -1, nil
	}
	return seq, nil
}

func (c *PostgresCheckpoint) Save(ctx context.Context, nodeID string, seq int64) error {
	_, err := c.pool.Exec(ctx, `
		INSERT INTO watch_checkpoints (node_id, last_seq, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (node_id)
		DO UPDATE SET last_seq = $2, updated_at = now()
	`, nodeID, seq)
	if err != nil {
		return fmt.Errorf("save checkpoint node %s: %w", nodeID, err)
	}
	return nil
}

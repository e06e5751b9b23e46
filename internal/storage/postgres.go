package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/taehan09/studio/internal/appointment"
)

// PostgresStore implements DocumentStore, AppointmentStore, and SessionStore
// using PostgreSQL.
type PostgresStore struct {
	pool         *pgxpool.Pool
	queryTimeout time.Duration
}

// NewPostgresStore creates a store backed by the given pool. queryTimeout sets
// the per-query context deadline; zero means no timeout.
func NewPostgresStore(pool *pgxpool.Pool, queryTimeout time.Duration) *PostgresStore {
	return &PostgresStore{pool: pool, queryTimeout: queryTimeout}
}

// withTimeout derives a child context with the configured query timeout.
// If queryTimeout is zero, the parent context is returned unchanged.
func (s *PostgresStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.queryTimeout > 0 {
		return context.WithTimeout(ctx, s.queryTimeout)
	}
	return ctx, func() {}
}

// --- DocumentStore ---

func (s *PostgresStore) GetDocument(ctx context.Context, path string) (*Document, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var d Document
	err := s.pool.QueryRow(ctx, `
		SELECT path, body, seq, updated_at
		FROM documents
		WHERE path = $1
	`, path).Scan(&d.Path, &d.Body, &d.Seq, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	return &d, nil
}

func (s *PostgresStore) PutDocument(ctx context.Context, path string, body json.RawMessage) (*Change, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("put document begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var c Change
	err = tx.QueryRow(ctx, `
		INSERT INTO content_log (path, body)
		VALUES ($1, $2)
		RETURNING seq, path, body, created_at
	`, path, body).Scan(&c.Seq, &c.Path, &c.Body, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("put document log: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO documents (path, body, seq, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (path)
		DO UPDATE SET body = $2, seq = $3, updated_at = now()
	`, path, body, c.Seq)
	if err != nil {
		return nil, fmt.Errorf("put document upsert: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("put document commit: %w", err)
	}
	return &c, nil
}

func (s *PostgresStore) ScanChanges(ctx context.Context, afterSeq int64, limit int) ([]Change, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.pool.Query(ctx, `
		SELECT seq, path, body, created_at
		FROM content_log
		WHERE seq > $1
		ORDER BY seq ASC
		LIMIT $2
	`, afterSeq, limit)
	if err != nil {
		return nil, fmt.Errorf("scan changes: %w", err)
	}
	defer rows.Close()

	var changes []Change
	for rows.Next() {
		var c Change
		if err := rows.Scan(&c.Seq, &c.Path, &c.Body, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan changes scan: %w", err)
		}
		changes = append(changes, c)
	}
	return changes, rows.Err()
}

func (s *PostgresStore) MaxChangeSeq(ctx context.Context) (int64, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var seq int64
	err := s.pool.QueryRow(ctx, `SELECT COALESCE(MAX(seq), 0) FROM content_log`).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("max change seq: %w", err)
	}
	return seq, nil
}

// --- AppointmentStore ---

func (s *PostgresStore) AppendAppointment(ctx context.Context, req appointment.Request) (*appointment.Request, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	req.ID = uuid.NewString()
	req.SubmittedAt = time.Now().UTC().Truncate(time.Second)

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("append appointment marshal: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO appointment_requests (id, body, submitted_at)
		VALUES ($1, $2, $3)
	`, req.ID, body, req.SubmittedAt)
	if err != nil {
		return nil, fmt.Errorf("append appointment: %w", err)
	}
	return &req, nil
}

func (s *PostgresStore) ListAppointments(ctx context.Context) ([]appointment.Request, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.pool.Query(ctx, `
		SELECT body
		FROM appointment_requests
		ORDER BY submitted_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer rows.Close()

	var requests []appointment.Request
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("list appointments scan: %w", err)
		}
		var req appointment.Request
		if err := json.Unmarshal(body, &req); err != nil {
			return nil, fmt.Errorf("list appointments decode: %w", err)
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

func (s *PostgresStore) DeleteAppointment(ctx context.Context, id string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	tag, err := s.pool.Exec(ctx, `DELETE FROM appointment_requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}

// --- SessionStore ---

func (s *PostgresStore) CreateSession(ctx context.Context, username string, ttl time.Duration) (*Session, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	sess := &Session{
		Token:     uuid.NewString(),
		Username:  username,
		ExpiresAt: time.Now().UTC().Add(ttl),
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO sessions (token, username, expires_at)
		VALUES ($1, $2, $3)
	`, sess.Token, sess.Username, sess.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return sess, nil
}

func (s *PostgresStore) GetSession(ctx context.Context, token string) (*Session, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if _, err := uuid.Parse(token); err != nil {
		return nil, ErrSessionNotFound
	}

	var sess Session
	err := s.pool.QueryRow(ctx, `
		SELECT token, username, expires_at
		FROM sessions
		WHERE token = $1 AND expires_at > now()
	`, token).Scan(&sess.Token, &sess.Username, &sess.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	return &sess, nil
}

func (s *PostgresStore) DeleteSession(ctx context.Context, token string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if _, err := uuid.Parse(token); err != nil {
		return nil
	}
	if _, err := s.pool.Exec(ctx, `DELETE FROM sessions WHERE token = $1`, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

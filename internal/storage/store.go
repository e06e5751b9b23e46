package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/taehan09/studio/internal/appointment"
)

// ErrDocumentNotFound is returned when a document lookup finds no matching row.
var ErrDocumentNotFound = errors.New("document not found")

// ErrAppointmentNotFound is returned when an appointment lookup or delete
// matches no row.
var ErrAppointmentNotFound = errors.New("appointment not found")

// ErrSessionNotFound is returned for unknown or expired session tokens.
var ErrSessionNotFound = errors.New("session not found")

// Document is the current value at a content path. Seq is the change sequence
// of the write that produced this value.
type Document struct {
	Path      string          `json:"path"`
	Body      json.RawMessage `json:"body"`
	Seq       int64           `json:"seq"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Change is one entry in the content changelog. Seq increases monotonically
// across all paths.
type Change struct {
	Seq       int64           `json:"seq"`
	Path      string          `json:"path"`
	Body      json.RawMessage `json:"body"`
	CreatedAt time.Time       `json:"created_at"`
}

// DocumentStore is the storage interface for content documents. Writes are
// full-document replaces with last-write-wins semantics; every write appends
// to the changelog.
type DocumentStore interface {
	// GetDocument returns the current document at path, or ErrDocumentNotFound.
	GetDocument(ctx context.Context, path string) (*Document, error)

	// PutDocument replaces the document at path and returns the appended
	// changelog entry.
	PutDocument(ctx context.Context, path string, body json.RawMessage) (*Change, error)

	// ScanChanges returns changelog entries with seq > afterSeq, ordered by
	// seq ASC. Used by the watch framework.
	ScanChanges(ctx context.Context, afterSeq int64, limit int) ([]Change, error)

	// MaxChangeSeq returns the highest changelog sequence, or 0 when empty.
	MaxChangeSeq(ctx context.Context) (int64, error)
}

// AppointmentStore is the append-only store for appointment requests.
type AppointmentStore interface {
	// AppendAppointment assigns an id and submission timestamp and stores the
	// request as a new member.
	AppendAppointment(ctx context.Context, req appointment.Request) (*appointment.Request, error)

	// ListAppointments returns all requests, newest first.
	ListAppointments(ctx context.Context) ([]appointment.Request, error)

	// DeleteAppointment removes a single request by id.
	DeleteAppointment(ctx context.Context, id string) error
}

// Session is an authenticated admin session.
type Session struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionStore persists admin sessions.
type SessionStore interface {
	// CreateSession stores a new session with the given lifetime.
	CreateSession(ctx context.Context, username string, ttl time.Duration) (*Session, error)

	// GetSession returns the session for token if it exists and has not
	// expired, otherwise ErrSessionNotFound.
	GetSession(ctx context.Context, token string) (*Session, error)

	// DeleteSession removes a session. Deleting an absent session is not an
	// error.
	DeleteSession(ctx context.Context, token string) error
}

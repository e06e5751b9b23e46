// Package repository is the sole mediator between typed content records and
// the document store. Each site section is a Section[T] parameterized by its
// path, default value, and validator; the same load/validate/save/watch cycle
// serves every section.
package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/taehan09/studio/internal/storage"
	"github.com/taehan09/studio/internal/watch"
)

// RawSection is the untyped view of a section used by generic API handlers.
type RawSection interface {
	Path() string
	GetRaw(ctx context.Context) (json.RawMessage, error)
	PutRaw(ctx context.Context, body json.RawMessage) error
	WatchRaw(ctx context.Context) (<-chan json.RawMessage, func(), error)
}

// Section provides typed access to one content path.
type Section[T any] struct {
	path     string
	def      func() T
	validate func(*T) *ValidationError
	store    storage.DocumentStore
	hub      *watch.Hub
	logger   *slog.Logger
}

func NewSection[T any](
	path string,
	def func() T,
	validate func(*T) *ValidationError,
	store storage.DocumentStore,
	hub *watch.Hub,
	logger *slog.Logger,
) *Section[T] {
	return &Section[T]{
		path:     path,
		def:      def,
		validate: validate,
		store:    store,
		hub:      hub,
		logger:   logger,
	}
}

func (s *Section[T]) Path() string { return s.path }

// Default returns the section's hard-coded default value.
func (s *Section[T]) Default() T { return s.def() }

// Get returns the current value at the section path. An empty path is
// repaired: the default is written back to the store and returned, so a
// second read returns the same value without another default write.
func (s *Section[T]) Get(ctx context.Context) (T, error) {
	v, _, err := s.get(ctx)
	return v, err
}

func (s *Section[T]) get(ctx context.Context) (T, int64, error) {
	var v T

	doc, err := s.store.GetDocument(ctx, s.path)
	if errors.Is(err, storage.ErrDocumentNotFound) {
		return s.initDefault(ctx)
	}
	if err != nil {
		return v, 0, fmt.Errorf("get %s: %w", s.path, err)
	}

	if err := json.Unmarshal(doc.Body, &v); err != nil {
		return v, 0, fmt.Errorf("decode %s: %w", s.path, err)
	}
	return v, doc.Seq, nil
}

// initDefault performs the read-repair: persist the default and return it.
func (s *Section[T]) initDefault(ctx context.Context) (T, int64, error) {
	v := s.def()

	body, err := json.Marshal(v)
	if err != nil {
		return v, 0, fmt.Errorf("encode default %s: %w", s.path, err)
	}

	c, err := s.store.PutDocument(ctx, s.path, body)
	if err != nil {
		return v, 0, fmt.Errorf("init default %s: %w", s.path, err)
	}
	s.hub.Publish(*c)

	s.logger.Info("initialized section with default content", "path", s.path)
	return v, c.Seq, nil
}

// Put validates v and replaces the full document at the section path.
// Last writer wins; there is no concurrency check.
func (s *Section[T]) Put(ctx context.Context, v T) error {
	if s.validate != nil {
		if verr := s.validate(&v); verr != nil {
			return verr
		}
	}

	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.path, err)
	}

	c, err := s.store.PutDocument(ctx, s.path, body)
	if err != nil {
		return fmt.Errorf("put %s: %w", s.path, err)
	}
	s.hub.Publish(*c)
	return nil
}

// Watch delivers the current value immediately, then every subsequent write
// to the section path from any client, until cancel is called or ctx ends.
func (s *Section[T]) Watch(ctx context.Context) (<-chan T, func(), error) {
	raw, cancelRaw, err := s.WatchRaw(ctx)
	if err != nil {
		return nil, nil, err
	}

	out := make(chan T, subscriberBuffer)
	go func() {
		defer close(out)
		for body := range raw {
			var v T
			if err := json.Unmarshal(body, &v); err != nil {
				s.logger.Error("failed to decode watched change", "path", s.path, "error", err)
				continue
			}
			select {
			case out <- v:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, cancelRaw, nil
}

const subscriberBuffer = 16

// --- RawSection ---

func (s *Section[T]) GetRaw(ctx context.Context) (json.RawMessage, error) {
	v, _, err := s.get(ctx)
	if err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

// PutRaw strictly decodes body into the section's record type (unknown fields
// rejected), validates it, and writes it. Invalid input never reaches the
// store.
func (s *Section[T]) PutRaw(ctx context.Context, body json.RawMessage) error {
	var v T
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		return &ValidationError{Fields: []FieldError{{Field: "body", Message: err.Error()}}}
	}
	return s.Put(ctx, v)
}

func (s *Section[T]) WatchRaw(ctx context.Context) (<-chan json.RawMessage, func(), error) {
	changes, cancelSub := s.hub.Subscribe(s.path)

	// Snapshot after subscribing so no write between snapshot and subscribe
	// is lost; changes at or below the snapshot sequence are skipped.
	snap, snapSeq, err := s.get(ctx)
	if err != nil {
		cancelSub()
		return nil, nil, err
	}
	snapBody, err := json.Marshal(snap)
	if err != nil {
		cancelSub()
		return nil, nil, fmt.Errorf("encode snapshot %s: %w", s.path, err)
	}

	out := make(chan json.RawMessage, subscriberBuffer)
	go func() {
		defer close(out)

		select {
		case out <- snapBody:
		case <-ctx.Done():
			return
		}

		for c := range changes {
			if c.Seq <= snapSeq {
				continue
			}
			select {
			case out <- c.Body:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, cancelSub, nil
}

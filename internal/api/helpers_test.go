package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/taehan09/studio/internal/appointment"
	"github.com/taehan09/studio/internal/auth"
	"github.com/taehan09/studio/internal/blob"
	"github.com/taehan09/studio/internal/flows"
	"github.com/taehan09/studio/internal/repository"
	"github.com/taehan09/studio/internal/storage"
	"github.com/taehan09/studio/internal/watch"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/genai"
)

const (
	testAdminUser     = "admin"
	testAdminPassword = "correct horse battery staple"
)

// --- Mock DocumentStore ---

type mockDocumentStore struct {
	mu   sync.Mutex
	docs map[string]storage.Document
	log  []storage.Change
	seq  int64
}

func newMockDocumentStore() *mockDocumentStore {
	return &mockDocumentStore{docs: make(map[string]storage.Document)}
}

func (m *mockDocumentStore) GetDocument(ctx context.Context, path string) (*storage.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[path]
	if !ok {
		return nil, storage.ErrDocumentNotFound
	}
	return &doc, nil
}

func (m *mockDocumentStore) PutDocument(ctx context.Context, path string, body json.RawMessage) (*storage.Change, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	c := storage.Change{Seq: m.seq, Path: path, Body: body, CreatedAt: time.Now()}
	m.log = append(m.log, c)
	m.docs[path] = storage.Document{Path: path, Body: body, Seq: m.seq, UpdatedAt: c.CreatedAt}
	return &c, nil
}

func (m *mockDocumentStore) ScanChanges(ctx context.Context, afterSeq int64, limit int) ([]storage.Change, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []storage.Change
	for _, c := range m.log {
		if c.Seq > afterSeq {
			out = append(out, c)
		}
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (m *mockDocumentStore) MaxChangeSeq(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.seq, nil
}

// --- Mock AppointmentStore ---

type mockAppointmentStore struct {
	mu       sync.Mutex
	requests map[string]appointment.Request
	listErr  error
}

func newMockAppointmentStore() *mockAppointmentStore {
	return &mockAppointmentStore{requests: make(map[string]appointment.Request)}
}

func (m *mockAppointmentStore) AppendAppointment(ctx context.Context, req appointment.Request) (*appointment.Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	req.ID = uuid.NewString()
	req.SubmittedAt = time.Now().UTC()
	m.requests[req.ID] = req
	return &req, nil
}

func (m *mockAppointmentStore) ListAppointments(ctx context.Context) ([]appointment.Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]appointment.Request, 0, len(m.requests))
	for _, r := range m.requests {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SubmittedAt.After(out[j].SubmittedAt) })
	return out, nil
}

func (m *mockAppointmentStore) DeleteAppointment(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.requests[id]; !ok {
		return storage.ErrAppointmentNotFound
	}
	delete(m.requests, id)
	return nil
}

// --- Mock SessionStore ---

type mockSessionStore struct {
	mu       sync.Mutex
	sessions map[string]storage.Session
}

func newMockSessionStore() *mockSessionStore {
	return &mockSessionStore{sessions: make(map[string]storage.Session)}
}

func (m *mockSessionStore) CreateSession(ctx context.Context, username string, ttl time.Duration) (*storage.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := storage.Session{Token: uuid.NewString(), Username: username, ExpiresAt: time.Now().Add(ttl)}
	m.sessions[s.Token] = s
	return &s, nil
}

func (m *mockSessionStore) GetSession(ctx context.Context, token string) (*storage.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[token]
	if !ok || time.Now().After(s.ExpiresAt) {
		return nil, storage.ErrSessionNotFound
	}
	return &s, nil
}

func (m *mockSessionStore) DeleteSession(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
	return nil
}

// --- Stub Generator ---

type stubGenerator struct {
	mu       sync.Mutex
	response []byte
	err      error
	calls    int
}

func (g *stubGenerator) GenerateJSON(ctx context.Context, prompt string, parts []*genai.Part, schema *genai.Schema) ([]byte, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	return g.response, nil
}

// --- Test server ---

type testEnv struct {
	server   http.Handler
	docs     *mockDocumentStore
	appts    *mockAppointmentStore
	sessions *mockSessionStore
	repo     *repository.Repository
	auth     *auth.Service
	gen      *stubGenerator
}

var testPasswordHash = func() string {
	hash, err := bcrypt.GenerateFromPassword([]byte(testAdminPassword), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return string(hash)
}()

func setupTestServer(t *testing.T) *testEnv {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	docs := newMockDocumentStore()
	appts := newMockAppointmentStore()
	sessions := newMockSessionStore()
	hub := watch.NewHub()
	repo := repository.New(docs, hub, logger)
	authSvc := auth.NewService(sessions, testAdminUser, testPasswordHash, time.Hour, logger)

	blobs, err := blob.New(t.TempDir(), "http://localhost:8080", logger)
	if err != nil {
		t.Fatalf("blob store: %v", err)
	}

	gen := &stubGenerator{response: []byte(`{"summary": "Client wants a tattoo."}`)}

	env := &testEnv{
		docs:     docs,
		appts:    appts,
		sessions: sessions,
		repo:     repo,
		auth:     authSvc,
		gen:      gen,
	}
	env.server = NewServer(ServerConfig{
		Logger:       logger,
		Repo:         repo,
		Appointments: appts,
		Auth:         authSvc,
		Media:        blobs,
		Flows:        flows.NewService(gen, logger),
		DB:           nil,
	})
	return env
}

func mustBlobStore(t *testing.T, logger *slog.Logger) *blob.Store {
	t.Helper()
	blobs, err := blob.New(t.TempDir(), "http://localhost:8080", logger)
	if err != nil {
		t.Fatalf("blob store: %v", err)
	}
	return blobs
}

// adminToken logs in and returns a live bearer token.
func (env *testEnv) adminToken(t *testing.T) string {
	t.Helper()
	session, err := env.auth.Login(context.Background(), testAdminUser, testAdminPassword)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	return session.Token
}

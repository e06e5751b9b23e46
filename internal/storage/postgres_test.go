package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/taehan09/studio/internal/appointment"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

var testPool *pgxpool.Pool

func TestMain(m *testing.M) {
	ctx := context.Background()

	ctr, err := postgres.Run(ctx, "postgres:16",
		postgres.WithDatabase("studio"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		panic(fmt.Sprintf("start postgres container: %v", err))
	}

	connStr, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		panic(fmt.Sprintf("get connection string: %v", err))
	}

	testPool, err = pgxpool.New(ctx, connStr)
	if err != nil {
		panic(fmt.Sprintf("create pool: %v", err))
	}

	if err := RunMigrations(ctx, testPool); err != nil {
		panic(fmt.Sprintf("run migrations: %v", err))
	}

	code := m.Run()

	testPool.Close()
	_ = testcontainers.TerminateContainer(ctr)

	os.Exit(code)
}

func newStore(t *testing.T) *PostgresStore {
	t.Helper()
	return NewPostgresStore(testPool, 5*time.Second)
}

func TestPutGetDocument(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	path := "site_content/test_put_get"
	body := json.RawMessage(`{"title":"Ashgray Ink"}`)

	c, err := store.PutDocument(ctx, path, body)
	if err != nil {
		t.Fatalf("PutDocument: %v", err)
	}
	if c.Seq == 0 {
		t.Error("expected non-zero change seq")
	}
	if c.Path != path {
		t.Errorf("Path: got %q, want %q", c.Path, path)
	}

	d, err := store.GetDocument(ctx, path)
	if err != nil {
		t.Fatalf("GetDocument: %v", err)
	}
	if d.Seq != c.Seq {
		t.Errorf("Seq: got %d, want %d", d.Seq, c.Seq)
	}
	if string(d.Body) != string(body) {
		t.Errorf("Body: got %s, want %s", d.Body, body)
	}
}

func TestGetDocument_NotFound(t *testing.T) {
	store := newStore(t)

	_, err := store.GetDocument(context.Background(), "site_content/does_not_exist")
	if !errors.Is(err, ErrDocumentNotFound) {
		t.Errorf("expected ErrDocumentNotFound, got %v", err)
	}
}

func TestPutDocument_LastWriteWins(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	path := "site_content/test_lww"
	if _, err := store.PutDocument(ctx, path, json.RawMessage(`{"v":1}`)); err != nil {
		t.Fatalf("first put: %v", err)
	}
	second, err := store.PutDocument(ctx, path, json.RawMessage(`{"v":2}`))
	if err != nil {
		t.Fatalf("second put: %v", err)
	}

	d, err := store.GetDocument(ctx, path)
	if err != nil {
		t.Fatalf("GetDocument: %v", err)
	}
	if string(d.Body) != `{"v": 2}` && string(d.Body) != `{"v":2}` {
		t.Errorf("Body: got %s, want second write", d.Body)
	}
	if d.Seq != second.Seq {
		t.Errorf("Seq: got %d, want %d", d.Seq, second.Seq)
	}
}

func TestScanChanges_OrderedAfterSeq(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	start, err := store.MaxChangeSeq(ctx)
	if err != nil {
		t.Fatalf("MaxChangeSeq: %v", err)
	}

	for i := 1; i <= 3; i++ {
		body := json.RawMessage(fmt.Sprintf(`{"v":%d}`, i))
		if _, err := store.PutDocument(ctx, "site_content/test_scan", body); err != nil {
			t.Fatalf("put %d: %v", i, err)
		}
	}

	changes, err := store.ScanChanges(ctx, start, 100)
	if err != nil {
		t.Fatalf("ScanChanges: %v", err)
	}
	if len(changes) != 3 {
		t.Fatalf("changes: got %d, want 3", len(changes))
	}
	for i := 1; i < len(changes); i++ {
		if changes[i].Seq <= changes[i-1].Seq {
			t.Errorf("changes not ordered: %d then %d", changes[i-1].Seq, changes[i].Seq)
		}
	}

	// Scanning past the end returns nothing.
	tail, err := store.ScanChanges(ctx, changes[len(changes)-1].Seq, 100)
	if err != nil {
		t.Fatalf("ScanChanges tail: %v", err)
	}
	if len(tail) != 0 {
		t.Errorf("tail: got %d changes, want 0", len(tail))
	}
}

func TestAppointments_AppendListDelete(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	stored, err := store.AppendAppointment(ctx, appointment.Request{
		FullName:          "Jane Doe",
		Email:             "jane@example.com",
		Phone:             "416-555-0100",
		PreferredArtist:   appointment.NoPreference,
		TattooDescription: "small fine-line fern on the ankle",
	})
	if err != nil {
		t.Fatalf("AppendAppointment: %v", err)
	}
	if stored.ID == "" {
		t.Error("expected assigned id")
	}
	if stored.SubmittedAt.IsZero() {
		t.Error("expected assigned submission timestamp")
	}

	list, err := store.ListAppointments(ctx)
	if err != nil {
		t.Fatalf("ListAppointments: %v", err)
	}
	found := false
	for _, r := range list {
		if r.ID == stored.ID {
			found = true
			if r.FullName != "Jane Doe" {
				t.Errorf("FullName: got %q", r.FullName)
			}
		}
	}
	if !found {
		t.Fatal("appended request not listed")
	}

	if err := store.DeleteAppointment(ctx, stored.ID); err != nil {
		t.Fatalf("DeleteAppointment: %v", err)
	}
	if err := store.DeleteAppointment(ctx, stored.ID); !errors.Is(err, ErrAppointmentNotFound) {
		t.Errorf("second delete: expected ErrAppointmentNotFound, got %v", err)
	}
}

func TestSessions_Lifecycle(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	sess, err := store.CreateSession(ctx, "admin", time.Hour)
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	got, err := store.GetSession(ctx, sess.Token)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if got.Username != "admin" {
		t.Errorf("Username: got %q", got.Username)
	}

	if err := store.DeleteSession(ctx, sess.Token); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	if _, err := store.GetSession(ctx, sess.Token); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound after delete, got %v", err)
	}
}

func TestSessions_Expired(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	sess, err := store.CreateSession(ctx, "admin", -time.Minute)
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if _, err := store.GetSession(ctx, sess.Token); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound for expired session, got %v", err)
	}
}

func TestSessions_MalformedToken(t *testing.T) {
	store := newStore(t)

	if _, err := store.GetSession(context.Background(), "not-a-uuid"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound for malformed token, got %v", err)
	}
}

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/taehan09/studio/internal/content"
)

func TestWatchStream_SnapshotAndUpdates(t *testing.T) {
	env := setupTestServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/v1/content/hero/watch", nil).WithContext(ctx)
	w := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		defer close(done)
		env.server.ServeHTTP(w, req)
	}()

	// Give the stream time to deliver the snapshot, then publish a write.
	time.Sleep(50 * time.Millisecond)
	hero := content.HeroText{Title: "Fresh Ink", Subtitle: "Now booking"}
	if err := env.repo.Hero.Put(context.Background(), hero); err != nil {
		t.Fatalf("put: %v", err)
	}
	time.Sleep(50 * time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not close after context cancel")
	}

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", w.Code)
	}
	if got := w.Header().Get("Content-Type"); got != "text/event-stream" {
		t.Errorf("content type: got %q, want text/event-stream", got)
	}

	body := w.Body.String()
	if n := strings.Count(body, "event: content"); n != 2 {
		t.Errorf("content events: got %d, want 2 (snapshot + update)\nbody:\n%s", n, body)
	}
	if !strings.Contains(body, content.DefaultHeroText().Title) {
		t.Errorf("snapshot missing default title\nbody:\n%s", body)
	}
	if !strings.Contains(body, "Fresh Ink") {
		t.Errorf("update missing new title\nbody:\n%s", body)
	}
}

func TestWatchStream_UnknownSection(t *testing.T) {
	env := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/content/blog/watch", nil)
	w := httptest.NewRecorder()
	env.server.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", w.Code)
	}
}

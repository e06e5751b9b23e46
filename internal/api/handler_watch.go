package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/taehan09/studio/internal/metrics"
	"github.com/taehan09/studio/internal/repository"
)

const watchHeartbeatInterval = 15 * time.Second

// WatchHandler streams content section changes over server-sent events.
// A stream opens with the current section value, then carries one event per
// accepted write until the client disconnects.
type WatchHandler struct {
	repo   *repository.Repository
	logger *slog.Logger
}

func NewWatchHandler(repo *repository.Repository, logger *slog.Logger) *WatchHandler {
	return &WatchHandler{repo: repo, logger: logger}
}

func (h *WatchHandler) Watch(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "section")
	section, ok := h.repo.Section(name)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown section "+name)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	ctx := r.Context()
	updates, cancel, err := section.WatchRaw(ctx)
	if err != nil {
		h.logger.Error("failed to open watch stream", "section", name, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to open watch stream")
		return
	}
	defer cancel()

	closed := metrics.WatchStreamOpened()
	defer closed()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	heartbeat := time.NewTicker(watchHeartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case body, ok := <-updates:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: content\ndata: %s\n\n", body)
			flusher.Flush()
		case <-heartbeat.C:
			fmt.Fprint(w, ": keepalive\n\n")
			flusher.Flush()
		case <-ctx.Done():
			return
		}
	}
}

package watch

import (
	"context"
	"log/slog"
	"time"

	"github.com/taehan09/studio/internal/storage"
)

// Watcher polls the content changelog and publishes new entries to the Hub.
// The local write path publishes its own changes directly; the watcher exists
// so writes from other instances reach local subscribers. The Hub's sequence
// dedupe makes seeing a change twice harmless.
type Watcher struct {
	store        storage.DocumentStore
	hub          *Hub
	checkpoint   Checkpoint
	nodeID       string
	pollInterval time.Duration
	batchSize    int
	logger       *slog.Logger
}

func NewWatcher(
	store storage.DocumentStore,
	hub *Hub,
	checkpoint Checkpoint,
	nodeID string,
	pollInterval time.Duration,
	batchSize int,
	logger *slog.Logger,
) *Watcher {
	return &Watcher{
		store:        store,
		hub:          hub,
		checkpoint:   checkpoint,
		nodeID:       nodeID,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		logger:       logger,
	}
}

// Run polls until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	lastSeq, err := w.checkpoint.Load(ctx, w.nodeID)
	if err != nil {
		w.logger.Error("failed to load watch checkpoint", "node", w.nodeID, "error", err)
		return
	}
	if lastSeq < 0 {
		// First run for this node: start at the log head rather than
		// replaying the full history to subscribers.
		head, err := w.store.MaxChangeSeq(ctx)
		if err != nil {
			w.logger.Error("failed to read changelog head", "node", w.nodeID, "error", err)
			return
		}
		lastSeq = head
	}

	w.logger.Info("content watcher started", "node", w.nodeID, "from_seq", lastSeq)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// Persist final checkpoint before exit
			if err := w.checkpoint.Save(context.Background(), w.nodeID, lastSeq); err != nil {
				w.logger.Error("failed to save final checkpoint", "node", w.nodeID, "error", err)
			}
			return
		case <-ticker.C:
			newLastSeq, err := w.processBatch(ctx, lastSeq)
			if err != nil {
				w.logger.Error("watch batch failed", "node", w.nodeID, "error", err)
				continue
			}
			if newLastSeq > lastSeq {
				lastSeq = newLastSeq
				if err := w.checkpoint.Save(ctx, w.nodeID, lastSeq); err != nil {
					w.logger.Error("failed to save checkpoint", "node", w.nodeID, "error", err)
				}
			}
		}
	}
}

func (w *Watcher) processBatch(ctx context.Context, afterSeq int64) (int64, error) {
	changes, err := w.store.ScanChanges(ctx, afterSeq, w.batchSize)
	if err != nil {
		return afterSeq, err
	}

	lastSeq := afterSeq
	for _, c := range changes {
		w.hub.Publish(c)
		lastSeq = c.Seq
	}
	return lastSeq, nil
}

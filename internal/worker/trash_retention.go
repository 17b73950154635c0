package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/bunchesapp/bunches-go/internal/logger"
	"github.com/bunchesapp/bunches-go/internal/metrics"
	"github.com/bunchesapp/bunches-go/internal/recipe"
)

// TrashRetentionWorker permanently removes tombstoned recipes once they have
// sat in Recently Deleted longer than the configured retention. Purges go
// through the recipe store, so they serialize with user mutations and publish
// the same deletion events.
type TrashRetentionWorker struct {
	store     recipe.Store
	retention time.Duration
}

// NewTrashRetentionWorker creates a retention job over the given store
func NewTrashRetentionWorker(store recipe.Store, retention time.Duration) *TrashRetentionWorker {
	return &TrashRetentionWorker{
		store:     store,
		retention: retention,
	}
}

// Process purges every tombstone older than the retention window
func (w *TrashRetentionWorker) Process(ctx context.Context) error {
	cutoff := time.Now().UTC().Add(-w.retention)
	log := logger.FromContext(ctx)

	purged, err := w.store.PurgeDeletedBefore(ctx, cutoff)
	if err != nil {
		log.Error(LogMsgTrashPurgeFailed, "error", err)
		return fmt.Errorf("purge expired tombstones: %w", err)
	}

	if purged > 0 {
		metrics.TrashPurged.Add(float64(purged))
		log.Info(LogMsgTrashPurgeCompleted,
			"purged", purged,
			"cutoff", cutoff)
	}
	return nil
}

package worker

import (
	"context"
	"log/slog"
	"time"
)

// Pruner deletes card checks created before a cutoff.
type Pruner interface {
	Prune(ctx context.Context, before time.Time) (int64, error)
}

// StartRetentionWorker prunes checks older than retention every
// interval until ctx is cancelled. The returned channel closes when
// the worker has stopped.
func StartRetentionWorker(ctx context.Context, p Pruner, retention, interval time.Duration) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		slog.Info("👷 Retention Worker started", "retention", retention.String(), "interval", interval.String())

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			pruneOnce(ctx, p, retention)
			select {
			case <-ctx.Done():
				slog.Info("👷 Retention Worker stopped")
				return
			case <-ticker.C:
			}
		}
	}()
	return done
}

func pruneOnce(ctx context.Context, p Pruner, retention time.Duration) {
	cutoff := time.Now().UTC().Add(-retention)
	n, err := p.Prune(ctx, cutoff)
	if err != nil {
		if ctx.Err() == nil {
			slog.Error("❌ Failed to prune card checks", "error", err)
		}
		return
	}
	if n > 0 {
		slog.Info("🧹 Pruned card checks", "count", n, "before", cutoff)
	}
}

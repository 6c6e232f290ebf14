package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePruner struct {
	mu      sync.Mutex
	cutoffs []time.Time
	err     error
}

func (f *fakePruner) Prune(_ context.Context, before time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cutoffs = append(f.cutoffs, before)
	return 1, f.err
}

func (f *fakePruner) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.cutoffs)
}

func TestRetentionWorker_PrunesUntilCancelled(t *testing.T) {
	p := &fakePruner{}
	ctx, cancel := context.WithCancel(context.Background())

	start := time.Now().UTC()
	done := StartRetentionWorker(ctx, p, 24*time.Hour, 5*time.Millisecond)

	require.Eventually(t, func() bool { return p.calls() >= 2 }, time.Second, time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}

	p.mu.Lock()
	first := p.cutoffs[0]
	p.mu.Unlock()
	assert.WithinDuration(t, start.Add(-24*time.Hour), first, time.Second)
}

func TestRetentionWorker_SurvivesErrors(t *testing.T) {
	p := &fakePruner{err: errors.New("db down")}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	StartRetentionWorker(ctx, p, time.Hour, 5*time.Millisecond)
	require.Eventually(t, func() bool { return p.calls() >= 3 }, time.Second, time.Millisecond)
}

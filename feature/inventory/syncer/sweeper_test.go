package syncer

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingReloader struct {
	calls atomic.Int32
}

func (c *countingReloader) InitializeCache(ctx context.Context) *ReloadReport {
	c.calls.Add(1)
	return &ReloadReport{}
}

func TestSweeper_RunsUntilStopped(t *testing.T) {
	r := &countingReloader{}
	s := NewSweeper(r, 5*time.Millisecond, zap.NewNop())

	errCh := make(chan error, 1)
	go func() { errCh <- s.Start(context.Background()) }()

	assert.Eventually(t, func() bool { return r.calls.Load() >= 2 }, time.Second, time.Millisecond)

	require.NoError(t, s.Stop())
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}

	calls := r.calls.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, calls, r.calls.Load())
}

func TestSweeper_StopsOnContextCancel(t *testing.T) {
	s := NewSweeper(&countingReloader{}, time.Hour, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() { errCh <- s.Start(ctx) }()
	cancel()

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("sweeper ignored cancellation")
	}
}

func TestSweeper_StopBeforeStart(t *testing.T) {
	s := NewSweeper(&countingReloader{}, time.Second, zap.NewNop())
	assert.NoError(t, s.Stop())
}

func TestSweeper_DrivesEngine(t *testing.T) {
	s := newMemStore(sampleItems...)
	idx := newMemIndex()
	e := newTestEngine(s, idx, Config{})
	sw := NewSweeper(e, 5*time.Millisecond, zap.NewNop())

	go func() { _ = sw.Start(context.Background()) }()
	defer sw.Stop()

	assert.Eventually(t, func() bool { return idx.size() == len(sampleItems) }, time.Second, time.Millisecond)
}

package syncer

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Reloader runs a full reload.
type Reloader interface {
	InitializeCache(ctx context.Context) *ReloadReport
}

// Sweeper periodically runs full reloads so the index converges on the store
// even when targeted upserts fail or records change outside adjustment events.
type Sweeper struct {
	reloader Reloader
	interval time.Duration
	logger   *zap.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewSweeper creates a sweeper running every interval.
func NewSweeper(reloader Reloader, interval time.Duration, logger *zap.Logger) *Sweeper {
	return &Sweeper{
		reloader: reloader,
		interval: interval,
		logger:   logger,
	}
}

// Start runs the sweep loop. It blocks until ctx is cancelled or Stop is called.
func (s *Sweeper) Start(ctx context.Context) error {
	sweepCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	s.mu.Lock()
	s.cancel = cancel
	s.done = done
	s.mu.Unlock()

	defer func() {
		cancel()
		close(done)
	}()

	s.logger.Info("Starting reconciliation sweeper", zap.Duration("interval", s.interval))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			report := s.reloader.InitializeCache(sweepCtx)
			s.logger.Debug("Sweep completed",
				zap.Int("indexed", report.Indexed()),
				zap.Int("failed", report.Failed))
		case <-sweepCtx.Done():
			s.logger.Info("Reconciliation sweeper stopping")
			return nil
		}
	}
}

// Stop cancels the loop and waits for it to exit.
func (s *Sweeper) Stop() error {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
	return nil
}

package ping_worker

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

type Cycler interface {
	Cycle(ctx context.Context, cycleID string) (CycleStats, error)
}

// Runner starts a cycle right away and then on every tick. A tick that finds
// the previous cycle still running is skipped, so cycles never overlap.
type Runner struct {
	log      *zap.Logger
	cycler   Cycler
	interval time.Duration

	busy *semaphore.Weighted
	wg   sync.WaitGroup
}

func NewRunner(log *zap.Logger, cycler Cycler, interval time.Duration) *Runner {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Runner{
		log:      log.With(zap.String("component", "ping-worker.runner")),
		cycler:   cycler,
		interval: interval,
		busy:     semaphore.NewWeighted(1),
	}
}

// Run blocks until ctx is done and the in-flight cycle has returned.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	defer r.wg.Wait()

	r.log.Info("runner started", zap.Duration("interval", r.interval))
	r.trigger(ctx)

	for {
		select {
		case <-ctx.Done():
			r.log.Info("runner stopping")
			return ctx.Err()
		case <-ticker.C:
			r.trigger(ctx)
		}
	}
}

func (r *Runner) trigger(ctx context.Context) bool {
	if !r.busy.TryAcquire(1) {
		mCyclesSkipped.Inc()
		r.log.Warn("previous cycle still running, tick skipped")
		return false
	}
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer r.busy.Release(1)
		r.cycle(ctx)
	}()
	return true
}

func (r *Runner) cycle(ctx context.Context) {
	id := uuid.NewString()
	start := time.Now()
	mCycles.Inc()

	stats, err := r.cycler.Cycle(ctx, id)
	mCycleDur.Observe(time.Since(start).Seconds())
	if err != nil {
		r.log.Warn("cycle failed", zap.String("cycle_id", id), zap.Error(err))
		return
	}
	r.log.Info("cycle done",
		zap.String("cycle_id", id),
		zap.Int("listed", stats.Listed),
		zap.Int("processed", stats.Processed),
		zap.Int("skipped", stats.Skipped),
		zap.Int("up", stats.Up),
		zap.Int("down", stats.Down),
		zap.Int("alerts", stats.Alerts),
		zap.Duration("took", time.Since(start)),
	)
}

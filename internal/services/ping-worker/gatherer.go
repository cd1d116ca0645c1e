package ping_worker

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/NordCoder/Uptimer/internal/domain/check"
	"github.com/NordCoder/Uptimer/internal/obs"
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

type CheckHandler interface {
	HandleCheck(ctx context.Context, id string) (Result, error)
}

type CycleStats struct {
	Listed    int
	Processed int
	Skipped   int
	Up        int
	Down      int
	Alerts    int
}

func (s *CycleStats) add(res Result) {
	s.Processed++
	if res.State == check.StateUp {
		s.Up++
	} else {
		s.Down++
	}
	if res.Alerted {
		s.Alerts++
	}
}

// Gatherer runs one cycle: list every check and hand each id to the handler
// on a bounded pool. One bad check never affects the others.
type Gatherer struct {
	Log         *zap.Logger
	Checks      CheckStore
	Handler     CheckHandler
	Concurrency int
}

func (g *Gatherer) Cycle(ctx context.Context, cycleID string) (CycleStats, error) {
	ctx, span := otel.Tracer("ping-worker").Start(ctx, "worker.cycle")
	defer span.End()
	span.SetAttributes(attribute.String("cycle.id", cycleID))
	log := obs.WithTrace(ctx, g.Log).With(zap.String("cycle_id", cycleID))

	var stats CycleStats
	ids, err := g.Checks.IDs(ctx)
	if err != nil {
		mErrors.WithLabelValues(stageList).Inc()
		span.RecordError(err)
		return stats, fmt.Errorf("list checks: %w", err)
	}
	stats.Listed = len(ids)
	span.SetAttributes(attribute.Int("cycle.listed", len(ids)))
	if len(ids) == 0 {
		log.Debug("no checks to process")
		return stats, nil
	}

	var mu sync.Mutex
	p := pool.New().WithMaxGoroutines(max(g.Concurrency, 1))
	for _, id := range ids {
		p.Go(func() {
			res, err := g.Handler.HandleCheck(ctx, id)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				stats.Skipped++
				if !errors.Is(err, context.Canceled) {
					log.Warn("check skipped", zap.String("check_id", id), zap.Error(err))
				}
				return
			}
			stats.add(res)
		})
	}
	p.Wait()

	span.SetAttributes(
		attribute.Int("cycle.processed", stats.Processed),
		attribute.Int("cycle.skipped", stats.Skipped),
		attribute.Int("cycle.alerts", stats.Alerts),
	)
	return stats, nil
}

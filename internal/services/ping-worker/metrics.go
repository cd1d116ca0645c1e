package ping_worker

import (
	"errors"
	"time"

	"github.com/NordCoder/Uptimer/internal/domain/check"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	mCycles = promauto.NewCounter(prometheus.CounterOpts{
		Name: "uptimer_worker_cycles_total", Help: "Check cycles started",
	})
	mCyclesSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "uptimer_worker_cycles_skipped_total", Help: "Ticks skipped because a cycle was still running",
	})
	mCycleDur = promauto.NewHistogram(prometheus.HistogramOpts{
		Name: "uptimer_worker_cycle_duration_seconds", Help: "Duration of a full cycle",
		Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
	})
	mChecks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "uptimer_worker_checks_total", Help: "Evaluated checks by resulting state",
	}, []string{"state"})
	mErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "uptimer_worker_errors_total", Help: "Per-check failures by stage",
	}, []string{"stage"})
	mAlerts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "uptimer_worker_alerts_total", Help: "Alerts by delivery result",
	}, []string{"result"})
	mProbeDur = promauto.NewHistogram(prometheus.HistogramOpts{
		Name: "uptimer_probe_duration_seconds", Help: "Probe latency",
		Buckets: prometheus.DefBuckets,
	})
	mProbes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "uptimer_probe_results_total", Help: "Probe outcomes",
	}, []string{"result"})
)

const (
	stageList     = "list"
	stageRead     = "read"
	stageValidate = "validate"
	stagePersist  = "persist"
	stageAlert    = "alert"
)

func observeProbe(out check.Outcome, took time.Duration) {
	mProbeDur.Observe(took.Seconds())
	switch {
	case out.Err == nil:
		mProbes.WithLabelValues("response").Inc()
	case errors.Is(out.Err, check.ErrTimeout):
		mProbes.WithLabelValues("timeout").Inc()
	default:
		mProbes.WithLabelValues("error").Inc()
	}
}

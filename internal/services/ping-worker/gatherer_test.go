package ping_worker

import (
	"context"
	"fmt"
	"testing"

	"github.com/NordCoder/Uptimer/internal/domain/check"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCycleSkipsCorruptedRecord(t *testing.T) {
	env := newHandlerEnv(check.Outcome{Code: 200})
	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("abcdefghij012345678%d", i)
		rec := validRecord()
		rec["id"] = id
		env.store.recs[id] = rec
	}
	bad := validRecord()
	delete(bad, "successCodes")
	env.store.recs["badbadbadbadbadbad00"] = bad

	g := &Gatherer{Log: zap.NewNop(), Checks: env.store, Handler: env.h, Concurrency: 3}
	stats, err := g.Cycle(context.Background(), "cycle-1")
	require.NoError(t, err)

	assert.Equal(t, CycleStats{Listed: 6, Processed: 5, Skipped: 1, Up: 5}, stats)
	assert.Equal(t, 5, env.probe.calls)
	assert.Equal(t, 5, env.store.saves)
	assert.NotContains(t, env.store.get("badbadbadbadbadbad00"), "state")
}

func TestCycleEmptyAndListError(t *testing.T) {
	env := newHandlerEnv(check.Outcome{Code: 200})
	g := &Gatherer{Log: zap.NewNop(), Checks: env.store, Handler: env.h, Concurrency: 1}

	stats, err := g.Cycle(context.Background(), "empty")
	require.NoError(t, err)
	assert.Zero(t, stats.Listed)

	env.store.listErr = errBoom
	_, err = g.Cycle(context.Background(), "broken")
	assert.ErrorIs(t, err, errBoom)
	assert.Zero(t, env.probe.calls)
}

func TestCycleCountsAlerts(t *testing.T) {
	env := newHandlerEnv(check.Outcome{Code: 503})
	rec := validRecord()
	rec["state"] = "up"
	rec["lastChecked"] = 1.0
	env.store.recs[testID] = rec

	g := &Gatherer{Log: zap.NewNop(), Checks: env.store, Handler: env.h, Concurrency: 0}
	stats, err := g.Cycle(context.Background(), "c")
	require.NoError(t, err)
	assert.Equal(t, CycleStats{Listed: 1, Processed: 1, Down: 1, Alerts: 1}, stats)
}

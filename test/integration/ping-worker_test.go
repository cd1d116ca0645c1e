//go:build integration

package integration

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/NordCoder/Uptimer/internal/domain/check"
	"github.com/NordCoder/Uptimer/internal/domain/record"
	kafkax "github.com/NordCoder/Uptimer/internal/repository/kafka"
	pg "github.com/NordCoder/Uptimer/internal/repository/postgres"
	pingworker "github.com/NordCoder/Uptimer/internal/services/ping-worker"
	workerrepo "github.com/NordCoder/Uptimer/internal/services/ping-worker/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/protobuf/types/known/structpb"
)

type wallClock struct{}

func (wallClock) Now() time.Time { return time.Now() }

func newPGStore(t *testing.T, cfg Cfg) *pg.RecordRepo {
	t.Helper()
	db, err := pg.New(context.Background(), pg.Config{DSN: cfg.DBDSN, MaxConns: 4, QueryTimeout: 5 * time.Second})
	require.NoError(t, err)
	t.Cleanup(db.Close)
	return pg.NewRecordRepo(db)
}

func TestRecordRepoContract(t *testing.T) {
	cfg := LoadCfg()
	sqlDB := DBOpen(t, cfg.DBDSN)
	defer sqlDB.Close()
	repo := newPGStore(t, cfg)
	ctx := context.Background()
	cat := "it-" + RandID()
	id := RandID()

	_, err := repo.Read(ctx, cat, id)
	assert.ErrorIs(t, err, record.ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, cat, id, record.Record{"a": 1.0}), record.ErrNotFound)

	require.NoError(t, repo.Create(ctx, cat, id, record.Record{"a": 1.0}))
	assert.ErrorIs(t, repo.Create(ctx, cat, id, record.Record{"a": 2.0}), record.ErrConflict)
	require.NoError(t, repo.Update(ctx, cat, id, record.Record{"a": 3.0, "nested": map[string]any{"b": "c"}}))

	got, err := repo.Read(ctx, cat, id)
	require.NoError(t, err)
	assert.Equal(t, record.Record{"a": 3.0, "nested": map[string]any{"b": "c"}}, got)

	ids, err := repo.List(ctx, cat)
	require.NoError(t, err)
	assert.Equal(t, []string{id}, ids)

	require.NoError(t, repo.Delete(ctx, cat, id))
	assert.ErrorIs(t, repo.Delete(ctx, cat, id), record.ErrNotFound)
}

// A check that was up goes down against a failing target: the new state is
// stored and one alert event reaches the topic.
func TestPingWorker_UpToDown_PublishesAlert(t *testing.T) {
	cfg := LoadCfg()
	WaitTCP(t, "kafka", cfg.KafkaBootstrap, 30*time.Second)
	sqlDB := DBOpen(t, cfg.DBDSN)
	defer sqlDB.Close()

	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer target.Close()

	cat := "it-" + RandID()
	id := RandID()
	SeedRecord(t, sqlDB, cat, id, record.Record{
		"id":             id,
		"userPhone":      "5551234567",
		"protocol":       "http",
		"url":            strings.TrimPrefix(target.URL, "http://") + "/health",
		"method":         "get",
		"successCodes":   []any{200},
		"timeoutSeconds": 2,
		"state":          "up",
		"lastChecked":    1000,
	})

	topic := "it.alerts." + RandID()
	ctx := context.Background()
	prod := kafkax.BootstrapProducer(ctx, []string{cfg.KafkaBootstrap}, topic, 1, zap.NewNop())
	defer func() { _ = prod.Close() }()

	checks := workerrepo.Checks{S: newPGStore(t, cfg), Category: cat}
	h := &pingworker.Handler{
		Log:    zap.NewNop(),
		Checks: checks,
		Probe:  pingworker.NewProber(http.DefaultClient, "uptimer-it"),
		Alerts: kafkax.NewAlertEventsKafka(prod),
		Clock:  wallClock{},
	}
	g := &pingworker.Gatherer{Log: zap.NewNop(), Checks: checks, Handler: h, Concurrency: 4}

	stats, err := g.Cycle(ctx, "it-cycle")
	require.NoError(t, err)
	assert.Equal(t, pingworker.CycleStats{Listed: 1, Processed: 1, Down: 1, Alerts: 1}, stats)

	rec := LoadRecord(t, sqlDB, cat, id)
	assert.Equal(t, string(check.StateDown), rec["state"])
	assert.Greater(t, rec["lastChecked"], 1000.0)

	ev, key, ok := ReadOneProto(t, cfg.KafkaBootstrap, topic, "it-"+RandID(), 20*time.Second, &structpb.Struct{})
	require.True(t, ok, "no alert event")
	assert.Equal(t, id, string(key))
	f := ev.GetFields()
	assert.Equal(t, "5551234567", f[kafkax.FieldPhone].GetStringValue())
	assert.Equal(t, id, f[kafkax.FieldCheckID].GetStringValue())
	assert.Contains(t, f[kafkax.FieldMessage].GetStringValue(), "is currently down")
}

package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/NordCoder/Uptimer/internal/config/ping-worker"
	"github.com/NordCoder/Uptimer/internal/obs"
	pingworker "github.com/NordCoder/Uptimer/internal/services/ping-worker"
	workerrepo "github.com/NordCoder/Uptimer/internal/services/ping-worker/repo"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

func main() {
	cfgPath := pflag.StringP("config", "c", "config/ping-worker.yaml", "path to the config file")
	pflag.Parse()

	root, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal(err)
	}

	// logger
	l, err := obs.NewLogger(cfg.Log.AsLoggerConfig(cfg.App))
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = l.Sync() }()

	// otel
	otelShutdown, err := obs.SetupOTel(root, cfg.OTEL.AsOTELConfig(cfg.App))
	if err != nil {
		l.Fatal("otel init", zap.Error(err))
	}
	defer func() { _ = otelShutdown(context.Background()) }()

	// store
	store, err := bootstrapStore(root, cfg.Store, l)
	if err != nil {
		l.Fatal("store init", zap.Error(err), zap.String("driver", cfg.Store.Driver))
	}
	defer store.close()

	// alerts
	alerts, err := bootstrapAlerts(root, cfg.Alert, l)
	if err != nil {
		l.Fatal("alert init", zap.Error(err), zap.String("driver", cfg.Alert.Driver))
	}
	defer alerts.close()

	// health + metrics
	srv, err := obs.BootstrapServers(root, cfg.Server.AsServerConfig(), store.ping, l)
	if err != nil {
		l.Fatal("servers init", zap.Error(err))
	}

	// wiring
	checks := workerrepo.Checks{S: store.Store, Category: cfg.Worker.Category}
	h := &pingworker.Handler{
		Log:    l,
		Checks: checks,
		Probe:  pingworker.NewProber(pingworker.NewHTTPClient(cfg.HTTP), cfg.HTTP.UserAgent),
		Alerts: alerts.AlertSender,
		Clock:  systemClock{},
	}
	g := &pingworker.Gatherer{Log: l, Checks: checks, Handler: h, Concurrency: cfg.Worker.Concurrency}
	runner := pingworker.NewRunner(l, g, cfg.Worker.Interval)

	// start
	errCh := make(chan error, 1)
	go func() { errCh <- runner.Run(root) }()
	l.Info("ping-worker started",
		zap.String("store", cfg.Store.Driver),
		zap.String("alert", cfg.Alert.Driver),
		zap.String("metrics", srv.HTTPAddr()),
	)

	// loop
	select {
	case <-root.Done():
		// Run returns only after the in-flight cycle has drained
		err = <-errCh
	case err = <-errCh:
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		l.Error("runner error", zap.Error(err))
	}

	shCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	_ = srv.Shutdown(shCtx)
	l.Info("bye")
}

package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/NordCoder/Uptimer/internal/config/sms-notifier"
	"github.com/NordCoder/Uptimer/internal/obs"
	"github.com/NordCoder/Uptimer/internal/repository/kafka"
	"github.com/NordCoder/Uptimer/internal/repository/twilio"
	notifier "github.com/NordCoder/Uptimer/internal/services/sms-notifier"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	cfgPath := pflag.StringP("config", "c", "config/sms-notifier.yaml", "path to the config file")
	pflag.Parse()

	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
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

	l.Info("starting sms-notifier",
		zap.Strings("brokers", cfg.In.Brokers),
		zap.String("topic", cfg.In.Topic),
		zap.String("group", cfg.In.GroupID),
	)

	// otel
	otelShutdown, err := obs.SetupOTel(rootCtx, cfg.OTEL.AsOTELConfig(cfg.App))
	if err != nil {
		l.Warn("otel init", zap.Error(err))
	} else {
		defer func() { _ = otelShutdown(context.Background()) }()
	}

	// health + metrics
	srv, err := obs.BootstrapServers(rootCtx, cfg.Server.AsServerConfig(), func(ctx context.Context) error {
		return kafka.Ping(ctx, cfg.In.Brokers)
	}, l)
	if err != nil {
		l.Fatal("servers init", zap.Error(err))
	}

	// kafka
	cons := kafka.BootstrapConsumer(rootCtx, cfg.In.AsConsumerConfig(), l)
	defer func() { _ = cons.Close() }()

	// wiring
	ctrl := &notifier.Controller{
		Log: l,
		Sub: cons,
		UC:  &notifier.Handler{Log: l, Out: twilio.New(cfg.Twilio).WithLogger(l)},
	}

	// start
	errCh := make(chan error, 1)
	go func() { errCh <- ctrl.Run(rootCtx) }()

	// loop
	select {
	case <-rootCtx.Done():
	case err = <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			l.Error("controller error", zap.Error(err))
		}
	}

	shCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	_ = srv.Shutdown(shCtx)
	l.Info("bye")
}

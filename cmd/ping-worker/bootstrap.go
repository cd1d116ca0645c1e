package main

import (
	"context"
	"fmt"

	config "github.com/NordCoder/Uptimer/internal/config/ping-worker"
	"github.com/NordCoder/Uptimer/internal/domain/check"
	"github.com/NordCoder/Uptimer/internal/domain/record"
	"github.com/NordCoder/Uptimer/internal/repository/filestore"
	"github.com/NordCoder/Uptimer/internal/repository/kafka"
	pg "github.com/NordCoder/Uptimer/internal/repository/postgres"
	s3infra "github.com/NordCoder/Uptimer/internal/repository/s3"
	"github.com/NordCoder/Uptimer/internal/repository/twilio"
	pingworker "github.com/NordCoder/Uptimer/internal/services/ping-worker"
	"go.uber.org/zap"
)

type storeHandle struct {
	record.Store
	ping  func(context.Context) error
	close func()
}

func bootstrapStore(ctx context.Context, cfg config.Store, l *zap.Logger) (*storeHandle, error) {
	switch cfg.Driver {
	case config.StoreFile:
		fs := filestore.NewOS(cfg.File.Dir)
		return &storeHandle{Store: fs, ping: fs.Ping, close: func() {}}, nil
	case config.StorePostgres:
		db, err := pg.New(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("db connect: %w", err)
		}
		return &storeHandle{Store: pg.NewRecordRepo(db), ping: db.Ping, close: db.Close}, nil
	case config.StoreS3:
		s, err := s3infra.New(ctx, cfg.S3, l)
		if err != nil {
			return nil, fmt.Errorf("s3 connect: %w", err)
		}
		return &storeHandle{Store: s, ping: s.Ping, close: func() {}}, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

type alertHandle struct {
	check.AlertSender
	close func()
}

func bootstrapAlerts(ctx context.Context, cfg config.Alert, l *zap.Logger) (*alertHandle, error) {
	switch cfg.Driver {
	case config.AlertLog:
		return &alertHandle{AlertSender: pingworker.LogAlerts{Log: l}, close: func() {}}, nil
	case config.AlertTwilio:
		return &alertHandle{AlertSender: twilio.New(cfg.Twilio).WithLogger(l), close: func() {}}, nil
	case config.AlertKafka:
		prod := kafka.BootstrapProducer(ctx, cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.Partitions, l)
		return &alertHandle{
			AlertSender: kafka.NewAlertEventsKafka(prod),
			close:       func() { _ = prod.Close() },
		}, nil
	default:
		return nil, fmt.Errorf("unknown alert driver %q", cfg.Driver)
	}
}

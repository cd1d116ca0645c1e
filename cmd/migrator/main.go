package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/NordCoder/Uptimer/internal/obs"
	"github.com/NordCoder/Uptimer/internal/repository/postgres/migrations"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	pflag.String("dsn", "", "postgres DSN (env DB_DSN)")
	pflag.String("command", "up", "goose command: up, down, status, reset")
	pflag.Parse()

	v := viper.New()
	_ = v.BindPFlags(pflag.CommandLine)
	_ = v.BindEnv("dsn", "DB_DSN")
	_ = v.BindEnv("command", "MIGRATE_COMMAND")

	l, err := obs.NewLogger(obs.LogConfig{Level: "info", App: "migrator"})
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = l.Sync() }()

	dsn := v.GetString("dsn")
	if dsn == "" {
		l.Fatal("DB_DSN is empty")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(zap.NewStdLog(l))
	if err := goose.SetDialect("postgres"); err != nil {
		l.Fatal("set dialect", zap.Error(err))
	}
	db, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		l.Fatal("open db", zap.Error(err))
	}
	defer db.Close()

	cmd := v.GetString("command")
	if err := goose.RunContext(ctx, cmd, db, "."); err != nil {
		l.Fatal("migrate", zap.String("command", cmd), zap.Error(err))
	}
	l.Info("migrations done", zap.String("command", cmd))
}

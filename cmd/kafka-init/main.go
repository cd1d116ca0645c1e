package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/NordCoder/Uptimer/internal/obs"
	"github.com/NordCoder/Uptimer/internal/repository/kafka"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	v := viper.New()
	v.SetEnvPrefix("kafka")
	v.AutomaticEnv()
	v.SetDefault("broker", "kafka:9092")
	v.SetDefault("topics", "uptimer.alerts")
	v.SetDefault("partitions", 1)
	v.SetDefault("rf", 1)

	l, err := obs.NewLogger(obs.LogConfig{Level: "info", App: "kafka-init"})
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = l.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	brokers := strings.Split(v.GetString("broker"), ",")
	for _, t := range strings.Split(v.GetString("topics"), ",") {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		err := kafka.EnsureTopic(ctx, brokers, kafka.TopicSpec{
			Name:              t,
			NumPartitions:     v.GetInt("partitions"),
			ReplicationFactor: v.GetInt("rf"),
			MaxWait:           30 * time.Second,
		}, l)
		if err != nil {
			l.Fatal("ensure topic", zap.String("topic", t), zap.Error(err))
		}
	}
	l.Info("kafka-init ok")
}

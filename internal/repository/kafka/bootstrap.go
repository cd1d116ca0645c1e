package kafka

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const topicWait = 5 * time.Second

// BootstrapConsumer makes sure the topic exists before joining the group.
func BootstrapConsumer(ctx context.Context, cfg *ConsumerConfig, logger *zap.Logger) *Consumer {
	_ = EnsureTopic(ctx, cfg.Brokers, TopicSpec{
		Name:              cfg.Topic,
		NumPartitions:     cfg.Partitions,
		ReplicationFactor: 1,
		MaxWait:           topicWait,
	}, logger)

	return NewConsumer(cfg).WithLogger(logger)
}

func BootstrapProducer(ctx context.Context, brokers []string, topic string, partitions int, logger *zap.Logger) *Producer {
	_ = EnsureTopic(ctx, brokers, TopicSpec{
		Name:              topic,
		NumPartitions:     partitions,
		ReplicationFactor: 1,
		MaxWait:           topicWait,
	}, logger)

	return NewProducer(ProducerConfig{Brokers: brokers, Topic: topic}).WithLogger(logger)
}

package sms_notifier_config

import (
	common "github.com/NordCoder/Uptimer/internal/config/common"
	kafkax "github.com/NordCoder/Uptimer/internal/repository/kafka"
	"github.com/NordCoder/Uptimer/internal/repository/twilio"
)

type KafkaIn struct {
	Brokers       []string `mapstructure:"brokers"`
	Topic         string   `mapstructure:"topic"`
	GroupID       string   `mapstructure:"group_id"`
	Partitions    int      `mapstructure:"partitions"`
	FromBeginning bool     `mapstructure:"from_beginning"`
}

func (k KafkaIn) AsConsumerConfig() *kafkax.ConsumerConfig {
	return &kafkax.ConsumerConfig{
		Brokers:       k.Brokers,
		GroupID:       k.GroupID,
		Topic:         k.Topic,
		Partitions:    k.Partitions,
		FromBeginning: k.FromBeginning,
	}
}

type Config struct {
	App    common.App    `mapstructure:"app"`
	Log    common.Log    `mapstructure:"log"`
	OTEL   common.OTEL   `mapstructure:"otel"`
	Server common.Server `mapstructure:"server"`
	In     KafkaIn       `mapstructure:"kafka_in"`
	Twilio twilio.Config `mapstructure:"twilio"`
}

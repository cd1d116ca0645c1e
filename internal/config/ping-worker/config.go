package ping_worker_config

import (
	"time"

	common "github.com/NordCoder/Uptimer/internal/config/common"
	pginfra "github.com/NordCoder/Uptimer/internal/repository/postgres"
	s3infra "github.com/NordCoder/Uptimer/internal/repository/s3"
	"github.com/NordCoder/Uptimer/internal/repository/twilio"
)

const (
	StoreFile     = "file"
	StorePostgres = "postgres"
	StoreS3       = "s3"

	AlertLog    = "log"
	AlertTwilio = "twilio"
	AlertKafka  = "kafka"
)

type Worker struct {
	Interval    time.Duration `mapstructure:"interval"`
	Concurrency int           `mapstructure:"concurrency"`
	Category    string        `mapstructure:"category"`
}

type HTTPProbe struct {
	DialTimeout     time.Duration `mapstructure:"dial_timeout"`
	UserAgent       string        `mapstructure:"user_agent"`
	FollowRedirects bool          `mapstructure:"follow_redirects"`
	VerifyTLS       bool          `mapstructure:"verify_tls"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
}

type FileStore struct {
	Dir string `mapstructure:"dir"`
}

type Store struct {
	Driver string         `mapstructure:"driver"`
	File   FileStore      `mapstructure:"file"`
	DB     pginfra.Config `mapstructure:"db"`
	S3     s3infra.Config `mapstructure:"s3"`
}

type KafkaOut struct {
	Brokers    []string `mapstructure:"brokers"`
	Topic      string   `mapstructure:"topic"`
	Partitions int      `mapstructure:"partitions"`
}

type Alert struct {
	Driver string        `mapstructure:"driver"`
	Twilio twilio.Config `mapstructure:"twilio"`
	Kafka  KafkaOut      `mapstructure:"kafka"`
}

type Config struct {
	App    common.App    `mapstructure:"app"`
	Log    common.Log    `mapstructure:"log"`
	OTEL   common.OTEL   `mapstructure:"otel"`
	Server common.Server `mapstructure:"server"`
	Worker Worker        `mapstructure:"worker"`
	HTTP   HTTPProbe     `mapstructure:"http"`
	Store  Store         `mapstructure:"store"`
	Alert  Alert         `mapstructure:"alert"`
}

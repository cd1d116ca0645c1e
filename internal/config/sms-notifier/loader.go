package sms_notifier_config

import (
	"fmt"
	"strings"

	common "github.com/NordCoder/Uptimer/internal/config/common"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/spf13/viper"
)

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := common.ReadFile(v, path); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	common.SetDefaults(v, "sms-notifier", ":8084", ":9084")

	v.SetDefault("kafka_in.brokers", []string{"localhost:9094"})
	v.SetDefault("kafka_in.topic", "uptimer.alerts")
	v.SetDefault("kafka_in.group_id", "sms-notifier")
	v.SetDefault("kafka_in.partitions", 1)
	v.SetDefault("kafka_in.from_beginning", false)

	v.SetDefault("twilio.base_url", "https://api.twilio.com")
	v.SetDefault("twilio.account_sid", "")
	v.SetDefault("twilio.auth_token", "")
	v.SetDefault("twilio.from_phone", "")
	v.SetDefault("twilio.timeout", "10s")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.App),
		validation.Field(&c.Log),
		validation.Field(&c.OTEL),
		validation.Field(&c.Server),
		validation.Field(&c.In, validation.By(func(interface{}) error {
			return validation.ValidateStruct(&c.In,
				validation.Field(&c.In.Brokers, validation.Required, validation.By(common.Brokers)),
				validation.Field(&c.In.Topic, validation.Required),
				validation.Field(&c.In.GroupID, validation.Required),
			)
		})),
		validation.Field(&c.Twilio, validation.By(func(interface{}) error {
			return validation.ValidateStruct(&c.Twilio,
				validation.Field(&c.Twilio.BaseURL, validation.Required, is.URL),
				validation.Field(&c.Twilio.AccountSID, validation.Required),
				validation.Field(&c.Twilio.AuthToken, validation.Required),
				validation.Field(&c.Twilio.FromPhone, validation.Required),
			)
		})),
	)
}

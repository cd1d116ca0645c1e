package ping_worker_config

import (
	"time"

	common "github.com/NordCoder/Uptimer/internal/config/common"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.App),
		validation.Field(&c.Log),
		validation.Field(&c.OTEL),
		validation.Field(&c.Server),
		validation.Field(&c.Worker),
		validation.Field(&c.HTTP),
		validation.Field(&c.Store),
		validation.Field(&c.Alert),
	)
}

func (w Worker) Validate() error {
	return validation.ValidateStruct(&w,
		validation.Field(&w.Interval, validation.Required, validation.Min(time.Second)),
		validation.Field(&w.Concurrency, validation.Required, validation.Min(1)),
		validation.Field(&w.Category, validation.Required),
	)
}

func (h HTTPProbe) Validate() error {
	return validation.ValidateStruct(&h,
		validation.Field(&h.DialTimeout, validation.Required, validation.Min(100*time.Millisecond)),
	)
}

func (s Store) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Driver, validation.Required, validation.In(StoreFile, StorePostgres, StoreS3)),
		validation.Field(&s.File, validation.When(s.Driver == StoreFile, validation.By(func(interface{}) error {
			return validation.Validate(s.File.Dir, validation.Required)
		}))),
		validation.Field(&s.DB, validation.When(s.Driver == StorePostgres, validation.By(func(interface{}) error {
			return validation.ValidateStruct(&s.DB,
				validation.Field(&s.DB.DSN, validation.Required),
			)
		}))),
		validation.Field(&s.S3, validation.When(s.Driver == StoreS3, validation.By(func(interface{}) error {
			return validation.ValidateStruct(&s.S3,
				validation.Field(&s.S3.Endpoint, validation.Required, validation.By(common.HostPort)),
				validation.Field(&s.S3.Bucket, validation.Required),
			)
		}))),
	)
}

func (a Alert) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Driver, validation.Required, validation.In(AlertLog, AlertTwilio, AlertKafka)),
		validation.Field(&a.Twilio, validation.When(a.Driver == AlertTwilio, validation.By(func(interface{}) error {
			return validation.ValidateStruct(&a.Twilio,
				validation.Field(&a.Twilio.BaseURL, validation.Required, is.URL),
				validation.Field(&a.Twilio.AccountSID, validation.Required),
				validation.Field(&a.Twilio.AuthToken, validation.Required),
				validation.Field(&a.Twilio.FromPhone, validation.Required),
			)
		}))),
		validation.Field(&a.Kafka, validation.When(a.Driver == AlertKafka, validation.By(func(interface{}) error {
			return validation.ValidateStruct(&a.Kafka,
				validation.Field(&a.Kafka.Brokers, validation.Required, validation.By(common.Brokers)),
				validation.Field(&a.Kafka.Topic, validation.Required),
			)
		}))),
	)
}

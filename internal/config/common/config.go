package common_config

import (
	"time"

	"github.com/NordCoder/Uptimer/internal/obs"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/viper"
)

const (
	EnvDev     = "dev"
	EnvStaging = "staging"
	EnvProd    = "prod"
)

type App struct {
	Name    string `mapstructure:"name"`
	Env     string `mapstructure:"env"`
	Version string `mapstructure:"version"`
}

type Log struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

type OTEL struct {
	Enable      bool    `mapstructure:"enable"`
	Endpoint    string  `mapstructure:"otlp_endpoint"`
	ServiceName string  `mapstructure:"service_name"`
	SampleRatio float64 `mapstructure:"sample_ratio"`
}

type Server struct {
	MetricsAddr    string        `mapstructure:"metrics_addr"`
	GRPCAddr       string        `mapstructure:"grpc_addr"`
	HealthInterval time.Duration `mapstructure:"health_interval"`
}

func (l Log) AsLoggerConfig(app App) obs.LogConfig {
	return obs.LogConfig{Level: l.Level, Pretty: l.Pretty, App: app.Name, Env: app.Env, Ver: app.Version}
}

func (o OTEL) AsOTELConfig(app App) obs.OTELConfig {
	name := o.ServiceName
	if name == "" {
		name = app.Name
	}
	return obs.OTELConfig{
		Enable:      o.Enable,
		Endpoint:    o.Endpoint,
		ServiceName: name,
		Version:     app.Version,
		Env:         app.Env,
		SampleRatio: o.SampleRatio,
	}
}

func (s Server) AsServerConfig() obs.ServerConfig {
	return obs.ServerConfig{MetricsAddr: s.MetricsAddr, GRPCAddr: s.GRPCAddr, HealthInterval: s.HealthInterval}
}

// SetDefaults registers the keys every service shares.
func SetDefaults(v *viper.Viper, service, metricsAddr, grpcAddr string) {
	v.SetDefault("app.name", service)
	v.SetDefault("app.env", EnvDev)
	v.SetDefault("app.version", "dev")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	v.SetDefault("otel.enable", false)
	v.SetDefault("otel.service_name", service)
	v.SetDefault("otel.sample_ratio", 1.0)
	v.SetDefault("otel.otlp_endpoint", "localhost:4317")

	v.SetDefault("server.metrics_addr", metricsAddr)
	v.SetDefault("server.grpc_addr", grpcAddr)
	v.SetDefault("server.health_interval", "5s")
}

func (a App) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Name, validation.Required),
		validation.Field(&a.Env, validation.Required, validation.In(EnvDev, EnvStaging, EnvProd)),
	)
}

func (l Log) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Level, validation.Required, validation.In("debug", "info", "warn", "error")),
	)
}

func (o OTEL) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Endpoint, validation.When(o.Enable, validation.Required)),
		validation.Field(&o.SampleRatio, validation.Min(0.0), validation.Max(1.0)),
	)
}

func (s Server) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.MetricsAddr, validation.Required, validation.By(HostPort)),
		validation.Field(&s.GRPCAddr, validation.Required, validation.By(HostPort)),
		validation.Field(&s.HealthInterval, validation.Required, validation.Min(100*time.Millisecond)),
	)
}

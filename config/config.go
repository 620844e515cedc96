package config

import (
	"time"

	"github.com/kbukum/depin/logger"
	"github.com/kbukum/depin/validation"
)

// Environments accepted in Config.Environment.
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Config is the runtime configuration of a depin host.
//
// Hosts with their own settings embed it:
//
//	type MyConfig struct {
//	    config.Config `yaml:",inline" mapstructure:",squash"`
//	    Database DatabaseConfig `yaml:"database" mapstructure:"database"`
//	}
type Config struct {
	Name        string          `yaml:"name" mapstructure:"name" validate:"required"`
	Environment string          `yaml:"environment" mapstructure:"environment" validate:"oneof=development staging production"`
	Version     string          `yaml:"version" mapstructure:"version"`
	Debug       bool            `yaml:"debug" mapstructure:"debug"`
	Logging     logger.Config   `yaml:"logging" mapstructure:"logging"`
	Registry    RegistryConfig  `yaml:"registry" mapstructure:"registry"`
	Telemetry   TelemetryConfig `yaml:"telemetry" mapstructure:"telemetry"`
}

// RegistryConfig configures the service registry.
type RegistryConfig struct {
	// DefaultScope is the scope of registrations that do not set one.
	DefaultScope string `yaml:"default_scope" mapstructure:"default_scope" validate:"oneof=container transient"`
}

// TelemetryConfig configures OTLP export of registry metrics and traces.
type TelemetryConfig struct {
	Enabled    bool          `yaml:"enabled" mapstructure:"enabled"`
	Endpoint   string        `yaml:"endpoint" mapstructure:"endpoint" validate:"required_if=Enabled true"`
	Insecure   bool          `yaml:"insecure" mapstructure:"insecure"`
	Interval   time.Duration `yaml:"interval" mapstructure:"interval"`
	SampleRate float64       `yaml:"sample_rate" mapstructure:"sample_rate" validate:"gte=0,lte=1"`
}

// Defaults for unset fields.
const (
	DefaultScope             = "container"
	DefaultTelemetryEndpoint = "localhost:4318"
	DefaultTelemetryInterval = 15 * time.Second
)

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = EnvDevelopment
	}
	// Propagate service name into logging so Init() uses the right tag.
	if c.Logging.ServiceName == "" && c.Name != "" {
		c.Logging.ServiceName = c.Name
	}
	c.Logging.ApplyDefaults()
	if c.Environment == EnvDevelopment {
		c.Debug = true
	}

	if c.Registry.DefaultScope == "" {
		c.Registry.DefaultScope = DefaultScope
	}

	if c.Telemetry.Endpoint == "" {
		c.Telemetry.Endpoint = DefaultTelemetryEndpoint
	}
	if c.Telemetry.Interval <= 0 {
		c.Telemetry.Interval = DefaultTelemetryInterval
	}
	if c.Telemetry.SampleRate == 0 {
		c.Telemetry.SampleRate = 1.0
	}
}

// Validate checks the struct tags and the logging section. Errors are
// *errors.AppError with code INVALID_CONFIG.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	return validation.New().
		Merge("logging", c.Logging.Validate()).
		Validate()
}

// IsProduction reports whether the host runs in production.
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

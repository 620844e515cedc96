package logger

import "github.com/kbukum/depin/validation"

// Accepted values of Config.Level, Config.Format and Config.Output.
var (
	Levels  = []string{"trace", "debug", "info", "warn", "error", "fatal"}
	Formats = []string{"json", "console", "text", FormatPretty}
	Outputs = []string{"stdout", "stderr"}
)

// Config contains logging configuration.
type Config struct {
	Level     string `yaml:"level" mapstructure:"level" validate:"omitempty,oneof=trace debug info warn error fatal"`
	Format    string `yaml:"format" mapstructure:"format" validate:"omitempty,oneof=json console text pretty"`
	Output    string `yaml:"output" mapstructure:"output" validate:"omitempty,oneof=stdout stderr"`
	NoColor   bool   `yaml:"no_color" mapstructure:"no_color"`
	Timestamp bool   `yaml:"timestamp" mapstructure:"timestamp"`
	Caller    bool   `yaml:"caller" mapstructure:"caller"`
	// ServiceName tags console output; filled from the service config when empty.
	ServiceName string `yaml:"service_name" mapstructure:"service_name"`
}

// ApplyDefaults fills unset fields and turns timestamps on.
func (c *Config) ApplyDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = "console"
	}
	if c.Output == "" {
		c.Output = "stdout"
	}
	c.Timestamp = true
}

// Validate checks level, format and output against the accepted values.
// Output may be empty and means stdout.
func (c *Config) Validate() error {
	v := validation.New().
		OneOf("level", c.Level, Levels...).
		OneOf("format", c.Format, Formats...)
	if c.Output != "" {
		v.OneOf("output", c.Output, Outputs...)
	}
	return v.Validate()
}

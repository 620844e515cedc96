package observability

import "time"

// Config configures the OTLP exporters and the resource they report.
type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	// Endpoint is the OTLP HTTP collector as host:port.
	Endpoint string
	Insecure bool
	// Interval is the metric export period.
	Interval time.Duration
	// SampleRate is the fraction of traces kept, from 0 to 1.
	SampleRate float64
}

// DefaultConfig returns a config for a local collector.
func DefaultConfig(serviceName string) Config {
	return Config{
		ServiceName:    serviceName,
		ServiceVersion: "dev",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
		SampleRate:     1.0,
	}
}

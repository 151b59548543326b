package telemetry

import "time"

// Config holds OpenTelemetry tracing configuration.
type Config struct {
	// Enabled turns on span export. When false every span is a no-op.
	Enabled bool

	// ServiceName is reported as service.name on every span.
	ServiceName string

	// ServiceVersion is reported as service.version.
	ServiceVersion string

	// Endpoint is the OTLP gRPC collector address (e.g., "localhost:4317").
	Endpoint string

	// Insecure disables TLS towards the collector.
	Insecure bool

	// SampleRate is the fraction of traces kept (0.0 to 1.0).
	SampleRate float64

	// ShutdownTimeout bounds the final flush of buffered spans.
	ShutdownTimeout time.Duration
}

// DefaultConfig returns tracing disabled with sane collector defaults.
func DefaultConfig() Config {
	return Config{
		Enabled:         false,
		ServiceName:     "fedctl",
		ServiceVersion:  "dev",
		Endpoint:        "localhost:4317",
		Insecure:        true,
		SampleRate:      1.0,
		ShutdownTimeout: 5 * time.Second,
	}
}

// ProfilingConfig configures Pyroscope continuous profiling for long-running
// processes such as the stub admin server.
type ProfilingConfig struct {
	Enabled        bool
	ServiceName    string
	ServiceVersion string

	// Endpoint is the Pyroscope server URL (e.g., "http://localhost:4040").
	Endpoint string

	// ProfileTypes lists the profiles to collect: cpu, alloc_objects,
	// alloc_space, inuse_objects, inuse_space, goroutines.
	ProfileTypes []string
}

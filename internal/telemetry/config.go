package telemetry

// Config holds configuration for the tracer
type Config struct {
	ServiceName    string
	ServiceVersion string

	// Enabled determines whether tracing is enabled.
	// When false, a noop tracer is used.
	Enabled bool

	// Endpoint is the OTLP/HTTP collector endpoint (host:port).
	// If empty, spans are recorded but not exported.
	Endpoint string

	// SampleRate is the fraction of traces to sample (0.0 to 1.0)
	SampleRate float64
}

// DefaultConfig disables tracing; a CLI run has nobody to report to unless
// a collector is configured.
func DefaultConfig() Config {
	return Config{
		ServiceName:    "treecheck",
		ServiceVersion: "dev",
		SampleRate:     1.0,
	}
}

// CollectorConfig enables tracing and exports every span to endpoint.
func CollectorConfig(endpoint string) Config {
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.Endpoint = endpoint
	return cfg
}

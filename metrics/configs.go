package metrics

// Config holds settings for the metrics endpoint.
type Config struct {
	// Address is the listen address of the /metrics HTTP server, e.g. ":9090".
	Address string `yaml:"address" env:"METRICS_ADDRESS"`

	// ServiceName is applied to every metric as a constant "service" label.
	ServiceName string `yaml:"service_name" env:"METRICS_SERVICE_NAME"`

	// EnableDefaultCollectors registers the Go runtime, process, and build
	// info collectors alongside the application metrics.
	EnableDefaultCollectors bool `yaml:"enable_default_collectors" env:"METRICS_DEFAULT_COLLECTORS"`
}

// DefaultConfig provides sensible defaults for most use cases.
func DefaultConfig() Config {
	return Config{
		Address:                 ":9090",
		ServiceName:             "schemaforge",
		EnableDefaultCollectors: true,
	}
}

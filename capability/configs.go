package capability

import "time"

// Config holds detection and caching behavior settings.
type Config struct {
	// TTL is how long a cached profile stays valid. Entries older than this
	// are treated as absent. Defaults to 15 minutes.
	TTL time.Duration `yaml:"ttl" env:"CAPABILITY_TTL"`

	// ProbeIndexPrefix prefixes the transient index names created by probes
	// so operators can recognize (and, after a crash, sweep) them.
	ProbeIndexPrefix string `yaml:"probe_index_prefix" env:"CAPABILITY_PROBE_PREFIX"`

	// VectorDimensionTiers are the dimensionalities tried by the vector probe,
	// highest first. The first accepted tier becomes MaxVectorDimensions.
	VectorDimensionTiers []int `yaml:"vector_dimension_tiers"`

	// ProbeAnalyzers are the custom analyzer names offered to the analyzer
	// probe.
	ProbeAnalyzers []string `yaml:"probe_analyzers"`
}

// DefaultConfig provides sensible defaults for most use cases.
func DefaultConfig() Config {
	return Config{
		TTL:                  15 * time.Minute,
		ProbeIndexPrefix:     "schemaforge-probe-",
		VectorDimensionTiers: []int{3072, 1536, 1024},
		ProbeAnalyzers:       []string{"keyword_lowercase"},
	}
}

// WithTTL overrides the cache TTL.
func (c Config) WithTTL(d time.Duration) Config {
	c.TTL = d
	return c
}

// WithProbeIndexPrefix overrides the transient index name prefix.
func (c Config) WithProbeIndexPrefix(p string) Config {
	c.ProbeIndexPrefix = p
	return c
}

package negotiate

// Config holds the engine's loop bounds and fallbacks.
type Config struct {
	// MaxIterations is the hard ceiling on probe iterations per negotiation,
	// enforced independently of the convergence check. Defaults to 5, which
	// covers one iteration per distinct rejection kind with headroom.
	MaxIterations int `yaml:"max_iterations" env:"NEGOTIATE_MAX_ITERATIONS"`

	// FallbackAnalyzer is substituted for analyzers the service does not
	// recognize. A field already on the fallback that is rejected again is
	// dropped instead.
	FallbackAnalyzer string `yaml:"fallback_analyzer" env:"NEGOTIATE_FALLBACK_ANALYZER"`
}

// DefaultConfig provides sensible defaults for most use cases.
func DefaultConfig() Config {
	return Config{
		MaxIterations:    5,
		FallbackAnalyzer: "standard",
	}
}

// WithMaxIterations overrides the iteration ceiling.
func (c Config) WithMaxIterations(n int) Config {
	c.MaxIterations = n
	return c
}

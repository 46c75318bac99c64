package remote

import "time"

// Config holds connection and retry settings for the HTTP client.
//
// Example (builder style):
//
//	cfg := remote.FromEndpoint("https://search.example.net").
//	    WithAPIKey(os.Getenv("SEARCH_API_KEY")).
//	    WithAPIVersion("2024-07-01")
type Config struct {
	// Endpoint is the base URL of the search service, e.g.
	// "https://search.example.net".
	Endpoint string `yaml:"endpoint" env:"SEARCH_ENDPOINT"`

	// APIKey authenticates requests. Sent as the api-key header.
	APIKey string `yaml:"api_key" env:"SEARCH_API_KEY"`

	// APIVersion is the service API version to speak, sent as the
	// api-version query parameter on every request.
	APIVersion string `yaml:"api_version" env:"SEARCH_API_VERSION"`

	// Timeout bounds each individual HTTP request both ways. Timeouts apply
	// per remote call, never per negotiation.
	Timeout time.Duration `yaml:"timeout" env:"SEARCH_TIMEOUT"`

	// MaxRetries bounds how many times a transient fault is retried before it
	// escalates.
	MaxRetries int `yaml:"max_retries" env:"SEARCH_MAX_RETRIES"`

	// InitialBackoff is the first retry delay; subsequent delays grow
	// exponentially up to MaxBackoff.
	InitialBackoff time.Duration `yaml:"initial_backoff" env:"SEARCH_INITIAL_BACKOFF"`
	MaxBackoff     time.Duration `yaml:"max_backoff" env:"SEARCH_MAX_BACKOFF"`
}

// DefaultConfig provides sensible defaults for most use cases.
func DefaultConfig() *Config {
	return &Config{
		APIVersion:     "2024-07-01",
		Timeout:        15 * time.Second,
		MaxRetries:     3,
		InitialBackoff: 250 * time.Millisecond,
		MaxBackoff:     5 * time.Second,
	}
}

// FromEndpoint returns a default config pre-filled with a specific endpoint.
func FromEndpoint(url string) *Config {
	cfg := DefaultConfig()
	cfg.Endpoint = url
	return cfg
}

// Builder-style helpers (optional, ergonomic)
func (c *Config) WithAPIKey(key string) *Config {
	c.APIKey = key
	return c
}

func (c *Config) WithAPIVersion(v string) *Config {
	c.APIVersion = v
	return c
}

func (c *Config) WithTimeout(d time.Duration) *Config {
	c.Timeout = d
	return c
}

func (c *Config) WithMaxRetries(n int) *Config {
	c.MaxRetries = n
	return c
}

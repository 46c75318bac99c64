package cliopt

import (
	"flag"
	"os"
)

// GlobalOptions are parsed once at the CLI root and passed to subcommands.
//
// NOTE: This is a separate package to avoid import cycles between the root
// command router and per-command code.
type GlobalOptions struct {
	Endpoint   string
	APIKey     string
	APIVersion string

	CacheDir string
	LogLevel string
	Format   string
}

func DefaultGlobalOptions() GlobalOptions {
	return GlobalOptions{
		Endpoint:   os.Getenv("SEARCH_ENDPOINT"),
		APIKey:     os.Getenv("SEARCH_API_KEY"),
		APIVersion: "2024-07-01",
		CacheDir:   defaultCacheDir(),
		LogLevel:   "warning",
		Format:     "pretty",
	}
}

func BindGlobalFlags(fs *flag.FlagSet, g *GlobalOptions) {
	fs.StringVar(&g.Endpoint, "endpoint", g.Endpoint, "search service base URL (or SEARCH_ENDPOINT)")
	fs.StringVar(&g.APIKey, "api-key", g.APIKey, "search service API key (or SEARCH_API_KEY)")
	fs.StringVar(&g.APIVersion, "api-version", g.APIVersion, "service API version")

	fs.StringVar(&g.CacheDir, "cache-dir", g.CacheDir, "directory for cached capability profiles")
	fs.StringVar(&g.LogLevel, "log-level", g.LogLevel, "log level: debug|info|warning|error")
	fs.StringVar(&g.Format, "format", g.Format, "output format: pretty|json")
}

func defaultCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return dir + string(os.PathSeparator) + "schemaforge"
	}
	return ".schemaforge-cache"
}

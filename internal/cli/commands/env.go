package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/schemaforge/schemaforge/capability"
	"github.com/schemaforge/schemaforge/internal/cliopt"
	"github.com/schemaforge/schemaforge/logger"
	"github.com/schemaforge/schemaforge/remote"
)

// env bundles the clients every command needs. Built once per invocation
// from the global options.
type env struct {
	log *logger.Logger
	svc remote.Service
}

func newEnv(g cliopt.GlobalOptions) (*env, error) {
	if g.Endpoint == "" {
		return nil, fmt.Errorf("no endpoint configured (use --endpoint or SEARCH_ENDPOINT)")
	}

	logCfg := logger.DefaultConfig()
	logCfg.Level = g.LogLevel
	log := logger.NewLoggerClient(logCfg)

	cfg := remote.FromEndpoint(g.Endpoint).
		WithAPIKey(g.APIKey).
		WithAPIVersion(g.APIVersion)
	svc, err := remote.NewClient(cfg, log)
	if err != nil {
		return nil, err
	}
	return &env{log: log, svc: svc}, nil
}

// serviceKey identifies the deployment in the profile cache.
func (e *env) serviceKey(g cliopt.GlobalOptions) string {
	return g.Endpoint
}

// loadProfile returns the capability profile for the configured deployment,
// reading the on-disk cache first and probing only on a miss. refresh forces
// a fresh probe run.
func (e *env) loadProfile(ctx context.Context, g cliopt.GlobalOptions, refresh bool) (capability.Profile, error) {
	capCfg := capability.DefaultConfig()

	store, err := capability.NewFileStore(g.CacheDir)
	if err != nil {
		return capability.Profile{}, err
	}

	key := e.serviceKey(g)
	if !refresh {
		if p, found, err := store.Load(ctx, key); err == nil && found {
			fresh := time.Since(p.DetectedAt) < capCfg.TTL
			if fresh && p.APIVersion == e.svc.APIVersion() {
				return p, nil
			}
		}
	}

	detector := capability.NewDetector(e.svc, capCfg, e.log)
	p, err := detector.Detect(ctx)
	if err != nil {
		return capability.Profile{}, err
	}
	if err := store.Save(ctx, key, p); err != nil {
		e.log.Warn("failed to cache capability profile", err)
	}
	return p, nil
}

func printJSON(w io.Writer, v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(w, string(b))
}

func fail(err error) int {
	fmt.Fprintln(os.Stderr, err)
	return 1
}

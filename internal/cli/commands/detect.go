package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/schemaforge/schemaforge/internal/cliopt"
)

func RunDetect(g cliopt.GlobalOptions, argv []string) int {
	fs := flag.NewFlagSet("detect", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var refresh bool
	fs.BoolVar(&refresh, "refresh", false, "ignore the cached profile and probe again")
	if err := fs.Parse(argv); err != nil {
		return 2
	}

	e, err := newEnv(g)
	if err != nil {
		return fail(err)
	}

	profile, err := e.loadProfile(context.Background(), g, refresh)
	if err != nil {
		return fail(err)
	}

	if g.Format == "json" {
		printJSON(os.Stdout, profile)
		return 0
	}

	fmt.Printf("Capability profile for %s\n", g.Endpoint)
	fmt.Printf("  API version:           %s\n", profile.APIVersion)
	fmt.Printf("  Max vector dimensions: %d\n", profile.MaxVectorDimensions)
	fmt.Printf("  Semantic search:       %v\n", profile.SemanticSearchSupported)
	if len(profile.CustomAnalyzers) > 0 {
		fmt.Printf("  Custom analyzers:      %s\n", strings.Join(profile.CustomAnalyzers, ", "))
	} else {
		fmt.Printf("  Custom analyzers:      (none)\n")
	}
	fmt.Printf("  Detected at:           %s\n", profile.DetectedAt.Format("2006-01-02 15:04:05 MST"))
	return 0
}

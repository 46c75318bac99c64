package commands

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/schemaforge/schemaforge/internal/cliopt"
	"github.com/schemaforge/schemaforge/schema"
	"github.com/schemaforge/schemaforge/synth"
)

func RunGenerate(g cliopt.GlobalOptions, argv []string) int {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var features, name, fieldsFile, out string
	fs.StringVar(&features, "features", "", "comma-separated feature tags (required)")
	fs.StringVar(&name, "name", "", "index name (required)")
	fs.StringVar(&fieldsFile, "fields", "", "JSON file with extra custom field descriptors")
	fs.StringVar(&out, "out", "", "write the schema to this file instead of stdout")
	if err := fs.Parse(argv); err != nil {
		return 2
	}
	if features == "" || name == "" {
		fmt.Fprintln(os.Stderr, "missing --features or --name")
		return 2
	}

	tags, err := schema.ParseFeatures(features)
	if err != nil {
		return fail(err)
	}

	req := schema.FeatureRequest{Features: tags}
	if fieldsFile != "" {
		data, err := os.ReadFile(fieldsFile)
		if err != nil {
			return fail(err)
		}
		if err := json.Unmarshal(data, &req.CustomFields); err != nil {
			return fail(fmt.Errorf("parsing %s: %w", fieldsFile, err))
		}
	}

	e, err := newEnv(g)
	if err != nil {
		return fail(err)
	}
	profile, err := e.loadProfile(context.Background(), g, false)
	if err != nil {
		return fail(err)
	}

	draft, err := synth.Synthesize(req, profile, name)
	if err != nil {
		return fail(err)
	}

	if out != "" {
		if err := schema.SaveFile(out, draft); err != nil {
			return fail(err)
		}
		fmt.Printf("Wrote %s (%d fields)\n", out, len(draft.Fields))
		return 0
	}
	printJSON(os.Stdout, draft)
	return 0
}

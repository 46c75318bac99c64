package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/schemaforge/schemaforge/capability"
	"github.com/schemaforge/schemaforge/internal/cliopt"
	"github.com/schemaforge/schemaforge/schema"
	"github.com/schemaforge/schemaforge/update"
)

func RunUpdate(g cliopt.GlobalOptions, argv []string) int {
	fs := flag.NewFlagSet("update", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var name, schemaFile, features string
	var allowUnsafe, dryRun bool
	fs.StringVar(&name, "name", "", "index name (required)")
	fs.StringVar(&schemaFile, "schema", "", "candidate schema JSON file")
	fs.StringVar(&features, "features", "", "comma-separated feature tags to add to the deployed schema")
	fs.BoolVar(&allowUnsafe, "allow-unsafe", false, "apply even when the plan contains unsafe changes")
	fs.BoolVar(&dryRun, "dry-run", false, "classify the changes without applying them")
	if err := fs.Parse(argv); err != nil {
		return 2
	}
	if name == "" {
		fmt.Fprintln(os.Stderr, "missing --name")
		return 2
	}
	if (schemaFile == "") == (features == "") {
		fmt.Fprintln(os.Stderr, "exactly one of --schema or --features is required")
		return 2
	}

	e, err := newEnv(g)
	if err != nil {
		return fail(err)
	}
	ctx := context.Background()

	var candidate *schema.SchemaDescriptor
	if schemaFile != "" {
		candidate, err = schema.LoadFile(schemaFile)
		if err != nil {
			return fail(err)
		}
	} else {
		tags, err := schema.ParseFeatures(features)
		if err != nil {
			return fail(err)
		}
		// Seed the planner's cache from the on-disk profile so repeated
		// updates do not re-probe the service.
		profile, err := e.loadProfile(ctx, g, false)
		if err != nil {
			return fail(err)
		}
		capCfg := capability.DefaultConfig()
		cache := capability.NewCache(capCfg)
		cache.Put(e.serviceKey(g), profile)
		planner := update.NewPlanner(e.svc,
			capability.NewDetector(e.svc, capCfg, e.log), cache)
		candidate, err = planner.AddFeatures(ctx, e.serviceKey(g), name, tags)
		if err != nil {
			return fail(err)
		}
	}

	if dryRun {
		existing, err := e.svc.GetIndexSchema(ctx, name)
		if err != nil {
			return fail(err)
		}
		plan := update.Classify(existing, candidate)
		printPlan(g, plan)
		return 0
	}

	applier := update.NewApplier(e.svc, e.log)
	plan, err := applier.Apply(ctx, name, candidate, update.ApplyOptions{AllowUnsafe: allowUnsafe})
	if err != nil {
		var unsafeErr *update.UnsafeUpdateError
		if errors.As(err, &unsafeErr) {
			printPlan(g, unsafeErr.Plan)
			fmt.Fprintln(os.Stderr, "refusing unsafe update (use --allow-unsafe to override)")
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		return 1
	}

	printPlan(g, plan)
	fmt.Printf("Updated %s\n", name)
	return 0
}

func printPlan(g cliopt.GlobalOptions, plan *update.SafeUpdatePlan) {
	if g.Format == "json" {
		printJSON(os.Stdout, plan)
		return
	}
	for _, ch := range plan.Changes {
		marker := "safe"
		if !ch.Safe {
			marker = "UNSAFE"
			if ch.RequiresReindex {
				marker = "UNSAFE+reindex"
			}
		}
		fmt.Printf("  %-14s %-8s %-30s %s\n", marker, ch.Kind, ch.Element, ch.Rationale)
	}
	if plan.OverrideApplied {
		fmt.Println("  (unsafe changes applied by override)")
	}
}

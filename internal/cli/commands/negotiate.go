package commands

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/schemaforge/schemaforge/internal/cliopt"
	"github.com/schemaforge/schemaforge/negotiate"
	"github.com/schemaforge/schemaforge/schema"
)

func RunNegotiate(g cliopt.GlobalOptions, argv []string) int {
	fs := flag.NewFlagSet("negotiate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var schemaFile, name, out string
	var create bool
	fs.StringVar(&schemaFile, "schema", "", "draft schema JSON file (required)")
	fs.StringVar(&name, "name", "", "index name (defaults to the schema's name)")
	fs.BoolVar(&create, "create", false, "keep the index once accepted instead of tearing it down")
	fs.StringVar(&out, "out", "", "write the accepted schema to this file")
	if err := fs.Parse(argv); err != nil {
		return 2
	}
	if schemaFile == "" {
		fmt.Fprintln(os.Stderr, "missing --schema")
		return 2
	}

	draft, err := schema.LoadFile(schemaFile)
	if err != nil {
		return fail(err)
	}

	e, err := newEnv(g)
	if err != nil {
		return fail(err)
	}
	profile, err := e.loadProfile(context.Background(), g, false)
	if err != nil {
		return fail(err)
	}

	engine := negotiate.NewEngine(e.svc, negotiate.DefaultConfig(), e.log)
	result, err := engine.Negotiate(context.Background(), draft, name, negotiate.Options{
		CreateIndex:         create,
		MaxVectorDimensions: profile.MaxVectorDimensions,
	})
	if err != nil {
		if result != nil {
			printNegotiation(g, result)
		}
		return fail(err)
	}

	printNegotiation(g, result)
	if out != "" {
		if err := schema.SaveFile(out, result.FinalSchema); err != nil {
			return fail(err)
		}
		fmt.Printf("Wrote %s\n", out)
	}
	return 0
}

func printNegotiation(g cliopt.GlobalOptions, result *negotiate.Result) {
	if g.Format == "json" {
		printJSON(os.Stdout, result)
		return
	}

	if result.Converged {
		fmt.Printf("Converged after %d iteration(s)\n", result.Iterations)
	} else {
		fmt.Printf("Failed after %d iteration(s)\n", result.Iterations)
	}
	for _, adj := range result.Adjustments {
		target := adj.TargetField
		if target == "" {
			target = "(schema)"
		}
		fmt.Printf("  %-22s %-16s %s -> %s\n", adj.Kind, target, adj.Before, adj.After)
		if adj.Reason != "" {
			fmt.Printf("  %-22s %-16s reason: %s\n", "", "", adj.Reason)
		}
	}
	for _, rej := range result.LastDiagnostic {
		fmt.Printf("  unresolved: %s at %q: %s\n", rej.ReasonCode, rej.ElementPath, rej.Message)
	}
}

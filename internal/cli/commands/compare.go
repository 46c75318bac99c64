package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/schemaforge/schemaforge/diff"
	"github.com/schemaforge/schemaforge/internal/cliopt"
	"github.com/schemaforge/schemaforge/schema"
)

func RunCompare(g cliopt.GlobalOptions, argv []string) int {
	fs := flag.NewFlagSet("compare", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var a, b string
	fs.StringVar(&a, "a", "", "first schema: a JSON file or index:<name> (required)")
	fs.StringVar(&b, "b", "", "second schema: a JSON file or index:<name> (required)")
	if err := fs.Parse(argv); err != nil {
		return 2
	}
	if a == "" || b == "" {
		fmt.Fprintln(os.Stderr, "missing --a or --b")
		return 2
	}

	sa, err := resolveSchema(g, a)
	if err != nil {
		return fail(err)
	}
	sb, err := resolveSchema(g, b)
	if err != nil {
		return fail(err)
	}

	d := diff.Diff(sa, sb)
	if g.Format == "json" {
		printJSON(os.Stdout, d)
		return 0
	}

	if d.Empty() {
		fmt.Println("Schemas are equivalent")
		return 0
	}
	printDifference(a, b, d)
	return 0
}

// resolveSchema loads a schema from a file path or, with the index: prefix,
// from the deployed index of that name.
func resolveSchema(g cliopt.GlobalOptions, ref string) (*schema.SchemaDescriptor, error) {
	if name, ok := strings.CutPrefix(ref, "index:"); ok {
		e, err := newEnv(g)
		if err != nil {
			return nil, err
		}
		return e.svc.GetIndexSchema(context.Background(), name)
	}
	return schema.LoadFile(ref)
}

func printDifference(labelA, labelB string, d diff.Difference) {
	for _, f := range d.FieldsOnlyInA {
		fmt.Printf("  field %-28s only in %s\n", f, labelA)
	}
	for _, f := range d.FieldsOnlyInB {
		fmt.Printf("  field %-28s only in %s\n", f, labelB)
	}
	for _, delta := range d.FieldDeltas {
		fmt.Printf("  field %s: %s %s -> %s\n", delta.FieldName, delta.Attribute, delta.A, delta.B)
	}
	for _, p := range d.ProfilesOnlyInA {
		fmt.Printf("  vector profile %-20s only in %s\n", p, labelA)
	}
	for _, p := range d.ProfilesOnlyInB {
		fmt.Printf("  vector profile %-20s only in %s\n", p, labelB)
	}
	for _, s := range d.ScoringOnlyInA {
		fmt.Printf("  scoring profile %-18s only in %s\n", s, labelA)
	}
	for _, s := range d.ScoringOnlyInB {
		fmt.Printf("  scoring profile %-18s only in %s\n", s, labelB)
	}
	for _, an := range d.AnalyzersOnlyInA {
		fmt.Printf("  analyzer %-25s only in %s\n", an, labelA)
	}
	for _, an := range d.AnalyzersOnlyInB {
		fmt.Printf("  analyzer %-25s only in %s\n", an, labelB)
	}
	if d.SemanticConfigA != "" || d.SemanticConfigB != "" {
		fmt.Printf("  semantic config: %s vs %s\n", orNone(d.SemanticConfigA), orNone(d.SemanticConfigB))
	}
	if len(d.FeatureSummary) > 0 {
		tags := make([]string, 0, len(d.FeatureSummary))
		for _, t := range d.FeatureSummary {
			tags = append(tags, string(t))
		}
		fmt.Printf("  features affected: %s\n", strings.Join(tags, ", "))
	}
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

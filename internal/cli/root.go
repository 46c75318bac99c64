package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/schemaforge/schemaforge/internal/cli/commands"
	"github.com/schemaforge/schemaforge/internal/cliopt"
)

// Execute runs the CLI and returns an exit code.
func Execute(argv []string) int {
	globalFS := flag.NewFlagSet("schemaforge", flag.ContinueOnError)
	globalFS.SetOutput(os.Stderr)
	g := cliopt.DefaultGlobalOptions()
	cliopt.BindGlobalFlags(globalFS, &g)

	if err := globalFS.Parse(argv); err != nil {
		// flag package already printed the error
		return 2
	}

	args := globalFS.Args()
	if len(args) == 0 {
		PrintRootHelp(os.Stdout)
		return 0
	}

	verb := args[0]
	rest := args[1:]

	switch verb {
	case "--help", "-h", "help":
		PrintRootHelp(os.Stdout)
		return 0
	case "detect":
		return commands.RunDetect(g, rest)
	case "generate":
		return commands.RunGenerate(g, rest)
	case "negotiate":
		return commands.RunNegotiate(g, rest)
	case "update":
		return commands.RunUpdate(g, rest)
	case "compare":
		return commands.RunCompare(g, rest)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", verb)
		PrintRootHelp(os.Stderr)
		return 2
	}
}

package cli

import (
	"fmt"
	"io"
)

func PrintRootHelp(w io.Writer) {
	fmt.Fprintln(w, `schemaforge: capability-aware schema negotiation for managed search services

USAGE
  schemaforge [global flags] <command> [args]

GLOBAL FLAGS
  --endpoint <url>        search service base URL (or SEARCH_ENDPOINT)
  --api-key <key>         API key (or SEARCH_API_KEY)
  --api-version <v>       service API version
  --cache-dir <dir>       capability profile cache directory
  --log-level <level>     debug|info|warning|error
  --format pretty|json

COMMANDS
  detect      probe the service and print its capability profile
  generate    synthesize a draft schema from feature tags
  negotiate   negotiate a schema against the service until it is accepted
  update      apply a safe additive update to an existing index
  compare     diff two schemas (files or deployed indexes)

Run "schemaforge <command> --help" for details.`)
}

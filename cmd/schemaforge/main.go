package main

import (
	"os"

	"github.com/schemaforge/schemaforge/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:]))
}

// Package main is the pew command: feast propers and service sheets from
// the command line, a web interface and an MCP server.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/custodia-labs/pew/internal/adapters/driving/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	if err := cli.Execute(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

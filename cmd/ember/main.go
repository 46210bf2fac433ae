package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╔═╗┌┬┐┌┐ ┌─┐┬─┐
  ║╣ │││├┴┐├┤ ├┬┘
  ╚═╝┴ ┴└─┘└─┘┴└─
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "ember",
		Short: "Reactive in-memory key-value store",
		Long: `Ember is an in-memory key-value store with fine-grained reactivity.

Values are strings, lists or hashes, addressed by key and queried with
glob patterns. Every read can be tracked; every write invalidates
exactly the reads it affects. Features include:

  • Redis-style string, list and hash commands
  • Glob-pattern queries with live observers
  • Pause/resume with coalesced change delivery
  • An originals journal for undo-style rollback
  • Prometheus metrics and OpenTelemetry tracing`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		replCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

// printBanner prints the Ember ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// cmd/listing-search/main.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "listing-search",
		Short: "Search real-estate listings from the command line",
		Long: `Run Repliers listing searches outside of a workflow.

Available subcommands:
  search  - Run one search and print the summary and full response
  filters - List every accepted filter key
  tool    - Print the LLM tool definition as JSON`,
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "path to a config YAML file (defaults to configs/config.yaml)")
	root.PersistentFlags().String("log-level", "warn", "log level: debug, info, warn, error")

	root.AddCommand(newSearchCmd(), newFiltersCmd(), newToolCmd())
	return root
}

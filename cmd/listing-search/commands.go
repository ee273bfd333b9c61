package main

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"listing-search-workers/internal/common/config"
	"listing-search-workers/internal/common/logger"
	"listing-search-workers/internal/listing"
)

type searchOptions struct {
	filters []string
	apiKey  string
	baseURL string
	noDebug bool
	events  bool
}

func newSearchCmd() *cobra.Command {
	opts := &searchOptions{}

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Run one listing search",
		Long: `Run one listing search and print the result.

Filters are given as key=value. Use | to pass a list, e.g. --filter status=A|U.
"City, ST" in city fills state when state is not given.`,
		Example: `  listing-search search --filter city="Austin, TX" --filter minPrice=300000 --filter maxPrice=500000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, opts)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.filters, "filter", "f", nil, "filter as key=value; repeatable")
	cmd.Flags().StringVar(&opts.apiKey, "api-key", "", "Repliers API key (overrides config and REPLIERS_API_KEY)")
	cmd.Flags().StringVar(&opts.baseURL, "base-url", "", "Repliers API base URL")
	cmd.Flags().BoolVar(&opts.noDebug, "no-debug", false, "omit the debug block from the output")
	cmd.Flags().BoolVar(&opts.events, "events", false, "print status events to stderr")
	return cmd
}

func runSearch(cmd *cobra.Command, opts *searchOptions) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if opts.apiKey != "" {
		cfg.Repliers.APIKey = opts.apiKey
	}
	if opts.baseURL != "" {
		cfg.Repliers.BaseURL = strings.TrimRight(opts.baseURL, "/")
	}
	if opts.noDebug {
		disabled := false
		cfg.Repliers.EnableDebugOutput = &disabled
	}

	args, err := parseFilterArgs(opts.filters)
	if err != nil {
		return err
	}

	level, _ := cmd.Flags().GetString("log-level")
	log := logger.NewStructured(level, "console")

	var emitter listing.Emitter = listing.NopEmitter{}
	if opts.events {
		emitter = listing.EmitterFunc(func(_ context.Context, event listing.Event) {
			fmt.Fprintf(cmd.ErrOrStderr(), "[%s] %s\n", event.Type, firstLine(event.Data.Description))
		})
	}

	tool := listing.NewTool(listing.NewService(cfg.Repliers, log), emitter)
	out, err := tool.Execute(cmd.Context(), args)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

func newFiltersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "filters",
		Short: "List every accepted filter key",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, key := range listing.FilterKeys() {
				fmt.Fprintln(cmd.OutOrStdout(), key)
			}
		},
	}
}

func newToolCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tool",
		Short: "Print the LLM tool definition as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tool := listing.NewTool(nil, nil)
			def := map[string]any{
				"name":        tool.Name,
				"description": tool.Description,
				"parameters": map[string]any{
					"type":       "object",
					"required":   tool.Schema.Required,
					"properties": tool.Schema.Properties,
				},
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(def)
		},
	}
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

// parseFilterArgs turns key=value pairs into tool arguments. A value containing | becomes a list.
func parseFilterArgs(pairs []string) (map[string]any, error) {
	args := make(map[string]any, len(pairs))
	var unknown []string

	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid filter %q: expected key=value", pair)
		}
		if !listing.IsFilterKey(key) {
			unknown = append(unknown, key)
			continue
		}

		if strings.Contains(value, "|") {
			parts := strings.Split(value, "|")
			list := make([]any, 0, len(parts))
			for _, p := range parts {
				list = append(list, p)
			}
			args[key] = list
			continue
		}
		args[key] = value
	}

	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown filter(s): %s; run \"listing-search filters\" for the full list", strings.Join(unknown, ", "))
	}
	return args, nil
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}

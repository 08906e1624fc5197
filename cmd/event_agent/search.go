package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/event-scout/internal/assemble"
	"github.com/jonathan/event-scout/internal/config"
	"github.com/jonathan/event-scout/internal/pipeline"
)

var searchCommand = &cobra.Command{
	Use:   "search",
	Short: "Search the listing site for events matching a networking goal",
	Long: `Runs the full discovery pipeline: search -> enumerate -> extract -> score -> assemble.

The result is printed to stdout as a JSON array of events. Failures are printed as a
{"success": false, "error": "..."} envelope instead. Configuration can be loaded from
a JSON file using --config; command-line arguments override config file values.`,
	RunE:         runSearchCmd,
	SilenceUsage: true,
}

var (
	searchConfigPath  string
	searchIntent      string
	searchLocation    string
	searchCategory    string
	searchCalendar    string
	searchMaxResults  int
	searchTimeout     int
	searchAPIKey      string
	searchBaseURL     string
	searchStorePath   string
	searchDatabaseURL string
	searchOutput      string
	searchHeaded      bool
	searchVerbose     bool
)

func init() {
	// Config file flag (processed first)
	searchCommand.Flags().StringVar(&searchConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	searchCommand.Flags().StringVarP(&searchIntent, "intent", "i", "", "Who you want to meet, in plain language (required)")
	searchCommand.Flags().StringVarP(&searchLocation, "location", "l", "", "Geographic qualifier appended to the search query")
	searchCommand.Flags().StringVar(&searchCategory, "category", "", "Listing category slug to search within (ai, crypto, ...)")
	searchCommand.Flags().StringVar(&searchCalendar, "calendar", "", "Specific calendar slug to search within")
	searchCommand.Flags().IntVarP(&searchMaxResults, "max-results", "m", 0, "Maximum events to return (default 5, cap 50)")
	searchCommand.Flags().IntVar(&searchTimeout, "timeout", 0, "Overall run budget in seconds (default 60)")
	searchCommand.Flags().StringVar(&searchBaseURL, "base-url", "", "Listing site base URL override")
	searchCommand.Flags().StringVarP(&searchOutput, "output", "o", "", "Write the JSON result to this file instead of stdout")
	searchCommand.Flags().StringVar(&searchStorePath, "store", "", "CSV file to upsert results into")
	searchCommand.Flags().BoolVar(&searchHeaded, "headed", false, "Run the browser with a visible window (debugging)")
	searchCommand.Flags().BoolVarP(&searchVerbose, "verbose", "v", false, "Print detailed debug information")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	searchCommand.Flags().StringVar(&searchAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	// Database URL for event persistence
	searchCommand.Flags().StringVar(&searchDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(searchCommand)
}

func runSearchCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Load config file if provided
	var cfg config.Config
	if searchConfigPath != "" {
		loadedCfg, err := config.LoadConfig(searchConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loadedCfg.Validate(); err != nil {
			return err
		}
		cfg = *loadedCfg
		if searchVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", searchConfigPath)
		}
	}

	// Apply CLI overrides (command-line args take priority)
	// Only override if the flag was explicitly set
	if cmd.Flags().Changed("intent") {
		cfg.Intent = searchIntent
	}
	if cmd.Flags().Changed("location") {
		cfg.Location = searchLocation
	}
	if cmd.Flags().Changed("category") {
		cfg.Category = searchCategory
	}
	if cmd.Flags().Changed("calendar") {
		cfg.Calendar = searchCalendar
	}
	if cmd.Flags().Changed("max-results") {
		cfg.MaxResults = searchMaxResults
	}
	if cmd.Flags().Changed("timeout") {
		cfg.Timeout = searchTimeout
	}
	if cmd.Flags().Changed("base-url") {
		cfg.BaseURL = searchBaseURL
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = searchAPIKey
	}
	if cmd.Flags().Changed("store") {
		cfg.StorePath = searchStorePath
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = searchDatabaseURL
	}
	if cmd.Flags().Changed("headed") {
		cfg.Headed = searchHeaded
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = searchVerbose
	}

	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("API key required: set --api-key flag or GEMINI_API_KEY environment variable")
	}

	databaseURL := cfg.DatabaseURL
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}

	rs, err := pipeline.RunPipeline(ctx, pipeline.RunOptions{
		Request:     cfg.Request(),
		APIKey:      apiKey,
		BaseURL:     cfg.BaseURL,
		Headless:    !cfg.Headed,
		StorePath:   cfg.StorePath,
		DatabaseURL: databaseURL,
		Verbose:     cfg.Verbose,
	})
	if err != nil {
		return writeResult(assemble.ErrorEnvelope(err), searchOutput, err)
	}

	data, err := assemble.MarshalEvents(*rs)
	if err != nil {
		return writeResult(assemble.ErrorEnvelope(err), searchOutput, err)
	}
	return writeResult(data, searchOutput, nil)
}

// writeResult emits the JSON contract to stdout or the requested file.
// The original pipeline error, if any, is returned so the process exits
// non-zero after the envelope is printed.
func writeResult(data []byte, path string, cause error) error {
	if path != "" {
		if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
	} else {
		fmt.Println(string(data))
	}
	return cause
}

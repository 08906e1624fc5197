package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/event-scout/internal/store"
	"github.com/jonathan/event-scout/internal/types"
)

var eventsCommand = &cobra.Command{
	Use:   "events",
	Short: "Inspect and maintain the persisted target events store",
}

var eventsListCommand = &cobra.Command{
	Use:          "list",
	Short:        "Print all persisted events as JSON",
	RunE:         runEventsListCmd,
	SilenceUsage: true,
}

var eventsImportCommand = &cobra.Command{
	Use:          "import <events.json>",
	Short:        "Upsert events from a JSON file into the store",
	Args:         cobra.ExactArgs(1),
	RunE:         runEventsImportCmd,
	SilenceUsage: true,
}

var (
	eventsStorePath   string
	eventsDatabaseURL string
)

func init() {
	eventsCommand.PersistentFlags().StringVar(&eventsStorePath, "store", "target_events.csv", "CSV store file")
	eventsCommand.PersistentFlags().StringVar(&eventsDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	eventsCommand.AddCommand(eventsListCommand)
	eventsCommand.AddCommand(eventsImportCommand)
	rootCmd.AddCommand(eventsCommand)
}

func openEventsStore(ctx context.Context) (store.Store, error) {
	databaseURL := eventsDatabaseURL
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL != "" {
		return store.ConnectPostgres(ctx, databaseURL)
	}
	return store.NewCSVStore(eventsStorePath), nil
}

func runEventsListCmd(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	target, err := openEventsStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = target.Close() }()

	rows, err := target.List(ctx)
	if err != nil {
		return err
	}
	if rows == nil {
		rows = []store.Row{}
	}

	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal events: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func runEventsImportCmd(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read events file: %w", err)
	}

	var events []types.Event
	if err := json.Unmarshal(data, &events); err != nil {
		return fmt.Errorf("failed to parse events JSON: %w", err)
	}

	target, err := openEventsStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = target.Close() }()

	if err := target.Upsert(ctx, events); err != nil {
		return err
	}
	fmt.Printf("Upserted %d events\n", len(events))
	return nil
}

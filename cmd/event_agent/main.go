// Package main provides the entry point for the event discovery agent CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "event_agent",
	Short: "Business networking event discovery agent",
	Long:  "Event agent turns a natural-language networking goal into a ranked list of upcoming events, driving a headless browser over the listing site and scoring candidates with an LLM.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

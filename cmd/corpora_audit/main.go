// Package main provides the entry point for the corpora audit CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "corpora_audit",
	Short: "Compliance auditor for a shared corpora directory tree",
	Long:  "corpora_audit walks a root directory of independently-owned dataset collections, checks each against the structural, documentation, and access policy, and renders a markdown status report, a browsable doc tree, and a problem log.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

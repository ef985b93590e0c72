// Package main provides the entry point for the feed optimizer HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "feedoptimizer",
	Short: "Product feed optimizer HTTP API server",
	Long:  "Feed optimizer sanitizes and optimizes Content API product batches before submission, exposing the optimizations as a REST API and a one-shot CLI.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/feedtools/feed-optimizer/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort      int
	serveConfigDir string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the batch optimize, health, and metrics endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveConfigDir, "config-dir", "", "Directory holding per-optimizer JSON config files (defaults to CONFIG_DIR env var, then ./config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := server.Config{
		Port:      servePort,
		ConfigDir: resolveConfigDir(serveConfigDir),
	}

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}

// resolveConfigDir picks the config directory from the flag, then the
// CONFIG_DIR environment variable, then the repo-local default.
func resolveConfigDir(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv("CONFIG_DIR"); env != "" {
		return env
	}
	return "config"
}

// Package main is the entry point for the dialcoach CLI.
package main

import (
	"fmt"
	"os"

	"github.com/dialcoach/dialcoach/internal/config"
	"github.com/spf13/cobra"
)

// Version information set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dialcoach",
		Short: "Dialcoach sales-call analysis server",
		Long:  `Dialcoach stores sales-call recordings as transcription/analysis pairs: audio is transcribed with a speech-to-text model and reviewed by a supportive coaching prompt.`,
	}

	cmd.AddCommand(serveCmd())
	cmd.AddCommand(analyzeCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}

// loadConfig loads configuration from .env file and environment variables.
func loadConfig(envFile string) (config.AppConfig, error) {
	cfg, err := config.LoadConfig(envFile)
	if err != nil {
		return config.AppConfig{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

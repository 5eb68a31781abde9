package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dialcoach/dialcoach/internal/log"
)

func analyzeCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "analyze <audio-file>",
		Short: "Transcribe and analyze a sales call recording",
		Long: `Transcribe and analyze a sales call recording.

The audio file is sent to the configured speech-to-text model, the resulting
transcript is reviewed by the coaching model, and the stored record is printed.
Requires OPENAI_API_KEY to be set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd.Context(), envFile, args[0])
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")

	return cmd
}

func runAnalyze(ctx context.Context, envFile, audioPath string) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}

	if !cfg.OpenAI().IsConfigured() {
		return fmt.Errorf("OPENAI_API_KEY is not set")
	}

	if err := cfg.EnsureDataDir(); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	logger := log.Configure(cfg)
	slogger := logger.Slog()

	f, err := os.Open(audioPath)
	if err != nil {
		return fmt.Errorf("open audio file: %w", err)
	}
	defer f.Close()

	client, err := buildClient(cfg, slogger)
	if err != nil {
		return err
	}
	defer client.Close()

	slogger.Info("analyzing recording", "file", audioPath)

	c, err := client.Analyzer.AnalyzeAudio(ctx, f, filepath.Base(audioPath))
	if err != nil {
		return fmt.Errorf("analyze recording: %w", err)
	}

	fmt.Printf("Call #%d (created %s)\n", c.ID(), c.CreatedAt().Format("2006-01-02 15:04:05"))
	fmt.Println("\n--- Transcription ---")
	fmt.Println(c.Transcription())
	fmt.Println("\n--- Analysis ---")
	fmt.Println(c.Analysis())

	return nil
}

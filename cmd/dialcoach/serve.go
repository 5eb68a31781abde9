package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dialcoach/dialcoach"
	"github.com/dialcoach/dialcoach/infrastructure/api"
	"github.com/dialcoach/dialcoach/infrastructure/provider"
	"github.com/dialcoach/dialcoach/internal/config"
	"github.com/dialcoach/dialcoach/internal/log"
)

func serveCmd() *cobra.Command {
	var (
		envFile string
		host    string
		port    int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API server.

Configuration is loaded in the following order (later sources override earlier):
  1. Default values
  2. .env file (if --env-file specified or .env exists in current directory)
  3. Environment variables
  4. Command line flags

Environment variables:
  HOST                       Server host to bind to (default: 0.0.0.0)
  PORT                       Server port to listen on (default: 8080)
  DATA_DIR                   Data directory (default: ~/.dialcoach)
  DB_URL                     Database URL (default: sqlite:///{data_dir}/dialcoach.db)
  LOG_LEVEL                  Log level: DEBUG, INFO, WARN, ERROR (default: INFO)
  LOG_FORMAT                 Log format: pretty, json (default: pretty)
  API_KEYS                   Comma-separated API keys for write endpoints

  OPENAI_API_KEY             OpenAI API key (required for analysis)
  OPENAI_BASE_URL            OpenAI-compatible base URL (optional)
  OPENAI_TRANSCRIPTION_MODEL Speech-to-text model (default: whisper-1)
  OPENAI_CHAT_MODEL          Chat model (default: gpt-4)
  OPENAI_TIMEOUT             Request timeout in seconds (default: 120)
  OPENAI_MAX_RETRIES         Retry attempts (default: 5)

  HTTP_CACHE_DIR             Cache provider HTTP responses on disk (optional)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(envFile, host, port)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().StringVar(&host, "host", "", "Server host to bind to (default: 0.0.0.0)")
	cmd.Flags().IntVar(&port, "port", 0, "Server port to listen on (default: 8080)")

	return cmd
}

func runServe(envFile, host string, port int) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}

	// Flags take precedence over env vars
	cfg = applyServeOverrides(cfg, host, port)

	if err := cfg.EnsureDataDir(); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	logger := log.Configure(cfg)
	slogger := logger.Slog()

	client, err := buildClient(cfg, slogger)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Close(); err != nil {
			slogger.Error("failed to close client", slog.Any("error", err))
		}
	}()

	attrs := append([]slog.Attr{slog.String("version", version)}, cfg.LogAttrs()...)
	slogger.LogAttrs(context.Background(), slog.LevelInfo, "starting dialcoach", attrs...)

	apiServer := api.NewAPIServer(client, cfg.APIKeys())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return apiServer.ListenAndServe(cfg.Addr())
	})

	g.Go(func() error {
		<-ctx.Done()
		slogger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), api.ShutdownTimeout)
		defer cancel()
		return apiServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// buildClient constructs a dialcoach client from the loaded config.
func buildClient(cfg config.AppConfig, logger *slog.Logger) (*dialcoach.Client, error) {
	opts := []dialcoach.Option{
		dialcoach.WithDataDir(cfg.DataDir()),
		dialcoach.WithLogger(logger),
	}

	if dbURL := cfg.DBURL(); dbURL != "" {
		opts = append(opts, dialcoach.WithDatabaseURL(dbURL))
	} else {
		opts = append(opts, dialcoach.WithSQLite(""))
	}

	endpoint := cfg.OpenAI()
	if endpoint.IsConfigured() {
		opts = append(opts, dialcoach.WithOpenAIConfig(provider.OpenAIConfig{
			APIKey:             endpoint.APIKey(),
			BaseURL:            endpoint.BaseURL(),
			TranscriptionModel: endpoint.TranscriptionModel(),
			ChatModel:          endpoint.ChatModel(),
			Timeout:            endpoint.Timeout(),
			MaxRetries:         endpoint.MaxRetries(),
			InitialDelay:       endpoint.InitialDelay(),
			BackoffFactor:      endpoint.BackoffFactor(),
			HTTPCacheDir:       cfg.HTTPCacheDir(),
		}))
	} else {
		// Serve the stored-call CRUD surface without an analysis provider.
		logger.Warn("OPENAI_API_KEY not set, analyze endpoints will be unavailable")
		opts = append(opts, dialcoach.WithSkipProviderValidation())
	}

	if keys := cfg.APIKeys(); len(keys) > 0 {
		opts = append(opts, dialcoach.WithAPIKeys(keys...))
	}

	client, err := dialcoach.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create dialcoach client: %w", err)
	}
	return client, nil
}

// applyServeOverrides applies command line flag overrides to the config.
func applyServeOverrides(cfg config.AppConfig, host string, port int) config.AppConfig {
	var opts []config.AppConfigOption

	if host != "" {
		opts = append(opts, config.WithHost(host))
	}
	if port != 0 {
		opts = append(opts, config.WithPort(port))
	}

	return cfg.Apply(opts...)
}

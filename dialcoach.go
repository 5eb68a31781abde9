// Package dialcoach provides a library for storing and analyzing sales-call
// recordings: audio is transcribed, run through a supportive coaching
// analysis, and persisted as transcription/analysis pairs.
//
// Basic usage:
//
//	client, err := dialcoach.New(
//	    dialcoach.WithSQLite(".dialcoach/data.db"),
//	    dialcoach.WithOpenAI(os.Getenv("OPENAI_API_KEY")),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Analyze a recording
//	f, _ := os.Open("call.m4a")
//	c, err := client.Analyzer.AnalyzeAudio(ctx, f, "call.m4a")
//
//	// Browse stored calls
//	calls, err := client.Calls.List(ctx, &service.CallListParams{Limit: 10})
package dialcoach

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/dialcoach/dialcoach/application/service"
	"github.com/dialcoach/dialcoach/infrastructure/persistence"
	"github.com/dialcoach/dialcoach/infrastructure/provider"
	"github.com/dialcoach/dialcoach/internal/config"
	"github.com/dialcoach/dialcoach/internal/database"
)

// Client is the main entry point for the dialcoach library.
//
// Access resources via struct fields:
//
//	client.Calls.List(ctx, params)
//	client.Analyzer.AnalyzeAudio(ctx, audio, filename)
type Client struct {
	// Public resource fields (direct service access)
	Calls    *service.Calls
	Analyzer *service.Analyzer

	db        database.Database
	callStore persistence.SalesCallStore

	closers []io.Closer
	logger  *slog.Logger
	dataDir string
	apiKeys []string
	closed  atomic.Bool
	mu      sync.Mutex
}

// New creates a new Client with the given options.
func New(opts ...Option) (*Client, error) {
	cfg := newClientConfig()

	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.database == databaseUnset {
		return nil, ErrNoDatabase
	}

	// Build the OpenAI provider last so WithHTTPCacheDir applies whatever
	// the option order was. Explicit WithTranscriber/WithTextGenerator win.
	if cfg.openAI != nil {
		oc := *cfg.openAI
		if oc.HTTPCacheDir == "" {
			oc.HTTPCacheDir = cfg.httpCacheDir
		}
		p := provider.NewOpenAIProviderFromConfig(oc)
		if cfg.transcriber == nil {
			cfg.transcriber = p
		}
		if cfg.generator == nil {
			cfg.generator = p
		}
	}

	if !cfg.skipProviderValidation && (cfg.transcriber == nil || cfg.generator == nil) {
		return nil, ErrNoProvider
	}

	logger := cfg.logger
	if logger == nil {
		logger = config.DefaultLogger()
	}

	dataDir, err := config.PrepareDataDir(cfg.dataDir)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	dbURL, err := buildDatabaseURL(cfg)
	if err != nil {
		return nil, fmt.Errorf("build database url: %w", err)
	}

	db, err := database.NewDatabase(ctx, dbURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := persistence.AutoMigrate(db); err != nil {
		errClose := db.Close()
		return nil, errors.Join(fmt.Errorf("auto migrate: %w", err), errClose)
	}

	if err := persistence.ValidateSchema(db); err != nil {
		errClose := db.Close()
		return nil, errors.Join(fmt.Errorf("validate schema: %w", err), errClose)
	}

	callStore := persistence.NewSalesCallStore(db)

	client := &Client{
		db:        db,
		callStore: callStore,
		closers:   cfg.closers,
		logger:    logger,
		dataDir:   dataDir,
		apiKeys:   cfg.apiKeys,
	}

	client.Calls = service.NewCalls(callStore)
	client.Analyzer = service.NewAnalyzer(cfg.transcriber, cfg.generator, client.Calls, logger)

	return client, nil
}

// Close releases all resources.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return ErrClientClosed
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, closer := range c.closers {
		if err := closer.Close(); err != nil {
			c.logger.Error("failed to close resource", slog.Any("error", err))
		}
	}

	if err := c.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}

	c.logger.Info("dialcoach client closed")
	return nil
}

// Logger returns the client's logger.
func (c *Client) Logger() *slog.Logger {
	return c.logger
}

// APIKeys returns the configured API keys for the HTTP layer.
func (c *Client) APIKeys() []string {
	keys := make([]string, len(c.apiKeys))
	copy(keys, c.apiKeys)
	return keys
}

// DataDir returns the client's data directory.
func (c *Client) DataDir() string {
	return c.dataDir
}

// buildDatabaseURL resolves the configured database into a connection URL.
func buildDatabaseURL(cfg *clientConfig) (string, error) {
	switch cfg.database {
	case databaseSQLite:
		path := cfg.dbPath
		if path == "" {
			path = filepath.Join(cfg.dataDir, "dialcoach.db")
		}
		return "sqlite:///" + path, nil
	case databasePostgres:
		return cfg.dbDSN, nil
	case databaseURL:
		return cfg.dbURL, nil
	default:
		return "", ErrNoDatabase
	}
}

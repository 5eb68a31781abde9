package dialcoach

import (
	"io"
	"log/slog"

	"github.com/dialcoach/dialcoach/infrastructure/provider"
	"github.com/dialcoach/dialcoach/internal/config"
)

// databaseType identifies the configured database.
type databaseType int

const (
	databaseUnset databaseType = iota
	databaseSQLite
	databasePostgres
	databaseURL
)

// clientConfig holds configuration for Client construction.
// Use newClientConfig() to create with defaults from internal/config.
type clientConfig struct {
	database               databaseType
	dbPath                 string
	dbDSN                  string
	dbURL                  string
	dataDir                string
	openAI                 *provider.OpenAIConfig
	transcriber            provider.Transcriber
	generator              provider.TextGenerator
	logger                 *slog.Logger
	apiKeys                []string
	httpCacheDir           string
	skipProviderValidation bool
	closers                []io.Closer
}

// newClientConfig creates a clientConfig with defaults from internal/config.
func newClientConfig() *clientConfig {
	return &clientConfig{
		dataDir: config.DefaultDataDir(),
	}
}

// Option configures the Client.
type Option func(*clientConfig)

// WithSQLite configures SQLite as the database.
func WithSQLite(path string) Option {
	return func(c *clientConfig) {
		c.database = databaseSQLite
		c.dbPath = path
	}
}

// WithPostgres configures PostgreSQL as the database.
func WithPostgres(dsn string) Option {
	return func(c *clientConfig) {
		c.database = databasePostgres
		c.dbDSN = dsn
	}
}

// WithDatabaseURL configures the database from a URL
// (sqlite:///path or postgres://...).
func WithDatabaseURL(url string) Option {
	return func(c *clientConfig) {
		c.database = databaseURL
		c.dbURL = url
	}
}

// WithOpenAI sets OpenAI as the transcription and analysis provider.
// The provider is built during New so later options like WithHTTPCacheDir
// still apply to it.
func WithOpenAI(apiKey string) Option {
	return func(c *clientConfig) {
		c.openAI = &provider.OpenAIConfig{APIKey: apiKey}
	}
}

// WithOpenAIConfig sets OpenAI with custom configuration.
func WithOpenAIConfig(cfg provider.OpenAIConfig) Option {
	return func(c *clientConfig) {
		c.openAI = &cfg
	}
}

// WithTranscriber sets a custom transcription provider. It takes precedence
// over WithOpenAI/WithOpenAIConfig for transcription.
func WithTranscriber(p provider.Transcriber) Option {
	return func(c *clientConfig) {
		c.transcriber = p
	}
}

// WithTextGenerator sets a custom text generation provider. It takes
// precedence over WithOpenAI/WithOpenAIConfig for analysis.
func WithTextGenerator(p provider.TextGenerator) Option {
	return func(c *clientConfig) {
		c.generator = p
	}
}

// WithDataDir sets the data directory for database storage.
func WithDataDir(dir string) Option {
	return func(c *clientConfig) {
		c.dataDir = dir
	}
}

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}

// WithAPIKeys sets the API keys for HTTP API authentication.
func WithAPIKeys(keys ...string) Option {
	return func(c *clientConfig) {
		c.apiKeys = keys
	}
}

// WithHTTPCacheDir enables disk caching of provider HTTP responses for the
// provider configured via WithOpenAI/WithOpenAIConfig, regardless of option
// order. An HTTPCacheDir set on OpenAIConfig itself takes precedence.
func WithHTTPCacheDir(dir string) Option {
	return func(c *clientConfig) {
		c.httpCacheDir = dir
	}
}

// WithSkipProviderValidation allows constructing a Client without any
// transcription or analysis provider. Intended for tests and for
// deployments that only use the stored-call CRUD surface.
func WithSkipProviderValidation() Option {
	return func(c *clientConfig) {
		c.skipProviderValidation = true
	}
}

// WithCloser registers a resource to be closed when the Client shuts down.
func WithCloser(closer io.Closer) Option {
	return func(c *clientConfig) {
		c.closers = append(c.closers, closer)
	}
}

// Package config provides application configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Default configuration values.
const (
	DefaultHost               = "0.0.0.0"
	DefaultPort               = 8080
	DefaultLogLevel           = "INFO"
	DefaultTranscriptionModel = "whisper-1"
	DefaultChatModel          = "gpt-4"
	DefaultChatTemperature    = 0.7
	DefaultOpenAITimeout      = 120 * time.Second
	DefaultOpenAIMaxRetries   = 5
	DefaultOpenAIInitialDelay = 2 * time.Second
	DefaultOpenAIBackoff      = 2.0
)

// LogFormat represents the log output format.
type LogFormat string

// LogFormat values.
const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

// OpenAIEndpoint configures the OpenAI-compatible service used for
// transcription and analysis.
type OpenAIEndpoint struct {
	apiKey             string
	baseURL            string
	transcriptionModel string
	chatModel          string
	timeout            time.Duration
	maxRetries         int
	initialDelay       time.Duration
	backoffFactor      float64
}

// NewOpenAIEndpoint creates an OpenAIEndpoint with defaults.
func NewOpenAIEndpoint() OpenAIEndpoint {
	return OpenAIEndpoint{
		transcriptionModel: DefaultTranscriptionModel,
		chatModel:          DefaultChatModel,
		timeout:            DefaultOpenAITimeout,
		maxRetries:         DefaultOpenAIMaxRetries,
		initialDelay:       DefaultOpenAIInitialDelay,
		backoffFactor:      DefaultOpenAIBackoff,
	}
}

// APIKey returns the API key.
func (e OpenAIEndpoint) APIKey() string { return e.apiKey }

// BaseURL returns the base URL (empty for the public OpenAI API).
func (e OpenAIEndpoint) BaseURL() string { return e.baseURL }

// TranscriptionModel returns the speech-to-text model identifier.
func (e OpenAIEndpoint) TranscriptionModel() string { return e.transcriptionModel }

// ChatModel returns the chat completion model identifier.
func (e OpenAIEndpoint) ChatModel() string { return e.chatModel }

// Timeout returns the request timeout.
func (e OpenAIEndpoint) Timeout() time.Duration { return e.timeout }

// MaxRetries returns the maximum retry count.
func (e OpenAIEndpoint) MaxRetries() int { return e.maxRetries }

// InitialDelay returns the initial retry delay.
func (e OpenAIEndpoint) InitialDelay() time.Duration { return e.initialDelay }

// BackoffFactor returns the retry backoff multiplier.
func (e OpenAIEndpoint) BackoffFactor() float64 { return e.backoffFactor }

// IsConfigured returns true if the endpoint has an API key.
func (e OpenAIEndpoint) IsConfigured() bool {
	return e.apiKey != ""
}

// OpenAIEndpointOption is a functional option for OpenAIEndpoint.
type OpenAIEndpointOption func(*OpenAIEndpoint)

// WithAPIKey sets the API key.
func WithAPIKey(key string) OpenAIEndpointOption {
	return func(e *OpenAIEndpoint) { e.apiKey = key }
}

// WithBaseURL sets the base URL.
func WithBaseURL(url string) OpenAIEndpointOption {
	return func(e *OpenAIEndpoint) { e.baseURL = url }
}

// WithTranscriptionModel sets the speech-to-text model.
func WithTranscriptionModel(model string) OpenAIEndpointOption {
	return func(e *OpenAIEndpoint) { e.transcriptionModel = model }
}

// WithChatModel sets the chat completion model.
func WithChatModel(model string) OpenAIEndpointOption {
	return func(e *OpenAIEndpoint) { e.chatModel = model }
}

// WithTimeout sets the request timeout.
func WithTimeout(d time.Duration) OpenAIEndpointOption {
	return func(e *OpenAIEndpoint) { e.timeout = d }
}

// WithMaxRetries sets the maximum retry count.
func WithMaxRetries(n int) OpenAIEndpointOption {
	return func(e *OpenAIEndpoint) { e.maxRetries = n }
}

// WithInitialDelay sets the initial retry delay.
func WithInitialDelay(d time.Duration) OpenAIEndpointOption {
	return func(e *OpenAIEndpoint) { e.initialDelay = d }
}

// WithBackoffFactor sets the retry backoff multiplier.
func WithBackoffFactor(f float64) OpenAIEndpointOption {
	return func(e *OpenAIEndpoint) { e.backoffFactor = f }
}

// NewOpenAIEndpointWithOptions creates an OpenAIEndpoint with functional options.
func NewOpenAIEndpointWithOptions(opts ...OpenAIEndpointOption) OpenAIEndpoint {
	e := NewOpenAIEndpoint()
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// AppConfig holds the main application configuration.
type AppConfig struct {
	host         string
	port         int
	dataDir      string
	dbURL        string
	logLevel     string
	logFormat    LogFormat
	apiKeys      []string
	openAI       OpenAIEndpoint
	httpCacheDir string
}

// DefaultDataDir returns the default data directory.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".dialcoach"
	}
	return filepath.Join(home, ".dialcoach")
}

// DefaultLogger returns the default slog logger for library consumers.
func DefaultLogger() *slog.Logger {
	return slog.Default()
}

// PrepareDataDir creates the data directory if it does not exist and returns it.
func PrepareDataDir(dataDir string) (string, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return "", fmt.Errorf("create data directory: %w", err)
	}
	return dataDir, nil
}

// NewAppConfig creates a new AppConfig with defaults.
func NewAppConfig() AppConfig {
	dataDir := DefaultDataDir()
	return AppConfig{
		host:      DefaultHost,
		port:      DefaultPort,
		dataDir:   dataDir,
		dbURL:     "sqlite:///" + filepath.Join(dataDir, "dialcoach.db"),
		logLevel:  DefaultLogLevel,
		logFormat: LogFormatPretty,
		apiKeys:   []string{},
		openAI:    NewOpenAIEndpoint(),
	}
}

// Host returns the server host to bind to.
func (c AppConfig) Host() string { return c.host }

// Port returns the server port to listen on.
func (c AppConfig) Port() int { return c.port }

// Addr returns the combined host:port address.
func (c AppConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.host, c.port)
}

// DataDir returns the data directory path.
func (c AppConfig) DataDir() string { return c.dataDir }

// DBURL returns the database connection URL.
func (c AppConfig) DBURL() string { return c.dbURL }

// LogLevel returns the log level.
func (c AppConfig) LogLevel() string { return c.logLevel }

// LogFormat returns the log format.
func (c AppConfig) LogFormat() LogFormat { return c.logFormat }

// APIKeys returns the configured API keys.
func (c AppConfig) APIKeys() []string {
	keys := make([]string, len(c.apiKeys))
	copy(keys, c.apiKeys)
	return keys
}

// OpenAI returns the OpenAI endpoint config.
func (c AppConfig) OpenAI() OpenAIEndpoint { return c.openAI }

// HTTPCacheDir returns the directory for caching provider HTTP responses
// (empty when disabled).
func (c AppConfig) HTTPCacheDir() string { return c.httpCacheDir }

// EnsureDataDir creates the data directory if it doesn't exist.
func (c AppConfig) EnsureDataDir() error {
	return os.MkdirAll(c.dataDir, 0o755)
}

// AppConfigOption is a functional option for AppConfig.
type AppConfigOption func(*AppConfig)

// WithHost sets the server host.
func WithHost(host string) AppConfigOption {
	return func(c *AppConfig) { c.host = host }
}

// WithPort sets the server port.
func WithPort(port int) AppConfigOption {
	return func(c *AppConfig) { c.port = port }
}

// WithDataDir sets the data directory.
func WithDataDir(dir string) AppConfigOption {
	return func(c *AppConfig) {
		c.dataDir = dir
		// Update default DB URL when data dir changes
		if c.dbURL == "" || strings.Contains(c.dbURL, "dialcoach.db") {
			c.dbURL = "sqlite:///" + filepath.Join(dir, "dialcoach.db")
		}
	}
}

// WithDBURL sets the database URL.
func WithDBURL(url string) AppConfigOption {
	return func(c *AppConfig) { c.dbURL = url }
}

// WithLogLevel sets the log level.
func WithLogLevel(level string) AppConfigOption {
	return func(c *AppConfig) { c.logLevel = level }
}

// WithLogFormat sets the log format.
func WithLogFormat(format LogFormat) AppConfigOption {
	return func(c *AppConfig) { c.logFormat = format }
}

// WithAPIKeys sets the API keys.
func WithAPIKeys(keys []string) AppConfigOption {
	return func(c *AppConfig) {
		c.apiKeys = make([]string, len(keys))
		copy(c.apiKeys, keys)
	}
}

// WithOpenAIEndpoint sets the OpenAI endpoint config.
func WithOpenAIEndpoint(e OpenAIEndpoint) AppConfigOption {
	return func(c *AppConfig) { c.openAI = e }
}

// WithHTTPCacheDir sets the provider HTTP cache directory.
func WithHTTPCacheDir(dir string) AppConfigOption {
	return func(c *AppConfig) { c.httpCacheDir = dir }
}

// NewAppConfigWithOptions creates an AppConfig with functional options.
func NewAppConfigWithOptions(opts ...AppConfigOption) AppConfig {
	c := NewAppConfig()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Apply returns a new AppConfig with the given options applied.
func (c AppConfig) Apply(opts ...AppConfigOption) AppConfig {
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// LogAttrs returns slog attributes for logging the configuration.
// Sensitive values like API keys are masked or shown as counts.
func (c AppConfig) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("data_dir", c.dataDir),
		slog.String("log_level", c.logLevel),
		slog.String("db_url", c.maskedDBURL()),
		slog.String("openai_base_url", c.openAI.BaseURL()),
		slog.String("transcription_model", c.openAI.TranscriptionModel()),
		slog.String("chat_model", c.openAI.ChatModel()),
		slog.Bool("openai_configured", c.openAI.IsConfigured()),
		slog.Int("api_keys_count", len(c.apiKeys)),
	}
}

func (c AppConfig) maskedDBURL() string {
	if c.dbURL == "" {
		return "(default)"
	}
	if strings.HasPrefix(c.dbURL, "sqlite:") {
		return c.dbURL
	}
	return "postgres://***@***"
}

// ParseAPIKeys parses a comma-separated string of API keys.
func ParseAPIKeys(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	keys := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			keys = append(keys, trimmed)
		}
	}
	return keys
}

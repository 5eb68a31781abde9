package config

import (
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvConfig holds all environment-based configuration.
// Nested structs use underscore delimiter (e.g., OPENAI_BASE_URL).
type EnvConfig struct {
	// Host is the server host to bind to.
	// Env: HOST (default: 0.0.0.0)
	Host string `envconfig:"HOST" default:"0.0.0.0"`

	// Port is the server port to listen on.
	// Env: PORT (default: 8080)
	Port int `envconfig:"PORT" default:"8080"`

	// DataDir is the data directory path.
	// Env: DATA_DIR
	// Default: ~/.dialcoach
	DataDir string `envconfig:"DATA_DIR"`

	// DBURL is the database connection URL.
	// Env: DB_URL
	// Default: sqlite:///{data_dir}/dialcoach.db
	DBURL string `envconfig:"DB_URL"`

	// LogLevel is the log verbosity level.
	// Env: LOG_LEVEL (default: INFO)
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`

	// LogFormat is the log output format (pretty or json).
	// Env: LOG_FORMAT (default: pretty)
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// APIKeys is a comma-separated list of valid API keys for write endpoints.
	// Env: API_KEYS
	APIKeys string `envconfig:"API_KEYS"`

	// OpenAI configures the transcription and analysis service.
	OpenAI OpenAIEnv `envconfig:"OPENAI"`

	// HTTPCacheDir is the directory for caching provider HTTP responses to
	// disk. When set, request/response pairs are cached to avoid repeated
	// API calls during development.
	// Env: HTTP_CACHE_DIR
	HTTPCacheDir string `envconfig:"HTTP_CACHE_DIR"`
}

// OpenAIEnv holds environment configuration for the OpenAI endpoint.
type OpenAIEnv struct {
	// APIKey is the API key for authentication.
	// Env: OPENAI_API_KEY
	APIKey string `envconfig:"API_KEY"`

	// BaseURL is the base URL for an OpenAI-compatible endpoint.
	// Env: OPENAI_BASE_URL
	BaseURL string `envconfig:"BASE_URL"`

	// TranscriptionModel is the speech-to-text model identifier.
	// Env: OPENAI_TRANSCRIPTION_MODEL (default: whisper-1)
	TranscriptionModel string `envconfig:"TRANSCRIPTION_MODEL" default:"whisper-1"`

	// ChatModel is the chat completion model identifier.
	// Env: OPENAI_CHAT_MODEL (default: gpt-4)
	ChatModel string `envconfig:"CHAT_MODEL" default:"gpt-4"`

	// Timeout is the request timeout in seconds.
	// Env: OPENAI_TIMEOUT (default: 120)
	Timeout float64 `envconfig:"TIMEOUT" default:"120"`

	// MaxRetries is the maximum number of retries.
	// Env: OPENAI_MAX_RETRIES (default: 5)
	MaxRetries int `envconfig:"MAX_RETRIES" default:"5"`

	// InitialDelay is the initial retry delay in seconds.
	// Env: OPENAI_INITIAL_DELAY (default: 2.0)
	InitialDelay float64 `envconfig:"INITIAL_DELAY" default:"2.0"`

	// BackoffFactor is the retry backoff multiplier.
	// Env: OPENAI_BACKOFF_FACTOR (default: 2.0)
	BackoffFactor float64 `envconfig:"BACKOFF_FACTOR" default:"2.0"`
}

// LoadFromEnv loads configuration from environment variables without a prefix.
func LoadFromEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// LoadFromEnvWithPrefix loads configuration with a custom prefix.
// For example, prefix "DIALCOACH" would require DIALCOACH_DB_URL instead of DB_URL.
func LoadFromEnvWithPrefix(prefix string) (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// ToAppConfig converts EnvConfig to AppConfig.
func (e EnvConfig) ToAppConfig() AppConfig {
	cfg := NewAppConfig()

	if e.Host != "" {
		cfg = applyOption(cfg, WithHost(e.Host))
	}
	if e.Port != 0 {
		cfg = applyOption(cfg, WithPort(e.Port))
	}
	if e.DataDir != "" {
		cfg = applyOption(cfg, WithDataDir(e.DataDir))
	}
	if e.DBURL != "" {
		cfg = applyOption(cfg, WithDBURL(e.DBURL))
	}
	if e.LogLevel != "" {
		cfg = applyOption(cfg, WithLogLevel(e.LogLevel))
	}
	if e.LogFormat != "" {
		cfg = applyOption(cfg, WithLogFormat(ParseLogFormat(e.LogFormat)))
	}
	if e.APIKeys != "" {
		cfg = applyOption(cfg, WithAPIKeys(ParseAPIKeys(e.APIKeys)))
	}

	cfg = applyOption(cfg, WithOpenAIEndpoint(e.OpenAI.ToEndpoint()))

	if e.HTTPCacheDir != "" {
		cfg = applyOption(cfg, WithHTTPCacheDir(e.HTTPCacheDir))
	}

	return cfg
}

// applyOption applies an option to the config.
func applyOption(cfg AppConfig, opt AppConfigOption) AppConfig {
	opt(&cfg)
	return cfg
}

// IsConfigured returns true if the endpoint has an API key.
func (o OpenAIEnv) IsConfigured() bool {
	return o.APIKey != ""
}

// ToEndpoint converts OpenAIEnv to OpenAIEndpoint.
func (o OpenAIEnv) ToEndpoint() OpenAIEndpoint {
	opts := []OpenAIEndpointOption{
		WithTimeout(time.Duration(o.Timeout * float64(time.Second))),
		WithMaxRetries(o.MaxRetries),
		WithInitialDelay(time.Duration(o.InitialDelay * float64(time.Second))),
		WithBackoffFactor(o.BackoffFactor),
	}

	if o.APIKey != "" {
		opts = append(opts, WithAPIKey(o.APIKey))
	}
	if o.BaseURL != "" {
		opts = append(opts, WithBaseURL(o.BaseURL))
	}
	if o.TranscriptionModel != "" {
		opts = append(opts, WithTranscriptionModel(o.TranscriptionModel))
	}
	if o.ChatModel != "" {
		opts = append(opts, WithChatModel(o.ChatModel))
	}

	return NewOpenAIEndpointWithOptions(opts...)
}

// ParseLogFormat parses a log format string, defaulting to pretty.
func ParseLogFormat(s string) LogFormat {
	switch strings.ToLower(s) {
	case "json":
		return LogFormatJSON
	default:
		return LogFormatPretty
	}
}

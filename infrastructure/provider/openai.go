package provider

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// Default model and retry settings.
const (
	defaultTranscriptionModel = "whisper-1"
	defaultChatModel          = "gpt-4"
	defaultMaxRetries         = 5
	defaultInitialDelay       = 2 * time.Second
	defaultBackoffFactor      = 2.0
)

// OpenAIProvider implements transcription and text generation using the
// OpenAI API (or any OpenAI-compatible endpoint).
type OpenAIProvider struct {
	client             *openai.Client
	transcriptionModel string
	chatModel          string
	maxRetries         int
	initialDelay       time.Duration
	backoffFactor      float64
}

// OpenAIOption is a functional option for OpenAIProvider.
type OpenAIOption func(*OpenAIProvider)

// WithTranscriptionModel sets the speech-to-text model.
func WithTranscriptionModel(model string) OpenAIOption {
	return func(p *OpenAIProvider) { p.transcriptionModel = model }
}

// WithChatModel sets the chat completion model.
func WithChatModel(model string) OpenAIOption {
	return func(p *OpenAIProvider) { p.chatModel = model }
}

// WithMaxRetries sets the maximum retry count.
func WithMaxRetries(n int) OpenAIOption {
	return func(p *OpenAIProvider) { p.maxRetries = n }
}

// WithInitialDelay sets the initial retry delay.
func WithInitialDelay(d time.Duration) OpenAIOption {
	return func(p *OpenAIProvider) { p.initialDelay = d }
}

// WithBackoffFactor sets the backoff multiplier.
func WithBackoffFactor(f float64) OpenAIOption {
	return func(p *OpenAIProvider) { p.backoffFactor = f }
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(apiKey string, opts ...OpenAIOption) *OpenAIProvider {
	p := &OpenAIProvider{
		client:             openai.NewClient(apiKey),
		transcriptionModel: defaultTranscriptionModel,
		chatModel:          defaultChatModel,
		maxRetries:         defaultMaxRetries,
		initialDelay:       defaultInitialDelay,
		backoffFactor:      defaultBackoffFactor,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// OpenAIConfig holds configuration for the OpenAI provider.
type OpenAIConfig struct {
	APIKey             string
	BaseURL            string
	TranscriptionModel string
	ChatModel          string
	Timeout            time.Duration
	MaxRetries         int
	InitialDelay       time.Duration
	BackoffFactor      float64

	// HTTPCacheDir enables disk caching of request/response pairs when set.
	HTTPCacheDir string
}

// NewOpenAIProviderFromConfig creates a provider from configuration.
func NewOpenAIProviderFromConfig(cfg OpenAIConfig) *OpenAIProvider {
	config := openai.DefaultConfig(cfg.APIKey)

	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	httpClient := &http.Client{}
	if cfg.Timeout > 0 {
		httpClient.Timeout = cfg.Timeout
	}
	if cfg.HTTPCacheDir != "" {
		httpClient.Transport = NewCachingTransport(cfg.HTTPCacheDir, nil)
	}
	config.HTTPClient = httpClient

	transcriptionModel := cfg.TranscriptionModel
	if transcriptionModel == "" {
		transcriptionModel = defaultTranscriptionModel
	}

	chatModel := cfg.ChatModel
	if chatModel == "" {
		chatModel = defaultChatModel
	}

	maxRetries := cfg.MaxRetries
	if maxRetries == 0 {
		maxRetries = defaultMaxRetries
	}

	initialDelay := cfg.InitialDelay
	if initialDelay == 0 {
		initialDelay = defaultInitialDelay
	}

	backoffFactor := cfg.BackoffFactor
	if backoffFactor == 0 {
		backoffFactor = defaultBackoffFactor
	}

	return &OpenAIProvider{
		client:             openai.NewClientWithConfig(config),
		transcriptionModel: transcriptionModel,
		chatModel:          chatModel,
		maxRetries:         maxRetries,
		initialDelay:       initialDelay,
		backoffFactor:      backoffFactor,
	}
}

// SupportsTextGeneration returns true.
func (p *OpenAIProvider) SupportsTextGeneration() bool {
	return true
}

// SupportsTranscription returns true.
func (p *OpenAIProvider) SupportsTranscription() bool {
	return true
}

// Close is a no-op for the OpenAI provider.
func (p *OpenAIProvider) Close() error {
	return nil
}

// Transcribe converts an audio recording to text.
func (p *OpenAIProvider) Transcribe(ctx context.Context, req TranscriptionRequest) (TranscriptionResponse, error) {
	filename := req.Filename()
	if filename == "" {
		filename = "audio.mp3"
	}

	audioReq := openai.AudioRequest{
		Model:    p.transcriptionModel,
		Reader:   req.Reader(),
		FilePath: filename,
	}

	var resp openai.AudioResponse
	var err error

	err = p.withRetry(ctx, func() error {
		resp, err = p.client.CreateTranscription(ctx, audioReq)
		return err
	})

	if err != nil {
		return TranscriptionResponse{}, p.wrapError("transcription", err)
	}

	if strings.TrimSpace(resp.Text) == "" {
		return TranscriptionResponse{}, NewProviderError(
			"transcription", 0, "empty transcription in response", nil,
		)
	}

	return NewTranscriptionResponse(resp.Text), nil
}

// ChatCompletion generates a chat completion.
func (p *OpenAIProvider) ChatCompletion(ctx context.Context, req ChatCompletionRequest) (ChatCompletionResponse, error) {
	messages := make([]openai.ChatCompletionMessage, len(req.Messages()))
	for i, m := range req.Messages() {
		messages[i] = openai.ChatCompletionMessage{
			Role:    m.Role(),
			Content: m.Content(),
		}
	}

	openaiReq := openai.ChatCompletionRequest{
		Model:    p.chatModel,
		Messages: messages,
	}

	if req.MaxTokens() > 0 {
		openaiReq.MaxTokens = req.MaxTokens()
	}
	if req.Temperature() > 0 {
		openaiReq.Temperature = float32(req.Temperature())
	}

	var resp openai.ChatCompletionResponse
	var err error

	err = p.withRetry(ctx, func() error {
		resp, err = p.client.CreateChatCompletion(ctx, openaiReq)
		return err
	})

	if err != nil {
		return ChatCompletionResponse{}, p.wrapError("chat_completion", err)
	}

	if len(resp.Choices) == 0 {
		return ChatCompletionResponse{}, NewProviderError(
			"chat_completion", 0, "no choices in response", nil,
		)
	}

	usage := NewUsage(
		resp.Usage.PromptTokens,
		resp.Usage.CompletionTokens,
		resp.Usage.TotalTokens,
	)

	return NewChatCompletionResponse(
		resp.Choices[0].Message.Content,
		string(resp.Choices[0].FinishReason),
		usage,
	), nil
}

// withRetry executes the function with exponential backoff retry.
func (p *OpenAIProvider) withRetry(ctx context.Context, fn func() error) error {
	delay := p.initialDelay
	var lastErr error

	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		if !p.isRetryable(lastErr) {
			return lastErr
		}

		if attempt < p.maxRetries {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay = time.Duration(float64(delay) * p.backoffFactor)
			}
		}
	}

	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

// isRetryable determines if an error should be retried.
func (p *OpenAIProvider) isRetryable(err error) bool {
	// HTTP client timeouts are retryable
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		// Network errors are retryable
		return true
	}

	return false
}

// wrapError wraps an OpenAI error into a ProviderError.
func (p *OpenAIProvider) wrapError(operation string, err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return NewProviderError(operation, apiErr.HTTPStatusCode, apiErr.Message, err)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return NewProviderError(operation, reqErr.HTTPStatusCode, reqErr.Error(), err)
	}

	return NewProviderError(operation, 0, err.Error(), err)
}

// Ensure OpenAIProvider implements the interfaces.
var (
	_ FullProvider  = (*OpenAIProvider)(nil)
	_ Transcriber   = (*OpenAIProvider)(nil)
	_ TextGenerator = (*OpenAIProvider)(nil)
)

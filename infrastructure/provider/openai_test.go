package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeTranscriptionServer mimics the OpenAI audio transcription endpoint.
// It echoes back a fixed transcript and tracks received requests.
func fakeTranscriptionServer(t *testing.T, text string, counter *atomic.Int64) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		counter.Add(1)

		if !strings.HasSuffix(r.URL.Path, "/audio/transcriptions") {
			http.NotFound(w, r)
			return
		}

		if err := r.ParseMultipartForm(32 << 20); err != nil {
			http.Error(w, "bad multipart", http.StatusBadRequest)
			return
		}
		if _, _, err := r.FormFile("file"); err != nil {
			http.Error(w, "missing file", http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"text": text})
	}))
}

// fakeChatServer mimics the OpenAI chat completions endpoint.
func fakeChatServer(t *testing.T, reply string, counter *atomic.Int64, lastBody *atomic.Value) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		counter.Add(1)

		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		if lastBody != nil {
			lastBody.Store(body)
		}

		resp := map[string]interface{}{
			"id":     "chatcmpl-test",
			"object": "chat.completion",
			"model":  body["model"],
			"choices": []map[string]interface{}{
				{
					"index":         0,
					"finish_reason": "stop",
					"message": map[string]string{
						"role":    "assistant",
						"content": reply,
					},
				},
			},
			"usage": map[string]int{
				"prompt_tokens":     12,
				"completion_tokens": 34,
				"total_tokens":      46,
			},
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func testConfig(baseURL string) OpenAIConfig {
	return OpenAIConfig{
		APIKey:       "test-key",
		BaseURL:      baseURL,
		MaxRetries:   2,
		InitialDelay: time.Millisecond,
	}
}

func TestOpenAIProvider_Transcribe(t *testing.T) {
	var counter atomic.Int64
	srv := fakeTranscriptionServer(t, "Hi, thanks for taking my call today.", &counter)
	defer srv.Close()

	p := NewOpenAIProviderFromConfig(testConfig(srv.URL))

	resp, err := p.Transcribe(context.Background(),
		NewTranscriptionRequest(strings.NewReader("fake-audio-bytes"), "call.mp3"))
	require.NoError(t, err)
	require.Equal(t, "Hi, thanks for taking my call today.", resp.Text())
	require.Equal(t, int64(1), counter.Load())
}

func TestOpenAIProvider_Transcribe_DefaultFilename(t *testing.T) {
	var counter atomic.Int64
	srv := fakeTranscriptionServer(t, "hello", &counter)
	defer srv.Close()

	p := NewOpenAIProviderFromConfig(testConfig(srv.URL))

	// An empty filename still produces a valid multipart upload.
	resp, err := p.Transcribe(context.Background(),
		NewTranscriptionRequest(strings.NewReader("fake-audio-bytes"), ""))
	require.NoError(t, err)
	require.Equal(t, "hello", resp.Text())
}

func TestOpenAIProvider_Transcribe_EmptyText(t *testing.T) {
	var counter atomic.Int64
	srv := fakeTranscriptionServer(t, "   ", &counter)
	defer srv.Close()

	p := NewOpenAIProviderFromConfig(testConfig(srv.URL))

	_, err := p.Transcribe(context.Background(),
		NewTranscriptionRequest(strings.NewReader("fake-audio-bytes"), "call.mp3"))
	require.Error(t, err)

	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
	require.Equal(t, "transcription", provErr.Operation())
}

func TestOpenAIProvider_ChatCompletion(t *testing.T) {
	var counter atomic.Int64
	var lastBody atomic.Value
	srv := fakeChatServer(t, "Great energy on that call!", &counter, &lastBody)
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.ChatModel = "gpt-4"
	p := NewOpenAIProviderFromConfig(cfg)

	req := NewChatCompletionRequest([]Message{
		SystemMessage("You are a coach."),
		UserMessage("Review this call."),
	}).WithTemperature(0.7)

	resp, err := p.ChatCompletion(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, "Great energy on that call!", resp.Content())
	require.Equal(t, "stop", resp.FinishReason())
	require.Equal(t, 46, resp.Usage().TotalTokens())

	body := lastBody.Load().(map[string]interface{})
	require.Equal(t, "gpt-4", body["model"])
	require.InDelta(t, 0.7, body["temperature"].(float64), 1e-6)

	messages := body["messages"].([]interface{})
	require.Len(t, messages, 2)
	first := messages[0].(map[string]interface{})
	require.Equal(t, "system", first["role"])
}

func TestOpenAIProvider_ChatCompletion_RetriesServerErrors(t *testing.T) {
	var counter atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := counter.Add(1)
		if n <= 2 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":{"message":"upstream hiccup","type":"server_error"}}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":     "chatcmpl-test",
			"object": "chat.completion",
			"choices": []map[string]interface{}{
				{
					"index":         0,
					"finish_reason": "stop",
					"message":       map[string]string{"role": "assistant", "content": "ok"},
				},
			},
			"usage": map[string]int{"prompt_tokens": 1, "completion_tokens": 1, "total_tokens": 2},
		})
	}))
	defer srv.Close()

	p := NewOpenAIProviderFromConfig(testConfig(srv.URL))

	resp, err := p.ChatCompletion(context.Background(),
		NewChatCompletionRequest([]Message{UserMessage("hi")}))
	require.NoError(t, err)
	require.Equal(t, "ok", resp.Content())
	require.Equal(t, int64(3), counter.Load(), "two failures then success")
}

func TestOpenAIProvider_ChatCompletion_NoRetryOnClientError(t *testing.T) {
	var counter atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		counter.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"invalid model","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	p := NewOpenAIProviderFromConfig(testConfig(srv.URL))

	_, err := p.ChatCompletion(context.Background(),
		NewChatCompletionRequest([]Message{UserMessage("hi")}))
	require.Error(t, err)
	require.Equal(t, int64(1), counter.Load(), "client errors are not retried")

	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
	require.Equal(t, http.StatusBadRequest, provErr.StatusCode())
	require.False(t, provErr.IsRateLimited())
}

func TestOpenAIProvider_ChatCompletion_GivesUpAfterMaxRetries(t *testing.T) {
	var counter atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		counter.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"slow down","type":"rate_limit_error"}}`))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.MaxRetries = 2
	p := NewOpenAIProviderFromConfig(cfg)

	_, err := p.ChatCompletion(context.Background(),
		NewChatCompletionRequest([]Message{UserMessage("hi")}))
	require.Error(t, err)
	require.Equal(t, int64(3), counter.Load(), "initial attempt plus two retries")

	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
	require.True(t, provErr.IsRateLimited())
}

func TestOpenAIProvider_Supports(t *testing.T) {
	p := NewOpenAIProvider("test-key")
	require.True(t, p.SupportsTranscription())
	require.True(t, p.SupportsTextGeneration())
	require.NoError(t, p.Close())
}


package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNewAppConfig_Defaults(t *testing.T) {
	cfg := NewAppConfig()

	if cfg.Host() != "0.0.0.0" {
		t.Errorf("Host = %q", cfg.Host())
	}
	if cfg.Port() != 8080 {
		t.Errorf("Port = %d", cfg.Port())
	}
	if cfg.Addr() != "0.0.0.0:8080" {
		t.Errorf("Addr = %q", cfg.Addr())
	}
	if !strings.HasPrefix(cfg.DBURL(), "sqlite:///") {
		t.Errorf("DBURL = %q, want sqlite default", cfg.DBURL())
	}
	if cfg.LogFormat() != LogFormatPretty {
		t.Errorf("LogFormat = %q", cfg.LogFormat())
	}

	endpoint := cfg.OpenAI()
	if endpoint.TranscriptionModel() != "whisper-1" {
		t.Errorf("TranscriptionModel = %q", endpoint.TranscriptionModel())
	}
	if endpoint.ChatModel() != "gpt-4" {
		t.Errorf("ChatModel = %q", endpoint.ChatModel())
	}
	if endpoint.IsConfigured() {
		t.Error("IsConfigured = true without an API key")
	}
}

func TestAppConfig_Apply(t *testing.T) {
	cfg := NewAppConfig().Apply(
		WithHost("127.0.0.1"),
		WithPort(9999),
		WithLogLevel("DEBUG"),
	)

	if cfg.Addr() != "127.0.0.1:9999" {
		t.Errorf("Addr = %q", cfg.Addr())
	}
	if cfg.LogLevel() != "DEBUG" {
		t.Errorf("LogLevel = %q", cfg.LogLevel())
	}

	// Apply returns a copy; defaults stay intact.
	if NewAppConfig().Port() != 8080 {
		t.Error("Apply mutated shared defaults")
	}
}

func TestWithDataDir_MovesDefaultDBURL(t *testing.T) {
	cfg := NewAppConfig().Apply(WithDataDir("/srv/dialcoach"))

	want := "sqlite:///" + filepath.Join("/srv/dialcoach", "dialcoach.db")
	if cfg.DBURL() != want {
		t.Errorf("DBURL = %q, want %q", cfg.DBURL(), want)
	}

	// A custom DB URL is left alone.
	cfg = NewAppConfig().Apply(
		WithDBURL("postgres://user:pass@db/calls"),
		WithDataDir("/srv/dialcoach"),
	)
	if cfg.DBURL() != "postgres://user:pass@db/calls" {
		t.Errorf("DBURL = %q, custom URL must survive data dir change", cfg.DBURL())
	}
}

func TestParseAPIKeys(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"one", []string{"one"}},
		{"one,two", []string{"one", "two"}},
		{" one , two ,", []string{"one", "two"}},
		{",,", nil},
	}

	for _, tt := range tests {
		got := ParseAPIKeys(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("ParseAPIKeys(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("ParseAPIKeys(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}

func TestParseLogFormat(t *testing.T) {
	if ParseLogFormat("json") != LogFormatJSON {
		t.Error("json not recognized")
	}
	if ParseLogFormat("JSON") != LogFormatJSON {
		t.Error("format should be case insensitive")
	}
	if ParseLogFormat("pretty") != LogFormatPretty {
		t.Error("pretty not recognized")
	}
	if ParseLogFormat("garbage") != LogFormatPretty {
		t.Error("unknown formats should fall back to pretty")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HOST", "10.0.0.5")
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("API_KEYS", "alpha,beta")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_CHAT_MODEL", "gpt-4o")
	t.Setenv("OPENAI_TIMEOUT", "30")

	envCfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv: %v", err)
	}

	cfg := envCfg.ToAppConfig()
	if cfg.Addr() != "10.0.0.5:9090" {
		t.Errorf("Addr = %q", cfg.Addr())
	}
	if cfg.LogFormat() != LogFormatJSON {
		t.Errorf("LogFormat = %q", cfg.LogFormat())
	}
	if keys := cfg.APIKeys(); len(keys) != 2 || keys[0] != "alpha" {
		t.Errorf("APIKeys = %v", keys)
	}

	endpoint := cfg.OpenAI()
	if !endpoint.IsConfigured() {
		t.Error("endpoint should be configured")
	}
	if endpoint.ChatModel() != "gpt-4o" {
		t.Errorf("ChatModel = %q", endpoint.ChatModel())
	}
	if endpoint.Timeout() != 30*time.Second {
		t.Errorf("Timeout = %v", endpoint.Timeout())
	}
	if endpoint.TranscriptionModel() != "whisper-1" {
		t.Errorf("TranscriptionModel default = %q", endpoint.TranscriptionModel())
	}
}

func TestLoadConfig_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	content := "PORT=7070\nOPENAI_API_KEY=sk-from-file\n"
	if err := os.WriteFile(envFile, []byte(content), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	// Real environment variables win over the file.
	t.Setenv("PORT", "6060")

	cfg, err := LoadConfig(envFile)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Port() != 6060 {
		t.Errorf("Port = %d, env var should override .env", cfg.Port())
	}
	if cfg.OpenAI().APIKey() != "sk-from-file" {
		t.Errorf("APIKey = %q, want value from .env", cfg.OpenAI().APIKey())
	}
}

func TestLoadConfig_MissingDotEnvIsFine(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "no-such.env")); err != nil {
		t.Fatalf("LoadConfig with missing file: %v", err)
	}
}

func TestLogAttrs_MasksPostgresURL(t *testing.T) {
	cfg := NewAppConfig().Apply(WithDBURL("postgres://user:secret@db:5432/calls"))

	for _, attr := range cfg.LogAttrs() {
		if attr.Key == "db_url" && strings.Contains(attr.Value.String(), "secret") {
			t.Errorf("db_url attr leaks credentials: %s", attr.Value.String())
		}
	}
}

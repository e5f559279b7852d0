package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/csheth/brainstorm/internal/ideas"
)

var envKeys = []string{
	"BRAINSTORM_PROVIDER",
	"BRAINSTORM_MODEL",
	"BRAINSTORM_BASE_URL",
	"BRAINSTORM_API_KEY",
	"BRAINSTORM_BATCH_SIZE",
	"BRAINSTORM_EXPORT_PATH",
	"BRAINSTORM_LOG_FILE",
	"OPENAI_API_KEY",
	"OLLAMA_HOST",
}

// isolate points HOME and .env at temp dirs and unsets every variable Load reads.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range envKeys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	prev := dotenvPath
	dotenvPath = filepath.Join(t.TempDir(), ".env")
	t.Cleanup(func() { dotenvPath = prev })
	return home
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Provider != defaultProvider || cfg.Model != "" {
		t.Fatalf("provider/model = %q/%q", cfg.Provider, cfg.Model)
	}
	if cfg.BatchSize != defaultBatchSize {
		t.Fatalf("BatchSize = %d, want %d", cfg.BatchSize, defaultBatchSize)
	}
	if cfg.Timeout != defaultTimeout {
		t.Fatalf("Timeout = %s, want %s", cfg.Timeout, defaultTimeout)
	}
	if cfg.ExportPath != filepath.Join(home, "brainstorm-favorites.md") {
		t.Fatalf("ExportPath = %q", cfg.ExportPath)
	}
}

func TestLoad_DefaultPathUnderHome(t *testing.T) {
	home := isolate(t)
	dir := filepath.Join(home, ".config", "brainstorm")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	writeFile(t, dir, "config.toml", `provider = "offline"`)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Provider != "offline" {
		t.Fatalf("Provider = %q, want offline", cfg.Provider)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := isolate(t)
	path := writeFile(t, t.TempDir(), "config.toml", `
provider = "  Ollama "
model = " qwen3:8b "
base_url = "http://10.0.0.5:11434"
batch_size = 3
timeout_seconds = 15
export_path = "  ~/notes/ideas.html  "
log_file = "~/brainstorm.log"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Provider != "ollama" {
		t.Fatalf("Provider = %q, want ollama", cfg.Provider)
	}
	if cfg.Model != "qwen3:8b" {
		t.Fatalf("Model = %q", cfg.Model)
	}
	if cfg.BaseURL != "http://10.0.0.5:11434" {
		t.Fatalf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.BatchSize != 3 || cfg.Timeout != 15*time.Second {
		t.Fatalf("BatchSize/Timeout = %d/%s", cfg.BatchSize, cfg.Timeout)
	}
	if cfg.ExportPath != filepath.Join(home, "notes", "ideas.html") {
		t.Fatalf("ExportPath = %q", cfg.ExportPath)
	}
	if !strings.HasPrefix(cfg.LogFile, home) {
		t.Fatalf("LogFile = %q, want it under HOME %q", cfg.LogFile, home)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	isolate(t)
	path := writeFile(t, t.TempDir(), "config.toml", `provider = `)

	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("expected parse config error, got %v", err)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolate(t)
	path := writeFile(t, t.TempDir(), "config.toml", `
provider = "ollama"
model = "from-file"
batch_size = 2
`)
	t.Setenv("BRAINSTORM_PROVIDER", "OpenAI")
	t.Setenv("BRAINSTORM_MODEL", "from-env")
	t.Setenv("BRAINSTORM_BATCH_SIZE", "7")
	t.Setenv("OPENAI_API_KEY", "sk-fallback")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Provider != "openai" || cfg.Model != "from-env" || cfg.BatchSize != 7 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.APIKey != "sk-fallback" {
		t.Fatalf("APIKey = %q, want OPENAI_API_KEY fallback", cfg.APIKey)
	}

	t.Setenv("BRAINSTORM_API_KEY", "sk-primary")
	cfg, err = Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIKey != "sk-primary" {
		t.Fatalf("APIKey = %q, want sk-primary", cfg.APIKey)
	}
}

func TestLoad_BadBatchSizeEnv(t *testing.T) {
	isolate(t)
	t.Setenv("BRAINSTORM_BATCH_SIZE", "lots")
	if _, err := Load(filepath.Join(t.TempDir(), "none.toml")); err == nil {
		t.Fatal("expected error for non-numeric batch size")
	}
}

func TestLoad_OllamaHostFallback(t *testing.T) {
	isolate(t)
	t.Setenv("BRAINSTORM_PROVIDER", "ollama")
	t.Setenv("OLLAMA_HOST", "http://gpu-box:11434")

	cfg, err := Load(filepath.Join(t.TempDir(), "none.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.BaseURL != "http://gpu-box:11434" {
		t.Fatalf("BaseURL = %q", cfg.BaseURL)
	}
}

func TestLoad_OllamaDefaultModel(t *testing.T) {
	isolate(t)
	t.Setenv("BRAINSTORM_PROVIDER", "ollama")

	cfg, err := Load(filepath.Join(t.TempDir(), "none.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Model != "" {
		t.Fatalf("Model = %q, want empty so the provider picks its default", cfg.Model)
	}
	client, err := ideas.New(cfg.IdeaSettings())
	if err != nil {
		t.Fatalf("ideas.New: %v", err)
	}
	if client.Name() != "Ollama (llama3.2:latest)" {
		t.Fatalf("client = %q", client.Name())
	}
}

func TestLoad_ReadsDotEnv(t *testing.T) {
	isolate(t)
	writeFile(t, filepath.Dir(dotenvPath), ".env", "BRAINSTORM_PROVIDER=offline\nBRAINSTORM_MODEL=dotenv-model\n")

	cfg, err := Load(filepath.Join(t.TempDir(), "none.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Provider != "offline" || cfg.Model != "dotenv-model" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	base := Default()
	base.APIKey = "sk"

	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "ok", mutate: func(*Config) {}},
		{name: "unknown provider", mutate: func(c *Config) { c.Provider = "gemini" }, wantErr: "unknown provider"},
		{name: "zero batch", mutate: func(c *Config) { c.BatchSize = 0 }, wantErr: "must be positive"},
		{name: "huge batch", mutate: func(c *Config) { c.BatchSize = 11 }, wantErr: "maximum"},
		{name: "missing key", mutate: func(c *Config) { c.APIKey = "" }, wantErr: "OPENAI_API_KEY"},
		{name: "offline needs no key", mutate: func(c *Config) { c.Provider = "offline"; c.APIKey = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("Validate error = %v, want %q", err, tc.wantErr)
			}
		})
	}
}

func TestIdeaSettingsCarriesFields(t *testing.T) {
	cfg := Config{Provider: "ollama", Model: "m", BaseURL: "http://h", BatchSize: 4, Timeout: time.Second}
	s := cfg.IdeaSettings()
	if s.Provider != "ollama" || s.Model != "m" || s.BaseURL != "http://h" || s.BatchSize != 4 || s.Timeout != time.Second {
		t.Fatalf("unexpected settings: %+v", s)
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandPath("~/x/y.md")
	if err != nil {
		t.Fatalf("ExpandPath: %v", err)
	}
	if got != filepath.Join(home, "x", "y.md") {
		t.Fatalf("ExpandPath = %q", got)
	}
	if _, err := ExpandPath("   "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/csheth/brainstorm/internal/ideas"
)

// Config holds everything brainstorm needs before the TUI starts.
type Config struct {
	Provider   string
	Model      string
	BaseURL    string
	APIKey     string
	BatchSize  int
	Timeout    time.Duration
	ExportPath string
	LogFile    string
}

const (
	defaultConfigPath = "~/.config/brainstorm/config.toml"
	defaultExportPath = "~/brainstorm-favorites.md"
	defaultProvider   = ideas.ProviderOpenAI
	defaultBatchSize  = 5
	defaultTimeout    = 60 * time.Second
	maxBatchSize      = 10
)

// dotenvPath is read relative to the working directory.
var dotenvPath = ".env"

// Default returns the built-in configuration. Model is left empty so the
// selected provider falls back to its own default model.
func Default() Config {
	return Config{
		Provider:   defaultProvider,
		BatchSize:  defaultBatchSize,
		Timeout:    defaultTimeout,
		ExportPath: mustExpand(defaultExportPath),
	}
}

// Load layers the TOML file at path (or the default location) and the
// environment over the built-in defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg, err := loadFile(path)
	if err != nil {
		return Config{}, err
	}
	// .env never overrides variables that are already set.
	if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", dotenvPath, err)
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string) (Config, error) {
	cfg := Default()

	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}
	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Provider       string `toml:"provider"`
		Model          string `toml:"model"`
		BaseURL        string `toml:"base_url"`
		APIKey         string `toml:"api_key"`
		BatchSize      int    `toml:"batch_size"`
		TimeoutSeconds int    `toml:"timeout_seconds"`
		ExportPath     string `toml:"export_path"`
		LogFile        string `toml:"log_file"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	setString(&cfg.Provider, strings.ToLower(raw.Provider))
	setString(&cfg.Model, raw.Model)
	setString(&cfg.BaseURL, raw.BaseURL)
	setString(&cfg.APIKey, raw.APIKey)
	if raw.BatchSize != 0 {
		cfg.BatchSize = raw.BatchSize
	}
	if raw.TimeoutSeconds > 0 {
		cfg.Timeout = time.Duration(raw.TimeoutSeconds) * time.Second
	}
	if p := strings.TrimSpace(raw.ExportPath); p != "" {
		cfg.ExportPath = mustExpand(p)
	}
	if p := strings.TrimSpace(raw.LogFile); p != "" {
		cfg.LogFile = mustExpand(p)
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := getEnv("BRAINSTORM_PROVIDER"); v != "" {
		c.Provider = strings.ToLower(v)
	}
	setString(&c.Model, getEnv("BRAINSTORM_MODEL"))
	setString(&c.BaseURL, getEnv("BRAINSTORM_BASE_URL"))
	if v := getEnv("BRAINSTORM_API_KEY"); v != "" {
		c.APIKey = v
	} else if c.APIKey == "" {
		c.APIKey = getEnv("OPENAI_API_KEY")
	}
	if v := getEnv("BRAINSTORM_BATCH_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse BRAINSTORM_BATCH_SIZE: %w", err)
		}
		c.BatchSize = n
	}
	if v := getEnv("BRAINSTORM_EXPORT_PATH"); v != "" {
		c.ExportPath = mustExpand(v)
	}
	if v := getEnv("BRAINSTORM_LOG_FILE"); v != "" {
		c.LogFile = mustExpand(v)
	}
	if c.Provider == ideas.ProviderOllama && c.BaseURL == "" {
		c.BaseURL = getEnv("OLLAMA_HOST")
	}
	return nil
}

// Validate reports the first setting that would stop a session from starting.
func (c Config) Validate() error {
	switch c.Provider {
	case ideas.ProviderOpenAI, ideas.ProviderOllama, ideas.ProviderOffline:
	default:
		return fmt.Errorf("unknown provider %q (want openai, ollama or offline)", c.Provider)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch size must be positive, got %d", c.BatchSize)
	}
	if c.BatchSize > maxBatchSize {
		return fmt.Errorf("batch size %d exceeds the maximum of %d", c.BatchSize, maxBatchSize)
	}
	if c.Provider == ideas.ProviderOpenAI && c.APIKey == "" {
		return fmt.Errorf("BRAINSTORM_API_KEY or OPENAI_API_KEY is required for the openai provider")
	}
	return nil
}

// IdeaSettings converts c into the settings the idea client is built from.
func (c Config) IdeaSettings() ideas.Settings {
	return ideas.Settings{
		Provider:  c.Provider,
		Model:     c.Model,
		BaseURL:   c.BaseURL,
		APIKey:    c.APIKey,
		BatchSize: c.BatchSize,
		Timeout:   c.Timeout,
	}
}

// ExpandPath resolves ~ and relative paths to an absolute path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func getEnv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func setString(dst *string, value string) {
	if v := strings.TrimSpace(value); v != "" {
		*dst = v
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}

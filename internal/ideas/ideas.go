package ideas

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	ProviderOpenAI  = "openai"
	ProviderOllama  = "ollama"
	ProviderOffline = "offline"
)

const (
	defaultOpenAIModel = "gpt-4o-mini"
	defaultOllamaModel = "llama3.2:latest"
	defaultOllamaHost  = "http://localhost:11434"
	defaultBatchSize   = 5
	maxIdeaRunes       = 280
)

const defaultHTTPTimeout = 60 * time.Second

// Settings describes how to build an idea client.
type Settings struct {
	Provider   string
	Model      string
	BaseURL    string
	APIKey     string
	BatchSize  int
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client fetches a batch of short ideas for a topic.
type Client interface {
	FetchIdeas(ctx context.Context, topic string) ([]string, error)
	Name() string
}

// New builds the client named by s.Provider.
func New(s Settings) (Client, error) {
	batch := s.BatchSize
	if batch <= 0 {
		batch = defaultBatchSize
	}
	switch strings.ToLower(strings.TrimSpace(s.Provider)) {
	case "", ProviderOpenAI:
		model := s.Model
		if model == "" {
			model = defaultOpenAIModel
		}
		return newOpenAIClient(s.APIKey, s.BaseURL, model, batch, pickHTTPClient(s.HTTPClient, s.Timeout))
	case ProviderOllama:
		host := strings.TrimRight(s.BaseURL, "/")
		if host == "" {
			if env := os.Getenv("OLLAMA_HOST"); env != "" {
				host = strings.TrimRight(env, "/")
			} else {
				host = defaultOllamaHost
			}
		}
		model := s.Model
		if model == "" {
			model = defaultOllamaModel
		}
		return &ollamaClient{
			host:   host,
			model:  model,
			batch:  batch,
			client: pickHTTPClient(s.HTTPClient, s.Timeout),
		}, nil
	case ProviderOffline:
		return NewOffline(batch), nil
	default:
		return nil, fmt.Errorf("unknown idea provider %q", s.Provider)
	}
}

func pickHTTPClient(custom *http.Client, timeout time.Duration) *http.Client {
	if custom != nil {
		return custom
	}
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return &http.Client{Timeout: timeout}
}

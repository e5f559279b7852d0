package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/brainstorm/internal/config"
	"github.com/csheth/brainstorm/internal/ideas"
	"github.com/csheth/brainstorm/internal/topic"
	"github.com/csheth/brainstorm/internal/tui"
)

func main() {
	configPath := flag.String("config", "", "path to config.toml (default ~/.config/brainstorm/config.toml)")
	provider := flag.String("provider", "", "idea provider: openai, ollama or offline")
	model := flag.String("model", "", "model name for the selected provider")
	endpoint := flag.String("endpoint", "", "custom API base URL (OpenAI-compatible or Ollama host)")
	batch := flag.Int("batch", 0, "ideas per fetch (1-10)")
	topicText := flag.String("topic", "", "start brainstorming this topic immediately")
	topicFile := flag.String("topic-file", "", "derive the starting topic from a text or PDF file")
	exportPath := flag.String("export", "", "where x writes starred ideas (.md, .html or .json)")
	offline := flag.Bool("offline", false, "generate ideas locally without any API")
	logPath := flag.String("log", "", "append debug logs to this file")
	noAltScreen := flag.Bool("no-alt-screen", false, "disable the alternate screen buffer")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Println("failed to load config:", err)
		os.Exit(1)
	}
	applyFlags(&cfg, flagOverrides{
		provider:   *provider,
		model:      *model,
		endpoint:   *endpoint,
		batch:      *batch,
		exportPath: *exportPath,
		logPath:    *logPath,
		offline:    *offline,
	})
	if err := cfg.Validate(); err != nil {
		fmt.Println("invalid configuration:", err)
		os.Exit(1)
	}

	if cfg.LogFile != "" {
		f, err := tea.LogToFile(cfg.LogFile, "brainstorm")
		if err != nil {
			fmt.Println("failed to open log file:", err)
			os.Exit(1)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	initialTopic := strings.TrimSpace(*topicText)
	if initialTopic == "" && *topicFile != "" {
		initialTopic, err = topic.FromFile(*topicFile)
		if err != nil {
			fmt.Println("failed to read topic file:", err)
			os.Exit(1)
		}
	}

	client, err := ideas.New(cfg.IdeaSettings())
	if err != nil {
		fmt.Println("failed to set up idea provider:", err)
		os.Exit(1)
	}
	log.Printf("[main] provider=%s batch=%d export=%s", client.Name(), cfg.BatchSize, cfg.ExportPath)

	opts := []tea.ProgramOption{tea.WithMouseCellMotion()}
	if !*noAltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	program := tea.NewProgram(
		tui.New(tui.Config{
			Fetcher:      client,
			ProviderName: client.Name(),
			ExportPath:   cfg.ExportPath,
			InitialTopic: initialTopic,
			FetchTimeout: cfg.Timeout,
		}),
		opts...,
	)

	if _, err := program.Run(); err != nil {
		fmt.Println("program error:", err)
		os.Exit(1)
	}
}

type flagOverrides struct {
	provider   string
	model      string
	endpoint   string
	batch      int
	exportPath string
	logPath    string
	offline    bool
}

func applyFlags(cfg *config.Config, f flagOverrides) {
	if f.provider != "" {
		cfg.Provider = strings.ToLower(strings.TrimSpace(f.provider))
	}
	if f.offline {
		cfg.Provider = ideas.ProviderOffline
	}
	if f.model != "" {
		cfg.Model = f.model
	}
	if f.endpoint != "" {
		cfg.BaseURL = f.endpoint
	}
	if f.batch != 0 {
		cfg.BatchSize = f.batch
	}
	if f.exportPath != "" {
		if expanded, err := config.ExpandPath(f.exportPath); err == nil {
			cfg.ExportPath = expanded
		}
	}
	if f.logPath != "" {
		if expanded, err := config.ExpandPath(f.logPath); err == nil {
			cfg.LogFile = expanded
		}
	}
}

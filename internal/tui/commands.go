package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/brainstorm/internal/deck"
	"github.com/csheth/brainstorm/internal/export"
)

func fetchIdeasJob(fetcher deck.Fetcher, req deck.Request, timeout time.Duration) jobRunner {
	return func(parent context.Context) (tea.Msg, error) {
		ctx, cancel := context.WithTimeout(parent, timeout)
		defer cancel()
		res := deck.Run(ctx, fetcher, req)
		return ideasResultMsg{result: res}, res.Err
	}
}

func exportFavoritesJob(path string, payload export.Export) jobRunner {
	return func(parent context.Context) (tea.Msg, error) {
		if err := export.Favorites(path, payload); err != nil {
			return exportResultMsg{path: path, err: err}, err
		}
		return exportResultMsg{path: path, count: len(payload.Favorites)}, nil
	}
}

func typingTickCmd(seq int) tea.Cmd {
	return tea.Tick(typingInterval, func(time.Time) tea.Msg {
		return typingTickMsg{seq: seq}
	})
}

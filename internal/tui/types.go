package tui

import (
	"time"

	"github.com/csheth/brainstorm/internal/deck"
)

type stage int

const (
	stageInput stage = iota
	stageLoading
	stageDeck
)

func (s stage) String() string {
	switch s {
	case stageLoading:
		return "loading"
	case stageDeck:
		return "deck"
	default:
		return "input"
	}
}

const heroTagline = "Swipe through ideas. Star the keepers."

const topicPlaceholder = "What's on your mind?"

const (
	minCardWidth        = 30
	maxCardWidth        = 88
	cardHorizontalInset = 6
	typingInterval      = 70 * time.Millisecond
	defaultFetchTimeout = 2 * time.Minute
	topicCharLimit      = 200
)

type ideasResultMsg struct {
	result deck.Result
}

type exportResultMsg struct {
	path  string
	count int
	err   error
}

// typingTickMsg reveals one more rune of the placeholder. seq ties a tick
// to the reveal that scheduled it.
type typingTickMsg struct {
	seq int
}

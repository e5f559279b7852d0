package deck

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyTopic indicates the user submitted a blank topic.
	ErrEmptyTopic = errors.New("topic cannot be empty")

	// ErrFetchInFlight indicates a fetch was requested while another is pending.
	ErrFetchInFlight = errors.New("a fetch is already in flight")

	// ErrTopicLocked indicates a new topic was submitted while ideas are shown.
	ErrTopicLocked = errors.New("reset the deck before choosing a new topic")

	// ErrFetchFailed wraps any error returned by the idea fetcher.
	ErrFetchFailed = errors.New("fetching ideas failed")

	// ErrNoIdeas indicates a fetch succeeded but returned nothing to show.
	ErrNoIdeas = fmt.Errorf("%w: no ideas returned", ErrFetchFailed)

	// ErrStaleResponse indicates a fetch result arrived for a session that
	// has since been reset.
	ErrStaleResponse = errors.New("stale fetch response discarded")

	// ErrOutOfRange indicates a move past either end of the deck.
	ErrOutOfRange = errors.New("active index out of range")

	// ErrInvalidIndex indicates a card index outside the deck.
	ErrInvalidIndex = errors.New("invalid card index")
)

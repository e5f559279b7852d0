package deck

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// State is the controller's position in the browse lifecycle.
type State int

const (
	StateEmpty State = iota
	StateFetching
	StateBrowsing
)

func (s State) String() string {
	switch s {
	case StateFetching:
		return "fetching"
	case StateBrowsing:
		return "browsing"
	default:
		return "empty"
	}
}

// Fetcher produces a batch of ideas for a topic.
type Fetcher interface {
	FetchIdeas(ctx context.Context, topic string) ([]string, error)
}

var errNoFetcher = errors.New("no idea fetcher configured")

// Request describes one fetch the controller has authorised. Generation ties
// the eventual Result back to the session that issued it.
type Request struct {
	Generation uint64
	SessionID  string
	Topic      string
	// Advance moves onto the first new idea once the batch is appended.
	Advance bool
}

// Result is the outcome of running a Request.
type Result struct {
	Request Request
	Ideas   []string
	Err     error
}

// Run performs req against f. It does not touch any controller, so it is safe
// to call off the update loop; hand the Result back through Controller.Apply.
func Run(ctx context.Context, f Fetcher, req Request) Result {
	if f == nil {
		return Result{Request: req, Err: errNoFetcher}
	}
	ideas, err := f.FetchIdeas(ctx, req.Topic)
	return Result{Request: req, Ideas: ideas, Err: err}
}

// Snapshot is a read-only copy of the session for rendering.
type Snapshot struct {
	Items     []string
	Active    int
	HasActive bool
	Favorites []int
	State     State
	Topic     string
	SessionID string
	LastError error
}

// Current returns the idea on the active card.
func (s Snapshot) Current() (string, bool) {
	if !s.HasActive {
		return "", false
	}
	return s.Items[s.Active], true
}

func (s Snapshot) IsFavorite(index int) bool {
	for _, idx := range s.Favorites {
		if idx == index {
			return true
		}
	}
	return false
}

// Controller turns user commands into deck mutations and fetch requests. It
// is owned by a single update loop and is not safe for concurrent use.
type Controller struct {
	deck       *Deck
	topic      string
	sessionID  string
	inFlight   bool
	generation uint64
	pending    uint64
	lastErr    error
}

// NewController returns a controller with an empty deck.
func NewController() *Controller {
	return &Controller{deck: New()}
}

// State derives the lifecycle state from the deck and the in-flight flag.
func (c *Controller) State() State {
	switch {
	case c.inFlight:
		return StateFetching
	case c.deck.Len() > 0:
		return StateBrowsing
	default:
		return StateEmpty
	}
}

func (c *Controller) Topic() string {
	return c.topic
}

func (c *Controller) FetchInFlight() bool {
	return c.inFlight
}

// SubmitTopic starts a session for text and returns the first fetch to run.
func (c *Controller) SubmitTopic(text string) (Request, error) {
	topic := strings.TrimSpace(text)
	if topic == "" {
		return Request{}, ErrEmptyTopic
	}
	if c.inFlight {
		return Request{}, ErrFetchInFlight
	}
	if c.deck.Len() > 0 {
		return Request{}, ErrTopicLocked
	}
	c.topic = topic
	c.sessionID = uuid.NewString()
	return c.issue(false), nil
}

// SwipeForward advances to the next card. At the last card it instead
// returns a fetch for one more batch and reports fetch as true. It is a
// no-op unless the controller is browsing.
func (c *Controller) SwipeForward() (req Request, fetch bool) {
	if c.State() != StateBrowsing {
		return Request{}, false
	}
	if !c.deck.IsAtEnd() {
		_ = c.deck.Advance()
		c.lastErr = nil
		return Request{}, false
	}
	return c.issue(true), true
}

// SwipeBackward returns to the previous card. On the first card it stays put.
// Moving to another card clears the last fetch error.
func (c *Controller) SwipeBackward() {
	if c.State() != StateBrowsing {
		return
	}
	if idx, _ := c.deck.Active(); idx == 0 {
		return
	}
	_ = c.deck.Retreat()
	c.lastErr = nil
}

// ToggleFavorite flips the star on a card. An invalid index is reported and
// nothing changes.
func (c *Controller) ToggleFavorite(index int) error {
	return c.deck.ToggleFavorite(index)
}

// ToggleCurrentFavorite stars or unstars the active card.
func (c *Controller) ToggleCurrentFavorite() error {
	idx, ok := c.deck.Active()
	if !ok {
		return ErrInvalidIndex
	}
	return c.deck.ToggleFavorite(idx)
}

// Reset clears the session. Any fetch still outstanding becomes stale.
func (c *Controller) Reset() {
	c.deck.Reset()
	c.topic = ""
	c.sessionID = ""
	c.inFlight = false
	c.generation++
	c.pending = 0
	c.lastErr = nil
}

// Apply folds a completed fetch into the session. Results from a reset
// session return ErrStaleResponse and change nothing. Fetch errors and empty
// batches clear the in-flight flag, leave the deck untouched and are
// returned wrapped in ErrFetchFailed.
func (c *Controller) Apply(res Result) error {
	if !c.inFlight || res.Request.Generation != c.pending {
		return ErrStaleResponse
	}
	c.inFlight = false
	c.pending = 0
	if res.Err != nil {
		c.lastErr = fmt.Errorf("%w: %w", ErrFetchFailed, res.Err)
		return c.lastErr
	}
	if len(res.Ideas) == 0 {
		c.lastErr = ErrNoIdeas
		return c.lastErr
	}
	c.deck.AppendBatch(res.Ideas)
	if res.Request.Advance {
		// The batch is non-empty, so the old last card has a successor.
		_ = c.deck.Advance()
	}
	c.lastErr = nil
	return nil
}

// Snapshot copies the session for the presentation layer.
func (c *Controller) Snapshot() Snapshot {
	active, ok := c.deck.Active()
	return Snapshot{
		Items:     c.deck.Items(),
		Active:    active,
		HasActive: ok,
		Favorites: c.deck.Favorites(),
		State:     c.State(),
		Topic:     c.topic,
		SessionID: c.sessionID,
		LastError: c.lastErr,
	}
}

func (c *Controller) issue(advance bool) Request {
	c.generation++
	c.pending = c.generation
	c.inFlight = true
	c.lastErr = nil
	return Request{
		Generation: c.generation,
		SessionID:  c.sessionID,
		Topic:      c.topic,
		Advance:    advance,
	}
}

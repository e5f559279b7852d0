package tui

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/csheth/brainstorm/internal/deck"
	"github.com/csheth/brainstorm/internal/export"
)

// Config wires runtime options into the TUI program.
type Config struct {
	Fetcher      deck.Fetcher
	ProviderName string
	ExportPath   string
	// InitialTopic is submitted as soon as the program starts.
	InitialTopic string
	FetchTimeout time.Duration
	Now          func() time.Time
}

// New returns a tea.Model ready to be mounted into a Program.
func New(config Config) tea.Model {
	return newModel(config)
}

func newModel(config Config) *model {
	if config.FetchTimeout <= 0 {
		config.FetchTimeout = defaultFetchTimeout
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	if config.ProviderName == "" {
		config.ProviderName = "unconfigured"
	}

	topicInput := textinput.New()
	topicInput.CharLimit = topicCharLimit
	topicInput.Width = 60
	topicInput.Prompt = "› "
	topicInput.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return &model{
		config:     config,
		controller: deck.NewController(),
		keys:       defaultKeyMap(),
		bus:        newJobBus(config.ProviderName),
		jobs:       map[string]jobSnapshot{},
		stage:      stageInput,
		input:      topicInput,
		spinner:    spin,
		layout:     newPageLayout(),
	}
}

type model struct {
	config     Config
	controller *deck.Controller
	keys       keyMap
	bus        *jobBus
	jobs       map[string]jobSnapshot
	lastJob    jobSnapshot

	stage   stage
	input   textinput.Model
	spinner spinner.Model
	layout  pageLayout

	typed     int
	typingSeq int

	infoMessage  string
	errorMessage string
	helpVisible  bool
	exporting    bool
}

func (m *model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, m.restartTyping()}
	if topic := strings.TrimSpace(m.config.InitialTopic); topic != "" {
		m.input.SetValue(topic)
		cmds = append(cmds, m.submitTopic())
	}
	return tea.Batch(cmds...)
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case typingTickMsg:
		return m, m.advanceTyping(msg)
	case spinner.TickMsg:
		if m.busy() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.layout.Update(msg.Width, msg.Height)
		m.input.Width = m.layout.cardWidth - 4
		return m, nil
	case tea.MouseMsg:
		// The header doubles as the reset target.
		if msg.Type == tea.MouseLeft && m.stage != stageInput && msg.Y < lipgloss.Height(m.heroView()) {
			return m, m.reset()
		}
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		return m.handleKey(msg)
	case jobSignalMsg:
		m.trackJob(msg.Snapshot)
		return m, nil
	case jobResultEnvelope:
		m.trackJob(msg.Snapshot)
		if msg.Payload == nil {
			return m, nil
		}
		return m.Update(msg.Payload)
	case ideasResultMsg:
		m.handleIdeasResult(msg)
		return m, nil
	case exportResultMsg:
		m.handleExportResult(msg)
		return m, nil
	}
	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.stage {
	case stageInput:
		if key.Matches(msg, m.keys.Submit) {
			return m, m.submitTopic()
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	case stageLoading:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Reset):
			return m, m.reset()
		case key.Matches(msg, m.keys.Help):
			m.helpVisible = !m.helpVisible
		}
		return m, nil
	default:
		return m.handleDeckKey(msg)
	}
}

func (m *model) handleDeckKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Forward):
		return m, m.swipeForward()
	case key.Matches(msg, m.keys.Back):
		m.controller.SwipeBackward()
		m.errorMessage = ""
	case key.Matches(msg, m.keys.Star):
		m.toggleStar(-1)
	case key.Matches(msg, m.keys.StarNth):
		m.toggleStar(int(msg.String()[0] - '1'))
	case key.Matches(msg, m.keys.Export):
		return m, m.exportFavorites()
	case key.Matches(msg, m.keys.Reset):
		return m, m.reset()
	case key.Matches(msg, m.keys.Help):
		m.helpVisible = !m.helpVisible
	}
	return m, nil
}

func (m *model) submitTopic() tea.Cmd {
	req, err := m.controller.SubmitTopic(m.input.Value())
	if err != nil {
		m.errorMessage = describeError(err)
		return nil
	}
	log.Printf("[deck] session %s started (topic=%q)", req.SessionID, req.Topic)
	m.errorMessage = ""
	m.infoMessage = ""
	m.input.Blur()
	m.syncStage()
	return m.startFetch(req)
}

func (m *model) swipeForward() tea.Cmd {
	req, fetch := m.controller.SwipeForward()
	if !fetch {
		m.errorMessage = ""
		return nil
	}
	m.errorMessage = ""
	m.infoMessage = "Fetching more ideas…"
	m.syncStage()
	return m.startFetch(req)
}

func (m *model) startFetch(req deck.Request) tea.Cmd {
	job := fetchIdeasJob(m.config.Fetcher, req, m.config.FetchTimeout)
	return tea.Batch(m.bus.Start(jobKindFetch, job), m.spinner.Tick)
}

func (m *model) handleIdeasResult(msg ideasResultMsg) {
	prev := m.stage
	err := m.controller.Apply(msg.result)
	if errors.Is(err, deck.ErrStaleResponse) {
		log.Printf("[deck] dropped stale result (generation=%d)", msg.result.Request.Generation)
		return
	}
	m.syncStage()
	if err != nil {
		log.Printf("[deck] session %s fetch failed: %v", msg.result.Request.SessionID, err)
		m.infoMessage = ""
		if m.stage == stageInput && prev != stageInput {
			m.input.SetValue(m.controller.Topic())
			m.input.Placeholder = topicPlaceholder
			m.input.Focus()
			m.infoMessage = "Press enter to try again, or edit the topic."
		} else {
			m.infoMessage = "Swipe forward to try again."
		}
		return
	}
	snap := m.controller.Snapshot()
	if prev == stageLoading {
		m.infoMessage = fmt.Sprintf("%d ideas ready. Swipe with → and star with s.", len(snap.Items))
	} else {
		m.infoMessage = ""
	}
}

func (m *model) toggleStar(index int) {
	var err error
	if index < 0 {
		index = m.controller.Snapshot().Active
		err = m.controller.ToggleCurrentFavorite()
	} else {
		err = m.controller.ToggleFavorite(index)
	}
	if err != nil {
		m.errorMessage = fmt.Sprintf("No idea #%d yet.", index+1)
		return
	}
	m.errorMessage = ""
	if m.controller.Snapshot().IsFavorite(index) {
		m.infoMessage = fmt.Sprintf("Starred idea #%d.", index+1)
	} else {
		m.infoMessage = fmt.Sprintf("Unstarred idea #%d.", index+1)
	}
}

func (m *model) exportFavorites() tea.Cmd {
	if m.exporting {
		return nil
	}
	payload := export.FromSnapshot(m.controller.Snapshot(), m.config.Now())
	if len(payload.Favorites) == 0 {
		m.errorMessage = "Star an idea with s before exporting."
		return nil
	}
	if strings.TrimSpace(m.config.ExportPath) == "" {
		m.errorMessage = "No export path configured."
		return nil
	}
	m.exporting = true
	m.errorMessage = ""
	m.infoMessage = "Exporting favorites…"
	return tea.Batch(m.bus.Start(jobKindExport, exportFavoritesJob(m.config.ExportPath, payload)), m.spinner.Tick)
}

func (m *model) handleExportResult(msg exportResultMsg) {
	m.exporting = false
	if msg.err != nil {
		m.errorMessage = fmt.Sprintf("export failed: %v", msg.err)
		m.infoMessage = ""
		return
	}
	m.errorMessage = ""
	m.infoMessage = fmt.Sprintf("Exported %d favorite(s) to %s", msg.count, msg.path)
}

func (m *model) reset() tea.Cmd {
	if id := m.controller.Snapshot().SessionID; id != "" {
		log.Printf("[deck] session %s reset", id)
	}
	m.controller.Reset()
	m.errorMessage = ""
	m.infoMessage = ""
	m.helpVisible = false
	m.input.SetValue("")
	m.input.Focus()
	m.syncStage()
	return tea.Batch(textinput.Blink, m.restartTyping())
}

func (m *model) restartTyping() tea.Cmd {
	m.typingSeq++
	m.typed = 0
	m.input.Placeholder = ""
	return typingTickCmd(m.typingSeq)
}

func (m *model) advanceTyping(msg typingTickMsg) tea.Cmd {
	runes := []rune(topicPlaceholder)
	if msg.seq != m.typingSeq || m.typed >= len(runes) {
		return nil
	}
	m.typed++
	m.input.Placeholder = string(runes[:m.typed])
	if m.typed == len(runes) {
		return nil
	}
	return typingTickCmd(m.typingSeq)
}

func (m *model) syncStage() {
	snap := m.controller.Snapshot()
	switch {
	case snap.State == deck.StateEmpty:
		m.stage = stageInput
	case len(snap.Items) == 0:
		m.stage = stageLoading
	default:
		m.stage = stageDeck
	}
}

// busy keeps the spinner ticking. A fetch abandoned by a reset still counts
// until its job finishes, so its status badge keeps updating.
func (m *model) busy() bool {
	return m.controller.FetchInFlight() || m.exporting || m.jobRunning(jobKindFetch)
}

func describeError(err error) string {
	switch {
	case errors.Is(err, deck.ErrEmptyTopic):
		return "Type a topic first."
	case errors.Is(err, deck.ErrFetchInFlight):
		return "Still fetching ideas; hang tight."
	case errors.Is(err, deck.ErrTopicLocked):
		return "Press r to start a new topic."
	case errors.Is(err, deck.ErrNoIdeas):
		return "No ideas came back for that topic."
	default:
		return err.Error()
	}
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/csheth/brainstorm/internal/deck"
)

func (m *model) View() string {
	snap := m.controller.Snapshot()
	var body string
	switch m.stage {
	case stageLoading:
		body = m.viewLoading(snap)
	case stageDeck:
		body = m.viewDeck(snap)
	default:
		body = m.viewInput()
	}
	parts := []string{m.heroView(), body, m.messageView(snap)}
	if m.helpVisible {
		parts = append(parts, m.keyLegendView())
	}
	parts = append(parts, m.sessionMeterView(snap))
	return joinNonEmpty(parts)
}

func (m *model) viewInput() string {
	return joinNonEmpty([]string{
		sectionHeaderStyle.Render("Topic"),
		m.input.View(),
		helperStyle.Render("Enter to brainstorm • Ctrl+C to quit"),
	})
}

func (m *model) viewLoading(snap deck.Snapshot) string {
	line := fmt.Sprintf("%s Gathering ideas about %q…", m.spinner.View(), previewText(snap.Topic, 60))
	return joinNonEmpty([]string{
		helperStyle.Render(line),
		helperStyle.Render("r to start over • q to quit"),
	})
}

func (m *model) viewDeck(snap deck.Snapshot) string {
	idea, ok := snap.Current()
	if !ok {
		return ""
	}
	starred := snap.IsFavorite(snap.Active)

	counter := cardCounterStyle.Render(fmt.Sprintf("Idea %d / %d", snap.Active+1, len(snap.Items)))
	if starred {
		counter += "  " + starStyle.Render("★ starred")
	}
	style := cardStyle
	if starred {
		style = starredCardStyle
	}
	card := style.Width(m.layout.cardWidth).Render(counter + "\n\n" + wrapIdea(idea, m.layout.textWidth()))

	lines := []string{card}
	var footer []string
	if n := len(snap.Favorites); n > 0 {
		footer = append(footer, starStyle.Render(fmt.Sprintf("★ %d starred", n)))
	}
	switch {
	case snap.State == deck.StateFetching:
		footer = append(footer, helperStyle.Render(fmt.Sprintf("%s Fetching more ideas…", m.spinner.View())))
	case snap.Active == len(snap.Items)-1:
		footer = append(footer, helperStyle.Render("Last card: swipe forward for a fresh batch."))
	}
	if len(footer) > 0 {
		lines = append(lines, strings.Join(footer, "   "))
	}
	return strings.Join(lines, "\n")
}

func (m *model) messageView(snap deck.Snapshot) string {
	var lines []string
	switch {
	case m.errorMessage != "":
		lines = append(lines, errorStyle.Render(m.errorMessage))
	case snap.LastError != nil:
		lines = append(lines, errorStyle.Render(describeError(snap.LastError)))
	}
	if m.infoMessage != "" {
		message := m.infoMessage
		if m.exporting {
			message = fmt.Sprintf("%s %s", m.spinner.View(), message)
		}
		lines = append(lines, helperStyle.Render(message))
	}
	return strings.Join(lines, "\n")
}

func (m *model) heroView() string {
	logo := renderLogo()
	topic := m.controller.Topic()
	if topic == "" || m.stage == stageInput {
		return lipgloss.JoinVertical(lipgloss.Left, logo, taglineStyle.Render(heroTagline))
	}
	title := heroTitleStyle.Render(previewText(topic, 60))
	hint := taglineStyle.Render("click here or press r for a new topic")
	return lipgloss.JoinVertical(lipgloss.Left, logo, heroSummaryStyle.Render(title), heroSummaryStyle.Render(hint))
}

func (m *model) sessionMeterView(snap deck.Snapshot) string {
	stats := []string{
		m.config.ProviderName,
		fmt.Sprintf("State %s", snap.State),
		fmt.Sprintf("Ideas %d", len(snap.Items)),
		fmt.Sprintf("Stars %d", len(snap.Favorites)),
	}
	if snap.SessionID != "" {
		stats = append(stats, "Session "+shortID(snap.SessionID))
	}
	stats = append(stats, m.jobStatusBadges()...)
	return statusBarStyle.Render(m.layout.fitLine(strings.Join(stats, "  •  ")))
}

func (m *model) keyLegendView() string {
	bindings := m.keys.deckBindings()
	rows := []string{sectionHeaderStyle.Render("Cheatsheet")}
	const columns = 3
	for i := 0; i < len(bindings); i += columns {
		end := i + columns
		if end > len(bindings) {
			end = len(bindings)
		}
		var cells []string
		for _, binding := range bindings[i:end] {
			help := binding.Help()
			cell := lipgloss.JoinHorizontal(lipgloss.Top, keyStyle.Render(help.Key), keyDescStyle.Render(" "+help.Desc+"  "))
			cells = append(cells, cell)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return legendBoxStyle.Render(strings.Join(rows, "\n"))
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

func renderLogo() string {
	if len(logoArtLines) == 0 {
		return ""
	}
	width := 0
	lineRunes := make([][]rune, len(logoArtLines))
	for i, line := range logoArtLines {
		runes := []rune(line)
		lineRunes[i] = runes
		if len(runes) > width {
			width = len(runes)
		}
	}
	width++
	height := len(logoArtLines) + 1

	type cell struct {
		r     rune
		style lipgloss.Style
	}

	grid := make([][]cell, height)
	for i := range grid {
		grid[i] = make([]cell, width)
	}
	// Shadow first, offset one cell down and right, then the face on top.
	for y, runes := range lineRunes {
		for x, r := range runes {
			if r != ' ' {
				grid[y+1][x+1] = cell{r: r, style: logoShadowStyle}
			}
		}
	}
	for y, runes := range lineRunes {
		for x, r := range runes {
			if r != ' ' {
				grid[y][x] = cell{r: r, style: logoFaceStyle}
			}
		}
	}

	lines := make([]string, height)
	for y, row := range grid {
		var b strings.Builder
		for _, c := range row {
			if c.r == 0 {
				b.WriteRune(' ')
				continue
			}
			b.WriteString(c.style.Render(string(c.r)))
		}
		lines[y] = b.String()
	}
	return logoContainerStyle.Render(strings.Join(lines, "\n"))
}

package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wordwrap"
)

type pageLayout struct {
	windowWidth  int
	windowHeight int
	cardWidth    int
}

func newPageLayout() pageLayout {
	return pageLayout{cardWidth: 60}
}

func (l *pageLayout) Update(width, height int) {
	l.windowWidth = width
	l.windowHeight = height
	inner := width - cardHorizontalInset
	if inner < minCardWidth {
		inner = minCardWidth
	}
	if inner > maxCardWidth {
		inner = maxCardWidth
	}
	l.cardWidth = inner
}

// textWidth is the room left for idea text inside a card's border and padding.
func (l pageLayout) textWidth() int {
	width := l.cardWidth - 6
	if width < 20 {
		width = 20
	}
	return width
}

// fitLine clips a rendered line to the window so the status bar never wraps.
func (l pageLayout) fitLine(line string) string {
	if l.windowWidth <= 0 {
		return line
	}
	return ansi.Truncate(line, l.windowWidth, "…")
}

func wrapIdea(text string, width int) string {
	return wordwrap.String(strings.TrimSpace(text), width)
}

func previewText(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return strings.TrimSpace(string(runes[:limit])) + "…"
}

func joinNonEmpty(parts []string) string {
	filtered := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		filtered = append(filtered, part)
	}
	return strings.Join(filtered, "\n\n")
}

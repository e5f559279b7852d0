package ptytest

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Frame is one render of the program with escape sequences removed.
type Frame struct {
	Index int
	Plain string
}

// Renders start by erasing the screen or by homing the cursor.
var frameBoundary = regexp.MustCompile(`\x1b\[[0-9;]*J|\x1b\[H`)

func parseFrames(raw []byte) []Frame {
	segments := frameBoundary.Split(strings.ReplaceAll(string(raw), "\r", ""), -1)
	frames := make([]Frame, 0, len(segments))
	for _, segment := range segments {
		plain := normalizeLines(ansi.Strip(segment))
		if strings.TrimSpace(plain) == "" {
			continue
		}
		frames = append(frames, Frame{Index: len(frames), Plain: plain})
	}
	return frames
}

func plainText(raw []byte) string {
	return normalizeLines(ansi.Strip(strings.ReplaceAll(string(raw), "\r", "")))
}

func normalizeLines(s string) string {
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

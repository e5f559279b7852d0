package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestPageLayoutUpdate(t *testing.T) {
	cases := []struct {
		name      string
		width     int
		height    int
		cardWidth int
	}{
		{name: "tiny", width: 20, height: 10, cardWidth: minCardWidth},
		{name: "narrow", width: 80, height: 24, cardWidth: 74},
		{name: "wide", width: 200, height: 40, cardWidth: maxCardWidth},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			layout := newPageLayout()
			layout.Update(tc.width, tc.height)
			if layout.cardWidth != tc.cardWidth {
				t.Fatalf("card width mismatch: got %d want %d", layout.cardWidth, tc.cardWidth)
			}
		})
	}
}

func TestFitLineTruncatesToWindow(t *testing.T) {
	layout := newPageLayout()
	layout.Update(20, 10)
	got := layout.fitLine(strings.Repeat("x", 50))
	if w := ansi.StringWidth(got); w > 20 {
		t.Fatalf("line width %d exceeds window", w)
	}
	if !strings.HasSuffix(got, "…") {
		t.Fatalf("expected ellipsis, got %q", got)
	}
}

func TestPreviewText(t *testing.T) {
	if got := previewText("  short  ", 10); got != "short" {
		t.Fatalf("previewText = %q", got)
	}
	if got := previewText("abcdefghij", 4); got != "abcd…" {
		t.Fatalf("previewText = %q", got)
	}
}

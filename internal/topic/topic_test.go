package topic

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"
)

func writeTemp(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestFromFileReadsText(t *testing.T) {
	t.Parallel()

	path := writeTemp(t, "notes.txt", "\n  Urban   gardening\n\tfor small balconies \n")
	got, err := FromFile(path)
	if err != nil {
		t.Fatalf("FromFile: %v", err)
	}
	if got != "Urban gardening for small balconies" {
		t.Fatalf("topic = %q", got)
	}
}

func TestFromFileEmptyDocument(t *testing.T) {
	t.Parallel()

	path := writeTemp(t, "blank.md", " \n\t\n")
	_, err := FromFile(path)
	if !errors.Is(err, ErrEmptyDocument) {
		t.Fatalf("expected ErrEmptyDocument, got %v", err)
	}
}

func TestFromFileMissing(t *testing.T) {
	t.Parallel()

	_, err := FromFile(filepath.Join(t.TempDir(), "missing.txt"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestFromFileRejectsCorruptPDF(t *testing.T) {
	t.Parallel()

	path := writeTemp(t, "paper.PDF", "this is not a pdf")
	_, err := FromFile(path)
	if err == nil || !strings.Contains(err.Error(), "pdf") {
		t.Fatalf("expected pdf error, got %v", err)
	}
}

func TestNormalizeClipsAtWordBoundary(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("alpha beta ", 40)
	got := Normalize(long)
	if n := utf8.RuneCountInString(got); n > MaxRunes {
		t.Fatalf("topic has %d runes, want <= %d", n, MaxRunes)
	}
	if strings.HasSuffix(got, " ") || strings.HasSuffix(got, "alph") {
		t.Fatalf("expected clip on a word boundary, got %q", got)
	}
}

func TestNormalizeKeepsShortText(t *testing.T) {
	t.Parallel()

	if got := Normalize("  café   ideas "); got != "café ideas" {
		t.Fatalf("Normalize = %q", got)
	}
}

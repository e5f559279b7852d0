// Package export writes a session's starred ideas to disk as markdown,
// HTML or JSON.
package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yuin/goldmark"

	"github.com/csheth/brainstorm/internal/deck"
)

// ErrNothingToExport is returned when the session has no starred ideas.
var ErrNothingToExport = errors.New("no favorites to export")

// Favorite is one starred idea. Position is 1-based within the deck.
type Favorite struct {
	Position int    `json:"position"`
	Text     string `json:"text"`
}

// Export is the payload written by Favorites.
type Export struct {
	SessionID  string     `json:"sessionId,omitempty"`
	Topic      string     `json:"topic"`
	ExportedAt time.Time  `json:"exportedAt"`
	Favorites  []Favorite `json:"favorites"`
}

// FromSnapshot collects the starred ideas of a deck snapshot.
func FromSnapshot(s deck.Snapshot, now time.Time) Export {
	out := Export{
		SessionID:  s.SessionID,
		Topic:      s.Topic,
		ExportedAt: now,
	}
	for _, idx := range s.Favorites {
		if idx < 0 || idx >= len(s.Items) {
			continue
		}
		out.Favorites = append(out.Favorites, Favorite{Position: idx + 1, Text: s.Items[idx]})
	}
	return out
}

// Favorites writes e to path, choosing the format from the file extension:
// .json, .html/.htm, and markdown for anything else. Parent directories are
// created as needed and an existing file is replaced.
func Favorites(path string, e Export) error {
	if len(e.Favorites) == 0 {
		return ErrNothingToExport
	}
	if strings.TrimSpace(path) == "" {
		return errors.New("export path is empty")
	}

	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err = json.MarshalIndent(e, "", "  ")
	case ".html", ".htm":
		data, err = HTML(e)
	default:
		data = []byte(Markdown(e))
	}
	if err != nil {
		return fmt.Errorf("render export: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Markdown renders e as a heading plus a numbered list.
func Markdown(e Export) string {
	var b strings.Builder
	topic := strings.TrimSpace(e.Topic)
	if topic == "" {
		topic = "Untitled session"
	}
	fmt.Fprintf(&b, "# Favorite ideas: %s\n\n", topic)
	if !e.ExportedAt.IsZero() {
		fmt.Fprintf(&b, "_Exported %s", e.ExportedAt.Format("2006-01-02 15:04"))
		if e.SessionID != "" {
			fmt.Fprintf(&b, " · session %s", e.SessionID)
		}
		b.WriteString("_\n\n")
	}
	for _, fav := range e.Favorites {
		fmt.Fprintf(&b, "%d. %s\n", fav.Position, escapeListText(fav.Text))
	}
	return b.String()
}

// HTML renders the markdown form of e into a minimal standalone page.
func HTML(e Export) ([]byte, error) {
	var body bytes.Buffer
	if err := goldmark.Convert([]byte(Markdown(e)), &body); err != nil {
		return nil, err
	}
	var page bytes.Buffer
	page.WriteString("<!DOCTYPE html>\n<html>\n<head><meta charset=\"utf-8\"><title>Brainstorm favorites</title></head>\n<body>\n")
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")
	return page.Bytes(), nil
}

// escapeListText keeps idea text on one list item.
func escapeListText(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	return strings.ReplaceAll(text, "<", "&lt;")
}

// Package topic turns a document on disk into a brainstorm topic.
package topic

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// MaxRunes bounds the topic derived from a document.
const MaxRunes = 200

// maxPDFPages limits how much of a PDF is read; the opening pages carry the title and abstract.
const maxPDFPages = 2

// ErrEmptyDocument is returned when a file holds no usable text.
var ErrEmptyDocument = errors.New("document contains no text")

var extraneousWhitespace = regexp.MustCompile(`\s+`)

// FromFile reads path and returns its leading text as a single-line topic.
// Files ending in .pdf are text-extracted; everything else is read as text.
func FromFile(path string) (string, error) {
	var (
		raw string
		err error
	)
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		raw, err = pdfText(path, maxPDFPages)
	} else {
		var data []byte
		data, err = os.ReadFile(path)
		raw = string(data)
	}
	if err != nil {
		return "", err
	}
	topic := Normalize(raw)
	if topic == "" {
		return "", fmt.Errorf("%s: %w", path, ErrEmptyDocument)
	}
	return topic, nil
}

// Normalize collapses whitespace and clips text to MaxRunes, preferring a word boundary.
func Normalize(text string) string {
	text = strings.TrimSpace(extraneousWhitespace.ReplaceAllString(text, " "))
	runes := []rune(text)
	if len(runes) <= MaxRunes {
		return text
	}
	clipped := string(runes[:MaxRunes])
	if cut := strings.LastIndex(clipped, " "); cut > MaxRunes/2 {
		clipped = clipped[:cut]
	}
	return strings.TrimSpace(clipped)
}

func pdfText(path string, pages int) (string, error) {
	file, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}
	defer file.Close()

	var builder strings.Builder
	total := reader.NumPage()
	for i := 1; i <= total && i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to extract pdf text: %w", err)
		}
		builder.WriteString(text)
		builder.WriteByte(' ')
	}
	if builder.Len() > 0 {
		return builder.String(), nil
	}

	// Some generators only expose text through the whole-document reader.
	content, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract pdf text: %w", err)
	}
	if _, err := io.Copy(&builder, content); err != nil {
		return "", err
	}
	return builder.String(), nil
}

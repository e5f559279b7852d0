package ideas

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

const systemPrompt = "You are a brainstorming partner. Reply with short, concrete, surprising ideas. " +
	"No preamble, no closing remarks."

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	listMarkerRe = regexp.MustCompile(`^(?:[-*•]+|\d+[.)]|\(\d+\))\s*`)
	labelRe      = regexp.MustCompile(`(?i)^\**\s*(topic|title|idea|description)\s*\**\s*:\s*\**\s*`)
)

var errEmptyTopic = errors.New("topic cannot be empty")

func normalizeTopic(topic string) (string, error) {
	topic = strings.TrimSpace(whitespaceRe.ReplaceAllString(topic, " "))
	if topic == "" {
		return "", errEmptyTopic
	}
	return topic, nil
}

func buildSingleIdeaPrompt(topic string) string {
	return "Give me one fresh idea about: " + topic + "\n" +
		"Answer with the idea only, in 25 words or fewer."
}

func buildBatchPrompt(topic string, count int) string {
	return fmt.Sprintf(
		"Give me %d distinct ideas about: %s\n"+
			"Each idea must be 25 words or fewer.\n"+
			"Return ONLY a JSON array of strings, for example [\"first idea\",\"second idea\"].",
		count, topic,
	)
}

// parseIdeas turns a model reply into ideas. It accepts a JSON array, an
// object with an "ideas" array, or plain lines with optional list markers
// and Topic/Description labels.
func parseIdeas(raw string) []string {
	raw = strings.TrimSpace(stripCodeFence(raw))
	if raw == "" {
		return nil
	}
	if parsed, ok := parseJSONIdeas(raw); ok {
		return sanitizeIdeas(parsed)
	}
	return sanitizeIdeas(parseLines(raw))
}

func stripCodeFence(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "```") {
		return raw
	}
	raw = strings.TrimPrefix(raw, "```")
	if nl := strings.IndexByte(raw, '\n'); nl >= 0 {
		raw = raw[nl+1:]
	}
	return strings.TrimSuffix(strings.TrimSpace(raw), "```")
}

type structuredIdea struct {
	Topic       string `json:"topic"`
	Title       string `json:"title"`
	Idea        string `json:"idea"`
	Description string `json:"description"`
}

func (s structuredIdea) text() string {
	head := firstNonEmpty(s.Topic, s.Title, s.Idea)
	switch {
	case head != "" && s.Description != "":
		return head + ": " + s.Description
	case head != "":
		return head
	default:
		return s.Description
	}
}

func parseJSONIdeas(raw string) ([]string, bool) {
	candidates := []string{raw}
	if start := strings.Index(raw, "["); start >= 0 {
		if end := strings.LastIndex(raw, "]"); end > start {
			candidates = append(candidates, raw[start:end+1])
		}
	}
	for _, candidate := range candidates {
		// A decoded but empty list is an empty batch, not a line of text.
		var wrapper struct {
			Ideas *[]json.RawMessage `json:"ideas"`
		}
		if err := json.Unmarshal([]byte(candidate), &wrapper); err == nil && wrapper.Ideas != nil {
			return decodeEntries(*wrapper.Ideas), true
		}
		var entries []json.RawMessage
		if err := json.Unmarshal([]byte(candidate), &entries); err == nil && entries != nil {
			return decodeEntries(entries), true
		}
	}
	return nil, false
}

func decodeEntries(entries []json.RawMessage) []string {
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		var text string
		if err := json.Unmarshal(entry, &text); err == nil {
			out = append(out, text)
			continue
		}
		var structured structuredIdea
		if err := json.Unmarshal(entry, &structured); err == nil {
			out = append(out, structured.text())
		}
	}
	return out
}

func parseLines(raw string) []string {
	var (
		out   []string
		topic string
	)
	flushTopic := func() {
		if topic != "" {
			out = append(out, topic)
			topic = ""
		}
	}
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(listMarkerRe.ReplaceAllString(strings.TrimSpace(line), ""))
		if line == "" {
			continue
		}
		if m := labelRe.FindStringSubmatch(line); m != nil {
			value := strings.TrimSpace(strings.Trim(line[len(m[0]):], "*"))
			switch strings.ToLower(m[1]) {
			case "description":
				if topic != "" {
					out = append(out, topic+": "+value)
					topic = ""
				} else {
					out = append(out, value)
				}
			default:
				flushTopic()
				topic = value
			}
			continue
		}
		flushTopic()
		out = append(out, line)
	}
	flushTopic()
	return out
}

func sanitizeIdeas(ideas []string) []string {
	out := make([]string, 0, len(ideas))
	for _, idea := range ideas {
		idea = strings.TrimSpace(whitespaceRe.ReplaceAllString(idea, " "))
		idea = strings.Trim(idea, "\"'")
		idea = strings.TrimSpace(idea)
		if idea == "" {
			continue
		}
		out = append(out, clipText(idea, maxIdeaRunes))
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func clipText(text string, limit int) string {
	text = strings.TrimSpace(text)
	if limit <= 0 || len(text) <= limit {
		return text
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return strings.TrimSpace(string(runes[:limit-1])) + "…"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

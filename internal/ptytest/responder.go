package ptytest

import (
	"bytes"
	"io"
)

var (
	cursorPositionQuery = []byte("\x1b[6n")
	foregroundQuery     = []byte("\x1b]10;?")
	backgroundQuery     = []byte("\x1b]11;?")
)

// queryResponder answers the terminal capability queries lipgloss and
// bubbletea send on start-up. Without replies they wait for a timeout.
type queryResponder struct {
	w    io.Writer
	tail []byte
}

func newQueryResponder(w io.Writer) *queryResponder {
	return &queryResponder{w: w}
}

func (r *queryResponder) Process(chunk []byte) {
	// Keep a short tail so queries split across reads are still seen.
	data := append(r.tail, chunk...)
	if n := bytes.Count(data, cursorPositionQuery) - bytes.Count(r.tail, cursorPositionQuery); n > 0 {
		for i := 0; i < n; i++ {
			_, _ = r.w.Write([]byte("\x1b[1;1R"))
		}
	}
	if bytes.Contains(data, foregroundQuery) && !bytes.Contains(r.tail, foregroundQuery) {
		_, _ = r.w.Write([]byte("\x1b]10;rgb:ffff/ffff/ffff\x07"))
	}
	if bytes.Contains(data, backgroundQuery) && !bytes.Contains(r.tail, backgroundQuery) {
		_, _ = r.w.Write([]byte("\x1b]11;rgb:0000/0000/0000\x07"))
	}
	const keep = 8
	if len(data) > keep {
		data = data[len(data)-keep:]
	}
	r.tail = append(r.tail[:0], data...)
}

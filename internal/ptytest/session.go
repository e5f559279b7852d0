// Package ptytest drives a terminal program through a pseudo terminal so
// end-to-end tests can type keys and wait for rendered text.
package ptytest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/creack/pty"
)

const (
	defaultWidth  = 100
	defaultHeight = 32
	pollInterval  = 25 * time.Millisecond
)

var (
	// KeyEnter sends a carriage return to the PTY.
	KeyEnter = []byte{'\r'}
	// KeyCtrlC requests the program to terminate.
	KeyCtrlC = []byte{3}
	// KeyRight is the right arrow escape sequence.
	KeyRight = []byte("\x1b[C")
	// KeyLeft is the left arrow escape sequence.
	KeyLeft = []byte("\x1b[D")
)

// Options configures how a Session spawns the program.
type Options struct {
	Command []string
	Dir     string
	Env     []string
	Width   int
	Height  int
}

// Session is a running program attached to a PTY. Output is captured for
// the lifetime of the process.
type Session struct {
	cmd  *exec.Cmd
	ptmx *os.File

	mu     sync.Mutex
	output bytes.Buffer

	readDone chan struct{}
	exited   chan struct{}
	exitErr  error
}

// Start launches opts.Command inside a PTY of the requested size.
func Start(opts Options) (*Session, error) {
	if len(opts.Command) == 0 {
		return nil, errors.New("ptytest: command is required")
	}
	width, height := opts.Width, opts.Height
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}

	cmd := exec.Command(opts.Command[0], opts.Command[1:]...)
	cmd.Dir = opts.Dir
	cmd.Env = buildEnv(opts.Env)

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: uint16(height), Cols: uint16(width)})
	if err != nil {
		return nil, fmt.Errorf("ptytest: start program: %w", err)
	}

	s := &Session{
		cmd:      cmd,
		ptmx:     ptmx,
		readDone: make(chan struct{}),
		exited:   make(chan struct{}),
	}
	go s.readLoop()
	go func() {
		s.exitErr = cmd.Wait()
		close(s.exited)
	}()
	return s, nil
}

func (s *Session) readLoop() {
	defer close(s.readDone)
	responder := newQueryResponder(s.ptmx)
	buf := make([]byte, 4096)
	for {
		n, err := s.ptmx.Read(buf)
		if n > 0 {
			chunk := buf[:n]
			responder.Process(chunk)
			s.mu.Lock()
			s.output.Write(chunk)
			s.mu.Unlock()
		}
		if err != nil {
			return
		}
	}
}

// Send writes raw input to the program.
func (s *Session) Send(input []byte) error {
	if _, err := s.ptmx.Write(input); err != nil {
		return fmt.Errorf("ptytest: write input: %w", err)
	}
	return nil
}

// Type sends text one rune at a time so each arrives as its own key press.
func (s *Session) Type(text string) error {
	for _, r := range text {
		if err := s.Send([]byte(string(r))); err != nil {
			return err
		}
		time.Sleep(pollInterval)
	}
	return nil
}

// Raw returns everything the program has written so far.
func (s *Session) Raw() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.output.Bytes()...)
}

// Screen returns the captured output with escape sequences removed.
func (s *Session) Screen() string {
	return plainText(s.Raw())
}

// Frames splits the captured output into individual renders.
func (s *Session) Frames() []Frame {
	return parseFrames(s.Raw())
}

// WaitFor blocks until text appears in the captured output or ctx ends.
func (s *Session) WaitFor(ctx context.Context, text string) error {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		if strings.Contains(s.Screen(), text) {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("ptytest: waiting for %q: %w\n---- screen ----\n%s", text, ctx.Err(), lastLines(s.Screen(), 40))
		case <-s.exited:
			if strings.Contains(s.Screen(), text) {
				return nil
			}
			return fmt.Errorf("ptytest: program exited before %q appeared (err=%v)", text, s.exitErr)
		case <-ticker.C:
		}
	}
}

// Wait blocks until the program exits and returns its exit error.
func (s *Session) Wait(ctx context.Context) error {
	select {
	case <-s.exited:
	case <-ctx.Done():
		return fmt.Errorf("ptytest: timeout waiting for program exit: %w", ctx.Err())
	}
	_ = s.ptmx.Close()
	<-s.readDone
	return s.exitErr
}

// Close kills the program if it is still running and releases the PTY.
func (s *Session) Close() error {
	select {
	case <-s.exited:
	default:
		if s.cmd.Process != nil {
			_ = s.cmd.Process.Kill()
		}
		<-s.exited
	}
	err := s.ptmx.Close()
	<-s.readDone
	if errors.Is(err, os.ErrClosed) {
		return nil
	}
	return err
}

func buildEnv(extra []string) []string {
	env := append(os.Environ(), extra...)
	for _, entry := range env {
		if strings.HasPrefix(entry, "TERM=") {
			return env
		}
	}
	return append(env, "TERM=xterm-256color")
}

func lastLines(text string, n int) string {
	lines := strings.Split(text, "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}

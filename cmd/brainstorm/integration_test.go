package main

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/csheth/brainstorm/internal/ptytest"
)

func TestBrainstormOfflineSession(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("pty not supported on windows")
	}
	if testing.Short() {
		t.Skip("builds the binary")
	}

	cmdDir := moduleDir(t)
	binary := buildBinary(t, cmdDir)
	home := t.TempDir()
	exportPath := filepath.Join(home, "favorites.md")

	session, err := ptytest.Start(ptytest.Options{
		Command: []string{binary, "-offline", "-no-alt-screen", "-batch", "3", "-export", exportPath},
		Dir:     home,
		Env:     []string{"HOME=" + home, "BRAINSTORM_PROVIDER=", "BRAINSTORM_LOG_FILE="},
		Width:   100,
		Height:  32,
	})
	if err != nil {
		t.Fatalf("start CLI: %v", err)
	}
	defer session.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	wait := func(text string) {
		t.Helper()
		if err := session.WaitFor(ctx, text); err != nil {
			t.Fatal(err)
		}
	}

	wait("What's on your mind?")
	if err := session.Type("kites"); err != nil {
		t.Fatal(err)
	}
	if err := session.Send(ptytest.KeyEnter); err != nil {
		t.Fatal(err)
	}
	wait("Idea 1 / 3")
	wait("around kites")

	if err := session.Send(ptytest.KeyRight); err != nil {
		t.Fatal(err)
	}
	wait("Idea 2 / 3")
	if err := session.Type("s"); err != nil {
		t.Fatal(err)
	}
	wait("★ 1 starred")

	if err := session.Type("ll"); err != nil {
		t.Fatal(err)
	}
	wait("Idea 4 / 6")

	if err := session.Type("x"); err != nil {
		t.Fatal(err)
	}
	wait("Exported 1 favorite(s)")

	if err := session.Type("q"); err != nil {
		t.Fatal(err)
	}
	if err := session.Wait(ctx); err != nil {
		t.Fatalf("program exited with error: %v", err)
	}

	data, err := os.ReadFile(exportPath)
	if err != nil {
		t.Fatalf("export missing: %v", err)
	}
	if !strings.Contains(string(data), "# Favorite ideas: kites") || !strings.Contains(string(data), "2. 2. Write a beginner's field guide to kites") {
		t.Fatalf("unexpected export:\n%s", data)
	}
}

func moduleDir(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("runtime caller unavailable")
	}
	return filepath.Dir(file)
}

func buildBinary(t *testing.T, cmdDir string) string {
	t.Helper()
	binPath := filepath.Join(t.TempDir(), "brainstorm-integration")
	cmd := exec.Command("go", "build", "-o", binPath, ".")
	cmd.Dir = cmdDir
	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build CLI: %v\n%s", err, output)
	}
	return binPath
}

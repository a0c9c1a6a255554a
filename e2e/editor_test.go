// ABOUTME: E2E tests for the kiloterm binary: Ctrl+Q quit, signal exit, banner and non-tty startup
// ABOUTME: Checks exit codes, screen output and that the pty is restored after every exit path

//go:build linux || darwin

package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
	"time"
)

const clearScreen = "\x1b[2J"

func TestEditor_CtrlQ_ExitsAndRestores(t *testing.T) {
	if testing.Short() {
		t.Skip("e2e tests skipped in short mode")
	}

	s := startKilo(t, t.TempDir())
	defer s.close()

	// Raw mode discards input typed before activation; wait for the first frame.
	s.expectStringTimeout(t, clearScreen, 5*time.Second)

	s.send(t, []byte{'A'})
	s.sendCtrl(t, 'q')

	if code := s.waitExit(t, 5*time.Second); code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if after := s.state(t); after != s.before {
		t.Error("pty attributes after exit differ from those before start")
	}
	if strings.Count(s.output(), clearScreen) < 3 {
		t.Errorf("output %q, want two frames and a final clear", s.output())
	}
}

func TestEditor_SIGTERM_ExitsAndRestores(t *testing.T) {
	if testing.Short() {
		t.Skip("e2e tests skipped in short mode")
	}

	s := startKilo(t, t.TempDir())
	defer s.close()

	s.expectStringTimeout(t, clearScreen, 5*time.Second)
	if err := s.cmd.Process.Signal(syscall.SIGTERM); err != nil {
		t.Fatal(err)
	}

	if code := s.waitExit(t, 5*time.Second); code != 128+int(syscall.SIGTERM) {
		t.Fatalf("exit code = %d, want %d", code, 128+int(syscall.SIGTERM))
	}
	if after := s.state(t); after != s.before {
		t.Error("pty attributes after SIGTERM differ from those before start")
	}
}

func TestEditor_SIGINT_ExitsAndRestores(t *testing.T) {
	if testing.Short() {
		t.Skip("e2e tests skipped in short mode")
	}

	s := startKilo(t, t.TempDir())
	defer s.close()

	s.expectStringTimeout(t, clearScreen, 5*time.Second)
	if err := s.cmd.Process.Signal(syscall.SIGINT); err != nil {
		t.Fatal(err)
	}

	if code := s.waitExit(t, 5*time.Second); code != 128+int(syscall.SIGINT) {
		t.Fatalf("exit code = %d, want %d", code, 128+int(syscall.SIGINT))
	}
	if after := s.state(t); after != s.before {
		t.Error("pty attributes after SIGINT differ from those before start")
	}
}

func TestEditor_ConfiguredBannerAndQuitKey(t *testing.T) {
	if testing.Short() {
		t.Skip("e2e tests skipped in short mode")
	}

	home := t.TempDir()
	dir := filepath.Join(home, ".kiloterm")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	cfg := "banner: kiloterm e2e\nquit_key: ctrl+x\nplaceholder: \".\"\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	s := startKilo(t, home)
	defer s.close()

	s.expectStringTimeout(t, "kiloterm e2e", 5*time.Second)

	s.sendCtrl(t, 'q')
	time.Sleep(300 * time.Millisecond)
	select {
	case <-s.exited:
		t.Fatal("Ctrl+Q exited although the quit key is Ctrl+X")
	default:
	}

	s.sendCtrl(t, 'x')
	if code := s.waitExit(t, 5*time.Second); code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
}

func TestEditor_NonTerminalInputFails(t *testing.T) {
	if testing.Short() {
		t.Skip("e2e tests skipped in short mode")
	}

	home := t.TempDir()
	cmd := exec.Command(binPath)
	cmd.Dir = home
	cmd.Env = append(os.Environ(), "HOME="+home)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("Run() error = %v, want an exit error", err)
	}
	if exitErr.ExitCode() != 1 {
		t.Errorf("exit code = %d, want 1", exitErr.ExitCode())
	}
	if !strings.Contains(stderr.String(), "tcgetattr") {
		t.Errorf("stderr = %q, want a tcgetattr diagnostic", stderr.String())
	}
}

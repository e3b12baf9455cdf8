package session_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"stagedtimer/internal/config"
	"stagedtimer/internal/instance"
	"stagedtimer/internal/session"
)

func fixedNow() time.Time {
	return time.Date(2026, 10, 19, 8, 30, 0, 0, time.UTC)
}

func TestOpenWritesRunLog(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Dir = t.TempDir()
	cfg.Logging.Format = "json"

	s, err := session.Open(&cfg, session.Options{Now: fixedNow})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	if s.RunID != "20261019T083000.000Z" {
		t.Fatalf("unexpected run id %q", s.RunID)
	}
	if s.ID == "" {
		t.Fatal("expected session id")
	}
	want := filepath.Join(cfg.Logging.Dir, "stagedtimer-20261019T083000.000Z.log")
	if s.LogPath != want {
		t.Fatalf("unexpected log path %q", s.LogPath)
	}

	s.Logger.Info("run started")
	data, err := os.ReadFile(filepath.Join(cfg.Logging.Dir, "stagedtimer.log"))
	if err != nil {
		t.Fatalf("read current log pointer: %v", err)
	}
	if !strings.Contains(string(data), s.ID) || !strings.Contains(string(data), "run started") {
		t.Fatalf("log missing session id or message: %q", data)
	}
}

func TestOpenWithoutLogDirUsesNop(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Dir = ""
	s, err := session.Open(&cfg, session.Options{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if s.LogPath != "" || s.Logger == nil {
		t.Fatalf("unexpected session %+v", s)
	}
}

func TestOpenExclusiveLocks(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Dir = ""
	cfg.Session.Exclusive = true
	cfg.Session.LockPath = filepath.Join(t.TempDir(), "timer.lock")

	first, err := session.Open(&cfg, session.Options{})
	if err != nil {
		t.Fatalf("first Open: %v", err)
	}
	if _, err := session.Open(&cfg, session.Options{}); !errors.Is(err, instance.ErrAlreadyRunning) {
		t.Fatalf("expected ErrAlreadyRunning, got %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	second, err := session.Open(&cfg, session.Options{})
	if err != nil {
		t.Fatalf("Open after Close: %v", err)
	}
	second.Close()
}

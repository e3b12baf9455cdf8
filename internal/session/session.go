// Package session prepares the per-run environment: identifiers, the run log
// file, log retention and the optional single-instance lock.
package session

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"stagedtimer/internal/config"
	"stagedtimer/internal/instance"
	"stagedtimer/internal/logging"
)

// Options adjusts session setup.
type Options struct {
	// LogLevel overrides logging.level when set.
	LogLevel string
	// Now defaults to time.Now.
	Now func() time.Time
	// Warn receives non-fatal setup problems. Defaults to stderr.
	Warn func(format string, args ...any)
}

// Session holds the resources of one timer run.
type Session struct {
	ID      string
	RunID   string
	LogPath string
	Logger  *slog.Logger

	lock *instance.Lock
}

// Open creates the run logger and, when session.exclusive is set, takes the
// instance lock. Close releases both.
func Open(cfg *config.Config, opts Options) (*Session, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Warn == nil {
		opts.Warn = func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, "warn: "+format+"\n", args...)
		}
	}

	now := opts.Now()
	s := &Session{
		ID:     uuid.NewString(),
		RunID:  now.UTC().Format("20060102T150405.000Z"),
		Logger: logging.NewNop(),
	}

	if cfg.Session.Exclusive {
		lock, err := instance.Acquire(cfg.Session.LockPath)
		if err != nil {
			return nil, err
		}
		s.lock = lock
	}

	level := cfg.Logging.Level
	if strings.TrimSpace(opts.LogLevel) != "" {
		level = opts.LogLevel
	}

	dir := cfg.Logging.Dir
	if dir == "" {
		return s, nil
	}
	s.LogPath = filepath.Join(dir, fmt.Sprintf("stagedtimer-%s.log", s.RunID))
	logger, err := logging.New(logging.Options{
		Level:       level,
		Format:      cfg.Logging.Format,
		OutputPaths: []string{s.LogPath},
		RunID:       s.RunID,
		SessionID:   s.ID,
	})
	if err != nil {
		opts.Warn("unable to open run log %s: %v", s.LogPath, err)
		s.LogPath = ""
		return s, nil
	}
	s.Logger = logger

	if err := logging.UpdateCurrentLink(dir, s.LogPath); err != nil {
		opts.Warn("unable to update %s link: %v", filepath.Join(dir, "stagedtimer.log"), err)
	}
	logging.CleanupOldLogs(logger, cfg.Logging.RetentionDays, now,
		logging.RetentionTarget{Dir: dir, Pattern: logging.RunLogPattern, Exclude: []string{s.LogPath}},
	)
	return s, nil
}

// Close releases the instance lock.
func (s *Session) Close() error {
	if s == nil {
		return nil
	}
	return s.lock.Release()
}

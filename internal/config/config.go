package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"stagedtimer/internal/apperr"
	"stagedtimer/internal/fileutil"
)

//go:embed sample_config.toml
var sampleConfig string

// Display controls the countdown line and plan output.
type Display struct {
	Color     string `toml:"color"`
	RefreshMS int    `toml:"refresh_ms"`
	ShowPlan  bool   `toml:"show_plan"`
}

// Notifications controls the terminal bell and ntfy push notifications.
type Notifications struct {
	Bell              bool   `toml:"bell"`
	NtfyTopic         string `toml:"ntfy_topic"`
	RequestTimeout    int    `toml:"request_timeout"`
	StageStarted      bool   `toml:"stage_started"`
	StageCompleted    bool   `toml:"stage_completed"`
	SequenceCompleted bool   `toml:"sequence_completed"`
	Cancelled         bool   `toml:"cancelled"`
}

// Logging contains configuration for the per-run log files.
type Logging struct {
	Format        string `toml:"format"`
	Level         string `toml:"level"`
	Dir           string `toml:"dir"`
	RetentionDays int    `toml:"retention_days"`
}

// Session controls the single-instance guard.
type Session struct {
	Exclusive bool   `toml:"exclusive"`
	LockPath  string `toml:"lock_path"`
}

// Config encapsulates all configuration values for stagedtimer.
//
// Configuration sections:
//   - Display: colour mode, refresh interval, plan table
//   - Notifications: bell and ntfy delivery per event kind
//   - Logging: log format, level, directory and retention
//   - Session: single-instance lock
//   - Presets: named stage lists runnable with --preset
type Config struct {
	Display       Display           `toml:"display"`
	Notifications Notifications     `toml:"notifications"`
	Logging       Logging           `toml:"logging"`
	Session       Session           `toml:"session"`
	Presets       map[string]Preset `toml:"presets"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/stagedtimer/config.toml")
}

// Load locates, parses, and validates a configuration file. A missing file
// yields the defaults. The returned config has all path fields expanded.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			var strict *toml.StrictMissingError
			if errors.As(err, &strict) {
				return nil, "", false, apperr.Wrap(apperr.ErrConfiguration, "config", "parse",
					strings.TrimSpace(strict.String()), nil)
			}
			return nil, "", false, apperr.Wrap(apperr.ErrConfiguration, "config", "parse", resolvedPath, err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("stagedtimer.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// RefreshInterval returns the countdown redraw interval.
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.Display.RefreshMS) * time.Millisecond
}

// NotifyTimeout returns the ntfy request timeout.
func (c *Config) NotifyTimeout() time.Duration {
	return time.Duration(c.Notifications.RequestTimeout) * time.Second
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if err := fileutil.WriteFileAtomic(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

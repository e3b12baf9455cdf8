package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeDisplay()
	c.normalizeNotifications()
	if err := c.normalizeLogging(); err != nil {
		return err
	}
	if err := c.normalizeSession(); err != nil {
		return err
	}
	c.normalizePresets()
	return nil
}

func (c *Config) normalizeDisplay() {
	c.Display.Color = strings.ToLower(strings.TrimSpace(c.Display.Color))
	if c.Display.Color == "" {
		c.Display.Color = defaultColor
	}
	if c.Display.RefreshMS == 0 {
		c.Display.RefreshMS = defaultRefreshMS
	}
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.NtfyTopic == "" {
		if value, ok := os.LookupEnv(envNtfyTopic); ok {
			c.Notifications.NtfyTopic = strings.TrimSpace(value)
		}
	}
	if c.Notifications.RequestTimeout == 0 {
		c.Notifications.RequestTimeout = defaultRequestTimeout
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	var err error
	if c.Logging.Dir, err = expandPath(strings.TrimSpace(c.Logging.Dir)); err != nil {
		return fmt.Errorf("logging.dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeSession() error {
	c.Session.LockPath = strings.TrimSpace(c.Session.LockPath)
	if c.Session.LockPath == "" {
		c.Session.LockPath = defaultLockPath
	}
	var err error
	if c.Session.LockPath, err = expandPath(c.Session.LockPath); err != nil {
		return fmt.Errorf("session.lock_path: %w", err)
	}
	return nil
}

func (c *Config) normalizePresets() {
	if len(c.Presets) == 0 {
		return
	}
	normalized := make(map[string]Preset, len(c.Presets))
	for key, preset := range c.Presets {
		preset.Description = strings.TrimSpace(preset.Description)
		normalized[normalizePresetKey(key)] = preset
	}
	c.Presets = normalized
}

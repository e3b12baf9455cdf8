package config

import (
	"fmt"
	"net/url"
	"strings"

	"stagedtimer/internal/apperr"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDisplay(); err != nil {
		return err
	}
	if err := c.validateNotifications(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validatePresets(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateDisplay() error {
	switch c.Display.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return invalid("display.color must be one of auto, always, never (got %q)", c.Display.Color)
	}
	if c.Display.RefreshMS < minRefreshMS || c.Display.RefreshMS > maxRefreshMS {
		return invalid("display.refresh_ms must be between %d and %d", minRefreshMS, maxRefreshMS)
	}
	return nil
}

func (c *Config) validateNotifications() error {
	if c.Notifications.RequestTimeout < 0 {
		return invalid("notifications.request_timeout must be positive")
	}
	topic := c.Notifications.NtfyTopic
	if topic == "" {
		return nil
	}
	parsed, err := url.Parse(topic)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return invalid("notifications.ntfy_topic must be a full http(s) URL such as https://ntfy.sh/my-darkroom (got %q)", topic)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return invalid("logging.format must be console or json (got %q)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return invalid("logging.level must be one of debug, info, warn, error (got %q)", c.Logging.Level)
	}
	if c.Logging.RetentionDays < 0 {
		return invalid("logging.retention_days must be 0 or greater")
	}
	return nil
}

func (c *Config) validatePresets() error {
	for _, key := range c.PresetKeys() {
		if strings.ContainsAny(key, " \t") {
			return invalid("presets.%s: preset keys must not contain whitespace", key)
		}
		if _, err := c.Presets[key].Plan(); err != nil {
			return apperr.Wrap(apperr.ErrConfiguration, "config", "validate",
				fmt.Sprintf("presets.%s", key), err)
		}
	}
	return nil
}

func invalid(format string, args ...any) error {
	return apperr.Wrap(apperr.ErrConfiguration, "config", "validate", fmt.Sprintf(format, args...), nil)
}

package config

import (
	"fmt"
	"sort"
	"strings"

	"stagedtimer/internal/apperr"
	"stagedtimer/internal/schedule"
)

// Preset is a named stage list stored in the config file.
type Preset struct {
	Description string           `toml:"description"`
	Wait        string           `toml:"wait"`
	Stages      []schedule.Entry `toml:"stages"`
}

// Plan parses the preset into a runnable plan.
func (p Preset) Plan() (schedule.Plan, error) {
	return schedule.ParsePlan(p.Wait, p.Stages)
}

// PresetKeys returns the configured preset keys in sorted order.
func (c *Config) PresetKeys() []string {
	keys := make([]string, 0, len(c.Presets))
	for key := range c.Presets {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// PresetPlan looks up a preset by key (case-insensitive) and parses it.
func (c *Config) PresetPlan(key string) (schedule.Plan, error) {
	key = normalizePresetKey(key)
	preset, ok := c.Presets[key]
	if !ok {
		known := strings.Join(c.PresetKeys(), ", ")
		if known == "" {
			known = "none configured"
		}
		return schedule.Plan{}, apperr.Wrap(apperr.ErrConfiguration, "config", "preset",
			fmt.Sprintf("unknown preset %q (available: %s)", key, known), nil)
	}
	plan, err := preset.Plan()
	if err != nil {
		return schedule.Plan{}, fmt.Errorf("preset %q: %w", key, err)
	}
	return plan, nil
}

func normalizePresetKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

package main

import (
	"strings"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"stagedtimer/internal/config"
	"stagedtimer/internal/display"
)

type globalOptions struct {
	configPath string
	logLevel   string
	color      string
}

type commandContext struct {
	opts *globalOptions
	// clock drives runs; tests substitute a fake.
	clock clockwork.Clock

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(opts *globalOptions) *commandContext {
	return &commandContext{opts: opts, clock: clockwork.NewRealClock()}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(strings.TrimSpace(c.opts.configPath))
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// colorMode returns the --color flag when set, else display.color.
func (c *commandContext) colorMode(cfg *config.Config) string {
	if mode := strings.TrimSpace(c.opts.color); mode != "" {
		return mode
	}
	if cfg == nil {
		return config.ColorAuto
	}
	return cfg.Display.Color
}

func (c *commandContext) colorize(cmd *cobra.Command, cfg *config.Config) bool {
	return display.ShouldColorize(c.colorMode(cfg), cmd.OutOrStdout())
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"stagedtimer/internal/config"
	"stagedtimer/internal/duration"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Create or check the stagedtimer configuration",
	}
	configCmd.AddCommand(newConfigInitCommand(), newConfigValidateCommand(ctx))
	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a sample configuration with example presets",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := initTarget(targetPath)
			if err != nil {
				return err
			}
			if _, err := os.Stat(target); err == nil && !overwrite {
				return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("check config path: %w", err)
			}
			if err := config.CreateSample(target); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "It defines the c41 and tea presets; try 'stagedtimer --preset tea --dry-run'.")
			fmt.Fprintln(out, "Set notifications.ntfy_topic (or STAGEDTIMER_NTFY_TOPIC) for phone alerts.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing configuration file")
	return cmd
}

// initTarget resolves --path, defaulting to the per-user config location.
func initTarget(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		target, err := config.DefaultConfigPath()
		if err != nil {
			return "", fmt.Errorf("determine default config path: %w", err)
		}
		return target, nil
	}
	target, err := config.ExpandPath(path)
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return target, nil
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "validate",
		Short:       "Check the configuration and every preset",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, exists, err := config.Load(strings.TrimSpace(ctx.opts.configPath))
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s\n", path)
			if !exists {
				fmt.Fprintln(out, "Config file did not exist; defaults were used")
			}
			if err := writeConfigReport(out, cfg); err != nil {
				return err
			}
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}

// writeConfigReport summarises the notifiers, run logging and presets.
func writeConfigReport(out io.Writer, cfg *config.Config) error {
	var notifiers []string
	if cfg.Notifications.Bell {
		notifiers = append(notifiers, "bell")
	}
	if cfg.Notifications.NtfyTopic != "" {
		notifiers = append(notifiers, "ntfy")
	}
	if len(notifiers) == 0 {
		notifiers = append(notifiers, "none")
	}
	fmt.Fprintf(out, "Notifiers: %s\n", strings.Join(notifiers, ", "))

	if cfg.Logging.Dir == "" {
		fmt.Fprintln(out, "Run logs: disabled")
	} else {
		fmt.Fprintf(out, "Run logs: %s (%s, kept %d days)\n", cfg.Logging.Dir, cfg.Logging.Format, cfg.Logging.RetentionDays)
	}

	keys := cfg.PresetKeys()
	fmt.Fprintf(out, "Presets: %d\n", len(keys))
	for _, key := range keys {
		plan, err := cfg.PresetPlan(key)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "  %s: %d stages, %s\n", key, len(plan.Stages), duration.Format(plan.Total()))
	}
	return nil
}

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"stagedtimer/internal/apperr"
	"stagedtimer/internal/config"
)

var version = "0.2.0"

func newRootCommand() *cobra.Command {
	var opts globalOptions
	ctx := newCommandContext(&opts)
	var timer timerOptions

	rootCmd := &cobra.Command{
		Use:   "stagedtimer -n NAME -t TIME [-n NAME -t TIME ...] [-w TIME]",
		Short: "Configurable multi-stage timer for film development or workouts",
		Long: `Run named stages back to back. Times are S, M:SS or H:MM:SS.

Example:
  stagedtimer -w 0:10 -n Developer -t 6:30 -n Stop -t 30 -n Fix -t 5:00

While running, space or p pauses and resumes, q or Ctrl-C cancels.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := validateColorFlag(opts.color); err != nil {
				return err
			}
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !timer.plan.given(cmd) {
				return cmd.Help()
			}
			return runTimer(cmd, ctx, &timer)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Run log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&opts.color, "color", "", "Colour output: auto, always or never")

	timer.plan.register(rootCmd)
	rootCmd.Flags().BoolVar(&timer.dryRun, "dry-run", false, "Print the plan without running it")
	rootCmd.Flags().BoolVar(&timer.noBell, "no-bell", false, "Do not ring the terminal bell")

	rootCmd.AddCommand(newPresetsCommand(ctx))
	rootCmd.AddCommand(newPlanCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newTestNotifyCommand(ctx))

	return rootCmd
}

func validateColorFlag(value string) error {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", config.ColorAuto, config.ColorAlways, config.ColorNever:
		return nil
	}
	return apperr.Wrap(apperr.ErrInvalidArgument, "cli", "flags",
		fmt.Sprintf("--color must be auto, always or never (got %q)", value), nil)
}

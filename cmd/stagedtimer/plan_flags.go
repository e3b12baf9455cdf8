package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"stagedtimer/internal/apperr"
	"stagedtimer/internal/config"
	"stagedtimer/internal/planfile"
	"stagedtimer/internal/schedule"
)

// planFlags are the stage-source flags shared by the root and plan commands.
type planFlags struct {
	names    []string
	times    []string
	wait     string
	preset   string
	planPath string
}

func (f *planFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringArrayVarP(&f.names, "name", "n", nil, "Stage name (repeat once per stage)")
	flags.StringArrayVarP(&f.times, "time", "t", nil, "Stage duration as S, M:SS or H:MM:SS (repeat once per stage)")
	flags.StringVarP(&f.wait, "wait", "w", "", "Countdown before the first stage")
	flags.StringVar(&f.preset, "preset", "", "Run a preset from the configuration file")
	flags.StringVar(&f.planPath, "plan", "", "Run a YAML or TOML plan file")
}

// given reports whether any stage source was supplied.
func (f *planFlags) given(cmd *cobra.Command) bool {
	for _, name := range []string{"name", "time", "wait", "preset", "plan"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

// resolve builds the plan from exactly one source and returns a display name
// for it.
func (f *planFlags) resolve(cfg *config.Config) (string, schedule.Plan, error) {
	fromFlags := len(f.names) > 0 || len(f.times) > 0
	fromPreset := strings.TrimSpace(f.preset) != ""
	fromFile := strings.TrimSpace(f.planPath) != ""

	sources := 0
	for _, set := range []bool{fromFlags, fromPreset, fromFile} {
		if set {
			sources++
		}
	}
	switch {
	case sources == 0:
		return "", schedule.Plan{}, apperr.Wrap(apperr.ErrInvalidArgument, "cli", "plan",
			"no stages given; use -n/-t pairs, --preset or --plan", nil)
	case sources > 1:
		return "", schedule.Plan{}, apperr.Wrap(apperr.ErrInvalidArgument, "cli", "plan",
			"-n/-t, --preset and --plan are mutually exclusive", nil)
	}

	switch {
	case fromPreset:
		if f.wait != "" {
			return "", schedule.Plan{}, apperr.Wrap(apperr.ErrInvalidArgument, "cli", "plan",
				"--wait cannot be combined with --preset; set wait in the preset", nil)
		}
		if cfg == nil {
			return "", schedule.Plan{}, fmt.Errorf("config is required for --preset")
		}
		plan, err := cfg.PresetPlan(f.preset)
		if err != nil {
			return "", schedule.Plan{}, err
		}
		return strings.ToLower(strings.TrimSpace(f.preset)), plan, nil
	case fromFile:
		if f.wait != "" {
			return "", schedule.Plan{}, apperr.Wrap(apperr.ErrInvalidArgument, "cli", "plan",
				"--wait cannot be combined with --plan; set wait in the plan file", nil)
		}
		file, plan, err := planfile.Load(f.planPath)
		if err != nil {
			return "", schedule.Plan{}, err
		}
		name := strings.TrimSpace(file.Name)
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(f.planPath), filepath.Ext(f.planPath))
		}
		return name, plan, nil
	default:
		entries, err := schedule.Pair(f.names, f.times)
		if err != nil {
			return "", schedule.Plan{}, err
		}
		plan, err := schedule.ParsePlan(f.wait, entries)
		if err != nil {
			return "", schedule.Plan{}, err
		}
		return "", plan, nil
	}
}

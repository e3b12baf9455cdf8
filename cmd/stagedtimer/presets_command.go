package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"stagedtimer/internal/display"
	"stagedtimer/internal/duration"
)

func newPresetsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List configured presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			keys := cfg.PresetKeys()
			if len(keys) == 0 {
				fmt.Fprintln(out, "No presets configured")
				return nil
			}

			title := cases.Title(language.English)
			rows := make([][]string, 0, len(keys))
			for _, key := range keys {
				plan, err := cfg.PresetPlan(key)
				if err != nil {
					return err
				}
				rows = append(rows, []string{
					key,
					title.String(strings.NewReplacer("-", " ", "_", " ").Replace(key)),
					strconv.Itoa(len(plan.Stages)),
					duration.Format(plan.Total()),
					cfg.Presets[key].Description,
				})
			}
			fmt.Fprintln(out, display.RenderTable(
				[]string{"Key", "Name", "Stages", "Total", "Description"},
				rows,
				[]display.ColumnAlignment{display.AlignLeft, display.AlignLeft, display.AlignRight, display.AlignRight, display.AlignLeft},
			))
			return nil
		},
	}
}

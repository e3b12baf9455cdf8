package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"stagedtimer/internal/planfile"
)

func newPlanCommand(ctx *commandContext) *cobra.Command {
	var flags planFlags
	var savePath string

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print a plan without running it",
		Long: `Parse the stages exactly as a run would and print the plan table.
With --save the plan is written as a YAML (or .toml) plan file for --plan.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			name, plan, err := flags.resolve(cfg)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printPlan(out, plan, true)

			target := strings.TrimSpace(savePath)
			if target == "" {
				return nil
			}
			if err := planfile.Save(target, name, plan); err != nil {
				return err
			}
			fmt.Fprintf(out, "Saved plan to %s\n", target)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&savePath, "save", "", "Write the plan to a YAML or TOML file")
	return cmd
}

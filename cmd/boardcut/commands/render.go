package commands

import (
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/piwi3910/BoardCut/internal/project"
)

func renderCmd() *cobra.Command {
	var (
		outputs outputOptions
		outDir  string
	)

	cmd := &cobra.Command{
		Use:   "render <plan.json>",
		Short: "Regenerate reports and exports from a saved plan without re-packing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := project.LoadPlan(args[0])
			if err != nil {
				return err
			}
			if outDir == "" {
				outDir = filepath.Dir(args[0])
			}

			written, err := writeOutputs(outDir, plan, outputs)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printSummary(out, plan.Result, nil)
			for _, path := range written {
				color.New(color.FgGreen).Fprintf(out, "Wrote %s\n", path)
			}
			return nil
		},
	}

	outputs.register(cmd.Flags())
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (default: the plan's directory)")
	return cmd
}

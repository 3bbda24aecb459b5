package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BoardCut/internal/engine"
)

func compareCmd() *cobra.Command {
	var ovr overrides

	cmd := &cobra.Command{
		Use:   "compare [input.xlsx|input.csv]",
		Short: "Pack the cut list with what-if settings and compare board counts",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ovr.apply(cmd.Flags(), &cfg)
			if len(args) == 1 {
				cfg.InputFile = args[0]
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			pieces, err := importPieces(cmd.ErrOrStderr(), cfg.InputFile)
			if err != nil {
				return err
			}
			kept := filterPieces(cmd.ErrOrStderr(), pieces, cfg)
			if err := engine.CheckInput(kept, cfg.Boards); err != nil {
				return err
			}

			results, err := engine.CompareScenarios(cmd.Context(), engine.BuildDefaultScenarios(cfg.Settings()), kept, cfg.Boards)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SCENARIO\tBOARDS\tCOST\tWASTE\tUNPLACED")
			for _, r := range results {
				fmt.Fprintf(tw, "%s\t%d\t%.2f\t%.1f%%\t%d\n", r.Scenario.Name, r.BoardsUsed, r.TotalCost, r.WastePercent, r.UnplacedCount)
			}
			return tw.Flush()
		},
	}

	ovr.register(cmd.Flags())
	return cmd
}

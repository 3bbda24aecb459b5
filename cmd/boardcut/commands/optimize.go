package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/piwi3910/BoardCut/internal/config"
	"github.com/piwi3910/BoardCut/internal/engine"
	"github.com/piwi3910/BoardCut/internal/importer"
	"github.com/piwi3910/BoardCut/internal/model"
	"github.com/piwi3910/BoardCut/internal/project"
)

// previewRows is how many distinct cut-list lines are shown before confirmation.
const previewRows = 10

var errAborted = errors.New("aborted by user")

// overrides holds the command-line values that replace config entries.
type overrides struct {
	kerf, margin, step float64
	parallel           bool
	outDir             string
}

func (o *overrides) register(fs *pflag.FlagSet) {
	fs.Float64Var(&o.kerf, "kerf", 0, "saw kerf in mm (overrides config)")
	fs.Float64Var(&o.margin, "margin", 0, "edge margin in mm (overrides config)")
	fs.Float64Var(&o.step, "step", 0, "scan step in mm (overrides config)")
	fs.BoolVar(&o.parallel, "parallel", false, "pack thickness groups concurrently")
	fs.StringVarP(&o.outDir, "out", "o", "", "output directory (overrides config)")
}

// apply copies every flag the user set explicitly onto cfg.
func (o *overrides) apply(fs *pflag.FlagSet, cfg *config.Config) {
	if fs.Changed("kerf") {
		cfg.Kerf = o.kerf
	}
	if fs.Changed("margin") {
		cfg.Margin = o.margin
	}
	if fs.Changed("step") {
		cfg.Step = o.step
	}
	if fs.Changed("parallel") {
		cfg.Parallel = o.parallel
	}
	if fs.Changed("out") {
		cfg.OutputDir = o.outDir
	}
}

func optimizeCmd() *cobra.Command {
	var (
		ovr     overrides
		outputs outputOptions
		yes     bool
	)

	cmd := &cobra.Command{
		Use:   "optimize [input.xlsx|input.csv]",
		Short: "Import a cut list, pack it onto boards and write the cutting plan",
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

			out := cmd.OutOrStdout()
			printPreview(out, pieces)
			if !yes {
				ok, err := confirm(cmd.InOrStdin(), out, "Continue with these pieces?")
				if err != nil {
					return err
				}
				if !ok {
					return errAborted
				}
			}

			kept := filterPieces(cmd.ErrOrStderr(), pieces, cfg)
			if err := engine.CheckInput(kept, cfg.Boards); err != nil {
				return err
			}

			opt := engine.New(cfg.Settings(), engine.WithLogger(logger))
			result, err := opt.Optimize(cmd.Context(), kept, cfg.Boards)
			if err != nil {
				return err
			}

			written, err := writeOutputs(cfg.OutputDir, project.NewPlan(cfg, kept, result), outputs)
			if err != nil {
				return err
			}

			printSummary(out, result, model.EstimateBoards(kept, cfg.Boards, cfg.Kerf, cfg.Margin))
			for _, path := range written {
				color.New(color.FgGreen).Fprintf(out, "Wrote %s\n", path)
			}
			return nil
		},
	}

	ovr.register(cmd.Flags())
	outputs.register(cmd.Flags())
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

// importPieces reads the cut list, echoing importer warnings and errors.
// Rows with errors are skipped; it fails only when nothing was imported.
func importPieces(w io.Writer, path string) ([]model.Piece, error) {
	res := importer.Import(path)
	warn := color.New(color.FgYellow)
	for _, msg := range res.Warnings {
		warn.Fprintf(w, "warning: %s\n", msg)
	}
	for _, msg := range res.Errors {
		color.New(color.FgRed).Fprintf(w, "error: %s\n", msg)
	}
	if len(res.Pieces) == 0 {
		return nil, fmt.Errorf("no pieces imported from %s", path)
	}
	return res.Pieces, nil
}

func printPreview(w io.Writer, pieces []model.Piece) {
	all := importer.Preview(pieces, 0)
	bold := color.New(color.Bold)
	bold.Fprintf(w, "Imported %d pieces from %d lines:\n", len(pieces), len(all))

	shown := all
	if len(shown) > previewRows {
		shown = shown[:previewRows]
	}
	for _, row := range shown {
		fmt.Fprintf(w, "  %s: %gx%g mm, %g mm thick, x%d\n", row.Name, row.Width, row.Height, row.Thickness, row.Quantity)
	}
	if rest := len(all) - len(shown); rest > 0 {
		fmt.Fprintf(w, "  ... and %d more\n", rest)
	}
}

// confirm asks a yes/no question and reads one line from r. Anything other
// than y or yes counts as no.
func confirm(r io.Reader, w io.Writer, question string) (bool, error) {
	fmt.Fprintf(w, "%s [y/N] ", question)
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// filterPieces drops pieces whose thickness has no board, warning once per thickness.
func filterPieces(w io.Writer, pieces []model.Piece, cfg config.Config) []model.Piece {
	kept, excluded := importer.FilterByTemplates(pieces, cfg.Boards)
	if len(excluded) == 0 {
		return kept
	}

	available := make([]string, 0, len(cfg.Boards))
	for _, t := range cfg.Thicknesses() {
		available = append(available, fmt.Sprintf("%g", t))
	}
	warn := color.New(color.FgYellow)
	for _, ex := range excluded {
		warn.Fprintf(w, "warning: skipping %d pieces of %g mm: no board of that thickness (configured: %s mm)\n",
			ex.Count, ex.Thickness, strings.Join(available, ", "))
	}
	return kept
}

package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/pflag"
	"go.uber.org/multierr"

	"github.com/piwi3910/BoardCut/internal/export"
	"github.com/piwi3910/BoardCut/internal/model"
	"github.com/piwi3910/BoardCut/internal/project"
	"github.com/piwi3910/BoardCut/internal/report"
)

// Output file names inside the output directory.
const (
	htmlFile   = "results.html"
	chartFile  = "utilization.html"
	pdfFile    = "cutting-plan.pdf"
	labelsFile = "labels.pdf"
	dxfFile    = "layout.dxf"
)

// outputOptions selects the optional workshop exports.
type outputOptions struct {
	pdf, labels, dxf bool
}

func (o *outputOptions) register(fs *pflag.FlagSet) {
	fs.BoolVar(&o.pdf, "pdf", false, "also write "+pdfFile)
	fs.BoolVar(&o.labels, "labels", false, "also write QR-coded "+labelsFile)
	fs.BoolVar(&o.dxf, "dxf", false, "also write "+dxfFile)
}

// writeOutputs writes the HTML report, the utilization chart, the saved plan
// and any selected exports into dir. It returns the paths written.
func writeOutputs(dir string, plan project.Plan, opts outputOptions) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := plan.Result
	var written []string
	steps := []struct {
		name    string
		enabled bool
		write   func(path string) error
	}{
		{htmlFile, true, func(p string) error {
			return writeFile(p, func(w io.Writer) error { return report.WriteHTML(w, result) })
		}},
		{chartFile, true, func(p string) error {
			return writeFile(p, func(w io.Writer) error { return report.WriteChart(w, result) })
		}},
		{project.PlanFile, true, func(p string) error { return project.SavePlan(p, plan) }},
		{pdfFile, opts.pdf, func(p string) error { return export.ExportPDF(p, result, plan.Config.Settings()) }},
		{labelsFile, opts.labels, func(p string) error { return export.ExportLabels(p, result) }},
		{dxfFile, opts.dxf, func(p string) error { return export.ExportDXF(p, result) }},
	}

	for _, s := range steps {
		if !s.enabled {
			continue
		}
		path := filepath.Join(dir, s.name)
		if err := s.write(path); err != nil {
			return written, fmt.Errorf("writing %s: %w", s.name, err)
		}
		logger.V(1).Info("Wrote output", "path", path)
		written = append(written, path)
	}
	return written, nil
}

// writeFile creates path and streams render into it.
func writeFile(path string, render func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()
	return render(f)
}

// printSummary prints the shopping list, totals and the area-based lower bound.
func printSummary(w io.Writer, result model.Result, estimates []model.BoardEstimate) {
	color.New(color.Bold).Fprintln(w, "\nShopping list")
	if err := report.WriteText(w, result); err != nil {
		return
	}

	for _, est := range estimates {
		fmt.Fprintf(w, "Lower bound for %g mm: %d boards (%.2f by area)\n", est.Thickness, est.BoardsNeededMin, est.BoardsNeededExact)
	}

	if len(result.Unplaced) > 0 {
		color.New(color.FgYellow).Fprintf(w, "%d pieces could not be placed\n", len(result.Unplaced))
	}
}

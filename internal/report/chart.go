package report

import (
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/piwi3910/BoardCut/internal/model"
)

// UtilizationChart builds a bar chart with one bar per board, in percent.
func UtilizationChart(result model.Result) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Board utilization"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Board utilization",
			Subtitle: fmt.Sprintf("%d boards, overall %.1f%%", result.Stats.TotalBoards, result.Stats.Efficiency),
		}),
		charts.WithYAxisOpts(opts.YAxis{Name: "%", Max: 100}),
	)

	labels := make([]string, 0, len(result.Boards))
	items := make([]opts.BarData, 0, len(result.Boards))
	for _, b := range result.Boards {
		labels = append(labels, fmt.Sprintf("#%d (%gmm)", b.ID, b.Thickness))
		items = append(items, opts.BarData{Value: math.Round(b.Efficiency()*10) / 10})
	}
	bar.SetXAxis(labels).AddSeries("Utilization", items)
	return bar
}

// WriteChart renders the utilization chart as an HTML page.
func WriteChart(w io.Writer, result model.Result) error {
	if err := UtilizationChart(result).Render(w); err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}
	return nil
}

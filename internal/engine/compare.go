package engine

import (
	"context"
	"fmt"

	"github.com/piwi3910/BoardCut/internal/model"
)

// ComparisonScenario defines a named set of settings to compare.
type ComparisonScenario struct {
	Name     string
	Settings model.Settings
}

// ComparisonResult holds the optimization result and computed statistics
// for a single scenario.
type ComparisonResult struct {
	Scenario      ComparisonScenario
	Result        model.Result
	BoardsUsed    int
	TotalCost     float64
	WastePercent  float64
	UnplacedCount int
}

// CompareScenarios runs optimization for each scenario and returns the results
// in scenario order. This enables side-by-side comparison of different
// packing parameters (kerf, margin, scan step).
func CompareScenarios(ctx context.Context, scenarios []ComparisonScenario, pieces []model.Piece, templates []model.BoardTemplate) ([]ComparisonResult, error) {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		result, err := New(scenario.Settings).Optimize(ctx, pieces, templates)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
		}

		results = append(results, ComparisonResult{
			Scenario:      scenario,
			Result:        result,
			BoardsUsed:    result.Stats.TotalBoards,
			TotalCost:     result.Stats.TotalCost,
			WastePercent:  100.0 - result.Stats.Efficiency,
			UnplacedCount: len(result.Unplaced),
		})
	}

	return results, nil
}

// BuildDefaultScenarios generates a set of comparison scenarios based on
// the current settings, varying key parameters to show what-if alternatives.
func BuildDefaultScenarios(base model.Settings) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{
			Name:     "Current Settings",
			Settings: base,
		},
	}

	// Thinner blade
	if base.Kerf > 1.0 {
		half := base
		half.Kerf = base.Kerf * 0.5
		scenarios = append(scenarios, ComparisonScenario{
			Name:     fmt.Sprintf("Kerf %.1fmm (half)", half.Kerf),
			Settings: half,
		})
	}

	if base.Margin > 0 {
		noMargin := base
		noMargin.Margin = 0
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "No Edge Margin",
			Settings: noMargin,
		})
	}

	// Finer grid finds positions the default step skips
	if base.Step > 1.0 {
		fine := base
		fine.Step = base.Step / 2
		scenarios = append(scenarios, ComparisonScenario{
			Name:     fmt.Sprintf("Step %.1fmm (fine)", fine.Step),
			Settings: fine,
		})
	}

	return scenarios
}

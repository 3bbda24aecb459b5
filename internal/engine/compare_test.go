package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/BoardCut/internal/model"
)

func TestBuildDefaultScenarios(t *testing.T) {
	scenarios := BuildDefaultScenarios(model.DefaultSettings())

	require.Len(t, scenarios, 4)
	assert.Equal(t, "Current Settings", scenarios[0].Name)
	assert.Equal(t, 1.5, scenarios[1].Settings.Kerf)
	assert.Equal(t, 0.0, scenarios[2].Settings.Margin)
	assert.Equal(t, 5.0, scenarios[3].Settings.Step)
}

func TestBuildDefaultScenarios_BareSettings(t *testing.T) {
	scenarios := BuildDefaultScenarios(model.Settings{Step: 1})

	require.Len(t, scenarios, 1, "nothing to vary")
}

func TestCompareScenarios(t *testing.T) {
	pieces := []model.Piece{piece("A", 25, 50, 16), piece("B", 25, 50, 16)}
	templates := []model.BoardTemplate{{Width: 50, Height: 50, Thickness: 16, Price: 10}}

	scenarios := []ComparisonScenario{
		{Name: "coarse", Settings: model.Settings{Step: 10}},
		{Name: "fine", Settings: model.Settings{Step: 5}},
	}
	results, err := CompareScenarios(context.Background(), scenarios, pieces, templates)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, 2, results[0].BoardsUsed)
	assert.Equal(t, 20.0, results[0].TotalCost)
	assert.Equal(t, 1, results[1].BoardsUsed)
	assert.InDelta(t, 0.0, results[1].WastePercent, 1e-9)
	assert.Equal(t, 0, results[1].UnplacedCount)
}

func TestCompareScenarios_InvalidScenario(t *testing.T) {
	scenarios := []ComparisonScenario{{Name: "broken", Settings: model.Settings{Step: 0}}}

	_, err := CompareScenarios(context.Background(), scenarios, nil, nil)

	assert.ErrorContains(t, err, "broken")
}

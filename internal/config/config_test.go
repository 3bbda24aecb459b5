package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/piwi3910/BoardCut/internal/model"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	require.Len(t, cfg.Boards, 1)
	assert.Equal(t, 2000.0, cfg.Boards[0].Width)
	assert.Equal(t, 16.0, cfg.Boards[0].Thickness)
	assert.Equal(t, 3.0, cfg.Kerf)
	assert.Equal(t, 4.0, cfg.Margin)
	assert.Equal(t, model.DefaultStep, cfg.Step)
}

func TestSaveAndLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg := Default()
	cfg.Kerf = 2.5
	cfg.Boards = append(cfg.Boards, model.BoardTemplate{Label: "Oak", Width: 2440, Height: 1220, Thickness: 19, Price: 89})

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSaveAndLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := Default()
	cfg.Parallel = true
	require.NoError(t, Save(path, cfg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "kerf: 3")

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadHandWrittenYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boards.yml")
	content := `
boards:
  - width: 2800
    height: 2070
    thickness: 18
    price: 54.5
kerf: 4
margin: 10
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.Boards, 1)
	assert.Equal(t, 2070.0, cfg.Boards[0].Height)
	assert.Equal(t, 54.5, cfg.Boards[0].Price)
	assert.Equal(t, model.DefaultStep, cfg.Step, "missing step falls back to the default")
	assert.NoError(t, cfg.Validate())
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope", "config.json"))

	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestValidateCollectsAllProblems(t *testing.T) {
	cfg := Config{
		Boards: []model.BoardTemplate{
			{Width: 2000, Height: 500, Thickness: 16, Price: 10},
			{Width: 0, Height: 500, Thickness: 16, Price: -1},
		},
		Kerf: -1,
		Step: 10,
	}

	err := cfg.Validate()
	require.Error(t, err)

	assert.ErrorIs(t, err, ErrDuplicateThickness)
	assert.ErrorIs(t, err, ErrInvalidBoard)
	assert.ErrorIs(t, err, model.ErrNegativeKerf)
	assert.Len(t, multierr.Errors(err), 4)
}

func TestValidateRequiresBoards(t *testing.T) {
	cfg := Default()
	cfg.Boards = nil

	assert.ErrorIs(t, cfg.Validate(), ErrNoBoards)
}

func TestSettingsAndThicknesses(t *testing.T) {
	cfg := Default()
	cfg.Boards = append(cfg.Boards, model.BoardTemplate{Width: 1, Height: 1, Thickness: 19})
	cfg.Parallel = true

	s := cfg.Settings()
	assert.Equal(t, model.Settings{Kerf: 3, Margin: 4, Step: 10, Parallel: true}, s)
	assert.Equal(t, []float64{16, 19}, cfg.Thicknesses())
}

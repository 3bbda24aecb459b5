// Package config loads, validates and persists the board catalogue and
// packing parameters. Files may be JSON or YAML, chosen by extension.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"
	"sigs.k8s.io/yaml"

	"github.com/piwi3910/BoardCut/internal/model"
)

// Config holds the board catalogue and packing parameters for a run.
type Config struct {
	InputFile string                `json:"input_file"`
	OutputDir string                `json:"output_dir"`
	Boards    []model.BoardTemplate `json:"boards"`
	Kerf      float64               `json:"kerf"`   // mm lost per cut
	Margin    float64               `json:"margin"` // mm kept clear along board edges
	Step      float64               `json:"step"`   // mm between scanned positions, 0 = default
	Parallel  bool                  `json:"parallel,omitempty"`
}

var (
	ErrNoBoards           = errors.New("no boards configured")
	ErrDuplicateThickness = errors.New("duplicate board thickness")
	ErrInvalidBoard       = errors.New("invalid board")
)

// Default returns a single 2000x500 16mm board at 10.90 with 3mm kerf and
// 4mm margin.
func Default() Config {
	s := model.DefaultSettings()
	return Config{
		InputFile: "input.xlsx",
		OutputDir: "output",
		Boards: []model.BoardTemplate{
			{Width: 2000, Height: 500, Thickness: 16, Price: 10.9},
		},
		Kerf:   s.Kerf,
		Margin: s.Margin,
		Step:   s.Step,
	}
}

// DefaultDir returns the default directory for configuration, ~/.boardcut/.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".boardcut")
}

// DefaultPath returns the default path for the config file.
func DefaultPath() string {
	return filepath.Join(DefaultDir(), "config.json")
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Load reads a Config from path. If the file does not exist it returns
// Default with no error. A zero step is replaced with the default step.
// The loaded config is not validated; call Validate.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if isYAML(path) {
		err = yaml.Unmarshal(data, &cfg)
	} else {
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if cfg.Step == 0 {
		cfg.Step = model.DefaultStep
	}
	if cfg.Boards == nil {
		cfg.Boards = []model.BoardTemplate{}
	}
	return cfg, nil
}

// Save persists cfg to path, creating any missing parent directories.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := Marshal(cfg, isYAML(path))
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Marshal encodes cfg as indented JSON, or YAML when asYAML is set.
func Marshal(cfg Config, asYAML bool) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if asYAML {
		data, err = yaml.Marshal(cfg)
	} else {
		data, err = json.MarshalIndent(cfg, "", "  ")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// Validate reports every problem in cfg at once. Two boards with the same
// thickness are rejected because the optimizer would silently use only the
// first one.
func (c Config) Validate() error {
	var err error
	if len(c.Boards) == 0 {
		err = multierr.Append(err, ErrNoBoards)
	}

	seen := make(map[float64]int)
	for i, b := range c.Boards {
		name := fmt.Sprintf("board %d (%s)", i+1, b)
		if b.Width <= 0 || b.Height <= 0 {
			err = multierr.Append(err, fmt.Errorf("%w: %s: width and height must be > 0", ErrInvalidBoard, name))
		}
		if b.Thickness <= 0 {
			err = multierr.Append(err, fmt.Errorf("%w: %s: thickness must be > 0", ErrInvalidBoard, name))
		}
		if b.Price < 0 {
			err = multierr.Append(err, fmt.Errorf("%w: %s: price must not be negative", ErrInvalidBoard, name))
		}
		if first, ok := seen[b.Thickness]; ok {
			err = multierr.Append(err, fmt.Errorf("%w: boards %d and %d are both %g mm", ErrDuplicateThickness, first, i+1, b.Thickness))
		} else {
			seen[b.Thickness] = i + 1
		}
	}

	return multierr.Append(err, c.Settings().Validate())
}

// Settings returns the packing parameters as model.Settings.
func (c Config) Settings() model.Settings {
	return model.Settings{
		Kerf:     c.Kerf,
		Margin:   c.Margin,
		Step:     c.Step,
		Parallel: c.Parallel,
	}
}

// Thicknesses returns the configured board thicknesses in catalogue order.
func (c Config) Thicknesses() []float64 {
	out := make([]float64, 0, len(c.Boards))
	for _, b := range c.Boards {
		out = append(out, b.Thickness)
	}
	return out
}

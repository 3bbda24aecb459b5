// Package project saves a finished run (configuration, cut list and
// packing result) so reports can be regenerated without re-optimizing.
package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/piwi3910/BoardCut/internal/config"
	"github.com/piwi3910/BoardCut/internal/model"
)

// PlanVersion is written into every saved plan.
const PlanVersion = "1.0.0"

// PlanFile is the file name used inside an output directory.
const PlanFile = "plan.json"

var ErrMissingVersion = errors.New("invalid plan file: missing version field")

// Plan is the on-disk record of one optimization run.
type Plan struct {
	Version   string        `json:"version"`
	CreatedAt string        `json:"created_at"`
	Config    config.Config `json:"config"`
	Pieces    []model.Piece `json:"pieces"`
	Result    model.Result  `json:"result"`
}

// NewPlan stamps a plan with the current version and time.
func NewPlan(cfg config.Config, pieces []model.Piece, result model.Result) Plan {
	return Plan{
		Version:   PlanVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Config:    cfg,
		Pieces:    pieces,
		Result:    result,
	}
}

// SavePlan writes plan as indented JSON, creating parent directories.
func SavePlan(path string, plan Plan) error {
	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create plan directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write plan file: %w", err)
	}
	return nil
}

// LoadPlan reads a plan written by SavePlan.
func LoadPlan(path string) (Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Plan{}, fmt.Errorf("failed to read plan file: %w", err)
	}
	var plan Plan
	if err := json.Unmarshal(data, &plan); err != nil {
		return Plan{}, fmt.Errorf("failed to parse plan file: %w", err)
	}
	if plan.Version == "" {
		return Plan{}, ErrMissingVersion
	}
	if plan.Result.Boards == nil {
		plan.Result.Boards = []model.Board{}
	}
	return plan, nil
}

package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/piwi3910/BoardCut/internal/config"
	"github.com/piwi3910/BoardCut/internal/engine"
	"github.com/piwi3910/BoardCut/internal/model"
)

func samplePlan(t *testing.T) Plan {
	t.Helper()
	cfg := config.Default()
	pieces := []model.Piece{
		model.NewPiece("Shelf", 600, 300, 16),
		model.NewPiece("Glass", 200, 200, 4),
	}
	result, err := engine.New(cfg.Settings()).Optimize(t.Context(), pieces, cfg.Boards)
	if err != nil {
		t.Fatalf("Optimize failed: %v", err)
	}
	return NewPlan(cfg, pieces, result)
}

func TestSaveAndLoadPlan(t *testing.T) {
	path := filepath.Join(t.TempDir(), PlanFile)
	plan := samplePlan(t)

	if err := SavePlan(path, plan); err != nil {
		t.Fatalf("SavePlan failed: %v", err)
	}

	loaded, err := LoadPlan(path)
	if err != nil {
		t.Fatalf("LoadPlan failed: %v", err)
	}

	if loaded.Version != PlanVersion {
		t.Errorf("expected version %s, got %s", PlanVersion, loaded.Version)
	}
	if loaded.CreatedAt == "" {
		t.Error("expected non-empty CreatedAt")
	}
	if diff := cmp.Diff(plan, loaded); diff != "" {
		t.Errorf("plan changed on round trip (-want +got):\n%s", diff)
	}
	if got := len(loaded.Result.UnplacedBy(model.ReasonNoTemplate)); got != 1 {
		t.Errorf("expected 1 piece without template, got %d", got)
	}
}

func TestLoadPlanMissingFile(t *testing.T) {
	_, err := LoadPlan(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadPlanInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json}"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadPlan(path); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestLoadPlanMissingVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "noversion.json")
	if err := os.WriteFile(path, []byte(`{"result":{"boards":[]}}`), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadPlan(path)
	if !errors.Is(err, ErrMissingVersion) {
		t.Fatalf("expected ErrMissingVersion, got %v", err)
	}
}

func TestLoadPlanNilBoards(t *testing.T) {
	path := filepath.Join(t.TempDir(), PlanFile)
	data := []byte(`{"version":"1.0.0","created_at":"2026-01-01T00:00:00Z","result":{"boards":null}}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	plan, err := LoadPlan(path)
	if err != nil {
		t.Fatalf("LoadPlan failed: %v", err)
	}
	if plan.Result.Boards == nil {
		t.Error("Boards should not be nil after load")
	}
}

func TestSavePlanCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "nested", PlanFile)

	if err := SavePlan(path, samplePlan(t)); err != nil {
		t.Fatalf("SavePlan should create parent dirs: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("plan file was not created")
	}
}

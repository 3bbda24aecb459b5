package model

import (
	"errors"
	"testing"

	"go.uber.org/multierr"
)

func TestNewPieceAssignsShortID(t *testing.T) {
	a := NewPiece("Shelf", 600, 300, 16)
	b := NewPiece("Shelf", 600, 300, 16)

	if len(a.ID) != 8 {
		t.Errorf("expected 8 character ID, got %q", a.ID)
	}
	if a.ID == b.ID {
		t.Error("expected distinct IDs for distinct pieces")
	}
	if a.Area() != 180000 {
		t.Errorf("expected area 180000, got %f", a.Area())
	}
}

func TestPlacedPieceFootprint(t *testing.T) {
	p := PlacedPiece{X: 4, Y: 14, PlacedWidth: 300, PlacedHeight: 600, Rotated: true}
	got := p.Footprint(3)
	want := Rect{X: 4, Y: 14, W: 303, H: 603}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
	if p.Area() != 180000 {
		t.Errorf("footprint kerf must not count as used area, got %f", p.Area())
	}
}

func TestBoardEfficiency(t *testing.T) {
	b := NewBoard(1, BoardTemplate{Width: 100, Height: 50, Thickness: 16, Price: 10})
	if b.Efficiency() != 0 {
		t.Errorf("empty board should have 0%% efficiency, got %f", b.Efficiency())
	}

	b.Pieces = append(b.Pieces, PlacedPiece{PlacedWidth: 50, PlacedHeight: 50})
	if b.Efficiency() != 50 {
		t.Errorf("expected 50%%, got %f", b.Efficiency())
	}

	var zero Board
	if zero.Efficiency() != 0 {
		t.Error("zero-area board should report 0%")
	}
}

func TestBoardTemplateString(t *testing.T) {
	tpl := BoardTemplate{Width: 2000, Height: 500, Thickness: 16, Price: 10.9}
	if got := tpl.String(); got != "2000x500 mm (16 mm)" {
		t.Errorf("unexpected description %q", got)
	}
	tpl.Label = "Melamine white"
	if got := tpl.String(); got != "Melamine white" {
		t.Errorf("label should win, got %q", got)
	}
}

func TestSettingsValidate(t *testing.T) {
	if err := DefaultSettings().Validate(); err != nil {
		t.Fatalf("default settings should be valid: %v", err)
	}

	err := Settings{Kerf: -1, Margin: -2, Step: 0}.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if n := len(multierr.Errors(err)); n != 3 {
		t.Errorf("expected 3 problems, got %d: %v", n, err)
	}
	for _, target := range []error{ErrNegativeKerf, ErrNegativeMargin, ErrInvalidStep} {
		if !errors.Is(err, target) {
			t.Errorf("expected error to wrap %v", target)
		}
	}
}

func TestResultHelpers(t *testing.T) {
	r := Result{
		Boards: []Board{
			{Pieces: []PlacedPiece{{}, {}}},
			{Pieces: []PlacedPiece{{}}},
		},
		Unplaced: []UnplacedPiece{
			{Piece: Piece{Name: "A"}, Reason: ReasonNoTemplate},
			{Piece: Piece{Name: "B"}, Reason: ReasonTooLarge},
			{Piece: Piece{Name: "C"}, Reason: ReasonNoTemplate},
		},
	}
	if r.PlacedCount() != 3 {
		t.Errorf("expected 3 placed, got %d", r.PlacedCount())
	}
	missing := r.UnplacedBy(ReasonNoTemplate)
	if len(missing) != 2 || missing[0].Name != "A" || missing[1].Name != "C" {
		t.Errorf("unexpected no-template pieces: %+v", missing)
	}
}

package model

import (
	"math"
	"testing"
)

func boardWith(w, h, price float64, pieces ...PlacedPiece) Board {
	b := NewBoard(1, BoardTemplate{Width: w, Height: h, Thickness: 18, Price: price})
	b.Pieces = pieces
	return b
}

func at(x, y, w, h float64) PlacedPiece {
	return PlacedPiece{Piece: Piece{Name: "P", Width: w, Height: h}, X: x, Y: y, PlacedWidth: w, PlacedHeight: h}
}

func TestDetectOffcutsEmptyBoard(t *testing.T) {
	offcuts := DetectOffcuts(boardWith(2440, 1220, 0), 3.0)
	if len(offcuts) != 1 {
		t.Fatalf("expected 1 offcut for empty board, got %d", len(offcuts))
	}
	if offcuts[0].Width != 2440 || offcuts[0].Height != 1220 {
		t.Errorf("expected full board as offcut, got %.0fx%.0f", offcuts[0].Width, offcuts[0].Height)
	}
}

func TestDetectOffcutsRightStrip(t *testing.T) {
	offcuts := DetectOffcuts(boardWith(2440, 1220, 0, at(0, 0, 1000, 1217)), 3.0)

	if len(offcuts) != 1 {
		t.Fatalf("expected 1 offcut, got %d: %+v", len(offcuts), offcuts)
	}
	o := offcuts[0]
	if o.X != 1003 || o.Y != 0 || o.Width != 1437 || o.Height != 1220 {
		t.Errorf("unexpected right strip %+v", o)
	}
}

func TestDetectOffcutsBottomStrip(t *testing.T) {
	offcuts := DetectOffcuts(boardWith(2440, 1220, 0, at(0, 0, 2437, 500)), 3.0)

	if len(offcuts) != 1 {
		t.Fatalf("expected 1 offcut, got %d: %+v", len(offcuts), offcuts)
	}
	o := offcuts[0]
	if o.X != 0 || o.Y != 503 || o.Width != 2440 || o.Height != 717 {
		t.Errorf("unexpected bottom strip %+v", o)
	}
}

func TestDetectOffcutsBothStripsLargestFirst(t *testing.T) {
	offcuts := DetectOffcuts(boardWith(2000, 1000, 0, at(0, 0, 500, 300)), 0)

	if len(offcuts) != 2 {
		t.Fatalf("expected 2 offcuts, got %d", len(offcuts))
	}
	// Right: 1500x1000, bottom: 500x700
	if offcuts[0].Area() != 1500*1000 || offcuts[1].Area() != 500*700 {
		t.Errorf("unexpected offcuts %+v", offcuts)
	}
}

func TestDetectOffcutsSmallRemnantIgnored(t *testing.T) {
	offcuts := DetectOffcuts(boardWith(500, 500, 0, at(0, 0, 480, 480)), 3.0)
	// Remaining strips are ~17mm wide, below MinOffcutDimension
	if len(offcuts) != 0 {
		t.Errorf("expected 0 offcuts for near-full board, got %d", len(offcuts))
	}
}

func TestDetectOffcutsValueProportional(t *testing.T) {
	offcuts := DetectOffcuts(boardWith(1000, 1000, 100, at(0, 0, 500, 1000)), 0)

	if len(offcuts) != 1 {
		t.Fatalf("expected 1 offcut, got %d", len(offcuts))
	}
	if math.Abs(offcuts[0].Value-50) > 1e-9 {
		t.Errorf("expected value 50, got %f", offcuts[0].Value)
	}
	if offcuts[0].Thickness != 18 || offcuts[0].BoardID != 1 {
		t.Errorf("offcut should carry its board, got %+v", offcuts[0])
	}
}

func TestDetectAllOffcuts(t *testing.T) {
	b1 := boardWith(2000, 1000, 0, at(0, 0, 500, 1000))
	b2 := boardWith(2000, 1000, 0, at(0, 0, 2000, 1000))
	b2.ID = 2
	b3 := boardWith(2000, 1000, 0, at(0, 0, 1000, 1000))
	b3.ID = 3

	all := DetectAllOffcuts([]Board{b1, b2, b3}, 0)

	if len(all) != 2 {
		t.Fatalf("expected 2 offcuts, got %d", len(all))
	}
	if all[0].BoardID != 1 || all[1].BoardID != 3 {
		t.Errorf("expected offcuts in board order, got %+v", all)
	}
	if got := TotalOffcutArea(all); got != 1500*1000+1000*1000 {
		t.Errorf("unexpected total area %f", got)
	}
}

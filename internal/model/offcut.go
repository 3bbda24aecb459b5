package model

import (
	"math"
	"sort"
)

// Offcut is a rectangular remnant left on a board after cutting that is
// large enough to keep for another job.
type Offcut struct {
	BoardID   int     `json:"board_id"`
	Thickness float64 `json:"thickness"`
	X         float64 `json:"x"` // mm from left
	Y         float64 `json:"y"` // mm from top
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Value     float64 `json:"value"` // Share of the board price proportional to area
}

// Area returns the area of the offcut in square mm.
func (o Offcut) Area() float64 {
	return o.Width * o.Height
}

// MinOffcutDimension is the minimum width or height (in mm) for a remnant
// to be considered a usable offcut. Remnants smaller than this are waste.
const MinOffcutDimension = 50.0

// MinOffcutArea is the minimum area (in sq mm) for a remnant to be considered usable.
const MinOffcutArea = 10000.0 // 100mm x 100mm equivalent

// DetectOffcuts finds the strip to the right of and the strip below the
// bounding box of all kerf-inflated footprints on board. Strips below
// MinOffcutDimension or MinOffcutArea are waste. Largest first.
func DetectOffcuts(board Board, kerf float64) []Offcut {
	if len(board.Pieces) == 0 {
		return []Offcut{newOffcut(board, 0, 0, board.Width, board.Height)}
	}

	var maxRight, maxBottom float64
	for _, p := range board.Pieces {
		fp := p.Footprint(kerf)
		maxRight = math.Max(maxRight, math.Min(fp.Right(), board.Width))
		maxBottom = math.Max(maxBottom, math.Min(fp.Bottom(), board.Height))
	}

	var offcuts []Offcut

	// Full-height strip right of every piece
	if w := board.Width - maxRight; usable(w, board.Height) {
		offcuts = append(offcuts, newOffcut(board, maxRight, 0, w, board.Height))
	}

	// Strip below every piece, stopping where the right strip begins
	if h := board.Height - maxBottom; usable(maxRight, h) {
		offcuts = append(offcuts, newOffcut(board, 0, maxBottom, maxRight, h))
	}

	sort.SliceStable(offcuts, func(i, j int) bool {
		return offcuts[i].Area() > offcuts[j].Area()
	})
	return offcuts
}

func usable(w, h float64) bool {
	return w >= MinOffcutDimension && h >= MinOffcutDimension && w*h >= MinOffcutArea
}

func newOffcut(board Board, x, y, w, h float64) Offcut {
	o := Offcut{
		BoardID:   board.ID,
		Thickness: board.Thickness,
		X:         x,
		Y:         y,
		Width:     w,
		Height:    h,
	}
	if ta := board.TotalArea(); ta > 0 {
		o.Value = o.Area() / ta * board.Price
	}
	return o
}

// DetectAllOffcuts finds offcuts on every board, in board order.
func DetectAllOffcuts(boards []Board, kerf float64) []Offcut {
	var all []Offcut
	for _, b := range boards {
		all = append(all, DetectOffcuts(b, kerf)...)
	}
	return all
}

// TotalOffcutArea returns the total area of all offcuts in square mm.
func TotalOffcutArea(offcuts []Offcut) float64 {
	var total float64
	for _, o := range offcuts {
		total += o.Area()
	}
	return total
}

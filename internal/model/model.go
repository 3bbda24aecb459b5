package model

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/multierr"
)

// Piece represents a required rectangle to be cut from a board of a given thickness.
type Piece struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Width     float64 `json:"width"`     // mm
	Height    float64 `json:"height"`    // mm
	Thickness float64 `json:"thickness"` // mm, must match a board template
}

func NewPiece(name string, w, h, thickness float64) Piece {
	return Piece{
		ID:        uuid.New().String()[:8],
		Name:      name,
		Width:     w,
		Height:    h,
		Thickness: thickness,
	}
}

// Area returns width x height.
func (p Piece) Area() float64 {
	return p.Width * p.Height
}

// BoardTemplate describes a purchasable stock board.
type BoardTemplate struct {
	Label     string  `json:"label,omitempty"`
	Width     float64 `json:"width"`     // mm
	Height    float64 `json:"height"`    // mm
	Thickness float64 `json:"thickness"` // mm
	Price     float64 `json:"price"`     // per board
}

// String returns a short human readable description, e.g. "2000x500 mm (16 mm)".
func (t BoardTemplate) String() string {
	if t.Label != "" {
		return t.Label
	}
	return fmt.Sprintf("%gx%g mm (%g mm)", t.Width, t.Height, t.Thickness)
}

// PlacedPiece is a piece bound to a position and orientation on a board.
type PlacedPiece struct {
	Piece        Piece   `json:"piece"`
	X            float64 `json:"x"` // Position from left edge (mm)
	Y            float64 `json:"y"` // Position from top edge (mm)
	PlacedWidth  float64 `json:"placed_width"`
	PlacedHeight float64 `json:"placed_height"`
	Rotated      bool    `json:"rotated"` // Whether the piece was rotated 90°
}

// Area returns the useful (kerf-free) area covered by the piece.
func (p PlacedPiece) Area() float64 {
	return p.PlacedWidth * p.PlacedHeight
}

// Footprint returns the rectangle claimed on the board, inflated by kerf on both axes.
func (p PlacedPiece) Footprint(kerf float64) Rect {
	return Rect{X: p.X, Y: p.Y, W: p.PlacedWidth, H: p.PlacedHeight}.Inflate(kerf)
}

// Board is one stock board instantiated from a template, with its placed pieces.
type Board struct {
	ID        int           `json:"id"`
	Label     string        `json:"label,omitempty"`
	Thickness float64       `json:"thickness"`
	Width     float64       `json:"width"`
	Height    float64       `json:"height"`
	Price     float64       `json:"price"`
	Pieces    []PlacedPiece `json:"pieces"`
}

// NewBoard instantiates an empty board from a template.
func NewBoard(id int, t BoardTemplate) Board {
	return Board{
		ID:        id,
		Label:     t.Label,
		Thickness: t.Thickness,
		Width:     t.Width,
		Height:    t.Height,
		Price:     t.Price,
		Pieces:    []PlacedPiece{},
	}
}

// UsedArea returns the total area used by placed pieces.
func (b Board) UsedArea() float64 {
	var total float64
	for _, p := range b.Pieces {
		total += p.Area()
	}
	return total
}

// TotalArea returns the board area.
func (b Board) TotalArea() float64 {
	return b.Width * b.Height
}

// Efficiency returns the usage percentage.
func (b Board) Efficiency() float64 {
	ta := b.TotalArea()
	if ta == 0 {
		return 0
	}
	return (b.UsedArea() / ta) * 100.0
}

// UnplacedReason explains why a piece did not end up on any board.
type UnplacedReason string

const (
	ReasonNoTemplate UnplacedReason = "no-template" // No board template for the piece's thickness
	ReasonTooLarge   UnplacedReason = "too-large"   // Does not fit an empty board in either orientation
)

// UnplacedPiece is a piece that was skipped or dropped during packing.
type UnplacedPiece struct {
	Piece  Piece          `json:"piece"`
	Reason UnplacedReason `json:"reason"`
}

// Settings holds the packing parameters.
type Settings struct {
	Kerf     float64 `json:"kerf"`     // Material lost per cut in mm
	Margin   float64 `json:"margin"`   // Clearance kept from the board edges in mm
	Step     float64 `json:"step"`     // Scan grid step in mm
	Parallel bool    `json:"parallel"` // Pack thickness groups concurrently
}

// DefaultStep is the scan grid step. Positions that are not a multiple of
// the step away from the margin are never tried, so a piece that only fits
// off-grid is reported as too large.
const DefaultStep = 10.0

func DefaultSettings() Settings {
	return Settings{
		Kerf:   3.0,
		Margin: 4.0,
		Step:   DefaultStep,
	}
}

var (
	ErrNegativeKerf   = errors.New("kerf must not be negative")
	ErrNegativeMargin = errors.New("margin must not be negative")
	ErrInvalidStep    = errors.New("step must be greater than zero")
)

// Validate reports every invalid parameter at once.
func (s Settings) Validate() error {
	var err error
	if s.Kerf < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: %g", ErrNegativeKerf, s.Kerf))
	}
	if s.Margin < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: %g", ErrNegativeMargin, s.Margin))
	}
	if s.Step <= 0 {
		err = multierr.Append(err, fmt.Errorf("%w: %g", ErrInvalidStep, s.Step))
	}
	return err
}

// Result holds the full packing solution.
type Result struct {
	Boards   []Board         `json:"boards"`
	Unplaced []UnplacedPiece `json:"unplaced"`
	Offcuts  []Offcut        `json:"offcuts,omitempty"`
	Stats    Stats           `json:"stats"`
}

// PlacedCount returns the number of pieces placed across all boards.
func (r Result) PlacedCount() int {
	n := 0
	for _, b := range r.Boards {
		n += len(b.Pieces)
	}
	return n
}

// UnplacedBy returns the unplaced pieces with the given reason.
func (r Result) UnplacedBy(reason UnplacedReason) []Piece {
	var out []Piece
	for _, u := range r.Unplaced {
		if u.Reason == reason {
			out = append(out, u.Piece)
		}
	}
	return out
}

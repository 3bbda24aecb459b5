package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"

	"github.com/piwi3910/BoardCut/internal/model"
)

// DXF layer names.
const (
	LayerBoards = "BOARDS"
	LayerPieces = "PIECES"
	LayerLabels = "LABELS"
)

// boardGap is the horizontal spacing between consecutive boards in the drawing.
const boardGap = 100.0

// ExportDXF writes every board and placed piece as rectangle outlines, boards
// side by side along X. Layout coordinates grow downwards, so y is flipped
// to DXF's upward axis.
func ExportDXF(path string, result model.Result) error {
	if len(result.Boards) == 0 {
		return ErrNoBoards
	}

	d := dxf.NewDrawing()
	layers := []struct {
		name string
		cl   color.ColorNumber
	}{
		{LayerBoards, color.Red},
		{LayerPieces, color.Green},
		{LayerLabels, dxf.DefaultColor},
	}
	for _, l := range layers {
		if _, err := d.AddLayer(l.name, l.cl, dxf.DefaultLineType, false); err != nil {
			return fmt.Errorf("adding layer %s: %w", l.name, err)
		}
	}

	offsetX := 0.0
	for _, board := range result.Boards {
		if err := drawBoard(d, board, offsetX); err != nil {
			return fmt.Errorf("board %d: %w", board.ID, err)
		}
		offsetX += board.Width + boardGap
	}

	return d.SaveAs(path)
}

func drawBoard(d *drawing.Drawing, board model.Board, offsetX float64) error {
	flip := func(y float64) float64 { return board.Height - y }

	if err := d.ChangeLayer(LayerBoards); err != nil {
		return err
	}
	if err := dxfRect(d, offsetX, 0, board.Width, board.Height); err != nil {
		return err
	}
	if _, err := d.Text(fmt.Sprintf("Board %d (%g mm)", board.ID, board.Thickness), offsetX, board.Height+10, 0, 20); err != nil {
		return err
	}

	for _, p := range board.Pieces {
		if err := d.ChangeLayer(LayerPieces); err != nil {
			return err
		}
		x := offsetX + p.X
		y := flip(p.Y + p.PlacedHeight)
		if err := dxfRect(d, x, y, p.PlacedWidth, p.PlacedHeight); err != nil {
			return err
		}

		if err := d.ChangeLayer(LayerLabels); err != nil {
			return err
		}
		height := textHeight(p.PlacedWidth, p.PlacedHeight)
		if _, err := d.Text(p.Piece.Name, x+2, y+p.PlacedHeight/2, 0, height); err != nil {
			return err
		}
	}
	return nil
}

// dxfRect draws an axis-aligned rectangle from its lower-left corner as four lines.
func dxfRect(d *drawing.Drawing, x, y, w, h float64) error {
	corners := [][2]float64{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}
	for i := range corners {
		a := corners[i]
		b := corners[(i+1)%len(corners)]
		if _, err := d.Line(a[0], a[1], 0, b[0], b[1], 0); err != nil {
			return err
		}
	}
	return nil
}

// textHeight scales label text to the piece, clamped to a legible range.
func textHeight(w, h float64) float64 {
	t := min(w, h) / 8
	return max(5, min(t, 25))
}

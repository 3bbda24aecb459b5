package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/piwi3910/BoardCut/internal/model"
)

// WriteText prints a plain-text summary suitable for a terminal.
func WriteText(w io.Writer, result model.Result) error {
	stats := result.Stats
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "BOARDS\tSIZE\tTHICKNESS\tUNIT PRICE\tSUBTOTAL")
	for _, bt := range stats.BoardsByType {
		fmt.Fprintf(tw, "%d\t%gx%g mm\t%g mm\t%.2f\t%.2f\n",
			bt.Count, bt.Width, bt.Height, bt.Thickness, bt.Price, bt.Subtotal())
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nBoards: %d\n", stats.TotalBoards)
	fmt.Fprintf(w, "Total cost: %.2f\n", stats.TotalCost)
	fmt.Fprintf(w, "Pieces placed: %d/%d\n", stats.PlacedPieces, stats.TotalPieces)
	_, err := fmt.Fprintf(w, "Utilization: %.1f%%\n", stats.Efficiency)
	if err != nil {
		return err
	}

	if n := len(result.Offcuts); n > 0 {
		fmt.Fprintf(w, "\nReusable offcuts: %d (%.0f mm²)\n", n, model.TotalOffcutArea(result.Offcuts))
		for _, o := range result.Offcuts {
			if _, err := fmt.Fprintf(w, "  board %d: %gx%g mm at (%g, %g), %g mm\n",
				o.BoardID, o.Width, o.Height, o.X, o.Y, o.Thickness); err != nil {
				return err
			}
		}
	}

	if n := len(result.Unplaced); n > 0 {
		fmt.Fprintf(w, "\nUnplaced pieces: %d\n", n)
		for _, u := range result.Unplaced {
			if _, err := fmt.Fprintf(w, "  %s (%gx%g, %g mm): %s\n",
				u.Piece.Name, u.Piece.Width, u.Piece.Height, u.Piece.Thickness, u.Reason); err != nil {
				return err
			}
		}
	}
	return nil
}

package model

import "math"

// BoardEstimate is an area-based purchase estimate for one thickness.
type BoardEstimate struct {
	Thickness         float64 `json:"thickness"`
	TotalPieceArea    float64 `json:"total_piece_area"`    // Σ (w+kerf)(h+kerf), sq mm
	UsableBoardArea   float64 `json:"usable_board_area"`   // Board area inside the margins, sq mm
	BoardsNeededExact float64 `json:"boards_needed_exact"` // Fractional number of boards
	BoardsNeededMin   int     `json:"boards_needed_min"`   // Ceiling of exact, a lower bound for any packing
	MinimumCost       float64 `json:"minimum_cost"`
}

// EstimateBoards computes, per thickness, how many boards are needed at the
// very least if pieces could be tiled without any waste. The optimizer can
// only ever match or exceed BoardsNeededMin. Thicknesses without a template
// are skipped. Output order follows the first appearance of each thickness
// in pieces.
func EstimateBoards(pieces []Piece, templates []BoardTemplate, kerf, margin float64) []BoardEstimate {
	var order []float64
	areas := make(map[float64]float64)
	for _, p := range pieces {
		if _, ok := areas[p.Thickness]; !ok {
			order = append(order, p.Thickness)
		}
		areas[p.Thickness] += (p.Width + kerf) * (p.Height + kerf)
	}

	var out []BoardEstimate
	for _, t := range order {
		tpl, ok := FindTemplate(templates, t)
		if !ok {
			continue
		}
		est := BoardEstimate{
			Thickness:      t,
			TotalPieceArea: areas[t],
		}
		usable := math.Max(0, tpl.Width-2*margin) * math.Max(0, tpl.Height-2*margin)
		est.UsableBoardArea = usable
		if usable > 0 {
			est.BoardsNeededExact = areas[t] / usable
			est.BoardsNeededMin = int(math.Ceil(est.BoardsNeededExact))
			est.MinimumCost = float64(est.BoardsNeededMin) * tpl.Price
		}
		out = append(out, est)
	}
	return out
}

// FindTemplate returns the first template whose thickness equals t.
// When several templates share a thickness the earliest one in the list wins.
func FindTemplate(templates []BoardTemplate, t float64) (BoardTemplate, bool) {
	for _, tpl := range templates {
		if tpl.Thickness == t {
			return tpl, true
		}
	}
	return BoardTemplate{}, false
}

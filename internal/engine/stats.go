package engine

import "github.com/piwi3910/BoardCut/internal/model"

// boardTypeKey identifies boards that are interchangeable on a shopping list.
type boardTypeKey struct {
	w, h, t float64
}

// Summarize folds a board list into counts, cost and utilization.
// totalPieces is the number of pieces handed to the optimizer. Boards are
// not modified. BoardsByType follows the order in which each type first
// appears in boards.
func Summarize(boards []model.Board, totalPieces int) model.Stats {
	stats := model.Stats{
		TotalBoards:  len(boards),
		TotalPieces:  totalPieces,
		BoardsByType: []model.BoardTypeCount{},
	}

	index := make(map[boardTypeKey]int)
	var usedArea, boardArea float64
	for _, b := range boards {
		stats.TotalCost += b.Price
		stats.PlacedPieces += len(b.Pieces)
		usedArea += b.UsedArea()
		boardArea += b.TotalArea()

		key := boardTypeKey{b.Width, b.Height, b.Thickness}
		i, ok := index[key]
		if !ok {
			i = len(stats.BoardsByType)
			index[key] = i
			stats.BoardsByType = append(stats.BoardsByType, model.BoardTypeCount{
				Width:     b.Width,
				Height:    b.Height,
				Thickness: b.Thickness,
				Price:     b.Price,
			})
		}
		stats.BoardsByType[i].Count++
	}

	if boardArea > 0 {
		stats.Efficiency = usedArea / boardArea * 100.0
	}
	return stats
}

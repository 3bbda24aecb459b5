package model

// BoardTypeCount is one line of the shopping list: identical boards and how many to buy.
type BoardTypeCount struct {
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Thickness float64 `json:"thickness"`
	Price     float64 `json:"price"`
	Count     int     `json:"count"`
}

// Subtotal returns Count x Price.
func (bt BoardTypeCount) Subtotal() float64 {
	return float64(bt.Count) * bt.Price
}

// Stats aggregates a packing result.
type Stats struct {
	TotalBoards  int              `json:"total_boards"`
	TotalPieces  int              `json:"total_pieces"`  // Pieces handed to the optimizer
	PlacedPieces int              `json:"placed_pieces"` // Pieces that ended up on a board
	TotalCost    float64          `json:"total_cost"`
	BoardsByType []BoardTypeCount `json:"boards_by_type"`
	Efficiency   float64          `json:"efficiency"` // Useful area / purchased area, in percent
}

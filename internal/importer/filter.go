package importer

import "github.com/piwi3910/BoardCut/internal/model"

// ExcludedGroup counts the pieces of one thickness that have no board template.
type ExcludedGroup struct {
	Thickness float64
	Count     int
}

// FilterByTemplates keeps the pieces whose thickness has a board template.
// The rest are counted per thickness, in order of first appearance.
func FilterByTemplates(pieces []model.Piece, templates []model.BoardTemplate) ([]model.Piece, []ExcludedGroup) {
	kept := make([]model.Piece, 0, len(pieces))
	var excluded []ExcludedGroup
	index := make(map[float64]int)

	for _, p := range pieces {
		if _, ok := model.FindTemplate(templates, p.Thickness); ok {
			kept = append(kept, p)
			continue
		}
		i, ok := index[p.Thickness]
		if !ok {
			i = len(excluded)
			index[p.Thickness] = i
			excluded = append(excluded, ExcludedGroup{Thickness: p.Thickness})
		}
		excluded[i].Count++
	}
	return kept, excluded
}

// PreviewRow is one line of the cut list as the user wrote it, before
// quantity expansion.
type PreviewRow struct {
	Name      string
	Width     float64
	Height    float64
	Thickness float64
	Quantity  int
}

// Preview folds pieces sharing a base name (see BaseName) into one row, in
// order of first appearance, so the import can be shown for confirmation.
// Quantity counts the pieces folded into the row. At most limit rows are
// returned; limit <= 0 means no limit.
func Preview(pieces []model.Piece, limit int) []PreviewRow {
	var rows []PreviewRow
	index := make(map[string]int)
	for _, p := range pieces {
		name, _ := BaseName(p.Name)
		if i, ok := index[name]; ok {
			rows[i].Quantity++
			continue
		}
		if limit > 0 && len(rows) == limit {
			continue
		}
		index[name] = len(rows)
		rows = append(rows, PreviewRow{
			Name:      name,
			Width:     p.Width,
			Height:    p.Height,
			Thickness: p.Thickness,
			Quantity:  1,
		})
	}
	return rows
}

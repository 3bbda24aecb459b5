package engine

import "github.com/piwi3910/BoardCut/internal/model"

// occupiedIndex records the kerf-inflated footprints already claimed on one
// board. Entries are only ever appended.
type occupiedIndex struct {
	used []model.Rect
}

// overlaps returns true if r intersects any claimed footprint.
func (ix *occupiedIndex) overlaps(r model.Rect) bool {
	for _, u := range ix.used {
		if r.Overlaps(u) {
			return true
		}
	}
	return false
}

func (ix *occupiedIndex) insert(r model.Rect) {
	ix.used = append(ix.used, r)
}

func (ix *occupiedIndex) len() int {
	return len(ix.used)
}

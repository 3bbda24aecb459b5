package model

// Rect is an axis-aligned rectangle in board coordinates (mm), origin top-left.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Overlaps returns true if the two rectangles share interior area.
// Rectangles that only touch along an edge do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return !(r.Right() <= o.X || r.X >= o.Right() ||
		r.Bottom() <= o.Y || r.Y >= o.Bottom())
}

// Inflate grows the width and height by d, keeping the origin.
func (r Rect) Inflate(d float64) Rect {
	return Rect{X: r.X, Y: r.Y, W: r.W + d, H: r.H + d}
}

// Within reports whether r lies inside a w x h area shrunk by margin on every side.
func (r Rect) Within(w, h, margin float64) bool {
	const eps = 1e-9
	return r.X >= margin-eps && r.Y >= margin-eps &&
		r.Right() <= w-margin+eps && r.Bottom() <= h-margin+eps
}

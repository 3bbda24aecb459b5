package model

import "testing"

func TestRectOverlaps(t *testing.T) {
	base := Rect{X: 10, Y: 10, W: 20, H: 20}

	tests := []struct {
		name string
		r    Rect
		want bool
	}{
		{"identical", base, true},
		{"inside", Rect{X: 15, Y: 15, W: 5, H: 5}, true},
		{"partial", Rect{X: 25, Y: 25, W: 20, H: 20}, true},
		{"touching left", Rect{X: 0, Y: 10, W: 10, H: 20}, false},
		{"touching right", Rect{X: 30, Y: 10, W: 10, H: 20}, false},
		{"touching above", Rect{X: 10, Y: 0, W: 20, H: 10}, false},
		{"touching below", Rect{X: 10, Y: 30, W: 20, H: 10}, false},
		{"far away", Rect{X: 100, Y: 100, W: 1, H: 1}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := base.Overlaps(tc.r); got != tc.want {
				t.Errorf("Overlaps(%+v) = %v, want %v", tc.r, got, tc.want)
			}
			if got := tc.r.Overlaps(base); got != tc.want {
				t.Errorf("Overlaps is not symmetric for %+v", tc.r)
			}
		})
	}
}

func TestRectInflate(t *testing.T) {
	got := Rect{X: 4, Y: 4, W: 40, H: 20}.Inflate(3)
	if got != (Rect{X: 4, Y: 4, W: 43, H: 23}) {
		t.Errorf("unexpected inflated rect %+v", got)
	}
}

func TestRectWithin(t *testing.T) {
	if !(Rect{X: 4, Y: 4, W: 92, H: 42}).Within(100, 50, 4) {
		t.Error("rect touching the margin should be within")
	}
	if (Rect{X: 3, Y: 4, W: 10, H: 10}).Within(100, 50, 4) {
		t.Error("rect left of the margin should not be within")
	}
	if (Rect{X: 4, Y: 4, W: 93, H: 10}).Within(100, 50, 4) {
		t.Error("rect crossing the right margin should not be within")
	}
}

package geom

import (
	"math"
	"testing"
)

func TestUnit(t *testing.T) {
	u, ok := V(3, 4).Unit()
	if !ok {
		t.Fatalf("expected ok for non-zero vector")
	}
	if math.Abs(u.X-0.6) > 1e-12 || math.Abs(u.Y-0.8) > 1e-12 {
		t.Fatalf("unit=%v want=(0.6,0.8)", u)
	}
	if _, ok := V(0, 0).Unit(); ok {
		t.Fatalf("zero vector must not normalise")
	}
}

func TestDistances(t *testing.T) {
	a, b := V(1, 1), V(4, 5)
	if got := a.Dist(b); got != 5 {
		t.Fatalf("dist=%v want=5", got)
	}
	if got := a.DistSq(b); got != 25 {
		t.Fatalf("distsq=%v want=25", got)
	}
	if got := a.Chebyshev(b); got != 4 {
		t.Fatalf("chebyshev=%v want=4", got)
	}
}

func TestRectFromCorners(t *testing.T) {
	// y-up top-left / bottom-right, as a viewport would pass them.
	r := RectFromCorners(V(-2, 3), V(4, -1))
	if r.Min != V(-2, -1) || r.Max != V(4, 3) {
		t.Fatalf("rect=%+v", r)
	}
	if r.LongestSide() != 6 {
		t.Fatalf("longest=%v want=6", r.LongestSide())
	}
	if r.Center() != V(1, 1) {
		t.Fatalf("center=%v want=(1,1)", r.Center())
	}
	for _, tc := range []struct {
		p    Vec2
		want bool
	}{
		{V(0, 0), true},
		{V(-2, -1), true},
		{V(4, 3), true},
		{V(4.01, 0), false},
		{V(0, -1.5), false},
	} {
		if got := r.Contains(tc.p); got != tc.want {
			t.Fatalf("Contains(%v)=%v want=%v", tc.p, got, tc.want)
		}
	}
}

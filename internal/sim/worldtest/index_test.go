package worldtest

import (
	"math"
	"math/rand/v2"
	"sort"
	"testing"

	"antcolony.ai/internal/sim/geom"
	world "antcolony.ai/internal/sim/world"
)

func scatter(t *testing.T, n int) *Harness {
	t.Helper()
	h := NewHarness(t, baseConfig())
	rng := rand.New(rand.NewPCG(7, 11))
	positions := make([]geom.Vec2, n)
	sizes := make([]float64, n)
	for i := range positions {
		positions[i] = geom.V(math.Round(rng.Float64()*200-100), math.Round(rng.Float64()*200-100))
		sizes[i] = 1
	}
	if _, err := h.W.CreateResources(positions, sizes); err != nil {
		t.Fatalf("CreateResources: %v", err)
	}
	return h
}

func idSet(es []world.Entity) map[string]bool {
	out := make(map[string]bool, len(es))
	for _, e := range es {
		out[e.ID()] = true
	}
	return out
}

func TestIndex_QueriesMatchBruteForce(t *testing.T) {
	h := scatter(t, 500)
	all := h.W.Objects()

	centers := []geom.Vec2{geom.V(0, 0), geom.V(50, -20), geom.V(-99, 99), geom.V(300, 300)}
	for _, c := range centers {
		for _, r := range []float64{0, 5, 17.5, 60} {
			gotR := idSet(h.W.QueryRadius(c, r))
			gotS := idSet(h.W.QuerySquare(c, r))
			for _, e := range all {
				p := e.Position()
				if inR := p.DistSq(c) <= r*r; inR != gotR[e.ID()] {
					t.Fatalf("radius c=%v r=%v: %s at %v in=%v got=%v", c, r, e.ID(), p, inR, gotR[e.ID()])
				}
				if inS := p.Chebyshev(c) <= r; inS != gotS[e.ID()] {
					t.Fatalf("square c=%v r=%v: %s at %v in=%v got=%v", c, r, e.ID(), p, inS, gotS[e.ID()])
				}
			}
		}
	}
}

func TestIndex_RectangleIsFilteredSquare(t *testing.T) {
	h := scatter(t, 400)
	rects := [][2]geom.Vec2{
		{geom.V(-10, -10), geom.V(30, 5)},
		{geom.V(30, 5), geom.V(-10, -10)},
		{geom.V(0, 0), geom.V(0, 0)},
		{geom.V(-100, -100), geom.V(100, 100)},
	}
	for _, rc := range rects {
		r := geom.RectFromCorners(rc[0], rc[1])
		got := h.W.QueryRectangle(rc[0], rc[1])
		square := idSet(h.W.QuerySquare(r.Center(), r.LongestSide()))
		gotSet := idSet(got)
		for id := range gotSet {
			if !square[id] {
				t.Fatalf("rect %v: %s not in the enclosing square", rc, id)
			}
		}
		for _, e := range h.W.Objects() {
			if in := r.Contains(e.Position()); in != gotSet[e.ID()] {
				t.Fatalf("rect %v: %s at %v in=%v got=%v", rc, e.ID(), e.Position(), in, gotSet[e.ID()])
			}
		}
	}
}

func TestIndex_RectangleKeepsEdgePoints(t *testing.T) {
	h := NewHarness(t, baseConfig())
	coords := []float64{0.1, 0.2, 0.3, 0.7, 1.1, 2.3, 3.7}
	var positions []geom.Vec2
	var sizes []float64
	for _, x := range coords {
		for _, y := range coords {
			positions = append(positions, geom.V(x, y))
			sizes = append(sizes, 1)
		}
	}
	if _, err := h.W.CreateResources(positions, sizes); err != nil {
		t.Fatalf("CreateResources: %v", err)
	}

	// Every box has objects sitting exactly on its edges and corners.
	for i, lo := range coords {
		for _, hi := range coords[i:] {
			for _, corners := range [][2]geom.Vec2{
				{geom.V(lo, lo), geom.V(hi, hi)},
				{geom.V(lo, hi), geom.V(hi, lo)},
				{geom.V(0.1, lo), geom.V(hi, 3.7)},
			} {
				r := geom.RectFromCorners(corners[0], corners[1])
				want := 0
				for _, p := range positions {
					if r.Contains(p) {
						want++
					}
				}
				if got := len(h.W.QueryRectangle(corners[0], corners[1])); got != want {
					t.Fatalf("box %v-%v: got %d want %d", r.Min, r.Max, got, want)
				}
			}
		}
	}
}

func TestIndex_NearestK(t *testing.T) {
	h := scatter(t, 300)
	q := geom.V(3.3, -7.1)

	want := make([]float64, 0, h.W.Len())
	for _, e := range h.W.Objects() {
		want = append(want, math.Sqrt(e.Position().DistSq(q)))
	}
	sort.Float64s(want)

	for _, k := range []int{1, 5, 40, 300, 1000} {
		ents, dist := h.W.NearestK(q, k)
		n := min(k, len(want))
		if len(ents) != n || len(dist) != n {
			t.Fatalf("k=%d: got %d entities %d dists want %d", k, len(ents), len(dist), n)
		}
		for i := range dist {
			if dist[i] != want[i] {
				t.Fatalf("k=%d: dist[%d]=%v want=%v", k, i, dist[i], want[i])
			}
			if d := ents[i].Position().Dist(q); !approx(d, dist[i]) {
				t.Fatalf("k=%d: entity %s at distance %v reported %v", k, ents[i].ID(), d, dist[i])
			}
		}
	}
}

func TestIndex_TracksMovement(t *testing.T) {
	h := NewHarness(t, baseConfig())
	b := h.Base("P1", geom.V(0, 0))
	h.Agents(b, "scout", 10)
	h.StepFor(25)

	for _, a := range h.W.Agents() {
		found := false
		for _, e := range h.W.At(a.Position()) {
			if e.ID() == a.ID() {
				found = true
			}
		}
		if !found {
			t.Fatalf("agent %s not indexed at %v after moving", a.ID(), a.Position())
		}
	}
}

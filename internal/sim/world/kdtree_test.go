package world

import (
	"math/rand/v2"
	"slices"
	"sort"
	"testing"

	"antcolony.ai/internal/sim/geom"
)

func randomPoints(rng *rand.Rand, n int) []geom.Vec2 {
	pts := make([]geom.Vec2, n)
	for i := range pts {
		// Integer grid so ties and duplicates show up.
		pts[i] = geom.V(float64(rng.IntN(41)-20), float64(rng.IntN(41)-20))
	}
	return pts
}

func TestKDTree_WithinMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	pts := randomPoints(rng, 600)
	tree := buildKDTree(pts)

	for q := 0; q < 200; q++ {
		c := geom.V(rng.Float64()*50-25, rng.Float64()*50-25)
		r := rng.Float64() * 12
		for _, cheb := range []bool{false, true} {
			var want []int
			for i, p := range pts {
				d := c.Dist(p)
				if cheb {
					d = c.Chebyshev(p)
				}
				if d <= r {
					want = append(want, i)
				}
			}
			got := tree.within(c, r, cheb)
			if !slices.Equal(got, want) {
				t.Fatalf("within(%v, %v, cheb=%v): got %d points, want %d", c, r, cheb, len(got), len(want))
			}
		}
	}
}

func TestKDTree_NearestMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	pts := randomPoints(rng, 400)
	tree := buildKDTree(pts)

	for q := 0; q < 200; q++ {
		c := geom.V(rng.Float64()*50-25, rng.Float64()*50-25)
		k := 1 + rng.IntN(30)

		all := make([]int, len(pts))
		for i := range all {
			all[i] = i
		}
		sort.Slice(all, func(a, b int) bool {
			da, db := c.DistSq(pts[all[a]]), c.DistSq(pts[all[b]])
			if da != db {
				return da < db
			}
			return all[a] < all[b]
		})
		want := all[:k]

		got, dist := tree.nearest(c, k)
		if !slices.Equal(got, want) {
			t.Fatalf("nearest(%v, %d): got %v want %v", c, k, got, want)
		}
		for i := 1; i < len(dist); i++ {
			if dist[i] < dist[i-1] {
				t.Fatalf("distances not ascending: %v", dist)
			}
		}
	}
}

func TestKDTree_NearestCapsAtPopulation(t *testing.T) {
	tree := buildKDTree([]geom.Vec2{geom.V(0, 0), geom.V(3, 4)})
	idx, dist := tree.nearest(geom.V(0, 0), 10)
	if len(idx) != 2 || idx[0] != 0 || idx[1] != 1 {
		t.Fatalf("idx=%v", idx)
	}
	if dist[0] != 0 || dist[1] != 5 {
		t.Fatalf("dist=%v", dist)
	}
}

func TestKDTree_Empty(t *testing.T) {
	tree := buildKDTree(nil)
	if got := tree.within(geom.V(0, 0), 10, false); len(got) != 0 {
		t.Fatalf("within on empty tree: %v", got)
	}
	if got, _ := tree.nearest(geom.V(0, 0), 3); len(got) != 0 {
		t.Fatalf("nearest on empty tree: %v", got)
	}
}

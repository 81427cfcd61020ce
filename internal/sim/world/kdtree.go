package world

import (
	"container/heap"
	"math"
	"slices"

	"antcolony.ai/internal/sim/geom"
)

// kdTree is a static 2-d tree over a snapshot of positions. It is built once per
// tick and never mutated afterwards; results are indices into the snapshot.
//
// The tree is implicit: for the half-open range [lo,hi) of order, the node is
// order[mid] with mid=(lo+hi)/2, its left subtree is [lo,mid) and its right
// subtree is [mid+1,hi). Axis alternates with depth, x first.
type kdTree struct {
	pts   []geom.Vec2
	order []int
}

func buildKDTree(pts []geom.Vec2) *kdTree {
	t := &kdTree{
		pts:   pts,
		order: make([]int, len(pts)),
	}
	for i := range t.order {
		t.order[i] = i
	}
	t.build(0, len(t.order), 0)
	return t
}

func (t *kdTree) build(lo, hi, depth int) {
	if hi-lo <= 1 {
		return
	}
	axis := depth % 2
	slices.SortFunc(t.order[lo:hi], func(a, b int) int {
		pa, pb := t.pts[a].Axis(axis), t.pts[b].Axis(axis)
		switch {
		case pa < pb:
			return -1
		case pa > pb:
			return 1
		default:
			return a - b
		}
	})
	mid := (lo + hi) / 2
	t.build(lo, mid, depth+1)
	t.build(mid+1, hi, depth+1)
}

func (t *kdTree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.order)
}

// within collects every point whose distance to center is <= r. cheb selects the
// Chebyshev metric instead of Euclidean. Results are sorted ascending.
func (t *kdTree) within(center geom.Vec2, r float64, cheb bool) []int {
	if t.Len() == 0 || r < 0 || math.IsNaN(r) {
		return nil
	}
	var out []int
	r2 := r * r
	var walk func(lo, hi, depth int)
	walk = func(lo, hi, depth int) {
		if lo >= hi {
			return
		}
		mid := (lo + hi) / 2
		i := t.order[mid]
		p := t.pts[i]
		if cheb {
			if center.Chebyshev(p) <= r {
				out = append(out, i)
			}
		} else if center.DistSq(p) <= r2 {
			out = append(out, i)
		}
		axis := depth % 2
		c, split := center.Axis(axis), p.Axis(axis)
		if c-r <= split {
			walk(lo, mid, depth+1)
		}
		if c+r >= split {
			walk(mid+1, hi, depth+1)
		}
	}
	walk(0, len(t.order), 0)
	slices.Sort(out)
	return out
}

type neighbor struct {
	idx    int
	distSq float64
}

// neighborHeap is a max-heap on distance so the current worst match sits on top.
type neighborHeap []neighbor

func (h neighborHeap) Len() int { return len(h) }
func (h neighborHeap) Less(i, j int) bool {
	if h[i].distSq != h[j].distSq {
		return h[i].distSq > h[j].distSq
	}
	return h[i].idx > h[j].idx
}
func (h neighborHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *neighborHeap) Push(x any)   { *h = append(*h, x.(neighbor)) }
func (h *neighborHeap) Pop() any {
	old := *h
	n := old[len(old)-1]
	*h = old[:len(old)-1]
	return n
}

// nearest returns up to k indices ordered by ascending Euclidean distance, with distances.
func (t *kdTree) nearest(q geom.Vec2, k int) ([]int, []float64) {
	if t.Len() == 0 || k <= 0 {
		return nil, nil
	}
	if k > t.Len() {
		k = t.Len()
	}
	h := make(neighborHeap, 0, k)
	var walk func(lo, hi, depth int)
	walk = func(lo, hi, depth int) {
		if lo >= hi {
			return
		}
		mid := (lo + hi) / 2
		i := t.order[mid]
		p := t.pts[i]
		d := q.DistSq(p)
		if len(h) < k {
			heap.Push(&h, neighbor{idx: i, distSq: d})
		} else if d < h[0].distSq || (d == h[0].distSq && i < h[0].idx) {
			h[0] = neighbor{idx: i, distSq: d}
			heap.Fix(&h, 0)
		}

		axis := depth % 2
		diff := q.Axis(axis) - p.Axis(axis)
		near, far := [2]int{lo, mid}, [2]int{mid + 1, hi}
		if diff > 0 {
			near, far = far, near
		}
		walk(near[0], near[1], depth+1)
		if len(h) < k || diff*diff <= h[0].distSq {
			walk(far[0], far[1], depth+1)
		}
	}
	walk(0, len(t.order), 0)

	idx := make([]int, len(h))
	dist := make([]float64, len(h))
	for n := len(h) - 1; n >= 0; n-- {
		nb := heap.Pop(&h).(neighbor)
		idx[n] = nb.idx
		dist[n] = math.Sqrt(nb.distSq)
	}
	return idx, dist
}

package geom

import "math"

// Vec2 is a point or displacement in the continuous world plane.
type Vec2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (a Vec2) Add(b Vec2) Vec2 {
	return Vec2{X: a.X + b.X, Y: a.Y + b.Y}
}

func (a Vec2) Sub(b Vec2) Vec2 {
	return Vec2{X: a.X - b.X, Y: a.Y - b.Y}
}

func (a Vec2) Scale(k float64) Vec2 {
	return Vec2{X: a.X * k, Y: a.Y * k}
}

func (a Vec2) Len() float64 {
	return math.Hypot(a.X, a.Y)
}

func (a Vec2) IsZero() bool {
	return a.X == 0 && a.Y == 0
}

func (a Vec2) Dist(b Vec2) float64 {
	return a.Sub(b).Len()
}

func (a Vec2) DistSq(b Vec2) float64 {
	d := a.Sub(b)
	return d.X*d.X + d.Y*d.Y
}

func (a Vec2) Arr() [2]float64 {
	return [2]float64{a.X, a.Y}
}

func FromArr(v [2]float64) Vec2 {
	return Vec2{X: v[0], Y: v[1]}
}

// Axis returns the coordinate along dim (0 = x, 1 = y).
func (a Vec2) Axis(dim int) float64 {
	if dim == 0 {
		return a.X
	}
	return a.Y
}

// Chebyshev is the L-infinity distance.
func (a Vec2) Chebyshev(b Vec2) float64 {
	return math.Max(math.Abs(a.X-b.X), math.Abs(a.Y-b.Y))
}

// Unit returns a scaled to length 1. ok is false for the zero vector.
func (a Vec2) Unit() (Vec2, bool) {
	l := a.Len()
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return Vec2{}, false
	}
	return Vec2{X: a.X / l, Y: a.Y / l}, true
}

func (a Vec2) Finite() bool {
	return !math.IsNaN(a.X) && !math.IsNaN(a.Y) && !math.IsInf(a.X, 0) && !math.IsInf(a.Y, 0)
}

// Rect is an axis-aligned box, Min <= Max on both axes.
type Rect struct {
	Min Vec2 `json:"min"`
	Max Vec2 `json:"max"`
}

// RectFromCorners normalises two opposite corners, in either orientation.
func RectFromCorners(a, b Vec2) Rect {
	return Rect{
		Min: Vec2{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)},
		Max: Vec2{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)},
	}
}

func (r Rect) Contains(p Vec2) bool {
	return r.Min.X <= p.X && p.X <= r.Max.X && r.Min.Y <= p.Y && p.Y <= r.Max.Y
}

func (r Rect) Center() Vec2 {
	return Vec2{X: (r.Min.X + r.Max.X) / 2, Y: (r.Min.Y + r.Max.Y) / 2}
}

func (r Rect) LongestSide() float64 {
	return math.Max(r.Max.X-r.Min.X, r.Max.Y-r.Min.Y)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

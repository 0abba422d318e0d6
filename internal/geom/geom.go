// Package geom holds the small amount of plane geometry the drag-and-drop layer needs.
//
// All values share one coordinate space (screen cells for the TUI). Rectangles are
// edge-inclusive: a point lying exactly on any edge is inside.
package geom

import "fmt"

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

func (p Point) String() string { return fmt.Sprintf("(%g,%g)", p.X, p.Y) }

type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"width"`
	H float64 `json:"height"`
}

func (r Rect) MaxX() float64 { return r.X + r.W }

func (r Rect) MaxY() float64 { return r.Y + r.H }

func (r Rect) Origin() Point { return Point{X: r.X, Y: r.Y} }

func (r Rect) Area() float64 { return r.W * r.H }

func (r Rect) String() string {
	return fmt.Sprintf("{x:%g y:%g w:%g h:%g}", r.X, r.Y, r.W, r.H)
}

// Expand returns r grown by pad on all four sides.
// Negative padding is not a supported input.
func Expand(r Rect, pad float64) Rect {
	return Rect{
		X: r.X - pad,
		Y: r.Y - pad,
		W: r.W + pad*2,
		H: r.H + pad*2,
	}
}

// ContainsPoint reports whether p lies inside r, edges included.
// A nil rect (not measured yet) contains nothing.
func ContainsPoint(p Point, r *Rect) bool {
	if r == nil {
		return false
	}
	return p.X >= r.X && p.X <= r.MaxX() &&
		p.Y >= r.Y && p.Y <= r.MaxY()
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

// ClampPoint clamps p into r component-wise.
func ClampPoint(p Point, r Rect) Point {
	return Point{
		X: Clamp(p.X, r.X, r.MaxX()),
		Y: Clamp(p.Y, r.Y, r.MaxY()),
	}
}

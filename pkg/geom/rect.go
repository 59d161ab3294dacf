package geom

import (
	"fmt"
	"math"
)

// Side names one edge of a rectangle.
type Side int

const (
	SideNone Side = iota
	SideTop
	SideRight
	SideBottom
	SideLeft
)

func (s Side) String() string {
	switch s {
	case SideTop:
		return "top"
	case SideRight:
		return "right"
	case SideBottom:
		return "bottom"
	case SideLeft:
		return "left"
	}
	return "none"
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
// A valid Rect has W > 0 and H > 0.
type Rect struct {
	TopLeft Point
	W, H    float64
}

// R is a convenience constructor for Rect.
func R(x, y, w, h float64) Rect { return Rect{TopLeft: Point{x, y}, W: w, H: h} }

// Left returns the minimum X coordinate.
func (r Rect) Left() float64 { return r.TopLeft.X }

// Top returns the minimum Y coordinate.
func (r Rect) Top() float64 { return r.TopLeft.Y }

// Right returns the maximum X coordinate.
func (r Rect) Right() float64 { return r.TopLeft.X + r.W }

// Bottom returns the maximum Y coordinate.
func (r Rect) Bottom() float64 { return r.TopLeft.Y + r.H }

// Area returns W*H.
func (r Rect) Area() float64 { return r.W * r.H }

// Center returns the centroid.
func (r Rect) Center() Point { return Point{r.TopLeft.X + r.W/2, r.TopLeft.Y + r.H/2} }

// Valid reports whether the rectangle is finite and non-degenerate.
func (r Rect) Valid() bool {
	return r.TopLeft.Finite() && r.W > Epsilon && r.H > Epsilon &&
		!math.IsInf(r.W, 0) && !math.IsInf(r.H, 0)
}

// MinSide returns min(W, H).
func (r Rect) MinSide() float64 { return math.Min(r.W, r.H) }

// Aspect returns the ratio of the longer to the shorter side (>= 1).
func (r Rect) Aspect() float64 {
	if r.MinSide() <= 0 {
		return math.Inf(1)
	}
	return math.Max(r.W, r.H) / r.MinSide()
}

// Shape returns the rectangle as a closed clockwise polygon starting at the
// top-left corner.
func (r Rect) Shape() Shape {
	return Shape{
		Points: []Point{
			{r.Left(), r.Top()},
			{r.Right(), r.Top()},
			{r.Right(), r.Bottom()},
			{r.Left(), r.Bottom()},
		},
		Connected: true,
	}
}

// Edge returns the segment for one side of the rectangle.
func (r Rect) Edge(s Side) Segment {
	switch s {
	case SideTop:
		return Segment{Point{r.Left(), r.Top()}, Point{r.Right(), r.Top()}}
	case SideRight:
		return Segment{Point{r.Right(), r.Top()}, Point{r.Right(), r.Bottom()}}
	case SideBottom:
		return Segment{Point{r.Right(), r.Bottom()}, Point{r.Left(), r.Bottom()}}
	case SideLeft:
		return Segment{Point{r.Left(), r.Bottom()}, Point{r.Left(), r.Top()}}
	}
	return Segment{}
}

// Walls returns the four sides of the rectangle, clockwise from the top.
func (r Rect) Walls() []Segment {
	return []Segment{r.Edge(SideTop), r.Edge(SideRight), r.Edge(SideBottom), r.Edge(SideLeft)}
}

// Contains reports whether o lies entirely within r (within Epsilon).
func (r Rect) Contains(o Rect) bool {
	return o.Left() >= r.Left()-Epsilon && o.Top() >= r.Top()-Epsilon &&
		o.Right() <= r.Right()+Epsilon && o.Bottom() <= r.Bottom()+Epsilon
}

// Overlaps reports whether the interiors of r and o intersect with positive
// area. Rectangles that only touch along an edge do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return overlap(r.Left(), r.Right(), o.Left(), o.Right()) > Epsilon &&
		overlap(r.Top(), r.Bottom(), o.Top(), o.Bottom()) > Epsilon
}

func (r Rect) String() string {
	return fmt.Sprintf("[%.3g,%.3g %.3gx%.3g]", r.TopLeft.X, r.TopLeft.Y, r.W, r.H)
}

// SharedEdge returns the boundary segment shared by a and b and the side of
// a it lies on. Two rectangles share an edge when one of a's sides is
// collinear with the opposite side of b and their projections onto that axis
// overlap with positive length. ok is false for disjoint rectangles, for
// rectangles touching only at a corner, and for overlapping rectangles.
func SharedEdge(a, b Rect) (seg Segment, side Side, ok bool) {
	if a.Overlaps(b) {
		return Segment{}, SideNone, false
	}

	// Vertical contact: a's right against b's left, or a's left against b's right.
	if lo, hi := overlapRange(a.Top(), a.Bottom(), b.Top(), b.Bottom()); hi-lo > Epsilon {
		switch {
		case near(a.Right(), b.Left()):
			return Segment{Point{a.Right(), lo}, Point{a.Right(), hi}}, SideRight, true
		case near(a.Left(), b.Right()):
			return Segment{Point{a.Left(), lo}, Point{a.Left(), hi}}, SideLeft, true
		}
	}

	// Horizontal contact: a's bottom against b's top, or a's top against b's bottom.
	if lo, hi := overlapRange(a.Left(), a.Right(), b.Left(), b.Right()); hi-lo > Epsilon {
		switch {
		case near(a.Bottom(), b.Top()):
			return Segment{Point{lo, a.Bottom()}, Point{hi, a.Bottom()}}, SideBottom, true
		case near(a.Top(), b.Bottom()):
			return Segment{Point{lo, a.Top()}, Point{hi, a.Top()}}, SideTop, true
		}
	}

	return Segment{}, SideNone, false
}

// Touches reports whether a and b share a boundary segment of positive length.
func Touches(a, b Rect) bool {
	_, _, ok := SharedEdge(a, b)
	return ok
}

// ExteriorEdges returns the parts of r's boundary that lie on the boundary of
// the enclosing footprint, keyed by side. Interior sides are omitted.
func ExteriorEdges(r, footprint Rect) map[Side]Segment {
	out := make(map[Side]Segment, 4)
	if near(r.Top(), footprint.Top()) {
		out[SideTop] = r.Edge(SideTop)
	}
	if near(r.Right(), footprint.Right()) {
		out[SideRight] = r.Edge(SideRight)
	}
	if near(r.Bottom(), footprint.Bottom()) {
		out[SideBottom] = r.Edge(SideBottom)
	}
	if near(r.Left(), footprint.Left()) {
		out[SideLeft] = r.Edge(SideLeft)
	}
	return out
}

func near(a, b float64) bool { return math.Abs(a-b) <= Epsilon }

func overlap(a0, a1, b0, b1 float64) float64 {
	lo, hi := overlapRange(a0, a1, b0, b1)
	return hi - lo
}

func overlapRange(a0, a1, b0, b1 float64) (float64, float64) {
	return math.Max(a0, b0), math.Min(a1, b1)
}

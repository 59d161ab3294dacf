// Package geom provides the 2D primitives shared by the layout engine, the
// adjacency validator, and the building assembler.
//
// Coordinates follow the SVG convention: the origin is the top-left corner of
// the footprint and Y grows downward. All values are in user units (meters in
// the example house files).
package geom

import (
	"fmt"
	"math"
)

// Epsilon is the tolerance used for all collinearity and overlap tests.
// Rectangles produced by repeated area division accumulate rounding error, so
// exact float comparison would miss shared walls.
const Epsilon = 1e-6

// Point is a position in the plane.
type Point struct {
	X float64
	Y float64
}

// Pt is a convenience constructor for Point.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 { return math.Hypot(p.X-q.X, p.Y-q.Y) }

// Finite reports whether both coordinates are finite numbers.
func (p Point) Finite() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// Eq reports whether p and q coincide within Epsilon.
func (p Point) Eq(q Point) bool {
	return math.Abs(p.X-q.X) <= Epsilon && math.Abs(p.Y-q.Y) <= Epsilon
}

func (p Point) String() string { return fmt.Sprintf("(%.3g,%.3g)", p.X, p.Y) }

// Segment is a straight line between two points. Walls, doors, and windows
// are all segments.
type Segment struct {
	A, B Point
}

// Len returns the segment length.
func (s Segment) Len() float64 { return s.A.Dist(s.B) }

// Mid returns the segment midpoint.
func (s Segment) Mid() Point { return Point{(s.A.X + s.B.X) / 2, (s.A.Y + s.B.Y) / 2} }

// Horizontal reports whether the segment is axis-aligned along X.
func (s Segment) Horizontal() bool { return math.Abs(s.A.Y-s.B.Y) <= Epsilon }

// Vertical reports whether the segment is axis-aligned along Y.
func (s Segment) Vertical() bool { return math.Abs(s.A.X-s.B.X) <= Epsilon }

// Centered returns a sub-segment of length at most w centered on s.
// If w >= s.Len(), s is returned unchanged.
func (s Segment) Centered(w float64) Segment {
	l := s.Len()
	if w >= l || l == 0 {
		return s
	}
	t := (l - w) / (2 * l)
	d := s.B.Sub(s.A)
	return Segment{
		A: Point{s.A.X + d.X*t, s.A.Y + d.Y*t},
		B: Point{s.B.X - d.X*t, s.B.Y - d.Y*t},
	}
}

// Shape is an ordered sequence of points. When Connected is true the last
// point joins back to the first (a closed polygon); otherwise it is an open
// polyline.
type Shape struct {
	Points    []Point
	Connected bool
}

// Valid reports whether the shape has enough points for its kind: at least 2
// for an open polyline, at least 3 for a closed polygon.
func (s Shape) Valid() bool {
	if s.Connected {
		return len(s.Points) >= 3
	}
	return len(s.Points) >= 2
}

// Edges returns the segments of the shape, including the closing segment for
// connected shapes.
func (s Shape) Edges() []Segment {
	n := len(s.Points)
	if n < 2 {
		return nil
	}
	edges := make([]Segment, 0, n)
	for i := 0; i+1 < n; i++ {
		edges = append(edges, Segment{s.Points[i], s.Points[i+1]})
	}
	if s.Connected && n >= 3 {
		edges = append(edges, Segment{s.Points[n-1], s.Points[0]})
	}
	return edges
}

// Area returns the absolute polygon area (shoelace formula). Open shapes have
// zero area.
func (s Shape) Area() float64 {
	if !s.Connected || len(s.Points) < 3 {
		return 0
	}
	var sum float64
	for i, p := range s.Points {
		q := s.Points[(i+1)%len(s.Points)]
		sum += p.X*q.Y - q.X*p.Y
	}
	return math.Abs(sum) / 2
}

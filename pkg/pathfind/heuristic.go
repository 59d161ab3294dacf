package pathfind

import "github.com/matzehuels/blueprint/pkg/geom"

// Heuristic estimates the remaining cost between two vertex positions.
//
// Search returns optimal paths only when the estimate never exceeds the true
// remaining cost (admissible). Because each vertex is finalized at most once,
// the estimate should also be consistent: h(u) <= w(u,v) + h(v) for every
// edge.
type Heuristic interface {
	Estimate(from, goal geom.Point) float64
}

// HeuristicFunc adapts a plain function to Heuristic.
type HeuristicFunc func(from, goal geom.Point) float64

// Estimate calls f(from, goal).
func (f HeuristicFunc) Estimate(from, goal geom.Point) float64 { return f(from, goal) }

// Euclidean is the straight-line distance heuristic. It is admissible and
// consistent whenever every edge weight is at least the distance between its
// endpoints, which holds for the centroid-distance weights the adjacency
// validator uses.
var Euclidean Heuristic = HeuristicFunc(func(from, goal geom.Point) float64 {
	return from.Dist(goal)
})

// Zero always estimates 0, which turns Search into Dijkstra's algorithm.
var Zero Heuristic = HeuristicFunc(func(geom.Point, geom.Point) float64 { return 0 })

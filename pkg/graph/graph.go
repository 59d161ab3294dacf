package graph

import (
	"errors"
	"iter"
	"math"

	"github.com/matzehuels/blueprint/pkg/geom"
)

var (
	// ErrUnknownVertex is returned by [Graph.AddEdge] when either endpoint
	// was not created by [Graph.AddVertex] on the same graph.
	ErrUnknownVertex = errors.New("unknown vertex")

	// ErrSelfLoop is returned by [Graph.AddEdge] when both endpoints are the
	// same vertex. A room is never adjacent to itself.
	ErrSelfLoop = errors.New("self loop")

	// ErrInvalidWeight is returned by [Graph.AddEdge] for negative, NaN, or
	// infinite weights. Shortest-path search requires non-negative costs.
	ErrInvalidWeight = errors.New("edge weight must be finite and non-negative")
)

// VertexID identifies a vertex within one Graph. IDs are dense, starting at
// zero, in AddVertex order.
type VertexID int

// Edge is a weighted connection between two vertices.
type Edge struct {
	From, To VertexID
	Weight   float64
}

type vertex[T any] struct {
	pos  geom.Point
	data T
}

type arc struct {
	to     VertexID
	weight float64
}

// Graph is a weighted graph of positioned vertices carrying a payload of
// type T.
//
// The zero value is not usable - use New to create a valid Graph.
type Graph[T any] struct {
	directed bool
	vertices []vertex[T]
	adj      [][]arc
	edges    []Edge
}

// Option configures a Graph.
type Option func(*options)

type options struct {
	directed bool
}

// WithDirected makes AddEdge create one-way edges.
func WithDirected() Option {
	return func(o *options) { o.directed = true }
}

// New creates an empty graph.
func New[T any](opts ...Option) *Graph[T] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &Graph[T]{directed: o.directed}
}

// Directed reports whether edges are one-way.
func (g *Graph[T]) Directed() bool { return g.directed }

// AddVertex adds a vertex at pos carrying data and returns its handle.
func (g *Graph[T]) AddVertex(pos geom.Point, data T) VertexID {
	g.vertices = append(g.vertices, vertex[T]{pos: pos, data: data})
	g.adj = append(g.adj, nil)
	return VertexID(len(g.vertices) - 1)
}

// AddEdge connects u to v with weight w. For undirected graphs the edge is
// traversable both ways. Parallel edges are allowed; search always prefers
// the cheaper one.
func (g *Graph[T]) AddEdge(u, v VertexID, w float64) error {
	if !g.Has(u) || !g.Has(v) {
		return ErrUnknownVertex
	}
	if u == v {
		return ErrSelfLoop
	}
	if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
		return ErrInvalidWeight
	}
	g.adj[u] = append(g.adj[u], arc{to: v, weight: w})
	if !g.directed {
		g.adj[v] = append(g.adj[v], arc{to: u, weight: w})
	}
	g.edges = append(g.edges, Edge{From: u, To: v, Weight: w})
	return nil
}

// Has reports whether v is a vertex of g.
func (g *Graph[T]) Has(v VertexID) bool { return v >= 0 && int(v) < len(g.vertices) }

// Position returns the position of v. It panics if v is not a vertex of g.
func (g *Graph[T]) Position(v VertexID) geom.Point { return g.vertices[v].pos }

// Data returns the payload of v. It panics if v is not a vertex of g.
func (g *Graph[T]) Data(v VertexID) T { return g.vertices[v].data }

// Len returns the number of vertices.
func (g *Graph[T]) Len() int { return len(g.vertices) }

// EdgeCount returns the number of edges added (an undirected edge counts
// once).
func (g *Graph[T]) EdgeCount() int { return len(g.edges) }

// Edges returns the edges in insertion order. The slice must not be modified.
func (g *Graph[T]) Edges() []Edge { return g.edges }

// Vertices iterates over all vertex IDs in ascending order.
func (g *Graph[T]) Vertices() iter.Seq[VertexID] {
	return func(yield func(VertexID) bool) {
		for i := range g.vertices {
			if !yield(VertexID(i)) {
				return
			}
		}
	}
}

// Neighbors lazily yields (neighbor, weight) pairs reachable from v in one
// step, in edge insertion order. Unknown vertices yield nothing.
func (g *Graph[T]) Neighbors(v VertexID) iter.Seq2[VertexID, float64] {
	return func(yield func(VertexID, float64) bool) {
		if !g.Has(v) {
			return
		}
		for _, a := range g.adj[v] {
			if !yield(a.to, a.weight) {
				return
			}
		}
	}
}

// Degree returns the number of arcs leaving v.
func (g *Graph[T]) Degree(v VertexID) int {
	if !g.Has(v) {
		return 0
	}
	return len(g.adj[v])
}

// HasEdge reports whether v is reachable from u in one step.
func (g *Graph[T]) HasEdge(u, v VertexID) bool {
	_, ok := g.Weight(u, v)
	return ok
}

// Weight returns the weight of the cheapest arc from u to v.
func (g *Graph[T]) Weight(u, v VertexID) (float64, bool) {
	if !g.Has(u) {
		return 0, false
	}
	best, found := math.Inf(1), false
	for _, a := range g.adj[u] {
		if a.to == v && a.weight < best {
			best, found = a.weight, true
		}
	}
	if !found {
		return 0, false
	}
	return best, true
}

// PathCost returns the summed weight of walking path along its cheapest arcs.
// It returns false if two consecutive vertices are not connected.
func (g *Graph[T]) PathCost(path []VertexID) (float64, bool) {
	var total float64
	for i := 1; i < len(path); i++ {
		w, ok := g.Weight(path[i-1], path[i])
		if !ok {
			return 0, false
		}
		total += w
	}
	return total, true
}

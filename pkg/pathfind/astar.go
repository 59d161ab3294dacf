// Package pathfind implements A* shortest-path search over [graph.Graph].
//
// Search is generic over the vertex payload and uses vertex positions only
// through the supplied [Heuristic]. The frontier is a binary heap ordered by
// f = g + h, then by lower h, then by insertion sequence, so results are
// deterministic for a given graph. Stale frontier entries are skipped lazily
// instead of being decreased in place.
//
// "No path" is a normal outcome, reported through Result.Found. Errors are
// returned only for invalid arguments.
package pathfind

import (
	"math"

	"github.com/zyedidia/generic/heap"
	"github.com/zyedidia/generic/mapset"

	errs "github.com/matzehuels/blueprint/pkg/errors"
	"github.com/matzehuels/blueprint/pkg/graph"
)

// Reasons reported in Result.Reason when no path is found.
const (
	ReasonFrontierEmpty   = "frontier exhausted"
	ReasonBudgetExhausted = "expansion budget exhausted"
)

// Result is the outcome of a search.
type Result struct {
	Found    bool
	Path     []graph.VertexID // start..goal inclusive, nil when not found
	Cost     float64          // sum of edge weights along Path
	Expanded int              // vertices finalized during the search
	Reason   string           // why nothing was found; empty when Found
}

// Hops returns the number of edges on the path.
func (r Result) Hops() int {
	if len(r.Path) == 0 {
		return 0
	}
	return len(r.Path) - 1
}

// Option configures a search.
type Option func(*config)

type config struct {
	maxExpansions int
	maxCost       float64
}

// WithMaxExpansions stops the search after n vertices have been expanded.
// A search that hits the budget reports Found=false with
// Reason=ReasonBudgetExhausted. n <= 0 means unlimited.
func WithMaxExpansions(n int) Option {
	return func(c *config) { c.maxExpansions = n }
}

// WithMaxCost discards partial paths whose cost exceeds c.
func WithMaxCost(c float64) Option {
	return func(cfg *config) { cfg.maxCost = c }
}

type item struct {
	v   graph.VertexID
	g   float64
	h   float64
	seq uint64
}

func (a item) f() float64 { return a.g + a.h }

func less(a, b item) bool {
	if fa, fb := a.f(), b.f(); fa != fb {
		return fa < fb
	}
	if a.h != b.h {
		return a.h < b.h
	}
	return a.seq < b.seq
}

// Search finds the cheapest path from start to goal.
//
// Searching from a vertex to itself yields the single-vertex path with cost
// 0. Unknown vertices and a nil heuristic return an INVALID_INPUT error.
func Search[T any](g *graph.Graph[T], start, goal graph.VertexID, h Heuristic, opts ...Option) (Result, error) {
	if g == nil {
		return Result{}, errs.New(errs.ErrCodeInvalidInput, "nil graph")
	}
	if h == nil {
		return Result{}, errs.New(errs.ErrCodeInvalidInput, "nil heuristic")
	}
	if !g.Has(start) || !g.Has(goal) {
		return Result{}, errs.Wrap(errs.ErrCodeInvalidInput, graph.ErrUnknownVertex,
			"search %d -> %d on graph of %d vertices", start, goal, g.Len())
	}

	cfg := config{maxCost: math.Inf(1)}
	for _, opt := range opts {
		opt(&cfg)
	}

	goalPos := g.Position(goal)
	estimate := func(v graph.VertexID) float64 {
		return h.Estimate(g.Position(v), goalPos)
	}

	var seq uint64
	best := map[graph.VertexID]float64{start: 0}
	parent := make(map[graph.VertexID]graph.VertexID)
	closed := mapset.New[graph.VertexID]()
	open := heap.New[item](less)
	open.Push(item{v: start, h: estimate(start)})

	expanded := 0
	for {
		cur, ok := open.Pop()
		if !ok {
			return Result{Expanded: expanded, Reason: ReasonFrontierEmpty}, nil
		}
		if closed.Has(cur.v) || cur.g > best[cur.v] {
			continue
		}
		if cur.v == goal {
			return Result{
				Found:    true,
				Path:     reconstruct(parent, start, goal),
				Cost:     cur.g,
				Expanded: expanded,
			}, nil
		}
		if cfg.maxExpansions > 0 && expanded >= cfg.maxExpansions {
			return Result{Expanded: expanded, Reason: ReasonBudgetExhausted}, nil
		}

		closed.Put(cur.v)
		expanded++

		for next, w := range g.Neighbors(cur.v) {
			if closed.Has(next) {
				continue
			}
			ng := cur.g + w
			if ng > cfg.maxCost {
				continue
			}
			if old, seen := best[next]; seen && ng >= old {
				continue
			}
			best[next] = ng
			parent[next] = cur.v
			seq++
			open.Push(item{v: next, g: ng, h: estimate(next), seq: seq})
		}
	}
}

func reconstruct(parent map[graph.VertexID]graph.VertexID, start, goal graph.VertexID) []graph.VertexID {
	path := []graph.VertexID{goal}
	for v := goal; v != start; {
		v = parent[v]
		path = append(path, v)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

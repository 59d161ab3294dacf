// Package adjacency checks that every adjacency declared by a placed room is
// realized by the layout geometry.
//
// [BuildGraph] turns a layout into a [graph.Graph] with one vertex per
// placement and an edge for every pair of rooms sharing a wall. [Validate]
// then walks every declared adjacency: a direct edge satisfies it, otherwise
// the shortest route through other rooms is searched with A* and accepted
// when it stays within the [Policy] bounds. Accepted indirect routes mark
// where the building needs a corridor or pass-through.
package adjacency

import (
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"

	errs "github.com/matzehuels/blueprint/pkg/errors"
	"github.com/matzehuels/blueprint/pkg/geom"
	"github.com/matzehuels/blueprint/pkg/graph"
	"github.com/matzehuels/blueprint/pkg/layout"
	"github.com/matzehuels/blueprint/pkg/pathfind"
)

// DefaultMaxHops accepts a route through one intermediate room.
const DefaultMaxHops = 2

// Policy bounds the indirect routes the validator accepts.
type Policy struct {
	// MaxHops is the largest number of edges an indirect route may have.
	// Zero selects DefaultMaxHops; 1 demands direct contact.
	MaxHops int

	// MaxDetour caps route cost as a multiple of the straight-line distance
	// between the two room centroids. Zero disables the check.
	MaxDetour float64

	// MaxExpansions bounds each search. Zero means unlimited.
	MaxExpansions int

	// Logger receives one debug line per resolved adjacency. Nil discards.
	Logger *log.Logger
}

// SetDefaults fills zero-valued fields.
func (p *Policy) SetDefaults() {
	if p.MaxHops <= 0 {
		p.MaxHops = DefaultMaxHops
	}
	if p.Logger == nil {
		p.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Connection records how one declared adjacency was satisfied.
type Connection struct {
	From, To int // placement indices
	Direct   bool
	Path     []graph.VertexID // From..To inclusive; two entries when Direct
	Cost     float64
}

// Hops returns the number of edges on the connection path.
func (c Connection) Hops() int { return len(c.Path) - 1 }

// Report is the outcome of a successful validation.
type Report struct {
	Graph       *graph.Graph[int]
	Connections []Connection
}

// Indirect returns the connections that route through other rooms.
func (r *Report) Indirect() []Connection {
	var out []Connection
	for _, c := range r.Connections {
		if !c.Direct {
			out = append(out, c)
		}
	}
	return out
}

// BuildGraph creates the room adjacency graph of placements. Vertex i
// carries placement index i and sits at that room's centroid. Rooms sharing a
// wall segment of positive length are joined by an edge weighted with the
// centroid distance.
func BuildGraph(placements []layout.Placement) (*graph.Graph[int], error) {
	g := graph.New[int]()
	for i, p := range placements {
		g.AddVertex(p.Rect.Center(), i)
	}
	for i := range placements {
		for j := i + 1; j < len(placements); j++ {
			if !geom.Touches(placements[i].Rect, placements[j].Rect) {
				continue
			}
			u, v := graph.VertexID(i), graph.VertexID(j)
			if err := g.AddEdge(u, v, g.Position(u).Dist(g.Position(v))); err != nil {
				return nil, fmt.Errorf("connect %s and %s: %w", placements[i].ID, placements[j].ID, err)
			}
		}
	}
	return g, nil
}

// Validate checks every adjacency declared by every placement of l.
//
// A declaration is satisfied for a placement when it touches any placed
// instance of the named spec, or when some instance is reachable within the
// policy. It fails with ADJACENCY_UNSATISFIABLE if no instance of the target
// was placed or none is reachable within bounds. An exhausted search budget
// is reported as ALLOCATION_FAILURE.
func Validate(l *layout.Layout, policy Policy) (*Report, error) {
	if l == nil {
		return nil, errs.New(errs.ErrCodeInvalidInput, "nil layout")
	}
	policy.SetDefaults()
	for _, p := range l.Placements {
		if !p.Rect.Valid() {
			return nil, errs.New(errs.ErrCodeInvalidInput, "placement %s has invalid rectangle %s", p.ID, p.Rect)
		}
	}

	g, err := BuildGraph(l.Placements)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "room graph")
	}
	report := &Report{Graph: g}

	for i, p := range l.Placements {
		for _, target := range p.Spec.Adjacent {
			conn, err := connect(g, l.Placements, i, target, policy)
			if err != nil {
				return nil, err
			}
			policy.Logger.Debug("adjacency satisfied",
				"from", p.ID,
				"to", l.Placements[conn.To].ID,
				"direct", conn.Direct,
				"hops", conn.Hops())
			report.Connections = append(report.Connections, conn)
		}
	}
	return report, nil
}

// connect resolves one declared adjacency of placement from.
func connect(g *graph.Graph[int], placements []layout.Placement, from int, target string, policy Policy) (Connection, error) {
	src := placements[from]

	var candidates []int
	for j, q := range placements {
		if j != from && q.Spec.Name == target {
			candidates = append(candidates, j)
		}
	}
	if len(candidates) == 0 {
		return Connection{}, errs.New(errs.ErrCodeAdjacencyUnsatisfiable,
			"%s must be adjacent to %s, but no %s was placed", src.ID, target, target)
	}

	u := graph.VertexID(from)
	for _, j := range candidates {
		v := graph.VertexID(j)
		if w, ok := g.Weight(u, v); ok {
			return Connection{From: from, To: j, Direct: true, Path: []graph.VertexID{u, v}, Cost: w}, nil
		}
	}

	opts := []pathfind.Option{pathfind.WithMaxExpansions(policy.MaxExpansions)}
	best := Connection{Cost: math.Inf(1)}
	exhausted := false
	for _, j := range candidates {
		v := graph.VertexID(j)
		res, err := pathfind.Search(g, u, v, pathfind.Euclidean, opts...)
		if err != nil {
			return Connection{}, err
		}
		if !res.Found {
			if res.Reason == pathfind.ReasonBudgetExhausted {
				exhausted = true
			}
			policy.Logger.Debug("no route", "from", src.ID, "to", placements[j].ID, "reason", res.Reason)
			continue
		}
		if !policy.accepts(g, u, v, res) {
			policy.Logger.Debug("route rejected",
				"from", src.ID, "to", placements[j].ID, "hops", res.Hops(), "cost", res.Cost)
			continue
		}
		if res.Cost < best.Cost {
			best = Connection{From: from, To: j, Path: res.Path, Cost: res.Cost}
		}
	}

	if best.Path != nil {
		return best, nil
	}
	if exhausted {
		return Connection{}, errs.New(errs.ErrCodeAllocationFailure,
			"search budget exhausted routing %s to %s", src.ID, target)
	}
	return Connection{}, errs.New(errs.ErrCodeAdjacencyUnsatisfiable,
		"%s must be adjacent to %s: no route within %d hops", src.ID, target, policy.MaxHops)
}

func (p Policy) accepts(g *graph.Graph[int], u, v graph.VertexID, res pathfind.Result) bool {
	if res.Hops() > p.MaxHops {
		return false
	}
	if p.MaxDetour > 0 {
		straight := g.Position(u).Dist(g.Position(v))
		if res.Cost > p.MaxDetour*straight+geom.Epsilon {
			return false
		}
	}
	return true
}

// Package layout places room instances inside a rectangular footprint.
//
// The engine runs a squarified recursive partition: starting from the whole
// footprint as a single free region, each room instance claims a strip cut
// across the shorter dimension of a free region, sized to the room's target
// area, and the rest of the region goes back to the worklist. Strips that
// would be too elongated become square corner blocks, which leave two
// regions behind instead of one. Rooms are
// visited by descending priority, then descending area, then registry
// insertion order, with rooms that declare each other adjacent pulled
// together so they are carved against the same boundary.
//
// Place is deterministic: the same house spec and registry always yield the
// same placements.
//
// # Failures
//
// Place returns coded errors from pkg/errors:
//   - INVALID_INPUT for non-positive footprint dimensions or room count
//   - INFEASIBLE_SPEC when the registry cannot supply enough instances, the
//     selected areas exceed the footprint, or an adjacency names an unknown
//     room; these are detected before any region is carved
//   - PLACEMENT_FAILED when a carved room would be thinner than MinSide or
//     the free regions run out before the room count is met
package layout

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	errs "github.com/matzehuels/blueprint/pkg/errors"
	"github.com/matzehuels/blueprint/pkg/geom"
	"github.com/matzehuels/blueprint/pkg/registry"
)

// DefaultMinSide is the narrowest room side the engine accepts, in footprint
// units.
const DefaultMinSide = 0.5

// DefaultMaxAspect is the most elongated strip the engine cuts before it
// switches to a square corner block.
const DefaultMaxAspect = 3.0

// areaTolerance absorbs float error when comparing summed areas.
const areaTolerance = 1e-6

// HouseSpec describes the footprint of one floor.
type HouseSpec struct {
	Width     float64
	Height    float64
	RoomCount int
}

// Footprint returns the house rectangle anchored at the origin.
func (h HouseSpec) Footprint() geom.Rect { return geom.R(0, 0, h.Width, h.Height) }

// Area returns Width*Height.
func (h HouseSpec) Area() float64 { return h.Width * h.Height }

// Validate checks that the footprint is non-degenerate and at least one room
// is requested.
func (h HouseSpec) Validate() error {
	if err := errs.ValidatePositive("house width", h.Width); err != nil {
		return err
	}
	if err := errs.ValidatePositive("house height", h.Height); err != nil {
		return err
	}
	if h.RoomCount <= 0 {
		return errs.New(errs.ErrCodeInvalidInput, "room count must be positive, got %d", h.RoomCount)
	}
	return nil
}

// Placement is one room instance and the rectangle it was given.
type Placement struct {
	Spec     *registry.RoomSpec
	Instance int       // 1-based copy number of Spec
	ID       string    // "Kitchen" for the first copy, "Bedroom#2" for later ones
	Rect     geom.Rect // carved rectangle
	Target   float64   // requested area
	Clipped  bool      // Rect is smaller than Target
}

// Name returns the spec name of the placed room.
func (p Placement) Name() string { return p.Spec.Name }

// InstanceID formats the placement ID for the n-th copy of name.
func InstanceID(name string, n int) string {
	if n <= 1 {
		return name
	}
	return fmt.Sprintf("%s#%d", name, n)
}

// Layout is the result of a successful placement run.
type Layout struct {
	House      HouseSpec
	Placements []Placement
	Free       []geom.Rect // unclaimed regions left in the worklist
}

// Area returns the summed area of all placed rectangles.
func (l *Layout) Area() float64 {
	var sum float64
	for _, p := range l.Placements {
		sum += p.Rect.Area()
	}
	return sum
}

// Count returns how many instances of the named spec were placed.
func (l *Layout) Count(name string) int {
	n := 0
	for _, p := range l.Placements {
		if p.Spec.Name == name {
			n++
		}
	}
	return n
}

// Index returns the position of the placement with the given ID, or -1.
func (l *Layout) Index(id string) int {
	for i, p := range l.Placements {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// Options configures an Engine.
type Options struct {
	// MinSide is the narrowest acceptable room side. Zero selects
	// DefaultMinSide.
	MinSide float64

	// MaxAspect bounds the long-to-short side ratio of strip cuts. Zero
	// selects DefaultMaxAspect.
	MaxAspect float64

	// Logger receives debug output for every carve. Nil discards.
	Logger *log.Logger
}

// SetDefaults fills zero-valued fields.
func (o *Options) SetDefaults() {
	if o.MinSide <= 0 {
		o.MinSide = DefaultMinSide
	}
	if o.MaxAspect < 1 {
		o.MaxAspect = DefaultMaxAspect
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Engine runs placements. It holds no per-run state and may be shared.
type Engine struct {
	opts Options
}

// New creates an Engine.
func New(opts Options) *Engine {
	opts.SetDefaults()
	return &Engine{opts: opts}
}

// Place carves the footprint of house into rooms drawn from reg.
func (e *Engine) Place(house HouseSpec, reg *registry.Registry) (*Layout, error) {
	if err := house.Validate(); err != nil {
		return nil, err
	}
	if reg == nil {
		return nil, errs.New(errs.ErrCodeInvalidInput, "nil registry")
	}
	start := time.Now()

	if err := checkAdjacencyNames(reg); err != nil {
		return nil, err
	}
	queue, err := selectInstances(house, reg)
	if err != nil {
		return nil, err
	}
	queue = cluster(queue)

	placements, free, err := e.partition(house, queue)
	if err != nil {
		return nil, err
	}

	layout := &Layout{House: house, Placements: placements, Free: free}
	e.opts.Logger.Debug("placed rooms",
		"rooms", len(placements),
		"area", fmt.Sprintf("%.2f/%.2f", layout.Area(), house.Area()),
		"free_regions", len(free),
		"duration", time.Since(start))
	return layout, nil
}

// Place runs a default Engine.
func Place(house HouseSpec, reg *registry.Registry) (*Layout, error) {
	return New(Options{}).Place(house, reg)
}

func checkAdjacencyNames(reg *registry.Registry) error {
	for spec := range reg.All() {
		for _, name := range spec.Adjacent {
			if _, ok := reg.Lookup(name); !ok {
				return errs.New(errs.ErrCodeInfeasibleSpec,
					"room %q lists unknown adjacent room %q", spec.Name, name)
			}
		}
	}
	return nil
}

package plan

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/blueprint/pkg/adjacency"
	"github.com/matzehuels/blueprint/pkg/building"
	"github.com/matzehuels/blueprint/pkg/layout"
	"github.com/matzehuels/blueprint/pkg/observability"
	"github.com/matzehuels/blueprint/pkg/registry"
)

// Generate places, validates, and assembles a single-floor building from
// house and the room specs in reg.
//
// Errors carry one of the codes INVALID_INPUT, INFEASIBLE_SPEC,
// PLACEMENT_FAILED, ADJACENCY_UNSATISFIABLE, or ALLOCATION_FAILURE, or are
// the context's error when ctx ends between stages. No building is returned
// on error.
func Generate(ctx context.Context, house layout.HouseSpec, reg *registry.Registry, opts Options) (*building.Building, error) {
	res, err := Build(ctx, house, reg, opts)
	if err != nil {
		return nil, err
	}
	return res.Building, nil
}

// Build is Generate keeping the intermediate layout and adjacency report.
func Build(ctx context.Context, house layout.HouseSpec, reg *registry.Registry, opts Options) (*Result, error) {
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	res := &Result{}

	fail := func(err error) (*Result, error) {
		if res.Building != nil {
			building.FreeBuilding(res.Building, opts.BuildingTeardown, opts.FloorTeardown, opts.RoomTeardown)
		}
		hooks.OnRelease(ctx, err)
		opts.Logger.Debug("released partial plan", "error", err)
		return nil, err
	}

	// Stage 1: Place
	if err := ctx.Err(); err != nil {
		return fail(err)
	}
	hooks.OnPlaceStart(ctx, house.RoomCount)
	start := time.Now()
	l, err := layout.New(opts.LayoutOptions()).Place(house, reg)
	res.Stats.PlaceTime = time.Since(start)
	placed := 0
	if l != nil {
		placed = len(l.Placements)
	}
	hooks.OnPlaceComplete(ctx, placed, res.Stats.PlaceTime, err)
	if err != nil {
		return fail(err)
	}
	res.Layout = l
	res.Stats.Rooms = placed

	// Stage 2: Validate
	if err := ctx.Err(); err != nil {
		return fail(err)
	}
	start = time.Now()
	report, err := adjacency.Validate(l, opts.Policy())
	res.Stats.ValidateTime = time.Since(start)
	if report != nil {
		res.Stats.Indirect = len(report.Indirect())
		res.Stats.Direct = len(report.Connections) - res.Stats.Indirect
	}
	hooks.OnValidateComplete(ctx, res.Stats.Direct, res.Stats.Indirect, res.Stats.ValidateTime, err)
	if err != nil {
		return fail(err)
	}
	res.Report = report

	// Stage 3: Assemble
	if err := ctx.Err(); err != nil {
		return fail(err)
	}
	start = time.Now()
	floor := building.AssembleFloor(0, l, report, opts.BuildingOptions())
	res.Building = building.Assemble(building.NewID(idSeed(house, reg, opts)), floor)
	res.Stats.AssembleTime = time.Since(start)
	hooks.OnAssembleComplete(ctx, res.Building.ID, res.Building.RoomCount())
	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	opts.Logger.Info("generated plan",
		"id", res.Building.ID,
		"rooms", res.Stats.Rooms,
		"direct", res.Stats.Direct,
		"indirect", res.Stats.Indirect,
		"duration", res.Stats.PlaceTime+res.Stats.ValidateTime+res.Stats.AssembleTime)
	return res, nil
}

// idSeed serializes every input that influences the generated plan.
func idSeed(house layout.HouseSpec, reg *registry.Registry, opts Options) []byte {
	seed := fmt.Appendf(nil, "%g|%g|%d|%+v", house.Width, house.Height, house.RoomCount, opts.PlanKeyOpts())
	for spec := range reg.All() {
		seed = fmt.Appendf(seed, "|%s:%g:%d:%d:%q", spec.Name, spec.Area, spec.Limit(), spec.Priority, spec.Adjacent)
	}
	return seed
}

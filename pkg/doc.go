// Package pkg provides the core libraries for Blueprint floor plan generation.
//
// # Overview
//
// Blueprint turns a house description (a rectangular footprint, a room
// count, and a catalogue of room types with target areas and adjacency
// requirements) into a floor plan: rectangular rooms that tile the
// footprint, doors on the walls between rooms that must connect, windows on
// exterior walls, and an entrance. Adjacencies that cannot be met by a
// shared wall are accepted when a short route through other rooms exists.
//
// # Architecture
//
// The typical data flow:
//
//	house.toml
//	     ↓
//	[config] (decode the house file)
//	     ↓
//	[registry] (room types keyed by name)
//	     ↓
//	[layout] (carve the footprint into rooms)
//	     ↓
//	[adjacency] (room graph + [pathfind] routes)
//	     ↓
//	[building] (walls, doors, windows, floors)
//	     ↓
//	[render/floorplan], [render/nodelink]
//	     ↓
//	SVG / DOT output
//
// [plan] runs the whole chain, and its Runner adds result caching through
// [cache].
//
// # Quick Start
//
//	reg := registry.New()
//	_ = reg.Insert(registry.RoomSpec{Name: "Kitchen", Area: 20, Adjacent: []string{"Living"}})
//	_ = reg.Insert(registry.RoomSpec{Name: "Living", Area: 30})
//
//	house := layout.HouseSpec{Width: 10, Height: 5, RoomCount: 2}
//	b, err := plan.Generate(ctx, house, reg, plan.Options{})
//	if err != nil {
//	    return err
//	}
//	defer building.FreeBuilding(b, nil, nil, nil)
//
//	svg := floorplan.RenderSVG(b, floorplan.WithLabels())
//
// # Failures
//
// Generation fails with one of four codes from [errors]: INFEASIBLE_SPEC,
// PLACEMENT_FAILED, ADJACENCY_UNSATISFIABLE, or ALLOCATION_FAILURE. No
// partial building is ever returned.
//
// # Package Organization
//
// Geometry and graphs:
//   - [geom] - points, segments, rectangles, shapes
//   - [graph] - generic weighted graph with spatial vertices
//   - [pathfind] - bounded A* search
//
// Generation:
//   - [registry], [layout], [adjacency], [building], [plan]
//
// Output and infrastructure:
//   - [render/floorplan], [render/nodelink], [cache], [config],
//     [observability], [buildinfo]
//
// [config]: https://pkg.go.dev/github.com/matzehuels/blueprint/pkg/config
// [registry]: https://pkg.go.dev/github.com/matzehuels/blueprint/pkg/registry
// [layout]: https://pkg.go.dev/github.com/matzehuels/blueprint/pkg/layout
// [adjacency]: https://pkg.go.dev/github.com/matzehuels/blueprint/pkg/adjacency
// [pathfind]: https://pkg.go.dev/github.com/matzehuels/blueprint/pkg/pathfind
// [building]: https://pkg.go.dev/github.com/matzehuels/blueprint/pkg/building
// [render/floorplan]: https://pkg.go.dev/github.com/matzehuels/blueprint/pkg/render/floorplan
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/blueprint/pkg/render/nodelink
// [plan]: https://pkg.go.dev/github.com/matzehuels/blueprint/pkg/plan
// [cache]: https://pkg.go.dev/github.com/matzehuels/blueprint/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/blueprint/pkg/errors
// [geom]: https://pkg.go.dev/github.com/matzehuels/blueprint/pkg/geom
// [graph]: https://pkg.go.dev/github.com/matzehuels/blueprint/pkg/graph
// [observability]: https://pkg.go.dev/github.com/matzehuels/blueprint/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/blueprint/pkg/buildinfo
package pkg

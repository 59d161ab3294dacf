// Package render holds helpers shared by the plan renderers.
//
// # Overview
//
// Two renderers turn a generated building into pictures:
//
//   - [floorplan] draws the architectural plan: rooms, walls, doors,
//     windows, and corridor links, one SVG group per floor.
//   - [nodelink] draws the room adjacency graph through Graphviz, which is
//     useful for checking why a declared adjacency was routed indirectly.
//
//	svg := floorplan.RenderSVG(b, floorplan.WithLabels())
//	dot := nodelink.ToDOT(report, l, nodelink.Options{})
//	graph, err := nodelink.RenderSVG(dot)
//
// This package provides the text helpers both use: XML escaping and label
// sizing.
//
// [floorplan]: github.com/matzehuels/blueprint/pkg/render/floorplan
// [nodelink]: github.com/matzehuels/blueprint/pkg/render/nodelink
package render

// Package floorplan renders buildings as architectural SVG plans.
//
// Every floor becomes one <g class="floor"> group, stacked top to bottom in
// level order. Inside a floor the renderer draws, in paint order:
//
//   - room fills, colored per room type
//   - walls, with a gap wherever a door is cut
//   - windows as thin double lines on exterior walls
//   - corridor links as dashed polylines through room centers (optional)
//   - room labels with ID and area (optional)
//
// Geometry is scaled from footprint units to pixels with [WithScale]; the
// default is 40 pixels per unit.
//
//	svg := floorplan.RenderSVG(b, floorplan.WithLabels(), floorplan.WithLinks())
package floorplan

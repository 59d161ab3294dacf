// Package nodelink renders the room adjacency graph as a node-link diagram.
//
// # Overview
//
// Each placed room becomes a node pinned at its centroid, so the diagram
// keeps the shape of the plan. Rooms sharing a wall are joined by a solid
// edge; edges that satisfy a declared adjacency are drawn bold. Declared
// adjacencies that were only reachable through other rooms are added as
// dashed red edges labeled with their hop count.
//
// # Usage
//
//	dot := nodelink.ToDOT(report, l, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(dot)
//
// # DOT Format
//
// The generated DOT uses the neato engine with pinned positions (pos="x,y!"),
// which Graphviz honors without running its own placement. The source can be
// saved and processed with external Graphviz tools.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink

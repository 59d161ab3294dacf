// Package graph provides a generic weighted graph whose vertices carry a 2D
// position.
//
// # Overview
//
// The adjacency validator builds one [Graph] per generated floor: one vertex
// per placed room, positioned at the room's centroid, and one edge for every
// pair of rooms sharing a wall. Positions are what distance-based search
// heuristics (see pkg/pathfind) read, so they are mandatory for every
// vertex.
//
// # Basic Usage
//
// Create a graph with [New], add vertices with [Graph.AddVertex], and edges
// with [Graph.AddEdge]:
//
//	g := graph.New[string]()
//	kitchen := g.AddVertex(geom.Pt(1, 5), "Kitchen")
//	living := g.AddVertex(geom.Pt(6, 1.5), "Living")
//	_ = g.AddEdge(kitchen, living, 5.7)
//
//	for v, w := range g.Neighbors(kitchen) {
//	    fmt.Println(g.Data(v), w)
//	}
//
// Graphs are undirected by default: AddEdge(u, v) makes v a neighbor of u and
// u a neighbor of v. Pass [WithDirected] to [New] for one-way edges.
//
// # Ordering
//
// [Graph.Neighbors] yields neighbors in edge insertion order. The order is
// unspecified by contract but stable for a given graph instance, which keeps
// search tie-breaking deterministic.
//
// # Concurrency
//
// A Graph is not safe for concurrent mutation. Concurrent reads are safe once
// construction is complete.
package graph

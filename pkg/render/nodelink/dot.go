package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/blueprint/pkg/adjacency"
	"github.com/matzehuels/blueprint/pkg/layout"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds area and target area to node labels.
	Detailed bool

	// Scale converts footprint units to Graphviz points. Zero selects 72,
	// one inch per unit.
	Scale float64
}

// ToDOT converts a validated layout to Graphviz DOT format.
func ToDOT(report *adjacency.Report, l *layout.Layout, opts Options) string {
	scale := opts.Scale
	if scale <= 0 {
		scale = 72
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [color=\"#555555\"];\n")
	buf.WriteString("\n")

	if l == nil {
		buf.WriteString("}\n")
		return buf.String()
	}

	for _, p := range l.Placements {
		c := p.Rect.Center()
		attrs := fmt.Sprintf("label=%q, pos=\"%.1f,%.1f!\"", fmtLabel(p, opts.Detailed), c.X*scale, -c.Y*scale)
		if p.Clipped {
			attrs += ", style=\"rounded,filled,dashed\", fillcolor=lightgrey"
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", p.ID, attrs)
	}

	if report == nil || report.Graph == nil {
		buf.WriteString("}\n")
		return buf.String()
	}

	declared := make(map[[2]int]bool)
	for _, c := range report.Connections {
		if c.Direct {
			declared[pair(c.From, c.To)] = true
		}
	}

	buf.WriteString("\n")
	for _, e := range report.Graph.Edges() {
		u, v := report.Graph.Data(e.From), report.Graph.Data(e.To)
		attrs := fmt.Sprintf("label=\"%.1f\"", e.Weight)
		if declared[pair(u, v)] {
			attrs += ", penwidth=3"
		}
		fmt.Fprintf(&buf, "  %q -- %q [%s];\n", l.Placements[u].ID, l.Placements[v].ID, attrs)
	}

	seen := make(map[[2]int]bool)
	for _, c := range report.Indirect() {
		key := pair(c.From, c.To)
		if seen[key] {
			continue
		}
		seen[key] = true
		fmt.Fprintf(&buf, "  %q -- %q [style=dashed, color=\"#c0392b\", label=\"%d hops\"];\n",
			l.Placements[c.From].ID, l.Placements[c.To].ID, c.Hops())
	}

	buf.WriteString("}\n")
	return buf.String()
}

func pair(a, b int) [2]int { return [2]int{min(a, b), max(a, b)} }

func fmtLabel(p layout.Placement, detailed bool) string {
	if !detailed {
		return p.ID
	}
	return fmt.Sprintf("%s\n%.1f / %.1f", p.ID, p.Rect.Area(), p.Target)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

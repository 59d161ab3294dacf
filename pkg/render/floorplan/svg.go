package floorplan

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/blueprint/pkg/building"
	"github.com/matzehuels/blueprint/pkg/geom"
	"github.com/matzehuels/blueprint/pkg/render"
)

const (
	DefaultScale = 40.0
	margin       = 20.0
	floorGap     = 30.0
	wallWidth    = 3.0
	windowWidth  = 1.5
)

// palette is cycled by first appearance of a room name, so identical
// buildings always get identical colors.
var palette = []string{
	"#f2e8cf", "#d8e2dc", "#ffe5d9", "#e2ece9", "#fde2e4",
	"#e8e8f4", "#f0efeb", "#dfe7fd", "#fff1e6", "#eae4e9",
}

const planCSS = `
    .room { stroke: none; }
    .wall { stroke: #222; stroke-linecap: square; }
    .window { stroke: #4a90c2; }
    .link { stroke: #c0392b; stroke-dasharray: 6 4; fill: none; }
    .label { font-family: Helvetica, Arial, sans-serif; fill: #333; text-anchor: middle; }
    .area { fill: #777; }`

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	scale  float64
	labels bool
	links  bool
	colors map[string]string
}

func WithScale(s float64) SVGOption { return func(r *svgRenderer) { r.scale = s } }
func WithLabels() SVGOption         { return func(r *svgRenderer) { r.labels = true } }
func WithLinks() SVGOption          { return func(r *svgRenderer) { r.links = true } }

// RenderSVG draws every floor of b.
func RenderSVG(b *building.Building, opts ...SVGOption) []byte {
	r := svgRenderer{scale: DefaultScale, colors: make(map[string]string)}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		r.scale = DefaultScale
	}

	var floors []building.Floor
	if b != nil {
		floors = b.Floors
	}

	width, height := 2*margin, margin
	for i := range floors {
		bounds := floorBounds(&floors[i])
		width = max(width, bounds.W*r.scale+2*margin)
		height += bounds.H*r.scale + floorGap
	}
	height += margin - floorGap
	height = max(height, 2*margin)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", planCSS)
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="white"/>`+"\n")

	y := margin
	for i := range floors {
		f := &floors[i]
		fmt.Fprintf(&buf, `  <g class="floor" id="floor-%d" transform="translate(%.1f,%.1f)">`+"\n", f.Level, margin, y)
		r.renderFloor(&buf, f)
		buf.WriteString("  </g>\n")
		y += floorBounds(f).H*r.scale + floorGap
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func floorBounds(f *building.Floor) geom.Rect {
	if len(f.Shape.Points) == 0 {
		return geom.Rect{}
	}
	minX, minY := f.Shape.Points[0].X, f.Shape.Points[0].Y
	maxX, maxY := minX, minY
	for _, p := range f.Shape.Points[1:] {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}
	return geom.R(minX, minY, maxX-minX, maxY-minY)
}

func (r *svgRenderer) renderFloor(buf *bytes.Buffer, f *building.Floor) {
	for i := range f.Rooms {
		room := &f.Rooms[i]
		x, y := r.pt(room.Rect.TopLeft)
		fmt.Fprintf(buf, `    <rect class="room" id="room-%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
			render.EscapeXML(room.ID), x, y, room.Rect.W*r.scale, room.Rect.H*r.scale, r.color(room.Name))
	}

	for i := range f.Rooms {
		room := &f.Rooms[i]
		for _, wall := range room.Walls {
			for _, piece := range cutDoors(wall, room.Doors) {
				r.line(buf, "wall", piece, wallWidth)
			}
		}
	}

	for _, w := range f.Windows {
		r.line(buf, "window", w.Segment, windowWidth)
	}

	if r.links {
		for _, l := range f.Links {
			r.renderLink(buf, f, l)
		}
	}

	if r.labels {
		for i := range f.Rooms {
			r.renderLabel(buf, &f.Rooms[i])
		}
	}
}

func (r *svgRenderer) renderLink(buf *bytes.Buffer, f *building.Floor, l building.Link) {
	points := make([]string, 0, len(l.Path))
	for _, id := range l.Path {
		room, ok := f.Room(id)
		if !ok {
			return
		}
		x, y := r.pt(room.Rect.Center())
		points = append(points, fmt.Sprintf("%.1f,%.1f", x, y))
	}
	fmt.Fprintf(buf, `    <polyline class="link" data-from="%s" data-to="%s" points="%s" stroke-width="2"/>`+"\n",
		render.EscapeXML(l.From), render.EscapeXML(l.To), strings.Join(points, " "))
}

func (r *svgRenderer) renderLabel(buf *bytes.Buffer, room *building.Room) {
	w, h := room.Rect.W*r.scale, room.Rect.H*r.scale
	size := render.FontSize(w, h, room.ID)
	label := render.Truncate(room.ID, w, size)
	x, y := r.pt(room.Rect.Center())
	fmt.Fprintf(buf, `    <text class="label" x="%.1f" y="%.1f" font-size="%.1f">%s</text>`+"\n",
		x, y, size, render.EscapeXML(label))
	fmt.Fprintf(buf, `    <text class="label area" x="%.1f" y="%.1f" font-size="%.1f">%.1f m²</text>`+"\n",
		x, y+size*1.2, size*0.8, room.Area())
}

func (r *svgRenderer) line(buf *bytes.Buffer, class string, s geom.Segment, width float64) {
	x1, y1 := r.pt(s.A)
	x2, y2 := r.pt(s.B)
	fmt.Fprintf(buf, `    <line class="%s" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke-width="%.1f"/>`+"\n",
		class, x1, y1, x2, y2, width)
}

func (r *svgRenderer) pt(p geom.Point) (float64, float64) {
	return p.X * r.scale, p.Y * r.scale
}

func (r *svgRenderer) color(name string) string {
	if c, ok := r.colors[name]; ok {
		return c
	}
	c := palette[len(r.colors)%len(palette)]
	r.colors[name] = c
	return c
}

// cutDoors returns the parts of wall not covered by any door lying on it.
func cutDoors(wall geom.Segment, doors []building.Opening) []geom.Segment {
	pieces := []geom.Segment{wall}
	for _, d := range doors {
		var next []geom.Segment
		for _, p := range pieces {
			next = append(next, subtract(p, d.Segment)...)
		}
		pieces = next
	}
	return pieces
}

// subtract removes the collinear overlap of cut from s.
func subtract(s, cut geom.Segment) []geom.Segment {
	switch {
	case s.Horizontal() && cut.Horizontal() && near(s.A.Y, cut.A.Y):
		lo, hi := ordered(s.A.X, s.B.X)
		c0, c1 := ordered(cut.A.X, cut.B.X)
		return split(lo, hi, c0, c1, func(a, b float64) geom.Segment {
			return geom.Segment{A: geom.Pt(a, s.A.Y), B: geom.Pt(b, s.A.Y)}
		})
	case s.Vertical() && cut.Vertical() && near(s.A.X, cut.A.X):
		lo, hi := ordered(s.A.Y, s.B.Y)
		c0, c1 := ordered(cut.A.Y, cut.B.Y)
		return split(lo, hi, c0, c1, func(a, b float64) geom.Segment {
			return geom.Segment{A: geom.Pt(s.A.X, a), B: geom.Pt(s.A.X, b)}
		})
	}
	return []geom.Segment{s}
}

func split(lo, hi, c0, c1 float64, mk func(a, b float64) geom.Segment) []geom.Segment {
	if c1 <= lo+geom.Epsilon || c0 >= hi-geom.Epsilon {
		return []geom.Segment{mk(lo, hi)}
	}
	var out []geom.Segment
	if c0 > lo+geom.Epsilon {
		out = append(out, mk(lo, c0))
	}
	if c1 < hi-geom.Epsilon {
		out = append(out, mk(c1, hi))
	}
	return out
}

func ordered(a, b float64) (float64, float64) {
	if a > b {
		return b, a
	}
	return a, b
}

func near(a, b float64) bool { return a-b <= geom.Epsilon && b-a <= geom.Epsilon }

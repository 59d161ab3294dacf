package nodelink

import (
	"strings"
	"testing"

	"github.com/matzehuels/blueprint/pkg/adjacency"
	"github.com/matzehuels/blueprint/pkg/geom"
	"github.com/matzehuels/blueprint/pkg/layout"
	"github.com/matzehuels/blueprint/pkg/registry"
)

// row places A, B, C left to right; A declares B and C.
func row(t *testing.T) (*adjacency.Report, *layout.Layout) {
	t.Helper()
	a := &registry.RoomSpec{Name: "A", Area: 9, Adjacent: []string{"B", "C"}}
	b := &registry.RoomSpec{Name: "B", Area: 9}
	c := &registry.RoomSpec{Name: "C", Area: 9}
	l := &layout.Layout{
		House: layout.HouseSpec{Width: 9, Height: 3, RoomCount: 3},
		Placements: []layout.Placement{
			{Spec: a, Instance: 1, ID: "A", Rect: geom.R(0, 0, 3, 3), Target: 9},
			{Spec: b, Instance: 1, ID: "B", Rect: geom.R(3, 0, 3, 3), Target: 9},
			{Spec: c, Instance: 1, ID: "C", Rect: geom.R(6, 0, 3, 3), Target: 12, Clipped: true},
		},
	}
	report, err := adjacency.Validate(l, adjacency.Policy{})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	return report, l
}

func TestToDOT(t *testing.T) {
	report, l := row(t)
	dot := ToDOT(report, l, Options{Scale: 10})

	for _, want := range []string{
		"graph G {",
		`"A" [label="A", pos="15.0,-15.0!"];`,
		`"C" [label="C", pos="75.0,-15.0!", style="rounded,filled,dashed", fillcolor=lightgrey];`,
		`"A" -- "B" [label="3.0", penwidth=3];`,
		`"B" -- "C" [label="3.0"];`,
		`"A" -- "C" [style=dashed, color="#c0392b", label="2 hops"];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q\n%s", want, dot)
		}
	}
	if strings.Count(dot, " -- ") != 3 {
		t.Errorf("want 3 edges, got\n%s", dot)
	}
}

func TestToDOTDetailed(t *testing.T) {
	report, l := row(t)
	dot := ToDOT(report, l, Options{Detailed: true})
	if !strings.Contains(dot, `label="C\n9.0 / 12.0"`) {
		t.Errorf("detailed label missing\n%s", dot)
	}
	if !strings.Contains(dot, `pos="108.0,-108.0!"`) {
		t.Errorf("default scale not applied\n%s", dot)
	}
}

func TestToDOTWithoutReport(t *testing.T) {
	_, l := row(t)
	dot := ToDOT(nil, l, Options{})
	if strings.Contains(dot, " -- ") {
		t.Error("edges drawn without a report")
	}
	if !strings.HasSuffix(ToDOT(nil, nil, Options{}), "}\n") {
		t.Error("empty diagram not closed")
	}
}

func TestRenderSVG(t *testing.T) {
	report, l := row(t)
	svg, err := RenderSVG(ToDOT(report, l, Options{}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !strings.Contains(string(svg), `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 `) {
		t.Errorf("viewBox not normalized: %.200s", svg)
	}
	if !strings.Contains(string(svg), ">A</text>") {
		t.Error("node label missing")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 10.00 20.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10.00 20.00" width="10" height="20"><g/></svg>`
	if got != want {
		t.Errorf("got %s\nwant %s", got, want)
	}
	if plain := []byte("<svg></svg>"); string(normalizeViewBox(plain)) != "<svg></svg>" {
		t.Error("svg without viewBox should pass through")
	}
}

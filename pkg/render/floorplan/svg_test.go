package floorplan

import (
	"strings"
	"testing"

	"github.com/matzehuels/blueprint/pkg/building"
	"github.com/matzehuels/blueprint/pkg/geom"
)

func twoRooms() *building.Building {
	a := geom.R(0, 0, 4, 5)
	b := geom.R(4, 0, 6, 5)
	door := geom.Segment{A: geom.Pt(4, 2), B: geom.Pt(4, 3)}
	f := building.Floor{
		Shape: geom.R(0, 0, 10, 5).Shape(),
		Rooms: []building.Room{
			{ID: "Kitchen", Name: "Kitchen", Rect: a, Shape: a.Shape(), Walls: a.Walls(),
				Doors: []building.Opening{{Segment: door, To: "Living"}}},
			{ID: "Living", Name: "Living", Rect: b, Shape: b.Shape(), Walls: b.Walls(),
				Doors: []building.Opening{{Segment: door, To: "Kitchen"}}},
		},
		Windows: []building.Opening{{Segment: geom.Segment{A: geom.Pt(6, 0), B: geom.Pt(8, 0)}}},
		Links:   []building.Link{{From: "Kitchen", To: "Living", Path: []string{"Kitchen", "Living"}}},
	}
	return building.Assemble("b", f)
}

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(twoRooms()))

	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 440.0 240.0"`) {
		t.Errorf("unexpected header: %.120s", svg)
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("missing closing tag")
	}
	if got := strings.Count(svg, `class="room"`); got != 2 {
		t.Errorf("rooms = %d, want 2", got)
	}
	if got := strings.Count(svg, `class="window"`); got != 1 {
		t.Errorf("windows = %d, want 1", got)
	}
	if strings.Contains(svg, `class="label"`) {
		t.Error("labels drawn without WithLabels")
	}
	if strings.Contains(svg, `class="link"`) {
		t.Error("links drawn without WithLinks")
	}
	// 4 walls each, the shared wall of both rooms is split by the door.
	if got := strings.Count(svg, `class="wall"`); got != 10 {
		t.Errorf("wall pieces = %d, want 10", got)
	}
}

func TestRenderSVGOptions(t *testing.T) {
	svg := string(RenderSVG(twoRooms(), WithLabels(), WithLinks(), WithScale(10)))

	if !strings.Contains(svg, `viewBox="0 0 140.0 90.0"`) {
		t.Errorf("scale not applied: %.120s", svg)
	}
	if !strings.Contains(svg, `<polyline class="link" data-from="Kitchen" data-to="Living" points="20.0,25.0 70.0,25.0"`) {
		t.Error("missing link polyline")
	}
}

func TestRenderSVGLabels(t *testing.T) {
	svg := string(RenderSVG(twoRooms(), WithLabels()))
	if !strings.Contains(svg, ">Kitchen</text>") {
		t.Error("missing Kitchen label")
	}
	if !strings.Contains(svg, "20.0 m²") {
		t.Error("missing Kitchen area")
	}
	if got := strings.Count(svg, `class="label area"`); got != 2 {
		t.Errorf("area labels = %d, want 2", got)
	}
}

func TestRenderSVGDeterministicColors(t *testing.T) {
	a := RenderSVG(twoRooms())
	b := RenderSVG(twoRooms())
	if string(a) != string(b) {
		t.Error("identical buildings rendered differently")
	}
	if !strings.Contains(string(a), `fill="`+palette[0]+`"`) || !strings.Contains(string(a), `fill="`+palette[1]+`"`) {
		t.Error("rooms should take palette colors in order")
	}
}

func TestRenderSVGEmpty(t *testing.T) {
	svg := string(RenderSVG(nil))
	if !strings.Contains(svg, `viewBox="0 0 40.0 40.0"`) {
		t.Errorf("empty building: %.120s", svg)
	}
}

func TestCutDoors(t *testing.T) {
	wall := geom.Segment{A: geom.Pt(4, 0), B: geom.Pt(4, 5)}
	doors := []building.Opening{{Segment: geom.Segment{A: geom.Pt(4, 2), B: geom.Pt(4, 3)}}}

	pieces := cutDoors(wall, doors)
	if len(pieces) != 2 {
		t.Fatalf("pieces = %v, want 2", pieces)
	}
	if pieces[0].Len() != 2 || pieces[1].Len() != 2 {
		t.Errorf("pieces = %v", pieces)
	}

	other := geom.Segment{A: geom.Pt(0, 0), B: geom.Pt(4, 0)}
	if got := cutDoors(other, doors); len(got) != 1 || got[0] != other {
		t.Errorf("perpendicular wall should stay whole, got %v", got)
	}

	whole := []building.Opening{{Segment: wall}}
	if got := cutDoors(wall, whole); len(got) != 0 {
		t.Errorf("fully covered wall should vanish, got %v", got)
	}
}

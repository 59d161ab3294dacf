// Package building assembles validated layouts into the Room, Floor, and
// Building structures handed to callers.
//
// Ownership is strictly hierarchical: a Building owns its Floors by value, a
// Floor owns its Rooms by value, and a Room owns its geometry slices. Every
// level has an Ext field for embedding applications to attach their own
// data, and FreeBuilding, FreeFloor, and FreeRoom release a structure
// leaf-first while giving the caller a hook at each level to clean up Ext
// before the built-in fields are cleared.
package building

import (
	"github.com/google/uuid"

	"github.com/matzehuels/blueprint/pkg/adjacency"
	"github.com/matzehuels/blueprint/pkg/geom"
	"github.com/matzehuels/blueprint/pkg/layout"
)

// Default opening widths, in footprint units.
const (
	DefaultDoorWidth   = 0.9
	DefaultWindowWidth = 1.2
)

// Opening is a door or window cut into a wall.
type Opening struct {
	Segment geom.Segment
	To      string // room ID on the other side; empty for exterior openings
}

// Room is one placed room instance.
type Room struct {
	ID      string // unique within the floor, e.g. "Bedroom#2"
	Name    string // spec name
	Rect    geom.Rect
	Shape   geom.Shape
	Walls   []geom.Segment
	Doors   []Opening
	Windows []Opening
	Ext     any

	freed bool
}

// Area returns the room's floor area.
func (r *Room) Area() float64 { return r.Shape.Area() }

// Link is an adjacency satisfied by walking through other rooms.
type Link struct {
	From, To string   // room IDs
	Path     []string // room IDs from From to To inclusive
	Cost     float64
}

// Floor is one storey of a building.
type Floor struct {
	Level   int
	Rooms   []Room
	Shape   geom.Shape // footprint outline
	Doors   []Opening  // entrances
	Windows []Opening
	Links   []Link
	Ext     any

	freed bool
}

// Room returns the room with the given ID.
func (f *Floor) Room(id string) (*Room, bool) {
	for i := range f.Rooms {
		if f.Rooms[i].ID == id {
			return &f.Rooms[i], true
		}
	}
	return nil, false
}

// Building is the top-level result of a generation run.
type Building struct {
	ID     string
	Floors []Floor
	Ext    any

	freed bool
}

// RoomCount returns the number of rooms across all floors.
func (b *Building) RoomCount() int {
	n := 0
	for i := range b.Floors {
		n += len(b.Floors[i].Rooms)
	}
	return n
}

// Options controls opening sizes.
type Options struct {
	DoorWidth   float64
	WindowWidth float64
}

// SetDefaults fills zero-valued fields.
func (o *Options) SetDefaults() {
	if o.DoorWidth <= 0 {
		o.DoorWidth = DefaultDoorWidth
	}
	if o.WindowWidth <= 0 {
		o.WindowWidth = DefaultWindowWidth
	}
}

// AssembleFloor builds a Floor from a validated layout.
//
// Every room gets its rectangle outline and four walls. A door is centered on
// the shared wall of every direct connection in report, once per room pair.
// Every exterior wall at least WindowWidth long gets a centered window. The
// floor gets its footprint outline, an entrance on the first room's longest
// exterior wall, and a Link for every indirect connection.
func AssembleFloor(level int, l *layout.Layout, report *adjacency.Report, opts Options) Floor {
	opts.SetDefaults()
	footprint := l.House.Footprint()

	f := Floor{
		Level: level,
		Rooms: make([]Room, len(l.Placements)),
		Shape: footprint.Shape(),
	}
	for i, p := range l.Placements {
		f.Rooms[i] = Room{
			ID:    p.ID,
			Name:  p.Spec.Name,
			Rect:  p.Rect,
			Shape: p.Rect.Shape(),
			Walls: p.Rect.Walls(),
		}
	}

	if report != nil {
		seen := make(map[[2]int]bool)
		for _, c := range report.Connections {
			key := [2]int{min(c.From, c.To), max(c.From, c.To)}
			if seen[key] {
				continue
			}
			seen[key] = true
			if c.Direct {
				addDoor(&f, c.From, c.To, opts.DoorWidth)
				continue
			}
			f.Links = append(f.Links, link(&f, c))
		}
	}

	for i := range f.Rooms {
		r := &f.Rooms[i]
		for _, side := range []geom.Side{geom.SideTop, geom.SideRight, geom.SideBottom, geom.SideLeft} {
			seg, ok := exterior(r.Rect, footprint, side)
			if !ok || seg.Len() < opts.WindowWidth {
				continue
			}
			win := Opening{Segment: seg.Centered(opts.WindowWidth)}
			r.Windows = append(r.Windows, win)
			f.Windows = append(f.Windows, win)
		}
	}

	if len(f.Rooms) > 0 {
		if seg, ok := longestExterior(f.Rooms[0].Rect, footprint); ok {
			door := Opening{Segment: seg.Centered(opts.DoorWidth)}
			f.Rooms[0].Doors = append(f.Rooms[0].Doors, door)
			f.Doors = append(f.Doors, door)
		}
	}
	return f
}

func addDoor(f *Floor, a, b int, width float64) {
	ra, rb := &f.Rooms[a], &f.Rooms[b]
	seg, _, ok := geom.SharedEdge(ra.Rect, rb.Rect)
	if !ok {
		return
	}
	door := seg.Centered(width)
	ra.Doors = append(ra.Doors, Opening{Segment: door, To: rb.ID})
	rb.Doors = append(rb.Doors, Opening{Segment: door, To: ra.ID})
}

func link(f *Floor, c adjacency.Connection) Link {
	path := make([]string, len(c.Path))
	for i, v := range c.Path {
		path[i] = f.Rooms[v].ID
	}
	return Link{From: f.Rooms[c.From].ID, To: f.Rooms[c.To].ID, Path: path, Cost: c.Cost}
}

func exterior(r, footprint geom.Rect, side geom.Side) (geom.Segment, bool) {
	seg, ok := geom.ExteriorEdges(r, footprint)[side]
	return seg, ok
}

func longestExterior(r, footprint geom.Rect) (geom.Segment, bool) {
	var best geom.Segment
	found := false
	for _, side := range []geom.Side{geom.SideBottom, geom.SideLeft, geom.SideTop, geom.SideRight} {
		seg, ok := exterior(r, footprint, side)
		if ok && (!found || seg.Len() > best.Len()+geom.Epsilon) {
			best, found = seg, true
		}
	}
	return best, found
}

// Assemble wraps floors into a Building. Floors are renumbered by position.
func Assemble(id string, floors ...Floor) *Building {
	b := &Building{ID: id, Floors: floors}
	for i := range b.Floors {
		b.Floors[i].Level = i
	}
	return b
}

// NewID returns a deterministic building ID derived from seed, so identical
// generation inputs produce identical IDs.
func NewID(seed []byte) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, seed).String()
}

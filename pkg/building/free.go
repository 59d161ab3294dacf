package building

// RoomTeardown releases caller data attached to a Room.
type RoomTeardown interface {
	TeardownRoom(r *Room)
}

// FloorTeardown releases caller data attached to a Floor. It runs after all
// rooms of the floor were freed.
type FloorTeardown interface {
	TeardownFloor(f *Floor)
}

// BuildingTeardown releases caller data attached to a Building. It runs after
// all floors were freed.
type BuildingTeardown interface {
	TeardownBuilding(b *Building)
}

// RoomTeardownFunc adapts a function to RoomTeardown.
type RoomTeardownFunc func(*Room)

// TeardownRoom calls f(r).
func (f RoomTeardownFunc) TeardownRoom(r *Room) { f(r) }

// FloorTeardownFunc adapts a function to FloorTeardown.
type FloorTeardownFunc func(*Floor)

// TeardownFloor calls fn(f).
func (fn FloorTeardownFunc) TeardownFloor(f *Floor) { fn(f) }

// BuildingTeardownFunc adapts a function to BuildingTeardown.
type BuildingTeardownFunc func(*Building)

// TeardownBuilding calls f(b).
func (f BuildingTeardownFunc) TeardownBuilding(b *Building) { f(b) }

// FreeRoom calls rt (if non-nil) and then clears r. Freeing a room twice is
// a no-op and does not call rt again.
func FreeRoom(r *Room, rt RoomTeardown) {
	if r == nil || r.freed {
		return
	}
	if rt != nil {
		rt.TeardownRoom(r)
	}
	*r = Room{freed: true}
}

// FreeFloor frees every room of f in order, then calls ft (if non-nil), then
// clears f.
func FreeFloor(f *Floor, ft FloorTeardown, rt RoomTeardown) {
	if f == nil || f.freed {
		return
	}
	for i := range f.Rooms {
		FreeRoom(&f.Rooms[i], rt)
	}
	if ft != nil {
		ft.TeardownFloor(f)
	}
	*f = Floor{freed: true}
}

// FreeBuilding frees every floor of b in order, then calls bt (if non-nil),
// then clears b.
func FreeBuilding(b *Building, bt BuildingTeardown, ft FloorTeardown, rt RoomTeardown) {
	if b == nil || b.freed {
		return
	}
	for i := range b.Floors {
		FreeFloor(&b.Floors[i], ft, rt)
	}
	if bt != nil {
		bt.TeardownBuilding(b)
	}
	*b = Building{freed: true}
}

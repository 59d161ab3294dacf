package layout

import (
	"fmt"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/matzehuels/blueprint/pkg/errors"
	"github.com/matzehuels/blueprint/pkg/geom"
	"github.com/matzehuels/blueprint/pkg/registry"
)

func mustRegistry(t *testing.T, specs ...registry.RoomSpec) *registry.Registry {
	t.Helper()
	reg, err := registry.FromSpecs(specs...)
	require.NoError(t, err)
	return reg
}

func byID(t *testing.T, l *Layout, id string) Placement {
	t.Helper()
	i := l.Index(id)
	require.GreaterOrEqual(t, i, 0, "no placement %q", id)
	return l.Placements[i]
}

func TestKitchenAndLiving(t *testing.T) {
	reg := mustRegistry(t,
		registry.RoomSpec{Name: "Kitchen", Area: 20, Adjacent: []string{"Living"}, Priority: 2},
		registry.RoomSpec{Name: "Living", Area: 30, Adjacent: []string{"Kitchen"}, Priority: 1},
	)

	l, err := Place(HouseSpec{Width: 10, Height: 10, RoomCount: 2}, reg)
	require.NoError(t, err)
	require.Len(t, l.Placements, 2)

	kitchen := byID(t, l, "Kitchen")
	living := byID(t, l, "Living")
	assert.InDelta(t, 20, kitchen.Rect.Area(), 1e-6)
	assert.InDelta(t, 30, living.Rect.Area(), 1e-6)
	assert.False(t, kitchen.Clipped)
	assert.False(t, living.Clipped)

	assert.True(t, kitchen.Rect.TopLeft.Eq(geom.Pt(0, 0)))
	assert.True(t, geom.Touches(kitchen.Rect, living.Rect), "kitchen %s, living %s", kitchen.Rect, living.Rect)
	assert.InDelta(t, 50, l.Area(), 1e-6)

	var free float64
	for _, r := range l.Free {
		free += r.Area()
	}
	assert.InDelta(t, 50, free, 1e-6)
}

func TestInfeasibleArea(t *testing.T) {
	reg := mustRegistry(t, registry.RoomSpec{Name: "Hall", Area: 1000, MaxInstances: 1})

	l, err := Place(HouseSpec{Width: 5, Height: 5, RoomCount: 1}, reg)
	require.Error(t, err)
	assert.Nil(t, l)
	assert.Equal(t, errs.ErrCodeInfeasibleSpec, errs.GetCode(err))
}

func TestInfeasibleInstanceCount(t *testing.T) {
	reg := mustRegistry(t,
		registry.RoomSpec{Name: "Bedroom", Area: 10, MaxInstances: 3},
		registry.RoomSpec{Name: "Bath", Area: 5},
	)
	_, err := Place(HouseSpec{Width: 20, Height: 20, RoomCount: 5}, reg)
	assert.Equal(t, errs.ErrCodeInfeasibleSpec, errs.GetCode(err))

	_, err = Place(HouseSpec{Width: 20, Height: 20, RoomCount: 1}, registry.New())
	assert.Equal(t, errs.ErrCodeInfeasibleSpec, errs.GetCode(err))
}

func TestUnknownAdjacency(t *testing.T) {
	reg := mustRegistry(t, registry.RoomSpec{Name: "Kitchen", Area: 20, Adjacent: []string{"Pantry"}})
	_, err := Place(HouseSpec{Width: 10, Height: 10, RoomCount: 1}, reg)
	require.Error(t, err)
	assert.Equal(t, errs.ErrCodeInfeasibleSpec, errs.GetCode(err))
	assert.Contains(t, err.Error(), "Pantry")
}

func TestInvalidHouse(t *testing.T) {
	reg := mustRegistry(t, registry.RoomSpec{Name: "Hall", Area: 1})
	tests := []struct {
		name  string
		house HouseSpec
	}{
		{"zero width", HouseSpec{Width: 0, Height: 5, RoomCount: 1}},
		{"negative height", HouseSpec{Width: 5, Height: -1, RoomCount: 1}},
		{"nan width", HouseSpec{Width: math.NaN(), Height: 5, RoomCount: 1}},
		{"no rooms", HouseSpec{Width: 5, Height: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Place(tt.house, reg)
			assert.Equal(t, errs.ErrCodeInvalidInput, errs.GetCode(err))
		})
	}

	_, err := Place(HouseSpec{Width: 5, Height: 5, RoomCount: 1}, nil)
	assert.Equal(t, errs.ErrCodeInvalidInput, errs.GetCode(err))
}

func TestInstanceCap(t *testing.T) {
	reg := mustRegistry(t,
		registry.RoomSpec{Name: "Bedroom", Area: 10, MaxInstances: 3},
		registry.RoomSpec{Name: "Bath", Area: 5},
	)

	l, err := Place(HouseSpec{Width: 20, Height: 20, RoomCount: 4}, reg)
	require.NoError(t, err)
	assert.Equal(t, 3, l.Count("Bedroom"))
	assert.Equal(t, 1, l.Count("Bath"))
	for _, id := range []string{"Bedroom", "Bedroom#2", "Bedroom#3", "Bath"} {
		assert.GreaterOrEqual(t, l.Index(id), 0, id)
	}

	// Round-robin: the second room goes to another spec before a second copy.
	l, err = Place(HouseSpec{Width: 20, Height: 20, RoomCount: 2}, reg)
	require.NoError(t, err)
	assert.Equal(t, 1, l.Count("Bedroom"))
	assert.Equal(t, 1, l.Count("Bath"))
}

func TestClipping(t *testing.T) {
	reg := mustRegistry(t,
		registry.RoomSpec{Name: "A", Area: 20, Priority: 3},
		registry.RoomSpec{Name: "B", Area: 50, Priority: 2},
		registry.RoomSpec{Name: "C", Area: 30, Priority: 1},
	)

	l, err := Place(HouseSpec{Width: 10, Height: 10, RoomCount: 3}, reg)
	require.NoError(t, err)

	c := byID(t, l, "C")
	assert.True(t, c.Clipped)
	assert.Less(t, c.Rect.Area(), c.Target)
	assert.InDelta(t, 20, byID(t, l, "A").Rect.Area(), 1e-6)
	assert.InDelta(t, 50, byID(t, l, "B").Rect.Area(), 1e-6)
	assert.LessOrEqual(t, l.Area(), 100.0)
	assert.Len(t, l.Free, 1)
}

func TestMinSide(t *testing.T) {
	reg := mustRegistry(t, registry.RoomSpec{Name: "Closet", Area: 4})

	_, err := New(Options{MinSide: 3}).Place(HouseSpec{Width: 10, Height: 10, RoomCount: 1}, reg)
	require.Error(t, err)
	assert.Equal(t, errs.ErrCodePlacementFailed, errs.GetCode(err))

	l, err := New(Options{}).Place(HouseSpec{Width: 10, Height: 10, RoomCount: 1}, reg)
	require.NoError(t, err)
	assert.InDelta(t, 2, l.Placements[0].Rect.W, 1e-9, "elongated strips become square blocks")
}

func TestWorklistExhausted(t *testing.T) {
	reg := mustRegistry(t,
		registry.RoomSpec{Name: "Great Hall", Area: 97, Priority: 1},
		registry.RoomSpec{Name: "Nook", Area: 3},
	)
	_, err := Place(HouseSpec{Width: 10, Height: 10, RoomCount: 2}, reg)
	require.Error(t, err)
	assert.Equal(t, errs.ErrCodePlacementFailed, errs.GetCode(err))
	assert.Contains(t, err.Error(), "Nook")
}

func TestAdjacentRoomsPlacedInSuccession(t *testing.T) {
	reg := mustRegistry(t,
		registry.RoomSpec{Name: "X", Area: 10, Priority: 3, Adjacent: []string{"Z"}},
		registry.RoomSpec{Name: "Y", Area: 10, Priority: 2},
		registry.RoomSpec{Name: "Z", Area: 10, Priority: 1, Adjacent: []string{"X"}},
	)

	l, err := Place(HouseSpec{Width: 10, Height: 10, RoomCount: 3}, reg)
	require.NoError(t, err)

	var ids []string
	for _, p := range l.Placements {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"X", "Z", "Y"}, ids)
	assert.True(t, geom.Touches(byID(t, l, "X").Rect, byID(t, l, "Z").Rect))
}

func TestPlaceDeterministic(t *testing.T) {
	reg := mustRegistry(t,
		registry.RoomSpec{Name: "Living", Area: 30, Priority: 3, Adjacent: []string{"Kitchen", "Hall"}},
		registry.RoomSpec{Name: "Kitchen", Area: 15, Priority: 2},
		registry.RoomSpec{Name: "Hall", Area: 8, Priority: 2},
		registry.RoomSpec{Name: "Bedroom", Area: 12, MaxInstances: 2, Adjacent: []string{"Hall"}},
	)
	house := HouseSpec{Width: 12, Height: 9, RoomCount: 5}

	first, err := Place(house, reg)
	require.NoError(t, err)
	for range 5 {
		again, err := Place(house, reg)
		require.NoError(t, err)
		assert.Equal(t, first.Placements, again.Placements)
	}
}

// checkInvariants asserts the placement invariants every successful layout
// must hold.
func checkInvariants(t *testing.T, name string, house HouseSpec, specs []registry.RoomSpec, l *Layout) {
	t.Helper()
	require.Len(t, l.Placements, house.RoomCount, name)
	assert.LessOrEqual(t, l.Area(), house.Area()+1e-6, name)
	for _, s := range specs {
		limit := s.MaxInstances
		if limit == 0 {
			limit = 1
		}
		assert.LessOrEqual(t, l.Count(s.Name), limit, name)
	}
	fp := house.Footprint()
	for i, p := range l.Placements {
		assert.True(t, p.Rect.Valid(), "%s: %s", name, p.ID)
		assert.True(t, fp.Contains(p.Rect), "%s: %s %s outside footprint", name, p.ID, p.Rect)
		assert.LessOrEqual(t, p.Rect.Area(), p.Target+1e-6)
		for _, q := range l.Placements[i+1:] {
			assert.False(t, p.Rect.Overlaps(q.Rect), "%s: %s overlaps %s", name, p.ID, q.ID)
		}
	}
	for _, r := range l.Free {
		assert.True(t, fp.Contains(r), "%s: free region %s outside footprint", name, r)
	}
}

func TestPlacementInvariants(t *testing.T) {
	tests := []struct {
		name  string
		house HouseSpec
		specs []registry.RoomSpec
	}{
		{
			name:  "narrow remainder",
			house: HouseSpec{Width: 10, Height: 10, RoomCount: 2},
			specs: []registry.RoomSpec{
				{Name: "A", Area: 70, Priority: 2},
				{Name: "B", Area: 29, Priority: 1},
			},
		},
		{
			name:  "long thin footprint",
			house: HouseSpec{Width: 20, Height: 2, RoomCount: 2},
			specs: []registry.RoomSpec{
				{Name: "Long", Area: 30, Priority: 1},
				{Name: "B", Area: 5},
			},
		},
		{
			name:  "tall thin footprint",
			house: HouseSpec{Width: 2, Height: 20, RoomCount: 3},
			specs: []registry.RoomSpec{
				{Name: "Long", Area: 24, Priority: 2, Adjacent: []string{"C"}},
				{Name: "B", Area: 6, Priority: 1},
				{Name: "C", Area: 8},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := Place(tt.house, mustRegistry(t, tt.specs...))
			require.NoError(t, err)
			checkInvariants(t, tt.name, tt.house, tt.specs, l)
		})
	}
}

func TestCarveKeepsLongStrips(t *testing.T) {
	// A 30 m² room in a 20×2 region: the strip is 15×2, too long for the
	// aspect bound, and a 5.48 square would not fit across the region.
	room, rest, clipped := carve(geom.R(0, 0, 20, 2), 30, DefaultMaxAspect, nil)
	assert.False(t, clipped)
	assert.Equal(t, geom.R(0, 0, 15, 2), room)
	require.Len(t, rest, 1)
	assert.Equal(t, geom.R(15, 0, 5, 2), rest[0])

	// 29 m² in a 3×10 region is kept as a 3-wide strip.
	room, rest, _ = carve(geom.R(7, 0, 3, 10), 29, DefaultMaxAspect, nil)
	assert.InDelta(t, 3, room.W, 1e-9)
	assert.InDelta(t, 29, room.Area(), 1e-9)
	assert.True(t, geom.R(7, 0, 3, 10).Contains(room), "room %s", room)
	require.Len(t, rest, 1)
	assert.True(t, rest[0].Valid())

	// Thin slivers still become corner blocks.
	room, rest, _ = carve(geom.R(0, 0, 10, 10), 4, DefaultMaxAspect, nil)
	assert.Equal(t, geom.R(0, 0, 2, 2), room)
	assert.Len(t, rest, 2)
	for _, r := range rest {
		assert.True(t, r.Valid(), "remainder %s", r)
	}
}

func TestPlacementInvariantsRandom(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	successes := 0

	for trial := range 200 {
		w, h := 2+r.Float64()*28, 2+r.Float64()*28
		budget := w * h * 0.8

		var specs []registry.RoomSpec
		capacity := 0
		for i := range 1 + r.IntN(6) {
			s := registry.RoomSpec{
				Name:         fmt.Sprintf("R%d", i),
				Area:         1 + r.Float64()*budget/4,
				MaxInstances: 1 + r.IntN(3),
				Priority:     r.IntN(4),
			}
			if i > 0 && r.IntN(2) == 0 {
				s.Adjacent = []string{fmt.Sprintf("R%d", r.IntN(i))}
			}
			specs = append(specs, s)
			capacity += s.MaxInstances
		}
		reg := mustRegistry(t, specs...)
		house := HouseSpec{Width: w, Height: h, RoomCount: 1 + r.IntN(capacity)}

		l, err := Place(house, reg)
		if err != nil {
			require.True(t, errs.IsGenerationFailure(err), "trial %d: %v", trial, err)
			continue
		}
		successes++
		checkInvariants(t, fmt.Sprintf("trial %d", trial), house, specs, l)
	}
	assert.Positive(t, successes)
}

package registry

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/matzehuels/blueprint/pkg/errors"
)

func TestInsertLookup(t *testing.T) {
	r := New()
	require.NoError(t, r.Insert(RoomSpec{Name: "Kitchen", Area: 20, Adjacent: []string{"Living"}, Priority: 2}))
	require.NoError(t, r.Insert(RoomSpec{Name: "Living", Area: 30, Adjacent: []string{"Kitchen"}, Priority: 1}))

	k, ok := r.Lookup("Kitchen")
	require.True(t, ok)
	assert.Equal(t, 20.0, k.Area)
	assert.True(t, k.AdjacentTo("Living"))
	assert.Equal(t, 1, k.Limit())

	_, ok = r.Lookup("kitchen")
	assert.False(t, ok, "keys are case-sensitive")

	_, ok = r.Lookup("Garage")
	assert.False(t, ok)
	assert.Equal(t, 2, r.Len())
}

func TestInsertRejects(t *testing.T) {
	r := New()
	require.NoError(t, r.Insert(RoomSpec{Name: "Hall", Area: 4}))

	tests := []struct {
		name string
		spec RoomSpec
	}{
		{"duplicate", RoomSpec{Name: "Hall", Area: 5}},
		{"empty name", RoomSpec{Area: 5}},
		{"zero area", RoomSpec{Name: "Closet"}},
		{"negative area", RoomSpec{Name: "Closet", Area: -1}},
		{"reserved separator", RoomSpec{Name: "Bed#1", Area: 9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := r.Insert(tt.spec)
			require.Error(t, err)
			assert.True(t, errs.Is(err, errs.ErrCodeInvalidInput))
		})
	}
	assert.Equal(t, 1, r.Len())
}

func TestInsertCopiesSpec(t *testing.T) {
	adj := []string{"Living"}
	r := New()
	require.NoError(t, r.Insert(RoomSpec{Name: "Kitchen", Area: 20, Adjacent: adj}))

	adj[0] = "Garage"
	k, _ := r.Lookup("Kitchen")
	assert.Equal(t, []string{"Living"}, k.Adjacent)
}

func TestPointersSurviveGrowth(t *testing.T) {
	r := New()
	require.NoError(t, r.Insert(RoomSpec{Name: "First", Area: 1}))
	first, ok := r.Lookup("First")
	require.True(t, ok)

	for i := range 500 {
		require.NoError(t, r.Insert(RoomSpec{Name: fmt.Sprintf("Room %d", i), Area: float64(i + 1)}))
	}

	again, ok := r.Lookup("First")
	require.True(t, ok)
	assert.Same(t, first, again)
	assert.Equal(t, 1.0, first.Area)
	assert.Equal(t, 501, r.Len())

	for i := range 500 {
		s, ok := r.Lookup(fmt.Sprintf("Room %d", i))
		require.True(t, ok)
		assert.Equal(t, float64(i+1), s.Area)
	}
}

func TestAllInsertionOrder(t *testing.T) {
	names := []string{"Porch", "Attic", "Study", "Bath", "Den"}
	r := New()
	for _, n := range names {
		require.NoError(t, r.Insert(RoomSpec{Name: n, Area: 1}))
	}

	var got []string
	for s := range r.All() {
		got = append(got, s.Name)
	}
	assert.Equal(t, names, got)
	assert.Equal(t, 2, r.Rank("Study"))
	assert.Equal(t, -1, r.Rank("Garage"))
}

func TestRemove(t *testing.T) {
	r, err := FromSpecs(
		RoomSpec{Name: "A", Area: 1},
		RoomSpec{Name: "B", Area: 1},
		RoomSpec{Name: "C", Area: 1},
	)
	require.NoError(t, err)

	assert.True(t, r.Remove("B"))
	assert.False(t, r.Remove("B"))
	_, ok := r.Lookup("B")
	assert.False(t, ok)

	var got []string
	for s := range r.All() {
		got = append(got, s.Name)
	}
	assert.Equal(t, []string{"A", "C"}, got)

	// The name is free again after removal.
	require.NoError(t, r.Insert(RoomSpec{Name: "B", Area: 2}))
	assert.Equal(t, 3, r.Len())
}

func TestAllStopsEarly(t *testing.T) {
	r, err := FromSpecs(RoomSpec{Name: "A", Area: 1}, RoomSpec{Name: "B", Area: 1})
	require.NoError(t, err)

	var got []string
	for s := range r.All() {
		got = append(got, s.Name)
		break
	}
	assert.Equal(t, []string{"A"}, got)
}

func TestSeedStable(t *testing.T) {
	s := Seed()
	for range 10 {
		assert.Equal(t, s, Seed())
	}
	assert.Equal(t, Hash("Kitchen"), Hash("Kitchen"))
	assert.NotEqual(t, Hash("Kitchen"), Hash("Living"))
}

func TestFromSpecsError(t *testing.T) {
	_, err := FromSpecs(RoomSpec{Name: "A", Area: 1}, RoomSpec{Name: "A", Area: 2})
	require.Error(t, err)
	assert.Equal(t, errs.ErrCodeInvalidInput, errs.GetCode(err))
}

package layout

import (
	"cmp"
	"slices"

	errs "github.com/matzehuels/blueprint/pkg/errors"
	"github.com/matzehuels/blueprint/pkg/registry"
)

// instance is a room copy waiting to be placed.
type instance struct {
	spec *registry.RoomSpec
	n    int // 1-based copy number
	rank int // registry insertion position of spec
}

func (in instance) id() string { return InstanceID(in.spec.Name, in.n) }

// comparePriority orders by priority desc, area desc, registry order, copy number.
func comparePriority(a, b instance) int {
	if c := cmp.Compare(b.spec.Priority, a.spec.Priority); c != 0 {
		return c
	}
	if c := cmp.Compare(b.spec.Area, a.spec.Area); c != 0 {
		return c
	}
	if c := cmp.Compare(a.rank, b.rank); c != 0 {
		return c
	}
	return cmp.Compare(a.n, b.n)
}

// selectInstances picks house.RoomCount instances round-robin over the specs
// in priority order, never exceeding a spec's Limit.
func selectInstances(house HouseSpec, reg *registry.Registry) ([]instance, error) {
	var specs []instance
	capacity := 0
	for spec := range reg.All() {
		specs = append(specs, instance{spec: spec, rank: len(specs)})
		capacity += spec.Limit()
	}
	if capacity < house.RoomCount {
		return nil, errs.New(errs.ErrCodeInfeasibleSpec,
			"%d rooms requested but the registry allows at most %d", house.RoomCount, capacity)
	}
	slices.SortStableFunc(specs, comparePriority)

	picked := make([]instance, 0, house.RoomCount)
	for round := 1; len(picked) < house.RoomCount; round++ {
		for _, s := range specs {
			if len(picked) == house.RoomCount {
				break
			}
			if round > s.spec.Limit() {
				continue
			}
			picked = append(picked, instance{spec: s.spec, n: round, rank: s.rank})
		}
	}
	slices.SortStableFunc(picked, comparePriority)

	var total float64
	for _, in := range picked {
		total += in.spec.Area
	}
	if total > house.Area()+areaTolerance {
		return nil, errs.New(errs.ErrCodeInfeasibleSpec,
			"requested area %.2f exceeds footprint area %.2f", total, house.Area())
	}
	return picked, nil
}

func related(a, b instance) bool {
	return a.spec.AdjacentTo(b.spec.Name) || b.spec.AdjacentTo(a.spec.Name)
}

// cluster reorders the queue so that every instance is followed by the not yet
// queued instances related to it, breadth-first, keeping priority order within
// each group.
func cluster(queue []instance) []instance {
	out := make([]instance, 0, len(queue))
	taken := make([]bool, len(queue))
	for i := range queue {
		if taken[i] {
			continue
		}
		taken[i] = true
		group := []int{i}
		for k := 0; k < len(group); k++ {
			head := queue[group[k]]
			for j := range queue {
				if !taken[j] && related(head, queue[j]) {
					taken[j] = true
					group = append(group, j)
				}
			}
		}
		for _, idx := range group {
			out = append(out, queue[idx])
		}
	}
	return out
}

// Package registry provides the string-keyed table that maps room names to
// their RoomSpec.
//
// The layout engine resolves adjacency names through a Registry at
// generation time. Keys are hashed with xxhash using a process-wide seed that
// is generated once on first use and never changes afterwards, so a Registry
// may be read concurrently by independent generation calls. A single
// Registry must not be mutated concurrently.
//
// Besides hashed lookup, a Registry remembers insertion order. [Registry.All]
// iterates in that order, which is what the layout engine uses to break ties
// between rooms of equal priority and area.
package registry

import (
	"iter"
	"slices"

	"github.com/zyedidia/generic/hashmap"

	errs "github.com/matzehuels/blueprint/pkg/errors"
)

// initialCapacity is the starting bucket count of the underlying table.
const initialCapacity = 16

// RoomSpec is the declarative constraint set for one room type.
//
// A RoomSpec is immutable once inserted into a Registry. The Adjacent list
// holds names, not ownership: the names are resolved against the same
// Registry when a layout is generated.
type RoomSpec struct {
	Name         string   // Unique registry key
	Adjacent     []string // Names of rooms this room must connect to
	Area         float64  // Target area in square units
	MaxInstances int      // Upper bound on placed copies; <= 0 means 1
	Priority     int      // Higher is placed earlier
}

// Limit returns the effective instance cap (at least 1).
func (s *RoomSpec) Limit() int {
	if s.MaxInstances <= 0 {
		return 1
	}
	return s.MaxInstances
}

// AdjacentTo reports whether name appears in s.Adjacent.
func (s *RoomSpec) AdjacentTo(name string) bool {
	return slices.Contains(s.Adjacent, name)
}

// Registry is a hashed, insertion-ordered table of RoomSpecs.
//
// The zero value is not usable - use New.
// Values are stored as pointers so handles returned by Lookup stay valid when
// the table grows.
type Registry struct {
	table *hashmap.Map[string, *RoomSpec]
	order []*RoomSpec
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		table: hashmap.New[string, *RoomSpec](initialCapacity, equalKeys, hashKey),
	}
}

// FromSpecs builds a Registry from specs in order. It stops at the first
// invalid or duplicate spec.
func FromSpecs(specs ...RoomSpec) (*Registry, error) {
	r := New()
	for _, s := range specs {
		if err := r.Insert(s); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Insert registers spec under spec.Name. The spec is copied, including its
// Adjacent slice, so later changes by the caller do not leak in.
//
// Returns an INVALID_INPUT error if the name is invalid, the area is not
// positive, or a spec with the same name already exists.
func (r *Registry) Insert(spec RoomSpec) error {
	if err := errs.ValidateRoomName(spec.Name); err != nil {
		return err
	}
	if err := errs.ValidatePositive("area of "+spec.Name, spec.Area); err != nil {
		return err
	}
	if _, exists := r.table.Get(spec.Name); exists {
		return errs.New(errs.ErrCodeInvalidInput, "duplicate room spec %q", spec.Name)
	}

	stored := spec
	stored.Adjacent = slices.Clone(spec.Adjacent)
	r.table.Put(stored.Name, &stored)
	r.order = append(r.order, &stored)
	return nil
}

// Lookup returns the spec registered under name.
func (r *Registry) Lookup(name string) (*RoomSpec, bool) {
	return r.table.Get(name)
}

// Remove deletes the spec registered under name and reports whether it
// existed.
func (r *Registry) Remove(name string) bool {
	spec, ok := r.table.Get(name)
	if !ok {
		return false
	}
	r.table.Remove(name)
	r.order = slices.DeleteFunc(r.order, func(s *RoomSpec) bool { return s == spec })
	return true
}

// Len returns the number of registered specs.
func (r *Registry) Len() int { return r.table.Size() }

// All iterates over the registered specs in insertion order.
func (r *Registry) All() iter.Seq[*RoomSpec] {
	return func(yield func(*RoomSpec) bool) {
		for _, s := range r.order {
			if !yield(s) {
				return
			}
		}
	}
}

// Rank returns the insertion position of name, or -1 if it is not registered.
func (r *Registry) Rank(name string) int {
	spec, ok := r.table.Get(name)
	if !ok {
		return -1
	}
	return slices.Index(r.order, spec)
}

func equalKeys(a, b string) bool { return a == b }

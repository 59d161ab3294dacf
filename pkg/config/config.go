// Package config loads house description files.
//
// A house file is TOML with one [house] table, an optional [policy] table,
// and one [[room]] table per room type:
//
//	[house]
//	width = 10.0
//	height = 10.0
//	rooms = 2
//
//	[policy]
//	max_hops = 2
//
//	[[room]]
//	name = "Kitchen"
//	area = 20.0
//	adjacent = ["Living"]
//	priority = 2
//
// Unknown keys are rejected so typos do not silently fall back to defaults.
package config

import (
	"errors"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	errs "github.com/matzehuels/blueprint/pkg/errors"
	"github.com/matzehuels/blueprint/pkg/layout"
	"github.com/matzehuels/blueprint/pkg/plan"
	"github.com/matzehuels/blueprint/pkg/registry"
)

// House is the [house] table.
type House struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
	Rooms  int     `toml:"rooms"`
}

// Policy is the optional [policy] table. Zero values select the generator
// defaults.
type Policy struct {
	MaxHops       int     `toml:"max_hops"`
	MaxDetour     float64 `toml:"max_detour"`
	MaxExpansions int     `toml:"max_expansions"`
	MinSide       float64 `toml:"min_side"`
	MaxAspect     float64 `toml:"max_aspect"`
	DoorWidth     float64 `toml:"door_width"`
	WindowWidth   float64 `toml:"window_width"`
}

// Room is one [[room]] entry.
type Room struct {
	Name         string   `toml:"name"`
	Area         float64  `toml:"area"`
	Adjacent     []string `toml:"adjacent"`
	Priority     int      `toml:"priority"`
	MaxInstances int      `toml:"max_instances"`
}

// File is a decoded house file.
type File struct {
	Name   string `toml:"name"`
	House  House  `toml:"house"`
	Policy Policy `toml:"policy"`
	Room   []Room `toml:"room"`
}

// Load reads and parses the house file at path.
func Load(path string) (*File, error) {
	if err := errs.ValidatePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "house file %s", path)
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "read %s", path)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Parse decodes and validates a house file.
func Parse(data []byte) (*File, error) {
	var f File
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode house file")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errs.New(errs.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}
	if !md.IsDefined("house") {
		return nil, errs.New(errs.ErrCodeInvalidConfig, "missing [house] table")
	}
	for _, key := range []string{"width", "height", "rooms"} {
		if !md.IsDefined("house", key) {
			return nil, errs.New(errs.ErrCodeInvalidConfig, "missing house.%s", key)
		}
	}
	if len(f.Room) == 0 {
		return nil, errs.New(errs.ErrCodeInvalidConfig, "no [[room]] entries")
	}
	return &f, nil
}

// HouseSpec converts the [house] table.
func (f *File) HouseSpec() layout.HouseSpec {
	return layout.HouseSpec{Width: f.House.Width, Height: f.House.Height, RoomCount: f.House.Rooms}
}

// Registry builds a registry from the [[room]] entries in file order.
func (f *File) Registry() (*registry.Registry, error) {
	reg := registry.New()
	for i, r := range f.Room {
		err := reg.Insert(registry.RoomSpec{
			Name:         r.Name,
			Adjacent:     r.Adjacent,
			Area:         r.Area,
			MaxInstances: r.MaxInstances,
			Priority:     r.Priority,
		})
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "room %d", i+1)
		}
	}
	return reg, nil
}

// PlanOptions converts the [policy] table.
func (f *File) PlanOptions() plan.Options {
	p := f.Policy
	return plan.Options{
		MinSide:       p.MinSide,
		MaxAspect:     p.MaxAspect,
		MaxHops:       p.MaxHops,
		MaxDetour:     p.MaxDetour,
		MaxExpansions: p.MaxExpansions,
		DoorWidth:     p.DoorWidth,
		WindowWidth:   p.WindowWidth,
	}
}

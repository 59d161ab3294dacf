// Package plan runs the complete floor plan generation for Blueprint.
//
// This package implements the place → validate → assemble → render pipeline
// used by every CLI command. Keeping it in one place means `generate`,
// `check`, and `inspect` agree on defaults and on failure handling.
//
// # Architecture
//
// Generation has three stages, followed by optional rendering:
//
//  1. Place: carve the footprint into rooms ([layout.Engine])
//  2. Validate: prove every declared adjacency ([adjacency.Validate])
//  3. Assemble: build walls, doors, windows ([building.AssembleFloor])
//  4. Render: produce SVG plans, DOT, or Graphviz diagrams
//
// A failure in any stage aborts the run. Whatever was already built is
// released with [building.FreeBuilding] before the error is returned, and
// the OnRelease observability hook fires with the cause.
//
// # Usage
//
// Generate a building directly:
//
//	b, err := plan.Generate(ctx, house, reg, plan.Options{})
//
// Or run the cached pipeline that also renders:
//
//	runner := plan.NewRunner(c, nil, logger)
//	result, err := runner.Run(ctx, plan.Request{House: house, Registry: reg, InputHash: h}, opts)
//	svg := result.Artifacts[plan.FormatSVG]
package plan

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/blueprint/pkg/adjacency"
	"github.com/matzehuels/blueprint/pkg/building"
	"github.com/matzehuels/blueprint/pkg/cache"
	errs "github.com/matzehuels/blueprint/pkg/errors"
	"github.com/matzehuels/blueprint/pkg/layout"
)

// =============================================================================
// Default Values
// =============================================================================

// DefaultScale is the default plan scale in pixels per footprint unit.
const DefaultScale = 40.0

// Format constants for output formats.
const (
	FormatSVG      = "svg"       // floor plan drawing
	FormatDOT      = "dot"       // adjacency graph source
	FormatGraphSVG = "graph-svg" // adjacency graph rendered by Graphviz
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:      true,
	FormatDOT:      true,
	FormatGraphSVG: true,
}

// =============================================================================
// Options
// =============================================================================

// Options contains all configuration for a generation run. Zero values
// select the stage defaults.
type Options struct {
	// Layout options
	MinSide   float64
	MaxAspect float64

	// Adjacency policy
	MaxHops       int
	MaxDetour     float64
	MaxExpansions int

	// Assembly options
	DoorWidth   float64
	WindowWidth float64

	// Render options
	Formats []string
	Scale   float64
	Labels  bool
	Refresh bool // bypass cached artifacts

	// Teardown hooks run when a failed run releases its partial building.
	BuildingTeardown building.BuildingTeardown
	FloorTeardown    building.FloorTeardown
	RoomTeardown     building.RoomTeardown

	Logger *log.Logger
}

// SetDefaults fills zero-valued fields that are owned by this package. Stage
// options are defaulted by their own packages.
func (o *Options) SetDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks the options for values no stage could use.
func (o *Options) Validate() error {
	for name, v := range map[string]float64{
		"min_side":     o.MinSide,
		"max_aspect":   o.MaxAspect,
		"max_detour":   o.MaxDetour,
		"door_width":   o.DoorWidth,
		"window_width": o.WindowWidth,
		"scale":        o.Scale,
	} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return errs.New(errs.ErrCodeInvalidInput, "%s must be a finite non-negative number, got %v", name, v)
		}
	}
	if o.MaxAspect != 0 && o.MaxAspect < 1 {
		return errs.New(errs.ErrCodeInvalidInput, "max_aspect must be at least 1, got %v", o.MaxAspect)
	}
	if o.MaxHops < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "max_hops must not be negative, got %d", o.MaxHops)
	}
	if o.MaxExpansions < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "max_expansions must not be negative, got %d", o.MaxExpansions)
	}
	return ValidateFormats(o.Formats)
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errs.New(errs.ErrCodeUnsupported, "invalid format: %q (must be one of: svg, dot, graph-svg)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// LayoutOptions returns the layout engine configuration.
func (o *Options) LayoutOptions() layout.Options {
	return layout.Options{MinSide: o.MinSide, MaxAspect: o.MaxAspect, Logger: o.Logger}
}

// Policy returns the adjacency policy.
func (o *Options) Policy() adjacency.Policy {
	return adjacency.Policy{
		MaxHops:       o.MaxHops,
		MaxDetour:     o.MaxDetour,
		MaxExpansions: o.MaxExpansions,
		Logger:        o.Logger,
	}
}

// BuildingOptions returns the assembly configuration.
func (o *Options) BuildingOptions() building.Options {
	return building.Options{DoorWidth: o.DoorWidth, WindowWidth: o.WindowWidth}
}

// PlanKeyOpts returns cache key options for the generated plan.
func (o *Options) PlanKeyOpts() cache.PlanKeyOpts {
	return cache.PlanKeyOpts{
		MinSide:     o.MinSide,
		MaxAspect:   o.MaxAspect,
		MaxHops:     o.MaxHops,
		MaxDetour:   o.MaxDetour,
		DoorWidth:   o.DoorWidth,
		WindowWidth: o.WindowWidth,
	}
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{Format: format, Scale: o.Scale, Labels: o.Labels}
}

// =============================================================================
// Results
// =============================================================================

// Result contains the outputs of a generation run.
type Result struct {
	// Building is the assembled plan. Nil when every artifact came from the
	// cache.
	Building *building.Building

	// Layout and Report are the intermediate stage results.
	Layout *layout.Layout
	Report *adjacency.Report

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains run statistics.
type Stats struct {
	Rooms        int
	Direct       int
	Indirect     int
	PlaceTime    time.Duration
	ValidateTime time.Duration
	AssembleTime time.Duration
	RenderTime   time.Duration
}

// String renders a one-line summary.
func (s Stats) String() string {
	return fmt.Sprintf("%d rooms, %d direct, %d indirect", s.Rooms, s.Direct, s.Indirect)
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

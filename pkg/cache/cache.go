// Package cache stores rendered plan artifacts keyed by content hash.
//
// Generation is deterministic, so the same house file and options always
// produce the same plan. The CLI uses that to skip regeneration: the Runner
// in pkg/plan hashes the normalized inputs, asks a [Keyer] for the artifact
// key of every requested format, and stores the rendered bytes in a [Cache].
//
// Three backends are provided:
//   - [FileCache] for single-user CLI runs (~/.cache/blueprint)
//   - [RedisCache] for sharing artifacts between machines
//   - [NullCache] when caching is disabled
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the value stored under key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Default expirations.
const (
	TTLPlan     = 7 * 24 * time.Hour
	TTLArtifact = 30 * 24 * time.Hour
)

// PlanKeyOpts are the generation options that change the resulting plan.
type PlanKeyOpts struct {
	MinSide     float64 `json:"min_side"`
	MaxAspect   float64 `json:"max_aspect"`
	MaxHops     int     `json:"max_hops"`
	MaxDetour   float64 `json:"max_detour"`
	DoorWidth   float64 `json:"door_width"`
	WindowWidth float64 `json:"window_width"`
}

// ArtifactKeyOpts are the render options that change an artifact.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Scale  float64 `json:"scale"`
	Labels bool    `json:"labels"`
}

// Keyer builds cache keys. Implementations must return the same key for the
// same arguments.
type Keyer interface {
	// PlanKey identifies a generated plan by the hash of its input file.
	PlanKey(inputHash string, opts PlanKeyOpts) string

	// ArtifactKey identifies one rendered format of a plan.
	ArtifactKey(planHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces "plan:<sha256>" and "artifact:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates a DefaultKeyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// PlanKey implements Keyer.
func (DefaultKeyer) PlanKey(inputHash string, opts PlanKeyOpts) string {
	return hashKey("plan", inputHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(planHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", planHash, opts)
}

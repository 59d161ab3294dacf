package plan

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/blueprint/pkg/cache"
	"github.com/matzehuels/blueprint/pkg/layout"
	"github.com/matzehuels/blueprint/pkg/observability"
	"github.com/matzehuels/blueprint/pkg/registry"
)

const keyTypeArtifact = "artifact"

// Request holds the generation inputs of one run.
type Request struct {
	House    layout.HouseSpec
	Registry *registry.Registry

	// InputHash identifies the inputs for caching, usually cache.Hash of
	// the house file. Empty disables the artifact cache for this run.
	InputHash string
}

// Runner encapsulates generation with artifact caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store results. Multiple goroutines can safely use the same Runner with
// different requests.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Run generates and renders a plan, serving the artifacts from cache when
// every requested format is already stored.
func (r *Runner) Run(ctx context.Context, req Request, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	planHash := ""
	if req.InputHash != "" {
		planHash = r.Keyer.PlanKey(req.InputHash, opts.PlanKeyOpts())
	}

	if planHash != "" && !opts.Refresh {
		if artifacts, ok := r.cachedArtifacts(ctx, planHash, opts); ok {
			r.Logger.Debug("artifacts served from cache", "formats", opts.Formats)
			return &Result{Artifacts: artifacts, CacheInfo: CacheInfo{RenderHit: true}}, nil
		}
	}

	res, err := Build(ctx, req.House, req.Registry, opts)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	artifacts, err := Render(ctx, res, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	res.Artifacts = artifacts
	res.Stats.RenderTime = time.Since(start)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", res.Stats.RenderTime)

	if planHash != "" {
		for format, data := range artifacts {
			key := r.Keyer.ArtifactKey(planHash, opts.ArtifactKeyOpts(format))
			if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
				r.Logger.Warn("cache write failed", "format", format, "error", err)
				continue
			}
			observability.Cache().OnCacheSet(ctx, keyTypeArtifact, len(data))
		}
	}
	return res, nil
}

// cachedArtifacts returns the stored artifacts if all formats are present.
func (r *Runner) cachedArtifacts(ctx context.Context, planHash string, opts Options) (map[string][]byte, bool) {
	hooks := observability.Cache()
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(planHash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil || !hit {
			if err != nil {
				r.Logger.Debug("cache read failed", "format", format, "error", err)
			}
			hooks.OnCacheMiss(ctx, keyTypeArtifact)
			return nil, false
		}
		hooks.OnCacheHit(ctx, keyTypeArtifact)
		artifacts[format] = data
	}
	return artifacts, true
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

package plan

import (
	"context"
	"fmt"
	"time"

	errs "github.com/matzehuels/blueprint/pkg/errors"
	"github.com/matzehuels/blueprint/pkg/observability"
	"github.com/matzehuels/blueprint/pkg/render/floorplan"
	"github.com/matzehuels/blueprint/pkg/render/nodelink"
)

// Render generates output artifacts in the requested formats from a
// successful Build result.
func Render(ctx context.Context, res *Result, opts Options) (map[string][]byte, error) {
	opts.SetDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, err
	}
	if res == nil || res.Building == nil {
		return nil, errs.New(errs.ErrCodeInvalidInput, "nothing to render")
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts, err := renderFormats(res, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return artifacts, nil
}

func renderFormats(res *Result, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	var dot string

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = floorplan.RenderSVG(res.Building, buildSVGOptions(opts)...)
		case FormatDOT:
			dot = toDOT(dot, res, opts)
			data = []byte(dot)
		case FormatGraphSVG:
			dot = toDOT(dot, res, opts)
			data, err = nodelink.RenderSVG(dot)
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// toDOT builds the adjacency diagram once per render.
func toDOT(cached string, res *Result, opts Options) string {
	if cached != "" {
		return cached
	}
	return nodelink.ToDOT(res.Report, res.Layout, nodelink.Options{Detailed: opts.Labels})
}

func buildSVGOptions(opts Options) []floorplan.SVGOption {
	svgOpts := []floorplan.SVGOption{floorplan.WithScale(opts.Scale), floorplan.WithLinks()}
	if opts.Labels {
		svgOpts = append(svgOpts, floorplan.WithLabels())
	}
	return svgOpts
}

package cli

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/blueprint/pkg/plan"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	output    string
	formats   string
	labels    bool
	scale     float64
	noCache   bool
	refresh   bool
	redisAddr string
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	opts := generateOpts{labels: true, scale: plan.DefaultScale}

	cmd := &cobra.Command{
		Use:   "generate [house.toml]",
		Short: "Generate a floor plan from a house file",
		Long: `Generate a floor plan from a house file.

The house file declares the footprint, the number of rooms, and one [[room]]
table per room type. Blueprint places the rooms, checks every declared
adjacency, and writes the plan in the requested formats:

  svg        floor plan drawing (default)
  dot        adjacency graph as Graphviz source
  graph-svg  adjacency graph rendered by Graphviz

Rendered plans are cached by the content of the house file. Set
--redis-addr (or BLUEPRINT_REDIS_ADDR) to share the cache between machines.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeHouseFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(opts.formats)
			if err := plan.ValidateFormats(formats); err != nil {
				return err
			}
			return c.runGenerate(cmd.Context(), args[0], formats, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), dot, graph-svg (comma-separated)")
	cmd.Flags().BoolVar(&opts.labels, "labels", opts.labels, "draw room names and areas")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "pixels per footprint unit")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "regenerate even if cached")
	cmd.Flags().StringVar(&opts.redisAddr, "redis-addr", "", "redis address for a shared cache (host:port)")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)

	return cmd
}

// runGenerate loads the house file, runs the plan, and writes artifacts.
func (c *CLI) runGenerate(ctx context.Context, input string, formats []string, opts generateOpts) error {
	h, err := loadHouse(input)
	if err != nil {
		return fmt.Errorf("load house %s: %w", input, err)
	}
	req, err := h.request()
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache, opts.redisAddr)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	planOpts := h.file.PlanOptions()
	planOpts.Formats = formats
	planOpts.Scale = opts.scale
	planOpts.Labels = opts.labels
	planOpts.Refresh = opts.refresh
	planOpts.Logger = c.Logger

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Generating %d rooms...", req.House.RoomCount))
	spinner.Start()

	res, err := runner.Run(ctx, req, planOpts)
	if err != nil {
		spinner.StopWithError("Generation failed")
		return explain(err)
	}
	prog.done("Generated plan")

	spinner.SetMessage(fmt.Sprintf("Writing %d files...", len(formats)))
	paths := outputPaths(input, opts.output, formats)
	for _, format := range formats {
		if err := os.WriteFile(paths[format], res.Artifacts[format], 0o644); err != nil {
			spinner.StopWithError("Write failed")
			return fmt.Errorf("write output %s: %w", paths[format], err)
		}
	}
	spinner.StopWithSuccess("Plan complete")
	for _, format := range formats {
		printFile(paths[format])
	}
	printStats(res.Stats, res.CacheInfo.RenderHit)

	if !slices.Contains(formats, plan.FormatGraphSVG) {
		printNewline()
		printNextStep("Adjacency diagram", fmt.Sprintf("%s generate %s -f %s", appName, input, plan.FormatGraphSVG))
	}
	return nil
}

package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/blueprint/pkg/buildinfo"
	"github.com/matzehuels/blueprint/pkg/cache"
	"github.com/matzehuels/blueprint/pkg/config"
	"github.com/matzehuels/blueprint/pkg/plan"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "blueprint"

	// redisAddrEnv overrides --redis-addr when the flag is not given.
	redisAddrEnv = "BLUEPRINT_REDIS_ADDR"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Blueprint generates floor plans from room descriptions",
		Long:         `Blueprint is a CLI tool that carves a house footprint into rooms, proves every declared adjacency through a room graph, and draws the resulting floor plan.`,
		Version:      buildinfo.Resolve(),
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a plan runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool, redisAddr string) (*plan.Runner, error) {
	store, err := c.newCache(ctx, noCache, redisAddr)
	if err != nil {
		return nil, err
	}
	// Renders from another release may differ; keep their keys apart.
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.Resolve()+":")
	return plan.NewRunner(store, keyer, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool, redisAddr string) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisAddr == "" {
		redisAddr = os.Getenv(redisAddrEnv)
	}
	if redisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: redisAddr, Prefix: appName + ":"})
		if err == nil {
			return rc, nil
		}
		c.Logger.Warn("redis unavailable, using file cache", "addr", redisAddr, "error", err)
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/blueprint/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Input Helpers
// =============================================================================

// house is a loaded house file.
type house struct {
	path string
	file *config.File
	hash string
}

// loadHouse reads and parses a house file.
func loadHouse(path string) (*house, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := config.Parse(data)
	if err != nil {
		return nil, err
	}
	return &house{path: path, file: f, hash: cache.Hash(data)}, nil
}

// request builds the runner request for h.
func (h *house) request() (plan.Request, error) {
	reg, err := h.file.Registry()
	if err != nil {
		return plan.Request{}, err
	}
	return plan.Request{House: h.file.HouseSpec(), Registry: reg, InputHash: h.hash}, nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{plan.FormatSVG}
	}
	return strings.Split(s, ",")
}

// formatExt maps a format to its file extension.
func formatExt(format string) string {
	if format == plan.FormatGraphSVG {
		return ".graph.svg"
	}
	return "." + format
}

// basePath derives the output base path from the input file, or strips a
// known extension from an explicit output.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	// Longest extension first: ".graph.svg" also ends in ".svg".
	for _, format := range []string{plan.FormatGraphSVG, plan.FormatSVG, plan.FormatDOT} {
		if ext := formatExt(format); strings.HasSuffix(output, ext) {
			return strings.TrimSuffix(output, ext)
		}
	}
	return output
}

// outputPaths assigns a file to every format. A single format with an
// explicit output is written exactly there.
func outputPaths(input, output string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + formatExt(f)
	}
	return paths
}

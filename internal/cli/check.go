package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/blueprint/pkg/adjacency"
	errs "github.com/matzehuels/blueprint/pkg/errors"
	"github.com/matzehuels/blueprint/pkg/layout"
	"github.com/matzehuels/blueprint/pkg/plan"
)

// checkCommand creates the check command.
func (c *CLI) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check [house.toml]",
		Short: "Place rooms and validate adjacencies without rendering",
		Long: `Place rooms and validate adjacencies without rendering.

Prints the placed rooms and how every declared adjacency was satisfied:
directly through a shared wall, or through a route of other rooms. Exits
with an error naming the failure (infeasible spec, placement failure, or an
unsatisfiable adjacency) when no plan can be generated.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeHouseFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCheck(cmd.Context(), args[0])
		},
	}
}

func (c *CLI) runCheck(ctx context.Context, input string) error {
	h, err := loadHouse(input)
	if err != nil {
		return fmt.Errorf("load house %s: %w", input, err)
	}
	req, err := h.request()
	if err != nil {
		return err
	}
	opts := h.file.PlanOptions()
	opts.Logger = c.Logger

	res, err := plan.Build(ctx, req.House, req.Registry, opts)
	if err != nil {
		printError("%s", errs.UserMessage(err))
		return explain(err)
	}

	printSuccess("Plan is feasible")
	printStats(res.Stats, false)
	printNewline()
	fmt.Println(roomTable(res.Layout))
	if len(res.Report.Connections) > 0 {
		fmt.Println(connectionTable(res.Layout, res.Report))
	}
	if free := freeArea(res.Layout); free > 0 {
		printDetail("Unassigned floor area: %.1f", free)
	}
	return nil
}

func freeArea(l *layout.Layout) float64 {
	total := 0.0
	for _, r := range l.Free {
		total += r.Area()
	}
	return total
}

var headerStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

// roomTable lists every placement.
func roomTable(l *layout.Layout) string {
	t := newTable("Room", "Position", "Size", "Area", "Target")
	for _, p := range l.Placements {
		target := fmt.Sprintf("%.1f", p.Target)
		if p.Clipped {
			target += " (clipped)"
		}
		t.Row(
			p.ID,
			fmt.Sprintf("%.2f, %.2f", p.Rect.Left(), p.Rect.Top()),
			fmt.Sprintf("%.2f × %.2f", p.Rect.W, p.Rect.H),
			fmt.Sprintf("%.1f", p.Rect.Area()),
			target,
		)
	}
	return t.Render()
}

// connectionTable lists how each declared adjacency was satisfied.
func connectionTable(l *layout.Layout, r *adjacency.Report) string {
	t := newTable("From", "To", "Via", "Cost")
	for _, conn := range r.Connections {
		via := "shared wall"
		if !conn.Direct {
			ids := make([]string, len(conn.Path))
			for i, v := range conn.Path {
				ids[i] = l.Placements[r.Graph.Data(v)].ID
			}
			via = strings.Join(ids, " → ")
		}
		t.Row(l.Placements[conn.From].ID, l.Placements[conn.To].ID, via, fmt.Sprintf("%.2f", conn.Cost))
	}
	return t.Render()
}

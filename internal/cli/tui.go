package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/blueprint/pkg/building"
	"github.com/matzehuels/blueprint/pkg/plan"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "inspect [house.toml]",
		Short:             "Browse the rooms of a generated plan interactively",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeHouseFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), args[0])
		},
	}
}

func (c *CLI) runInspect(ctx context.Context, input string) error {
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

	b, err := plan.Generate(ctx, req.House, req.Registry, opts)
	if err != nil {
		return explain(err)
	}
	defer building.FreeBuilding(b, nil, nil, nil)

	_, err = tea.NewProgram(NewRoomListModel(&b.Floors[0]), tea.WithContext(ctx)).Run()
	return err
}

// =============================================================================
// RoomListModel - Interactive room browser
// =============================================================================

// RoomListModel is the bubbletea model for browsing the rooms of a floor.
type RoomListModel struct {
	Floor  *building.Floor
	Cursor int
	Height int
	Offset int
}

// NewRoomListModel creates a new room list model.
func NewRoomListModel(f *building.Floor) RoomListModel {
	return RoomListModel{
		Floor:  f,
		Cursor: 0,
		Height: 10,
		Offset: 0,
	}
}

func (m RoomListModel) Init() tea.Cmd {
	return nil
}

func (m RoomListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Floor.Rooms)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 14
		if m.Height < 3 {
			m.Height = 3
		}
	}
	return m, nil
}

func (m RoomListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Rooms"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Floor.Rooms))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := &m.Floor.Rooms[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor,
			r.ID,
			fmt.Sprintf("%.1f", r.Area()),
			fmt.Sprintf("%d", len(r.Doors)),
			fmt.Sprintf("%d", len(r.Windows)),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Room", "Area", "Doors", "Windows").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			return listNormalStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	if len(m.Floor.Rooms) > 0 {
		b.WriteString(m.detail(&m.Floor.Rooms[m.Cursor]))
	}
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Floor.Rooms))))

	return b.String()
}

// detail describes the selected room's openings and corridor links.
func (m RoomListModel) detail(r *building.Room) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", StyleHighlight.Render(r.ID), listDimStyle.Render(r.Rect.String()))

	var doors []string
	for _, d := range r.Doors {
		if d.To == "" {
			doors = append(doors, "entrance")
			continue
		}
		doors = append(doors, d.To)
	}
	if len(doors) == 0 {
		doors = append(doors, "none")
	}
	fmt.Fprintf(&b, "  doors to  %s\n", StyleValue.Render(strings.Join(doors, ", ")))

	for _, l := range m.Floor.Links {
		if l.From == r.ID || l.To == r.ID {
			fmt.Fprintf(&b, "  route     %s\n", StyleValue.Render(strings.Join(l.Path, " → ")))
		}
	}
	b.WriteString("\n")
	return b.String()
}

package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wrensk/windrag/internal/ipc"
)

// OutputsTab is the sub-model for the connected-outputs tab.
type OutputsTab struct {
	data *ipc.OutputsData
	err  error

	width  int
	height int
}

// NewOutputsTab creates an empty OutputsTab; data arrives via SetOutputs.
func NewOutputsTab() OutputsTab {
	return OutputsTab{}
}

// SetOutputs records the latest output list from the daemon.
func (o *OutputsTab) SetOutputs(data *ipc.OutputsData, err error) {
	o.data = data
	o.err = err
}

// Update implements tea.Model.
func (o OutputsTab) Update(msg tea.Msg) (OutputsTab, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		o.width = msg.Width
		o.height = msg.Height
	}
	return o, nil
}

// View implements tea.Model.
func (o OutputsTab) View() string {
	if o.err != nil || o.data == nil {
		style := lipgloss.NewStyle().
			Width(o.width).
			Height(o.height).
			Foreground(lipgloss.Color("241")).
			Align(lipgloss.Center, lipgloss.Center)
		return style.Render("Daemon not running")
	}

	nameStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("15")).
		Bold(true)

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("250")).
		Width(14).
		Align(lipgloss.Right).
		PaddingRight(2)

	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("250"))

	var lines []string
	lines = append(lines, "")
	for _, out := range o.data.Outputs {
		lines = append(lines,
			nameStyle.Render("  "+out.Name),
			labelStyle.Render("Geometry")+valueStyle.Render(
				fmt.Sprintf("%dx%d+%d+%d", out.Width, out.Height, out.X, out.Y)),
			labelStyle.Render("Work Area")+valueStyle.Render(
				fmt.Sprintf("%dx%d+%d+%d", out.WorkWidth, out.WorkHeight, out.WorkX, out.WorkY)),
			"",
		)
	}
	if len(o.data.Outputs) == 0 {
		lines = append(lines, lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Render("  No outputs reported"))
	}

	content := strings.Join(lines, "\n")

	contentStyle := lipgloss.NewStyle().
		Width(o.width).
		Height(o.height).
		Padding(1, 2)

	return contentStyle.Render(content)
}

package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wrensk/windrag/internal/ipc"
)

// StatusTab is the sub-model for the live drag status tab.
type StatusTab struct {
	status *ipc.StatusData
	err    error

	width  int
	height int
}

// NewStatusTab creates an empty StatusTab; data arrives via SetStatus.
func NewStatusTab() StatusTab {
	return StatusTab{}
}

// SetStatus records the latest daemon status poll result.
func (s *StatusTab) SetStatus(data *ipc.StatusData, err error) {
	s.status = data
	s.err = err
}

// DragSummary returns a short description of the drag in progress, or ""
// when nothing is being dragged.
func (s StatusTab) DragSummary() string {
	if s.err != nil || s.status == nil || !s.status.Drag.Dragging {
		return ""
	}
	out := s.status.Drag.Output
	if out == "" {
		out = "?"
	}
	return fmt.Sprintf("0x%08x on %s", s.status.Drag.Window, out)
}

// Update implements tea.Model.
func (s StatusTab) Update(msg tea.Msg) (StatusTab, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		s.width = msg.Width
		s.height = msg.Height
	}
	return s, nil
}

// View implements tea.Model.
func (s StatusTab) View() string {
	if s.err != nil || s.status == nil {
		style := lipgloss.NewStyle().
			Width(s.width).
			Height(s.height).
			Foreground(lipgloss.Color("241")).
			Align(lipgloss.Center, lipgloss.Center)
		return style.Render("Daemon not running\n\nStart it with 'windrag daemon'")
	}

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("250")).
		Width(22).
		Align(lipgloss.Right).
		PaddingRight(2)

	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("15")).
		Bold(true)

	dimStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	row := func(label, value string) string {
		return labelStyle.Render(label) + valueStyle.Render(value)
	}

	lines := []string{
		"",
		row("Uptime", formatUptime(s.status.UptimeSeconds)),
		row("Pointer Output", displayOrDefault(s.status.PointerOutput, "(unknown)")),
		"",
	}

	d := s.status.Drag
	if d.Dragging {
		lines = append(lines,
			row("Dragging", fmt.Sprintf("0x%08x", d.Window)),
			row("Focused Output", displayOrDefault(d.Output, "(none)")),
			row("Snap Slot", slotName(d.Slot)),
			row("Held In Place", fmt.Sprintf("%v", d.HeldInPlace)),
			row("Scale", fmt.Sprintf("%.2f", d.Scale)),
		)
	} else {
		lines = append(lines, dimStyle.Render("  No drag in progress"))
	}

	content := strings.Join(lines, "\n")

	contentStyle := lipgloss.NewStyle().
		Width(s.width).
		Height(s.height).
		Padding(1, 2)

	return contentStyle.Render(content)
}

// slotName returns a human name for a snap slot, numbered like the
// numeric keypad.
func slotName(slot int) string {
	switch slot {
	case 1:
		return "bottom-left"
	case 2:
		return "bottom"
	case 3:
		return "bottom-right"
	case 4:
		return "left"
	case 5:
		return "maximize"
	case 6:
		return "right"
	case 7:
		return "top-left"
	case 8:
		return "top"
	case 9:
		return "top-right"
	}
	return "none"
}

// formatUptime renders seconds as a compact h/m/s string.
func formatUptime(seconds int64) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm %ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}

func displayOrDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/wrensk/windrag/internal/config"
	"github.com/wrensk/windrag/internal/ipc"
)

// SettingsTab is the sub-model for editing and saving the configuration.
type SettingsTab struct {
	cfg        *config.Config
	configPath string
	client     *ipc.Client

	// Display dimensions
	width  int
	height int

	// Edit mode
	editing bool
	form    *huh.Form

	// Form-bound values (strings for huh, converted on submit)
	fActivateButton       string
	fActivateKey          string
	fSnapThreshold        string
	fQuarterSnapThreshold string
	fSnapOffThreshold     string
	fWorkspaceSwitch      string
	fInitialScale         string
	fScaleAnimationMS     string
	fOverlayFPS           string
	fEnableSnap           bool
	fEnableSnapOff        bool
	fDimWindow            bool

	// Result of the last save attempt
	statusLine string
}

// NewSettingsTab creates a SettingsTab from the loaded config.
func NewSettingsTab(cfg *config.Config, configPath string, client *ipc.Client) SettingsTab {
	return SettingsTab{cfg: cfg, configPath: configPath, client: client}
}

// Init implements tea.Model.
func (g SettingsTab) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (g SettingsTab) Update(msg tea.Msg) (SettingsTab, tea.Cmd) {
	if g.editing {
		return g.updateEditing(msg)
	}
	return g.updateDisplay(msg)
}

func (g SettingsTab) updateDisplay(msg tea.Msg) (SettingsTab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "e" {
			g.startEditing()
			return g, g.form.Init()
		}
	case tea.WindowSizeMsg:
		g.width = msg.Width
		g.height = msg.Height
	}
	return g, nil
}

func (g SettingsTab) updateEditing(msg tea.Msg) (SettingsTab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "esc" {
			g.editing = false
			g.form = nil
			return g, nil
		}
	case tea.WindowSizeMsg:
		g.width = msg.Width
		g.height = msg.Height
	}

	form, cmd := g.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		g.form = f
	}

	if g.form.State == huh.StateCompleted {
		g.applyForm()
		g.saveAndReload()
		g.editing = false
		g.form = nil
		return g, nil
	}

	return g, cmd
}

func (g *SettingsTab) startEditing() {
	cfg := g.cfg
	if cfg == nil {
		cfg = config.DefaultConfig()
		g.cfg = cfg
	}

	g.fActivateButton = cfg.Move.ActivateButton
	g.fActivateKey = cfg.Move.ActivateKey
	g.fSnapThreshold = strconv.Itoa(cfg.Move.SnapThreshold)
	g.fQuarterSnapThreshold = strconv.Itoa(cfg.Move.QuarterSnapThreshold)
	g.fSnapOffThreshold = strconv.Itoa(cfg.Move.SnapOffThreshold)
	g.fWorkspaceSwitch = strconv.Itoa(cfg.Move.WorkspaceSwitchAfter)
	g.fInitialScale = strconv.FormatFloat(cfg.Drag.InitialScale, 'g', -1, 64)
	g.fScaleAnimationMS = strconv.Itoa(cfg.Drag.ScaleAnimationMS)
	g.fOverlayFPS = strconv.Itoa(cfg.Drag.OverlayFPS)
	g.fEnableSnap = cfg.Move.GetEnableSnap()
	g.fEnableSnapOff = cfg.Move.GetEnableSnapOff()
	g.fDimWindow = cfg.Drag.GetDimWindow()

	w := g.width - 4
	if w < 40 {
		w = 40
	}

	g.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("activate_button").
				Title("Activate Button").
				Description("Pointer binding that starts a drag, e.g. Mod4-1").
				Value(&g.fActivateButton),

			huh.NewInput().
				Key("activate_key").
				Title("Activate Key").
				Description("Keyboard binding that drags the focused window, empty disables").
				Value(&g.fActivateKey),

			huh.NewConfirm().
				Key("enable_snap").
				Title("Edge Snapping").
				Description("Snap the window to screen edges on release").
				Value(&g.fEnableSnap),

			huh.NewInput().
				Key("snap_threshold").
				Title("Snap Threshold").
				Description("Pixels from an edge to snap to halves").
				Value(&g.fSnapThreshold),

			huh.NewInput().
				Key("quarter_snap_threshold").
				Title("Quarter Snap Threshold").
				Description("Pixels from a corner to snap to quarters").
				Value(&g.fQuarterSnapThreshold),

			huh.NewConfirm().
				Key("enable_snap_off").
				Title("Snap-Off").
				Description("Tiled windows stay put until dragged past a threshold").
				Value(&g.fEnableSnapOff),

			huh.NewInput().
				Key("snap_off_threshold").
				Title("Snap-Off Threshold").
				Description("Pixels of pointer travel before a tiled window detaches").
				Value(&g.fSnapOffThreshold),

			huh.NewInput().
				Key("workspace_switch_after").
				Title("Workspace Switch After").
				Description("Milliseconds on a screen edge before switching desktops, -1 disables").
				Value(&g.fWorkspaceSwitch),
		),
		huh.NewGroup(
			huh.NewInput().
				Key("initial_scale").
				Title("Initial Scale").
				Description("Size multiplier applied to the window when a drag starts").
				Value(&g.fInitialScale),

			huh.NewInput().
				Key("scale_animation_ms").
				Title("Scale Animation").
				Description("Duration of scale changes in milliseconds").
				Value(&g.fScaleAnimationMS),

			huh.NewInput().
				Key("overlay_fps").
				Title("Overlay FPS").
				Description("Overlay repaint rate while dragging").
				Value(&g.fOverlayFPS),

			huh.NewConfirm().
				Key("dim_window").
				Title("Dim Window").
				Description("Dim the real window while its overlay is shown").
				Value(&g.fDimWindow),
		),
	).WithWidth(w).WithShowHelp(true).WithShowErrors(true)

	g.editing = true
}

func (g *SettingsTab) applyForm() {
	if g.cfg == nil {
		return
	}

	if g.fActivateButton != "" {
		g.cfg.Move.ActivateButton = g.fActivateButton
	}
	g.cfg.Move.ActivateKey = g.fActivateKey
	if v, err := strconv.Atoi(g.fSnapThreshold); err == nil && v >= 0 {
		g.cfg.Move.SnapThreshold = v
	}
	if v, err := strconv.Atoi(g.fQuarterSnapThreshold); err == nil && v >= 0 {
		g.cfg.Move.QuarterSnapThreshold = v
	}
	if v, err := strconv.Atoi(g.fSnapOffThreshold); err == nil && v >= 0 {
		g.cfg.Move.SnapOffThreshold = v
	}
	if v, err := strconv.Atoi(g.fWorkspaceSwitch); err == nil && v >= -1 {
		g.cfg.Move.WorkspaceSwitchAfter = v
	}
	if v, err := strconv.ParseFloat(g.fInitialScale, 64); err == nil && v > 0 {
		g.cfg.Drag.InitialScale = v
	}
	if v, err := strconv.Atoi(g.fScaleAnimationMS); err == nil && v >= 0 {
		g.cfg.Drag.ScaleAnimationMS = v
	}
	if v, err := strconv.Atoi(g.fOverlayFPS); err == nil && v > 0 {
		g.cfg.Drag.OverlayFPS = v
	}

	enableSnap := g.fEnableSnap
	g.cfg.Move.EnableSnap = &enableSnap
	enableSnapOff := g.fEnableSnapOff
	g.cfg.Move.EnableSnapOff = &enableSnapOff
	dimWindow := g.fDimWindow
	g.cfg.Drag.DimWindow = &dimWindow
}

// saveAndReload writes the edited config to disk and asks the daemon to
// pick it up.
func (g *SettingsTab) saveAndReload() {
	if err := g.cfg.Validate(); err != nil {
		g.statusLine = "invalid: " + err.Error()
		return
	}

	path := g.configPath
	if path == "" {
		p, err := config.DefaultConfigPath()
		if err != nil {
			g.statusLine = "save failed: " + err.Error()
			return
		}
		path = p
	}

	if err := g.cfg.Save(path); err != nil {
		g.statusLine = "save failed: " + err.Error()
		return
	}

	if err := g.client.Reload(); err != nil {
		g.statusLine = "saved; daemon reload failed: " + err.Error()
		return
	}
	g.statusLine = "saved and applied"
}

// View implements tea.Model.
func (g SettingsTab) View() string {
	if g.editing && g.form != nil {
		return g.viewEditing()
	}
	return g.viewDisplay()
}

func (g SettingsTab) viewDisplay() string {
	cfg := g.cfg
	if cfg == nil {
		style := lipgloss.NewStyle().
			Width(g.width).
			Height(g.height).
			Foreground(lipgloss.Color("241")).
			Align(lipgloss.Center, lipgloss.Center)
		return style.Render("No config loaded")
	}

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("250")).
		Width(26).
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

	onOff := func(v bool) string {
		if v {
			return "on"
		}
		return "off"
	}

	wsSwitch := "disabled"
	if cfg.Move.WorkspaceSwitchAfter >= 0 {
		wsSwitch = fmt.Sprintf("%dms", cfg.Move.WorkspaceSwitchAfter)
	}

	lines := []string{
		"",
		row("Activate Button", cfg.Move.ActivateButton),
		row("Activate Key", displayOrDefault(cfg.Move.ActivateKey, "(disabled)")),
		"",
		row("Edge Snapping", onOff(cfg.Move.GetEnableSnap())),
		row("Snap Threshold", fmt.Sprintf("%dpx", cfg.Move.SnapThreshold)),
		row("Quarter Snap Threshold", fmt.Sprintf("%dpx", cfg.Move.QuarterSnapThreshold)),
		row("Snap-Off", onOff(cfg.Move.GetEnableSnapOff())),
		row("Snap-Off Threshold", fmt.Sprintf("%dpx", cfg.Move.SnapOffThreshold)),
		row("Workspace Switch After", wsSwitch),
		"",
		row("Initial Scale", strconv.FormatFloat(cfg.Drag.InitialScale, 'g', -1, 64)),
		row("Scale Animation", fmt.Sprintf("%dms", cfg.Drag.ScaleAnimationMS)),
		row("Overlay FPS", strconv.Itoa(cfg.Drag.OverlayFPS)),
		row("Dim Window", onOff(cfg.Drag.GetDimWindow())),
		"",
	}

	if g.statusLine != "" {
		lines = append(lines, dimStyle.Render("  "+g.statusLine), "")
	}
	lines = append(lines, dimStyle.Render("  Press 'e' to edit settings"))

	content := strings.Join(lines, "\n")

	contentStyle := lipgloss.NewStyle().
		Width(g.width).
		Height(g.height).
		Padding(1, 2)

	return contentStyle.Render(content)
}

func (g SettingsTab) viewEditing() string {
	header := lipgloss.NewStyle().
		Foreground(lipgloss.Color("62")).
		Bold(true).
		Render("Editing Settings") +
		lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Render("  (esc to cancel, changes save on submit)")

	formView := g.form.View()

	content := header + "\n\n" + formView

	style := lipgloss.NewStyle().
		Width(g.width).
		Height(g.height).
		Padding(1, 2)

	return style.Render(content)
}

package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wrensk/windrag/internal/config"
	"github.com/wrensk/windrag/internal/ipc"
)

// statusPollInterval is how often the monitor refreshes drag status from
// the daemon.
const statusPollInterval = time.Second

// model is the root bubbletea model for the monitor.
type model struct {
	configPath string
	cfg        *config.Config
	client     *ipc.Client

	// Tab navigation
	activeTab Tab

	// Sub-models
	statusTab   StatusTab
	outputsTab  OutputsTab
	settingsTab SettingsTab

	// Daemon state
	daemonConnected bool

	// Terminal dimensions
	width  int
	height int
}

func newModel(configPath string) model {
	m := model{
		configPath: configPath,
		activeTab:  TabStatus,
		client:     ipc.NewClient(),
	}

	m.loadConfig()

	m.statusTab = NewStatusTab()
	m.outputsTab = NewOutputsTab()
	m.settingsTab = NewSettingsTab(m.cfg, m.configPath, m.client)

	return m
}

func (m *model) loadConfig() {
	var cfg *config.Config
	var err error

	if m.configPath == "" {
		cfg, err = config.Load()
	} else {
		cfg, err = config.LoadFromPath(m.configPath)
	}

	if err != nil {
		// The settings tab still needs something to edit.
		m.cfg = config.DefaultConfig()
		return
	}
	m.cfg = cfg
}

// contentHeight returns the height available for tab content.
func (m model) contentHeight() int {
	// Approximate: status bar (1) + tab bar (2 with margin) + help bar (1)
	h := m.height - 4
	if h < 1 {
		h = 1
	}
	return h
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(statusPollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

type statusMsg struct {
	data *ipc.StatusData
	err  error
}

type outputsMsg struct {
	data *ipc.OutputsData
	err  error
}

func (m model) fetchStatus() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		data, err := client.GetStatus()
		return statusMsg{data: data, err: err}
	}
}

func (m model) fetchOutputs() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		data, err := client.GetOutputs()
		return outputsMsg{data: data, err: err}
	}
}

func (m *model) applyStatus(msg statusMsg) {
	m.daemonConnected = msg.err == nil
	m.statusTab.SetStatus(msg.data, msg.err)
}

func (m *model) forwardSize() {
	sub := tea.WindowSizeMsg{Width: m.width, Height: m.contentHeight()}
	m.statusTab, _ = m.statusTab.Update(sub)
	m.outputsTab, _ = m.outputsTab.Update(sub)
	m.settingsTab, _ = m.settingsTab.Update(sub)
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return tea.Batch(m.fetchStatus(), m.fetchOutputs(), tick())
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// The settings form captures all input while editing; only ctrl+c
	// escapes to quit. Status polling keeps running underneath.
	if m.settingsTab.editing {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
		case tea.WindowSizeMsg:
			m.width = msg.Width
			m.height = msg.Height
			m.forwardSize()
			return m, nil
		case tickMsg:
			return m, tea.Batch(m.fetchStatus(), tick())
		case statusMsg:
			m.applyStatus(msg)
			return m, nil
		case outputsMsg:
			m.outputsTab.SetOutputs(msg.data, msg.err)
			return m, nil
		}
		var cmd tea.Cmd
		m.settingsTab, cmd = m.settingsTab.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil

		case "shift+tab":
			m.activeTab = (m.activeTab - 1 + tabCount) % tabCount
			return m, nil

		case "1":
			m.activeTab = TabStatus
			return m, nil
		case "2":
			m.activeTab = TabOutputs
			return m, nil
		case "3":
			m.activeTab = TabSettings
			return m, nil

		case "r":
			return m, tea.Batch(m.fetchStatus(), m.fetchOutputs())
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.forwardSize()
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.fetchStatus(), tick())

	case statusMsg:
		m.applyStatus(msg)
		return m, nil

	case outputsMsg:
		m.outputsTab.SetOutputs(msg.data, msg.err)
		return m, nil
	}

	// Delegate to active tab's sub-model
	switch m.activeTab {
	case TabStatus:
		var cmd tea.Cmd
		m.statusTab, cmd = m.statusTab.Update(msg)
		return m, cmd
	case TabOutputs:
		var cmd tea.Cmd
		m.outputsTab, cmd = m.outputsTab.Update(msg)
		return m, cmd
	case TabSettings:
		var cmd tea.Cmd
		m.settingsTab, cmd = m.settingsTab.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	statusBar := renderStatusBar(m.daemonConnected, m.statusTab.DragSummary(), m.width)
	tabBar := renderTabBar(m.activeTab, m.width)
	helpBar := renderHelpBar(m.width)

	usedHeight := lipgloss.Height(statusBar) + lipgloss.Height(tabBar) + lipgloss.Height(helpBar)
	contentHeight := m.height - usedHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	var content string
	switch m.activeTab {
	case TabStatus:
		content = m.statusTab.View()
	case TabOutputs:
		content = m.outputsTab.View()
	case TabSettings:
		content = m.settingsTab.View()
	default:
		content = renderPlaceholder(m.activeTab, m.width, contentHeight)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		statusBar,
		tabBar,
		content,
		helpBar,
	)
}

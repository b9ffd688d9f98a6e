// Package tui provides a Bubble Tea terminal user interface for assetloader.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"assetloader/internal/config"
	"assetloader/internal/fetch"
	"assetloader/internal/loader"
	loaderprogress "assetloader/internal/progress"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	unitStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateLoadingManifest
	StateDownloading
	StateComplete
	StateError
)

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	settings  *config.Settings
	units     []string
	err       error

	// Download context
	ctx    context.Context
	cancel context.CancelFunc

	registry *loader.Registry
	loader   *loader.Loader

	snapshot loaderprogress.Snapshot

	width  int
	height int
}

// NewModel creates a new TUI model.
func NewModel(settings *config.Settings) Model {
	ti := textinput.New()
	ti.Placeholder = "https://cdn.example.com/content"
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:     StateInput,
		textInput: ti,
		spinner:   sp,
		progress:  prog,
		settings:  settings,
		ctx:       ctx,
		cancel:    cancel,
		registry:  loader.NewRegistry(settings, nil, nil),
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ManifestDoneMsg is sent when the manifest has been loaded.
	ManifestDoneMsg struct {
		Units  []string
		Loader *loader.Loader
		Err    error
	}

	// DownloadDoneMsg is sent when every unit has been downloaded.
	DownloadDoneMsg struct {
		Err error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 20
		if m.progress.Width > 80 {
			m.progress.Width = 80
		}
		if m.progress.Width < 20 {
			m.progress.Width = 20
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			if m.state == StateInput {
				return m, tea.Quit
			}
			if m.state == StateDownloading || m.state == StateLoadingManifest {
				m.cancel()
				m.state = StateError
				m.err = fmt.Errorf("cancelled by user")
			}

		case "enter":
			if m.state == StateInput && m.textInput.Value() != "" {
				m.state = StateLoadingManifest
				return m, tea.Batch(m.loadManifest(), m.spinner.Tick)
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				// Reset for a fresh context
				m.state = StateInput
				m.units = nil
				m.err = nil
				m.snapshot = loaderprogress.Snapshot{}
				m.registry.DestroyInstance("tui")
				m.loader = nil
				m.ctx, m.cancel = context.WithCancel(context.Background())
				m.textInput.SetValue("")
				m.textInput.Focus()
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ManifestDoneMsg:
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.units = msg.Units
			m.loader = msg.Loader
			m.state = StateDownloading
			cmds = append(cmds, m.startDownload(), m.tickProgress())
		}

	case DownloadDoneMsg:
		if m.loader != nil {
			m.snapshot = m.loader.Progress()
		}
		if msg.Err != nil && m.ctx.Err() == nil {
			m.state = StateError
			m.err = msg.Err
		} else if m.ctx.Err() != nil {
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
		} else {
			m.state = StateComplete
		}

	case TickMsg:
		if m.loader != nil && m.state == StateDownloading {
			m.snapshot = m.loader.Progress()
			progressCmd := m.progress.SetPercent(m.snapshot.Fraction)
			cmds = append(cmds, progressCmd, m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	// Update text input
	if m.state == StateInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("assetloader"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Download a content manifest and all of its units"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateLoadingManifest:
		b.WriteString(m.viewLoadingManifest())
	case StateDownloading:
		b.WriteString(m.viewDownloading())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Enter content base URL:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf(
		"Manifest: %s | Parallel downloads: %d | Attempts: %d",
		m.settings.ManifestPath,
		m.settings.MaxParallelDownloads,
		m.settings.RetryCount,
	)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewLoadingManifest() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Loading manifest..."))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewDownloading() string {
	var b strings.Builder

	if len(m.units) > 0 {
		b.WriteString(successStyle.Render(fmt.Sprintf("Manifest declares %d unit(s):", len(m.units))))
		b.WriteString("\n")
		for _, unit := range m.units {
			b.WriteString(unitStyle.Render(fmt.Sprintf("  %s [%s]", unit, m.loader.State(unit))))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(m.progress.ViewAs(m.snapshot.Fraction))
	b.WriteString("\n")

	b.WriteString(infoStyle.Render(fmt.Sprintf(
		"Units: %d/%d | %.1f%%",
		m.snapshot.Completed,
		m.snapshot.TotalUnits,
		m.snapshot.Fraction*100,
	)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	box := boxStyle.Render(fmt.Sprintf(
		"Download Complete!\n\n"+
			"Units: %d/%d",
		m.snapshot.Completed,
		m.snapshot.TotalUnits,
	))
	b.WriteString(box)

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("Error:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		return "enter: start • esc: quit"
	case StateLoadingManifest, StateDownloading:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: new download • q: quit"
	}
	return ""
}

// loadManifest resolves the loader context and loads the manifest.
func (m *Model) loadManifest() tea.Cmd {
	return func() tea.Msg {
		base := m.textInput.Value()
		manifestURL, unitURL := fetch.NewBaseResolvers(base, m.settings.ManifestPath)

		l, err := m.registry.GetInstance("tui", manifestURL, unitURL)
		if err != nil {
			return ManifestDoneMsg{Err: err}
		}

		manifest, err := l.LoadManifest(m.ctx)
		if err != nil {
			return ManifestDoneMsg{Err: err}
		}

		return ManifestDoneMsg{
			Units:  manifest.AllUnitIDs(),
			Loader: l,
		}
	}
}

// startDownload downloads every manifest unit in the background.
func (m *Model) startDownload() tea.Cmd {
	return func() tea.Msg {
		if m.loader == nil {
			return DownloadDoneMsg{Err: fmt.Errorf("no loader context")}
		}
		return DownloadDoneMsg{Err: m.loader.DownloadAll(m.ctx)}
	}
}

// Run starts the TUI application.
func Run(settings *config.Settings) error {
	p := tea.NewProgram(NewModel(settings), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

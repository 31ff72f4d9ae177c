package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pocket-runner/internal/config"
	"github.com/vovakirdan/pocket-runner/internal/core"
	"github.com/vovakirdan/pocket-runner/internal/flow"
)

// Options tunes the terminal host.
type Options struct {
	TickRate      int           // Frames per second
	Boot          time.Duration // Length of the boot animation, 0 skips it
	ScreenshotDir string
	Logger        *log.Logger
}

// Model is the Bubble Tea model that polls the game flow once per tick.
type Model struct {
	machine    *flow.Machine
	host       *Host
	keys       KeyMap
	mapper     *KeyMapper
	help       help.Model
	inputFrame core.InputFrame
	opts       Options
	bootFrames int
	bootLeft   int
	width      int
	height     int
	quitting   bool
}

// NewModel creates a model for a machine built on host.Devices().
func NewModel(machine *flow.Machine, host *Host, opts Options) Model {
	if opts.TickRate <= 0 {
		opts.TickRate = config.DefaultRunnerConfig().Timing.TickRate
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	keys := DefaultKeyMap()
	boot := int(opts.Boot * time.Duration(opts.TickRate) / time.Second)

	return Model{
		machine:    machine,
		host:       host,
		keys:       keys,
		mapper:     NewKeyMapper(keys),
		help:       help.New(),
		inputFrame: core.NewInputFrame(),
		opts:       opts,
		bootFrames: boot,
		bootLeft:   boot,
	}
}

// Init draws the first frame and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.host.Display.Render(m.machine.View())
	return tickCmd(m.opts.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey collects device actions for the next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}
	if m.mapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	// Any key skips the boot animation
	if m.bootLeft > 0 {
		m.bootLeft = 0
		m.inputFrame.Clear()
	}
	return m, nil
}

// handleTick runs one frame: devices, then the game flow.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.bootLeft > 0 {
		m.bootLeft--
		return m, tickCmd(m.opts.TickRate)
	}

	m.host.Apply(m.inputFrame)
	m.machine.Poll()
	m.host.Tick()
	m.inputFrame.Clear()

	return m, tickCmd(m.opts.TickRate)
}

// saveScreenshot saves the current screen to a text file.
func (m *Model) saveScreenshot() {
	dir := m.opts.ScreenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			m.opts.Logger.Warn("cannot save screenshot", "error", err)
			return
		}
		dir = filepath.Join(home, ".pocket-runner", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.opts.Logger.Warn("cannot save screenshot", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("runner_%s.txt", timestamp))
	if err := os.WriteFile(path, []byte(m.host.Display.Screen().String()), 0o600); err != nil {
		m.opts.Logger.Warn("cannot save screenshot", "error", err)
		return
	}
	m.opts.Logger.Info("screenshot saved", "path", path)
}

// View renders the display, the LED and the key help.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var screen string
	if m.bootLeft > 0 {
		s := core.NewScreen(DisplayW, DisplayH)
		drawBoot(s, m.bootFrames-m.bootLeft, m.bootFrames)
		screen = RenderScreen(s)
	} else {
		screen = RenderScreen(m.host.Display.Screen())
	}

	status := RenderLED(m.host.LED.Color()) + "  " +
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(m.machine.State().String())

	var b strings.Builder
	b.WriteString(screen)
	b.WriteString("\n")
	b.WriteString(status)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(m.help.View(m.keys)))

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
	}
	return b.String()
}

// Run starts the Bubble Tea program for machine on host.
func Run(machine *flow.Machine, host *Host, opts Options) error {
	p := tea.NewProgram(
		NewModel(machine, host, opts),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}

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
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-asteroids/internal/core"
	"github.com/vovakirdan/tui-asteroids/internal/registry"
)

// consoleLines is the number of output rows kept above the console prompt.
const consoleLines = 6

var (
	consoleOutStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	consoleErrStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// consoleLine is one row of console history.
type consoleLine struct {
	text string
	err  bool
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	console    registry.Console // nil when the game has no console
	screen     *core.Screen
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	logger     *log.Logger

	keys        KeyMap
	help        help.Model
	input       textinput.Model
	consoleOpen bool
	history     []consoleLine

	width    int
	height   int
	quitting bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, logger *log.Logger) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultTickRate
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "help"
	ti.CharLimit = 80

	console, _ := game.(registry.Console)

	m := Model{
		game:       game,
		console:    console,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		logger:     logger,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		input:      ti,
		width:      cfg.ScreenW,
		height:     cfg.ScreenH,
	}
	m.screen = core.NewScreen(m.gameSize())
	return m
}

// gameSize returns the screen area left for the game below the help bar
// and, when open, the console.
func (m Model) gameSize() (int, int) {
	h := m.height - 1
	if m.consoleOpen {
		h -= consoleLines + 1
	}
	return max(m.width, 1), max(h, 1)
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.logger.Info("game started", "game", m.game.ID(), "seed", m.config.Seed, "tick_rate", m.config.TickRate)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.consoleOpen {
			return m.handleConsoleKey(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	if m.consoleOpen {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey processes keyboard input while the game has focus.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	switch action := m.keys.MapKey(msg); action {
	case core.ActionNone:
	case core.ActionQuit:
		m.quitting = true
		m.logger.Info("quit", "score", m.gameState.Score, "wave", m.gameState.Wave)
		return m, tea.Quit
	case core.ActionConsole:
		if m.console == nil {
			return m, nil
		}
		m.consoleOpen = true
		m.screen.Resize(m.gameSize())
		cmd := m.input.Focus()
		return m, cmd
	default:
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleConsoleKey processes keyboard input while the console has focus.
func (m Model) handleConsoleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "esc", "tab":
		m.consoleOpen = false
		m.input.Blur()
		m.screen.Resize(m.gameSize())
		return m, nil
	case "enter":
		m.runCommand(m.input.Value())
		m.input.SetValue("")
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// runCommand executes a console line and appends the result to the history.
func (m *Model) runCommand(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	m.appendHistory(consoleLine{text: "> " + line})

	out, err := m.console.Exec(line)
	if err != nil {
		m.appendHistory(consoleLine{text: err.Error(), err: true})
		return
	}
	for _, l := range strings.Split(out, "\n") {
		if l != "" {
			m.appendHistory(consoleLine{text: l})
		}
	}
}

func (m *Model) appendHistory(l consoleLine) {
	m.history = append(m.history, l)
	if n := len(m.history); n > consoleLines {
		m.history = append(m.history[:0], m.history[n-consoleLines:]...)
	}
}

// handleResize processes window resize events. The world keeps its logical
// size, so the game is not reset.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.config.ScreenW, m.config.ScreenH = m.gameSize()
	m.screen.Resize(m.gameSize())
	m.help.Width = msg.Width
	m.input.Width = max(msg.Width-4, 1)
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// Clear input for next frame
	m.inputFrame.Clear()

	// Continue ticking
	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))

	if m.consoleOpen {
		for i := range consoleLines {
			b.WriteRune('\n')
			// Pad from the top so the newest line sits above the prompt.
			j := i - (consoleLines - len(m.history))
			if j < 0 {
				continue
			}
			l := m.history[j]
			if l.err {
				b.WriteString(consoleErrStyle.Render(l.text))
			} else {
				b.WriteString(consoleOutStyle.Render(l.text))
			}
		}
		b.WriteRune('\n')
		b.WriteString(m.input.View())
	}

	b.WriteRune('\n')
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewModel(game, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}

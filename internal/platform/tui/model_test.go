package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-asteroids/internal/core"
)

// fakeGame records the input frames it receives and echoes console lines.
type fakeGame struct {
	resets int
	steps  []core.InputFrame
	lines  []string
}

func (g *fakeGame) ID() string               { return "fake" }
func (g *fakeGame) Title() string            { return "Fake" }
func (g *fakeGame) Reset(core.RuntimeConfig) { g.resets++ }
func (g *fakeGame) Render(dst *core.Screen)  { dst.DrawText(0, 0, "FAKE") }
func (g *fakeGame) State() core.GameState    { return core.GameState{Score: len(g.steps)} }
func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.steps = append(g.steps, in.Clone())
	return core.StepResult{State: g.State()}
}

func (g *fakeGame) Exec(line string) (string, error) {
	g.lines = append(g.lines, line)
	if line == "boom" {
		return "", errors.New("unknown command")
	}
	return "ok: " + line, nil
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(g *fakeGame) Model {
	return NewModel(g, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}, nil)
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T, expected Model", next)
	}
	return model
}

func TestMapKey(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		msg      tea.KeyMsg
		expected core.Action
	}{
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionRotateLeft},
		{runes("a"), core.ActionRotateLeft},
		{tea.KeyMsg{Type: tea.KeyRight}, core.ActionRotateRight},
		{runes("d"), core.ActionRotateRight},
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionThrust},
		{runes("w"), core.ActionThrust},
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionFire},
		{runes("p"), core.ActionPause},
		{runes("r"), core.ActionRestart},
		{runes("i"), core.ActionToggleInfo},
		{tea.KeyMsg{Type: tea.KeyTab}, core.ActionConsole},
		{runes("q"), core.ActionQuit},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{runes("x"), core.ActionNone},
	}

	for _, tc := range tests {
		t.Run(tc.msg.String(), func(t *testing.T) {
			if got := keys.MapKey(tc.msg); got != tc.expected {
				t.Errorf("MapKey(%q) = %v, expected %v", tc.msg.String(), got, tc.expected)
			}
		})
	}
}

func TestKeysReachGameOnNextTick(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(g)

	m = update(t, m, runes("a"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m = update(t, m, TickMsg{})
	update(t, m, TickMsg{})

	if len(g.steps) != 2 {
		t.Fatalf("game stepped %d times, expected 2", len(g.steps))
	}
	if !g.steps[0].Has(core.ActionRotateLeft) || !g.steps[0].Has(core.ActionFire) {
		t.Errorf("first frame = %v, expected rotate left and fire", g.steps[0].Actions)
	}
	if len(g.steps[1].Actions) != 0 {
		t.Errorf("second frame = %v, expected no actions", g.steps[1].Actions)
	}
}

func TestConsole(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(g)
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if !m.consoleOpen {
		t.Fatal("console did not open")
	}
	if _, h := m.gameSize(); h != 24-1-consoleLines-1 {
		t.Errorf("game height with console = %d", h)
	}

	// Keys typed into the console do not drive the game.
	m = update(t, m, runes("set x"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = update(t, m, runes("boom"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = update(t, m, TickMsg{})

	if len(g.lines) != 2 || g.lines[0] != "set x" || g.lines[1] != "boom" {
		t.Fatalf("console lines = %q", g.lines)
	}
	if len(g.steps[0].Actions) != 0 {
		t.Errorf("console typing leaked actions: %v", g.steps[0].Actions)
	}

	view := m.View()
	if !strings.Contains(view, "ok: set x") || !strings.Contains(view, "unknown command") {
		t.Errorf("console history missing from view:\n%s", view)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if m.consoleOpen {
		t.Error("console did not close")
	}
}

func TestConsoleHistoryBounded(t *testing.T) {
	m := newTestModel(&fakeGame{})
	for range 20 {
		m.runCommand("spawn")
	}
	if len(m.history) != consoleLines {
		t.Errorf("history length = %d, expected %d", len(m.history), consoleLines)
	}
	if m.history[len(m.history)-1].text != "ok: spawn" {
		t.Errorf("last history line = %q", m.history[len(m.history)-1].text)
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(4, 2)
	s.DrawText(0, 0, "ab")
	s.SetColored(2, 0, '*', core.ColorMagenta)
	s.SetColored(0, 1, '#', core.Color(200)) // unknown colours fall back to the default style

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("RenderScreen() produced %d lines, expected 2", len(lines))
	}
	for _, want := range []string{"ab", "*", "#"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderScreen() output missing %q", want)
		}
	}
}

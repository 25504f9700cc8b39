package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/zephyrtronium/calc"
	"github.com/zephyrtronium/calc/internal/display"
	"github.com/zephyrtronium/calc/internal/shell"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	sh := shell.New(calc.NewSession(), nil, "%g", false)
	m := NewModel(sh, display.NewStyles(false), "> ")
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return next.(Model)
}

func enter(t *testing.T, m Model, line string) (Model, tea.Cmd) {
	t.Helper()
	m.input.SetValue(line)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(Model), cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestModel_Evaluate(t *testing.T) {
	m := newTestModel(t)
	for _, line := range []string{"10 - 5", "- 2", "sqrt"} {
		m, _ = enter(t, m, line)
	}
	want := []string{"10 - 5 = 5", "- 2 = 3", "sqrt = 1.7320508075688772"}
	if got := m.lines; strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Errorf("transcript = %q, want %q", got, want)
	}
	if m.input.Value() != "" {
		t.Errorf("input not cleared: %q", m.input.Value())
	}
	if h := m.History(); len(h) != 3 || h[2] != "sqrt" {
		t.Errorf("history = %q", h)
	}
}

func TestModel_Error(t *testing.T) {
	m := newTestModel(t)
	m, _ = enter(t, m, "2 * * 3")
	want := []string{"2 * * 3", "    ^", `error: 5: unexpected token "*"`}
	if strings.Join(m.lines, "\n") != strings.Join(want, "\n") {
		t.Errorf("transcript = %q, want %q", m.lines, want)
	}
	if len(m.History()) != 0 {
		t.Errorf("failed line went to history: %q", m.History())
	}
}

func TestModel_History(t *testing.T) {
	m := newTestModel(t)
	m, _ = enter(t, m, "1 + 1")
	m, _ = enter(t, m, "* 3")
	m, _ = enter(t, m, "* 3")

	up := func() {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
		m = next.(Model)
	}
	down := func() {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
		m = next.(Model)
	}
	up()
	if m.input.Value() != "* 3" {
		t.Errorf("first up = %q", m.input.Value())
	}
	up()
	up()
	if m.input.Value() != "1 + 1" {
		t.Errorf("oldest = %q", m.input.Value())
	}
	down()
	down()
	if m.input.Value() != "" {
		t.Errorf("past newest = %q", m.input.Value())
	}
}

func TestModel_Commands(t *testing.T) {
	m := newTestModel(t)
	m, _ = enter(t, m, "help")
	if len(m.lines) < 2 || !strings.Contains(strings.Join(m.lines, "\n"), "Available commands") {
		t.Errorf("help transcript = %q", m.lines)
	}
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	m = next.(Model)
	if len(m.lines) != 0 {
		t.Errorf("ctrl+l left %q", m.lines)
	}
	m, _ = enter(t, m, "last")
	if len(m.lines) != 1 || m.lines[0] != "no last result" {
		t.Errorf("last = %q", m.lines)
	}
	if m, cmd := enter(t, m, ""); cmd != nil || len(m.lines) != 1 {
		t.Errorf("empty line changed transcript to %q", m.lines)
	}
	if _, cmd := enter(t, m, "quit"); !isQuit(cmd) {
		t.Error("quit didn't quit")
	}
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc}); !isQuit(cmd) {
		t.Error("esc didn't quit")
	}
}

func TestModel_View(t *testing.T) {
	sh := shell.New(calc.NewSession(), nil, "%g", false)
	m := NewModel(sh, display.NewStyles(false), "> ")
	if v := m.View(); v != "Loading..." {
		t.Errorf("view before size = %q", v)
	}
	m = newTestModel(t)
	m, _ = enter(t, m, "6 * 7")
	if v := m.View(); !strings.Contains(v, "6 * 7 = 42") || !strings.Contains(v, "esc: quit") {
		t.Errorf("view lacks transcript or footer:\n%s", v)
	}
}

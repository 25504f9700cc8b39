// Package tui is the full-screen front end of the calculator.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zephyrtronium/calc/internal/display"
	"github.com/zephyrtronium/calc/internal/shell"
)

// Model is the bubbletea model of the calculator screen: a scrolling
// transcript above a one-line input.
type Model struct {
	shell  *shell.Shell
	styles display.Styles
	prompt string

	input    textarea.Model
	viewport viewport.Model
	width    int
	height   int
	ready    bool

	// lines is the rendered transcript.
	lines []string
	// history holds successfully evaluated lines, oldest first. histIdx is
	// the entry being recalled, or len(history) when editing a new line.
	history []string
	histIdx int
}

// NewModel creates the screen over a shell.
func NewModel(sh *shell.Shell, styles display.Styles, prompt string) Model {
	ta := textarea.New()
	ta.Placeholder = "expression, or help"
	ta.Prompt = prompt
	ta.Focus()
	ta.CharLimit = 1000
	ta.SetWidth(80)
	ta.SetHeight(1)
	ta.ShowLineNumbers = false
	ta.KeyMap.InsertNewline.SetEnabled(false)

	return Model{
		shell:  sh,
		styles: styles,
		prompt: prompt,
		input:  ta,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			line := m.input.Value()
			m.input.Reset()
			if m.submit(line) {
				return m, tea.Quit
			}
			m.updateContent()
			return m, nil

		case "up":
			if m.histIdx > 0 {
				m.histIdx--
				m.input.SetValue(m.history[m.histIdx])
			}
			return m, nil

		case "down":
			if m.histIdx < len(m.history) {
				m.histIdx++
				if m.histIdx == len(m.history) {
					m.input.Reset()
				} else {
					m.input.SetValue(m.history[m.histIdx])
				}
			}
			return m, nil

		case "ctrl+l":
			m.lines = nil
			m.updateContent()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		if !m.ready {
			m.viewport = viewport.New(msg.Width, max(msg.Height-4, 1))
			m.viewport.YPosition = 1
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = max(msg.Height-4, 1)
		}
		m.input.SetWidth(max(msg.Width-2, 10))
		m.updateContent()
	}

	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submit runs a line and appends its outcome to the transcript. It reports
// whether the line asked to quit.
func (m *Model) submit(line string) bool {
	r := m.shell.Handle(line)
	expr := strings.TrimSpace(line)
	switch r.Kind {
	case shell.KindNone:
	case shell.KindQuit:
		return true
	case shell.KindResult:
		m.lines = append(m.lines, m.styles.Expr.Render(expr)+" = "+m.styles.Result.Render(r.Text))
		m.remember(expr)
	case shell.KindError:
		m.lines = append(m.lines, m.styles.Expr.Render(expr))
		if pos := display.ErrorPos(r.Err); pos > 0 {
			m.lines = append(m.lines, m.styles.Error.Render(display.Caret(0, pos)))
		}
		m.lines = append(m.lines, m.styles.Error.Render("error: "+r.Text))
	case shell.KindHelp:
		m.lines = append(m.lines, strings.Split(r.Text, "\n")...)
	case shell.KindInfo:
		m.lines = append(m.lines, m.styles.Muted.Render(r.Text))
	}
	m.histIdx = len(m.history)
	return false
}

func (m *Model) remember(line string) {
	if n := len(m.history); n == 0 || m.history[n-1] != line {
		m.history = append(m.history, line)
	}
}

func (m *Model) updateContent() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(strings.Join(m.lines, "\n"))
	m.viewport.GotoBottom()
}

// View renders the UI.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	var s strings.Builder
	s.WriteString(m.styles.Title.Render("calc"))
	s.WriteString("\n")
	s.WriteString(m.viewport.View())
	s.WriteString("\n")
	s.WriteString(m.input.View())
	s.WriteString("\n")
	s.WriteString(m.styles.Muted.Render("enter: evaluate  up/down: history  ctrl+l: clear  esc: quit"))
	return s.String()
}

// History returns the successfully evaluated lines, oldest first.
func (m Model) History() []string {
	return m.history
}

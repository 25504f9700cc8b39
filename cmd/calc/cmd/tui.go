package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/zephyrtronium/calc/internal/logging"
	"github.com/zephyrtronium/calc/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the full-screen calculator",
	Long: `Start the full-screen calculator.

Navigation:
  Enter     Evaluate the line
  Up/Down   Recall earlier lines
  Ctrl+L    Clear the transcript
  Esc       Quit`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		return runTUI(a)
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(a *app) error {
	p := tea.NewProgram(
		tui.NewModel(a.shell, a.styles, a.cfg.Prompt),
		tea.WithAltScreen(),
	)
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	m, ok := final.(tui.Model)
	if !ok {
		return nil
	}
	if path := a.cfg.Histfile(); path != "" && len(m.History()) > 0 {
		if err := appendHistory(path, m.History()); err != nil {
			a.log.Warn("saving history failed", logging.Fields{"path": path, "err": err.Error()})
		}
	}
	return nil
}

// appendHistory adds lines to the end of the history file the REPL reads.
func appendHistory(path string, lines []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	for _, line := range lines {
		w.WriteString(line)
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"
	"github.com/zephyrtronium/calc/internal/display"
	"github.com/zephyrtronium/calc/internal/logging"
	"github.com/zephyrtronium/calc/internal/shell"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive line-mode session",
	Long: `Start an interactive session with line editing and history.

Commands:
  help, h          Show help
  quit, q, exit    Exit (Ctrl+D also exits)
  last             Show the last result
  reset            Forget the last result

Ctrl+C abandons the current line.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		return runRepl(a)
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(a *app) error {
	fmt.Fprintln(a.out, a.styles.Title.Render("calc")+" "+a.styles.Muted.Render("type help for help, quit to exit"))

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := a.cfg.Histfile()
	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if err := writeHistory(histPath, ln.WriteHistory); err != nil {
				a.log.Warn("saving history failed", logging.Fields{"path": histPath, "err": err.Error()})
			}
		}()
	}

	promptWidth := utf8.RuneCountInString(a.cfg.Prompt)
	for {
		line, err := ln.Prompt(a.cfg.Prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(a.out)
			return nil
		}
		if err != nil {
			return err
		}

		r := a.shell.Handle(line)
		if reply(a, r, promptWidth) {
			return nil
		}
		if r.Kind == shell.KindResult {
			ln.AppendHistory(strings.TrimSpace(line))
		}
	}
}

// reply prints the outcome of a line and reports whether the session should
// end. Errors in the input get a caret under the offending column.
func reply(a *app, r shell.Reply, promptWidth int) (quit bool) {
	switch r.Kind {
	case shell.KindQuit:
		return true
	case shell.KindResult:
		fmt.Fprintln(a.out, a.styles.Result.Render(r.Text))
	case shell.KindError:
		if pos := display.ErrorPos(r.Err); pos > 0 {
			fmt.Fprintln(a.errOut, a.styles.Error.Render(display.Caret(promptWidth, pos)))
		}
		fmt.Fprintln(a.errOut, a.styles.Error.Render("Error: "+r.Text))
	case shell.KindHelp:
		fmt.Fprintln(a.out, r.Text)
	case shell.KindInfo:
		fmt.Fprintln(a.out, a.styles.Muted.Render(r.Text))
	}
	return false
}

// writeHistory saves history through write, creating the file's directory.
func writeHistory(path string, write func(io.Writer) (int, error)) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

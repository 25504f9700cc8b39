// Package display renders calculator results, errors and help text for
// terminals.
package display

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/zephyrtronium/calc"
)

// maxExact is the magnitude below which every integer is a float64.
const maxExact = 1 << 53

// Format renders a result. Infinities and NaN have fixed spellings, integers
// that float64 represents exactly print without a fraction, and everything
// else uses verb, e.g. "%g".
func Format(v float64, verb string) string {
	switch {
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	case math.IsNaN(v):
		return "NaN"
	case v == math.Trunc(v) && math.Abs(v) < maxExact:
		if v == 0 {
			// No "-0".
			return "0"
		}
		return strconv.FormatInt(int64(v), 10)
	}
	if verb == "" {
		verb = "%g"
	}
	return fmt.Sprintf(verb, v)
}

// Caret returns a line pointing at the 1-based rune column pos of a line
// displayed after a prompt of the given width.
func Caret(prompt, pos int) string {
	if pos < 1 {
		pos = 1
	}
	return strings.Repeat(" ", prompt+pos-1) + "^"
}

// ErrorPos returns the column of an input error, or 0 if err has none.
func ErrorPos(err error) int {
	var ie calc.InputError
	if errors.As(err, &ie) {
		return ie.Pos()
	}
	return 0
}

// Colors
var (
	colorPrimary = lipgloss.Color("#7C3AED")
	colorOK      = lipgloss.Color("#10B981")
	colorAccent  = lipgloss.Color("#F59E0B")
	colorError   = lipgloss.Color("#EF4444")
	colorMuted   = lipgloss.Color("#6B7280")
)

// Styles are the text styles of interactive output.
type Styles struct {
	Title  lipgloss.Style
	Expr   lipgloss.Style
	Result lipgloss.Style
	Warn   lipgloss.Style
	Error  lipgloss.Style
	Muted  lipgloss.Style
}

// NewStyles returns the colored styles, or plain ones if color is false.
func NewStyles(color bool) Styles {
	if !color {
		p := lipgloss.NewStyle()
		return Styles{Title: p, Expr: p, Result: p, Warn: p, Error: p, Muted: p}
	}
	return Styles{
		Title:  lipgloss.NewStyle().Bold(true).Foreground(colorPrimary),
		Expr:   lipgloss.NewStyle().Foreground(colorMuted),
		Result: lipgloss.NewStyle().Bold(true).Foreground(colorOK),
		Warn:   lipgloss.NewStyle().Foreground(colorAccent),
		Error:  lipgloss.NewStyle().Foreground(colorError),
		Muted:  lipgloss.NewStyle().Foreground(colorMuted).Italic(true),
	}
}

// Help is the text printed by the help command.
const Help = `Available commands:
  help, h          Show this help message
  quit, q, exit    Exit the program
  last             Show the last result
  reset            Forget the last result

Usage:
  <expression>     Calculate the result of the expression

Operators: + - * / % ^, x log b, n!, parentheses
Functions: sqrt sin cos tan ln floor ceil abs round
Constants: pi e

Starting with an operator uses the last result, and a function with
nothing after it applies to the last result.

Examples:
  2 + 3            -> 5
  (2 + 3) * 4      -> 20
  sqrt 16 + 3!     -> 10
  1000 log 10      -> 3
  * 2              -> 6
  sqrt             -> 2.449489742783178`

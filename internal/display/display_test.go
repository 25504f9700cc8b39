package display

import (
	"fmt"
	"math"
	"testing"

	"github.com/zephyrtronium/calc"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		v    float64
		verb string
		want string
	}{
		{"zero", 0, "%g", "0"},
		{"negzero", math.Copysign(0, -1), "%g", "0"},
		{"int", 5, "%g", "5"},
		{"negint", -12, "%g", "-12"},
		{"big-int", 2432902008176640000, "%g", "2.43290200817664e+18"},
		{"max-exact", 1<<53 - 1, "%g", "9007199254740991"},
		{"frac", 1.5, "%g", "1.5"},
		{"sqrt3", math.Sqrt(3), "%g", "1.7320508075688772"},
		{"verb", math.Pi, "%.3f", "3.142"},
		{"int-ignores-verb", 3, "%.3f", "3"},
		{"empty-verb", 0.25, "", "0.25"},
		{"inf", math.Inf(1), "%g", "inf"},
		{"-inf", math.Inf(-1), "%g", "-inf"},
		{"nan", math.NaN(), "%g", "NaN"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.v, tt.verb); got != tt.want {
				t.Errorf("Format(%v, %q) = %q, want %q", tt.v, tt.verb, got, tt.want)
			}
		})
	}
}

func TestCaret(t *testing.T) {
	tests := []struct {
		prompt, pos int
		want        string
	}{
		{0, 1, "^"},
		{2, 1, "  ^"},
		{2, 4, "     ^"},
		{0, 0, "^"},
	}
	for _, tt := range tests {
		if got := Caret(tt.prompt, tt.pos); got != tt.want {
			t.Errorf("Caret(%d, %d) = %q, want %q", tt.prompt, tt.pos, got, tt.want)
		}
	}
}

func TestErrorPos(t *testing.T) {
	_, err := calc.EvalString("2 * * 3")
	if got := ErrorPos(err); got != 5 {
		t.Errorf("ErrorPos(%v) = %d, want 5", err, got)
	}
	_, err = calc.EvalString("1/0")
	if got := ErrorPos(err); got != 0 {
		t.Errorf("ErrorPos(%v) = %d, want 0", err, got)
	}
	if got := ErrorPos(fmt.Errorf("line 2: %w", &calc.LexError{Col: 3})); got != 3 {
		t.Errorf("wrapped ErrorPos = %d, want 3", got)
	}
}

func TestPlainStyles(t *testing.T) {
	s := NewStyles(false)
	if got := s.Error.Render("boom"); got != "boom" {
		t.Errorf("plain style rendered %q", got)
	}
}

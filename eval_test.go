package calc_test

import (
	"errors"
	"math"
	"regexp"
	"strings"
	"testing"

	"github.com/zephyrtronium/calc"
)

func TestEval(t *testing.T) {
	cases := []struct {
		name string
		src  string
		r    float64
	}{
		{"num", "1", 1},
		{"real", "2.5", 2.5},
		{"add", "4+5+6", 4 + 5 + 6},
		{"sub", "4-5-6", 4 - 5 - 6},
		{"mul", "4*5*6", 4 * 5 * 6},
		{"div", "1/4/2", 0.125},
		{"mod", "10 % 3", 1},
		{"mod-neg", "(-7) % 3", -1},
		{"mod-real", "5.5 % 2", 1.5},
		{"pow", "2^10", 1024},
		{"pow-left", "2^3^2", 64},
		{"pow-half", "2^0.5", math.Sqrt2},
		{"pow-overflow", "10^1000", math.Inf(1)},
		{"prec", "3 + 5 * 2 - 4 / 2 ^ 2", 12},
		{"mixed", "sqrt 16 + 3 ! - 2 ^ 3", 2},
		{"parens", "(1 + 2) * 3", 9},

		{"pi", "pi", math.Pi},
		{"e", "e", math.E},
		{"sin", "sin 0", 0},
		{"sin-pi", "sin pi / 2", math.Sin(math.Pi) / 2},
		{"cos", "cos 0", 1},
		{"tan", "tan 1", math.Tan(1)},
		{"ln", "ln 1", 0},
		{"ln-e", "ln e", math.Log(math.E)},
		{"sqrt", "sqrt 16", 4},
		{"sqrt-zero", "sqrt 0", 0},
		{"floor", "floor 2.7", 2},
		{"floor-neg", "floor -2.5", -3},
		{"ceil", "ceil 2.1", 3},
		{"abs", "abs -3", 3},
		{"round", "round 2.5", 3},
		{"round-neg", "round -2.5", -3},
		{"round-down", "round 2.4", 2},
		{"neg", "(-4)", -4},
		{"negneg", "1 + --4", 5},

		{"fact", "5!", 120},
		{"fact-zero", "0!", 1},
		{"fact-paren", "(3!)!", 720},
		{"fact-fact", "3!!", 720},
		{"fact-20", "20!", 2432902008176640000},
		{"fact-add", "3! + 2", 8},
		{"fact-real", "4.0!", 24},

		{"log", "1000 log 10", 3},
		{"log-100", "100 log 10", 2},
		{"log-2", "8 log 2", 3},
		{"log-1", "1 log 10", 0},
		{"log-frac", "0.5 log 2", -1},
		{"log-inf", "10^1000 log 10", math.Inf(1)},
		{"log-prec", "2 * 1000 log 10", 6},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := calc.EvalString(c.src)
			if err != nil {
				t.Fatalf("evaluating %q: %v", c.src, err)
			}
			if r != c.r {
				t.Errorf("wrong result for %q: want %g, got %g", c.src, c.r, r)
			}
		})
	}
}

func TestEvalError(t *testing.T) {
	cases := []struct {
		name string
		src  string
		code calc.Code
	}{
		{"sqrt", "sqrt -4", calc.NegativeSquareRoot},
		{"sqrt-paren", "sqrt (0 - 1)", calc.NegativeSquareRoot},
		{"ln-zero", "ln 0", calc.NonPositiveLogarithm},
		{"ln-neg", "ln -1", calc.NonPositiveLogarithm},
		{"sqrt-nan", "sqrt ((10^1000) - (10^1000))", calc.NegativeSquareRoot},
		{"ln-nan", "ln ((10^1000) - (10^1000))", calc.NonPositiveLogarithm},
		{"fact-real", "2.5!", calc.InvalidFactorialOperand},
		{"fact-neg", "(-1)!", calc.InvalidFactorialOperand},
		{"fact-inf", "(10^1000)!", calc.InvalidFactorialOperand},
		{"div", "1/0", calc.DivisionByZero},
		{"div-zero", "0/0", calc.DivisionByZero},
		{"div-expr", "1/(1-1)", calc.DivisionByZero},
		{"mod", "5 % 0", calc.ModuloByZero},
		{"log-zero", "0 log 10", calc.InvalidLogarithmArguments},
		{"log-neg", "(-8) log 2", calc.InvalidLogarithmArguments},
		{"log-base-one", "10 log 1", calc.InvalidLogarithmArguments},
		{"log-base-zero", "10 log 0", calc.InvalidLogarithmArguments},
		{"log-base-neg", "10 log -2", calc.InvalidLogarithmArguments},
		{"last-implicit", "- 2", calc.NoLastResult},
		{"last-bare", "sqrt", calc.NoLastResult},
		{"first-left", "sqrt -1 + 1/0", calc.NegativeSquareRoot},
		{"first-right", "1/0 + sqrt -1", calc.DivisionByZero},
		{"inner-first", "(1/0)!", calc.DivisionByZero},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := calc.EvalString(c.src)
			if err == nil {
				t.Fatalf("evaluating %q gave no error and result %g", c.src, r)
			}
			if !errors.Is(err, c.code) {
				t.Errorf("evaluating %q: want %v, got %v", c.src, c.code, err)
			}
			if got := calc.CodeOf(err); got != c.code {
				t.Errorf("evaluating %q: code is %v", c.src, got)
			}
			if k := calc.CodeOf(err).Kind(); k != calc.KindMath {
				t.Errorf("evaluating %q: kind is %v", c.src, k)
			}
			var me *calc.MathError
			if !errors.As(err, &me) {
				t.Errorf("%#v is not *calc.MathError", err)
			}
			re := regexp.MustCompile(`^` + regexp.QuoteMeta(c.code.Error()) + `\b`)
			if msg := err.Error(); !re.MatchString(msg) {
				t.Errorf("%q doesn't start with %q", msg, c.code.Error())
			}
		})
	}
}

func TestEvalInputError(t *testing.T) {
	cases := []struct {
		name string
		src  string
		code calc.Code
		pos  int
	}{
		{"char", "2 # 3", calc.UnexpectedCharacter, 3},
		{"number", "1..2", calc.InvalidNumber, 1},
		{"ident", "sqrt x", calc.UnknownIdentifier, 6},
		{"empty", "", calc.EmptyExpression, 1},
		{"token", "2 * / 3", calc.UnexpectedToken, 5},
		{"eoi", "2 *", calc.UnexpectedEndOfInput, 4},
		{"paren", "(2 + 3", calc.UnmatchedParenthesis, 1},
		{"trailing", "2 3", calc.UnexpectedTrailingTokens, 3},
	}
	pre := regexp.MustCompile(`^\d+: `)
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := calc.EvalString(c.src)
			if !errors.Is(err, c.code) {
				t.Fatalf("evaluating %q: want %v, got %v", c.src, c.code, err)
			}
			var ie calc.InputError
			if !errors.As(err, &ie) {
				t.Fatalf("%#v is not an InputError", err)
			}
			if ie.Pos() != c.pos {
				t.Errorf("evaluating %q: want error at %d, got %d", c.src, c.pos, ie.Pos())
			}
			if !pre.MatchString(err.Error()) {
				t.Errorf("%q doesn't begin with its position", err.Error())
			}
		})
	}
}

func TestEvalFactorialWraps(t *testing.T) {
	cases := []struct {
		src string
		r   float64
	}{
		{"21!", float64(uint64(14197454024290336768))},
		{"65!", 1 << 63},
		{"66!", 0},
		{"1000000!", 0},
		{"(10^300)!", 0},
	}
	for _, c := range cases {
		r, err := calc.EvalString(c.src)
		if err != nil {
			t.Errorf("evaluating %q: %v", c.src, err)
			continue
		}
		if r != c.r {
			t.Errorf("wrong result for %q: want %g, got %g", c.src, c.r, r)
		}
	}
}

func TestExprReuse(t *testing.T) {
	a, err := calc.ParseString("* 2")
	if err != nil {
		t.Fatal(err)
	}
	s := calc.NewSession(calc.WithLast(3))
	u := calc.NewSession(calc.WithLast(5))
	for i, want := range []float64{6, 12, 24} {
		r, err := s.Eval(a)
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if r != want {
			t.Errorf("step %d: want %g, got %g", i, want, r)
		}
	}
	if r, err := u.Eval(a); err != nil || r != 10 {
		t.Errorf("other session: want 10, got %g, %v", r, err)
	}
}

func TestEvalNoNaN(t *testing.T) {
	// Domain errors are reported instead of producing NaN. IEEE-754 still
	// applies to the total operations.
	srcs := []string{"sqrt -1", "ln -1", "0/0", "0 % 0", "(-1) log 2", "sqrt ((-8)^0.5)", "ln ((-8)^0.5)"}
	for _, src := range srcs {
		r, err := calc.EvalString(src)
		if err == nil {
			t.Errorf("%q gave %g with no error", src, r)
		}
	}
	r, err := calc.EvalString("(-8) ^ (1/3)")
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsNaN(r) {
		t.Errorf("want NaN from math.Pow, got %g", r)
	}
}

func BenchmarkEval(b *testing.B) {
	b.Run("nums", func(b *testing.B) {
		b.ReportAllocs()
		var s calc.Session
		a, err := calc.Parse(strings.NewReader("2+3+4"))
		if err != nil {
			b.Fatal(err)
		}
		for i := 0; i < b.N; i++ {
			s.Eval(a)
		}
	})
	b.Run("funcs", func(b *testing.B) {
		b.ReportAllocs()
		var s calc.Session
		a, err := calc.Parse(strings.NewReader("sqrt 16 + sin pi * 10!"))
		if err != nil {
			b.Fatal(err)
		}
		for i := 0; i < b.N; i++ {
			s.Eval(a)
		}
	})
	b.Run("log", func(b *testing.B) {
		b.ReportAllocs()
		var s calc.Session
		a, err := calc.Parse(strings.NewReader("1000 log 10"))
		if err != nil {
			b.Fatal(err)
		}
		for i := 0; i < b.N; i++ {
			s.Eval(a)
		}
	})
	b.Run("parse", func(b *testing.B) {
		b.ReportAllocs()
		var s calc.Session
		for i := 0; i < b.N; i++ {
			s.Evaluate("3 + 5 * 2 - 4 / 2 ^ 2")
		}
	})
}

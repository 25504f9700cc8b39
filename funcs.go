package calc

import (
	"math"
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// prefixFuncs maps the keywords of prefix functions to their node kinds.
// KeywordLog is absent because log is an infix operator.
var prefixFuncs = map[Keyword]nodeKind{
	KeywordSqrt:  nodeSqrt,
	KeywordSin:   nodeSin,
	KeywordCos:   nodeCos,
	KeywordTan:   nodeTan,
	KeywordLn:    nodeLn,
	KeywordFloor: nodeFloor,
	KeywordCeil:  nodeCeil,
	KeywordAbs:   nodeAbs,
	KeywordRound: nodeRound,
}

// funcKeyword gets the keyword for a prefix function node kind, or
// KeywordNone if the kind is not a prefix function.
func funcKeyword(k nodeKind) Keyword {
	for w, f := range prefixFuncs {
		if f == k {
			return w
		}
	}
	return KeywordNone
}

// unary applies a unary operation.
func unary(k nodeKind, x float64) (float64, error) {
	switch k {
	case nodeNeg:
		return -x, nil
	case nodeSqrt:
		if x < 0 || math.IsNaN(x) {
			return 0, &MathError{Code: NegativeSquareRoot, Op: "sqrt", X: x}
		}
		return math.Sqrt(x), nil
	case nodeSin:
		return math.Sin(x), nil
	case nodeCos:
		return math.Cos(x), nil
	case nodeTan:
		return math.Tan(x), nil
	case nodeLn:
		if x <= 0 || math.IsNaN(x) {
			return 0, &MathError{Code: NonPositiveLogarithm, Op: "ln", X: x}
		}
		return math.Log(x), nil
	case nodeFloor:
		return math.Floor(x), nil
	case nodeCeil:
		return math.Ceil(x), nil
	case nodeAbs:
		return math.Abs(x), nil
	case nodeRound:
		return math.Round(x), nil
	case nodeFact:
		return factorial(x)
	default:
		panic("calc: invalid unary operation " + k.String())
	}
}

// binary applies a binary operation.
func binary(k nodeKind, l, r float64) (float64, error) {
	switch k {
	case nodeAdd:
		return l + r, nil
	case nodeSub:
		return l - r, nil
	case nodeMul:
		return l * r, nil
	case nodeDiv:
		if r == 0 {
			return 0, &MathError{Code: DivisionByZero, Op: "/", X: r}
		}
		return l / r, nil
	case nodeMod:
		if r == 0 {
			return 0, &MathError{Code: ModuloByZero, Op: "%", X: r}
		}
		return math.Mod(l, r), nil
	case nodePow:
		return math.Pow(l, r), nil
	case nodeLog:
		switch {
		case l <= 0, math.IsNaN(l):
			return 0, &MathError{Code: InvalidLogarithmArguments, Op: "log", X: l}
		case r <= 0, r == 1, math.IsNaN(r):
			return 0, &MathError{Code: InvalidLogarithmArguments, Op: "log", X: r}
		}
		return logBase(l, r), nil
	default:
		panic("calc: invalid binary operation " + k.String())
	}
}

// factorial computes x! for integral x >= 0 in a uint64 accumulator. Results
// above 20! wrap modulo 2^64.
func factorial(x float64) (float64, error) {
	if x < 0 || x != math.Trunc(x) || math.IsInf(x, 0) {
		// NaN fails x == Trunc(x).
		return 0, &MathError{Code: InvalidFactorialOperand, Op: "!", X: x}
	}
	n := uint64(math.MaxUint64)
	if x < math.MaxUint64 {
		n = uint64(x)
	}
	p := uint64(1)
	for i := uint64(2); i <= n; i++ {
		p *= i
		if p == 0 {
			// Enough factors of two have wrapped the product to zero, and it
			// stays there.
			break
		}
	}
	return float64(p), nil
}

// logPrec is the precision in bits at which logBase computes.
const logPrec = 128

// logBase computes the logarithm of x in base b. x and b must be positive and
// b must not be 1. The quotient of logarithms is computed in extended
// precision so that exact powers give exact results, e.g. 1000 log 10 = 3.
func logBase(x, b float64) float64 {
	switch {
	case x == 1:
		return 0
	case math.IsInf(x, 0), math.IsInf(b, 0):
		return math.Log(x) / math.Log(b)
	}
	lx := new(big.Float).SetPrec(logPrec).SetFloat64(x)
	lb := new(big.Float).SetPrec(logPrec).SetFloat64(b)
	bigfloat.Log(lx, lx)
	bigfloat.Log(lb, lb)
	r, _ := lx.Quo(lx, lb).Float64()
	return r
}

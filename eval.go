package calc

import (
	"math"
)

// evalctx is the state visible to an evaluation.
type evalctx struct {
	// last is the session's last result, valid if haveLast.
	last     float64
	haveLast bool
}

// eval computes the value of the subtree rooted at n. Operands are evaluated
// before their operator is applied, and the first error wins.
func (n *node) eval(ctx *evalctx) (float64, error) {
	switch {
	case n.kind == nodeNum:
		return n.num, nil
	case n.kind == nodePi:
		return math.Pi, nil
	case n.kind == nodeE:
		return math.E, nil
	case n.kind == nodeLast:
		if !ctx.haveLast {
			return 0, &MathError{Code: NoLastResult}
		}
		return ctx.last, nil
	case n.kind.unary():
		x, err := n.left.eval(ctx)
		if err != nil {
			return 0, err
		}
		return unary(n.kind, x)
	case n.kind.binary():
		l, err := n.left.eval(ctx)
		if err != nil {
			return 0, err
		}
		r, err := n.right.eval(ctx)
		if err != nil {
			return 0, err
		}
		return binary(n.kind, l, r)
	default:
		panic("calc: invalid AST node " + n.kind.String())
	}
}

// EvalString is a shortcut to parse and evaluate an expression with a fresh
// session. Expressions that refer to the last result fail with NoLastResult.
func EvalString(src string) (float64, error) {
	var s Session
	return s.Evaluate(src)
}

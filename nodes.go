package calc

import (
	"io"
	"strconv"
	"strings"
)

// node is a node in the abstract syntax tree of an expression. Unary
// operations use left as their operand. Each node has exactly one parent.
type node struct {
	kind nodeKind
	num  float64

	left  *node
	right *node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum  // num
	nodePi   // math.Pi
	nodeE    // math.E
	nodeLast // the session's last result

	// unary, operand in left
	nodeNeg
	nodeSqrt
	nodeSin
	nodeCos
	nodeTan
	nodeLn
	nodeFloor
	nodeCeil
	nodeAbs
	nodeRound
	nodeFact

	// binary
	nodeAdd
	nodeSub
	nodeMul
	nodeDiv
	nodeMod
	nodePow
	nodeLog
)

var nodeNames = [...]string{
	nodeNone:  "None",
	nodeNum:   "Number",
	nodePi:    "Pi",
	nodeE:     "E",
	nodeLast:  "LastResult",
	nodeNeg:   "Negate",
	nodeSqrt:  "SquareRoot",
	nodeSin:   "Sin",
	nodeCos:   "Cos",
	nodeTan:   "Tan",
	nodeLn:    "Ln",
	nodeFloor: "Floor",
	nodeCeil:  "Ceil",
	nodeAbs:   "Abs",
	nodeRound: "Round",
	nodeFact:  "Factorial",
	nodeAdd:   "Add",
	nodeSub:   "Subtract",
	nodeMul:   "Multiply",
	nodeDiv:   "Divide",
	nodeMod:   "Modulo",
	nodePow:   "Power",
	nodeLog:   "Log",
}

func (k nodeKind) String() string {
	if k < 0 || int(k) >= len(nodeNames) {
		return "nodeKind(" + strconv.Itoa(int(k)) + ")"
	}
	return nodeNames[k]
}

func (k nodeKind) unary() bool {
	return nodeNeg <= k && k <= nodeFact
}

func (k nodeKind) binary() bool {
	return nodeAdd <= k && k <= nodeLog
}

// symbol gives the spelling of an operator node in printed expressions.
func (k nodeKind) symbol() string {
	switch k {
	case nodeNeg, nodeSub:
		return "-"
	case nodeFact:
		return "!"
	case nodeAdd:
		return "+"
	case nodeMul:
		return "*"
	case nodeDiv:
		return "/"
	case nodeMod:
		return "%"
	case nodePow:
		return "^"
	case nodeLog:
		return "log"
	case nodePi:
		return "pi"
	case nodeE:
		return "e"
	case nodeLast:
		return "_"
	}
	if w := funcKeyword(k); w != KeywordNone {
		return w.String()
	}
	return "$"
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b, false)
	return b.String()
}

// fmt writes the node fully bracketed, alternating round and square brackets
// with depth.
func (n *node) fmt(b *strings.Builder, square bool) {
	var l, r byte = '(', ')'
	if square {
		l, r = '[', ']'
	}
	b.WriteByte(l)
	defer b.WriteByte(r)
	switch {
	case n.kind == nodeNum:
		b.WriteString(strconv.FormatFloat(n.num, 'g', -1, 64))
	case n.kind == nodePi, n.kind == nodeE, n.kind == nodeLast:
		b.WriteString(n.kind.symbol())
	case n.kind == nodeNeg:
		b.WriteByte('-')
		n.left.fmt(b, !square)
	case n.kind == nodeFact:
		n.left.fmt(b, !square)
		b.WriteByte('!')
	case n.kind.unary():
		b.WriteString(n.kind.symbol())
		b.WriteByte(' ')
		n.left.fmt(b, !square)
	case n.kind.binary():
		n.left.fmt(b, !square)
		b.WriteByte(' ')
		b.WriteString(n.kind.symbol())
		b.WriteByte(' ')
		n.right.fmt(b, !square)
	default:
		panic("calc: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}

// dump writes the node as an indented tree, one node per line.
func (n *node) dump(w io.Writer, depth int) error {
	var b strings.Builder
	b.WriteString(strings.Repeat("  ", depth))
	switch {
	case n.kind == nodeNum:
		b.WriteString("Number(")
		b.WriteString(strconv.FormatFloat(n.num, 'g', -1, 64))
		b.WriteByte(')')
	case n.kind == nodePi, n.kind == nodeE:
		b.WriteString("Constant: ")
		b.WriteString(n.kind.String())
	case n.kind == nodeLast:
		b.WriteString("Last Result")
	case n.kind.unary():
		b.WriteString("Unary (" + n.kind.String() + ")")
	case n.kind.binary():
		b.WriteString("Binary (" + n.kind.String() + ")")
	default:
		b.WriteString("Invalid (" + n.kind.String() + ")")
	}
	b.WriteByte('\n')
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}
	if n.left != nil {
		if err := n.left.dump(w, depth+1); err != nil {
			return err
		}
	}
	if n.right != nil {
		return n.right.dump(w, depth+1)
	}
	return nil
}

// usesLast reports whether the subtree contains a last-result node.
func (n *node) usesLast() bool {
	if n == nil {
		return false
	}
	if n.kind == nodeLast {
		return true
	}
	return n.left.usesLast() || n.right.usesLast()
}

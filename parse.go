package calc

import (
	"io"
	"strings"
	"unicode/utf8"
)

// Expr = Implicit | Term
// Implicit = Infix Term { Infix Term }          (only at the start of input)
// Term = Primary { '!' | Infix Term }
// Primary = num | const | Func | Func Primary | '-' Primary | '(' Term ')'
// Infix = '+' | '-' | '*' | '/' | '%' | '^' | 'log'
// Func = 'sqrt' | 'sin' | 'cos' | 'tan' | 'ln' | 'floor' | 'ceil' | 'abs' | 'round'
// const = 'pi' | 'e'
//
// A Func with nothing after it applies to the last result. An Implicit
// expression parses as if the last result were written before it, so its
// operators keep their usual precedence.

// Expr is a parsed expression that can be evaluated with a session.
type Expr struct {
	// n is the root node of the expression.
	n *node
}

// Parse parses an expression from a stream of runes. The entire input must
// form a single expression.
func Parse(src io.RuneScanner) (*Expr, error) {
	l := lex(src)
	toks, err := l.all()
	if err != nil {
		return nil, err
	}
	return parse(toks, l.rune+1)
}

// ParseString parses an expression from a string.
func ParseString(src string) (*Expr, error) {
	return Parse(strings.NewReader(src))
}

// ParseTokens parses an expression from a token sequence produced by
// Tokenize. All tokens must be consumed.
func ParseTokens(toks []Token) (*Expr, error) {
	return parse(toks, tokensEnd(toks))
}

// tokensEnd returns the column just past the last token.
func tokensEnd(toks []Token) int {
	if len(toks) == 0 {
		return 1
	}
	t := toks[len(toks)-1]
	n := t.Len
	if n == 0 {
		// Not from the lexer.
		n = utf8.RuneCountInString(t.Text())
	}
	return t.Pos + n
}

// parse parses a complete expression. end is the column just past the input,
// used to report errors at the end of input.
func parse(toks []Token, end int) (*Expr, error) {
	if len(toks) == 0 {
		return nil, &SyntaxError{Code: EmptyExpression, Col: end}
	}
	p := parser{toks: toks, end: end}
	n, err := parseterm(&p, exprprec, true)
	if err != nil {
		return nil, err
	}
	if tok, ok := p.peek(); ok {
		code := UnexpectedTrailingTokens
		if tok.Kind == TokenClose {
			code = UnmatchedParenthesis
		}
		return nil, &SyntaxError{Code: code, Token: tok.Text(), Col: tok.Pos}
	}
	return &Expr{n: n}, nil
}

type parser struct {
	toks []Token
	// i is the index of the next token.
	i int
	// end is the column just past the input.
	end int
}

// peek returns the next token without consuming it. The second result is
// false at the end of input.
func (p *parser) peek() (Token, bool) {
	if p.i >= len(p.toks) {
		return Token{}, false
	}
	return p.toks[p.i], true
}

// parseterm parses a primary followed by any postfix factorials and infix
// operators that bind more tightly than until. If top is true, the term is
// the start of the whole input, and a leading infix operator takes the last
// result as its left operand.
func parseterm(p *parser, until operator, top bool) (*node, error) {
	var n *node
	if tok, ok := p.peek(); ok && top && binop(tok).op != nodeNone {
		// The last result stands in for the missing primary, so the operator
		// climbs like any other.
		// - 2 * 3 -> (_) - ((2) * (3))
		// * 2 + 1 -> ((_) * (2)) + (1)
		n = &node{kind: nodeLast}
	} else {
		var err error
		n, err = parseprimary(p)
		if err != nil {
			return nil, err
		}
	}
	for {
		tok, ok := p.peek()
		if !ok {
			return n, nil
		}
		if tok.Kind == TokenBang {
			// 3!! -> ((3)!)!
			p.i++
			n = &node{kind: nodeFact, left: n}
			continue
		}
		prec := binop(tok)
		if prec.op == nodeNone || !prec.moreBinding(until) {
			return n, nil
		}
		p.i++
		rhs, err := parseterm(p, prec, false)
		if err != nil {
			return nil, err
		}
		n = &node{kind: prec.op, left: n, right: rhs}
	}
}

// parseprimary parses a number, constant, function application, negation, or
// parenthesized expression.
func parseprimary(p *parser) (*node, error) {
	tok, ok := p.peek()
	if !ok {
		return nil, &SyntaxError{Code: UnexpectedEndOfInput, Col: p.end}
	}
	p.i++
	switch tok.Kind {
	case TokenNum:
		return &node{kind: nodeNum, num: tok.Num}, nil
	case TokenWord:
		switch tok.Word {
		case KeywordPi:
			return &node{kind: nodePi}, nil
		case KeywordE:
			return &node{kind: nodeE}, nil
		}
		fn, ok := prefixFuncs[tok.Word]
		if !ok {
			// log is only infix.
			return nil, unexpected(tok)
		}
		if _, more := p.peek(); !more {
			// sqrt -> sqrt (_)
			return &node{kind: fn, left: &node{kind: nodeLast}}, nil
		}
		arg, err := parseprimary(p)
		if err != nil {
			return nil, err
		}
		return &node{kind: fn, left: arg}, nil
	case TokenMinus:
		arg, err := parseprimary(p)
		if err != nil {
			return nil, err
		}
		return &node{kind: nodeNeg, left: arg}, nil
	case TokenOpen:
		n, err := parseterm(p, exprprec, false)
		if err != nil {
			return nil, err
		}
		if end, ok := p.peek(); !ok || end.Kind != TokenClose {
			return nil, &SyntaxError{Code: UnmatchedParenthesis, Token: tok.Text(), Col: tok.Pos}
		}
		p.i++
		return n, nil
	default:
		return nil, unexpected(tok)
	}
}

func unexpected(tok Token) error {
	return &SyntaxError{Code: UnexpectedToken, Token: tok.Text(), Col: tok.Pos}
}

// String creates a string representation of the parsed expression, with
// alternating round and square brackets grouping each term. The last result
// is written as _.
func (e *Expr) String() string {
	var b strings.Builder
	e.n.fmt(&b, false)
	return b.String()
}

// Dump writes the expression tree to w with one node per line, indenting
// operands beneath their operators.
func (e *Expr) Dump(w io.Writer) error {
	return e.n.dump(w, 0)
}

// UsesLast reports whether evaluating the expression reads the session's last
// result.
func (e *Expr) UsesLast() bool {
	return e.n.usesLast()
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// op is the node kind to use when this operator is selected.
	op nodeKind
}

// moreBinding reports whether p should take the operand away from an
// operator of precedence than. Equal precedences fold to the left.
func (p operator) moreBinding(than operator) bool {
	return p.prec > than.prec
}

// binop gets the infix operator for a token. If there is no such operator,
// then the result has an op of nodeNone.
func binop(tok Token) operator {
	switch tok.Kind {
	case TokenPlus:
		return operator{1, nodeAdd}
	case TokenMinus:
		return operator{1, nodeSub}
	case TokenStar:
		return operator{2, nodeMul}
	case TokenSlash:
		return operator{2, nodeDiv}
	case TokenPercent:
		return operator{2, nodeMod}
	case TokenCaret:
		return operator{3, nodePow}
	case TokenWord:
		if tok.Word == KeywordLog {
			return operator{3, nodeLog}
		}
	}
	return operator{}
}

// exprprec is the precedence required to parse an entire subexpression.
var exprprec = operator{0, nodeNone}

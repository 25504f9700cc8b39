package calc

import (
	"errors"
	"strconv"
)

// Kind is the stage of evaluation that produced an error.
type Kind int8

const (
	KindNone Kind = iota
	// KindLexical errors come from tokenizing the input.
	KindLexical
	// KindSyntactic errors come from parsing tokens into an expression.
	KindSyntactic
	// KindMath errors come from evaluating an operation outside its domain.
	KindMath
)

func (k Kind) String() string {
	switch k {
	case KindLexical:
		return "lexical"
	case KindSyntactic:
		return "syntax"
	case KindMath:
		return "math"
	default:
		return "none"
	}
}

// Code identifies a specific error. Every error returned by this package
// matches exactly one Code under errors.Is, so callers can write e.g.
// errors.Is(err, calc.DivisionByZero).
type Code int8

const (
	CodeNone Code = iota

	UnexpectedCharacter
	InvalidNumber
	UnknownIdentifier

	EmptyExpression
	UnexpectedToken
	UnexpectedEndOfInput
	UnmatchedParenthesis
	UnexpectedTrailingTokens

	NegativeSquareRoot
	NonPositiveLogarithm
	InvalidFactorialOperand
	DivisionByZero
	ModuloByZero
	InvalidLogarithmArguments
	NoLastResult
)

var codeText = [...]string{
	CodeNone:                  "no error",
	UnexpectedCharacter:       "unexpected character",
	InvalidNumber:             "invalid number",
	UnknownIdentifier:         "unknown identifier",
	EmptyExpression:           "empty expression",
	UnexpectedToken:           "unexpected token",
	UnexpectedEndOfInput:      "unexpected end of input",
	UnmatchedParenthesis:      "unmatched parenthesis",
	UnexpectedTrailingTokens:  "unexpected tokens at end of input",
	NegativeSquareRoot:        "square root of negative number",
	NonPositiveLogarithm:      "natural logarithm of non-positive number",
	InvalidFactorialOperand:   "factorial of negative or non-integer number",
	DivisionByZero:            "division by zero",
	ModuloByZero:              "modulo by zero",
	InvalidLogarithmArguments: "invalid logarithm base or argument",
	NoLastResult:              "no last result available",
}

// Error returns a short description of the code.
func (c Code) Error() string {
	if c < 0 || int(c) >= len(codeText) {
		return "unknown error " + strconv.Itoa(int(c))
	}
	return codeText[c]
}

func (c Code) String() string {
	return c.Error()
}

// Kind returns the stage that produces errors with this code.
func (c Code) Kind() Kind {
	switch {
	case c >= UnexpectedCharacter && c <= UnknownIdentifier:
		return KindLexical
	case c >= EmptyExpression && c <= UnexpectedTrailingTokens:
		return KindSyntactic
	case c >= NegativeSquareRoot && c <= NoLastResult:
		return KindMath
	default:
		return KindNone
	}
}

// CodeOf returns the code of an error produced by this package, or CodeNone
// if err is nil or did not come from this package.
func CodeOf(err error) Code {
	var c Code
	if errors.As(err, &c) {
		return c
	}
	var le *LexError
	if errors.As(err, &le) {
		return le.Code
	}
	var se *SyntaxError
	if errors.As(err, &se) {
		return se.Code
	}
	var me *MathError
	if errors.As(err, &me) {
		return me.Code
	}
	return CodeNone
}

// LexError indicates an invalid token. It implements InputError.
type LexError struct {
	// Code is UnexpectedCharacter, InvalidNumber, or UnknownIdentifier.
	Code Code
	// Text is the token the lexer was scanning when it failed, including the
	// offending rune.
	Text string
	// Col is the position of the start of the token.
	Col int
}

func (err *LexError) Error() string {
	return errpos(err.Col, err.Code.Error()+" "+strconv.Quote(err.Text))
}

func (err *LexError) Pos() int {
	return err.Col
}

func (err *LexError) Is(target error) bool {
	c, ok := target.(Code)
	return ok && c == err.Code
}

// SyntaxError indicates a token sequence that does not form an expression.
// It implements InputError.
type SyntaxError struct {
	// Code is one of the syntactic codes.
	Code Code
	// Token is the text of the offending token. It is empty at the end of
	// input.
	Token string
	// Col is the position of the offending token, or one past the last rune
	// at the end of input.
	Col int
}

func (err *SyntaxError) Error() string {
	if err.Token == "" {
		return errpos(err.Col, err.Code.Error())
	}
	return errpos(err.Col, err.Code.Error()+" "+strconv.Quote(err.Token))
}

func (err *SyntaxError) Pos() int {
	return err.Col
}

func (err *SyntaxError) Is(target error) bool {
	c, ok := target.(Code)
	return ok && c == err.Code
}

// MathError indicates an operation applied outside its domain.
type MathError struct {
	// Code is one of the math codes.
	Code Code
	// Op names the operation, e.g. "sqrt" or "/".
	Op string
	// X is the operand that was out of domain. For binary operations it is
	// the right operand unless the left one is at fault.
	X float64
}

func (err *MathError) Error() string {
	if err.Code == NoLastResult {
		return err.Code.Error()
	}
	return err.Code.Error() + " (" + err.Op + " " + strconv.FormatFloat(err.X, 'g', -1, 64) + ")"
}

func (err *MathError) Is(target error) bool {
	c, ok := target.(Code)
	return ok && c == err.Code
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input text implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*SyntaxError)(nil)
)

package calc

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// Token is a lexical token of an expression.
type Token struct {
	// Kind is the token type.
	Kind TokenKind
	// Num is the value of a TokenNum.
	Num float64
	// Word is the keyword of a TokenWord.
	Word Keyword
	// Pos is the 1-based rune column at which the token starts.
	Pos int
	// Len is the number of runes the token spans in the source.
	Len int
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Text() + "@" + strconv.Itoa(t.Pos)
}

// Text returns the source spelling of the token.
func (t Token) Text() string {
	switch t.Kind {
	case TokenNum:
		return strconv.FormatFloat(t.Num, 'g', -1, 64)
	case TokenWord:
		return t.Word.String()
	default:
		if t.Kind > 0 && int(t.Kind) < len(symbols) {
			return symbols[t.Kind]
		}
		return ""
	}
}

// TokenKind is the type of a token.
type TokenKind int8

const (
	TokenNone TokenKind = iota
	// TokenNum is a numeric literal.
	TokenNum
	// TokenWord is a function or constant keyword.
	TokenWord

	TokenPlus    // +
	TokenMinus   // -
	TokenStar    // *
	TokenSlash   // /
	TokenCaret   // ^
	TokenPercent // %
	TokenBang    // !
	TokenOpen    // (
	TokenClose   // )
)

var kindNames = [...]string{
	TokenNone:    "None",
	TokenNum:     "Num",
	TokenWord:    "Word",
	TokenPlus:    "Plus",
	TokenMinus:   "Minus",
	TokenStar:    "Star",
	TokenSlash:   "Slash",
	TokenCaret:   "Caret",
	TokenPercent: "Percent",
	TokenBang:    "Bang",
	TokenOpen:    "Open",
	TokenClose:   "Close",
}

func (k TokenKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Operators contains the runes which lex as single-rune tokens.
const Operators = "+-*/^%!()"

// symbols maps single-rune token kinds to their spelling. Its entries line up
// with Operators starting at TokenPlus.
var symbols = [...]string{
	TokenPlus:    "+",
	TokenMinus:   "-",
	TokenStar:    "*",
	TokenSlash:   "/",
	TokenCaret:   "^",
	TokenPercent: "%",
	TokenBang:    "!",
	TokenOpen:    "(",
	TokenClose:   ")",
}

// Keyword is a recognized function or constant name.
type Keyword int8

const (
	KeywordNone Keyword = iota

	KeywordSqrt
	KeywordSin
	KeywordCos
	KeywordTan
	KeywordLn
	KeywordFloor
	KeywordCeil
	KeywordAbs
	KeywordRound
	// KeywordLog is the infix logarithm, x log b.
	KeywordLog

	KeywordPi
	KeywordE
)

var keywords = map[string]Keyword{
	"sqrt":  KeywordSqrt,
	"sin":   KeywordSin,
	"cos":   KeywordCos,
	"tan":   KeywordTan,
	"ln":    KeywordLn,
	"floor": KeywordFloor,
	"ceil":  KeywordCeil,
	"abs":   KeywordAbs,
	"round": KeywordRound,
	"log":   KeywordLog,
	"pi":    KeywordPi,
	"e":     KeywordE,
}

var keywordNames = [...]string{
	KeywordNone:  "",
	KeywordSqrt:  "sqrt",
	KeywordSin:   "sin",
	KeywordCos:   "cos",
	KeywordTan:   "tan",
	KeywordLn:    "ln",
	KeywordFloor: "floor",
	KeywordCeil:  "ceil",
	KeywordAbs:   "abs",
	KeywordRound: "round",
	KeywordLog:   "log",
	KeywordPi:    "pi",
	KeywordE:     "e",
}

func (w Keyword) String() string {
	if w < 0 || int(w) >= len(keywordNames) {
		return "Keyword(" + strconv.Itoa(int(w)) + ")"
	}
	return keywordNames[w]
}

// IsConst reports whether the keyword names a constant.
func (w Keyword) IsConst() bool {
	return w == KeywordPi || w == KeywordE
}

type lexer struct {
	src  io.RuneScanner
	buf  strings.Builder
	rune int
}

func lex(src io.RuneScanner) *lexer {
	return &lexer{src: src}
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *lexer) readRune() (r rune, err error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.rune++
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the lexer's position
// info. Panics if unreading returns an error.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.rune--
}

// next scans the next token from the input. At the end of input, the result
// is io.EOF.
func (l *lexer) next() (Token, error) {
	defer l.buf.Reset()
	for {
		r, err := l.readRune()
		if err != nil {
			return Token{}, err
		}
		tok := Token{Pos: l.rune, Len: 1}
		switch {
		case unicode.IsSpace(r):
			continue
		case '0' <= r && r <= '9', r == '.':
			l.unreadRune()
			if err := l.scanNum(&tok); err != nil {
				return tok, err
			}
			return tok, nil
		case unicode.IsLetter(r):
			l.unreadRune()
			if err := l.scanWord(&tok); err != nil {
				return tok, err
			}
			return tok, nil
		default:
			if k := strings.IndexRune(Operators, r); k >= 0 {
				tok.Kind = TokenPlus + TokenKind(k)
				return tok, nil
			}
			// Write the rune so that it shows up in the error message.
			l.buf.WriteRune(r)
			return tok, l.error(UnexpectedCharacter, tok.Pos)
		}
	}
}

func (l *lexer) scanNum(tok *Token) error {
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		if ('0' <= r && r <= '9') || r == '.' {
			l.buf.WriteRune(r)
			continue
		}
		l.unreadRune()
		break
	}
	f, err := strconv.ParseFloat(l.buf.String(), 64)
	if err != nil {
		// E.g. "." or "1.2.3".
		return l.error(InvalidNumber, tok.Pos)
	}
	tok.Kind = TokenNum
	tok.Num = f
	tok.Len = l.rune - tok.Pos + 1
	return nil
}

func (l *lexer) scanWord(tok *Token) error {
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			l.buf.WriteRune(r)
			continue
		}
		l.unreadRune()
		break
	}
	w, ok := keywords[l.buf.String()]
	if !ok {
		return l.error(UnknownIdentifier, tok.Pos)
	}
	tok.Kind = TokenWord
	tok.Word = w
	tok.Len = l.rune - tok.Pos + 1
	return nil
}

func (l *lexer) error(code Code, col int) error {
	return &LexError{
		Code: code,
		Text: l.buf.String(),
		Col:  col,
	}
}

// all scans every remaining token. It stops at the first invalid token.
func (l *lexer) all() ([]Token, error) {
	var toks []Token
	for {
		tok, err := l.next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return toks, nil
			}
			return nil, err
		}
		toks = append(toks, tok)
	}
}

// TokenizeReader scans all tokens from src.
func TokenizeReader(src io.RuneScanner) ([]Token, error) {
	return lex(src).all()
}

// Tokenize scans all tokens from a string.
func Tokenize(src string) ([]Token, error) {
	return TokenizeReader(strings.NewReader(src))
}

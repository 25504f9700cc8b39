// Package shell runs calculator input lines against one session, handling
// the interactive commands shared by every front end.
package shell

import (
	"math"
	"strings"

	"github.com/zephyrtronium/calc"
	"github.com/zephyrtronium/calc/internal/display"
	"github.com/zephyrtronium/calc/internal/logging"
)

// Kind says what a line did.
type Kind int

const (
	// KindNone is an empty line.
	KindNone Kind = iota
	KindResult
	KindError
	KindHelp
	// KindInfo is a message from a command, e.g. the last result.
	KindInfo
	KindQuit
)

// Reply is the outcome of one input line.
type Reply struct {
	Kind Kind
	// Text is the formatted result, error message, or command output.
	Text string
	// Value is the result of a KindResult line.
	Value float64
	// Err is the error of a KindError line.
	Err error
}

// Shell evaluates lines for a single user. It is not safe for concurrent
// use, although its session is.
type Shell struct {
	sess  *calc.Session
	log   *logging.Logger
	verb  string
	debug bool
}

// New creates a shell over sess. verb formats results that aren't integers.
// If debug is true, every expression's tokens and tree are logged at debug
// level.
func New(sess *calc.Session, log *logging.Logger, verb string, debug bool) *Shell {
	if log == nil {
		log = logging.Discard()
	}
	return &Shell{sess: sess, log: log, verb: verb, debug: debug}
}

// Session returns the session the shell evaluates against.
func (s *Shell) Session() *calc.Session {
	return s.sess
}

// Format formats a result with the shell's verb.
func (s *Shell) Format(v float64) string {
	return display.Format(v, s.verb)
}

// Handle runs one line, either a command or an expression.
func (s *Shell) Handle(line string) Reply {
	line = strings.TrimSpace(line)
	switch strings.ToLower(line) {
	case "":
		return Reply{Kind: KindNone}
	case "help", "h", "?":
		return Reply{Kind: KindHelp, Text: display.Help}
	case "quit", "q", "exit":
		return Reply{Kind: KindQuit}
	case "last":
		if v, ok := s.sess.Last(); ok {
			return Reply{Kind: KindInfo, Text: s.Format(v), Value: v}
		}
		return Reply{Kind: KindInfo, Text: "no last result"}
	case "reset":
		s.sess.Reset()
		s.log.Debug("session reset")
		return Reply{Kind: KindInfo, Text: "last result cleared"}
	}
	v, err := s.Eval(line)
	if err != nil {
		return Reply{Kind: KindError, Text: err.Error(), Err: err}
	}
	return Reply{Kind: KindResult, Text: s.Format(v), Value: v}
}

// Eval evaluates one expression, logging diagnostics along the way.
func (s *Shell) Eval(src string) (float64, error) {
	if s.debug && s.log.IsLevelEnabled(logging.LevelDebug) {
		s.trace(src)
	}
	v, err := s.sess.Evaluate(src)
	if err != nil {
		s.log.Debug("evaluation failed", logging.Fields{
			"expr": src,
			"kind": calc.CodeOf(err).Kind().String(),
			"err":  err.Error(),
		})
		return 0, err
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		s.log.Warn("result is not finite", logging.Fields{"expr": src, "result": display.Format(v, s.verb)})
	}
	return v, nil
}

// trace logs the tokens and tree of src. Errors are left for Eval to report.
func (s *Shell) trace(src string) {
	toks, err := calc.Tokenize(src)
	if err != nil {
		return
	}
	words := make([]string, len(toks))
	for i, tok := range toks {
		words[i] = tok.String()
	}
	s.log.Debug("tokens", logging.Fields{"expr": src, "tokens": strings.Join(words, " ")})
	e, err := calc.ParseTokens(toks)
	if err != nil {
		return
	}
	var b strings.Builder
	e.Dump(&b)
	s.log.Debug("tree", logging.Fields{"expr": src, "bracketed": e.String()})
	for _, line := range strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n") {
		s.log.Debug("  " + line)
	}
}

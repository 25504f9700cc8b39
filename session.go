package calc

import (
	"strings"
	"sync"
)

// Session holds the last successfully computed result of a sequence of
// evaluations. The zero value is an empty session ready to use. A Session is
// safe for concurrent use; evaluations on one session are serialized.
type Session struct {
	mu   sync.Mutex
	last float64
	ok   bool
}

// SessionOption is an option used when creating a session.
type SessionOption interface {
	sessionOption(*Session)
}

type lastopt float64

func (o lastopt) sessionOption(s *Session) {
	s.last = float64(o)
	s.ok = true
}

// WithLast seeds the session's last result.
func WithLast(v float64) SessionOption {
	return lastopt(v)
}

// NewSession creates a session with the given options applied in order.
func NewSession(opts ...SessionOption) *Session {
	var s Session
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.sessionOption(&s)
	}
	return &s
}

// Last returns the last result and whether there is one.
func (s *Session) Last() (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last, s.ok
}

// Set replaces the last result.
func (s *Session) Set(v float64) {
	s.mu.Lock()
	s.last, s.ok = v, true
	s.mu.Unlock()
}

// Reset forgets the last result.
func (s *Session) Reset() {
	s.mu.Lock()
	s.last, s.ok = 0, false
	s.mu.Unlock()
}

// Eval evaluates a parsed expression. On success, the result becomes the
// session's last result. On failure, the session is unchanged.
func (s *Session) Eval(e *Expr) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ctx := evalctx{last: s.last, haveLast: s.ok}
	r, err := e.n.eval(&ctx)
	if err != nil {
		return 0, err
	}
	s.last, s.ok = r, true
	return r, nil
}

// Evaluate parses and evaluates an expression. On success, the result becomes
// the session's last result. On failure, the session is unchanged.
func (s *Session) Evaluate(src string) (float64, error) {
	e, err := Parse(strings.NewReader(src))
	if err != nil {
		return 0, err
	}
	return s.Eval(e)
}

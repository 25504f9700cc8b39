// Package logging is the leveled logger of the calc command, a thin layer over
// charmbracelet/log.
package logging

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// Level represents log severity.
type Level = log.Level

const (
	LevelDebug = log.DebugLevel
	LevelInfo  = log.InfoLevel
	LevelWarn  = log.WarnLevel
	LevelError = log.ErrorLevel
)

// ParseLevel converts a level name, ignoring case and surrounding space. An
// empty name is info, and "warning" is accepted for warn.
func ParseLevel(s string) (Level, error) {
	switch s = strings.ToLower(strings.TrimSpace(s)); s {
	case "":
		return LevelInfo, nil
	case "warning":
		return LevelWarn, nil
	}
	l, err := log.ParseLevel(s)
	if err != nil || l > LevelError {
		return LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
	return l, nil
}

var levelColors = map[Level]lipgloss.Color{
	LevelDebug: lipgloss.Color("#6B7280"),
	LevelInfo:  lipgloss.Color("#10B981"),
	LevelWarn:  lipgloss.Color("#F59E0B"),
	LevelError: lipgloss.Color("#EF4444"),
}

// styles labels each level "LEVEL:". Only the labels are colored.
func styles(color bool) *log.Styles {
	plain := lipgloss.NewStyle()
	st := &log.Styles{
		Timestamp: plain,
		Caller:    plain,
		Prefix:    plain,
		Message:   plain,
		Key:       plain,
		Value:     plain,
		Separator: plain,
		Levels:    make(map[Level]lipgloss.Style, len(levelColors)),
		Keys:      map[string]lipgloss.Style{},
		Values:    map[string]lipgloss.Style{},
	}
	for l, c := range levelColors {
		s := lipgloss.NewStyle().SetString(strings.ToUpper(l.String()) + ":")
		if color {
			s = s.Foreground(c)
			if l >= LevelWarn {
				s = s.Bold(true)
			}
		}
		st.Levels[l] = s
	}
	return st
}

// Fields holds structured values attached to a log line.
type Fields map[string]interface{}

// Logger writes lines of the form "LEVEL: message key=value ...". Loggers
// derived with WithField share the output.
type Logger struct {
	l *log.Logger
}

// lockedWriter serializes whole lines from every logger derived from one New.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (w *lockedWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.w.Write(p)
}

// New creates a logger writing messages at or above level to out.
func New(out io.Writer, level Level, color bool) *Logger {
	l := log.NewWithOptions(&lockedWriter{w: out}, log.Options{Level: level})
	l.SetStyles(styles(color))
	return &Logger{l: l}
}

// Discard returns a logger that writes nothing.
func Discard() *Logger {
	return New(io.Discard, log.FatalLevel, false)
}

// WithField returns a logger that adds key=value to every line.
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{l: l.l.With(key, value)}
}

// IsLevelEnabled reports whether messages at level are written.
func (l *Logger) IsLevelEnabled(level Level) bool {
	return level >= l.l.GetLevel()
}

func (l *Logger) Debug(message string, fields ...Fields) { l.l.Debug(message, keyvals(fields)...) }
func (l *Logger) Info(message string, fields ...Fields)  { l.l.Info(message, keyvals(fields)...) }
func (l *Logger) Warn(message string, fields ...Fields)  { l.l.Warn(message, keyvals(fields)...) }
func (l *Logger) Error(message string, fields ...Fields) { l.l.Error(message, keyvals(fields)...) }

// keyvals flattens fields into alternating keys and values, sorted by key.
// Later maps override earlier ones.
func keyvals(fields []Fields) []interface{} {
	if len(fields) == 0 {
		return nil
	}
	all := make(Fields)
	for _, f := range fields {
		for k, v := range f {
			all[k] = v
		}
	}
	keys := make([]string, 0, len(all))
	for k := range all {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	kv := make([]interface{}, 0, 2*len(keys))
	for _, k := range keys {
		kv = append(kv, k, all[k])
	}
	return kv
}

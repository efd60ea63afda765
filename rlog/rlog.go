// Package rlog provides the structured-logging breadcrumbs threaded
// through session decoding, parsing and FSM validation. It wraps
// logrus.Entry rather than the bare package logger so that call sites can
// attach section/state/transition fields without the caller managing a
// context explicitly, mirroring the teacher's ctx = log.Enter(ctx, "...")
// idiom with a field-carrying entry instead of a context value.
package rlog

import "github.com/sirupsen/logrus"

// Logger is a thin wrapper around a logrus.Entry.
type Logger struct {
	entry *logrus.Entry
}

// New builds a Logger at the given level, writing to logrus's default
// output.
func New(level logrus.Level) *Logger {
	base := logrus.New()
	base.SetLevel(level)
	return &Logger{entry: logrus.NewEntry(base)}
}

// FromLogrus wraps an already-configured logrus.Logger, e.g. one carrying a
// test hook (logrus/hooks/test) or a non-default output/formatter.
func FromLogrus(base *logrus.Logger) *Logger {
	return &Logger{entry: logrus.NewEntry(base)}
}

// Discard returns a Logger that emits nothing, the default for callers
// that pass a nil *Logger.
func Discard() *Logger {
	return New(logrus.PanicLevel)
}

func (l *Logger) orDiscard() *Logger {
	if l == nil {
		return Discard()
	}
	return l
}

// With returns a child Logger with an additional field attached, e.g.
// log.With("state", name).
func (l *Logger) With(key string, value interface{}) *Logger {
	l = l.orDiscard()
	return &Logger{entry: l.entry.WithField(key, value)}
}

// Debug emits a trace-level breadcrumb.
func (l *Logger) Debug(msg string) {
	l.orDiscard().entry.Debug(msg)
}

// Debugf emits a formatted trace-level breadcrumb.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.orDiscard().entry.Debugf(format, args...)
}

// Warn emits a warning.
func (l *Logger) Warn(msg string) {
	l.orDiscard().entry.Warn(msg)
}

// Warnf emits a formatted warning, used by the ambient MaxTransitionsPerState
// guard.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.orDiscard().entry.Warnf(format, args...)
}

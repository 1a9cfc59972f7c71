package logger

import (
	"log/slog"
	"os"
)

// Interface is the logger handed to every component. The *w variants take
// alternating key/value pairs.
type Interface interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
	With(args ...any) Interface
	Named(name string) Interface

	Debugw(msg string, keysAndValues ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Errorw(msg string, keysAndValues ...interface{})
	Fatalw(msg string, keysAndValues ...interface{})
}

var osExit = os.Exit

// exit is replaced in tests.
var exit = osExit

type slogLogger struct {
	logger *slog.Logger
	// base is logger without the component attribute, so nested Named calls
	// replace it instead of repeating it.
	base *slog.Logger
	name string
}

func newSlogLogger(l *slog.Logger) *slogLogger {
	return &slogLogger{logger: l, base: l}
}

func NewLogger() Interface {
	return newSlogLogger(Get())
}

// NewNop returns a logger that discards everything.
func NewNop() Interface {
	return newSlogLogger(slog.New(slog.DiscardHandler))
}

func (l *slogLogger) Debug(msg string, args ...any) {
	l.logger.Debug(msg, args...)
}

func (l *slogLogger) Info(msg string, args ...any) {
	l.logger.Info(msg, args...)
}

func (l *slogLogger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, args...)
}

func (l *slogLogger) Error(msg string, args ...any) {
	l.logger.Error(msg, args...)
}

func (l *slogLogger) Fatal(msg string, args ...any) {
	l.logger.Error(msg, args...)
	exit(1)
}

func (l *slogLogger) With(args ...any) Interface {
	return &slogLogger{
		logger: l.logger.With(args...),
		base:   l.base.With(args...),
		name:   l.name,
	}
}

// Named scopes the logger to a component. Names nest with a dot:
// Named("scheduler").Named("expiry") logs component=scheduler.expiry.
func (l *slogLogger) Named(name string) Interface {
	if l.name != "" {
		name = l.name + "." + name
	}
	return &slogLogger{
		logger: l.base.With("component", name),
		base:   l.base,
		name:   name,
	}
}

func (l *slogLogger) Debugw(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l *slogLogger) Infow(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, keysAndValues...)
}

func (l *slogLogger) Warnw(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, keysAndValues...)
}

func (l *slogLogger) Errorw(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, keysAndValues...)
}

func (l *slogLogger) Fatalw(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, keysAndValues...)
	exit(1)
}

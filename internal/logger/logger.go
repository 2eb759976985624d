package logger

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

type Logger interface {
	Debugf(format string, v ...any)
	Infof(format string, v ...any)
	Errorf(format string, v ...any)
}

type slogLogger struct{ l *slog.Logger }

// New returns a logger writing text records at or above level to w.
func New(w io.Writer, level slog.Level) Logger {
	return &slogLogger{l: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))}
}

func (l *slogLogger) Debugf(format string, v ...any) { l.l.Debug(fmt.Sprintf(format, v...)) }
func (l *slogLogger) Infof(format string, v ...any)  { l.l.Info(fmt.Sprintf(format, v...)) }
func (l *slogLogger) Errorf(format string, v ...any) { l.l.Error(fmt.Sprintf(format, v...)) }

type nopLogger struct{}

func Nop() Logger { return nopLogger{} }

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}

// ParseLevel accepts debug, info, warn and error, case insensitive.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("log level %q: %w", s, err)
	}
	return level, nil
}
